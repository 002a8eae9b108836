package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/model"
)

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "bare array",
			text:  `[{"a":"b"}]`,
			want:  `[{"a":"b"}]`,
			found: true,
		},
		{
			name:  "surrounded by prose",
			text:  "Here you go:\n[{\"a\":\"b\"}]\nHope this helps!",
			want:  `[{"a":"b"}]`,
			found: true,
		},
		{
			name:  "brackets inside strings",
			text:  `Sure [{"a":"x ] y"},{"a":"[z"}] done`,
			want:  `[{"a":"x ] y"},{"a":"[z"}]`,
			found: true,
		},
		{
			name:  "nested arrays",
			text:  `[[1,2],[3]] trailing ]`,
			want:  `[[1,2],[3]]`,
			found: true,
		},
		{
			name:  "escaped quote",
			text:  `[{"a":"say \"]\""}]`,
			want:  `[{"a":"say \"]\""}]`,
			found: true,
		},
		{
			name:  "unbalanced then balanced",
			text:  `[ oops [{"a":"b"}]`,
			want:  `[{"a":"b"}]`,
			found: true,
		},
		{
			name: "no array",
			text: "I cannot help with that.",
		},
		{
			name: "unterminated",
			text: `[{"a":"b"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractArray(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItems(t *testing.T) {
	fields := []string{"tip", "description", "action_item"}

	t.Run("valid items keep only schema fields", func(t *testing.T) {
		text := `Tips: [{"tip":" Save ","description":"d","action_item":"a","extra":"x"}]`
		items, err := ParseItems(text, fields)
		require.NoError(t, err)
		assert.Equal(t, []model.Item{{"tip": "Save", "description": "d", "action_item": "a"}}, items)
	})

	failures := map[string]string{
		"no array":        "nothing here",
		"not json":        `[tip, description]`,
		"empty list":      `[]`,
		"not an object":   `["tip"]`,
		"missing field":   `[{"tip":"t","description":"d"}]`,
		"non-string":      `[{"tip":"t","description":"d","action_item":3}]`,
		"blank field":     `[{"tip":"t","description":"  ","action_item":"a"}]`,
		"null element":    `[null]`,
		"one bad element": `[{"tip":"t","description":"d","action_item":"a"},{"tip":"t"}]`,
	}
	for name, text := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := ParseItems(text, fields)
			assert.Error(t, err)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	spec, ok := specFor(model.KindAcademicTrends)
	require.True(t, ok)

	system, user := buildPrompt(spec, Context{
		Degree:      "B.Tech",
		YearOfStudy: "2nd Year",
		Extra:       map[string]string{"focus": "exams"},
	}, 2025)

	assert.Equal(t, "You're an educational advisor for Indian students.", system)
	assert.Contains(t, user, "Provide 3 latest academic trends")
	assert.Contains(t, user, "B.Tech students in their 2nd Year in India")
	assert.Contains(t, user, "2025")
	assert.Contains(t, user, "'trend', 'description' and 'benefit'")
	assert.Contains(t, user, "focus: exams")
}

func TestSpecForNews(t *testing.T) {
	fields, ok := Fields(model.NewsKind("Career"))
	require.True(t, ok)
	assert.Equal(t, []string{"title", "date", "source"}, fields)

	_, ok = Fields("horoscope")
	assert.False(t, ok)
}
