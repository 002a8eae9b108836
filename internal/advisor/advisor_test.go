package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/testutil"
)

func TestClassifyDomain(t *testing.T) {
	tests := []struct {
		query string
		want  Domain
	}{
		{"I feel overwhelmed and can't sleep before exams", DomainMentalHealth},
		{"How do I prepare for my semester exam and improve my CGPA?", DomainAcademic},
		{"Which companies hire interns for placement?", DomainCareer},
		{"Can I get a loan to pay my hostel fee?", DomainFinancial},
		{"hello there", DomainAcademic},
		{"", DomainAcademic},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDomain(tt.query))
		})
	}
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("Mental-Health")
	require.NoError(t, err)
	assert.Equal(t, DomainMentalHealth, d)

	d, err = ParseDomain("finance")
	require.NoError(t, err)
	assert.Equal(t, DomainFinancial, d)

	_, err = ParseDomain("astrology")
	require.ErrorIs(t, err, ErrUnknownDomain)
}

func TestAdviseLive(t *testing.T) {
	completer := testutil.NewFakeCompleter(testutil.Reply{Text: "  Make a weekly timetable.\n"})
	a := New(completer, nil)

	student := StudentContext(model.Profile{Degree: "B.Tech", YearOfStudy: "2nd Year"})
	advice, err := a.Advise(context.Background(), "How should I study for exams?", "", student)
	require.NoError(t, err)
	assert.Equal(t, DomainAcademic, advice.Domain)
	assert.Equal(t, "Make a weekly timetable.", advice.Text)
	assert.False(t, advice.Fallback)

	reqs := completer.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].SystemPrompt, "academic success advisor")
	assert.Contains(t, reqs[0].SystemPrompt, "Student context: degree: B.Tech. year_of_study: 2nd Year.")
	assert.NotContains(t, reqs[0].SystemPrompt, "major")
	assert.Equal(t, "How should I study for exams?", reqs[0].UserPrompt)
	assert.Equal(t, 1024, reqs[0].MaxTokens)
}

func TestAdviseFallsBack(t *testing.T) {
	tests := []struct {
		name      string
		completer *testutil.FakeCompleter
	}{
		{"transport error", testutil.NewFakeCompleter(testutil.Reply{Err: errors.New("connection refused")})},
		{"blank answer", testutil.NewFakeCompleter(testutil.Reply{Text: "   "})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, err := New(tt.completer, nil).Advise(context.Background(), "budget tips?", DomainFinancial, nil)
			require.NoError(t, err)
			assert.True(t, advice.Fallback)
			assert.Equal(t, fallbackGuidance[DomainFinancial], advice.Text)
			assert.Equal(t, 1, tt.completer.Calls())
		})
	}

	advice, err := New(nil, nil).Advise(context.Background(), "I am stressed", "", nil)
	require.NoError(t, err)
	assert.True(t, advice.Fallback)
	assert.Equal(t, DomainMentalHealth, advice.Domain)
}

func TestAdviseRejectsBadInput(t *testing.T) {
	completer := testutil.NewFakeCompleter()
	a := New(completer, nil)

	_, err := a.Advise(context.Background(), "  ", DomainCareer, nil)
	require.ErrorIs(t, err, ErrEmptyQuery)

	_, err = a.Advise(context.Background(), "help", Domain("astrology"), nil)
	require.ErrorIs(t, err, ErrUnknownDomain)
	assert.Zero(t, completer.Calls())
}

func TestEveryDomainHasPromptAndGuidance(t *testing.T) {
	for _, d := range Domains {
		assert.NotEmpty(t, systemPrompts[d], d)
		assert.NotEmpty(t, fallbackGuidance[d], d)
		assert.NotEmpty(t, keywords[d], d)
	}
}
