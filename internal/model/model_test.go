package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	type doc struct {
		Due Date `json:"due"`
	}

	t.Run("round trip", func(t *testing.T) {
		data, err := json.Marshal(doc{Due: MustDate("2024-03-15")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"due":"2024-03-15"}`, string(data))

		var got doc
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "2024-03-15", got.Due.String())
	})

	t.Run("zero is null", func(t *testing.T) {
		data, err := json.Marshal(doc{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"due":null}`, string(data))
	})

	t.Run("accepts timestamps", func(t *testing.T) {
		var got doc
		require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-03-15T18:30:00Z"}`), &got))
		assert.Equal(t, "2024-03-15", got.Due.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var got doc
		require.Error(t, json.Unmarshal([]byte(`{"due":"next tuesday"}`), &got))
		require.Error(t, json.Unmarshal([]byte(`{"due":12}`), &got))
	})
}

func TestDateWithin(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, MustDate("2024-03-01").Within(start, end))
	assert.True(t, MustDate("2024-03-31").Within(start, end))
	assert.False(t, MustDate("2024-04-01").Within(start, end))
	assert.False(t, Date{}.Within(start, end))
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile("alice")
	assert.Equal(t, "Student", p.FullName)
	assert.Equal(t, "College", p.CollegeName)
	assert.Equal(t, "Degree", p.Degree)
	assert.Equal(t, "1st Year", p.YearOfStudy)
	assert.Equal(t, "light", p.Preferences.Theme)
	assert.True(t, p.Preferences.NotificationsEnabled)

	custom := Profile{StudentID: "bob", FullName: "Bob", Preferences: Preferences{Theme: "dark"}}
	custom.ApplyDefaults()
	assert.Equal(t, "Bob", custom.FullName)
	assert.Equal(t, "dark", custom.Preferences.Theme)
}

func TestYearRank(t *testing.T) {
	tests := map[string]int{
		"1st Year":   1,
		"2nd Year":   2,
		"3rd Year":   3,
		"4th Year":   4,
		"Final Year": 5,
		"Masters":    0,
	}
	for year, want := range tests {
		assert.Equal(t, want, Profile{YearOfStudy: year}.YearRank(), year)
	}
}

func TestCourseCurrentDefaultsTrue(t *testing.T) {
	var c Course
	require.NoError(t, json.Unmarshal([]byte(`{"code":"CS101","name":"Intro"}`), &c))
	assert.True(t, c.Current())

	require.NoError(t, json.Unmarshal([]byte(`{"code":"CS101","name":"Intro","is_current":false}`), &c))
	assert.False(t, c.Current())
}

func TestPriorityRank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())
}

func TestNewsKind(t *testing.T) {
	kind := NewsKind(" Finance ")
	assert.Equal(t, ContentKind("news:finance"), kind)

	topic, ok := kind.NewsTopic()
	assert.True(t, ok)
	assert.Equal(t, "finance", topic)

	_, ok = KindAcademicTrends.NewsTopic()
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	t.Run("valid semester", func(t *testing.T) {
		s := SemesterPerformance{Semester: "Sem 1", SemesterIndex: 1, SGPA: 8.2, Credits: 20, CGPA: 8.2}
		require.NoError(t, Validate(&s))
	})

	t.Run("sgpa out of range uses json names", func(t *testing.T) {
		s := SemesterPerformance{Semester: "Sem 1", SemesterIndex: 1, SGPA: 11, Credits: 0}
		err := Validate(&s)
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "sgpa")
		assert.Contains(t, err.Error(), "credits")
	})

	t.Run("blank title", func(t *testing.T) {
		err := Validate(&Task{Title: "   "})
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "title cannot be blank")
	})

	t.Run("mood score bounds", func(t *testing.T) {
		require.ErrorIs(t, Validate(&MoodEntry{Score: 0}), ErrValidation)
		require.NoError(t, Validate(&MoodEntry{Score: 10}))
	})

	t.Run("subject id", func(t *testing.T) {
		require.NoError(t, Validate(&Profile{StudentID: "student_01"}))
		require.ErrorIs(t, Validate(&Profile{StudentID: "../etc"}), ErrValidation)
	})
}

func TestBudgetTotal(t *testing.T) {
	assert.InDelta(t, 0.0, Budget{}.Total(), 1e-9)
	assert.InDelta(t, 1500.0, Budget{"Food": 1000, "Transport": 500}.Total(), 1e-9)
}
