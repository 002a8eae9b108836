package recommend

import (
	"context"

	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/tracker"
)

// AcademicSnapshot is the academic state the rules read.
type AcademicSnapshot struct {
	Tasks     []model.Task
	Semesters []model.SemesterPerformance
	Sessions  []model.StudySession
}

// FinancialSnapshot is the financial state the rules read.
type FinancialSnapshot struct {
	Budget       model.Budget
	Transactions []model.Transaction
	Aid          []model.FinancialAid
	Goals        []model.FinancialGoal
}

// WellnessSnapshot is the wellness state the rules read.
type WellnessSnapshot struct {
	Moods []model.MoodEntry
	Sleep []model.SleepEntry
}

// CareerSnapshot is the career state the rules read.
type CareerSnapshot struct {
	Preferences model.CareerPreferences
	Profile     model.Profile
	Skills      []model.Skill
	Experiences []model.Experience
}

// Source loads per-domain snapshots of a student.
type Source interface {
	Academic(ctx context.Context, studentID string) (AcademicSnapshot, error)
	Financial(ctx context.Context, studentID string) (FinancialSnapshot, error)
	Wellness(ctx context.Context, studentID string) (WellnessSnapshot, error)
	Career(ctx context.Context, studentID string) (CareerSnapshot, error)
}

// StoreSource reads snapshots from a document store.
type StoreSource struct {
	store service.DocumentStore
}

// NewStoreSource creates a Source backed by store.
func NewStoreSource(store service.DocumentStore) *StoreSource {
	return &StoreSource{store: store}
}

func (s *StoreSource) student(studentID string) (*tracker.Student, error) {
	return tracker.New(s.store, studentID)
}

// Academic implements Source.
func (s *StoreSource) Academic(ctx context.Context, studentID string) (AcademicSnapshot, error) {
	st, err := s.student(studentID)
	if err != nil {
		return AcademicSnapshot{}, err
	}
	var snap AcademicSnapshot
	if snap.Tasks, err = st.Academic.Tasks(ctx); err != nil {
		return AcademicSnapshot{}, err
	}
	if snap.Semesters, err = st.Academic.Semesters(ctx); err != nil {
		return AcademicSnapshot{}, err
	}
	if snap.Sessions, err = st.Academic.StudySessions(ctx); err != nil {
		return AcademicSnapshot{}, err
	}
	return snap, nil
}

// Financial implements Source.
func (s *StoreSource) Financial(ctx context.Context, studentID string) (FinancialSnapshot, error) {
	st, err := s.student(studentID)
	if err != nil {
		return FinancialSnapshot{}, err
	}
	var snap FinancialSnapshot
	if snap.Budget, err = st.Finance.Budget(ctx); err != nil {
		return FinancialSnapshot{}, err
	}
	if snap.Transactions, err = st.Finance.Transactions(ctx, tracker.TransactionFilter{}); err != nil {
		return FinancialSnapshot{}, err
	}
	if snap.Aid, err = st.Finance.Aid(ctx); err != nil {
		return FinancialSnapshot{}, err
	}
	if snap.Goals, err = st.Finance.Goals(ctx); err != nil {
		return FinancialSnapshot{}, err
	}
	return snap, nil
}

// Wellness implements Source.
func (s *StoreSource) Wellness(ctx context.Context, studentID string) (WellnessSnapshot, error) {
	st, err := s.student(studentID)
	if err != nil {
		return WellnessSnapshot{}, err
	}
	var snap WellnessSnapshot
	if snap.Moods, err = st.Wellness.Moods(ctx); err != nil {
		return WellnessSnapshot{}, err
	}
	if snap.Sleep, err = st.Wellness.Sleep(ctx); err != nil {
		return WellnessSnapshot{}, err
	}
	return snap, nil
}

// Career implements Source.
func (s *StoreSource) Career(ctx context.Context, studentID string) (CareerSnapshot, error) {
	st, err := s.student(studentID)
	if err != nil {
		return CareerSnapshot{}, err
	}
	var snap CareerSnapshot
	if snap.Profile, _, err = tracker.NewProfiles(s.store).Load(ctx, studentID); err != nil {
		return CareerSnapshot{}, err
	}
	if snap.Preferences, err = st.Career.Preferences(ctx); err != nil {
		return CareerSnapshot{}, err
	}
	if snap.Skills, err = st.Career.Skills(ctx, ""); err != nil {
		return CareerSnapshot{}, err
	}
	if snap.Experiences, err = st.Career.Experiences(ctx, ""); err != nil {
		return CareerSnapshot{}, err
	}
	return snap, nil
}
