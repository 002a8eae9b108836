package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/harmony/internal/aggregate"
	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
)

// Academic manages courses, tasks, grades, study time and academic goals.
type Academic struct {
	s         *session
	courses   *storage.Collection[model.Course, *model.Course]
	tasks     *storage.Collection[model.Task, *model.Task]
	semesters *storage.Collection[model.SemesterPerformance, *model.SemesterPerformance]
	sessions  *storage.Collection[model.StudySession, *model.StudySession]
	goals     *storage.Collection[model.AcademicGoal, *model.AcademicGoal]
}

func newAcademic(s *session) *Academic {
	ns := service.NamespaceAcademic
	return &Academic{
		s:         s,
		courses:   newCollection[model.Course](s, ns, keyCourses),
		tasks:     newCollection[model.Task](s, ns, keyTasks),
		semesters: newCollection[model.SemesterPerformance](s, ns, keyPerformance),
		sessions:  newCollection[model.StudySession](s, ns, keyStudySessions),
		goals:     newCollection[model.AcademicGoal](s, ns, keyAcademicGoals),
	}
}

// Courses lists courses, optionally only the current ones.
func (a *Academic) Courses(ctx context.Context, currentOnly bool) ([]model.Course, error) {
	courses, err := a.courses.List(ctx)
	if err != nil || !currentOnly {
		return courses, err
	}
	current := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if c.Current() {
			current = append(current, c)
		}
	}
	return current, nil
}

// AddCourse stores a new course.
func (a *Academic) AddCourse(ctx context.Context, course model.Course) (model.Course, error) {
	added, err := a.courses.Add(ctx, course)
	return added, a.s.changed(err)
}

// UpdateCourse applies a partial update to a course.
func (a *Academic) UpdateCourse(ctx context.Context, id string, patch map[string]any) (bool, error) {
	ok, err := a.courses.Update(ctx, id, patch)
	return ok, a.s.changed(err)
}

// DeleteCourse removes a course.
func (a *Academic) DeleteCourse(ctx context.Context, id string) (bool, error) {
	ok, err := a.courses.Delete(ctx, id)
	return ok, a.s.changed(err)
}

// CourseByCode finds a course by its code, ignoring case.
func (a *Academic) CourseByCode(ctx context.Context, code string) (model.Course, bool, error) {
	courses, err := a.courses.List(ctx)
	if err != nil {
		return model.Course{}, false, err
	}
	for _, c := range courses {
		if strings.EqualFold(c.Code, strings.TrimSpace(code)) {
			return c, true, nil
		}
	}
	return model.Course{}, false, nil
}

// Tasks lists every task.
func (a *Academic) Tasks(ctx context.Context) ([]model.Task, error) {
	return a.tasks.List(ctx)
}

// AddTask stores a new task; the status defaults to pending.
func (a *Academic) AddTask(ctx context.Context, task model.Task) (model.Task, error) {
	if task.Status == "" {
		task.Status = model.TaskPending
	}
	added, err := a.tasks.Add(ctx, task)
	return added, a.s.changed(err)
}

// UpdateTask applies a partial update to a task.
func (a *Academic) UpdateTask(ctx context.Context, id string, patch map[string]any) (bool, error) {
	ok, err := a.tasks.Update(ctx, id, patch)
	return ok, a.s.changed(err)
}

// CompleteTask marks a task completed.
func (a *Academic) CompleteTask(ctx context.Context, id string) (bool, error) {
	return a.UpdateTask(ctx, id, map[string]any{"status": string(model.TaskCompleted)})
}

// DeleteTask removes a task.
func (a *Academic) DeleteTask(ctx context.Context, id string) (bool, error) {
	ok, err := a.tasks.Delete(ctx, id)
	return ok, a.s.changed(err)
}

// UpcomingTasks returns incomplete tasks ordered by due date, undated last.
// A positive limit caps the result.
func (a *Academic) UpcomingTasks(ctx context.Context, limit int) ([]model.Task, error) {
	tasks, err := a.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Done() {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		di, dj := open[i].DueDate, open[j].DueDate
		if di.IsZero() != dj.IsZero() {
			return dj.IsZero()
		}
		return di.Before(dj.Time)
	})
	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}
	return open, nil
}

// Semesters returns semester results ordered by semester index.
func (a *Academic) Semesters(ctx context.Context) ([]model.SemesterPerformance, error) {
	entries, err := a.semesters.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.SortedSemesters(entries), nil
}

// AddSemester records a semester result. The stored cgpa is computed from the
// entries present at insertion time and is not revised later.
func (a *Academic) AddSemester(ctx context.Context, semester string, index int, sgpa float64, credits int) (model.SemesterPerformance, error) {
	var added model.SemesterPerformance
	_, err := a.semesters.Edit(ctx, func(existing []model.SemesterPerformance) ([]model.SemesterPerformance, error) {
		added = model.SemesterPerformance{
			Base:          model.Base{ID: model.NewID(), CreatedAt: a.s.now()},
			Semester:      semester,
			SemesterIndex: index,
			SGPA:          sgpa,
			Credits:       credits,
			CGPA:          aggregate.WeightedCGPA(existing, sgpa, credits),
		}
		return append(existing, added), nil
	})
	if err != nil {
		return model.SemesterPerformance{}, err
	}
	return added, a.s.changed(nil)
}

// CurrentCGPA returns the cgpa of the latest semester, or 0.
func (a *Academic) CurrentCGPA(ctx context.Context) (float64, error) {
	entries, err := a.semesters.List(ctx)
	if err != nil {
		return 0, err
	}
	return aggregate.CurrentCGPA(entries), nil
}

// CGPAGoal returns the cgpa target, or model.DefaultCGPAGoal when unset.
func (a *Academic) CGPAGoal(ctx context.Context) (float64, error) {
	goals, err := a.goals.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, g := range goals {
		if g.GoalType == model.GoalTypeCGPA {
			return g.TargetValue, nil
		}
	}
	return model.DefaultCGPAGoal, nil
}

// SetCGPAGoal creates or replaces the cgpa target.
func (a *Academic) SetCGPAGoal(ctx context.Context, target float64) error {
	if target < 0 || target > 10 {
		return fmt.Errorf("%w: cgpa goal must be between 0 and 10", common.ErrInvalidInput)
	}
	_, err := a.goals.Edit(ctx, func(goals []model.AcademicGoal) ([]model.AcademicGoal, error) {
		for i := range goals {
			if goals[i].GoalType == model.GoalTypeCGPA {
				goals[i].TargetValue = target
				return goals, nil
			}
		}
		return append(goals, model.AcademicGoal{
			GoalType:    model.GoalTypeCGPA,
			Description: "Target CGPA",
			Status:      model.GoalInProgress,
			TargetValue: target,
		}), nil
	})
	return a.s.changed(err)
}

// AddStudySession logs study time; the date defaults to today.
func (a *Academic) AddStudySession(ctx context.Context, session model.StudySession) (model.StudySession, error) {
	if session.Date.IsZero() {
		session.Date = a.s.today()
	}
	added, err := a.sessions.Add(ctx, session)
	return added, a.s.changed(err)
}

// StudySessions returns logged sessions ordered by date.
func (a *Academic) StudySessions(ctx context.Context) ([]model.StudySession, error) {
	sessions, err := a.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date.Time)
	})
	return sessions, nil
}

// StudyHoursBySubject totals study hours per subject, largest first.
func (a *Academic) StudyHoursBySubject(ctx context.Context) ([]aggregate.CategoryTotal, error) {
	sessions, err := a.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.StudyHoursBySubject(sessions), nil
}

// Goals lists academic goals.
func (a *Academic) Goals(ctx context.Context) ([]model.AcademicGoal, error) {
	return a.goals.List(ctx)
}

// AddGoal stores a new academic goal in progress.
func (a *Academic) AddGoal(ctx context.Context, goal model.AcademicGoal) (model.AcademicGoal, error) {
	if goal.Status == "" {
		goal.Status = model.GoalInProgress
	}
	added, err := a.goals.Add(ctx, goal)
	return added, a.s.changed(err)
}

// UpdateGoalProgress sets a goal's current value. Reaching the target marks
// it completed with today's date.
func (a *Academic) UpdateGoalProgress(ctx context.Context, id string, current float64) (bool, error) {
	today := a.s.today()
	ok, err := a.goals.Mutate(ctx, id, func(g *model.AcademicGoal) error {
		g.CurrentValue = current
		if current >= g.TargetValue {
			g.Status = model.GoalCompleted
			g.CompletionDate = today
		}
		return nil
	})
	return ok, a.s.changed(err)
}

// DeleteGoal removes an academic goal.
func (a *Academic) DeleteGoal(ctx context.Context, id string) (bool, error) {
	ok, err := a.goals.Delete(ctx, id)
	return ok, a.s.changed(err)
}

// StudyHoursLastWeek totals study time over the trailing seven days.
func (a *Academic) StudyHoursLastWeek(ctx context.Context) (float64, error) {
	sessions, err := a.sessions.List(ctx)
	if err != nil {
		return 0, err
	}
	since := a.s.today().AddDate(0, 0, -7)
	hours, _ := aggregate.StudyHoursSince(sessions, since)
	return hours, nil
}
