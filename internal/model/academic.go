package model

// TaskStatus is the lifecycle state of an assignment or exam.
type TaskStatus string

// Task statuses.
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// GoalStatus is shared by academic and financial goals.
type GoalStatus string

// Goal statuses.
const (
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

// GoalTypeCGPA marks the academic goal that stores the CGPA target.
const GoalTypeCGPA = "cgpa"

// DefaultCGPAGoal is used when no CGPA goal has been set.
const DefaultCGPAGoal = 8.0

// Course is a course the student is or was enrolled in.
type Course struct {
	IsCurrent *bool `json:"is_current,omitempty"`
	Base
	Code       string `json:"code" validate:"required,notblank"`
	Name       string `json:"name" validate:"required,notblank"`
	Instructor string `json:"instructor,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Credits    int    `json:"credits" validate:"gte=0"`
}

// Current reports whether the course is in progress; absent means current.
func (c Course) Current() bool {
	return c.IsCurrent == nil || *c.IsCurrent
}

// Task is an assignment, exam or other deliverable.
type Task struct {
	DueDate Date `json:"due_date"`
	Base
	Title       string     `json:"title" validate:"required,notblank"`
	Type        string     `json:"type"`
	CourseCode  string     `json:"course_code,omitempty"`
	Status      TaskStatus `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string     `json:"priority,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Done reports whether the task is completed.
func (t Task) Done() bool { return t.Status == TaskCompleted }

// SemesterPerformance records one semester's grade point average.
type SemesterPerformance struct {
	Base
	Semester      string  `json:"semester" validate:"required,notblank"`
	SemesterIndex int     `json:"semester_index" validate:"gte=1"`
	SGPA          float64 `json:"sgpa" validate:"gte=0,lte=10"`
	Credits       int     `json:"credits" validate:"gt=0"`
	CGPA          float64 `json:"cgpa" validate:"gte=0,lte=10"`
}

// StudySession is a block of logged study time.
type StudySession struct {
	Date Date `json:"date"`
	Base
	Subject string  `json:"subject"`
	Notes   string  `json:"notes,omitempty"`
	Hours   float64 `json:"hours" validate:"gte=0,lte=24"`
}

// AcademicGoal tracks a numeric academic target.
type AcademicGoal struct {
	TargetDate     Date `json:"target_date"`
	CompletionDate Date `json:"completion_date"`
	Base
	GoalType     string     `json:"goal_type" validate:"required,notblank"`
	Description  string     `json:"description,omitempty"`
	Status       GoalStatus `json:"status"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
}
