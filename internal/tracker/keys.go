package tracker

// Document keys within each namespace.
const (
	keyProfile = "profile"

	keyCourses       = "courses"
	keyTasks         = "tasks"
	keyPerformance   = "performance"
	keyStudySessions = "study_sessions"
	keyAcademicGoals = "goals"

	keyTransactions   = "transactions"
	keyBudget         = "budget"
	keyFinancialAid   = "aid"
	keyFeePayments    = "fees"
	keyFinancialGoals = "goals"

	keyMood     = "mood"
	keySleep    = "sleep"
	keyCoping   = "coping_strategies"
	keyHabits   = "habits"
	keyCareer   = "preferences"
	keySkills   = "skills"
	keyExp      = "experiences"
	keyOpps     = "opportunities"
	keyDir      = "directory"
	keyBookmark = "bookmarks"
	keyUsage    = "usage_history"
)
