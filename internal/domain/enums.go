package domain

type SubjectType string

const (
	SubjectPracticeHeavy SubjectType = "practice_heavy"
	SubjectConceptHeavy  SubjectType = "concept_heavy"
)

// ValidSubjectTypes is the canonical set of accepted subject type strings.
var ValidSubjectTypes = map[string]bool{
	"practice_heavy": true, "concept_heavy": true,
}

type ReadingStatus string

const (
	ReadingNotStarted ReadingStatus = "not_started"
	ReadingInProgress ReadingStatus = "in_progress"
	ReadingCompleted  ReadingStatus = "completed"
)

type AssignmentStatus string

const (
	AssignmentLocked     AssignmentStatus = "locked"
	AssignmentAvailable  AssignmentStatus = "available"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentSubmitted  AssignmentStatus = "submitted"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type TaskType string

const (
	TaskStudy      TaskType = "study"
	TaskRevision   TaskType = "revision"
	TaskPractice   TaskType = "practice"
	TaskAssignment TaskType = "assignment"
	TaskLabWork    TaskType = "lab_work"
	TaskBreak      TaskType = "break"
	TaskFreeTime   TaskType = "free_time"
)

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[string]bool{
	"study": true, "revision": true, "practice": true,
	"assignment": true, "lab_work": true, "break": true,
	"free_time": true,
}

// ActivityType labels a timeline block. The set is closed; the timeline
// builder refuses anything outside it.
type ActivityType string

const (
	ActivitySleep       ActivityType = "sleep"
	ActivityWakeRoutine ActivityType = "wake_routine"
	ActivityBreakfast   ActivityType = "breakfast"
	ActivityLunch       ActivityType = "lunch"
	ActivityDinner      ActivityType = "dinner"
	ActivityUniversity  ActivityType = "university"
	ActivityStudy       ActivityType = "study"
	ActivityRevision    ActivityType = "revision"
	ActivityPractice    ActivityType = "practice"
	ActivityAssignment  ActivityType = "assignment"
	ActivityLabWork     ActivityType = "lab_work"
	ActivityDeepWork    ActivityType = "deep_work"
	ActivityBreak       ActivityType = "break"
	ActivityFreeTime    ActivityType = "free_time"
)

type TimeOfDay string

const (
	EarlyMorning TimeOfDay = "early_morning"
	Morning      TimeOfDay = "morning"
	Afternoon    TimeOfDay = "afternoon"
	Evening      TimeOfDay = "evening"
	Night        TimeOfDay = "night"
	LateNight    TimeOfDay = "late_night"
)

type ClassType string

const (
	ClassLecture  ClassType = "lecture"
	ClassLab      ClassType = "lab"
	ClassTutorial ClassType = "tutorial"
)

type LabReportStatus string

const (
	LabReportPending   LabReportStatus = "pending"
	LabReportDrafting  LabReportStatus = "drafting"
	LabReportSubmitted LabReportStatus = "submitted"
)

type Urgency string

const (
	UrgencyUrgent Urgency = "urgent"
	UrgencySoon   Urgency = "soon"
	UrgencyNormal Urgency = "normal"
)

type BreakType string

const (
	BreakShort      BreakType = "short"
	BreakPomodoro   BreakType = "pomodoro"
	BreakMeal       BreakType = "meal"
	BreakExercise   BreakType = "exercise"
	BreakMeditation BreakType = "meditation"
	BreakWalk       BreakType = "walk"
	BreakLong       BreakType = "long"
)

// ValidBreakTypes is the canonical set of accepted break type strings.
var ValidBreakTypes = map[string]bool{
	"short": true, "pomodoro": true, "meal": true, "exercise": true,
	"meditation": true, "walk": true, "long": true,
}

type PomodoroPhase string

const (
	PomodoroIdle       PomodoroPhase = "idle"
	PomodoroWork       PomodoroPhase = "work"
	PomodoroShortBreak PomodoroPhase = "short_break"
	PomodoroLongBreak  PomodoroPhase = "long_break"
)

type NotificationType string

const (
	NotifyReminder    NotificationType = "reminder"
	NotifyAchievement NotificationType = "achievement"
	NotifySuggestion  NotificationType = "suggestion"
	NotifyWarning     NotificationType = "warning"
	NotifyDeadline    NotificationType = "deadline"
	NotifyBreak       NotificationType = "break"
	NotifyMotivation  NotificationType = "motivation"
)

// ValidNotificationTypes is the canonical set of accepted notification
// type strings.
var ValidNotificationTypes = map[string]bool{
	"reminder": true, "achievement": true, "suggestion": true,
	"warning": true, "deadline": true, "break": true, "motivation": true,
}

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

type AchievementCategory string

const (
	CategoryStreak   AchievementCategory = "streak"
	CategoryStudy    AchievementCategory = "study"
	CategoryGoal     AchievementCategory = "goal"
	CategoryRevision AchievementCategory = "revision"
	CategorySpecial  AchievementCategory = "special"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type RecommendationKind string

const (
	RecommendTiming       RecommendationKind = "timing"
	RecommendDuration     RecommendationKind = "duration"
	RecommendBreak        RecommendationKind = "break"
	RecommendSubjectOrder RecommendationKind = "subject_order"
)
