package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Subjects      service.SubjectService
	Tasks         service.TaskService
	Labs          service.LabReportService
	Timeline      service.TimelineService
	Planner       service.PlannerService
	Revisions     service.RevisionService
	Timer         service.TimerService
	Wellbeing     service.WellbeingService
	Patterns      service.PatternService
	Notifications service.NotificationService
	Achievements  service.AchievementService
	Memory        service.MemoryService
	Syllabus      service.ImportService

	// IsInteractive reports whether stdin is a terminal; serve uses it
	// to decide whether to echo delivered notifications.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "chronos" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "chronos",
		Short: "Personal study planner and session tracker",
	}

	root.AddCommand(
		newSubjectCmd(app),
		newChapterCmd(app),
		newTaskCmd(app),
		newLabCmd(app),
		newTimelineCmd(app),
		newPlanCmd(app),
		newReviseCmd(app),
		newTimerCmd(app),
		newWellbeingCmd(app),
		newBreakCmd(app),
		newPomodoroCmd(app),
		newPatternsCmd(app),
		newNotificationsCmd(app),
		newAchievementsCmd(app),
		newMemoryCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}
