package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/chronos/internal/cli"
	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/notify"
	"github.com/alexanderramin/chronos/internal/repository"
	"github.com/alexanderramin/chronos/internal/schedule"
	"github.com/alexanderramin/chronos/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.chronos/chronos.db
	dbPath := os.Getenv("CHRONOS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".chronos", "chronos.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	chapterRepo := repository.NewSQLiteChapterRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	labRepo := repository.NewSQLiteLabReportRepo(database)
	revisionRepo := repository.NewSQLiteRevisionRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	statsRepo := repository.NewSQLiteStatsRepo(database)
	breakRepo := repository.NewSQLiteBreakRepo(database)
	wellbeingRepo := repository.NewSQLiteWellbeingRepo(database)
	patternRepo := repository.NewSQLitePatternRepo(database)
	notificationRepo := repository.NewSQLiteNotificationRepo(database)
	achievementRepo := repository.NewSQLiteAchievementRepo(database)
	memoryRepo := repository.NewSQLiteMemoryRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	hub := notify.NewHub()
	defer hub.Close()

	if err := seedNotificationPreferences(notificationRepo); err != nil {
		return fmt.Errorf("seeding notification preferences: %w", err)
	}

	observer := service.NewLogUseCaseObserver(os.Stderr)

	builder := schedule.DefaultBuilderConfig()
	placer := schedule.DefaultPlacerConfig()

	notificationSvc := service.NewNotificationService(
		notificationRepo, sessionRepo, taskRepo, revisionRepo,
		labRepo, statsRepo, patternRepo, achievementRepo, hub, observer,
	)
	timelineSvc := service.NewTimelineService(taskRepo, uow, builder, placer, observer)

	app := &cli.App{
		Subjects:      service.NewSubjectService(subjectRepo, chapterRepo, uow),
		Tasks:         service.NewTaskService(taskRepo, timelineSvc, uow),
		Labs:          service.NewLabReportService(labRepo),
		Timeline:      timelineSvc,
		Planner:       service.NewPlannerService(subjectRepo, uow, builder, placer, observer),
		Revisions:     service.NewRevisionService(revisionRepo, uow),
		Timer:         service.NewTimerService(sessionRepo, uow, schedule.DefaultEnergyCurve(), observer),
		Wellbeing: service.NewWellbeingService(
			wellbeingRepo, statsRepo, sessionRepo, taskRepo,
			breakRepo, notificationSvc, uow, observer,
		),
		Patterns:      service.NewPatternService(patternRepo, uow),
		Notifications: notificationSvc,
		Achievements:  service.NewAchievementService(achievementRepo, uow),
		Memory:        service.NewMemoryService(memoryRepo),
		Syllabus:      service.NewImportService(uow),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// seedNotificationPreferences installs the stock per-type preferences
// without touching rows the user has already changed.
func seedNotificationPreferences(repo repository.NotificationRepo) error {
	ctx := context.Background()
	for _, p := range domain.DefaultNotificationPreferences() {
		pref := p
		_, err := repo.GetPreference(ctx, pref.Type)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		if err := repo.UpsertPreference(ctx, &pref); err != nil {
			return err
		}
	}
	return nil
}
