package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/notify"
	"github.com/alexanderramin/chronos/internal/repository"
	"github.com/alexanderramin/chronos/internal/schedule"
	"github.com/alexanderramin/chronos/internal/testutil"
)

// testEnv wires the full service graph over one in-memory database.
type testEnv struct {
	db  *sql.DB
	uow db.UnitOfWork
	hub *notify.Hub

	subjectRepo      repository.SubjectRepo
	chapterRepo      repository.ChapterRepo
	taskRepo         repository.TaskRepo
	revisionRepo     repository.RevisionRepo
	sessionRepo      repository.SessionRepo
	statsRepo        repository.StatsRepo
	streakRepo       repository.StreakRepo
	breakRepo        repository.BreakRepo
	labRepo          repository.LabReportRepo
	notificationRepo repository.NotificationRepo
	achievementRepo  repository.AchievementRepo
	patternRepo      repository.PatternRepo
	effectRepo       repository.EffectivenessRepo
	wellbeingRepo    repository.WellbeingRepo
	memoryRepo       repository.MemoryRepo

	subjects      SubjectService
	tasks         TaskService
	timeline      TimelineService
	planner       PlannerService
	revisions     RevisionService
	timer         TimerService
	wellbeing     WellbeingService
	patterns      PatternService
	notifications NotificationService
	achievements  AchievementService
	labs          LabReportService
	memory        MemoryService
	syllabus      ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	hub := notify.NewHub()
	t.Cleanup(hub.Close)

	env := &testEnv{
		db:  database,
		uow: uow,
		hub: hub,

		subjectRepo:      repository.NewSQLiteSubjectRepo(database),
		chapterRepo:      repository.NewSQLiteChapterRepo(database),
		taskRepo:         repository.NewSQLiteTaskRepo(database),
		revisionRepo:     repository.NewSQLiteRevisionRepo(database),
		sessionRepo:      repository.NewSQLiteSessionRepo(database),
		statsRepo:        repository.NewSQLiteStatsRepo(database),
		streakRepo:       repository.NewSQLiteStreakRepo(database),
		breakRepo:        repository.NewSQLiteBreakRepo(database),
		labRepo:          repository.NewSQLiteLabReportRepo(database),
		notificationRepo: repository.NewSQLiteNotificationRepo(database),
		achievementRepo:  repository.NewSQLiteAchievementRepo(database),
		patternRepo:      repository.NewSQLitePatternRepo(database),
		effectRepo:       repository.NewSQLiteEffectivenessRepo(database),
		wellbeingRepo:    repository.NewSQLiteWellbeingRepo(database),
		memoryRepo:       repository.NewSQLiteMemoryRepo(database),
	}

	builder := schedule.DefaultBuilderConfig()
	placer := schedule.DefaultPlacerConfig()

	env.subjects = NewSubjectService(env.subjectRepo, env.chapterRepo, uow)
	env.timeline = NewTimelineService(env.taskRepo, uow, builder, placer)
	env.tasks = NewTaskService(env.taskRepo, env.timeline, uow)
	env.planner = NewPlannerService(env.subjectRepo, uow, builder, placer)
	env.revisions = NewRevisionService(env.revisionRepo, uow)
	env.timer = NewTimerService(env.sessionRepo, uow, schedule.DefaultEnergyCurve())
	env.notifications = NewNotificationService(
		env.notificationRepo, env.sessionRepo, env.taskRepo, env.revisionRepo,
		env.labRepo, env.statsRepo, env.patternRepo, env.achievementRepo, hub,
	)
	env.wellbeing = NewWellbeingService(
		env.wellbeingRepo, env.statsRepo, env.sessionRepo, env.taskRepo,
		env.breakRepo, env.notifications, uow,
	)
	env.patterns = NewPatternService(env.patternRepo, uow)
	env.achievements = NewAchievementService(env.achievementRepo, uow)
	env.labs = NewLabReportService(env.labRepo)
	env.memory = NewMemoryService(env.memoryRepo)
	env.syllabus = NewImportService(uow)
	return env
}

// seedSubjectChapter creates a subject plus one chapter with its
// progress row.
func (env *testEnv) seedSubjectChapter(t *testing.T, opts ...testutil.SubjectOption) (*domain.Subject, *domain.Chapter) {
	t.Helper()
	ctx := context.Background()
	subject := testutil.NewTestSubject("Calculus", opts...)
	require.NoError(t, env.subjects.CreateSubject(ctx, subject))
	chapter, err := env.subjects.AddChapter(ctx, subject.Code, 1, "Limits")
	require.NoError(t, err)
	return subject, chapter
}

// seedStoppedSession inserts a finished session directly, bypassing the
// timer.
func (env *testEnv) seedStoppedSession(t *testing.T, start time.Time, durationSeconds int) *domain.StudySession {
	t.Helper()
	sess := testutil.NewTestSession("past session",
		testutil.WithStartedAt(start),
		testutil.WithStopped(start.Add(time.Duration(durationSeconds)*time.Second), durationSeconds))
	sess.IsDeepWork = durationSeconds >= domain.DeepWorkMinSeconds
	require.NoError(t, env.sessionRepo.Create(context.Background(), sess))
	return sess
}
