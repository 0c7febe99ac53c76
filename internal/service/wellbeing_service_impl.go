package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

// lowScoreThreshold marks a day as unsustainable; overstudyHours is the
// hard "consider stopping" line.
const (
	lowScoreThreshold = 0.4
	overstudyHours    = 10.0
)

type wellbeingService struct {
	wellbeing repository.WellbeingRepo
	stats     repository.StatsRepo
	sessions  repository.SessionRepo
	tasks     repository.TaskRepo
	breaks    repository.BreakRepo
	notifier  Notifier
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewWellbeingService(
	wellbeing repository.WellbeingRepo,
	stats repository.StatsRepo,
	sessions repository.SessionRepo,
	tasks repository.TaskRepo,
	breaks repository.BreakRepo,
	notifier Notifier,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) WellbeingService {
	return &wellbeingService{
		wellbeing: wellbeing,
		stats:     stats,
		sessions:  sessions,
		tasks:     tasks,
		breaks:    breaks,
		notifier:  notifier,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Score computes and persists the wellbeing metric for the date.
// Recomputing the same day overwrites the row, so the daily tick is
// idempotent.
func (s *wellbeingService) Score(ctx context.Context, date time.Time) (*domain.WellbeingMetric, error) {
	day := domain.DateOf(date)
	now := time.Now().UTC()

	studySeconds := 0
	if stats, err := s.stats.Get(ctx, day); err == nil {
		studySeconds = stats.StudySeconds
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	studyHours := float64(studySeconds) / 3600

	breakCount, err := s.breaks.CountCompletedOnDate(ctx, day)
	if err != nil {
		return nil, err
	}
	skippedBreaks, err := s.breaks.CountSkippedOnDate(ctx, day)
	if err != nil {
		return nil, err
	}
	overdue, err := s.tasks.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	daySessions, err := s.sessions.ListInWindow(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	deepWork := 0
	for _, sess := range daySessions {
		if sess.IsDeepWork {
			deepWork++
		}
	}

	metric := &domain.WellbeingMetric{
		Date:             day,
		StudyHours:       studyHours,
		BreakCount:       breakCount,
		OverdueTasks:     overdue,
		DeepWorkSessions: deepWork,
		Score:            domain.WellbeingScore(studyHours, breakCount, overdue),
	}
	metric.Recommendations = wellbeingRecommendations(metric, skippedBreaks)

	if err := s.wellbeing.Upsert(ctx, metric); err != nil {
		return nil, err
	}
	return metric, nil
}

// DailyTick recomputes today's score and routes each recommendation
// through the notification pipeline. Dedup keys make re-runs within a
// day no-ops.
func (s *wellbeingService) DailyTick(ctx context.Context, now time.Time) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "wellbeing-tick",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	now = now.UTC()
	metric, err := s.Score(ctx, now)
	if err != nil {
		return err
	}

	date := domain.DateOf(now).Format("2006-01-02")
	for i, rec := range metric.Recommendations {
		priority := domain.PriorityNormal
		if metric.Score < lowScoreThreshold {
			priority = domain.PriorityHigh
		}
		nErr := s.notifier.Notify(ctx, &domain.Notification{
			Type:     domain.NotifySuggestion,
			Priority: priority,
			Title:    "Wellbeing check",
			Message:  rec,
			DedupKey: fmt.Sprintf("wellbeing:%d:%s", i, date),
		})
		if nErr != nil {
			return nErr
		}
	}

	// Advance or reset the perfectionist counter once the day has tasks
	// to judge.
	perfect, judged, err := s.dayFullyDone(ctx, domain.DateOf(now).AddDate(0, 0, -1))
	if err != nil {
		return err
	}
	if judged {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return triggerAchievementCheck(ctx, tx, now, achievementEvent{perfectDay: &perfect})
		})
	}
	return nil
}

// dayFullyDone reports whether every placed task on the date completed.
// judged is false when the day had no placed tasks at all.
func (s *wellbeingService) dayFullyDone(ctx context.Context, day time.Time) (perfect, judged bool, err error) {
	placed, err := s.tasks.ListPlacedInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return false, false, err
	}
	relevant := 0
	done := 0
	for _, t := range placed {
		if t.Status == domain.TaskCancelled {
			continue
		}
		relevant++
		if t.Status == domain.TaskCompleted {
			done++
		}
	}
	if relevant == 0 {
		return false, false, nil
	}
	return done == relevant, true, nil
}

func wellbeingRecommendations(m *domain.WellbeingMetric, skippedBreaks int) []string {
	var recs []string
	if m.Score < lowScoreThreshold {
		recs = append(recs, "Your wellbeing score is low. Take a 30-minute break before your next session.")
	}
	if m.StudyHours > overstudyHours {
		recs = append(recs, "You have been studying over 10 hours today. Consider stopping for the day.")
	}
	if m.OverdueTasks > 0 {
		recs = append(recs, fmt.Sprintf("You have %d overdue task(s). Tackle those before taking on new work.", m.OverdueTasks))
	}
	if skippedBreaks > 0 {
		recs = append(recs, "You skipped a break today. Don't skip the next one.")
	}
	return recs
}

func (s *wellbeingService) StartBreak(ctx context.Context, typ domain.BreakType, hintMin int) (*domain.BreakSession, error) {
	if !domain.ValidBreakTypes[string(typ)] {
		return nil, &domain.ValidationError{Field: "break_type", Reason: fmt.Sprintf("unknown break type %q", typ)}
	}
	envelope := domain.BreakDurations[typ]
	suggested := envelope.SuggestedMin
	if hintMin > 0 {
		suggested = hintMin
		if suggested > envelope.MaxMin {
			suggested = envelope.MaxMin
		}
	}

	b := &domain.BreakSession{
		ID:                   uuid.New().String(),
		BreakType:            typ,
		StartedAt:            time.Now().UTC(),
		SuggestedDurationMin: suggested,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBreaks := repository.NewSQLiteBreakRepo(tx)
		_, err := txBreaks.GetActive(ctx)
		if err == nil {
			return fmt.Errorf("a break is already running: %w", repository.ErrConflict)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return txBreaks.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *wellbeingService) EndBreak(ctx context.Context, id string) (*domain.BreakSession, error) {
	now := time.Now().UTC()
	var ended *domain.BreakSession
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBreaks := repository.NewSQLiteBreakRepo(tx)
		b, err := txBreaks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if b.EndedAt != nil {
			return fmt.Errorf("break already ended: %w", repository.ErrPrecondition)
		}
		b.EndedAt = &now
		b.ActualDurationMin = int(now.Sub(b.StartedAt).Minutes())
		b.WasCompleted = b.ActualDurationMin >= b.SuggestedDurationMin
		if err := txBreaks.Update(ctx, b); err != nil {
			return err
		}
		ended = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ended, nil
}

func (s *wellbeingService) StartPomodoroWork(ctx context.Context) (*domain.PomodoroStatus, error) {
	return s.setPomodoroPhase(ctx, func(p *domain.PomodoroStatus, now time.Time) {
		p.Phase = domain.PomodoroWork
		p.PhaseStartedAt = &now
	})
}

// StartPomodoroBreak closes a work phase: the cycle counter advances
// and every fourth cycle earns the long break.
func (s *wellbeingService) StartPomodoroBreak(ctx context.Context) (*domain.PomodoroStatus, error) {
	return s.setPomodoroPhase(ctx, func(p *domain.PomodoroStatus, now time.Time) {
		if p.Phase == domain.PomodoroWork {
			p.CyclesCompleted++
		}
		if p.CyclesCompleted > 0 && p.CyclesCompleted%domain.PomodoroCyclesPerLong == 0 {
			p.Phase = domain.PomodoroLongBreak
		} else {
			p.Phase = domain.PomodoroShortBreak
		}
		p.PhaseStartedAt = &now
	})
}

func (s *wellbeingService) StopPomodoro(ctx context.Context) error {
	_, err := s.setPomodoroPhase(ctx, func(p *domain.PomodoroStatus, now time.Time) {
		p.Phase = domain.PomodoroIdle
		p.CyclesCompleted = 0
		p.PhaseStartedAt = nil
	})
	return err
}

func (s *wellbeingService) PomodoroStatus(ctx context.Context) (*domain.PomodoroStatus, error) {
	return s.breaks.GetPomodoro(ctx)
}

func (s *wellbeingService) setPomodoroPhase(ctx context.Context, mutate func(*domain.PomodoroStatus, time.Time)) (*domain.PomodoroStatus, error) {
	now := time.Now().UTC()
	var status *domain.PomodoroStatus
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBreaks := repository.NewSQLiteBreakRepo(tx)
		p, err := txBreaks.GetPomodoro(ctx)
		if err != nil {
			return err
		}
		mutate(p, now)
		if err := txBreaks.SetPomodoro(ctx, p); err != nil {
			return err
		}
		status = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}
