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
	"github.com/alexanderramin/chronos/internal/schedule"
)

// defaultFocusScore is assumed when a stop carries no self-reported
// focus.
const defaultFocusScore = 0.7

type timerService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	curve    schedule.EnergyCurve
	observer UseCaseObserver
}

func NewTimerService(sessions repository.SessionRepo, uow db.UnitOfWork, curve schedule.EnergyCurve, observers ...UseCaseObserver) TimerService {
	return &timerService{
		sessions: sessions,
		uow:      uow,
		curve:    curve,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timerService) Start(ctx context.Context, subjectCode, chapterID *string, title string) (*domain.StudySession, error) {
	session := &domain.StudySession{
		ID:          uuid.New().String(),
		SubjectCode: subjectCode,
		ChapterID:   chapterID,
		Title:       title,
		StartedAt:   time.Now().UTC(),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		_, err := txSessions.GetActive(ctx)
		if err == nil {
			return fmt.Errorf("timer already running: %w", repository.ErrConflict)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := txSessions.Create(ctx, session); err != nil {
			return err
		}
		return txSessions.SetActive(ctx, session.ID)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Stop closes the active session and applies every derived write in one
// transaction: stats rollup, streak update for sessions of 30 minutes
// or more, effectiveness sample, achievement check.
func (s *timerService) Stop(ctx context.Context, focus *float64) (session *domain.StudySession, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "timer-stop",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	now := startedAt
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txStats := repository.NewSQLiteStatsRepo(tx)
		txStreak := repository.NewSQLiteStreakRepo(tx)

		active, err := txSessions.GetActive(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no timer running: %w", repository.ErrPrecondition)
			}
			return err
		}

		duration := int(now.Sub(active.StartedAt).Seconds())
		active.StoppedAt = &now
		active.DurationSeconds = duration
		active.IsDeepWork = duration >= domain.DeepWorkMinSeconds
		active.PointsEarned = domain.SessionPoints(duration)
		if err := txSessions.Update(ctx, active); err != nil {
			return err
		}
		if err := txSessions.ClearActive(ctx); err != nil {
			return err
		}

		deepSeconds := 0
		if active.IsDeepWork {
			deepSeconds = duration
		}
		if err := txStats.AddSession(ctx, domain.DateOf(active.StartedAt), duration, deepSeconds, active.PointsEarned); err != nil {
			return err
		}

		streak, err := txStreak.Get(ctx)
		if err != nil {
			return err
		}
		streak.TotalPoints += active.PointsEarned
		if duration >= domain.StreakMinSeconds {
			streak.RecordActivity(now)
		}
		if err := txStreak.Set(ctx, streak); err != nil {
			return err
		}

		sample := &domain.SessionEffectiveness{
			ID:              uuid.New().String(),
			SessionID:       active.ID,
			SubjectCode:     active.SubjectCode,
			TimeOfDay:       domain.ClassifyHour(active.StartedAt.Hour()),
			DayOfWeek:       active.StartedAt.Weekday(),
			DurationMin:     duration / 60,
			FocusScore:      defaultFocusScore,
			EnergyLevel:     s.curve.LevelAt(active.StartedAt.Hour()),
			MaterialCovered: active.Title,
			CreatedAt:       now,
		}
		if focus != nil {
			sample.FocusScore = *focus
		}
		if err := absorbEffectiveness(ctx, tx, sample); err != nil {
			return err
		}

		session = active
		return triggerAchievementCheck(ctx, tx, now, achievementEvent{
			earlyBird: active.StartedAt.Hour() < 7,
			nightOwl:  now.Hour() >= 23,
		})
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *timerService) Status(ctx context.Context) (*TimerStatus, error) {
	active, err := s.sessions.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return &TimerStatus{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &TimerStatus{
		Active:         true,
		Session:        active,
		ElapsedSeconds: int(time.Now().UTC().Sub(active.StartedAt).Seconds()),
	}, nil
}
