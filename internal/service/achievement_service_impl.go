package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

type achievementService struct {
	achievements repository.AchievementRepo
	uow          db.UnitOfWork
}

func NewAchievementService(achievements repository.AchievementRepo, uow db.UnitOfWork) AchievementService {
	return &achievementService{achievements: achievements, uow: uow}
}

func (s *achievementService) Check(ctx context.Context) ([]string, error) {
	var awarded []string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		awarded, err = evaluateAchievements(ctx, tx, time.Now().UTC(), achievementEvent{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

func (s *achievementService) List(ctx context.Context) ([]*domain.UserAchievement, error) {
	return s.achievements.List(ctx)
}

func (s *achievementService) Streak(ctx context.Context) (*domain.UserStreak, error) {
	var streak *domain.UserStreak
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		streak, err = repository.NewSQLiteStreakRepo(tx).Get(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return streak, nil
}

// achievementEvent carries the one-shot signals the counters cannot
// reconstruct from stored state.
type achievementEvent struct {
	// earlyBird: a session started before 07:00.
	earlyBird bool
	// nightOwl: a session ended at or after 23:00.
	nightOwl bool
	// perfectDay, when set, advances (true) or resets (false) the
	// perfectionist day counter.
	perfectDay *bool
}

// evaluateAchievements walks the catalog against current counters inside
// the caller's transaction and returns codes newly awarded. Completed
// achievements are never re-awarded; locked ones wait for their
// prerequisite.
func evaluateAchievements(ctx context.Context, tx db.DBTX, now time.Time, ev achievementEvent) ([]string, error) {
	achievements := repository.NewSQLiteAchievementRepo(tx)
	sessions := repository.NewSQLiteSessionRepo(tx)
	tasks := repository.NewSQLiteTaskRepo(tx)
	revisions := repository.NewSQLiteRevisionRepo(tx)
	streakRepo := repository.NewSQLiteStreakRepo(tx)

	streak, err := streakRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	current := make(map[string]*domain.UserAchievement)
	existing, err := achievements.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		current[a.Code] = a
	}

	var awarded []string
	pointsAwarded := 0
	for _, def := range domain.AchievementCatalog() {
		if def.PrerequisiteCode != "" {
			prereq := current[def.PrerequisiteCode]
			if prereq == nil || !prereq.IsComplete {
				continue
			}
		}

		a := current[def.Code]
		if a == nil {
			a = &domain.UserAchievement{Code: def.Code}
		}
		if a.IsComplete {
			continue
		}

		progress, err := achievementProgress(ctx, def, a, ev, streak, sessions, tasks, revisions)
		if err != nil {
			return nil, err
		}
		if progress == a.ProgressValue && a.UpdatedAt != (time.Time{}) {
			continue
		}

		a.ProgressValue = progress
		a.UpdatedAt = now
		if progress >= def.ThresholdValue {
			a.IsComplete = true
			a.EarnedAt = &now
			a.Notified = false
			awarded = append(awarded, def.Code)
			pointsAwarded += def.Points
		}
		if err := achievements.Upsert(ctx, a); err != nil {
			return nil, err
		}
		current[def.Code] = a
	}

	if pointsAwarded > 0 {
		streak.TotalPoints += pointsAwarded
		if err := streakRepo.Set(ctx, streak); err != nil {
			return nil, err
		}
	}
	return awarded, nil
}

func achievementProgress(
	ctx context.Context,
	def domain.AchievementDefinition,
	a *domain.UserAchievement,
	ev achievementEvent,
	streak *domain.UserStreak,
	sessions repository.SessionRepo,
	tasks repository.TaskRepo,
	revisions repository.RevisionRepo,
) (int, error) {
	switch def.Category {
	case domain.CategoryStreak:
		return streak.CurrentStreak, nil
	case domain.CategoryStudy:
		return sessions.CountDeepWork(ctx)
	case domain.CategoryRevision:
		return revisions.CountFullyRevisedChapters(ctx)
	case domain.CategorySpecial:
		switch def.Code {
		case "early_bird":
			if ev.earlyBird {
				return a.ProgressValue + 1, nil
			}
		case "night_owl":
			if ev.nightOwl {
				return a.ProgressValue + 1, nil
			}
		}
		return a.ProgressValue, nil
	case domain.CategoryGoal:
		if def.Code == "perfectionist" {
			if ev.perfectDay == nil {
				return a.ProgressValue, nil
			}
			if *ev.perfectDay {
				return a.ProgressValue + 1, nil
			}
			return 0, nil
		}
		return tasks.CountCompleted(ctx)
	}
	return a.ProgressValue, nil
}

// triggerAchievementCheck runs the evaluator and swallows a missing
// streak register, which only happens on an unmigrated store.
func triggerAchievementCheck(ctx context.Context, tx db.DBTX, now time.Time, ev achievementEvent) error {
	_, err := evaluateAchievements(ctx, tx, now, ev)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
