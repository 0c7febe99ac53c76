package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	timeline TimelineService
	uow      db.UnitOfWork
}

// NewTaskService wires task CRUD and placement. The timeline service
// performs the re-placement sweep behind RescheduleAll.
func NewTaskService(tasks repository.TaskRepo, timeline TimelineService, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, timeline: timeline, uow: uow}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.TaskType == "" {
		t.TaskType = domain.TaskStudy
	}
	if t.Status == "" {
		t.Status = domain.TaskPending
	}
	if t.Priority == 0 {
		t.Priority = 5
	}
	if err := t.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) List(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return s.tasks.ListByStatus(ctx, status)
}

func (s *taskService) Complete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t.Status == domain.TaskCompleted {
			return nil
		}
		if t.Status == domain.TaskCancelled {
			return fmt.Errorf("task is cancelled: %w", repository.ErrPrecondition)
		}
		t.Status = domain.TaskCompleted
		t.UpdatedAt = now
		if err := txTasks.Update(ctx, t); err != nil {
			return err
		}
		return triggerAchievementCheck(ctx, tx, now, achievementEvent{})
	})
}

// Place assigns [start, start+duration) to the task. Placing a task at
// its current start is a no-op; anything overlapping another placed
// task is a conflict.
func (s *taskService) Place(ctx context.Context, id string, start time.Time) error {
	start = start.UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t.Status == domain.TaskCompleted || t.Status == domain.TaskCancelled {
			return fmt.Errorf("task %s is %s: %w", id, t.Status, repository.ErrPrecondition)
		}
		if t.Placed() && t.ScheduledStart.Equal(start) {
			return nil
		}

		end := start.Add(time.Duration(t.DurationMin) * time.Minute)
		overlaps, err := txTasks.AnyOverlapping(ctx, start, end, t.ID)
		if err != nil {
			return err
		}
		if overlaps {
			return fmt.Errorf("slot %s overlaps a placed task: %w",
				start.Format(time.RFC3339), repository.ErrConflict)
		}

		t.ScheduledStart = &start
		t.ScheduledEnd = &end
		t.UpdatedAt = time.Now().UTC()
		return txTasks.Update(ctx, t)
	})
}

// RescheduleAll clears the placement of every non-completed task on the
// date, then re-runs the optimization sweep. Completed and cancelled
// tasks are untouched.
func (s *taskService) RescheduleAll(ctx context.Context, date time.Time, reason string) (*RescheduleReport, error) {
	day := domain.DateOf(date)
	report := &RescheduleReport{Reason: reason}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		placed, err := txTasks.ListPlacedInRange(ctx, day, day.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, t := range placed {
			if t.Status == domain.TaskCompleted || t.Status == domain.TaskCancelled {
				continue
			}
			t.ScheduledStart = nil
			t.ScheduledEnd = nil
			t.Status = domain.TaskPending
			t.UpdatedAt = now
			if err := txTasks.Update(ctx, t); err != nil {
				return err
			}
			report.Cleared++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := s.timeline.Optimize(ctx, day)
	if err != nil {
		return nil, err
	}
	report.Replaced = result.ChangesMade
	report.Unplaced = result.Unplaced
	return report, nil
}
