package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
	"github.com/alexanderramin/chronos/internal/schedule"
)

type plannerService struct {
	subjects repository.SubjectRepo
	uow      db.UnitOfWork
	builder  schedule.BuilderConfig
	placer   schedule.PlacerConfig
	observer UseCaseObserver
}

func NewPlannerService(subjects repository.SubjectRepo, uow db.UnitOfWork, builder schedule.BuilderConfig, placer schedule.PlacerConfig, observers ...UseCaseObserver) PlannerService {
	return &plannerService{
		subjects: subjects,
		uow:      uow,
		builder:  builder,
		placer:   placer,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Backward distributes the requested hours across the days before the
// deadline with rising intensity, committing each block as a placed
// exam-prep task. Blocks never exceed the study block cap and leave
// break slack between them.
func (s *plannerService) Backward(ctx context.Context, req BackwardRequest) (result *schedule.PlanResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "planner-backward",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"subject":  req.SubjectCode,
				"deadline": req.Deadline.Format(time.RFC3339),
				"hours":    req.Hours,
			},
		})
	}()

	if req.Hours <= 0 {
		return nil, &domain.ValidationError{Field: "hours", Reason: "must be positive"}
	}
	requiredMin := int(math.Round(req.Hours * 60))
	now := startedAt
	deadline := req.Deadline.UTC()

	item := schedule.PendingItem{
		ID:          uuid.New().String(),
		Kind:        schedule.KindExamPrep,
		Title:       req.Title,
		SubjectCode: req.SubjectCode,
		DurationMin: defaultExamPrepMin,
		Deadline:    &deadline,
	}
	if req.Title == "" {
		item.Title = "Exam prep: " + req.SubjectCode
	}

	var days []schedule.DayBudget
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSubjects := repository.NewSQLiteSubjectRepo(tx)

		if req.SubjectCode != "" {
			subject, err := txSubjects.GetByCode(ctx, req.SubjectCode)
			if err != nil {
				return err
			}
			item.SubjectType = subject.Type
			item.Credits = subject.Credits
		}

		for day := domain.DateOf(now); day.Before(domain.DateOf(deadline)); day = day.AddDate(0, 0, 1) {
			placed, err := txTasks.ListPlacedInRange(ctx, day, day.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			gaps, err := schedule.FreeGaps(day, s.builder, placed)
			if err != nil {
				return err
			}
			days = append(days, schedule.DayBudget{Date: day, Gaps: gaps})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Feasibility first: an unschedulable plan commits nothing.
	plan, planErr := schedule.PlanBackward(item, requiredMin, days, s.placer, now, nil)
	if planErr != nil {
		err = planErr
		return nil, err
	}

	// Then write block by block, each in its own transaction, so an
	// interrupted run keeps the blocks already committed.
	for i, p := range plan.Placed {
		if cErr := s.commitBlock(ctx, p, deadline, now); cErr != nil {
			if errors.Is(cErr, context.Canceled) || errors.Is(cErr, context.DeadlineExceeded) {
				err = &schedule.PartialPlanError{Committed: i, Cause: cErr}
				return nil, err
			}
			err = cErr
			return nil, err
		}
	}
	result = plan
	return result, nil
}

// commitBlock persists one planned block as a placed exam-prep task.
func (s *plannerService) commitBlock(ctx context.Context, p schedule.Placement, deadline, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		start, end := p.Start, p.End
		blockMin := int(end.Sub(start).Minutes())
		t := &domain.Task{
			ID:             uuid.New().String(),
			Title:          p.Item.Title,
			Priority:       8,
			DurationMin:    blockMin,
			TaskType:       domain.TaskStudy,
			Status:         domain.TaskPending,
			IsDeepWork:     blockMin >= s.placer.MaxBlockMin,
			ScheduledStart: &start,
			ScheduledEnd:   &end,
			DueDate:        &deadline,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if p.Item.SubjectCode != "" {
			code := p.Item.SubjectCode
			t.SubjectCode = &code
		}
		return txTasks.Create(ctx, t)
	})
}
