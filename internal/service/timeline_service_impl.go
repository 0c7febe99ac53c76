package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
	"github.com/alexanderramin/chronos/internal/schedule"
)

// Default duration estimates for pending items that carry none.
const (
	defaultRevisionMin = 30
	defaultLabMin      = 120
	defaultExamPrepMin = 60
)

// labDeadlineWindowDays bounds how far ahead unsubmitted lab reports
// enter the pending set.
const labDeadlineWindowDays = 3

type timelineService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	builder  schedule.BuilderConfig
	placer   schedule.PlacerConfig
	observer UseCaseObserver
}

func NewTimelineService(tasks repository.TaskRepo, uow db.UnitOfWork, builder schedule.BuilderConfig, placer schedule.PlacerConfig, observers ...UseCaseObserver) TimelineService {
	return &timelineService{
		tasks:    tasks,
		uow:      uow,
		builder:  builder,
		placer:   placer,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) Get(ctx context.Context, date time.Time) (*schedule.Timeline, error) {
	day := domain.DateOf(date)
	placed, err := s.tasks.ListPlacedInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return schedule.BuildDay(day, s.builder, placed)
}

func (s *timelineService) Week(ctx context.Context, start time.Time) ([]*schedule.Timeline, error) {
	first := domain.DateOf(start)
	timelines := make([]*schedule.Timeline, 0, 7)
	for i := 0; i < 7; i++ {
		tl, err := s.Get(ctx, first.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		timelines = append(timelines, tl)
	}
	return timelines, nil
}

// Optimize assembles the pending set (unplaced tasks, due revisions,
// looming lab reports), scores it and sweeps it into the day's free
// gaps. Each placement is committed before the next item is considered;
// a second run without intervening mutation changes nothing.
func (s *timelineService) Optimize(ctx context.Context, date time.Time) (result *OptimizeResult, err error) {
	startedAt := time.Now().UTC()
	day := domain.DateOf(date)
	defer func() {
		fields := map[string]any{"date": day.Format("2006-01-02")}
		if result != nil {
			fields["changes"] = result.ChangesMade
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "timeline-optimize",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var (
		items     []schedule.PendingItem
		taskByID  map[string]*domain.Task
		revByItem map[string]*domain.Revision
		labByItem map[string]*domain.LabReport
		budget    []schedule.DayBudget
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txRevisions := repository.NewSQLiteRevisionRepo(tx)
		txLabs := repository.NewSQLiteLabReportRepo(tx)
		txSubjects := repository.NewSQLiteSubjectRepo(tx)

		var err error
		items, taskByID, revByItem, labByItem, err = pendingSet(ctx, day, txTasks, txRevisions, txLabs, txSubjects)
		if err != nil {
			return err
		}

		placedTasks, err := txTasks.ListPlacedInRange(ctx, day, day.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		gaps, err := schedule.FreeGaps(day, s.builder, placedTasks)
		if err != nil {
			return err
		}
		budget = []schedule.DayBudget{{Date: day, Gaps: gaps}}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// Each placement commits in its own transaction, so a sweep cut off
	// mid-way keeps everything placed before the interruption.
	commit := func(p schedule.Placement) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txTasks := repository.NewSQLiteTaskRepo(tx)
			start, end := p.Start, p.End

			if t, ok := taskByID[p.Item.ID]; ok {
				t.ScheduledStart = &start
				t.ScheduledEnd = &end
				t.UpdatedAt = now
				return txTasks.Update(ctx, t)
			}

			t := &domain.Task{
				ID:             p.Item.ID,
				Title:          p.Item.Title,
				Priority:       5,
				DurationMin:    p.Item.DurationMin,
				Status:         domain.TaskPending,
				ScheduledStart: &start,
				ScheduledEnd:   &end,
				DueDate:        p.Item.Deadline,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if p.Item.SubjectCode != "" {
				code := p.Item.SubjectCode
				t.SubjectCode = &code
			}
			switch {
			case revByItem[p.Item.ID] != nil:
				t.TaskType = domain.TaskRevision
			case labByItem[p.Item.ID] != nil:
				t.TaskType = domain.TaskLabWork
			default:
				t.TaskType = domain.TaskStudy
			}
			return txTasks.Create(ctx, t)
		})
	}

	plan, planErr := schedule.Place(items, budget, s.placer, now, commit)
	if planErr != nil {
		if errors.Is(planErr, context.Canceled) || errors.Is(planErr, context.DeadlineExceeded) {
			err = &schedule.PartialPlanError{Committed: len(plan.Placed), Cause: planErr}
			return nil, err
		}
		err = planErr
		return nil, err
	}

	result = &OptimizeResult{
		ChangesMade: len(plan.Placed),
		Placements:  make(map[string]Slot, len(plan.Placed)),
		Unplaced:    plan.Unplaced,
	}
	for _, p := range plan.Placed {
		result.Placements[p.Item.ID] = Slot{Start: p.Start, End: p.End}
	}
	return result, nil
}

// pendingSet gathers everything awaiting placement on the given day.
// Revisions and lab reports materialize as tasks with stable derived
// IDs, so repeated sweeps never duplicate them.
func pendingSet(
	ctx context.Context,
	day time.Time,
	tasks repository.TaskRepo,
	revisions repository.RevisionRepo,
	labs repository.LabReportRepo,
	subjects repository.SubjectRepo,
) ([]schedule.PendingItem, map[string]*domain.Task, map[string]*domain.Revision, map[string]*domain.LabReport, error) {
	subjectByCode := make(map[string]*domain.Subject)
	all, err := subjects.List(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	for _, sub := range all {
		subjectByCode[sub.Code] = sub
	}

	var items []schedule.PendingItem
	taskByID := make(map[string]*domain.Task)

	pending, err := tasks.ListByStatus(ctx, domain.TaskPending)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	for _, t := range pending {
		if t.Placed() {
			continue
		}
		item := schedule.PendingItem{
			ID:          t.ID,
			Kind:        pendingKind(t.TaskType),
			Title:       t.Title,
			DurationMin: t.DurationMin,
			Deadline:    t.DueDate,
			DeepWork:    t.IsDeepWork,
		}
		if t.SubjectCode != nil {
			item.SubjectCode = *t.SubjectCode
			if sub := subjectByCode[*t.SubjectCode]; sub != nil {
				item.SubjectType = sub.Type
				item.Credits = sub.Credits
			}
		}
		items = append(items, item)
		taskByID[t.ID] = t
	}

	revByItem := make(map[string]*domain.Revision)
	due, err := revisions.ListPendingDue(ctx, day.AddDate(0, 0, 1).Add(-time.Second))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	for i := range due {
		pr := &due[i]
		itemID := "rev-" + pr.Revision.ID
		if _, err := tasks.GetByID(ctx, itemID); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, nil, err
		}
		deadline := pr.Revision.DueDate
		items = append(items, schedule.PendingItem{
			ID:          itemID,
			Kind:        schedule.KindRevision,
			Title:       fmt.Sprintf("Revise %s chapter %d", pr.SubjectCode, pr.ChapterNumber),
			SubjectCode: pr.SubjectCode,
			SubjectType: pr.SubjectType,
			Credits:     pr.SubjectCredits,
			DurationMin: defaultRevisionMin,
			Deadline:    &deadline,
		})
		revByItem[itemID] = &pr.Revision
	}

	labByItem := make(map[string]*domain.LabReport)
	reports, err := labs.ListUnsubmittedDueWithin(ctx, day, labDeadlineWindowDays)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	for _, r := range reports {
		itemID := "lab-" + r.ID
		if _, err := tasks.GetByID(ctx, itemID); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, nil, err
		}
		deadline := r.Deadline
		kind := schedule.KindLabWork
		if r.Urgency(day) == domain.UrgencyUrgent {
			kind = schedule.KindUrgentLab
		}
		item := schedule.PendingItem{
			ID:          itemID,
			Kind:        kind,
			Title:       "Lab report: " + r.Title,
			SubjectCode: r.SubjectCode,
			DurationMin: defaultLabMin,
			Deadline:    &deadline,
		}
		if sub := subjectByCode[r.SubjectCode]; sub != nil {
			item.SubjectType = sub.Type
			item.Credits = sub.Credits
		}
		items = append(items, item)
		labByItem[itemID] = r
	}

	return items, taskByID, revByItem, labByItem, nil
}

func pendingKind(t domain.TaskType) schedule.PendingKind {
	switch t {
	case domain.TaskRevision:
		return schedule.KindRevision
	case domain.TaskPractice:
		return schedule.KindPractice
	case domain.TaskAssignment:
		return schedule.KindAssignment
	case domain.TaskLabWork:
		return schedule.KindLabWork
	case domain.TaskBreak, domain.TaskFreeTime:
		return schedule.KindFreeTime
	default:
		return schedule.KindStudy
	}
}
