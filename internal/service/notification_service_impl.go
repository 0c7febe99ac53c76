package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/notify"
	"github.com/alexanderramin/chronos/internal/repository"
)

const (
	// taskReminderLead is how far before a task's start its reminder fires.
	taskReminderLead = 15 * time.Minute
	// breakSuggestionAfter is the continuous-study threshold behind the
	// "time for a break" suggestion.
	breakSuggestionAfter = 90 * time.Minute
	// overstudyWarnSeconds triggers the long-study-day warning.
	overstudyWarnSeconds = 8 * 3600
)

type notificationService struct {
	notifications repository.NotificationRepo
	sessions      repository.SessionRepo
	tasks         repository.TaskRepo
	revisions     repository.RevisionRepo
	labs          repository.LabReportRepo
	stats         repository.StatsRepo
	patterns      repository.PatternRepo
	achievements  repository.AchievementRepo
	hub           *notify.Hub
	observer      UseCaseObserver
}

func NewNotificationService(
	notifications repository.NotificationRepo,
	sessions repository.SessionRepo,
	tasks repository.TaskRepo,
	revisions repository.RevisionRepo,
	labs repository.LabReportRepo,
	stats repository.StatsRepo,
	patterns repository.PatternRepo,
	achievements repository.AchievementRepo,
	hub *notify.Hub,
	observers ...UseCaseObserver,
) NotificationService {
	return &notificationService{
		notifications: notifications,
		sessions:      sessions,
		tasks:         tasks,
		revisions:     revisions,
		labs:          labs,
		stats:         stats,
		patterns:      patterns,
		achievements:  achievements,
		hub:           hub,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *notificationService) List(ctx context.Context, f repository.NotificationFilter) ([]*domain.Notification, error) {
	return s.notifications.List(ctx, f)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.ReadAt != nil {
		return nil
	}
	return s.notifications.MarkRead(ctx, id, time.Now().UTC())
}

func (s *notificationService) Dismiss(ctx context.Context, id string) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.DismissedAt != nil {
		return nil
	}
	return s.notifications.Dismiss(ctx, id, time.Now().UTC())
}

func (s *notificationService) Subscribe() (<-chan *domain.Notification, func()) {
	return s.hub.Subscribe()
}

func (s *notificationService) ListPreferences(ctx context.Context) ([]*domain.NotificationPreference, error) {
	return s.notifications.ListPreferences(ctx)
}

func (s *notificationService) UpdatePreference(ctx context.Context, p *domain.NotificationPreference) error {
	if !domain.ValidNotificationTypes[string(p.Type)] {
		return &domain.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown notification type %q", p.Type)}
	}
	return s.notifications.UpsertPreference(ctx, p)
}

// Notify runs the delivery pipeline for one notification: disabled
// types and over-limit types are dropped, quiet hours defer delivery
// via scheduled_for, and a matching dedup key drops a repeat.
func (s *notificationService) Notify(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.ScheduledFor.IsZero() {
		n.ScheduledFor = n.CreatedAt
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityNormal
	}

	pref, err := s.notifications.GetPreference(ctx, n.Type)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if pref != nil {
		if !pref.Enabled {
			return nil
		}
		if pref.InQuietHours(n.ScheduledFor) {
			n.ScheduledFor = pref.NextOutsideQuietHours(n.ScheduledFor)
		}
		if pref.FrequencyLimit > 0 {
			sent, err := s.notifications.CountSentSince(ctx, n.Type, now.Add(-time.Hour))
			if err != nil {
				return err
			}
			if sent >= pref.FrequencyLimit {
				return nil
			}
		}
	}

	if n.DedupKey != "" {
		exists, err := s.notifications.ExistsDedup(ctx, n.DedupKey)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}
	return s.notifications.Create(ctx, n)
}

// Scan runs the proactive rules, flushes achievements awarded since the
// last tick, then delivers everything whose scheduled time has arrived.
func (s *notificationService) Scan(ctx context.Context, now time.Time) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "notification-scan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	now = now.UTC()
	rules := []func(context.Context, time.Time) error{
		s.scanUpcomingTasks,
		s.scanActiveTimer,
		s.scanDueRevisions,
		s.scanLabDeadlines,
		s.scanOverstudy,
		s.scanPatternSuggestions,
		s.flushAchievements,
	}
	for _, rule := range rules {
		if err = rule(ctx, now); err != nil {
			return err
		}
	}
	return s.deliver(ctx, now)
}

func (s *notificationService) scanUpcomingTasks(ctx context.Context, now time.Time) error {
	upcoming, err := s.tasks.ListPlacedInRange(ctx, now, now.Add(taskReminderLead))
	if err != nil {
		return err
	}
	for _, t := range upcoming {
		if t.Status == domain.TaskCompleted || t.Status == domain.TaskCancelled {
			continue
		}
		if t.ScheduledStart.Before(now) {
			continue
		}
		err := s.Notify(ctx, &domain.Notification{
			Type:      domain.NotifyReminder,
			Priority:  domain.PriorityNormal,
			CreatedAt: now,
			Title:     "Task starting soon",
			Message:   fmt.Sprintf("%q starts at %s.", t.Title, t.ScheduledStart.Format("15:04")),
			DedupKey:  fmt.Sprintf("reminder:task:%s:%s", t.ID, domain.DateOf(now).Format("2006-01-02")),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *notificationService) scanActiveTimer(ctx context.Context, now time.Time) error {
	active, err := s.sessions.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if now.Sub(active.StartedAt) <= breakSuggestionAfter {
		return nil
	}
	return s.Notify(ctx, &domain.Notification{
		Type:      domain.NotifySuggestion,
		Priority:  domain.PriorityNormal,
		CreatedAt: now,
		Title:     "Time for a break",
		Message:   "You have been studying for over 90 minutes. A short break will keep your focus up.",
		DedupKey:  "break:session:" + active.ID,
	})
}

func (s *notificationService) scanDueRevisions(ctx context.Context, now time.Time) error {
	due, err := s.revisions.ListPendingDue(ctx, now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}
	return s.Notify(ctx, &domain.Notification{
		Type:      domain.NotifyReminder,
		Priority:  domain.PriorityNormal,
		CreatedAt: now,
		Title:     "Revisions due",
		Message:   fmt.Sprintf("%d revision(s) are due today.", len(due)),
		DedupKey:  "reminder:revisions:" + domain.DateOf(now).Format("2006-01-02"),
	})
}

func (s *notificationService) scanLabDeadlines(ctx context.Context, now time.Time) error {
	reports, err := s.labs.ListUnsubmittedDueWithin(ctx, now, labDeadlineWindowDays)
	if err != nil {
		return err
	}
	for _, r := range reports {
		priority := domain.PriorityNormal
		if r.Deadline.Sub(now) <= 24*time.Hour {
			priority = domain.PriorityHigh
		}
		err := s.Notify(ctx, &domain.Notification{
			Type:      domain.NotifyDeadline,
			Priority:  priority,
			CreatedAt: now,
			Title:     "Lab report deadline",
			Message:   fmt.Sprintf("%q (%s) is due %s.", r.Title, r.SubjectCode, r.Deadline.Format("Mon 15:04")),
			DedupKey:  fmt.Sprintf("deadline:lab:%s:%s", r.ID, domain.DateOf(now).Format("2006-01-02")),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *notificationService) scanOverstudy(ctx context.Context, now time.Time) error {
	day, err := s.stats.Get(ctx, domain.DateOf(now))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if day.StudySeconds <= overstudyWarnSeconds {
		return nil
	}
	return s.Notify(ctx, &domain.Notification{
		Type:      domain.NotifyWarning,
		Priority:  domain.PriorityHigh,
		CreatedAt: now,
		Title:     "Long study day",
		Message:   fmt.Sprintf("You have studied %.1f hours today. Consider winding down.", float64(day.StudySeconds)/3600),
		DedupKey:  "warning:overstudy:" + domain.DateOf(now).Format("2006-01-02"),
	})
}

func (s *notificationService) scanPatternSuggestions(ctx context.Context, now time.Time) error {
	p, err := s.patterns.Get(ctx, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if p.SamplesCount < domain.MinPatternSamples {
		return nil
	}
	if domain.ClassifyHour(now.Hour()) != p.BestStudyTime {
		return nil
	}
	return s.Notify(ctx, &domain.Notification{
		Type:      domain.NotifySuggestion,
		Priority:  domain.PriorityLow,
		CreatedAt: now,
		Title:     "Prime study time",
		Message:   fmt.Sprintf("The %s is your most effective study time. Make the most of it.", p.BestStudyTime),
		DedupKey:  "suggestion:pattern:" + domain.DateOf(now).Format("2006-01-02"),
	})
}

func (s *notificationService) flushAchievements(ctx context.Context, now time.Time) error {
	pending, err := s.achievements.ListUnnotified(ctx)
	if err != nil {
		return err
	}
	defs := make(map[string]domain.AchievementDefinition)
	for _, def := range domain.AchievementCatalog() {
		defs[def.Code] = def
	}
	for _, a := range pending {
		def, ok := defs[a.Code]
		if !ok {
			continue
		}
		err := s.Notify(ctx, &domain.Notification{
			Type:      domain.NotifyAchievement,
			Priority:  domain.PriorityNormal,
			CreatedAt: now,
			Title:     "Achievement unlocked: " + def.Title,
			Message:   fmt.Sprintf("%s (+%d points)", def.Description, def.Points),
			DedupKey:  "achievement:" + a.Code,
		})
		if err != nil {
			return err
		}
		if err := s.achievements.MarkNotified(ctx, a.Code); err != nil {
			return err
		}
	}
	return nil
}

// deliver marks every due notification sent and publishes it to live
// subscribers. Quiet-hours deferrals stay untouched until their
// scheduled time arrives. Types with a frequency limit send at most
// their remaining budget for the trailing hour; the overflow stays
// pending and drains on later ticks.
func (s *notificationService) deliver(ctx context.Context, now time.Time) error {
	due, err := s.notifications.ListDeliverable(ctx, now)
	if err != nil {
		return err
	}
	remaining := make(map[domain.NotificationType]int)
	for _, n := range due {
		budget, known := remaining[n.Type]
		if !known {
			budget, err = s.sendBudget(ctx, n.Type, now)
			if err != nil {
				return err
			}
		}
		if budget == 0 {
			remaining[n.Type] = budget
			continue
		}
		if budget > 0 {
			budget--
		}
		remaining[n.Type] = budget

		if err := s.notifications.MarkSent(ctx, n.ID, now); err != nil {
			return err
		}
		sent := now
		n.SentAt = &sent
		s.hub.Publish(n)
	}
	return nil
}

// sendBudget reports how many more notifications of the type may be
// sent in the hour ending at now. A negative budget means unlimited.
func (s *notificationService) sendBudget(ctx context.Context, typ domain.NotificationType, now time.Time) (int, error) {
	pref, err := s.notifications.GetPreference(ctx, typ)
	if errors.Is(err, repository.ErrNotFound) {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	if pref.FrequencyLimit <= 0 {
		return -1, nil
	}
	sent, err := s.notifications.CountSentSince(ctx, typ, now.Add(-time.Hour))
	if err != nil {
		return 0, err
	}
	if sent >= pref.FrequencyLimit {
		return 0, nil
	}
	return pref.FrequencyLimit - sent, nil
}
