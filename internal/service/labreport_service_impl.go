package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

type labReportService struct {
	labs repository.LabReportRepo
}

func NewLabReportService(labs repository.LabReportRepo) LabReportService {
	return &labReportService{labs: labs}
}

func (s *labReportService) CreateReport(ctx context.Context, r *domain.LabReport) error {
	if err := domain.ValidateSubjectCode(r.SubjectCode); err != nil {
		return err
	}
	if r.Title == "" {
		return &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = domain.LabReportPending
	}
	if r.Deadline.IsZero() {
		r.Deadline = r.DueDate
	}
	r.CreatedAt = time.Now().UTC()
	return s.labs.Create(ctx, r)
}

func (s *labReportService) GetReport(ctx context.Context, id string) (*domain.LabReport, error) {
	return s.labs.GetByID(ctx, id)
}

func (s *labReportService) SetStatus(ctx context.Context, id string, status domain.LabReportStatus) error {
	switch status {
	case domain.LabReportPending, domain.LabReportDrafting, domain.LabReportSubmitted:
	default:
		return &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown lab report status %q", status)}
	}
	r, err := s.labs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.Status == domain.LabReportSubmitted && status != domain.LabReportSubmitted {
		return fmt.Errorf("report already submitted: %w", repository.ErrPrecondition)
	}
	r.Status = status
	return s.labs.Update(ctx, r)
}

func (s *labReportService) Looming(ctx context.Context, now time.Time) ([]*domain.LabReport, error) {
	return s.labs.ListUnsubmittedDueWithin(ctx, now.UTC(), labDeadlineWindowDays)
}
