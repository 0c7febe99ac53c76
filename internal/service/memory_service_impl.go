package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

type memoryService struct {
	memory repository.MemoryRepo
}

func NewMemoryService(memory repository.MemoryRepo) MemoryService {
	return &memoryService{memory: memory}
}

func (s *memoryService) AddGuideline(ctx context.Context, rule string, priority int) (*domain.Guideline, error) {
	if rule == "" {
		return nil, &domain.ValidationError{Field: "rule", Reason: "must not be empty"}
	}
	if priority < 1 || priority > 10 {
		return nil, &domain.ValidationError{Field: "priority", Reason: "must be between 1 and 10"}
	}
	g := &domain.Guideline{
		ID:        uuid.New().String(),
		Rule:      rule,
		Priority:  priority,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.memory.CreateGuideline(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *memoryService) ListGuidelines(ctx context.Context, activeOnly bool) ([]*domain.Guideline, error) {
	return s.memory.ListGuidelines(ctx, activeOnly)
}

func (s *memoryService) SetGuidelineActive(ctx context.Context, id string, active bool) error {
	return s.memory.SetGuidelineActive(ctx, id, active)
}

func (s *memoryService) Remember(ctx context.Context, category, key, value string) error {
	if category == "" || key == "" {
		return &domain.ValidationError{Field: "category", Reason: "category and key must not be empty"}
	}
	return s.memory.UpsertFact(ctx, &domain.MemoryFact{
		Category:  category,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
}

func (s *memoryService) Recall(ctx context.Context, category string) ([]*domain.MemoryFact, error) {
	return s.memory.ListFacts(ctx, category)
}

func (s *memoryService) RecallFact(ctx context.Context, category, key string) (*domain.MemoryFact, error) {
	return s.memory.GetFact(ctx, category, key)
}
