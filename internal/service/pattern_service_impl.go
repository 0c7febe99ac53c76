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

// timeOfDayOrder fixes the argmax iteration order so best-study-time
// ties resolve deterministically.
var timeOfDayOrder = []domain.TimeOfDay{
	domain.EarlyMorning, domain.Morning, domain.Afternoon,
	domain.Evening, domain.Night, domain.LateNight,
}

type patternService struct {
	patterns repository.PatternRepo
	uow      db.UnitOfWork
}

func NewPatternService(patterns repository.PatternRepo, uow db.UnitOfWork) PatternService {
	return &patternService{patterns: patterns, uow: uow}
}

func (s *patternService) Record(ctx context.Context, e *domain.SessionEffectiveness) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return absorbEffectiveness(ctx, tx, e)
	})
}

func (s *patternService) OptimalTime(ctx context.Context, subjectCode *string) (domain.TimeOfDay, error) {
	p, err := s.pattern(ctx, subjectCode)
	if err != nil {
		return "", err
	}
	return p.BestStudyTime, nil
}

func (s *patternService) SuggestedDuration(ctx context.Context, subjectCode *string) (int, error) {
	p, err := s.pattern(ctx, subjectCode)
	if err != nil {
		return 0, err
	}
	return p.SuggestedDurationMin(), nil
}

func (s *patternService) Patterns(ctx context.Context) ([]*domain.LearningPattern, error) {
	return s.patterns.List(ctx)
}

func (s *patternService) Recommend(ctx context.Context, subjectCode *string) ([]domain.Recommendation, error) {
	p, err := s.pattern(ctx, subjectCode)
	if err != nil {
		if errors.Is(err, repository.ErrPrecondition) || errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	confidence := p.Confidence()
	recs := []domain.Recommendation{
		{
			Kind:       domain.RecommendTiming,
			Message:    fmt.Sprintf("Your focus peaks in the %s; schedule demanding work then.", p.BestStudyTime),
			Confidence: confidence,
		},
		{
			Kind:       domain.RecommendDuration,
			Message:    fmt.Sprintf("Sessions around %d minutes have worked best for you.", p.SuggestedDurationMin()),
			Confidence: confidence,
		},
	}
	if p.AvgDurationMin > 90 {
		recs = append(recs, domain.Recommendation{
			Kind:       domain.RecommendBreak,
			Message:    "Your sessions run long; plan a break after every 90 minutes.",
			Confidence: confidence,
		})
	}
	return recs, nil
}

// pattern loads a pattern and enforces the sample floor.
func (s *patternService) pattern(ctx context.Context, subjectCode *string) (*domain.LearningPattern, error) {
	p, err := s.patterns.Get(ctx, subjectCode)
	if err != nil {
		return nil, err
	}
	if p.SamplesCount < domain.MinPatternSamples {
		return nil, fmt.Errorf("pattern has %d of %d required samples: %w",
			p.SamplesCount, domain.MinPatternSamples, repository.ErrPrecondition)
	}
	return p, nil
}

// absorbEffectiveness persists one effectiveness sample and folds it
// into the subject's pattern and the global pattern, recomputing each
// pattern's best study time from the per-bucket focus means.
func absorbEffectiveness(ctx context.Context, tx db.DBTX, e *domain.SessionEffectiveness) error {
	effectiveness := repository.NewSQLiteEffectivenessRepo(tx)
	patterns := repository.NewSQLitePatternRepo(tx)

	if err := effectiveness.Create(ctx, e); err != nil {
		return err
	}

	keys := []*string{nil}
	if e.SubjectCode != nil {
		keys = append(keys, e.SubjectCode)
	}
	for _, key := range keys {
		p, err := patterns.Get(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			p = &domain.LearningPattern{SubjectCode: key}
		} else if err != nil {
			return err
		}

		p.Absorb(e)

		byBucket, err := effectiveness.FocusByTimeOfDay(ctx, key)
		if err != nil {
			return err
		}
		p.BestStudyTime = bestBucket(byBucket)
		p.UpdatedAt = e.CreatedAt

		if err := patterns.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func bestBucket(means map[domain.TimeOfDay]float64) domain.TimeOfDay {
	best := domain.Morning
	bestMean := -1.0
	for _, tod := range timeOfDayOrder {
		if mean, ok := means[tod]; ok && mean > bestMean {
			best = tod
			bestMean = mean
		}
	}
	return best
}
