package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/internal/repository"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/limbo/medtrack/pkg/schedule"
)

// Neutral metric value for rows created by adherence recompute before
// the user has submitted anything for the day.
const defaultMetricValue = 50

type WellnessService struct {
	wellRepo repository.WellnessRepositoryI
	doseRepo repository.DoseLogsRepositoryI
}

func NewWellnessService(wellRepo repository.WellnessRepositoryI, doseRepo repository.DoseLogsRepositoryI) *WellnessService {
	if wellRepo == nil || doseRepo == nil {
		log.Fatal("on wellness service provided nil repos")
	}
	return &WellnessService{
		wellRepo: wellRepo,
		doseRepo: doseRepo,
	}
}

func (ws *WellnessService) CalculateAdherence(ctx context.Context, uid uuid.UUID, from, to time.Time) (float64, error) {
	counts, err := ws.doseRepo.CountDecided(ctx, uid, from, to)
	if err != nil {
		return 0, errors.New("dose logs repository error: " + err.Error())
	}
	return counts.Rate(), nil
}

func (ws *WellnessService) RecomputeToday(ctx context.Context, uid uuid.UUID, zone schedule.Zone) error {
	now := time.Now()
	from, to := schedule.DayBounds(now, zone)
	rate, err := ws.CalculateAdherence(ctx, uid, from, to)
	if err != nil {
		return err
	}
	err = ws.wellRepo.UpsertAdherence(ctx, uid, schedule.DayKey(now, zone), rate)
	if err != nil {
		return errors.New("wellness repository error: " + err.Error())
	}
	return nil
}

func (ws *WellnessService) UpdateWellness(ctx context.Context, uid uuid.UUID, req *UpdateWellnessRequest) (*entity.WellnessScore, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if err := validateMetrics(req.Metrics); err != nil {
		return nil, err
	}
	zone, err := schedule.ResolveZone(req.Timezone)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	from, to := schedule.DayBounds(now, zone)
	rate, err := ws.CalculateAdherence(ctx, uid, from, to)
	if err != nil {
		return nil, err
	}
	score := &entity.WellnessScore{
		UserID:        uid,
		Day:           schedule.DayKey(now, zone),
		Metrics:       req.Metrics,
		OverallScore:  req.Metrics.Overall(),
		AdherenceRate: rate,
		Factors:       deriveFactors(req.Metrics, rate),
		Notes:         req.Notes,
	}
	if err = ws.wellRepo.Upsert(ctx, score); err != nil {
		return nil, errors.New("wellness repository error: " + err.Error())
	}
	return score, nil
}

// GetToday refreshes adherence on read, so a crash between a status
// update and its recompute never leaves the dashboard stale.
func (ws *WellnessService) GetToday(ctx context.Context, uid uuid.UUID, zone schedule.Zone) (*entity.WellnessScore, error) {
	now := time.Now()
	from, to := schedule.DayBounds(now, zone)
	rate, err := ws.CalculateAdherence(ctx, uid, from, to)
	if err != nil {
		return nil, err
	}
	day := schedule.DayKey(now, zone)
	score, err := ws.wellRepo.GetByUserAndDay(ctx, uid, day)
	if err != nil {
		if !errors.Is(err, errorvalues.ErrWellnessNotFound) {
			return nil, errors.New("wellness repository error: " + err.Error())
		}
		if err = ws.wellRepo.UpsertAdherence(ctx, uid, day, rate); err != nil {
			return nil, errors.New("wellness repository error: " + err.Error())
		}
		metrics := entity.WellnessMetrics{
			Energy: defaultMetricValue, Focus: defaultMetricValue, Mood: defaultMetricValue,
			Sleep: defaultMetricValue, Vitality: defaultMetricValue, Balance: defaultMetricValue,
		}
		return &entity.WellnessScore{
			UserID:        uid,
			Day:           day,
			Metrics:       metrics,
			OverallScore:  metrics.Overall(),
			AdherenceRate: rate,
		}, nil
	}
	if score.AdherenceRate != rate {
		if err = ws.wellRepo.UpsertAdherence(ctx, uid, day, rate); err != nil {
			return nil, errors.New("wellness repository error: " + err.Error())
		}
		score.AdherenceRate = rate
	}
	return score, nil
}

func (ws *WellnessService) GetHistory(ctx context.Context, uid uuid.UUID, days int, zone schedule.Zone) ([]*entity.WellnessScore, error) {
	if days < 1 || days > 90 {
		days = 7
	}
	now := time.Now()
	to := schedule.DayKey(now, zone).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -days)
	scores, err := ws.wellRepo.GetHistory(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("wellness repository error: " + err.Error())
	}
	return scores, nil
}

func validateMetrics(m entity.WellnessMetrics) error {
	for _, v := range []int{m.Energy, m.Focus, m.Mood, m.Sleep, m.Vitality, m.Balance} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: metrics must be within 0..100", errorvalues.ErrValidation)
		}
	}
	return nil
}

func deriveFactors(m entity.WellnessMetrics, adherence float64) []string {
	factors := make([]string, 0, 4)
	switch {
	case adherence >= 90:
		factors = append(factors, "high adherence")
	case adherence > 0 && adherence < 50:
		factors = append(factors, "low adherence")
	}
	if m.Sleep < 40 {
		factors = append(factors, "poor sleep")
	}
	if m.Energy >= 80 {
		factors = append(factors, "high energy")
	}
	if m.Mood < 40 {
		factors = append(factors, "low mood")
	}
	return factors
}
