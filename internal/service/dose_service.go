package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/internal/repository"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/limbo/medtrack/pkg/schedule"
)

// DoseService owns the dose status state machine and the dose read
// surface. Transitions are conditional on the row still being pending,
// so a concurrent staleness sweep and a user action resolve to exactly
// one winner.
type DoseService struct {
	doseRepo   repository.DoseLogsRepositoryI
	medsRepo   repository.MedicinesRepositoryI
	recomputer AdherenceRecomputer
	generator  *DoseLogGenerator
}

func NewDoseService(doseRepo repository.DoseLogsRepositoryI, medsRepo repository.MedicinesRepositoryI, recomputer AdherenceRecomputer) *DoseService {
	if doseRepo == nil || medsRepo == nil || recomputer == nil {
		log.Fatal("on dose service provided nil dependencies")
	}
	return &DoseService{
		doseRepo:   doseRepo,
		medsRepo:   medsRepo,
		recomputer: recomputer,
		generator:  NewDoseLogGenerator(doseRepo),
	}
}

func (ds *DoseService) UpdateStatus(ctx context.Context, uid uuid.UUID, req *UpdateDoseRequest) (*entity.DoseLog, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if req.DoseID == nil && (req.MedicineID == nil || req.ScheduledTime == nil) {
		return nil, fmt.Errorf("%w: either doseId or medicineId with scheduledTime is required", errorvalues.ErrValidation)
	}
	doseLog, med, err := ds.resolveDose(ctx, uid, req)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	status := entity.DoseStatus(req.Status)
	if status == entity.DoseStatusTaken &&
		!schedule.WithinPreWindow(now, doseLog.ScheduledTime, schedule.EarlyTakeWindowMinutes) {
		return nil, errorvalues.ErrTooEarly
	}
	if doseLog.Status.Decided() {
		return nil, errorvalues.ErrDoseAlreadyDecided
	}
	var actualTime *time.Time
	if status == entity.DoseStatusTaken {
		actualTime = &now
	}
	err = ds.doseRepo.UpdateStatusIfPending(ctx, doseLog.ID, status, actualTime, req.Notes, entity.ConfirmedByUser)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDoseAlreadyDecided) {
			return nil, err
		}
		return nil, errors.New("dose logs repository error: " + err.Error())
	}
	doseLog.Status = status
	doseLog.ActualTime = actualTime
	doseLog.ConfirmedBy = entity.ConfirmedByUser
	if req.Notes != "" {
		doseLog.Notes = req.Notes
	}
	// Recompute is a second write; a failure here self-heals on the next
	// wellness read, which refreshes adherence lazily
	zone, zerr := schedule.ResolveZone(med.Timezone)
	if zerr != nil {
		zone = schedule.Zone{Location: time.UTC}
	}
	if err = ds.recomputer.RecomputeToday(ctx, uid, zone); err != nil {
		slog.Error("recomputing adherence after status change failed",
			slog.String("uid", uid.String()),
			slog.String("error", err.Error()))
	}
	return doseLog, nil
}

// resolveDose finds the addressed row and its medicine. The fuzzy form
// falls back to creating the instance, which also covers on-demand
// logging of as-needed medicines that never get scheduled instances.
func (ds *DoseService) resolveDose(ctx context.Context, uid uuid.UUID, req *UpdateDoseRequest) (*entity.DoseLog, *entity.Medicine, error) {
	if req.DoseID != nil {
		doseLog, err := ds.doseRepo.GetByID(ctx, *req.DoseID)
		if err != nil {
			if errors.Is(err, errorvalues.ErrDoseNotFound) {
				return nil, nil, err
			}
			return nil, nil, errors.New("dose logs repository error: " + err.Error())
		}
		if doseLog.UserID != uid {
			return nil, nil, errorvalues.ErrWrongOwner
		}
		med, err := ds.medsRepo.GetByID(ctx, doseLog.MedicineID)
		if err != nil {
			if errors.Is(err, errorvalues.ErrMedicineNotFound) {
				return nil, nil, err
			}
			return nil, nil, errors.New("medicines repository error: " + err.Error())
		}
		return doseLog, med, nil
	}

	med, err := ds.medsRepo.GetByID(ctx, *req.MedicineID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicineNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("medicines repository error: " + err.Error())
	}
	if med.UserID != uid {
		return nil, nil, errorvalues.ErrWrongOwner
	}
	window := time.Duration(schedule.FuzzyMatchWindowMinutes) * time.Minute
	doseLog, err := ds.doseRepo.FindNearest(ctx, med.ID, *req.ScheduledTime, window)
	if err == nil {
		return doseLog, med, nil
	}
	if !errors.Is(err, errorvalues.ErrDoseNotFound) {
		return nil, nil, errors.New("dose logs repository error: " + err.Error())
	}
	instant := req.ScheduledTime.UTC()
	id, err := ds.doseRepo.UpsertInstance(ctx, &entity.DoseLog{
		UserID:        uid,
		MedicineID:    med.ID,
		ScheduledTime: instant,
		Status:        entity.DoseStatusPending,
		DayOfWeek:     int(instant.Weekday()),
		Hour:          instant.Hour(),
	})
	if err != nil {
		return nil, nil, errors.New("dose logs repository error: " + err.Error())
	}
	doseLog, err = ds.doseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, errors.New("dose logs repository error: " + err.Error())
	}
	return doseLog, med, nil
}

func (ds *DoseService) GetDosesByDate(ctx context.Context, uid uuid.UUID, date string, zone schedule.Zone) ([]*entity.DoseWithMedicine, error) {
	day, err := schedule.ParseDate(date, zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errorvalues.ErrValidation, err.Error())
	}
	from, to := schedule.DayBounds(day, zone)
	now := time.Now()
	todayStart, _ := schedule.DayBounds(now, zone)
	if !from.Before(todayStart) {
		// First visit of a fresh account or after a quiet stretch: make
		// sure the schedule exists before reading it
		exists, err := ds.doseRepo.ExistsOnOrAfter(ctx, uid, from)
		if err != nil {
			return nil, errors.New("dose logs repository error: " + err.Error())
		}
		if !exists {
			meds, err := ds.medsRepo.GetByUserID(ctx, uid, 500, 0)
			if err != nil {
				return nil, errors.New("medicines repository error: " + err.Error())
			}
			if _, err = ds.generator.GenerateForAll(ctx, meds); err != nil {
				slog.Error("lazy dose generation failed",
					slog.String("uid", uid.String()),
					slog.String("error", err.Error()))
			}
		}
	}
	logs, err := ds.doseRepo.GetByUserAndRange(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("dose logs repository error: " + err.Error())
	}
	return logs, nil
}

func (ds *DoseService) GetSummary(ctx context.Context, uid uuid.UUID, date string, zone schedule.Zone) ([]entity.DoseSummaryBucket, error) {
	day, err := schedule.ParseDate(date, zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errorvalues.ErrValidation, err.Error())
	}
	from, to := schedule.DayBounds(day, zone)
	now := time.Now()
	if !now.Before(from) && now.Before(to) {
		// Today: only doses up to the current moment take part
		to = now
	}
	logs, err := ds.doseRepo.GetByUserAndRange(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("dose logs repository error: " + err.Error())
	}
	byLabel := make(map[string]*entity.DoseSummaryBucket)
	for _, l := range logs {
		if l.Status != entity.DoseStatusTaken && l.Status != entity.DoseStatusMissed {
			continue
		}
		label := l.ScheduledTime.In(zone.Location).Format("15:04")
		bucket, ok := byLabel[label]
		if !ok {
			bucket = &entity.DoseSummaryBucket{TimeLabel: label}
			byLabel[label] = bucket
		}
		if l.Status == entity.DoseStatusTaken {
			bucket.Taken++
		} else {
			bucket.Missed++
		}
	}
	result := make([]entity.DoseSummaryBucket, 0, len(byLabel))
	for _, bucket := range byLabel {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TimeLabel < result[j].TimeLabel })
	return result, nil
}

func (ds *DoseService) GetHistory(ctx context.Context, uid uuid.UUID, days int, zone schedule.Zone) ([]entity.AdherenceDay, error) {
	if days < 1 || days > 90 {
		days = 7
	}
	now := time.Now()
	result := make([]entity.AdherenceDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		dayStart, dayEnd := schedule.DayBounds(now.AddDate(0, 0, -i), zone)
		counts, err := ds.doseRepo.CountDecided(ctx, uid, dayStart, dayEnd)
		if err != nil {
			return nil, errors.New("dose logs repository error: " + err.Error())
		}
		result = append(result, entity.AdherenceDay{
			Day:    dayStart,
			Counts: counts,
			Rate:   counts.Rate(),
		})
	}
	return result, nil
}
