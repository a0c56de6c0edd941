package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/limbo/medtrack/internal/repository"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/limbo/medtrack/pkg/schedule"
)

// DoseLogGenerator materializes a medicine's recurrence rule into
// concrete pending dose instances over the bounded future horizon.
// Regeneration is idempotent: the repository suppresses duplicates on
// (medicine, scheduled instant).
type DoseLogGenerator struct {
	doseRepo repository.DoseLogsRepositoryI
}

func NewDoseLogGenerator(doseRepo repository.DoseLogsRepositoryI) *DoseLogGenerator {
	if doseRepo == nil {
		log.Fatal("provided nil doseRepo")
	}
	return &DoseLogGenerator{
		doseRepo: doseRepo,
	}
}

// InstancesFor expands the recurrence rule into dose logs covering
// [max(today, start date), min(today+horizon, end date)]. Only strictly
// future instants are emitted; past ones are never backfilled.
func (g *DoseLogGenerator) InstancesFor(med *entity.Medicine, now time.Time) ([]*entity.DoseLog, error) {
	if med.Frequency == entity.FrequencyAsNeeded {
		return nil, nil
	}
	zone, err := schedule.ResolveZone(med.Timezone)
	if err != nil {
		return nil, err
	}
	if zone.Degraded {
		slog.Warn("medicine has no timezone, interpreting times in process zone",
			slog.String("medicine_id", med.ID.String()))
	}

	year, month, dayNum := now.In(zone.Location).Date()
	day := time.Date(year, month, dayNum, 0, 0, 0, 0, zone.Location)
	startYear, startMonth, startDay := med.StartDate.In(zone.Location).Date()
	start := time.Date(startYear, startMonth, startDay, 0, 0, 0, 0, zone.Location)
	if start.After(day) {
		day = start
	}
	end := time.Date(year, month, dayNum, 0, 0, 0, 0, zone.Location).AddDate(0, 0, schedule.HorizonDays)
	if med.EndDate != nil {
		endYear, endMonth, endDay := med.EndDate.In(zone.Location).Date()
		medEnd := time.Date(endYear, endMonth, endDay, 0, 0, 0, 0, zone.Location)
		if medEnd.Before(end) {
			end = medEnd
		}
	}

	logs := make([]*entity.DoseLog, 0, schedule.HorizonDays*len(med.Times))
	for ; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !schedule.ShouldOccur(med.Frequency, med.StartDate, day, zone) {
			continue
		}
		for _, hhmm := range med.Times {
			instant, err := zone.LocalTimeToUTC(day, hhmm)
			if err != nil {
				return nil, err
			}
			if !instant.After(now) {
				continue
			}
			logs = append(logs, &entity.DoseLog{
				UserID:        med.UserID,
				MedicineID:    med.ID,
				ScheduledTime: instant,
				Status:        entity.DoseStatusPending,
				DayOfWeek:     int(instant.UTC().Weekday()),
				Hour:          instant.UTC().Hour(),
			})
		}
	}
	return logs, nil
}

// GenerateForMedicine expands and persists instances for one medicine.
// Returns how many new rows landed; overlap with earlier generations
// yields fewer insertions, not errors.
func (g *DoseLogGenerator) GenerateForMedicine(ctx context.Context, med *entity.Medicine) (int, error) {
	logs, err := g.InstancesFor(med, time.Now())
	if err != nil {
		return 0, err
	}
	if len(logs) == 0 {
		return 0, nil
	}
	inserted, err := g.doseRepo.BulkInsert(ctx, logs)
	if err != nil {
		// Partial batches are recoverable by re-running generation
		return inserted, errors.New("bulk inserting dose logs error: " + err.Error())
	}
	return inserted, nil
}

// GenerateForAll runs generation across a batch of medicines. A failure
// on one medicine never aborts the rest.
func (g *DoseLogGenerator) GenerateForAll(ctx context.Context, meds []*entity.Medicine) (int, error) {
	total := 0
	var errs error
	for _, med := range meds {
		inserted, err := g.GenerateForMedicine(ctx, med)
		total += inserted
		if err != nil {
			slog.Error("generating dose logs for medicine failed",
				slog.String("medicine_id", med.ID.String()),
				slog.String("error", err.Error()))
			errs = errors.Join(errs, err)
		}
	}
	return total, errs
}
