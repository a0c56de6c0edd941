package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/internal/repository"
	"github.com/limbo/medtrack/pkg/entity"
)

type MedicinesService struct {
	medsRepo  repository.MedicinesRepositoryI
	doseRepo  repository.DoseLogsRepositoryI
	generator *DoseLogGenerator
}

func NewMedicinesService(medsRepo repository.MedicinesRepositoryI, doseRepo repository.DoseLogsRepositoryI) *MedicinesService {
	if medsRepo == nil || doseRepo == nil {
		log.Fatal("on medicines service provided nil repos")
	}
	return &MedicinesService{
		medsRepo:  medsRepo,
		doseRepo:  doseRepo,
		generator: NewDoseLogGenerator(doseRepo),
	}
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errorvalues.ErrValidation
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return err
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	return nil
}

func validateRecurrence(freq entity.Frequency, times []string, start time.Time, end *time.Time) error {
	if freq != entity.FrequencyAsNeeded && len(times) == 0 {
		return fmt.Errorf("%w: times must not be empty for %s frequency", errorvalues.ErrValidation, freq)
	}
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: end date is before start date", errorvalues.ErrValidation)
	}
	return nil
}

func (ms *MedicinesService) CreateMedicine(ctx context.Context, uid uuid.UUID, req *CreateMedicineRequest) (*entity.Medicine, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	freq := entity.Frequency(req.Frequency)
	if err := validateRecurrence(freq, req.Times, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	med := entity.Medicine{
		UserID:    uid,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: freq,
		Times:     req.Times,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Timezone:  req.Timezone,
	}
	id, err := ms.medsRepo.Create(ctx, &med)
	if err != nil {
		return nil, errors.New("medicines repository error: " + err.Error())
	}
	created, err := ms.medsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("medicines repository error: " + err.Error())
	}
	// Generation failures don't undo the create: a re-run repairs the
	// schedule because generation is idempotent
	if _, err = ms.generator.GenerateForMedicine(ctx, created); err != nil {
		slog.Error("generating dose logs after create failed",
			slog.String("medicine_id", created.ID.String()),
			slog.String("error", err.Error()))
	}
	return created, nil
}

func (ms *MedicinesService) UpdateMedicine(ctx context.Context, id, uid uuid.UUID, req *UpdateMedicineRequest) (*entity.Medicine, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	freq := entity.Frequency(req.Frequency)
	if err := validateRecurrence(freq, req.Times, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	med, err := ms.medsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicineNotFound) {
			return nil, err
		}
		return nil, errors.New("medicines repository error: " + err.Error())
	}
	if med.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	scheduleChanged := med.Frequency != freq || !slices.Equal(med.Times, req.Times)
	med.Name = req.Name
	med.Dosage = req.Dosage
	med.Frequency = freq
	med.Times = req.Times
	med.StartDate = req.StartDate
	med.EndDate = req.EndDate
	med.Timezone = req.Timezone
	if err = ms.medsRepo.Update(ctx, med); err != nil {
		if errors.Is(err, errorvalues.ErrMedicineNotFound) {
			return nil, err
		}
		return nil, errors.New("medicines repository error: " + err.Error())
	}
	if scheduleChanged {
		// Stale future instances must go before regeneration, otherwise
		// the old schedule lingers next to the new one
		if _, err = ms.doseRepo.DeleteFuturePending(ctx, med.ID, time.Now()); err != nil {
			return nil, errors.New("dose logs repository error: " + err.Error())
		}
		if _, err = ms.generator.GenerateForMedicine(ctx, med); err != nil {
			slog.Error("regenerating dose logs after update failed",
				slog.String("medicine_id", med.ID.String()),
				slog.String("error", err.Error()))
		}
	}
	return med, nil
}

func (ms *MedicinesService) DeleteMedicine(ctx context.Context, id, uid uuid.UUID) error {
	med, err := ms.medsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicineNotFound) {
			return err
		}
		return errors.New("medicines repository error: " + err.Error())
	}
	if med.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	if _, err = ms.doseRepo.DeleteFuturePending(ctx, id, time.Now()); err != nil {
		return errors.New("dose logs repository error: " + err.Error())
	}
	err = ms.medsRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicineNotFound) {
			return err
		}
		return errors.New("medicines repository error: " + err.Error())
	}
	return nil
}

func (ms *MedicinesService) GetMedicine(ctx context.Context, id, uid uuid.UUID) (*entity.Medicine, error) {
	med, err := ms.medsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMedicineNotFound) {
			return nil, err
		}
		return nil, errors.New("medicines repository error: " + err.Error())
	}
	if med.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return med, nil
}

func (ms *MedicinesService) GetUserMedicines(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Medicine, error) {
	meds, err := ms.medsRepo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("medicines repository error: " + err.Error())
	}
	return meds, nil
}

// BackfillTimezones assigns fallbackZone to the user's legacy medicines
// that lack one. With recreate, future pending logs are archived to the
// backup table and regenerated under the new zone.
func (ms *MedicinesService) BackfillTimezones(ctx context.Context, uid uuid.UUID, fallbackZone string, recreate bool) (*BackfillResult, error) {
	if fallbackZone == "" {
		fallbackZone = "UTC"
	}
	if _, err := time.LoadLocation(fallbackZone); err != nil {
		return nil, errorvalues.ErrInvalidTimezone
	}
	meds, err := ms.medsRepo.GetWithoutTimezone(ctx, uid)
	if err != nil {
		return nil, errors.New("medicines repository error: " + err.Error())
	}
	result := &BackfillResult{}
	for _, med := range meds {
		if err = ms.medsRepo.UpdateTimezone(ctx, med.ID, fallbackZone); err != nil {
			slog.Error("assigning timezone failed",
				slog.String("medicine_id", med.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		med.Timezone = fallbackZone
		result.Updated++
		if !recreate {
			continue
		}
		backedUp, err := ms.doseRepo.BackupAndDeleteFuturePending(ctx, med.ID, time.Now())
		if err != nil {
			slog.Error("backing up pending logs failed",
				slog.String("medicine_id", med.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		result.LogsBackedUp += backedUp
		inserted, err := ms.generator.GenerateForMedicine(ctx, med)
		result.LogsRecreated += inserted
		if err != nil {
			slog.Error("recreating dose logs failed",
				slog.String("medicine_id", med.ID.String()),
				slog.String("error", err.Error()))
		}
	}
	return result, nil
}
