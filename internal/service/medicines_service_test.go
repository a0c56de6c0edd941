package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/internal/repository/mocks"
	"github.com/limbo/medtrack/internal/service"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type medicinesFixture struct {
	medsRepo *mocks.MockMedicinesRepositoryI
	doseRepo *mocks.MockDoseLogsRepositoryI
	ms       *service.MedicinesService
}

func newMedicinesFixture(t *testing.T) *medicinesFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	medsRepo := mocks.NewMockMedicinesRepositoryI(ctrl)
	doseRepo := mocks.NewMockDoseLogsRepositoryI(ctrl)
	return &medicinesFixture{
		medsRepo: medsRepo,
		doseRepo: doseRepo,
		ms:       service.NewMedicinesService(medsRepo, doseRepo),
	}
}

func createRequest() *service.CreateMedicineRequest {
	return &service.CreateMedicineRequest{
		Name:      "Metformin",
		Dosage:    "500mg",
		Frequency: "daily",
		Times:     []string{"09:00", "21:00"},
		StartDate: time.Now().AddDate(0, 0, -1),
		Timezone:  "Asia/Kolkata",
	}
}

func TestCreateMedicine(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("creates and schedules", func(t *testing.T) {
		f := newMedicinesFixture(t)
		req := createRequest()
		id := uuid.New()
		created := &entity.Medicine{
			ID: id, UserID: uid,
			Name: req.Name, Dosage: req.Dosage,
			Frequency: entity.FrequencyDaily,
			Times:     req.Times,
			StartDate: req.StartDate,
			Timezone:  req.Timezone,
		}
		f.medsRepo.EXPECT().Create(ctx, gomock.Any()).Return(id, nil)
		f.medsRepo.EXPECT().GetByID(ctx, id).Return(created, nil)
		f.doseRepo.EXPECT().BulkInsert(ctx, gomock.Any()).Return(60, nil)

		got, err := f.ms.CreateMedicine(ctx, uid, req)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("as needed needs no times", func(t *testing.T) {
		f := newMedicinesFixture(t)
		req := createRequest()
		req.Frequency = "as_needed"
		req.Times = nil
		id := uuid.New()
		created := &entity.Medicine{ID: id, UserID: uid, Frequency: entity.FrequencyAsNeeded}
		f.medsRepo.EXPECT().Create(ctx, gomock.Any()).Return(id, nil)
		f.medsRepo.EXPECT().GetByID(ctx, id).Return(created, nil)

		_, err := f.ms.CreateMedicine(ctx, uid, req)
		assert.NoError(t, err)
	})

	t.Run("scheduled frequency without times", func(t *testing.T) {
		f := newMedicinesFixture(t)
		req := createRequest()
		req.Times = nil
		_, err := f.ms.CreateMedicine(ctx, uid, req)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newMedicinesFixture(t)
		req := createRequest()
		end := req.StartDate.AddDate(0, 0, -3)
		req.EndDate = &end
		_, err := f.ms.CreateMedicine(ctx, uid, req)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})

	t.Run("malformed time of day", func(t *testing.T) {
		f := newMedicinesFixture(t)
		req := createRequest()
		req.Times = []string{"9 am"}
		_, err := f.ms.CreateMedicine(ctx, uid, req)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		f := newMedicinesFixture(t)
		req := createRequest()
		req.Timezone = "Mars/Olympus"
		_, err := f.ms.CreateMedicine(ctx, uid, req)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
}

func TestUpdateMedicine(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	stored := func() *entity.Medicine {
		return &entity.Medicine{
			ID: uuid.New(), UserID: uid,
			Name:      "Metformin",
			Frequency: entity.FrequencyDaily,
			Times:     []string{"09:00", "21:00"},
			StartDate: time.Now().AddDate(0, 0, -10),
			Timezone:  "UTC",
		}
	}
	updateReq := func(med *entity.Medicine) *service.UpdateMedicineRequest {
		return &service.UpdateMedicineRequest{
			Name:      med.Name,
			Frequency: string(med.Frequency),
			Times:     med.Times,
			StartDate: med.StartDate,
			Timezone:  med.Timezone,
		}
	}

	t.Run("times change regenerates the schedule", func(t *testing.T) {
		f := newMedicinesFixture(t)
		med := stored()
		req := updateReq(med)
		req.Times = []string{"08:00"}
		f.medsRepo.EXPECT().GetByID(ctx, med.ID).Return(med, nil)
		f.medsRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		f.doseRepo.EXPECT().DeleteFuturePending(ctx, med.ID, gomock.Any()).Return(int64(12), nil)
		f.doseRepo.EXPECT().BulkInsert(ctx, gomock.Any()).Return(30, nil)

		got, err := f.ms.UpdateMedicine(ctx, med.ID, uid, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"08:00"}, got.Times)
	})

	t.Run("cosmetic change keeps the schedule", func(t *testing.T) {
		f := newMedicinesFixture(t)
		med := stored()
		req := updateReq(med)
		req.Name = "Metformin XR"
		f.medsRepo.EXPECT().GetByID(ctx, med.ID).Return(med, nil)
		f.medsRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		got, err := f.ms.UpdateMedicine(ctx, med.ID, uid, req)
		require.NoError(t, err)
		assert.Equal(t, "Metformin XR", got.Name)
	})

	t.Run("foreign medicine", func(t *testing.T) {
		f := newMedicinesFixture(t)
		med := stored()
		med.UserID = uuid.New()
		f.medsRepo.EXPECT().GetByID(ctx, med.ID).Return(med, nil)

		_, err := f.ms.UpdateMedicine(ctx, med.ID, uid, updateReq(med))
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})

	t.Run("unknown medicine", func(t *testing.T) {
		f := newMedicinesFixture(t)
		med := stored()
		f.medsRepo.EXPECT().GetByID(ctx, med.ID).Return(nil, errorvalues.ErrMedicineNotFound)

		_, err := f.ms.UpdateMedicine(ctx, med.ID, uid, updateReq(med))
		assert.ErrorIs(t, err, errorvalues.ErrMedicineNotFound)
	})
}

func TestDeleteMedicine(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	f := newMedicinesFixture(t)
	med := &entity.Medicine{ID: uuid.New(), UserID: uid}

	f.medsRepo.EXPECT().GetByID(ctx, med.ID).Return(med, nil)
	f.doseRepo.EXPECT().DeleteFuturePending(ctx, med.ID, gomock.Any()).Return(int64(5), nil)
	f.medsRepo.EXPECT().Delete(ctx, med.ID).Return(nil)

	assert.NoError(t, f.ms.DeleteMedicine(ctx, med.ID, uid))
}

func TestBackfillTimezones(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("assigns the fallback zone", func(t *testing.T) {
		f := newMedicinesFixture(t)
		meds := []*entity.Medicine{
			{ID: uuid.New(), UserID: uid, Frequency: entity.FrequencyDaily, Times: []string{"09:00"}, StartDate: time.Now().AddDate(0, 0, -1)},
			{ID: uuid.New(), UserID: uid, Frequency: entity.FrequencyDaily, Times: []string{"21:00"}, StartDate: time.Now().AddDate(0, 0, -1)},
		}
		f.medsRepo.EXPECT().GetWithoutTimezone(ctx, uid).Return(meds, nil)
		f.medsRepo.EXPECT().UpdateTimezone(ctx, meds[0].ID, "Asia/Kolkata").Return(nil)
		f.medsRepo.EXPECT().UpdateTimezone(ctx, meds[1].ID, "Asia/Kolkata").Return(nil)

		result, err := f.ms.BackfillTimezones(ctx, uid, "Asia/Kolkata", false)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Updated)
		assert.Zero(t, result.LogsBackedUp)
	})

	t.Run("recreate archives and regenerates", func(t *testing.T) {
		f := newMedicinesFixture(t)
		med := &entity.Medicine{
			ID: uuid.New(), UserID: uid,
			Frequency: entity.FrequencyDaily,
			Times:     []string{"09:00"},
			StartDate: time.Now().AddDate(0, 0, -1),
		}
		f.medsRepo.EXPECT().GetWithoutTimezone(ctx, uid).Return([]*entity.Medicine{med}, nil)
		f.medsRepo.EXPECT().UpdateTimezone(ctx, med.ID, "UTC").Return(nil)
		f.doseRepo.EXPECT().BackupAndDeleteFuturePending(ctx, med.ID, gomock.Any()).Return(int64(14), nil)
		f.doseRepo.EXPECT().BulkInsert(ctx, gomock.Any()).Return(30, nil)

		result, err := f.ms.BackfillTimezones(ctx, uid, "", true)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
		assert.Equal(t, int64(14), result.LogsBackedUp)
		assert.Equal(t, 30, result.LogsRecreated)
	})

	t.Run("bad fallback zone", func(t *testing.T) {
		f := newMedicinesFixture(t)
		_, err := f.ms.BackfillTimezones(ctx, uid, "Mars/Olympus", false)
		assert.ErrorIs(t, err, errorvalues.ErrInvalidTimezone)
	})
}
