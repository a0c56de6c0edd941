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
	"github.com/limbo/medtrack/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recomputerStub counts adherence recompute calls; the real wellness
// service is exercised in its own tests.
type recomputerStub struct {
	calls int
	err   error
}

func (r *recomputerStub) RecomputeToday(_ context.Context, _ uuid.UUID, _ schedule.Zone) error {
	r.calls++
	return r.err
}

type doseFixture struct {
	ctrl       *gomock.Controller
	doseRepo   *mocks.MockDoseLogsRepositoryI
	medsRepo   *mocks.MockMedicinesRepositoryI
	recomputer *recomputerStub
	ds         *service.DoseService
}

func newDoseFixture(t *testing.T) *doseFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	doseRepo := mocks.NewMockDoseLogsRepositoryI(ctrl)
	medsRepo := mocks.NewMockMedicinesRepositoryI(ctrl)
	recomputer := &recomputerStub{}
	return &doseFixture{
		ctrl:       ctrl,
		doseRepo:   doseRepo,
		medsRepo:   medsRepo,
		recomputer: recomputer,
		ds:         service.NewDoseService(doseRepo, medsRepo, recomputer),
	}
}

func pendingDose(uid uuid.UUID, scheduled time.Time) *entity.DoseLog {
	return &entity.DoseLog{
		ID:            uuid.New(),
		UserID:        uid,
		MedicineID:    uuid.New(),
		ScheduledTime: scheduled,
		Status:        entity.DoseStatusPending,
	}
}

func medicineFor(dose *entity.DoseLog) *entity.Medicine {
	return &entity.Medicine{
		ID:        dose.MedicineID,
		UserID:    dose.UserID,
		Name:      "Metformin",
		Frequency: entity.FrequencyDaily,
		Times:     []string{"09:00"},
		Timezone:  "UTC",
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	t.Run("taken inside window", func(t *testing.T) {
		f := newDoseFixture(t)
		dose := pendingDose(uid, time.Now().Add(-5*time.Minute))
		f.doseRepo.EXPECT().GetByID(ctx, dose.ID).Return(dose, nil)
		f.medsRepo.EXPECT().GetByID(ctx, dose.MedicineID).Return(medicineFor(dose), nil)
		f.doseRepo.EXPECT().
			UpdateStatusIfPending(ctx, dose.ID, entity.DoseStatusTaken, gomock.Not(gomock.Nil()), "after breakfast", entity.ConfirmedByUser).
			Return(nil)

		got, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{
			DoseID: &dose.ID,
			Status: "taken",
			Notes:  "after breakfast",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.DoseStatusTaken, got.Status)
		assert.NotNil(t, got.ActualTime)
		assert.Equal(t, entity.ConfirmedByUser, got.ConfirmedBy)
		assert.Equal(t, "after breakfast", got.Notes)
		assert.Equal(t, 1, f.recomputer.calls)
	})

	t.Run("taken at the exact window boundary", func(t *testing.T) {
		f := newDoseFixture(t)
		// Scheduled just under 15 minutes ahead, so the window is open.
		dose := pendingDose(uid, time.Now().Add(15*time.Minute-time.Second))
		f.doseRepo.EXPECT().GetByID(ctx, dose.ID).Return(dose, nil)
		f.medsRepo.EXPECT().GetByID(ctx, dose.MedicineID).Return(medicineFor(dose), nil)
		f.doseRepo.EXPECT().
			UpdateStatusIfPending(ctx, dose.ID, entity.DoseStatusTaken, gomock.Not(gomock.Nil()), "", entity.ConfirmedByUser).
			Return(nil)

		_, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{DoseID: &dose.ID, Status: "taken"})
		assert.NoError(t, err)
	})

	t.Run("taken too early is rejected and stays pending", func(t *testing.T) {
		f := newDoseFixture(t)
		dose := pendingDose(uid, time.Now().Add(time.Hour))
		f.doseRepo.EXPECT().GetByID(ctx, dose.ID).Return(dose, nil)
		f.medsRepo.EXPECT().GetByID(ctx, dose.MedicineID).Return(medicineFor(dose), nil)

		_, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{DoseID: &dose.ID, Status: "taken"})
		assert.ErrorIs(t, err, errorvalues.ErrTooEarly)
		assert.Zero(t, f.recomputer.calls)
	})

	t.Run("skip has no early guard", func(t *testing.T) {
		f := newDoseFixture(t)
		dose := pendingDose(uid, time.Now().Add(6*time.Hour))
		f.doseRepo.EXPECT().GetByID(ctx, dose.ID).Return(dose, nil)
		f.medsRepo.EXPECT().GetByID(ctx, dose.MedicineID).Return(medicineFor(dose), nil)
		f.doseRepo.EXPECT().
			UpdateStatusIfPending(ctx, dose.ID, entity.DoseStatusSkipped, gomock.Nil(), "", entity.ConfirmedByUser).
			Return(nil)

		got, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{DoseID: &dose.ID, Status: "skipped"})
		require.NoError(t, err)
		assert.Equal(t, entity.DoseStatusSkipped, got.Status)
		assert.Nil(t, got.ActualTime)
	})

	t.Run("terminal status is immutable", func(t *testing.T) {
		f := newDoseFixture(t)
		dose := pendingDose(uid, time.Now().Add(-time.Hour))
		dose.Status = entity.DoseStatusMissed
		f.doseRepo.EXPECT().GetByID(ctx, dose.ID).Return(dose, nil)
		f.medsRepo.EXPECT().GetByID(ctx, dose.MedicineID).Return(medicineFor(dose), nil)

		_, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{DoseID: &dose.ID, Status: "taken"})
		assert.ErrorIs(t, err, errorvalues.ErrDoseAlreadyDecided)
	})

	t.Run("lost race against the sweeper", func(t *testing.T) {
		f := newDoseFixture(t)
		dose := pendingDose(uid, time.Now().Add(-time.Hour))
		f.doseRepo.EXPECT().GetByID(ctx, dose.ID).Return(dose, nil)
		f.medsRepo.EXPECT().GetByID(ctx, dose.MedicineID).Return(medicineFor(dose), nil)
		f.doseRepo.EXPECT().
			UpdateStatusIfPending(ctx, dose.ID, entity.DoseStatusTaken, gomock.Any(), "", entity.ConfirmedByUser).
			Return(errorvalues.ErrDoseAlreadyDecided)

		_, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{DoseID: &dose.ID, Status: "taken"})
		assert.ErrorIs(t, err, errorvalues.ErrDoseAlreadyDecided)
		assert.Zero(t, f.recomputer.calls)
	})

	t.Run("foreign dose is hidden", func(t *testing.T) {
		f := newDoseFixture(t)
		dose := pendingDose(uuid.New(), time.Now())
		f.doseRepo.EXPECT().GetByID(ctx, dose.ID).Return(dose, nil)

		_, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{DoseID: &dose.ID, Status: "taken"})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})

	t.Run("invalid status fails validation", func(t *testing.T) {
		f := newDoseFixture(t)
		id := uuid.New()
		_, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{DoseID: &id, Status: "devoured"})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})

	t.Run("missing addressing fails validation", func(t *testing.T) {
		f := newDoseFixture(t)
		_, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{Status: "taken"})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})

	t.Run("fuzzy match finds the nearest instance", func(t *testing.T) {
		f := newDoseFixture(t)
		scheduled := time.Now().Add(-10 * time.Minute)
		dose := pendingDose(uid, scheduled)
		med := medicineFor(dose)
		requested := scheduled.Add(4 * time.Minute)
		f.medsRepo.EXPECT().GetByID(ctx, dose.MedicineID).Return(med, nil)
		f.doseRepo.EXPECT().
			FindNearest(ctx, dose.MedicineID, requested, time.Duration(schedule.FuzzyMatchWindowMinutes)*time.Minute).
			Return(dose, nil)
		f.doseRepo.EXPECT().
			UpdateStatusIfPending(ctx, dose.ID, entity.DoseStatusTaken, gomock.Any(), "", entity.ConfirmedByUser).
			Return(nil)

		got, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{
			MedicineID:    &dose.MedicineID,
			ScheduledTime: &requested,
			Status:        "taken",
		})
		require.NoError(t, err)
		assert.Equal(t, dose.ID, got.ID)
		assert.Equal(t, 1, f.recomputer.calls)
	})

	t.Run("fuzzy miss creates the instance on demand", func(t *testing.T) {
		f := newDoseFixture(t)
		med := &entity.Medicine{
			ID:        uuid.New(),
			UserID:    uid,
			Name:      "Ibuprofen",
			Frequency: entity.FrequencyAsNeeded,
			Timezone:  "UTC",
		}
		requested := time.Now().Add(-time.Minute)
		created := &entity.DoseLog{
			ID:            uuid.New(),
			UserID:        uid,
			MedicineID:    med.ID,
			ScheduledTime: requested.UTC(),
			Status:        entity.DoseStatusPending,
		}
		f.medsRepo.EXPECT().GetByID(ctx, med.ID).Return(med, nil)
		f.doseRepo.EXPECT().
			FindNearest(ctx, med.ID, requested, gomock.Any()).
			Return(nil, errorvalues.ErrDoseNotFound)
		f.doseRepo.EXPECT().UpsertInstance(ctx, gomock.Any()).Return(created.ID, nil)
		f.doseRepo.EXPECT().GetByID(ctx, created.ID).Return(created, nil)
		f.doseRepo.EXPECT().
			UpdateStatusIfPending(ctx, created.ID, entity.DoseStatusTaken, gomock.Any(), "", entity.ConfirmedByUser).
			Return(nil)

		got, err := f.ds.UpdateStatus(ctx, uid, &service.UpdateDoseRequest{
			MedicineID:    &med.ID,
			ScheduledTime: &requested,
			Status:        "taken",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, entity.DoseStatusTaken, got.Status)
	})
}

func TestGetDosesByDate(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	zone, _ := schedule.ResolveZone("UTC")

	t.Run("past date reads without generation", func(t *testing.T) {
		f := newDoseFixture(t)
		logs := []*entity.DoseWithMedicine{{MedicineName: "Metformin"}}
		f.doseRepo.EXPECT().
			GetByUserAndRange(ctx, uid,
				time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC)).
			Return(logs, nil)
		got, err := f.ds.GetDosesByDate(ctx, uid, "2020-01-02", zone)
		require.NoError(t, err)
		assert.Equal(t, logs, got)
	})

	t.Run("today generates lazily for an empty schedule", func(t *testing.T) {
		f := newDoseFixture(t)
		date := time.Now().UTC().Format("2006-01-02")
		med := dailyMedicine([]string{"09:00"})
		med.UserID = uid
		f.doseRepo.EXPECT().ExistsOnOrAfter(ctx, uid, gomock.Any()).Return(false, nil)
		f.medsRepo.EXPECT().GetByUserID(ctx, uid, 500, 0).Return([]*entity.Medicine{med}, nil)
		f.doseRepo.EXPECT().BulkInsert(ctx, gomock.Any()).Return(10, nil)
		f.doseRepo.EXPECT().GetByUserAndRange(ctx, uid, gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.ds.GetDosesByDate(ctx, uid, date, zone)
		assert.NoError(t, err)
	})

	t.Run("today skips generation when logs exist", func(t *testing.T) {
		f := newDoseFixture(t)
		date := time.Now().UTC().Format("2006-01-02")
		f.doseRepo.EXPECT().ExistsOnOrAfter(ctx, uid, gomock.Any()).Return(true, nil)
		f.doseRepo.EXPECT().GetByUserAndRange(ctx, uid, gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.ds.GetDosesByDate(ctx, uid, date, zone)
		assert.NoError(t, err)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newDoseFixture(t)
		_, err := f.ds.GetDosesByDate(ctx, uid, "02.01.2020", zone)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	zone, _ := schedule.ResolveZone("UTC")
	f := newDoseFixture(t)

	at := func(h, m int, status entity.DoseStatus) *entity.DoseWithMedicine {
		return &entity.DoseWithMedicine{DoseLog: entity.DoseLog{
			ScheduledTime: time.Date(2020, 1, 2, h, m, 0, 0, time.UTC),
			Status:        status,
		}}
	}
	f.doseRepo.EXPECT().GetByUserAndRange(ctx, uid, gomock.Any(), gomock.Any()).Return([]*entity.DoseWithMedicine{
		at(9, 0, entity.DoseStatusTaken),
		at(9, 0, entity.DoseStatusMissed),
		at(21, 0, entity.DoseStatusTaken),
		at(13, 0, entity.DoseStatusPending),
		at(14, 0, entity.DoseStatusSkipped),
	}, nil)

	summary, err := f.ds.GetSummary(ctx, uid, "2020-01-02", zone)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, entity.DoseSummaryBucket{TimeLabel: "09:00", Taken: 1, Missed: 1}, summary[0])
	assert.Equal(t, entity.DoseSummaryBucket{TimeLabel: "21:00", Taken: 1}, summary[1])
}

func TestGetHistory(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	zone, _ := schedule.ResolveZone("UTC")
	f := newDoseFixture(t)

	f.doseRepo.EXPECT().
		CountDecided(ctx, uid, gomock.Any(), gomock.Any()).
		Return(entity.AdherenceCounts{Taken: 3, Missed: 1}, nil).
		Times(3)

	history, err := f.ds.GetHistory(ctx, uid, 3, zone)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].Day.Before(history[2].Day))
	assert.InDelta(t, 75.0, history[0].Rate, 0.001)
}
