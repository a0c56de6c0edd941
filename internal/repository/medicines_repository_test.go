package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/internal/repository"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMedicine() *entity.Medicine {
	return &entity.Medicine{
		UserID:    userID,
		Name:      "Metformin",
		Dosage:    "500mg",
		Frequency: entity.FrequencyDaily,
		Times:     []string{"09:00", "21:00"},
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Timezone:  "Asia/Kolkata",
	}
}

func TestCreateMedicineRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewMedicinesRepoWithConn(mock)
	query := regexp.QuoteMeta(`INSERT INTO medicines (user_id, name, dosage, frequency, times, start_date, end_date, timezone)`)
	med := sampleMedicine()
	wantID := uuid.New()
	ctx := context.Background()

	t.Run("successful", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(med.UserID, med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(wantID))
		id, err := repo.Create(ctx, med)
		require.NoError(t, err)
		assert.Equal(t, wantID, id)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(med.UserID, med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone).
			WillReturnError(errors.New("db down"))
		_, err := repo.Create(ctx, med)
		assert.EqualError(t, err, "creating medicine db error: db down")
	})
}

func TestGetMedicineByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewMedicinesRepoWithConn(mock)
	query := regexp.QuoteMeta(`FROM medicines WHERE id = $1;`)
	med := sampleMedicine()
	id := uuid.New()
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(id).WillReturnRows(
			pgxmock.NewRows([]string{"user_id", "name", "dosage", "frequency", "times", "start_date", "end_date", "timezone", "created_at", "updated_at"}).
				AddRow(med.UserID, med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone, created, created))
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, med.Name, got.Name)
		assert.Equal(t, med.Times, got.Times)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(id).WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, errorvalues.ErrMedicineNotFound)
	})
}

func TestGetMedicinesByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewMedicinesRepoWithConn(mock)
	med := sampleMedicine()
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM medicines WHERE user_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3;`)).
		WithArgs(userID, 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "dosage", "frequency", "times", "start_date", "end_date", "timezone", "created_at", "updated_at"}).
			AddRow(uuid.New(), med.UserID, med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone, created, created).
			AddRow(uuid.New(), med.UserID, "Vitamin D", "", entity.FrequencyWeekly, []string{"10:00"}, med.StartDate, med.EndDate, "", created, created))

	meds, err := repo.GetByUserID(context.Background(), userID, 20, 0)
	require.NoError(t, err)
	require.Len(t, meds, 2)
	assert.Equal(t, "Vitamin D", meds[1].Name)
}

func TestGetWithoutTimezone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewMedicinesRepoWithConn(mock)
	med := sampleMedicine()
	med.Timezone = ""
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`(timezone IS NULL OR timezone = '')`)).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "dosage", "frequency", "times", "start_date", "end_date", "timezone", "created_at", "updated_at"}).
			AddRow(uuid.New(), med.UserID, med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone, created, created))

	meds, err := repo.GetWithoutTimezone(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Empty(t, meds[0].Timezone)
}

func TestUpdateMedicineRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewMedicinesRepoWithConn(mock)
	query := regexp.QuoteMeta(`UPDATE medicines SET name = $1, dosage = $2, frequency = $3, times = $4,`)
	med := sampleMedicine()
	med.ID = uuid.New()
	ctx := context.Background()

	t.Run("successful", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone, med.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.Update(ctx, med))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone, med.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.Update(ctx, med), errorvalues.ErrMedicineNotFound)
	})
}

func TestUpdateTimezone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewMedicinesRepoWithConn(mock)
	query := regexp.QuoteMeta(`UPDATE medicines SET timezone = $1, updated_at = NOW() WHERE id = $2;`)
	id := uuid.New()
	ctx := context.Background()

	t.Run("successful", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs("UTC", id).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.UpdateTimezone(ctx, id, "UTC"))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs("UTC", id).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.UpdateTimezone(ctx, id, "UTC"), errorvalues.ErrMedicineNotFound)
	})
}

func TestDeleteMedicineRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewMedicinesRepoWithConn(mock)
	query := regexp.QuoteMeta(`DELETE FROM medicines WHERE id = $1;`)
	id := uuid.New()
	ctx := context.Background()

	t.Run("successful", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, repo.Delete(ctx, id), errorvalues.ErrMedicineNotFound)
	})
}
