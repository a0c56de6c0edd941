package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/medtrack/pkg/entity"
)

type MedicinesRepositoryI interface {
	// Creates new medicine. Only UserID, Name, Dosage, Frequency, Times,
	// StartDate, EndDate, Timezone are read from the entity
	Create(ctx context.Context, med *entity.Medicine) (uuid.UUID, error)
	// Searches medicine with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error)
	// Lists medicines owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Medicine, error)
	// Lists the user's medicines that still lack a timezone (legacy rows)
	GetWithoutTimezone(ctx context.Context, uid uuid.UUID) ([]*entity.Medicine, error)
	// Updates medicine by ID (ID in medicine is necessary)
	Update(ctx context.Context, med *entity.Medicine) error
	// Assigns a timezone to a legacy medicine
	UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error
	// Deletes medicine with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type DoseLogsRepositoryI interface {
	// Inserts generated logs; duplicates on (medicine_id, scheduled_time)
	// are suppressed. Returns how many rows were actually inserted
	BulkInsert(ctx context.Context, logs []*entity.DoseLog) (int, error)
	// Atomically finds-or-creates the log for an exact (medicine, instant) pair
	UpsertInstance(ctx context.Context, log *entity.DoseLog) (uuid.UUID, error)
	// Searches dose log with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DoseLog, error)
	// Finds the log of a medicine closest to t within ±window
	FindNearest(ctx context.Context, medicineID uuid.UUID, t time.Time, window time.Duration) (*entity.DoseLog, error)
	// Applies a terminal status iff the row is still pending
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.DoseStatus, actualTime *time.Time, notes, confirmedBy string) error
	// Removes not-yet-decided future instances of a medicine
	DeleteFuturePending(ctx context.Context, medicineID uuid.UUID, after time.Time) (int64, error)
	// Copies future pending rows into the backup table, then removes them
	BackupAndDeleteFuturePending(ctx context.Context, medicineID uuid.UUID, after time.Time) (int64, error)
	// Lists a user's logs in [from, to) joined with medicine name/dosage
	GetByUserAndRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.DoseWithMedicine, error)
	// Tallies decided logs of a user in [from, to)
	CountDecided(ctx context.Context, uid uuid.UUID, from, to time.Time) (entity.AdherenceCounts, error)
	// Reports whether any log exists for the user at or after from
	ExistsOnOrAfter(ctx context.Context, uid uuid.UUID, from time.Time) (bool, error)
	// Flips overdue pending rows to missed; the sweep's CAS transition
	MarkOverdueMissed(ctx context.Context, before time.Time) (int64, error)
}

type WellnessRepositoryI interface {
	// Inserts or replaces the (user, day) wellness row
	Upsert(ctx context.Context, score *entity.WellnessScore) error
	// Writes the adherence rate for (user, day), creating a default-metrics
	// row when none exists yet
	UpsertAdherence(ctx context.Context, uid uuid.UUID, day time.Time, rate float64) error
	// Fetches the wellness row of one calendar day
	GetByUserAndDay(ctx context.Context, uid uuid.UUID, day time.Time) (*entity.WellnessScore, error)
	// Lists wellness rows in [from, to), newest first
	GetHistory(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.WellnessScore, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
