package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/limbo/medtrack/pkg/schedule"
)

type CreateMedicineRequest struct {
	Name      string     `validate:"required,min=1,max=200"`
	Dosage    string     `validate:"max=200"`
	Frequency string     `validate:"required,oneof=daily weekly as_needed"`
	Times     []string   `validate:"dive,hhmm"`
	StartDate time.Time  `validate:"required"`
	EndDate   *time.Time ``
	Timezone  string     `validate:"omitempty,iana_tz"`
}

type UpdateMedicineRequest struct {
	Name      string     `validate:"required,min=1,max=200"`
	Dosage    string     `validate:"max=200"`
	Frequency string     `validate:"required,oneof=daily weekly as_needed"`
	Times     []string   `validate:"dive,hhmm"`
	StartDate time.Time  `validate:"required"`
	EndDate   *time.Time ``
	Timezone  string     `validate:"omitempty,iana_tz"`
}

// UpdateDoseRequest addresses a dose either exactly by id or fuzzily by
// (medicine, approximate instant); the second form tolerates client
// clock skew within the shared ±30 minute window.
type UpdateDoseRequest struct {
	DoseID        *uuid.UUID
	MedicineID    *uuid.UUID
	ScheduledTime *time.Time
	Status        string `validate:"required,oneof=taken skipped"`
	Notes         string `validate:"max=1000"`
}

type UpdateWellnessRequest struct {
	Metrics  entity.WellnessMetrics `validate:"required"`
	Notes    string                 `validate:"max=1000"`
	Timezone string                 `validate:"omitempty,iana_tz"`
}

type BackfillResult struct {
	Updated       int   `json:"updated"`
	LogsBackedUp  int64 `json:"logs_backed_up"`
	LogsRecreated int   `json:"logs_recreated"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type MedicinesServiceI interface {
	// Validates and stores a new medicine, then materializes its future
	// dose instances
	CreateMedicine(ctx context.Context, uid uuid.UUID, req *CreateMedicineRequest) (*entity.Medicine, error)
	// Applies the update; a times/frequency change drops future pending
	// instances and regenerates them
	UpdateMedicine(ctx context.Context, id, uid uuid.UUID, req *UpdateMedicineRequest) (*entity.Medicine, error)
	// Removes the medicine together with its future pending instances
	DeleteMedicine(ctx context.Context, id, uid uuid.UUID) error
	GetMedicine(ctx context.Context, id, uid uuid.UUID) (*entity.Medicine, error)
	GetUserMedicines(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Medicine, error)
	// One-time migration for legacy rows without a timezone
	BackfillTimezones(ctx context.Context, uid uuid.UUID, fallbackZone string, recreate bool) (*BackfillResult, error)
}

type DoseServiceI interface {
	// The status state machine: pending -> taken|skipped with the
	// early-take guard, terminal states immutable
	UpdateStatus(ctx context.Context, uid uuid.UUID, req *UpdateDoseRequest) (*entity.DoseLog, error)
	// One day's logs with medicine info; lazily generates for
	// same-or-future dates when the user has no logs yet
	GetDosesByDate(ctx context.Context, uid uuid.UUID, date string, zone schedule.Zone) ([]*entity.DoseWithMedicine, error)
	// Taken/missed counts of one day grouped by local time label; today
	// is clipped to the current time
	GetSummary(ctx context.Context, uid uuid.UUID, date string, zone schedule.Zone) ([]entity.DoseSummaryBucket, error)
	// Per-day adherence series over the last days
	GetHistory(ctx context.Context, uid uuid.UUID, days int, zone schedule.Zone) ([]entity.AdherenceDay, error)
}

type WellnessServiceI interface {
	// Percentage of taken among decided doses in [from, to)
	CalculateAdherence(ctx context.Context, uid uuid.UUID, from, to time.Time) (float64, error)
	// Recomputes today's adherence and upserts it into the wellness row
	RecomputeToday(ctx context.Context, uid uuid.UUID, zone schedule.Zone) error
	// Stores user-submitted metrics; overall score and adherence are
	// derived server-side, never taken from the request
	UpdateWellness(ctx context.Context, uid uuid.UUID, req *UpdateWellnessRequest) (*entity.WellnessScore, error)
	// Today's row with adherence refreshed on read
	GetToday(ctx context.Context, uid uuid.UUID, zone schedule.Zone) (*entity.WellnessScore, error)
	GetHistory(ctx context.Context, uid uuid.UUID, days int, zone schedule.Zone) ([]*entity.WellnessScore, error)
}

// AdherenceRecomputer is the slice of WellnessServiceI the dose status
// engine needs for its post-update side effect.
type AdherenceRecomputer interface {
	RecomputeToday(ctx context.Context, uid uuid.UUID, zone schedule.Zone) error
}
