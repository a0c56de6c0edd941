package entity

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyAsNeeded Frequency = "as_needed"
)

type DoseStatus string

const (
	DoseStatusPending DoseStatus = "pending"
	DoseStatusTaken   DoseStatus = "taken"
	DoseStatusSkipped DoseStatus = "skipped"
	DoseStatusMissed  DoseStatus = "missed"
)

// Decided reports whether the status is terminal.
func (s DoseStatus) Decided() bool {
	return s == DoseStatusTaken || s == DoseStatusSkipped || s == DoseStatusMissed
}

const (
	ConfirmedByUser = "user"
	ConfirmedByAuto = "auto"
)

type Medicine struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"uid"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency Frequency  `json:"frequency"`
	Times     []string   `json:"times"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Timezone  string     `json:"timezone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type DoseLog struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"uid"`
	MedicineID    uuid.UUID  `json:"medicine_id"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	Status        DoseStatus `json:"status"`
	ActualTime    *time.Time `json:"actual_time,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	ConfirmedBy   string     `json:"confirmed_by,omitempty"`
	DayOfWeek     int        `json:"day_of_week"`
	Hour          int        `json:"hour"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DoseWithMedicine is the by-date view: a dose log joined with the
// name and dosage of its medicine.
type DoseWithMedicine struct {
	DoseLog
	MedicineName   string `json:"medicine_name"`
	MedicineDosage string `json:"medicine_dosage"`
}

type WellnessMetrics struct {
	Energy   int `json:"energy"`
	Focus    int `json:"focus"`
	Mood     int `json:"mood"`
	Sleep    int `json:"sleep"`
	Vitality int `json:"vitality"`
	Balance  int `json:"balance"`
}

// Overall is the mean of the six metrics, rounded down.
func (m WellnessMetrics) Overall() int {
	return (m.Energy + m.Focus + m.Mood + m.Sleep + m.Vitality + m.Balance) / 6
}

type WellnessScore struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"uid"`
	Day           time.Time       `json:"day"`
	Metrics       WellnessMetrics `json:"metrics"`
	OverallScore  int             `json:"overall_score"`
	AdherenceRate float64         `json:"adherence_rate"`
	Factors       []string        `json:"factors,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DoseSummaryBucket groups decided doses of one day by their local
// time-of-day label.
type DoseSummaryBucket struct {
	TimeLabel string `json:"time"`
	Taken     int    `json:"taken"`
	Missed    int    `json:"missed"`
}

// AdherenceCounts holds the decided-dose tallies for a date range.
// Pending doses are excluded on purpose: only logs whose fate is
// settled take part in the adherence rate.
type AdherenceCounts struct {
	Taken   int `json:"taken"`
	Missed  int `json:"missed"`
	Skipped int `json:"skipped"`
}

// Rate scales taken/(taken+missed+skipped) to 0..100. Zero when no
// dose has been decided yet.
func (c AdherenceCounts) Rate() float64 {
	denom := c.Taken + c.Missed + c.Skipped
	if denom == 0 {
		return 0
	}
	return float64(c.Taken) / float64(denom) * 100
}

// AdherenceDay is one point of the adherence history series.
type AdherenceDay struct {
	Day    time.Time       `json:"day"`
	Counts AdherenceCounts `json:"counts"`
	Rate   float64         `json:"rate"`
}
