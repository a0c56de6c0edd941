package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/pkg/cleanup"
	"github.com/limbo/medtrack/pkg/entity"
)

type DoseLogsRepository struct {
	conn PgConnection
}

func NewDoseLogsRepo(cfg DBConfig) *DoseLogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for doseLogsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for doseLogsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &DoseLogsRepository{
		conn: pool,
	}
}

func NewDoseLogsRepoWithConn(conn PgConnection) *DoseLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for doseLogsRepo: " + err.Error())
	}
	return &DoseLogsRepository{
		conn: conn,
	}
}

// BulkInsert writes generated instances row by row so one bad row can't
// sink the whole batch. Collisions on (medicine_id, scheduled_time) are
// regeneration overlap, suppressed by ON CONFLICT.
func (dr *DoseLogsRepository) BulkInsert(ctx context.Context, logs []*entity.DoseLog) (int, error) {
	inserted := 0
	var errs error
	for _, l := range logs {
		ct, err := dr.conn.Exec(ctx,
			`INSERT INTO dose_logs (user_id, medicine_id, scheduled_time, status, day_of_week, hour)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (medicine_id, scheduled_time) DO NOTHING;`,
			l.UserID,
			l.MedicineID,
			l.ScheduledTime,
			entity.DoseStatusPending,
			l.DayOfWeek,
			l.Hour,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				// Racing regeneration, same outcome as ON CONFLICT
				continue
			}
			errs = errors.Join(errs, errors.New("inserting dose log error: "+err.Error()))
			continue
		}
		inserted += int(ct.RowsAffected())
	}
	return inserted, errs
}

// UpsertInstance is the atomic find-or-create for one exact
// (medicine, instant) pair, used by the fuzzy update path.
func (dr *DoseLogsRepository) UpsertInstance(ctx context.Context, l *entity.DoseLog) (uuid.UUID, error) {
	var id uuid.UUID
	row := dr.conn.QueryRow(ctx,
		`INSERT INTO dose_logs (user_id, medicine_id, scheduled_time, status, day_of_week, hour)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (medicine_id, scheduled_time) DO UPDATE SET updated_at = NOW()
		RETURNING id;`,
		l.UserID,
		l.MedicineID,
		l.ScheduledTime,
		entity.DoseStatusPending,
		l.DayOfWeek,
		l.Hour,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.UUID{}, errors.New("upserting dose instance error: " + err.Error())
	}
	return id, nil
}

func (dr *DoseLogsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DoseLog, error) {
	var l entity.DoseLog
	l.ID = id
	row := dr.conn.QueryRow(ctx,
		`SELECT user_id, medicine_id, scheduled_time, status, actual_time, notes, confirmed_by, day_of_week, hour, created_at, updated_at
		FROM dose_logs WHERE id = $1;`, id)
	err := row.Scan(&l.UserID, &l.MedicineID, &l.ScheduledTime, &l.Status, &l.ActualTime,
		&l.Notes, &l.ConfirmedBy, &l.DayOfWeek, &l.Hour, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDoseNotFound
		}
		return nil, errors.New("getting dose log by id error: " + err.Error())
	}
	return &l, nil
}

func (dr *DoseLogsRepository) FindNearest(ctx context.Context, medicineID uuid.UUID, t time.Time, window time.Duration) (*entity.DoseLog, error) {
	var l entity.DoseLog
	row := dr.conn.QueryRow(ctx,
		`SELECT id, user_id, medicine_id, scheduled_time, status, actual_time, notes, confirmed_by, day_of_week, hour, created_at, updated_at
		FROM dose_logs WHERE medicine_id = $1 AND scheduled_time BETWEEN $2 AND $3
		ORDER BY ABS(EXTRACT(EPOCH FROM (scheduled_time - $4))) LIMIT 1;`,
		medicineID, t.Add(-window), t.Add(window), t)
	err := row.Scan(&l.ID, &l.UserID, &l.MedicineID, &l.ScheduledTime, &l.Status, &l.ActualTime,
		&l.Notes, &l.ConfirmedBy, &l.DayOfWeek, &l.Hour, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDoseNotFound
		}
		return nil, errors.New("searching nearest dose log error: " + err.Error())
	}
	return &l, nil
}

// UpdateStatusIfPending is the conditional transition: only a pending
// row may be decided, so a concurrent sweep and a user action can't
// overwrite each other.
func (dr *DoseLogsRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.DoseStatus, actualTime *time.Time, notes, confirmedBy string) error {
	ct, err := dr.conn.Exec(ctx,
		`UPDATE dose_logs SET status = $1, actual_time = $2, notes = COALESCE(NULLIF($3, ''), notes), confirmed_by = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6;`,
		status, actualTime, notes, confirmedBy, id, entity.DoseStatusPending)
	if err != nil {
		return errors.New("updating dose status error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDoseAlreadyDecided
	}
	return nil
}

func (dr *DoseLogsRepository) DeleteFuturePending(ctx context.Context, medicineID uuid.UUID, after time.Time) (int64, error) {
	ct, err := dr.conn.Exec(ctx,
		`DELETE FROM dose_logs WHERE medicine_id = $1 AND status = $2 AND scheduled_time > $3;`,
		medicineID, entity.DoseStatusPending, after)
	if err != nil {
		return 0, errors.New("deleting future pending logs error: " + err.Error())
	}
	return ct.RowsAffected(), nil
}

// BackupAndDeleteFuturePending archives future pending rows before the
// destructive part of a timezone migration removes them.
func (dr *DoseLogsRepository) BackupAndDeleteFuturePending(ctx context.Context, medicineID uuid.UUID, after time.Time) (int64, error) {
	tx, err := dr.conn.Begin(ctx)
	if err != nil {
		return 0, errors.New("starting backup transaction error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx,
		`INSERT INTO dose_logs_backup (dose_log_id, user_id, medicine_id, scheduled_time, status, day_of_week, hour)
		SELECT id, user_id, medicine_id, scheduled_time, status, day_of_week, hour
		FROM dose_logs WHERE medicine_id = $1 AND status = $2 AND scheduled_time > $3;`,
		medicineID, entity.DoseStatusPending, after)
	if err != nil {
		return 0, errors.New("backing up pending logs error: " + err.Error())
	}
	ct, err := tx.Exec(ctx,
		`DELETE FROM dose_logs WHERE medicine_id = $1 AND status = $2 AND scheduled_time > $3;`,
		medicineID, entity.DoseStatusPending, after)
	if err != nil {
		return 0, errors.New("deleting backed up logs error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, errors.New("committing backup transaction error: " + err.Error())
	}
	return ct.RowsAffected(), nil
}

func (dr *DoseLogsRepository) GetByUserAndRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.DoseWithMedicine, error) {
	rows, err := dr.conn.Query(ctx,
		`SELECT dl.id, dl.user_id, dl.medicine_id, dl.scheduled_time, dl.status, dl.actual_time, dl.notes, dl.confirmed_by, dl.day_of_week, dl.hour, dl.created_at, dl.updated_at, m.name, m.dosage
		FROM dose_logs dl JOIN medicines m ON m.id = dl.medicine_id
		WHERE dl.user_id = $1 AND dl.scheduled_time >= $2 AND dl.scheduled_time < $3
		ORDER BY dl.scheduled_time;`,
		uid, from, to)
	if err != nil {
		return nil, errors.New("getting dose logs for range error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.DoseWithMedicine, 0)
	for rows.Next() {
		d := entity.DoseWithMedicine{}
		err = rows.Scan(&d.ID, &d.UserID, &d.MedicineID, &d.ScheduledTime, &d.Status, &d.ActualTime,
			&d.Notes, &d.ConfirmedBy, &d.DayOfWeek, &d.Hour, &d.CreatedAt, &d.UpdatedAt,
			&d.MedicineName, &d.MedicineDosage)
		if err != nil {
			return nil, errors.New("dose log row parsing error: " + err.Error())
		}
		result = append(result, &d)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected dose log rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (dr *DoseLogsRepository) CountDecided(ctx context.Context, uid uuid.UUID, from, to time.Time) (entity.AdherenceCounts, error) {
	var counts entity.AdherenceCounts
	row := dr.conn.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'taken'), COUNT(*) FILTER (WHERE status = 'missed'), COUNT(*) FILTER (WHERE status = 'skipped')
		FROM dose_logs WHERE user_id = $1 AND scheduled_time >= $2 AND scheduled_time < $3;`,
		uid, from, to)
	if err := row.Scan(&counts.Taken, &counts.Missed, &counts.Skipped); err != nil {
		return entity.AdherenceCounts{}, errors.New("counting decided doses error: " + err.Error())
	}
	return counts, nil
}

func (dr *DoseLogsRepository) ExistsOnOrAfter(ctx context.Context, uid uuid.UUID, from time.Time) (bool, error) {
	var exists bool
	row := dr.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM dose_logs WHERE user_id = $1 AND scheduled_time >= $2);`,
		uid, from)
	if err := row.Scan(&exists); err != nil {
		return false, errors.New("inspecting if dose logs exist error: " + err.Error())
	}
	return exists, nil
}

func (dr *DoseLogsRepository) MarkOverdueMissed(ctx context.Context, before time.Time) (int64, error) {
	ct, err := dr.conn.Exec(ctx,
		`UPDATE dose_logs SET status = $1, confirmed_by = $2, updated_at = NOW()
		WHERE status = $3 AND scheduled_time < $4;`,
		entity.DoseStatusMissed, entity.ConfirmedByAuto, entity.DoseStatusPending, before)
	if err != nil {
		return 0, errors.New("marking overdue doses missed error: " + err.Error())
	}
	return ct.RowsAffected(), nil
}
