package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/pkg/cleanup"
	"github.com/limbo/medtrack/pkg/entity"
)

type MedicinesRepository struct {
	conn PgConnection
}

func NewMedicinesRepo(cfg DBConfig) *MedicinesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for medicinesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for medicinesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &MedicinesRepository{
		conn: pool,
	}
}

func NewMedicinesRepoWithConn(conn PgConnection) *MedicinesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for medicinesRepo: " + err.Error())
	}
	return &MedicinesRepository{
		conn: conn,
	}
}

func (mr *MedicinesRepository) Create(ctx context.Context, med *entity.Medicine) (uuid.UUID, error) {
	var id uuid.UUID
	row := mr.conn.QueryRow(ctx,
		`INSERT INTO medicines (user_id, name, dosage, frequency, times, start_date, end_date, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`,
		med.UserID,
		med.Name,
		med.Dosage,
		med.Frequency,
		med.Times,
		med.StartDate,
		med.EndDate,
		med.Timezone,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.UUID{}, errors.New("creating medicine db error: " + err.Error())
	}
	return id, nil
}

func (mr *MedicinesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error) {
	var med entity.Medicine
	med.ID = id
	row := mr.conn.QueryRow(ctx,
		`SELECT user_id, name, dosage, frequency, times, start_date, end_date, timezone, created_at, updated_at
		FROM medicines WHERE id = $1;`, id)
	err := row.Scan(&med.UserID, &med.Name, &med.Dosage, &med.Frequency, &med.Times,
		&med.StartDate, &med.EndDate, &med.Timezone, &med.CreatedAt, &med.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrMedicineNotFound
		}
		return nil, errors.New("getting medicine by id error: " + err.Error())
	}
	return &med, nil
}

func (mr *MedicinesRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Medicine, error) {
	meds := make([]*entity.Medicine, 0)
	rows, err := mr.conn.Query(ctx,
		`SELECT id, user_id, name, dosage, frequency, times, start_date, end_date, timezone, created_at, updated_at
		FROM medicines WHERE user_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting medicines by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		m := entity.Medicine{}
		err = rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency, &m.Times,
			&m.StartDate, &m.EndDate, &m.Timezone, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling medicine error: " + err.Error())
		}
		meds = append(meds, &m)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return meds, nil
}

func (mr *MedicinesRepository) GetWithoutTimezone(ctx context.Context, uid uuid.UUID) ([]*entity.Medicine, error) {
	meds := make([]*entity.Medicine, 0)
	rows, err := mr.conn.Query(ctx,
		`SELECT id, user_id, name, dosage, frequency, times, start_date, end_date, timezone, created_at, updated_at
		FROM medicines WHERE user_id = $1 AND (timezone IS NULL OR timezone = '');`, uid)
	if err != nil {
		return nil, errors.New("getting legacy medicines error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		m := entity.Medicine{}
		err = rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency, &m.Times,
			&m.StartDate, &m.EndDate, &m.Timezone, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling medicine error: " + err.Error())
		}
		meds = append(meds, &m)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return meds, nil
}

func (mr *MedicinesRepository) Update(ctx context.Context, med *entity.Medicine) error {
	ct, err := mr.conn.Exec(ctx,
		`UPDATE medicines SET name = $1, dosage = $2, frequency = $3, times = $4,
		start_date = $5, end_date = $6, timezone = $7, updated_at = NOW() WHERE id = $8;`,
		med.Name, med.Dosage, med.Frequency, med.Times, med.StartDate, med.EndDate, med.Timezone, med.ID,
	)
	if err != nil {
		return errors.New("error updating medicine: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMedicineNotFound
	}
	return nil
}

func (mr *MedicinesRepository) UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error {
	ct, err := mr.conn.Exec(ctx,
		`UPDATE medicines SET timezone = $1, updated_at = NOW() WHERE id = $2;`, timezone, id)
	if err != nil {
		return errors.New("error assigning timezone: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMedicineNotFound
	}
	return nil
}

func (mr *MedicinesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := mr.conn.Exec(ctx, `DELETE FROM medicines WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting medicine: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMedicineNotFound
	}
	return nil
}
