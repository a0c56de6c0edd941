package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/pkg/cleanup"
	"github.com/limbo/medtrack/pkg/entity"
)

type WellnessRepository struct {
	conn PgConnection
}

func NewWellnessRepo(cfg DBConfig) *WellnessRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for wellnessRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for wellnessRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &WellnessRepository{
		conn: pool,
	}
}

func NewWellnessRepoWithConn(conn PgConnection) *WellnessRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for wellnessRepo: " + err.Error())
	}
	return &WellnessRepository{
		conn: conn,
	}
}

func (wr *WellnessRepository) Upsert(ctx context.Context, score *entity.WellnessScore) error {
	_, err := wr.conn.Exec(ctx,
		`INSERT INTO wellness_scores (user_id, day, energy, focus, mood, sleep, vitality, balance, overall_score, adherence_rate, factors, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, day) DO UPDATE SET
			energy = EXCLUDED.energy, focus = EXCLUDED.focus, mood = EXCLUDED.mood,
			sleep = EXCLUDED.sleep, vitality = EXCLUDED.vitality, balance = EXCLUDED.balance,
			overall_score = EXCLUDED.overall_score, adherence_rate = EXCLUDED.adherence_rate,
			factors = EXCLUDED.factors, notes = EXCLUDED.notes, updated_at = NOW();`,
		score.UserID,
		score.Day,
		score.Metrics.Energy,
		score.Metrics.Focus,
		score.Metrics.Mood,
		score.Metrics.Sleep,
		score.Metrics.Vitality,
		score.Metrics.Balance,
		score.OverallScore,
		score.AdherenceRate,
		score.Factors,
		score.Notes,
	)
	if err != nil {
		return errors.New("upserting wellness score error: " + err.Error())
	}
	return nil
}

// UpsertAdherence touches only the adherence column; a missing row is
// created with default metrics so the dashboard always has something
// to show for today.
func (wr *WellnessRepository) UpsertAdherence(ctx context.Context, uid uuid.UUID, day time.Time, rate float64) error {
	_, err := wr.conn.Exec(ctx,
		`INSERT INTO wellness_scores (user_id, day, adherence_rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO UPDATE SET adherence_rate = EXCLUDED.adherence_rate, updated_at = NOW();`,
		uid, day, rate)
	if err != nil {
		return errors.New("upserting adherence rate error: " + err.Error())
	}
	return nil
}

func (wr *WellnessRepository) GetByUserAndDay(ctx context.Context, uid uuid.UUID, day time.Time) (*entity.WellnessScore, error) {
	var s entity.WellnessScore
	row := wr.conn.QueryRow(ctx,
		`SELECT id, user_id, day, energy, focus, mood, sleep, vitality, balance, overall_score, adherence_rate, factors, notes, created_at, updated_at
		FROM wellness_scores WHERE user_id = $1 AND day = $2;`, uid, day)
	err := row.Scan(&s.ID, &s.UserID, &s.Day, &s.Metrics.Energy, &s.Metrics.Focus, &s.Metrics.Mood,
		&s.Metrics.Sleep, &s.Metrics.Vitality, &s.Metrics.Balance, &s.OverallScore, &s.AdherenceRate,
		&s.Factors, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrWellnessNotFound
		}
		return nil, errors.New("getting wellness score error: " + err.Error())
	}
	return &s, nil
}

func (wr *WellnessRepository) GetHistory(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.WellnessScore, error) {
	rows, err := wr.conn.Query(ctx,
		`SELECT id, user_id, day, energy, focus, mood, sleep, vitality, balance, overall_score, adherence_rate, factors, notes, created_at, updated_at
		FROM wellness_scores WHERE user_id = $1 AND day >= $2 AND day < $3 ORDER BY day DESC;`,
		uid, from, to)
	if err != nil {
		return nil, errors.New("getting wellness history error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.WellnessScore, 0)
	for rows.Next() {
		s := entity.WellnessScore{}
		err = rows.Scan(&s.ID, &s.UserID, &s.Day, &s.Metrics.Energy, &s.Metrics.Focus, &s.Metrics.Mood,
			&s.Metrics.Sleep, &s.Metrics.Vitality, &s.Metrics.Balance, &s.OverallScore, &s.AdherenceRate,
			&s.Factors, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, errors.New("wellness row parsing error: " + err.Error())
		}
		result = append(result, &s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected wellness rows error: " + rows.Err().Error())
	}
	return result, nil
}
