package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/wayfarer/internal/core"
)

type TripsRepo struct {
	db *sql.DB
}

func NewTripsRepo(db *sql.DB) *TripsRepo {
	return &TripsRepo{db: db}
}

func (r *TripsRepo) Create(ctx context.Context, trip *core.Trip) error {
	if trip.Status == "" {
		trip.Status = core.TripStatusGathering
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO trips (user_id, destination, start_date, end_date, budget, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		trip.UserID, trip.Destination, trip.StartDate, trip.EndDate, trip.Budget, trip.Status,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("trip id: %w", err)
	}
	trip.ID = id
	return nil
}

func (r *TripsRepo) Get(ctx context.Context, id int64) (*core.Trip, error) {
	trip := &core.Trip{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, destination, start_date, end_date, budget, status, created_at, updated_at
		FROM trips WHERE id = ?`, id,
	).Scan(
		&trip.ID, &trip.UserID, &trip.Destination, &trip.StartDate, &trip.EndDate,
		&trip.Budget, &trip.Status, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch trip: %w", err)
	}
	return trip, nil
}
