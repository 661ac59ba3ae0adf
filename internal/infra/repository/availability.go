package repository

import (
	"context"
	"time"

	"shortstay/internal/infra"
	"shortstay/internal/infra/db"

	"github.com/google/uuid"
)

type AvailabilityRepository struct {
	db db.DBTX
}

func NewAvailabilityRepository(dbtx db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: dbtx}
}

// Reserve books every day in [checkIn, checkOut). The pre-check gathers the
// full conflict list for the caller; the per-day conditional upsert is the
// authoritative guard that closes the race between two concurrent attempts —
// a day grabbed between the pre-check and the write shows up as zero rows
// affected and fails the whole reservation.
func (r *AvailabilityRepository) Reserve(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) ([]time.Time, error) {
	conflicts, err := r.Conflicts(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	for day := checkIn; day.Before(checkOut); day = day.AddDate(0, 0, 1) {
		tag, err := r.db.Exec(ctx, `
			INSERT INTO availability_days (property_id, day, status)
			VALUES ($1, $2, 'BOOKED')
			ON CONFLICT (property_id, day)
			DO UPDATE SET status = 'BOOKED', updated_at = now()
			WHERE availability_days.status <> 'BOOKED'`,
			propertyID, day,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to reserve availability day", err)
		}
		if tag.RowsAffected() == 0 {
			// Lost the race on this day. The surrounding transaction rolls
			// back the days already written.
			return []time.Time{day}, nil
		}
	}
	return nil, nil
}

func (r *AvailabilityRepository) Free(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE availability_days SET status = 'AVAILABLE', updated_at = now()
		WHERE property_id = $1 AND day >= $2 AND day < $3`,
		propertyID, checkIn, checkOut,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to free availability days", err)
	}
	return nil
}

func (r *AvailabilityRepository) Conflicts(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `
		SELECT day FROM availability_days
		WHERE property_id = $1 AND day >= $2 AND day < $3 AND status = 'BOOKED'
		ORDER BY day`,
		propertyID, checkIn, checkOut,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query availability conflicts", err)
	}
	defer rows.Close()

	var conflicts []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability day", err)
		}
		conflicts = append(conflicts, day)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability days", err)
	}
	return conflicts, nil
}
