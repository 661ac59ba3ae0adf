package repository

import (
	"context"
	"errors"

	"shortstay/internal/infra"
	"shortstay/internal/infra/db"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PropertyRepository is the read-only adapter behind shared.PropertyCatalog.
// The catalog is another service's domain; this core only reads the snapshot
// it needs for pricing and validation.
type PropertyRepository struct {
	db db.DBTX
}

func NewPropertyRepository(dbtx db.DBTX) *PropertyRepository {
	return &PropertyRepository{db: dbtx}
}

func (r *PropertyRepository) GetProperty(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, host_id, name, max_guests, price_per_night, cleaning_fee
		FROM properties WHERE id = $1`, id)

	var snap shared.PropertySnapshot
	err := row.Scan(&snap.ID, &snap.HostID, &snap.Name, &snap.MaxGuests, &snap.PricePerNight, &snap.CleaningFee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property", err)
	}
	return &snap, nil
}
