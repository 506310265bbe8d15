package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextNumber increments the counter in place. The UPDATE holds the row lock until
// the caller's transaction ends, so a rolled back posting gives its number back.
func (r *PgxSequenceRepository) NextNumber(ctx context.Context, sequenceID string) (*domain.StrictSequence, int64, error) {
	query := `
		UPDATE strict_sequences
		SET number_next = number_next + number_increment, last_updated_at = NOW()
		WHERE sequence_id = $1
		RETURNING sequence_id, name, prefix, suffix, padding, number_next, number_increment,
			created_at, created_by, last_updated_at, last_updated_by,
			number_next - number_increment;
	`
	var seq domain.StrictSequence
	var allocated int64
	err := r.q(ctx).QueryRow(ctx, query, sequenceID).Scan(
		&seq.SequenceID, &seq.Name, &seq.Prefix, &seq.Suffix, &seq.Padding, &seq.NumberNext, &seq.NumberIncrement,
		&seq.CreatedAt, &seq.CreatedBy, &seq.LastUpdatedAt, &seq.LastUpdatedBy,
		&allocated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, notFound("sequence", sequenceID)
		}
		return nil, 0, apperrors.NewAppError(500, "failed to allocate number from sequence "+sequenceID, err)
	}
	return &seq, allocated, nil
}
