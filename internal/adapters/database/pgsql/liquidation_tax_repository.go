package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/purchase_settlement_app/internal/models"
	"github.com/SscSPs/purchase_settlement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLiquidationTaxRepository struct {
	BaseRepository
}

func newPgxLiquidationTaxRepository(pool *pgxpool.Pool) portsrepo.LiquidationTaxRepositoryFacade {
	return &PgxLiquidationTaxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LiquidationTaxRepositoryFacade = (*PgxLiquidationTaxRepository)(nil)

const taxLineSelectQuery = `
SELECT
	liquidation_tax_id, liquidation_id, description, sequence, account_id, base, amount, manual,
	base_code_id, base_sign, tax_code_id, tax_sign, tax_id, subtype,
	created_at, created_by, last_updated_at, last_updated_by
FROM liquidation_taxes
`

func (r *PgxLiquidationTaxRepository) getTaxLines(ctx context.Context, filterQuery string, args ...any) ([]models.LiquidationTax, error) {
	rows, err := r.q(ctx).Query(ctx, taxLineSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax lines", err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LiquidationTax])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.LiquidationTax{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect tax line rows", err)
	}
	return lines, nil
}

func (r *PgxLiquidationTaxRepository) FindTaxLineByID(ctx context.Context, taxLineID string) (*domain.LiquidationTax, error) {
	lines, err := r.getTaxLines(ctx, `WHERE liquidation_tax_id = $1`, taxLineID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, notFound("tax line", taxLineID)
	}
	line := mapping.ToDomainLiquidationTax(lines[0])
	return &line, nil
}

func (r *PgxLiquidationTaxRepository) FindTaxLinesByLiquidationIDs(ctx context.Context, liquidationIDs []string) (map[string][]domain.LiquidationTax, error) {
	grouped := make(map[string][]domain.LiquidationTax, len(liquidationIDs))
	if len(liquidationIDs) == 0 {
		return grouped, nil
	}

	lines, err := r.getTaxLines(ctx,
		`WHERE liquidation_id = ANY($1) ORDER BY liquidation_id, sequence ASC NULLS LAST, created_at, liquidation_tax_id`,
		liquidationIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range lines {
		grouped[m.LiquidationID] = append(grouped[m.LiquidationID], mapping.ToDomainLiquidationTax(m))
	}
	return grouped, nil
}

func (r *PgxLiquidationTaxRepository) SaveTaxLines(ctx context.Context, lines []domain.LiquidationTax) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO liquidation_taxes (
			liquidation_tax_id, liquidation_id, description, sequence, account_id, base, amount, manual,
			base_code_id, base_sign, tax_code_id, tax_sign, tax_id, subtype,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelLiquidationTax(line)
		batch.Queue(query,
			m.LiquidationTaxID, m.LiquidationID, m.Description, m.Sequence, m.AccountID, m.Base, m.Amount, m.Manual,
			m.BaseCodeID, m.BaseSign, m.TaxCodeID, m.TaxSign, m.TaxID, m.Subtype,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	return r.execBatch(ctx, batch, "tax lines")
}

func (r *PgxLiquidationTaxRepository) UpdateTaxLine(ctx context.Context, line domain.LiquidationTax) error {
	m := mapping.ToModelLiquidationTax(line)
	query := `
		UPDATE liquidation_taxes SET
			description = $2, sequence = $3, account_id = $4, base = $5, amount = $6, manual = $7,
			base_code_id = $8, base_sign = $9, tax_code_id = $10, tax_sign = $11, tax_id = $12,
			subtype = $13, last_updated_at = $14, last_updated_by = $15
		WHERE liquidation_tax_id = $1;
	`
	tag, err := r.q(ctx).Exec(ctx, query,
		m.LiquidationTaxID, m.Description, m.Sequence, m.AccountID, m.Base, m.Amount, m.Manual,
		m.BaseCodeID, m.BaseSign, m.TaxCodeID, m.TaxSign, m.TaxID,
		m.Subtype, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to update tax line "+m.LiquidationTaxID)
	}
	if tag.RowsAffected() == 0 {
		return notFound("tax line", m.LiquidationTaxID)
	}
	return nil
}

func (r *PgxLiquidationTaxRepository) DeleteTaxLine(ctx context.Context, taxLineID string) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM liquidation_taxes WHERE liquidation_tax_id = $1;`, taxLineID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete tax line "+taxLineID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("tax line", taxLineID)
	}
	return nil
}
