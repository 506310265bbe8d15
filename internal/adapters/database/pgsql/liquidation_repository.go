package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/purchase_settlement_app/internal/models"
	"github.com/SscSPs/purchase_settlement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLiquidationRepository struct {
	BaseRepository
}

func newPgxLiquidationRepository(pool *pgxpool.Pool) portsrepo.LiquidationRepositoryFacade {
	return &PgxLiquidationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LiquidationRepositoryFacade = (*PgxLiquidationRepository)(nil)

const liquidationColumns = `
	l.liquidation_id, l.company_id, l.type, l.number, l.reference, l.description, l.state,
	l.liquidation_date, l.accounting_date, l.party_id, l.address_id, l.currency_code,
	l.journal_id, l.move_id, l.account_id, l.comment,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by`

const liquidationSelectQuery = `SELECT` + liquidationColumns + `
FROM liquidations l
`

// moveSumExpr is the balance of a move line on the liquidation account, read in
// the liquidation currency when the line carries it as second currency.
const moveSumExpr = `SUM(CASE WHEN ml.second_currency = l.currency_code
		THEN ABS(ml.amount_second_currency) * SIGN(ml.debit - ml.credit)
		ELSE ml.debit - ml.credit END)`

// principalSignExpr mirrors LiquidationType.PrincipalSign.
const principalSignExpr = `CASE WHEN l.type IN ('in_liquidation', 'out_credit_note') THEN 1 ELSE -1 END`

var amountColumns = map[domain.AmountField]string{
	domain.UntaxedAmount: "(a.total_amount - a.tax_amount)",
	domain.TaxAmount:     "a.tax_amount",
	domain.TotalAmount:   "a.total_amount",
}

var sqlOperators = map[domain.ComparisonOperator]string{
	domain.OpEqual:        "=",
	domain.OpNotEqual:     "<>",
	domain.OpLess:         "<",
	domain.OpLessEqual:    "<=",
	domain.OpGreater:      ">",
	domain.OpGreaterEqual: ">=",
}

func (r *PgxLiquidationRepository) getLiquidations(ctx context.Context, query string, args ...any) ([]domain.Liquidation, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query liquidations", err)
	}
	defer rows.Close()

	modelLiquidations, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Liquidation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Liquidation{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect liquidation rows", err)
	}
	return mapping.ToDomainLiquidationSlice(modelLiquidations), nil
}

func (r *PgxLiquidationRepository) FindLiquidationByID(ctx context.Context, companyID, liquidationID string) (*domain.Liquidation, error) {
	liquidations, err := r.getLiquidations(ctx, liquidationSelectQuery+`WHERE l.company_id = $1 AND l.liquidation_id = $2`, companyID, liquidationID)
	if err != nil {
		return nil, err
	}
	if len(liquidations) == 0 {
		return nil, notFound("liquidation", liquidationID)
	}
	return &liquidations[0], nil
}

func (r *PgxLiquidationRepository) FindLiquidationsByIDs(ctx context.Context, companyID string, liquidationIDs []string) ([]domain.Liquidation, error) {
	return r.findByIDs(ctx, companyID, liquidationIDs, false)
}

// FindLiquidationsByIDsForUpdate locks rows in id order so concurrent batches
// over overlapping ids cannot deadlock.
func (r *PgxLiquidationRepository) FindLiquidationsByIDsForUpdate(ctx context.Context, companyID string, liquidationIDs []string) ([]domain.Liquidation, error) {
	return r.findByIDs(ctx, companyID, liquidationIDs, true)
}

func (r *PgxLiquidationRepository) findByIDs(ctx context.Context, companyID string, liquidationIDs []string, forUpdate bool) ([]domain.Liquidation, error) {
	ids := uniqueIDs(liquidationIDs)
	if len(ids) == 0 {
		return []domain.Liquidation{}, nil
	}

	query := liquidationSelectQuery + `WHERE l.company_id = $1 AND l.liquidation_id = ANY($2) ORDER BY l.liquidation_id`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	found, err := r.getLiquidations(ctx, query, companyID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Liquidation, len(found))
	for _, l := range found {
		byID[l.LiquidationID] = l
	}
	result := make([]domain.Liquidation, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, notFound("liquidation", id)
		}
		result = append(result, l)
	}
	return result, nil
}

// ListLiquidations evaluates the derived totals in SQL so amount filters and
// pagination apply to the same result set.
func (r *PgxLiquidationRepository) ListLiquidations(ctx context.Context, filter domain.LiquidationFilter) ([]domain.Liquidation, error) {
	query, args, err := buildListLiquidationsQuery(filter)
	if err != nil {
		return nil, err
	}
	return r.getLiquidations(ctx, query, args...)
}

func buildListLiquidationsQuery(filter domain.LiquidationFilter) (string, []any, error) {
	var args sqlArgs
	company := args.add(filter.CompanyID)

	var sb strings.Builder
	sb.WriteString(`
WITH tax_sums AS (
	SELECT lt.liquidation_id, SUM(lt.amount) AS amount
	FROM liquidation_taxes lt
	JOIN liquidations l ON l.liquidation_id = lt.liquidation_id
	WHERE l.company_id = ` + company + `
	GROUP BY lt.liquidation_id
), move_sums AS (
	SELECT l.liquidation_id, ` + moveSumExpr + ` AS amount
	FROM liquidations l
	JOIN move_lines ml ON ml.move_id = l.move_id AND ml.account_id = l.account_id
	WHERE l.company_id = ` + company + `
	GROUP BY l.liquidation_id
), amounts AS (
	SELECT l.liquidation_id,
		COALESCE(ts.amount, 0) AS tax_amount,
		CASE WHEN l.move_id IS NULL THEN COALESCE(ts.amount, 0)
			ELSE COALESCE(ms.amount, 0) * ` + principalSignExpr + `
		END AS total_amount
	FROM liquidations l
	LEFT JOIN tax_sums ts ON ts.liquidation_id = l.liquidation_id
	LEFT JOIN move_sums ms ON ms.liquidation_id = l.liquidation_id
	WHERE l.company_id = ` + company + `
)
SELECT` + liquidationColumns + `
FROM liquidations l
JOIN amounts a ON a.liquidation_id = l.liquidation_id
WHERE l.company_id = ` + company)

	if filter.State != nil {
		sb.WriteString(" AND l.state = " + args.add(string(*filter.State)))
	}
	if filter.Type != nil {
		sb.WriteString(" AND l.type = " + args.add(string(*filter.Type)))
	}
	if filter.PartyID != nil {
		sb.WriteString(" AND l.party_id = " + args.add(*filter.PartyID))
	}
	if filter.Number != nil {
		sb.WriteString(" AND l.number ILIKE '%' || " + args.add(*filter.Number) + " || '%'")
	}
	if filter.DateFrom != nil {
		sb.WriteString(" AND l.liquidation_date >= " + args.add(domain.DateOnly(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		sb.WriteString(" AND l.liquidation_date <= " + args.add(domain.DateOnly(*filter.DateTo)))
	}
	for _, f := range filter.AmountFilters {
		column, ok := amountColumns[f.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown amount field %q", apperrors.ErrValidation, f.Field)
		}
		op, ok := sqlOperators[f.Operator]
		if !ok {
			return "", nil, fmt.Errorf("%w: unsupported operator %q", apperrors.ErrValidation, f.Operator)
		}
		sb.WriteString(" AND " + column + " " + op + " " + args.add(f.Value))
	}

	sb.WriteString(" ORDER BY l.liquidation_date DESC NULLS LAST, l.created_at DESC, l.liquidation_id")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + args.add(filter.Limit))
	}
	if filter.Offset > 0 {
		sb.WriteString(" OFFSET " + args.add(filter.Offset))
	}
	return sb.String(), args, nil
}

func (r *PgxLiquidationRepository) SaveLiquidation(ctx context.Context, liquidation domain.Liquidation) error {
	m := mapping.ToModelLiquidation(liquidation)
	query := `
		INSERT INTO liquidations (
			liquidation_id, company_id, type, number, reference, description, state,
			liquidation_date, accounting_date, party_id, address_id, currency_code,
			journal_id, move_id, account_id, comment,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.LiquidationID, m.CompanyID, m.Type, m.Number, m.Reference, m.Description, m.State,
		m.LiquidationDate, m.AccountingDate, m.PartyID, m.AddressID, m.CurrencyCode,
		m.JournalID, m.MoveID, m.AccountID, m.Comment,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save liquidation "+m.LiquidationID)
	}
	return nil
}

func (r *PgxLiquidationRepository) UpdateLiquidation(ctx context.Context, liquidation domain.Liquidation) error {
	m := mapping.ToModelLiquidation(liquidation)
	query := `
		UPDATE liquidations SET
			reference = $2, description = $3, liquidation_date = $4, accounting_date = $5,
			party_id = $6, address_id = $7, currency_code = $8, journal_id = $9,
			account_id = $10, comment = $11, last_updated_at = $12, last_updated_by = $13
		WHERE liquidation_id = $1;
	`
	tag, err := r.q(ctx).Exec(ctx, query,
		m.LiquidationID, m.Reference, m.Description, m.LiquidationDate, m.AccountingDate,
		m.PartyID, m.AddressID, m.CurrencyCode, m.JournalID,
		m.AccountID, m.Comment, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to update liquidation "+m.LiquidationID)
	}
	if tag.RowsAffected() == 0 {
		return notFound("liquidation", m.LiquidationID)
	}
	return nil
}

func (r *PgxLiquidationRepository) UpdateLiquidationsState(ctx context.Context, liquidationIDs []string, state domain.LiquidationState, userID string, now time.Time) error {
	query := `
		UPDATE liquidations SET state = $1, last_updated_at = $2, last_updated_by = $3
		WHERE liquidation_id = ANY($4);
	`
	if _, err := r.q(ctx).Exec(ctx, query, string(state), now, userID, liquidationIDs); err != nil {
		return apperrors.NewAppError(500, "failed to update liquidation state", err)
	}
	return nil
}

func (r *PgxLiquidationRepository) SetLiquidationNumber(ctx context.Context, liquidationID, number string, liquidationDate *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE liquidations SET
			number = $2, liquidation_date = COALESCE($3, liquidation_date),
			last_updated_at = $4, last_updated_by = $5
		WHERE liquidation_id = $1 AND number IS NULL;
	`
	tag, err := r.q(ctx).Exec(ctx, query, liquidationID, number, liquidationDate, now, userID)
	if err != nil {
		return mapWriteError(err, "failed to number liquidation "+liquidationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: liquidation %s is already numbered", apperrors.ErrConflict, liquidationID)
	}
	return nil
}

func (r *PgxLiquidationRepository) SetLiquidationMove(ctx context.Context, liquidationID, moveID string, userID string, now time.Time) error {
	query := `
		UPDATE liquidations SET move_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE liquidation_id = $1 AND move_id IS NULL;
	`
	tag, err := r.q(ctx).Exec(ctx, query, liquidationID, moveID, now, userID)
	if err != nil {
		return mapWriteError(err, "failed to link move to liquidation "+liquidationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: liquidation %s already has a move", apperrors.ErrConflict, liquidationID)
	}
	return nil
}

func (r *PgxLiquidationRepository) DeleteLiquidations(ctx context.Context, companyID string, liquidationIDs []string) error {
	query := `DELETE FROM liquidations WHERE company_id = $1 AND liquidation_id = ANY($2);`
	if _, err := r.q(ctx).Exec(ctx, query, companyID, liquidationIDs); err != nil {
		return mapWriteError(err, "failed to delete liquidations")
	}
	return nil
}

func (r *PgxLiquidationRepository) SumTaxAmounts(ctx context.Context, liquidationIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT liquidation_id, SUM(amount)
		FROM liquidation_taxes
		WHERE liquidation_id = ANY($1)
		GROUP BY liquidation_id;
	`
	return r.sumByLiquidation(ctx, query, liquidationIDs)
}

func (r *PgxLiquidationRepository) SumMoveAmounts(ctx context.Context, liquidationIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT l.liquidation_id, ` + moveSumExpr + `
		FROM liquidations l
		JOIN move_lines ml ON ml.move_id = l.move_id AND ml.account_id = l.account_id
		WHERE l.liquidation_id = ANY($1)
		GROUP BY l.liquidation_id;
	`
	return r.sumByLiquidation(ctx, query, liquidationIDs)
}

func (r *PgxLiquidationRepository) sumByLiquidation(ctx context.Context, query string, liquidationIDs []string) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal, len(liquidationIDs))
	if len(liquidationIDs) == 0 {
		return sums, nil
	}

	rows, err := r.q(ctx).Query(ctx, query, liquidationIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum liquidation amounts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var sum decimal.NullDecimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan liquidation amount", err)
		}
		if sum.Valid {
			sums[id] = sum.Decimal
		} else {
			sums[id] = decimal.Zero
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating liquidation amounts", err)
	}
	return sums, nil
}
