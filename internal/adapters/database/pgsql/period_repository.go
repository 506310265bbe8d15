package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

// FindPeriodByDate picks the latest starting period when several contain date.
func (r *PgxPeriodRepository) FindPeriodByDate(ctx context.Context, companyID string, date time.Time, onlyOpen bool) (*domain.Period, error) {
	query := `
		SELECT
			p.period_id, p.company_id, p.fiscal_year_id, p.name, p.start_date, p.end_date, p.state,
			p.out_liquidation_sequence_id, p.in_liquidation_sequence_id, p.out_credit_note_sequence_id,
			p.created_at, p.created_by, p.last_updated_at, p.last_updated_by,
			f.fiscal_year_id, f.company_id, f.name, f.start_date, f.end_date, f.state,
			f.out_liquidation_sequence_id, f.in_liquidation_sequence_id, f.out_credit_note_sequence_id,
			f.created_at, f.created_by, f.last_updated_at, f.last_updated_by
		FROM periods p
		JOIN fiscal_years f ON f.fiscal_year_id = p.fiscal_year_id
		WHERE p.company_id = $1 AND p.start_date <= $2 AND p.end_date >= $2
			AND (NOT $3::boolean OR p.state = 'open')
		ORDER BY p.start_date DESC
		LIMIT 1;
	`
	var p domain.Period
	var fy domain.FiscalYear
	var periodState, fyState string
	err := r.q(ctx).QueryRow(ctx, query, companyID, domain.DateOnly(date), onlyOpen).Scan(
		&p.PeriodID, &p.CompanyID, &p.FiscalYearID, &p.Name, &p.StartDate, &p.EndDate, &periodState,
		&p.OutLiquidationSequenceID, &p.InLiquidationSequenceID, &p.OutCreditNoteSequenceID,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		&fy.FiscalYearID, &fy.CompanyID, &fy.Name, &fy.StartDate, &fy.EndDate, &fyState,
		&fy.OutLiquidationSequenceID, &fy.InLiquidationSequenceID, &fy.OutCreditNoteSequenceID,
		&fy.CreatedAt, &fy.CreatedBy, &fy.LastUpdatedAt, &fy.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("period for date", date.Format(time.DateOnly))
		}
		return nil, apperrors.NewAppError(500, "failed to find period", err)
	}
	p.State = domain.PeriodState(periodState)
	fy.State = domain.PeriodState(fyState)
	p.FiscalYear = &fy
	return &p, nil
}
