package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/purchase_settlement_app/internal/models"
	"github.com/SscSPs/purchase_settlement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMoveRepository struct {
	BaseRepository
}

func newPgxMoveRepository(pool *pgxpool.Pool) portsrepo.MoveRepositoryFacade {
	return &PgxMoveRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MoveRepositoryFacade = (*PgxMoveRepository)(nil)

const moveSelectQuery = `
SELECT
	move_id, company_id, period_id, journal_id, number, date, origin, state, post_date,
	created_at, created_by, last_updated_at, last_updated_by
FROM moves
`

func (r *PgxMoveRepository) getMoves(ctx context.Context, filterQuery string, args ...any) ([]domain.Move, error) {
	rows, err := r.q(ctx).Query(ctx, moveSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query moves", err)
	}
	defer rows.Close()

	modelMoves, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Move])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect move rows", err)
	}

	moves := make([]domain.Move, len(modelMoves))
	ids := make([]string, len(modelMoves))
	for i, m := range modelMoves {
		moves[i] = mapping.ToDomainMove(m)
		ids[i] = m.MoveID
	}
	if len(ids) == 0 {
		return moves, nil
	}

	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range moves {
		moves[i].Lines = lines[moves[i].MoveID]
	}
	return moves, nil
}

// findLines loads the lines of moveIDs with their tax ledger lines, grouped by move.
func (r *PgxMoveRepository) findLines(ctx context.Context, moveIDs []string) (map[string][]domain.MoveLine, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT
			move_line_id, move_id, account_id, party_id, description, debit, credit,
			amount_second_currency, second_currency,
			created_at, created_by, last_updated_at, last_updated_by
		FROM move_lines
		WHERE move_id = ANY($1)
		ORDER BY move_id, created_at, move_line_id`, moveIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query move lines", err)
	}
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MoveLine])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect move line rows", err)
	}

	taxRows, err := r.q(ctx).Query(ctx, `
		SELECT t.tax_ledger_line_id, t.move_line_id, t.code_id, t.amount, t.tax_id
		FROM move_tax_lines t
		JOIN move_lines ml ON ml.move_line_id = t.move_line_id
		WHERE ml.move_id = ANY($1)
		ORDER BY t.tax_ledger_line_id`, moveIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax ledger lines", err)
	}
	modelTaxLines, err := pgx.CollectRows(taxRows, pgx.RowToStructByName[models.TaxLedgerLine])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect tax ledger rows", err)
	}

	taxByLine := make(map[string][]domain.TaxLedgerLine)
	for _, t := range modelTaxLines {
		taxByLine[t.MoveLineID] = append(taxByLine[t.MoveLineID], mapping.ToDomainTaxLedgerLine(t))
	}

	grouped := make(map[string][]domain.MoveLine, len(moveIDs))
	for _, m := range modelLines {
		line := mapping.ToDomainMoveLine(m)
		line.TaxLines = taxByLine[line.MoveLineID]
		grouped[line.MoveID] = append(grouped[line.MoveID], line)
	}
	return grouped, nil
}

func (r *PgxMoveRepository) FindMoveByID(ctx context.Context, moveID string) (*domain.Move, error) {
	moves, err := r.getMoves(ctx, `WHERE move_id = $1`, moveID)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, notFound("move", moveID)
	}
	return &moves[0], nil
}

func (r *PgxMoveRepository) FindMovesByIDsForUpdate(ctx context.Context, moveIDs []string) ([]domain.Move, error) {
	ids := uniqueIDs(moveIDs)
	if len(ids) == 0 {
		return []domain.Move{}, nil
	}

	moves, err := r.getMoves(ctx, `WHERE move_id = ANY($1) ORDER BY move_id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	if len(moves) != len(ids) {
		found := make(map[string]bool, len(moves))
		for _, m := range moves {
			found[m.MoveID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, notFound("move", id)
			}
		}
	}
	return moves, nil
}

func (r *PgxMoveRepository) SaveMove(ctx context.Context, move domain.Move) error {
	m := mapping.ToModelMove(move)
	query := `
		INSERT INTO moves (
			move_id, company_id, period_id, journal_id, number, date, origin, state, post_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.MoveID, m.CompanyID, m.PeriodID, m.JournalID, m.Number, m.Date, m.Origin, m.State, m.PostDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save move "+m.MoveID)
	}
	return nil
}

// SaveMoveLines inserts the lines before their tax ledger lines in a single batch.
func (r *PgxMoveRepository) SaveMoveLines(ctx context.Context, lines []domain.MoveLine) error {
	if len(lines) == 0 {
		return nil
	}

	lineQuery := `
		INSERT INTO move_lines (
			move_line_id, move_id, account_id, party_id, description, debit, credit,
			amount_second_currency, second_currency,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	taxQuery := `
		INSERT INTO move_tax_lines (tax_ledger_line_id, move_line_id, code_id, amount, tax_id)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	var taxLines []models.TaxLedgerLine
	for _, line := range lines {
		m, lineTaxes := mapping.ToModelMoveLine(line)
		batch.Queue(lineQuery,
			m.MoveLineID, m.MoveID, m.AccountID, m.PartyID, m.Description, m.Debit, m.Credit,
			m.AmountSecondCurrency, m.SecondCurrency,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		taxLines = append(taxLines, lineTaxes...)
	}
	for _, t := range taxLines {
		batch.Queue(taxQuery, t.TaxLedgerLineID, t.MoveLineID, t.CodeID, t.Amount, t.TaxID)
	}
	return r.execBatch(ctx, batch, "move lines")
}

func (r *PgxMoveRepository) MarkMovesPosted(ctx context.Context, moveIDs []string, postDate time.Time, userID string) error {
	query := `
		UPDATE moves SET state = $1, post_date = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE move_id = ANY($4) AND state = $5;
	`
	tag, err := r.q(ctx).Exec(ctx, query, string(domain.MovePosted), postDate, userID, moveIDs, string(domain.MoveDraft))
	if err != nil {
		return apperrors.NewAppError(500, "failed to post moves", err)
	}
	if int(tag.RowsAffected()) != len(uniqueIDs(moveIDs)) {
		return apperrors.NewAppError(409, "some moves were not in draft state", apperrors.ErrConflict)
	}
	return nil
}
