package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// ledgerService books double-entry moves.
type ledgerService struct {
	BaseService
	moveRepo portsrepo.MoveRepositoryFacade
	clock    portssvc.Clock
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(moveRepo portsrepo.MoveRepositoryFacade, clock portssvc.Clock) portssvc.LedgerSvc {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &ledgerService{moveRepo: moveRepo, clock: clock}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) CreateMove(ctx context.Context, move domain.Move, userID string) (*domain.Move, error) {
	move.MoveID = uuid.NewString()
	move.State = domain.MoveDraft
	move.PostDate = nil
	move.Date = domain.DateOnly(move.Date)
	move.Lines = nil
	move.AuditFields = domain.NewAuditFields(userID, s.clock.Now())

	if err := s.moveRepo.SaveMove(ctx, move); err != nil {
		s.LogError(ctx, err, "Failed to save move", slog.String("origin", move.Origin))
		return nil, err
	}
	return &move, nil
}

func (s *ledgerService) CreateLines(ctx context.Context, moveID string, lines []domain.MoveLine, userID string) ([]domain.MoveLine, error) {
	move, err := s.moveRepo.FindMoveByID(ctx, moveID)
	if err != nil {
		return nil, err
	}
	if move.State == domain.MovePosted {
		return nil, apperrors.NewUserError(apperrors.KindMovePosted, map[string]any{"move": moveRecName(*move)})
	}

	now := s.clock.Now()
	created := make([]domain.MoveLine, len(lines))
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: move line on account %s has a negative side", apperrors.ErrValidation, line.AccountID)
		}
		line.MoveLineID = uuid.NewString()
		line.MoveID = moveID
		line.AuditFields = domain.NewAuditFields(userID, now)
		taxLines := make([]domain.TaxLedgerLine, len(line.TaxLines))
		for j, tl := range line.TaxLines {
			tl.TaxLedgerLineID = uuid.NewString()
			tl.MoveLineID = line.MoveLineID
			taxLines[j] = tl
		}
		line.TaxLines = taxLines
		created[i] = line
	}

	if err := s.moveRepo.SaveMoveLines(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to save move lines", slog.String("move_id", moveID))
		return nil, err
	}
	return created, nil
}

func (s *ledgerService) PostMoves(ctx context.Context, moveIDs []string, userID string) error {
	if len(moveIDs) == 0 {
		return nil
	}
	moves, err := s.moveRepo.FindMovesByIDsForUpdate(ctx, moveIDs)
	if err != nil {
		return err
	}

	for _, move := range moves {
		name := moveRecName(move)
		if move.State == domain.MovePosted {
			return apperrors.NewUserError(apperrors.KindMovePosted, map[string]any{"move": name})
		}
		if len(move.Lines) == 0 {
			return apperrors.NewUserError(apperrors.KindEmptyMove, map[string]any{"move": name})
		}
		if debit, credit := domain.Totals(move.Lines); !debit.Equal(credit) {
			return apperrors.NewUserError(apperrors.KindUnbalancedMove, map[string]any{
				"move":   name,
				"debit":  debit.String(),
				"credit": credit.String(),
			})
		}
	}

	if err := s.moveRepo.MarkMovesPosted(ctx, moveIDs, domain.DateOnly(s.clock.Now()), userID); err != nil {
		s.LogError(ctx, err, "Failed to mark moves posted")
		return err
	}
	s.LogInfo(ctx, "Moves posted", slog.Int("count", len(moveIDs)))
	return nil
}

func moveRecName(m domain.Move) string {
	if m.Number != "" {
		return m.Number
	}
	return m.MoveID
}
