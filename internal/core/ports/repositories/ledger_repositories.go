package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
)

// MoveReader defines read operations for general ledger moves
type MoveReader interface {
	// FindMoveByID retrieves a move with its lines.
	FindMoveByID(ctx context.Context, moveID string) (*domain.Move, error)

	// FindMovesByIDsForUpdate locks and returns moves with their lines.
	FindMovesByIDsForUpdate(ctx context.Context, moveIDs []string) ([]domain.Move, error)
}

// MoveWriter defines write operations for general ledger moves
type MoveWriter interface {
	SaveMove(ctx context.Context, move domain.Move) error

	// SaveMoveLines inserts lines and their tax ledger entries in one batch.
	SaveMoveLines(ctx context.Context, lines []domain.MoveLine) error

	// MarkMovesPosted sets state posted and the post date on draft moves.
	MarkMovesPosted(ctx context.Context, moveIDs []string, postDate time.Time, userID string) error
}

// MoveRepositoryFacade combines all move repository interfaces
type MoveRepositoryFacade interface {
	MoveReader
	MoveWriter
}

// PeriodRepository resolves accounting periods
type PeriodRepository interface {
	// FindPeriodByDate returns the period of company containing date, with its
	// fiscal year loaded. onlyOpen restricts the search to open periods.
	FindPeriodByDate(ctx context.Context, companyID string, date time.Time, onlyOpen bool) (*domain.Period, error)
}

// SequenceRepository allocates numbers from strict sequences
type SequenceRepository interface {
	// NextNumber advances the sequence under a row lock held until the enclosing
	// transaction ends and returns the sequence with the number allocated.
	NextNumber(ctx context.Context, sequenceID string) (*domain.StrictSequence, int64, error)
}
