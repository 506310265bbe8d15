package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
)

type sequenceService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
}

// NewSequenceService creates a new SequenceService.
func NewSequenceService(sequenceRepo portsrepo.SequenceRepository) portssvc.SequenceSvc {
	return &sequenceService{sequenceRepo: sequenceRepo}
}

var _ portssvc.SequenceSvc = (*sequenceService)(nil)

func (s *sequenceService) NextNumber(ctx context.Context, sequenceID string, date time.Time) (string, error) {
	seq, number, err := s.sequenceRepo.NextNumber(ctx, sequenceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: sequence %s not found", apperrors.ErrNotFound, sequenceID)
		}
		s.LogError(ctx, err, "Failed to allocate sequence number", slog.String("sequence_id", sequenceID))
		return "", err
	}
	formatted := seq.Format(number, date)
	s.LogDebug(ctx, "Sequence number allocated",
		slog.String("sequence_id", sequenceID),
		slog.String("number", formatted))
	return formatted, nil
}
