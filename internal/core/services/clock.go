package services

import (
	"time"

	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
)

type systemClock struct{}

// NewSystemClock returns a clock reading the wall time in UTC.
func NewSystemClock() portssvc.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
