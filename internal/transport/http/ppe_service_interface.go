package http

import (
	"context"

	"ppecli/pkg/contracts/domain"
)

// PPEServiceInterface defines the PPE operations served over HTTP
type PPEServiceInterface interface {
	Compute(ctx context.Context) (*domain.Report, error)
	Table(ctx context.Context, inst domain.Instrument) ([]domain.PPERow, error)
	Sensitivity(ctx context.Context, inst domain.Instrument, premium, forward *float64) (domain.SensitivityTable, error)
}
