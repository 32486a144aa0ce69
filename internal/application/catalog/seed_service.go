package catalog

import (
	"context"
	"fmt"

	"github.com/esimhub/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// CurrencySeedResult summarizes one currency seeding run.
type CurrencySeedResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// SeedService seeds the store's fixed reference data. Seeding is idempotent:
// existing rows are skipped, per-row failures are collected without aborting
// the run.
type SeedService struct {
	currencies catalog.CurrencyRepository
	logger     *zap.Logger
}

// NewSeedService creates a new SeedService
func NewSeedService(currencies catalog.CurrencyRepository, logger *zap.Logger) *SeedService {
	return &SeedService{currencies: currencies, logger: logger}
}

// SeedCurrencies creates the default currency set, skipping codes that
// already exist.
func (s *SeedService) SeedCurrencies(ctx context.Context) (*CurrencySeedResult, error) {
	result := &CurrencySeedResult{}

	for _, currency := range catalog.DefaultCurrencies() {
		exists, err := s.currencies.ExistsByCode(ctx, currency.Code)
		if err != nil {
			return nil, fmt.Errorf("currency seed: %w", err)
		}
		if exists {
			s.logger.Info("currency already exists, skipping", zap.String("code", currency.Code))
			result.Skipped++
			continue
		}

		if err := s.currencies.Save(ctx, &currency); err != nil {
			s.logger.Error("failed to create currency", zap.String("code", currency.Code), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", currency.Code, err))
			continue
		}
		s.logger.Info("created currency", zap.String("code", currency.Code))
		result.Created++
	}

	return result, nil
}
