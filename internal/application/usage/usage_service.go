// Package usage serves data-consumption lookups for provisioned eSIMs,
// fronting the provider API with a short-lived cache.
package usage

import (
	"context"
	"errors"

	"github.com/esimhub/backend/internal/domain/provider"
	"go.uber.org/zap"
)

// ErrMissingICCID indicates a usage lookup without an ICCID.
var ErrMissingICCID = errors.New("usage: iccid is required")

// Cache is the read-through cache for usage reports. Entries expire on their
// own; a miss returns false.
type Cache interface {
	Get(iccid string) (*provider.UsageReport, bool)
	Set(iccid string, report *provider.UsageReport)
}

// Service answers usage queries, preferring cached reports over provider
// round-trips. Reports are cached for the TTL configured on the cache.
type Service struct {
	client provider.Client
	cache  Cache
	logger *zap.Logger
}

// NewService creates a usage service.
func NewService(client provider.Client, cache Cache, logger *zap.Logger) *Service {
	return &Service{client: client, cache: cache, logger: logger}
}

// Usage returns the consumption snapshot for an ICCID, from cache when a
// fresh entry exists.
func (s *Service) Usage(ctx context.Context, iccid string) (*provider.UsageReport, error) {
	if iccid == "" {
		return nil, ErrMissingICCID
	}

	if report, ok := s.cache.Get(iccid); ok {
		s.logger.Debug("usage cache hit", zap.String("iccid", iccid))
		return report, nil
	}

	report, err := s.client.Usage(ctx, iccid)
	if err != nil {
		return nil, err
	}
	s.cache.Set(iccid, report)
	s.logger.Debug("usage cache fill", zap.String("iccid", iccid))
	return report, nil
}
