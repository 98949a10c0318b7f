// Package ratelimit protects the control API of a device that faces a
// public space
package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cybim/cybim-signage/internal/cybimd/config"
)

// Limit types understood by the service
const (
	// TypeAPIRequest covers REST calls on the control API
	TypeAPIRequest = "api_request"
	// TypeWSConnect covers renderer and listener socket connects
	TypeWSConnect = "ws_connect"
)

var (
	// ErrLimitExceeded indicates the client is over its budget
	ErrLimitExceeded = errors.New("rate limit exceeded")
	// ErrStoreError indicates the backing store failed
	ErrStoreError = errors.New("rate limit store error")
)

// LimitKey identifies a specific client/limit combination
type LimitKey struct {
	// Type is one of the limit type constants
	Type string
	// RemoteIP identifies the client
	RemoteIP string
}

// Limit defines a rate limit configuration
type Limit struct {
	// Rate is the number of operations allowed per Period
	Rate int
	// Period is the time window for the rate
	Period time.Duration
	// BurstSize allows a short burst over the rate
	BurstSize int
}

// Store handles rate limit state persistence
type Store interface {
	// Increment bumps a counter and returns the current count. It
	// returns ErrLimitExceeded when the count passes the limit.
	Increment(ctx context.Context, key LimitKey, limit Limit) (int, error)
}

// Service manages rate limiting for the daemon
type Service interface {
	// Allow checks whether an operation should proceed
	Allow(ctx context.Context, key LimitKey) error

	// GetLimit returns the configured limit for a key type
	GetLimit(limitType string) Limit
}

type service struct {
	store  Store
	limits map[string]Limit
	logger *slog.Logger
}

// NewService creates a rate limit service with limits taken from the
// daemon configuration
func NewService(store Store, cfg config.RateLimitConfig, logger *slog.Logger) Service {
	return &service{
		store: store,
		limits: map[string]Limit{
			TypeAPIRequest: {
				Rate:      cfg.APIRequests,
				Period:    cfg.APIPeriod,
				BurstSize: cfg.APIRequests / 10,
			},
			TypeWSConnect: {
				Rate:   cfg.WSConnects,
				Period: cfg.APIPeriod,
			},
		},
		logger: logger,
	}
}

func (s *service) Allow(ctx context.Context, key LimitKey) error {
	limit, ok := s.limits[key.Type]
	if !ok {
		// unknown types are not limited
		return nil
	}
	count, err := s.store.Increment(ctx, key, limit)
	if err != nil {
		if errors.Is(err, ErrLimitExceeded) {
			s.logger.Warn("rate limit exceeded",
				"type", key.Type,
				"remoteIP", key.RemoteIP,
				"count", count,
			)
			return ErrLimitExceeded
		}
		// a broken store must not take the device offline
		s.logger.Error("rate limit store failure, allowing request",
			"type", key.Type,
			"error", err,
		)
		return nil
	}
	return nil
}

func (s *service) GetLimit(limitType string) Limit {
	return s.limits[limitType]
}
