package service

import (
	"log/slog"

	"chaincerts/internal/audit"
	"chaincerts/internal/platform/tracer"
	"chaincerts/internal/wallet/metrics"
	"chaincerts/internal/wallet/registry"
)

type Option func(*Service)

// RevokePolicy re-exports the registry policy so callers configure the
// service without importing the registry.
type RevokePolicy = registry.RevokePolicy

const (
	RevokeIdempotent = registry.RevokeIdempotent
	RevokeStrict     = registry.RevokeStrict
)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditor(auditor *audit.Publisher) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithRevokePolicy selects how a second revocation of the same chaincert is
// treated. Defaults to RevokeIdempotent.
func WithRevokePolicy(p RevokePolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.revokePolicy = p
		}
	}
}

// WithOwnerGate requires an initialized wallet for every mutation and the
// owner as caller for ACL changes.
func WithOwnerGate(enabled bool) Option {
	return func(s *Service) {
		s.ownerGate = enabled
	}
}

// WithCallerVerification requires the authenticated caller to be the
// distributor named in deposits and revocations, and the owner named at
// initialization.
func WithCallerVerification(enabled bool) Option {
	return func(s *Service) {
		s.callerVerification = enabled
	}
}
