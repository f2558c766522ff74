// Package app assembles the wallet registry from configuration: the slot
// store backend, the audit sink chain, the wallet service and its HTTP routes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"chaincerts/internal/audit"
	"chaincerts/internal/callertoken"
	"chaincerts/internal/platform/config"
	"chaincerts/internal/platform/database"
	"chaincerts/internal/platform/health"
	"chaincerts/internal/platform/kafka"
	"chaincerts/internal/platform/kafka/producer"
	platformredis "chaincerts/internal/platform/redis"
	"chaincerts/internal/platform/tracer"
	"chaincerts/internal/wallet/handler"
	"chaincerts/internal/wallet/kvstore"
	"chaincerts/internal/wallet/metrics"
	"chaincerts/internal/wallet/registry"
	"chaincerts/internal/wallet/service"
	"chaincerts/pkg/platform/circuit"
	"chaincerts/pkg/platform/middleware/auth"
	"chaincerts/pkg/platform/middleware/request"
	"chaincerts/pkg/platform/middleware/requesttime"
	"chaincerts/pkg/validation"
)

// App owns every long-lived dependency of a running registry.
type App struct {
	cfg    config.Server
	logger *slog.Logger
	reg    prometheus.Registerer

	Wallet  *service.Service
	Tokens  *callertoken.Service
	Health  *health.Handler
	Redis   *platformredis.Client
	router  chi.Router
	auditor *audit.Publisher
	closers []func() error
}

// New connects the configured backends and builds the router. On error every
// dependency opened so far is closed again.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	policy, ok := registry.ParseRevokePolicy(cfg.Wallet.RevokePolicy)
	if !ok {
		return nil, fmt.Errorf("unknown REVOKE_POLICY %q", cfg.Wallet.RevokePolicy)
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		reg:    reg,
		Tokens: callertoken.NewService(cfg.Token.SigningKey, cfg.Token.Issuer, cfg.Token.Audience, cfg.Token.TTL),
		Health: health.New(cfg.Environment,
			health.WithDetail("store_backend", cfg.Wallet.StoreBackend),
			health.WithDetail("revoke_policy", cfg.Wallet.RevokePolicy),
		),
	}

	tx, auditStore, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	auditStore, err = a.openAuditSink(ctx, auditStore)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.auditor = audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(cfg.Wallet.AuditBufferSize),
		audit.WithPublisherLogger(logger),
	)

	a.Wallet = service.New(tx,
		service.WithLogger(logger),
		service.WithMetrics(metrics.New(reg)),
		service.WithAuditor(a.auditor),
		service.WithTracer(tracer.NewOTel()),
		service.WithRevokePolicy(policy),
		service.WithOwnerGate(cfg.Wallet.OwnerGate),
		service.WithCallerVerification(cfg.Wallet.CallerVerification),
	)

	a.router = a.buildRouter(request.NewMetrics(reg))

	logger.InfoContext(ctx, "wallet registry assembled",
		"store_backend", cfg.Wallet.StoreBackend,
		"revoke_policy", string(policy),
		"owner_gate", cfg.Wallet.OwnerGate,
		"caller_verification", cfg.Wallet.CallerVerification,
		"kafka_audit", cfg.Kafka.Brokers != "",
	)
	return a, nil
}

// openStore selects the slot store backend. The Postgres backend also keeps
// the audit trail in Postgres; the others keep it in memory.
func (a *App) openStore(ctx context.Context) (kvstore.Tx, audit.Store, error) {
	switch a.cfg.Wallet.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.New(a.cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := database.Migrate(ctx, pool.DB()); err != nil {
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		a.Health.RegisterCheck("postgres", pool.Health)
		return kvstore.NewPostgresTxRunner(pool.DB(), a.cfg.Wallet.TxTimeout), audit.NewPostgresStore(pool.DB()), nil

	case config.BackendRedis:
		client, err := platformredis.New(ctx, a.cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		a.Redis = client
		a.closers = append(a.closers, client.Close)
		a.Health.RegisterCheck("redis", client.Health)
		if err := a.reg.Register(client.PoolCollector()); err != nil {
			return nil, nil, fmt.Errorf("register redis pool metrics: %w", err)
		}
		return kvstore.NewRedisTx(client.Client, client.KeyPrefix(), a.cfg.Wallet.TxTimeout), audit.NewInMemoryStore(), nil

	default:
		return kvstore.NewMemoryTx(kvstore.NewMemory(), a.cfg.Wallet.TxTimeout), audit.NewInMemoryStore(), nil
	}
}

// openAuditSink publishes audit events to Kafka when brokers are configured.
func (a *App) openAuditSink(ctx context.Context, next audit.Store) (audit.Store, error) {
	if a.cfg.Kafka.Brokers == "" {
		return next, nil
	}
	pcfg := producer.DefaultConfig()
	pcfg.Brokers = a.cfg.Kafka.Brokers
	pcfg.Acks = a.cfg.Kafka.Acks
	p, err := producer.New(pcfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	a.closers = append(a.closers, p.Close)

	checker := kafka.NewHealthChecker(p.Client())
	if err := checker.Check(ctx); err != nil {
		a.logger.WarnContext(ctx, "kafka not reachable at startup", "error", err)
	}
	a.Health.RegisterCheck(checker.Name(), checker.Check)
	return audit.NewKafkaStore(next, p, a.cfg.Kafka.AuditTopic,
		audit.WithBreaker(circuit.New("audit-kafka")),
		audit.WithKafkaLogger(a.logger),
	), nil
}

func (a *App) buildRouter(httpMetrics *request.Metrics) chi.Router {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(a.logger))
	r.Use(request.Logger(a.logger))
	r.Use(requesttime.Middleware)
	r.Use(request.LatencyMiddleware(httpMetrics))

	a.Health.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(a.cfg.RequestTimeout))
		r.Use(request.ContentTypeJSON)
		r.Use(request.BodyLimit(validation.MaxBodySize))
		r.Use(auth.Authenticate(a.Tokens, a.logger))
		var opts []handler.Option
		if a.cfg.Wallet.CallerVerification {
			opts = append(opts, handler.WithMutationMiddleware(auth.RequireCaller(a.logger)))
		}
		handler.New(a.Wallet, a.logger, opts...).Register(r)
	})
	return r
}

// Router returns the assembled HTTP handler. Callers may mount more routes.
func (a *App) Router() chi.Router {
	return a.router
}

// Handler is Router as a plain http.Handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Close drains queued audit events, then releases dependencies in reverse
// order of acquisition.
func (a *App) Close() error {
	if a.auditor != nil {
		a.auditor.Close()
		a.auditor = nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
