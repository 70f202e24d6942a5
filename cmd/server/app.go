package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/clientip"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/environment"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/mongo"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/pkg/redis"
	"github.com/dmitrymomot/authkit/pkg/requestid"
	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/totp"
	"github.com/dmitrymomot/authkit/storage/memstore"
	"github.com/dmitrymomot/authkit/storage/mongostore"
	"github.com/dmitrymomot/authkit/storage/pgstore"
	"github.com/dmitrymomot/authkit/storage/redisstore"
	authsvc "github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

// readinessTimeout bounds each dependency ping in /health/ready.
const readinessTimeout = 2 * time.Second

// store is what every storage driver provides.
type store interface {
	auth.PasswordStorage
	mfa.SettingsStorage
}

type app struct {
	cfg     appConfig
	log     *slog.Logger
	store   store
	closers []httpserver.Hook
	checks  map[string]httpserver.Check
	handler http.Handler
	server  *httpserver.Server
}

func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, log: log, checks: make(map[string]httpserver.Check)}

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			a.close(context.WithoutCancel(ctx))
		}
	}()

	var (
		secretsCfg secrets.Config
		jwtCfg     jwt.Config
		totpCfg    totp.Config
		authCfg    auth.Config
		httpCfg    httpserver.Config
		ipCfg      clientip.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&secretsCfg) },
		func() error { return config.Load(&jwtCfg) },
		func() error { return config.Load(&totpCfg) },
		func() error { return config.Load(&authCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&ipCfg) },
	} {
		if err := load(); err != nil {
			return nil, err
		}
	}

	cipher, err := secrets.NewCipherFromConfig(secretsCfg)
	if err != nil {
		return nil, err
	}
	tokens, err := jwt.NewFromConfig(jwtCfg)
	if err != nil {
		return nil, err
	}

	second := mfa.NewService(a.store, cipher, totp.New(totpCfg), mfa.WithLogger(log))
	passwords := auth.NewPasswordService(a.store,
		auth.WithConfig(authCfg),
		auth.WithPasswordLogger(log),
	)
	svc := authsvc.NewService(passwords, a.store, second, tokens, authsvc.WithLogger(log))
	mod := account.New(svc, second, a.store, tokens, account.WithLogger(log))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.NewFromConfig(ipCfg).Middleware)
	r.Use(environment.Middleware(cfg.environment()))
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, a.checks))
	r.Mount("/api", mod.Routes())
	a.handler = r

	opts := []httpserver.Option{httpserver.WithLogger(log)}
	for _, c := range a.closers {
		opts = append(opts, httpserver.WithStopHook(c))
	}
	a.server = httpserver.New(httpCfg, opts...)

	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	a.log.InfoContext(ctx, "opening storage", slog.String("driver", a.cfg.StorageDriver))

	switch a.cfg.StorageDriver {
	case DriverMemory:
		s := memstore.New()
		a.store = s
		a.checks["memory"] = s.Ping

	case DriverPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		s := pgstore.New(pool)
		if err := s.Migrate(ctx, cfg, a.log); err != nil {
			pool.Close()
			return err
		}
		a.store = s
		a.checks["postgres"] = pg.Check(pool, readinessTimeout)
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})

	case DriverRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		a.store = redisstore.New(client, redisstore.WithPrefix(cfg.KeyPrefix))
		a.checks["redis"] = redis.Check(client, readinessTimeout)
		a.closers = append(a.closers, func(context.Context) error {
			return client.Close()
		})

	case DriverMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		client, err := mongo.New(ctx, cfg)
		if err != nil {
			return err
		}
		s := mongostore.New(client.Database(cfg.Database))
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return err
		}
		a.store = s
		a.checks["mongo"] = mongo.Check(client, readinessTimeout)
		a.closers = append(a.closers, func(ctx context.Context) error {
			return client.Disconnect(ctx)
		})

	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, a.cfg.StorageDriver)
	}
	return nil
}

func (a *app) close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			a.log.ErrorContext(ctx, "failed to close storage", logger.Error(err))
		}
	}
}

func (a *app) run(ctx context.Context) error {
	return a.server.Run(ctx, a.handler)
}
