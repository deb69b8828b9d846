package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/cookie-keeper/internal/config"
	"github.com/vadimbarashkov/cookie-keeper/internal/database/postgres"
	"github.com/vadimbarashkov/cookie-keeper/internal/probe"
	"github.com/vadimbarashkov/cookie-keeper/internal/service"
	"golang.org/x/sync/errgroup"

	myhttp "github.com/vadimbarashkov/cookie-keeper/internal/api/http"
	pkgpostgres "github.com/vadimbarashkov/cookie-keeper/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		panic(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	db, err := postgres.New(cfg.Postgres.DSN(), postgres.PoolConfig{
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
	})
	if err != nil {
		return err
	}

	g.Go(func() error {
		<-ctx.Done()
		return db.Close()
	})

	if err := pkgpostgres.RunMigrations("file://migrations", cfg.Postgres.DSN()); err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	cookieRepo := postgres.NewCookieRepository(db)

	checker := probe.NewChecker(cfg.Probe.Timeout, cfg.Probe.UserAgent)

	userSvc := service.NewUserService(userRepo, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	cookieSvc := service.NewCookieService(cookieRepo, checker, cfg.CookieIDLength)

	r := myhttp.NewRouter(httplog.NewLogger("cookie-keeper"), userSvc, cookieSvc)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        r,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return server.Shutdown(context.Background())
	})

	return g.Wait()
}
