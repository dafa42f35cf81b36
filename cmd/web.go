/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/clinicware/patienthistory/db"
	"github.com/clinicware/patienthistory/logging"
	"github.com/clinicware/patienthistory/routes"
	"github.com/clinicware/patienthistory/static"
	"github.com/clinicware/patienthistory/templates"
)

const (
	sessionCookieName = "patienthistory_session"
	sessionLifetime   = 12 * time.Hour
	shutdownTimeout   = 10 * time.Second
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		databaseURLFlag,
		&cli.StringFlag{
			Name:    "csrf-secret",
			Sources: cli.EnvVars("CSRF_SECRET"),
			Usage:   "secret used to sign CSRF tokens (required in production)",
		},
		&cli.StringFlag{
			Name:    "env",
			Value:   "development",
			Sources: cli.EnvVars(runtimeEnvVar),
			Usage:   "runtime environment: development, dev, production or prod",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL"),
			Usage:   "log level: debug, info, warn or error",
		},
	},
	Action: start,
}

type webOptions struct {
	CSRFSecret    string
	SecureCookies bool
}

func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// newWebApp builds the flamego app with every page route registered.
func newWebApp(opts webOptions) (*flamego.Flame, error) {
	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
		Prefix:     "static",
	}))
	configureEmptyNotFoundHandler(f)

	f.Use(session.Sessioner(session.Options{
		Initer: db.PostgresSessionIniter(),
		Config: db.PostgresSessionConfig{
			Lifetime: sessionLifetime,
		},
		Cookie: session.CookieOptions{
			Name:     sessionCookieName,
			Secure:   opts.SecureCookies,
			HTTPOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}))
	f.Use(routes.RequestLogger)
	f.Use(csrf.Csrfer(csrf.Options{
		Secret: opts.CSRFSecret,
	}))
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
		FuncMaps:   []htmltemplate.FuncMap{routes.TemplateFuncs()},
	}))
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.Localizer())
	f.Use(routes.CSRFInjector())
	f.Use(routes.FlashInjector())
	f.Use(routes.UserContextInjector())

	f.Get("/login", routes.LoginForm)
	f.Post("/login", csrf.Validate, routes.Login)

	f.Group("", func() {
		f.Get("/", routes.PatientList)
		f.Get("/logout", routes.Logout)
		f.Get("/patient/{pid}/summary", routes.RequireDemographicsView(), routes.PatientSummary)
		f.Get("/patient/{pid}/history", routes.RequireHistoryView(), routes.ViewHistory)
		f.Get("/patient/{pid}/history/edit", routes.RequireHistoryEdit(), routes.HistoryFullForm)
		f.Post("/patient/{pid}/history/edit", routes.RequireHistoryEdit(), csrf.Validate, routes.SaveHistory)
	}, routes.RequireAuth)

	return f, nil
}

func start(ctx context.Context, cmd *cli.Command) error {
	logging.Init()
	if err := logging.SetLevel(cmd.String("log-level")); err != nil {
		return err
	}

	production, err := parseRuntimeEnv(cmd.String("env"))
	if err != nil {
		return err
	}

	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return errDatabaseURLRequired
	}

	csrfSecret := cmd.String("csrf-secret")
	if csrfSecret == "" {
		if production {
			return errCSRFSecretRequired
		}
		if csrfSecret, err = randomSecret(); err != nil {
			return fmt.Errorf("failed to generate CSRF secret: %w", err)
		}
		appLogger.Warn("CSRF_SECRET not set, using a per-process secret")
	}

	appLogger.Info("Connecting to database")
	if err := db.Init(ctx, db.Options{DatabaseURL: databaseURL}); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	appLogger.Info("Syncing database schema")
	if err := db.SyncSchema(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	f, err := newWebApp(webOptions{
		CSRFSecret:    csrfSecret,
		SecureCookies: production,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cmd.String("port"),
		Handler:           f,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          requestStdLogger,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting web server", "addr", srv.Addr, "production", production)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
