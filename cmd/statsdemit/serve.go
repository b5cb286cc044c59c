package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/raven-go"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"statsdemit/internal/data"
	"statsdemit/internal/events"
	"statsdemit/internal/log"
	"statsdemit/internal/meta"
	"statsdemit/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run a demo HTTP server instrumented with request, login, and log metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP address to listen on; defaults to the configured server address",
			},
			&cli.StringFlag{
				Name:  "demo-password",
				Value: "demo",
				Usage: "password accepted by the demo login endpoint",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if fileProvider, ok := e.provider.(*meta.FileProvider); ok {
				go func() {
					err := fileProvider.Watch(ctx, func(err error) {
						e.logger.Error("main: rejected configuration change: err=%v", err)
						raven.CaptureError(err, nil)
					})
					if err != nil {
						e.logger.Error("main: configuration watch stopped: err=%v", err)
					}
				}()
			}

			cfg := e.provider.Config()

			// Hooks log through the undecorated logger so their diagnostics never feed back into metrics.
			requestHook := metrics.NewStatsdRequestHook(e.client, e.logger)
			userHook := metrics.NewStatsdUserHook(e.client, e.logger)
			watchdogHook := metrics.NewStatsdWatchdogHook(e.client, e.logger)

			appLogger := events.NewWatchdogLogger("app", e.logger, e.provider, watchdogHook, userHook)
			sessions := data.NewSessionTracker(cfg.Events.SessionWindow)

			password := c.String("demo-password")
			router := newRouter(e.provider, requestHook, sessions, appLogger, func(user string, pass string) bool {
				return user != "" && pass == password
			})

			addr := c.String("addr")
			if addr == "" {
				addr = cfg.Server.Address
			}

			srv := &http.Server{Addr: addr, Handler: router}

			go func() {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					e.logger.Warn("main: unclean server shutdown: err=%v", err)
				}
			}()

			e.logger.Info("main: serving demo HTTP server: addr=%s", addr)

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				raven.CaptureError(err, map[string]string{"addr": addr})
				return errors.Wrapf(err, "server: failed to serve: addr=%s", addr)
			}

			return nil
		},
	}
}

// newRouter builds the demo HTTP routes, instrumented by the request middleware.
func newRouter(
	provider meta.Provider,
	requestHook metrics.RequestHook,
	sessions *data.SessionTracker,
	logger log.Logger,
	authenticate func(user string, password string) bool,
) http.Handler {
	router := chi.NewRouter()
	router.Use(events.RequestMiddleware(provider, requestHook, sessions))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	router.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		user := r.FormValue("user")

		if !authenticate(user, r.FormValue("password")) {
			logger.Warn("%s for %s", events.LoginFailedMessage, user)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		sessionID, err := newSessionID()
		if err != nil {
			logger.Error("main: failed to create session: err=%v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     provider.Config().Events.SessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
		})

		logger.Info("%s %s", events.LoginMessage, user)
		fmt.Fprintln(w, "welcome", user)
	})

	return router
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
