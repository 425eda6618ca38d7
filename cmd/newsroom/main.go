package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	adapthttp "newsroom/internal/adapter/http"
	"newsroom/internal/adapter/memory"
	"newsroom/internal/adapter/postgres"
	"newsroom/internal/adapter/redis"
	"newsroom/internal/app"
	"newsroom/internal/config"
	"newsroom/internal/domain"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "newsroom",
		Short:        "Publishing backend for the newsroom site",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newHashPasswordCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash suitable for ADMIN_HASH",
		Long:  "Hashes the password given as an argument, or the first line of stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			hash, err := app.HashPassword(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

type stores struct {
	stories     domain.StoryRepository
	submissions domain.SubmissionRepository
	bracket     domain.BracketRepository
	sessions    domain.SessionRepository
	closers     []func() error
	checks      []func(context.Context) error
}

// Ping runs every backend check; the in-memory store has none.
func (s *stores) Ping(ctx context.Context) error {
	for _, check := range s.checks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Warn("close store", slog.Any("error", err))
		}
	}
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	st := &stores{}
	switch cfg.Store {
	case config.StoreMemory:
		db := memory.New()
		st.stories, st.submissions, st.bracket = db, db, db
		st.sessions = db.NewSessionRepo()
	default:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		st.closers = append(st.closers, db.Close)
		st.checks = append(st.checks, db.Ping)
		st.stories, st.submissions, st.bracket = db, db, db
		st.sessions = postgres.NewSessionRepo(db)
	}

	if cfg.SessionStore == config.SessionsRedis {
		client, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("redis open: %w", err)
		}
		st.closers = append(st.closers, client.Close)
		st.checks = append(st.checks, func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping: %w", err)
			}
			return nil
		})
		st.sessions = redis.NewSessionRepo(client)
	}
	return st, nil
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.AdminHash == "" {
		logger.Warn("ADMIN_HASH is empty; every login will be rejected")
	}

	authSvc := app.NewAuthService(st.sessions, cfg.AdminHash)
	srv := adapthttp.New(
		authSvc,
		app.NewBracketService(st.bracket),
		app.NewStoryService(st.stories),
		app.NewSubmissionService(st.submissions),
		cfg.WebDir,
	).WithLogger(logger).WithHealthCheck(st.Ping)

	servers := []*http.Server{{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", adapthttp.MetricsHandler())
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	errc := make(chan error, len(servers))
	for _, hs := range servers {
		logger.Info("listening", slog.String("addr", hs.Addr), slog.String("env", cfg.Env), slog.String("store", cfg.Store), slog.String("sessions", cfg.SessionStore))
		go func(hs *http.Server) {
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("listen %s: %w", hs.Addr, err)
			}
		}(hs)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errc:
		logger.Error("server failed", slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, hs := range servers {
		if serr := hs.Shutdown(shutdownCtx); serr != nil {
			logger.Warn("shutdown", slog.String("addr", hs.Addr), slog.Any("error", serr))
		}
	}
	return err
}
