package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"golang.org/x/sync/errgroup"

	"github.com/akoskinen/liftblock/internal/cloudsync"
	"github.com/akoskinen/liftblock/internal/envstruct"
	"github.com/akoskinen/liftblock/internal/errors"
	"github.com/akoskinen/liftblock/internal/logging"
	"github.com/akoskinen/liftblock/internal/plan"
	"github.com/akoskinen/liftblock/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	planService    *plan.Service
	syncClient     *cloudsync.Client
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"LIFTBLOCK_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"LIFTBLOCK_SQLITE_URL" envDefault:"./liftblock.sqlite3"`
	// SupabaseURL is the Supabase project URL for cloud backup. Leave empty to disable sync.
	SupabaseURL string `env:"LIFTBLOCK_SUPABASE_URL" envDefault:""`
	// SupabaseAnonKey is the Supabase anon key for cloud backup.
	SupabaseAnonKey string `env:"LIFTBLOCK_SUPABASE_ANON_KEY" envDefault:""`
	// SyncInterval is how often the state document is pushed to the cloud when sync is configured.
	SyncInterval time.Duration `env:"LIFTBLOCK_SYNC_INTERVAL" envDefault:"15m"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	syncClient := cloudsync.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger)

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		planService:    plan.NewService(db, logger, syncClient),
		syncClient:     syncClient,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.configureAndStartServer(ctx, cfg.Addr); err != nil {
			return errors.Wrap(err, "start server")
		}
		return nil
	})
	g.Go(func() error {
		app.periodicSync(ctx, cfg.SyncInterval)
		return nil
	})
	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                               //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
