// Package server wires the identity server together: database and
// migrations, the link-request limiter, the mailer, the account service and
// the gRPC endpoint. Run blocks until SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/joinflow/internal/logging"
	"github.com/dmitrijs2005/joinflow/internal/server/accounts"
	"github.com/dmitrijs2005/joinflow/internal/server/config"
	"github.com/dmitrijs2005/joinflow/internal/server/limiter"
	"github.com/dmitrijs2005/joinflow/internal/server/mailer"
	"github.com/dmitrijs2005/joinflow/internal/server/repositories/repomanager"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/joinflow/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	redis          *redis.Client
	accountService *accounts.Service
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var lim accounts.Limiter
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		lim = limiter.NewLinkLimiter(app.redis, limiter.Config{
			MaxRequests: c.LinkRequestLimit,
			Window:      c.LinkRequestWindow,
		})
	} else {
		logger.Warn(ctx, "redis address not set, link requests are not throttled")
	}

	m, err := newMailer(ctx, c, logger)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("mailer init error: %w", err)
	}

	app.accountService = accounts.NewService(db, rm, lim, m, c, logger)
	return app, nil
}

func newMailer(ctx context.Context, c *config.Config, logger logging.Logger) (mailer.Mailer, error) {
	if c.S3Bucket == "" {
		return mailer.NewLogMailer(logger), nil
	}
	return mailer.NewS3Outbox(ctx, mailer.S3Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accountService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "Stopped")
}
