package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vofo/internal/auth"
	"github.com/desertthunder/vofo/internal/repositories"
	"github.com/desertthunder/vofo/internal/server"
	"github.com/desertthunder/vofo/internal/services"
	"github.com/desertthunder/vofo/internal/shared"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{logger: opts.Logger, output: opts.Output}
}

// register creates the command tree for the CLI.
func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		serveCommand(r),
		migrateCommand(r),
		configCommand(r),
	}
}

// loadConfig reads the config file named by the --config flag, falling back
// to embedded defaults when the file does not exist.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")

	if _, err := os.Stat(path); err == nil {
		if config, err := shared.LoadConfig(path); err == nil {
			return config
		}
		r.logger.Warnf("failed to load %s, using defaults", path)
	}

	return shared.DefaultConfig()
}

// openDatabase opens and configures the sqlite database from config.
func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, err
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// buildCatalog assembles the catalog provider chain: proxy client or scraper,
// wrapped with degradation and the bounded TTL cache.
func (r *Runner) buildCatalog(config *shared.Config) services.Catalog {
	var provider services.Catalog
	if config.Catalog.ProxyURL != "" {
		provider = services.NewYouTubeCatalog(config.Catalog.ProxyURL, config.Catalog.Country, config.Catalog.RateLimit)
	} else {
		provider = services.NewScrapeCatalog(config.Catalog.SearchURL, config.Catalog.RateLimit)
	}

	r.logger.Info("catalog provider selected", "provider", provider.Name())

	resilient := services.NewResilient(provider, r.logger)
	return services.NewCached(resilient, config.Catalog.CacheSize, time.Duration(config.Catalog.CacheTTLSec)*time.Second)
}

// Serve runs migrations and starts the HTTP server.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = port
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	issuer, err := auth.NewTokenIssuer(config.Auth)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	users := repositories.NewUserRepository(db)
	likes := repositories.NewLikeRepository(db)
	history := repositories.NewHistoryRepository(db)
	catalog := r.buildCatalog(config)

	api := server.NewAPI(server.APIOpts{
		Logger:  r.logger,
		Users:   users,
		Likes:   likes,
		History: history,
		Catalog: catalog,
		Issuer:  issuer,
	})

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger), server.CORS(), server.Authenticate(issuer, users))
	api.Mount(router)
	router.Handler(server.NewStaticHandler(config.Server.StaticDir))

	srv := &http.Server{
		Addr:              config.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintln(r.output, headerStyle.Render("vofo listening on "+config.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// MigrateUp applies all pending migrations.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.output, "schema at version %d\n", version)
	return nil
}

// MigrateRollback rolls back the most recent migration.
func (r *Runner) MigrateRollback(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	fmt.Fprintln(r.output, "rolled back one migration")
	return nil
}

// MigrateStatus prints the current schema version.
func (r *Runner) MigrateStatus(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return err
	}

	if version < 0 {
		fmt.Fprintln(r.output, "no migrations applied")
		return nil
	}

	fmt.Fprintf(r.output, "schema at version %d\n", version)
	return nil
}

// ConfigInit writes the example configuration file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	fmt.Fprintf(r.output, "wrote %s\n", path)
	return nil
}
