package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tubesync/internal/auth"
	"github.com/desertthunder/tubesync/internal/formatter"
	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/repositories"
	"github.com/desertthunder/tubesync/internal/services"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/desertthunder/tubesync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	gateway    services.Gateway
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	db         *sql.DB
	ownsDB     bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Gateway    services.Gateway // Used instead of an authorized YouTube session when set
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB // Job history; opened from the config on first use when nil
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		gateway:    opts.Gateway,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		db:         opts.DB,
	}
}

// SetLogger replaces the logger used by commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the history database when the runner opened it.
func (r *Runner) Close() error {
	if r.db == nil || !r.ownsDB {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistsCommand, extractCommand, restoreCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) authorizer() *auth.Authorizer {
	yt := r.config.Credentials.YouTube
	return auth.NewAuthorizer(auth.NewOAuthConfig(yt), auth.NewTokenStore(yt.TokenFile()), r.logger)
}

// session returns the gateway bound to the stored authorization.
func (r *Runner) session(ctx context.Context) (services.Gateway, error) {
	if r.gateway != nil {
		return r.gateway, nil
	}

	sess, err := r.authorizer().Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: run 'tubesync auth login' first", err)
	}
	return services.NewYouTubeService(ctx, sess.Client(ctx))
}

// history opens the job history store, or returns nil when the database is unavailable.
func (r *Runner) history() *repositories.JobRepository {
	if r.db == nil {
		db, err := shared.OpenMigrated(r.config.Database)
		if err != nil {
			r.logger.Warn("job history disabled", "error", err)
			return nil
		}
		r.db = db
		r.ownsDB = true
	}
	return repositories.NewJobRepository(r.db)
}

// pacing builds the pacing policy from config, overridden by an explicit interval.
func (r *Runner) pacing(interval time.Duration, set bool) tasks.PacingPolicy {
	policy := tasks.PacingPolicy{MinInterval: r.config.Restore.Interval(), Burst: r.config.Restore.Burst}
	if set {
		policy.MinInterval = interval
	}
	return policy
}

func (r *Runner) privacy(flag string) (models.Privacy, error) {
	value := flag
	if value == "" {
		value = r.config.Restore.Privacy
	}
	if value == "" {
		return models.PrivacyPrivate, nil
	}

	p, ok := models.ParsePrivacy(value)
	if !ok {
		return "", fmt.Errorf("%w: privacy must be private, unlisted or public, got %q", shared.ErrInvalidArgument, value)
	}
	return p, nil
}

// describer returns the description generator when enabled and configured.
func (r *Runner) describer(ctx context.Context, enabled bool) services.Describer {
	if !enabled && !r.config.Restore.GenerateDescriptions {
		return nil
	}

	gemini := r.config.Credentials.Gemini
	d, err := services.NewGeminiDescriber(ctx, gemini.APIKey, gemini.Model)
	if err != nil {
		r.logger.Warn("description generation disabled", "error", err)
		return nil
	}
	return d
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = formatter.ToJSON(data)
	} else if output, err = json.Marshal(data); err != nil {
		err = fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
