package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/HuLaxx/Shiftify-sub000/internal/actions"
	"github.com/HuLaxx/Shiftify-sub000/internal/repositories"
	"github.com/HuLaxx/Shiftify-sub000/internal/services"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
	"github.com/HuLaxx/Shiftify-sub000/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	cookiesFile string
	authUser    string
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		verifyCommand, playlistsCommand, tracksCommand, searchCommand, likeCommand, unlikeCommand,
		exportCommand, serveCommand, setupCommand, runsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// client builds an innertube client from the youtube config section.
func (r *Runner) client() *services.Client {
	return services.NewClient(r.config.YouTube, r.httpClient, r.logger)
}

// cookies reads the cookie header from --cookies-file, falling back to youtube.cookie_file.
func (r *Runner) cookies() (string, error) {
	path := r.cookiesFile
	if path == "" {
		path = r.config.YouTube.CookieFile
	}
	if path == "" {
		return "", fmt.Errorf("%w: no cookie file configured (use --cookies-file or youtube.cookie_file)", shared.ErrMissingCredentials)
	}

	data, err := os.ReadFile(shared.ExpandHome(path))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read cookie file: %v", shared.ErrMissingCredentials, err)
	}
	return string(data), nil
}

// preferredAuthUser resolves the account index from --auth-user, then the config.
func (r *Runner) preferredAuthUser() string {
	if r.authUser != "" {
		return r.authUser
	}
	if r.config.YouTube.AuthUser != "" {
		return r.config.YouTube.AuthUser
	}
	return "0"
}

// library opens a session from the configured cookies.
func (r *Runner) library() (*actions.Library, error) {
	cookies, err := r.cookies()
	if err != nil {
		return nil, err
	}
	session, err := r.client().NewSession(cookies, r.preferredAuthUser())
	if err != nil {
		return nil, err
	}
	return actions.NewLibrary(session, r.config.Collector, r.logger), nil
}

// openDatabase opens the configured database with migrations applied.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(shared.ExpandHome(r.config.Database.Path))
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// runRepository opens the run history; the returned func releases the database.
func (r *Runner) runRepository() (*repositories.RunRepository, func() error, error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewRunRepository(db), db.Close, nil
}

// watch logs progress updates until the channel is closed.
func (r *Runner) watch(progress <-chan tasks.ProgressUpdate) {
	for update := range progress {
		r.logger.Info(update.Message, "phase", update.Phase.String())
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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
	rule := strings.Repeat("═", 39)
	r.writePlain("%s\n%v\n%s\n", rule, title, rule)
}
