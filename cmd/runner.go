package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/dag10/cshdj-youtube/internal/formatter"
	"github.com/dag10/cshdj-youtube/internal/shared"
	"github.com/dag10/cshdj-youtube/internal/sources"
	"github.com/dag10/cshdj-youtube/internal/ui"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	source      sources.SongSource
	logger      *log.Logger
	output      io.Writer
	initialized bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Source     sources.SongSource
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
	if opts.Source == nil {
		opts.Source = sources.NewYouTubeSource(opts.Config.Search.BaseURL)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		source:     opts.Source,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		initCommand, searchCommand, fetchCommand, pickCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	enc := json.NewEncoder(r.output)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}

// ensureInit loads the config named by the --config flag (when it exists on
// disk) and runs the source's Init once per process.
func (r *Runner) ensureInit(ctx context.Context, cmd *cli.Command) error {
	if r.initialized {
		return nil
	}

	if path := cmd.String("config"); path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return err
			}
			r.config = config
			r.configPath = path
		}
	}

	if err := r.source.Init(ctx, r.logger, r.config); err != nil {
		return err
	}

	r.initialized = true
	return nil
}

// InitConfig writes the starter config file named by the --config flag.
func (r *Runner) InitConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info(fmt.Sprintf("wrote starter config to %s", path))
	fmt.Fprintf(r.output, "Created %s\n", path)
	return nil
}

// Search runs the source's Search and prints or exports the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	if err := r.ensureInit(ctx, cmd); err != nil {
		return err
	}

	results, err := r.source.Search(ctx, int(cmd.Int("limit")), query)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("csv"):
		path := cmd.String("output")
		if path == "" {
			path = "results.csv"
		}
		written, err := formatter.WriteCSVExport(results, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.output, "Exported %d results to %s\n", len(results), written)

	case cmd.Bool("markdown"):
		export, err := formatter.WriteMarkdownExport(query, results, cmd.String("output"))
		if err != nil {
			return err
		}
		fmt.Fprintf(r.output, "Exported %d results to %s\n", len(results), export.Directory)

	case cmd.Bool("json") || cmd.Bool("pretty"):
		return r.writeJSON(results, cmd.Bool("pretty"))

	default:
		text, err := formatter.ExportToText(query, results)
		if err != nil {
			return err
		}
		r.output.Write(text)
	}

	return nil
}

// Fetch downloads a track's audio and prints the resulting path.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureInit(ctx, cmd); err != nil {
		return err
	}

	dir := cmd.String("dir")
	if dir == "" {
		dir = r.config.Download.Directory
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	path, err := r.source.Fetch(ctx, cmd.String("id"), dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, path)
	return nil
}

// Pick launches the interactive search-and-download TUI.
func (r *Runner) Pick(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	if err := r.ensureInit(ctx, cmd); err != nil {
		return err
	}

	dir := cmd.String("dir")
	if dir == "" {
		dir = r.config.Download.Directory
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	model := ui.NewModel(ctx, r.source, query, dir, int(cmd.Int("limit")))
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
