// Command cutpath turns JSON drawings into chains, parts and lead arcs.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/cutpath"
	"github.com/gogpu/cutpath/drawing"
	"github.com/gogpu/cutpath/internal/config"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	tolerance  float64
	workers    int
	logLevel   string
	lang       string

	cfg     config.Config
	printer *message.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cutpath",
		Short: "Prepare CAD drawings for CNC cutting",
		Long: "cutpath groups drawing shapes into chains, orders them into cuttable paths, " +
			"classifies shells and holes, and places tangent lead-in and lead-out arcs.",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a JSON config file")
	flags.Float64Var(&a.tolerance, "tolerance", cutpath.DefaultTolerance, "Coincidence distance in drawing units")
	flags.IntVar(&a.workers, "workers", 1, "Parallel workers (0 uses all CPUs)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&a.lang, "lang", "en", "Language tag for number formatting in reports")

	root.AddCommand(
		newChainsCmd(a),
		newPartsCmd(a),
		newLeadsCmd(a),
		newProcessCmd(a),
		newPreviewCmd(a),
	)
	return root
}

// load builds the effective configuration: file, environment, then flags
// given on the command line.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("tolerance") {
		cfg.Tolerance = a.tolerance
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("lang") {
		cfg.Lang = a.lang
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	tag, err := language.Parse(cfg.Lang)
	if err != nil {
		tag = language.English
	}
	a.printer = message.NewPrinter(tag)

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()})
	cutpath.SetLogger(slog.New(handler))
	return nil
}

// process reads a drawing and runs the pipeline with extra options applied
// after the configured ones.
func (a *app) process(path string, extra ...cutpath.Option) (*cutpath.Result, error) {
	shapes, err := drawing.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := cutpath.NewProcessor(append(a.cfg.Options(), extra...)...)
	defer p.Close()
	return p.Process(shapes), nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
