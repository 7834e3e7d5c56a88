// Command anafora-eval scores Anafora annotations: a reference corpus
// against a predicted one, or the annotators of one corpus against each
// other.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
	"github.com/FocuswithJustin/anafora-eval/core/corpus"
	"github.com/FocuswithJustin/anafora-eval/core/eval"
	"github.com/FocuswithJustin/anafora-eval/internal/config"
	"github.com/FocuswithJustin/anafora-eval/internal/fingerprint"
	"github.com/FocuswithJustin/anafora-eval/internal/logging"
	"github.com/FocuswithJustin/anafora-eval/internal/metrics"
	"github.com/FocuswithJustin/anafora-eval/internal/report"
	"github.com/FocuswithJustin/anafora-eval/internal/store"
	"github.com/FocuswithJustin/anafora-eval/internal/validation"
)

const version = "0.1.0"

// CLI defines the command-line interface for anafora-eval.
type CLI struct {
	Schema       string `arg:"" help:"Anafora schema XML file" type:"existingfile"`
	ReferenceDir string `arg:"" name:"reference-dir" help:"Directory of reference (gold) annotations" type:"existingdir"`
	PredictedDir string `arg:"" name:"predicted-dir" optional:"" help:"Directory of predicted annotations; omit to compare annotators in reference-dir" type:"existingdir"`

	Debug        bool     `help:"Log missed and added annotations"`
	Include      []string `help:"Score only these Type[:Property[:Value]] keys; repeat the flag for each token" placeholder:"TOKEN" sep:"none"`
	Exclude      []string `help:"Skip these Type[:Property[:Value]] keys; repeat the flag for each token" placeholder:"TOKEN" sep:"none"`
	Overlap      bool     `help:"Match spans that overlap instead of requiring identical spans"`
	XMLNameRegex string   `name:"xml-name-regex" help:"Regex selecting annotation files in annotator mode (default \"[.]xml$\")"`
	Config       string   `help:"YAML configuration file" type:"existingfile"`
	LogFormat    string   `name:"log-format" help:"Log format (text or json)"`
	Format       string   `help:"Stdout format (table or json)"`
	Out          string   `help:"Write a JSON report to FILE (.xz compresses it)" placeholder:"FILE" type:"path"`
	DB           string   `name:"db" help:"Append the run to an SQLite results store" placeholder:"FILE" type:"path"`
	MetricsFile  string   `name:"metrics-file" help:"Write Prometheus metrics in textfile format" placeholder:"FILE" type:"path"`

	Version kong.VersionFlag `help:"Print version information"`

	stdout io.Writer `kong:"-"`
}

// settings overlays the command-line flags on the configuration file.
func (c *CLI) settings() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.Config != "" {
		loaded, err := config.LoadFromFile(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := &config.Config{
		Scoring: config.ScoringConfig{
			Include:      c.Include,
			Exclude:      c.Exclude,
			Overlap:      c.Overlap,
			XMLNameRegex: c.XMLNameRegex,
		},
		Log: config.LogConfig{Format: c.LogFormat},
		Output: config.OutputConfig{
			Format:      c.Format,
			Report:      c.Out,
			Database:    c.DB,
			MetricsFile: c.MetricsFile,
		},
	}
	if c.Debug {
		flags.Log.Level = "debug"
	}
	cfg.Merge(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) validatePaths(cfg *config.Config) error {
	if err := validation.ValidateFile(c.Schema); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if err := validation.ValidateDir(c.ReferenceDir); err != nil {
		return fmt.Errorf("reference directory: %w", err)
	}
	if c.PredictedDir != "" {
		if err := validation.ValidateDir(c.PredictedDir); err != nil {
			return fmt.Errorf("predicted directory: %w", err)
		}
	}
	for _, out := range []string{cfg.Output.Report, cfg.Output.Database, cfg.Output.MetricsFile} {
		if out == "" {
			continue
		}
		if err := validation.ValidateOutput(out); err != nil {
			return fmt.Errorf("output %s: %w", out, err)
		}
	}
	return nil
}

func initLogging(cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// Run scores the corpus and writes the requested outputs.
func (c *CLI) Run() error {
	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}
	if err := c.validatePaths(cfg); err != nil {
		return err
	}

	filter, err := eval.ParseFilter(cfg.Scoring.Include, cfg.Scoring.Exclude)
	if err != nil {
		return err
	}
	schema, err := anafora.LoadSchema(c.Schema)
	if err != nil {
		return err
	}

	equivalence := eval.Exact
	if cfg.Scoring.Overlap {
		equivalence = eval.Overlapping
	}

	runID := store.NewRunID()
	ctx := logging.WithRunID(context.Background(), runID)
	logger := logging.LoggerFromContext(ctx)
	m := metrics.New()

	scorer := &corpus.Scorer{
		Schema: schema,
		Options: eval.Options{
			Filter:      filter,
			Equivalence: equivalence,
			Diagnostics: eval.LogDiagnostics(logger),
		},
		Logger:      logger,
		Metrics:     m,
		Fingerprint: fingerprint.Sum,
	}

	start := time.Now()
	var run *corpus.Run
	if c.PredictedDir != "" {
		logging.RunStarted("dirs", c.ReferenceDir, "run_id", runID, "predicted", c.PredictedDir, "equivalence", equivalence.Name())
		run, err = scorer.ScoreDirs(c.ReferenceDir, c.PredictedDir)
	} else {
		nameRegex, rerr := regexp.Compile(cfg.Scoring.XMLNameRegex)
		if rerr != nil {
			return fmt.Errorf("invalid --xml-name-regex: %w", rerr)
		}
		logging.RunStarted("annotators", c.ReferenceDir, "run_id", runID, "equivalence", equivalence.Name())
		run, err = scorer.ScoreAnnotators(c.ReferenceDir, nameRegex)
	}
	if err != nil {
		return err
	}
	duration := time.Since(start)

	rep := report.New(run)
	rep.RunID = runID
	rep.Reference = c.ReferenceDir
	rep.Predicted = c.PredictedDir
	rep.Overlap = cfg.Scoring.Overlap
	rep.StartedAt = start.UTC()
	rep.DurationMS = duration.Milliseconds()
	rep.Digest = store.CorpusDigest(rep)

	if err := writeStdout(stdout, cfg.Output.Format, run, rep); err != nil {
		return err
	}
	if err := c.writeOutputs(ctx, cfg, run, rep, m); err != nil {
		return err
	}

	logging.RunFinished(run.Units, len(run.Results), duration, "run_id", runID, "digest", fingerprint.Short(rep.Digest))
	return nil
}

func writeStdout(w io.Writer, format string, run *corpus.Run, rep *report.Report) error {
	if format == "json" {
		return report.WriteJSON(w, rep)
	}
	return report.WriteTable(w, run.Results)
}

func (c *CLI) writeOutputs(ctx context.Context, cfg *config.Config, run *corpus.Run, rep *report.Report, m *metrics.Metrics) error {
	if path := cfg.Output.Report; path != "" {
		if err := report.WriteFile(path, rep); err != nil {
			return err
		}
		logging.InfoContext(ctx, "report written", "path", path)
	}

	if path := cfg.Output.Database; path != "" {
		db, err := store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := db.Save(ctx, rep); err != nil {
			return err
		}
		logging.InfoContext(ctx, "run stored", "path", path)
	}

	if path := cfg.Output.MetricsFile; path != "" {
		m.SetKeys(len(run.Results))
		for _, k := range run.Results.Keys() {
			m.SetF1(k.String(), run.Results[k].F1())
		}
		if err := m.WriteTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("anafora-eval"),
		kong.Description("Score Anafora annotations for precision, recall and F1"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
