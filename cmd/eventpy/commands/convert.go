package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eventpy/eventpy/internal/config"
	"github.com/eventpy/eventpy/internal/emit"
	"github.com/eventpy/eventpy/internal/influx"
	"github.com/eventpy/eventpy/internal/logging"
	"github.com/eventpy/eventpy/internal/project"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/report"
	"github.com/eventpy/eventpy/internal/translate"
	"github.com/eventpy/eventpy/internal/transpile"
	"github.com/eventpy/eventpy/pkg/core"
)

const appName = "eventpy"

var (
	inputPath  string
	outputPath string
	eventID    int
	eventPage  int
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the events of a map, common event or troop file",
	Long: `Convert reads MapNNN.json, CommonEvents.json or Troops.json and prints
the script of every event page. --event-id narrows the run to one event,
and --event-page to one page of it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := convertOptions{Input: inputPath, Output: outputPath}
		if cmd.Flags().Changed("event-id") {
			id := eventID
			opts.EventID = &id
		}
		if cmd.Flags().Changed("event-page") {
			page := eventPage
			opts.Page = &page
		}
		return runConvert(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	convertCmd.Flags().StringVarP(&inputPath, "input", "i", "", "event data file")
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file, stdout when empty or -")
	convertCmd.Flags().IntVar(&eventID, "event-id", 0, "convert only this event")
	convertCmd.Flags().IntVar(&eventPage, "event-page", 0, "convert only this page of the event (0-based)")
	convertCmd.Flags().String("variant", "", "engine generation: mv or mz")
	convertCmd.Flags().String("unknown-policy", "", "unrecognized commands: placeholder or fail")
	convertCmd.Flags().String("failure-policy", "", "failed events: abort, skip or placeholder")
	convertCmd.Flags().String("indent", "", "indent unit of the generated script")
	_ = convertCmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("variant", convertCmd.Flags().Lookup("variant"))
	_ = viper.BindPFlag("unknownPolicy", convertCmd.Flags().Lookup("unknown-policy"))
	_ = viper.BindPFlag("failurePolicy", convertCmd.Flags().Lookup("failure-policy"))
	_ = viper.BindPFlag("emit.indent", convertCmd.Flags().Lookup("indent"))
}

type convertOptions struct {
	Input   string
	Output  string
	EventID *int
	Page    *int
}

// runConvert converts opts.Input with the loaded configuration. The script
// is written only when every selected event was handled.
func runConvert(ctx context.Context, opts convertOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sessionStart := time.Now()

	logs, logOut, closeLogs, err := setupLogging(opts.Input, sessionStart)
	if err != nil {
		return err
	}
	defer closeLogs()
	log := logs.Logger()
	zl := logging.NewZerolog(logOut, config.GetString("logLevel"), logOut != os.Stderr)

	engine, err := newEngine(zl, log)
	if err != nil {
		return err
	}

	kind, events, err := project.LoadFile(opts.Input)
	if err != nil {
		return err
	}
	events, err = selectEvents(kind, events, opts)
	if err != nil {
		return err
	}
	log.Info("Converting", "kind", kind.String(), "pages", len(events))

	r, runErr := engine.Run(ctx, events)
	if runErr == nil {
		if err := writeOutput(opts.Output, engine.Render(r), stdout); err != nil {
			return err
		}
	}

	log.Info("Conversion finished",
		"translated", r.Translated,
		"failed", r.Failed,
		"diagnostics", len(r.Diagnostics()),
		"duration", r.Duration)

	saveReport(ctx, zl, opts.Input, r, events, runErr)
	pushStats(ctx, zl, opts.Input, r)
	return runErr
}

func selectEvents(kind project.Kind, events []core.Event, opts convertOptions) ([]core.Event, error) {
	if opts.EventID == nil {
		if opts.Page != nil {
			return nil, errors.New("--event-page needs --event-id")
		}
		return events, nil
	}
	return project.Select(kind, events, *opts.EventID, opts.Page)
}

func newEngine(zl zerolog.Logger, log *slog.Logger) (*transpile.Engine, error) {
	variant, err := registry.ParseVariant(config.GetString("variant"))
	if err != nil {
		return nil, err
	}
	unknown, err := translate.ParseUnknownPolicy(config.GetString("unknownPolicy"))
	if err != nil {
		return nil, err
	}
	policy, err := transpile.ParseFailurePolicy(config.GetString("failurePolicy"))
	if err != nil {
		return nil, err
	}
	names, err := config.Names()
	if err != nil {
		return nil, err
	}

	tr, err := translate.New(logging.NewTranslatorLogger(zl), names, unknown)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}
	return transpile.NewEngine(registry.Default(variant), tr,
		transpile.WithEmitter(emit.New(emit.WithIndent(config.GetString("emit.indent")))),
		transpile.WithLogger(log),
		transpile.WithFailurePolicy(policy),
	), nil
}

// setupLogging opens the session log file under logsDir, or logs to the
// console when logsDir is empty.
func setupLogging(input string, sessionStart time.Time) (*logging.SlogManager, io.Writer, func(), error) {
	var (
		file    *os.File
		logOut  io.Writer = os.Stderr
		graylog logging.MessageWriter
	)

	if dir := config.GetString("logsDir"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, nil, fmt.Errorf("error creating logs dir: %w", err)
		}
		var err error
		file, err = os.OpenFile(logging.SessionLogPath(dir, appName, sessionStart), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error opening log file: %w", err)
		}
		logOut = file
	}

	if config.GetBool("graylog.enabled") {
		w, err := gelf.NewWriter(config.GetString("graylog.address"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "graylog disabled: %v\n", err)
		} else {
			graylog = w
		}
	}

	variant := config.GetString("variant")
	session := func() []slog.Attr {
		return []slog.Attr{
			slog.String("input", filepath.Base(input)),
			slog.String("variant", variant),
		}
	}

	logs := logging.NewSlogManager()
	if file != nil {
		logs.Setup(file, config.GetString("logLevel"), graylog, session)
	} else {
		logs.Setup(nil, config.GetString("logLevel"), graylog, session)
	}

	closeLogs := func() {
		_ = logs.Close()
		if file != nil {
			_ = file.Close()
		}
	}
	return logs, logOut, closeLogs, nil
}

func writeOutput(path, text string, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	return writeFileAtomic(path, []byte(text), 0644)
}

// saveReport records the run when the report store is enabled. Store
// failures are logged and do not fail the conversion.
func saveReport(ctx context.Context, zl zerolog.Logger, input string, r *transpile.Report, events []core.Event, runErr error) {
	rc, err := config.Report()
	if err != nil {
		zl.Error().Err(err).Msg("Invalid report config")
		return
	}
	if !rc.Enabled {
		return
	}

	store, err := report.Open(rc.Driver, rc.Path, rc.DSN, zl)
	if err != nil {
		zl.Error().Err(err).Str("driver", rc.Driver).Msg("Failed to open report store")
		return
	}
	defer store.Close()

	if err := store.Setup(); err != nil {
		zl.Error().Err(err).Msg("Failed to migrate report store")
		return
	}
	runID, err := store.Save(ctx, input, r, events, runErr)
	if err != nil {
		zl.Error().Err(err).Msg("Failed to save run report")
		return
	}
	zl.Info().Str("run", runID).Msg("Run report saved")
}

// pushStats writes the run statistics to InfluxDB when enabled.
func pushStats(ctx context.Context, zl zerolog.Logger, input string, r *transpile.Report) {
	ic, err := config.Influx()
	if err != nil {
		zl.Error().Err(err).Msg("Invalid influx config")
		return
	}
	if !ic.Enabled {
		return
	}

	backupDir := config.GetString("logsDir")
	if backupDir == "" {
		backupDir = "."
	}
	m := influx.NewManager(zl, influx.Options{
		URL:        ic.URL,
		Token:      ic.Token,
		Org:        ic.Org,
		Bucket:     ic.Bucket,
		BackupPath: filepath.Join(backupDir, "eventpy_influx_backup.lp.gz"),
	})
	defer m.Close()

	if err := m.Connect(ctx); err != nil {
		zl.Error().Err(err).Msg("Failed to connect to InfluxDB")
		return
	}
	if err := m.WritePoints(ctx, influx.RunPoints(filepath.Base(input), r)...); err != nil {
		zl.Error().Err(err).Msg("Failed to write run statistics")
	}
}
