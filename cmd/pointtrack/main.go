// Command pointtrack runs the point-tracking controller against the
// synthetic engine, optionally writing PNG frames, recording the session to
// SQLite and rendering an HTML report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/banshee-data/pointtrack/internal/config"
	"github.com/banshee-data/pointtrack/internal/monitoring"
	"github.com/banshee-data/pointtrack/internal/render"
	"github.com/banshee-data/pointtrack/internal/report"
	"github.com/banshee-data/pointtrack/internal/storage/sqlite"
	"github.com/banshee-data/pointtrack/internal/synthetic"
	"github.com/banshee-data/pointtrack/internal/tracking"
	"github.com/banshee-data/pointtrack/internal/version"
)

const defaultClick = "320,240@5"

// clickList collects repeated -click flags.
type clickList []synthetic.Click

func (c *clickList) String() string {
	parts := make([]string, 0, len(*c))
	for _, click := range *c {
		parts = append(parts, fmt.Sprintf("%g,%g@%d", click.At.X, click.At.Y, click.Frame))
	}
	return strings.Join(parts, " ")
}

func (c *clickList) Set(s string) error {
	click, err := synthetic.ParseClick(s)
	if err != nil {
		return err
	}
	*c = append(*c, click)
	return nil
}

var (
	configPath  = flag.String("config", "", "Path to tracking config JSON (defaults built in)")
	frames      = flag.Uint64("frames", 120, "Number of frames to run (0 runs until interrupted)")
	fps         = flag.Float64("fps", 0, "Frame rate override (0 uses the config frame_rate)")
	single      = flag.Bool("single", false, "Inject a single point per click instead of the grid")
	dbPath      = flag.String("db", "", "SQLite database to record the session to (empty disables)")
	pngDir      = flag.String("png-dir", "", "Directory to write rendered PNG frames to (empty disables)")
	pngEvery    = flag.Int("png-every", 10, "Write every Nth frame when -png-dir is set")
	reportPath  = flag.String("report", "", "Write an HTML session chart to this path (requires -db)")
	seed        = flag.Int64("seed", 1, "Seed for the synthetic engine")
	logLevel    = flag.String("log-level", "ops", "Log level: ops, diag or trace")
	logFile     = flag.String("log-file", "", "Also write logs to this rotating file")
	progress    = flag.Bool("progress", false, "Show a frame progress bar on stderr")
	showVersion = flag.Bool("version", false, "Print version and exit")

	clicks clickList
)

func init() {
	flag.Var(&clicks, "click", "Scripted click x,y@frame (repeatable, default "+defaultClick+")")
}

// options is the resolved command line.
type options struct {
	Config     *config.TrackingConfig
	Frames     uint64
	FPS        float64
	Clicks     []synthetic.Click
	Single     bool
	DBPath     string
	PNGDir     string
	PNGEvery   int
	ReportPath string
	Seed       int64
	Progress   io.Writer // nil disables the progress bar
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	var logOut io.Writer = os.Stderr
	if *logFile != "" {
		rotating := monitoring.NewRotatingFile(*logFile, monitoring.RotatingFileOptions{Compress: true})
		defer rotating.Close()
		logOut = io.MultiWriter(os.Stderr, rotating)
		log.SetOutput(logOut)
	}
	switch *logLevel {
	case "ops", "diag", "trace":
		monitoring.SetLevel(*logLevel, logOut)
	default:
		log.Fatalf("invalid -log-level %q (want ops, diag or trace)", *logLevel)
	}

	cfg := config.DefaultTrackingConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadTrackingConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	if len(clicks) == 0 {
		if err := clicks.Set(defaultClick); err != nil {
			log.Fatalf("invalid default click: %v", err)
		}
	}
	if *reportPath != "" && *dbPath == "" {
		log.Fatal("-report requires -db")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, options{
		Config:     cfg,
		Frames:     *frames,
		FPS:        *fps,
		Clicks:     clicks,
		Single:     *single,
		DBPath:     *dbPath,
		PNGDir:     *pngDir,
		PNGEvery:   *pngEvery,
		ReportPath: *reportPath,
		Seed:       *seed,
		Progress:   progressOut(*progress),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("pointtrack: %v", err)
	}
}

func progressOut(enabled bool) io.Writer {
	if !enabled {
		return nil
	}
	return os.Stderr
}

// run wires the engine, controller and sinks together and drives the frame
// loop until opts.Frames have run or ctx is cancelled.
func run(ctx context.Context, opts options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultTrackingConfig()
	}
	width, height := float64(cfg.GetFrameWidth()), float64(cfg.GetFrameHeight())

	engine := synthetic.NewEngine(width, height, opts.Seed)

	ctrlOpts := tracking.OptionsFromConfig(cfg)
	if opts.Single {
		ctrlOpts.Policy = tracking.SinglePointPolicy{}
	}

	// A nil *PlotSurface must not reach the controller as a non-nil interface.
	var surface tracking.Surface
	var frameWriter *render.FrameWriter
	if opts.PNGDir != "" {
		ps := render.NewPlotSurface(width, height)
		surface = ps
		frameWriter = render.NewFrameWriter(ps, opts.PNGDir, opts.PNGEvery)
	}

	ctrl := tracking.NewController(engine, surface, ctrlOpts)
	if frameWriter != nil {
		ctrl.AddSink(frameWriter)
	}

	var store *sqlite.Store
	var sessionID string
	if opts.DBPath != "" {
		var err error
		store, err = sqlite.Open(opts.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		params, err := cfg.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		sessionID, err = store.StartSession("synthetic", params)
		if err != nil {
			return err
		}
		ctrl.AddSink(store)
	}

	var bar *progressSink
	if opts.Progress != nil {
		bar = newProgressSink(opts.Progress, opts.Frames)
		ctrl.AddSink(bar)
	}

	script := synthetic.NewScriptedClicks(opts.Clicks...)
	ctrl.Attach(script)

	rate := opts.FPS
	if rate <= 0 {
		rate = cfg.GetFrameRate()
	}
	runner := &tracking.Runner{
		Controller: ctrl,
		FrameRate:  rate,
		MaxFrames:  opts.Frames,
		BeforeFrame: func(frame uint64) {
			script.Fire(frame)
		},
	}

	n, runErr := runner.Run(ctx)
	if bar != nil {
		if err := bar.Finish(); err != nil {
			monitoring.Diagf("progress bar: %v", err)
		}
	}
	monitoring.Opsf("ran %d frames, tracking %d points", n, ctrl.TrackedCount())
	if frameWriter != nil {
		monitoring.Opsf("wrote %d frames to %s", frameWriter.Written(), opts.PNGDir)
	}

	if store != nil {
		if err := store.EndSession(); err != nil {
			return err
		}
		if err := writeReport(store, sessionID, opts.ReportPath); err != nil {
			return err
		}
	}
	return runErr
}

// writeReport logs the session summary and, when path is set, writes the
// HTML chart there.
func writeReport(store *sqlite.Store, sessionID, path string) error {
	stats, err := store.FrameStats(sessionID)
	if err != nil {
		return err
	}
	summary := report.Summarize(sessionID, stats)
	var sb strings.Builder
	if err := summary.WriteText(&sb); err != nil {
		return err
	}
	monitoring.Opsf("%s", strings.TrimRight(sb.String(), "\n"))

	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()
	if err := report.WriteSessionChart(f, sessionID, stats); err != nil {
		return err
	}
	monitoring.Opsf("wrote session report to %s", path)
	return nil
}
