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
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/clockgrid/audio"
	"github.com/lixenwraith/clockgrid/clock"
	"github.com/lixenwraith/clockgrid/config"
	"github.com/lixenwraith/clockgrid/engine"
	"github.com/lixenwraith/clockgrid/render"
)

// options are the command-line flags; zero values mean "not given"
type options struct {
	configPath string
	envPath    string
	speed      float64
	fade       float64
	snapshot   bool
	out        string
	debug      bool
	colorMode  string
	chime      bool

	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("clockgrid", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.configPath, "config", "clockgrid.yaml", "YAML settings file")
	fs.StringVar(&o.envPath, "env", ".env", "dotenv file with CLOCKGRID_* overrides")
	fs.Float64Var(&o.speed, "speed", 0, "time dilation; 60 plays a minute per second")
	fs.Float64Var(&o.fade, "fade", 0, "fade duration in seconds")
	fs.BoolVar(&o.snapshot, "snapshot", false, "write a still PNG of the preview date and exit")
	fs.StringVar(&o.out, "out", "clockgrid.png", "snapshot output path, - for stdout")
	fs.BoolVar(&o.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	fs.StringVar(&o.colorMode, "color", "auto", "Color mode: auto, truecolor, 256")
	fs.BoolVar(&o.chime, "chime", false, "chime when the minute turns over")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	switch o.colorMode {
	case "auto", "256", "truecolor", "true", "24bit":
	default:
		return nil, fmt.Errorf("%w: -color %q", config.ErrInvalidSetting, o.colorMode)
	}
	return o, nil
}

// apply overlays explicitly given flags onto cfg
func (o *options) apply(cfg *config.Settings) error {
	if o.set["speed"] {
		cfg.Speedup = o.speed
	}
	if o.set["fade"] {
		cfg.FadeSeconds = o.fade
	}
	if o.set["chime"] {
		cfg.Audio.Enabled = o.chime
	}
	return cfg.Validate()
}

// snapshotMode reports whether to write a still image instead of animating
// A stdout that is not a terminal cannot host the animation
func (o *options) snapshotMode(stdoutIsTerminal bool) bool {
	return o.snapshot || !stdoutIsTerminal
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the clock crashes
	defer func() {
		if r := recover(); r != nil {
			emergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCLOCKGRID CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "clockgrid: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(opts.configPath, opts.envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clockgrid: %v\n", err)
		os.Exit(1)
	}
	if err := opts.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "clockgrid: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer cancel()

	if opts.snapshotMode(term.IsTerminal(int(os.Stdout.Fd()))) {
		err = runSnapshot(ctx, cfg, opts.out)
	} else {
		err = runInteractive(ctx, cfg, opts.colorMode)
	}
	if err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "clockgrid: %v\n", err)
		os.Exit(1)
	}
}

// runSnapshot renders the preview date once and writes it as PNG
func runSnapshot(ctx context.Context, cfg *config.Settings, out string) error {
	date, err := cfg.Preview()
	if err != nil {
		return err
	}
	palette, err := render.NewPalette(cfg.Colors)
	if err != nil {
		return err
	}

	driver := engine.NewDriver(ctx, clock.NewComposer(cfg.FadeSeconds), nil, engine.Options{
		Speed:       cfg.Speedup,
		Preview:     true,
		PreviewDate: date,
	})
	frame, ok := driver.Next()
	if !ok {
		return ctx.Err()
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create snapshot: %w", err)
		}
		defer f.Close()
		w = f
	}

	log.Printf("snapshot %s at %s", out, date.Format(time.RFC3339))
	return render.Snapshot(w, frame.Grid, render.SnapshotOptions{
		Radius:    cfg.Radius,
		MaxWidth:  cfg.Thumbnail.Width,
		MaxHeight: cfg.Thumbnail.Height,
		Palette:   palette,
	})
}

// runInteractive animates the wall clock on the terminal until the user
// quits or a shutdown signal arrives, then fades out
func runInteractive(ctx context.Context, cfg *config.Settings, colorMode string) error {
	palette, err := render.NewPalette(cfg.Colors)
	if err != nil {
		return err
	}

	switch colorMode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.HideCursor()

	renderer := render.NewTerminalRenderer(screen, palette.TerminalPalette())

	var chime *audio.Chime
	if cfg.Audio.Enabled {
		chime = audio.NewChime(cfg.Audio.Volume)
		if err := chime.Initialize(); err != nil {
			// Non-fatal, the clock runs silent
			log.Printf("Audio initialization failed: %v", err)
		}
		defer chime.Cleanup()
	}

	// The driver outlives the signal context so the fade-out can play
	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	driver := engine.NewDriver(runCtx, clock.NewComposer(cfg.FadeSeconds), nil, engine.Options{
		Speed: cfg.Speedup,
	})

	// done releases the poller if it is blocked on a full channel at exit
	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event, 16)
	go pollEvents(screen, eventChan, done)

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	log.Printf("running at %v fps, speed %v", cfg.FPS, cfg.Speedup)
	signals := ctx.Done()
	for {
		select {
		case <-signals:
			signals = nil
			driver.BeginFadeOut()

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				renderer.Resize()
				screen.Sync()
			case *tcell.EventKey:
				if quitKey(ev) {
					driver.BeginFadeOut()
				}
			}

		case <-frameTicker.C:
			frame, ok := driver.Next()
			if !ok {
				return nil
			}
			if err := renderer.Render(frame.Grid); err != nil {
				return err
			}
			if driver.FadedOut() {
				stop()
				continue
			}
			if chime != nil && !driver.FadingOut() {
				chime.Observe(frame.Date)
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	// Panic recovery for input polling goroutine to ensure terminal cleanup
	defer func() {
		if r := recover(); r != nil {
			emergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		ev := screen.PollEvent()
		// nil after Fini
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
