package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/valerio/go-frameloop/frameloop"
	"github.com/valerio/go-frameloop/frameloop/backend"
	"github.com/valerio/go-frameloop/frameloop/backend/headless"
	"github.com/valerio/go-frameloop/frameloop/backend/terminal"
	"github.com/valerio/go-frameloop/frameloop/config"
	"github.com/valerio/go-frameloop/frameloop/loop"
	"github.com/valerio/go-frameloop/frameloop/metronome"
	"github.com/valerio/go-frameloop/frameloop/timing"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		slog.Error("Error running frameloop", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "frameloop"
	app.Description = "A drift-aware update loop with a live frame rate estimate"
	app.Usage = "frameloop [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			Usage:  "Path to a YAML or TOML config file",
			EnvVar: "FRAMELOOP_CONFIG",
		},
		cli.StringFlag{
			Name:   "policy",
			Usage:  "Metronome policy: simple or delta",
			EnvVar: "FRAMELOOP_POLICY",
		},
		cli.Float64Flag{
			Name:   "period",
			Usage:  "Update period in milliseconds",
			EnvVar: "FRAMELOOP_PERIOD_MS",
		},
		cli.BoolTFlag{
			Name:   "display",
			Usage:  "Sample and show the frame rate (--display=false to disable)",
			EnvVar: "FRAMELOOP_DISPLAY",
		},
		cli.StringFlag{
			Name:   "host",
			Usage:  "Frame clock: ticker, adaptive or virtual",
			EnvVar: "FRAMELOOP_HOST",
		},
		cli.Float64Flag{
			Name:   "refresh-hz",
			Usage:  "Host frame rate in Hz",
			EnvVar: "FRAMELOOP_REFRESH_HZ",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without the terminal interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of ticks to run in headless mode (0 = until interrupted)",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Log level: debug, info, warn or error",
			EnvVar: "FRAMELOOP_LOG_LEVEL",
		},
	}
	app.Action = runLoop
	return app
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// flags override the file
	if c.IsSet("policy") {
		policy, err := metronome.ParsePolicy(c.String("policy"))
		if err != nil {
			return nil, err
		}
		cfg.Policy = policy
	}
	if c.IsSet("period") {
		cfg.PeriodMillis = c.Float64("period")
	}
	if c.IsSet("display") {
		cfg.RateDisplay = c.BoolT("display")
	}
	if c.IsSet("host") {
		cfg.Host = c.String("host")
	}
	if c.IsSet("refresh-hz") {
		cfg.RefreshHz = c.Float64("refresh-hz")
	}
	if c.IsSet("headless") {
		cfg.Headless = c.Bool("headless")
	}
	if c.IsSet("frames") {
		cfg.Frames = c.Int("frames")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newHost(cfg *config.Config) (loop.Host, func()) {
	switch cfg.Host {
	case config.HostAdaptive:
		return timing.NewAdaptiveHost(cfg.RefreshHz), func() {}
	case config.HostVirtual:
		return timing.NewVirtualHost(cfg.RefreshHz), func() {}
	default:
		h := timing.NewTickerHost(cfg.RefreshHz)
		return h, h.Stop
	}
}

func runLoop(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	runID := uuid.NewString()

	var b backend.Backend
	if cfg.Headless {
		if cfg.Host != config.HostVirtual && cfg.Frames == 0 {
			slog.Warn("Headless real-time run has no tick budget, interrupt to stop")
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler).With("run_id", runID))
		b = headless.New(cfg.Frames, cfg.LogInterval)
	} else {
		if cfg.Host == config.HostVirtual {
			return errors.New("the virtual host is only supported in headless mode")
		}
		tb := terminal.New()
		tb.SetLogLevel(level)
		b = tb
	}

	if err := b.Init(backend.Config{Title: "frameloop", RunID: runID}); err != nil {
		return err
	}
	defer b.Cleanup()

	animator, err := frameloop.NewAnimator(frameloop.Options{
		Policy:       cfg.Policy,
		PeriodMillis: cfg.PeriodMillis,
		RateDisplay:  cfg.RateDisplay,
	}, b)
	if err != nil {
		return err
	}

	host, stop := newHost(cfg)
	defer stop()

	slog.Info("Starting loop",
		"policy", cfg.Policy,
		"period_ms", cfg.PeriodMillis,
		"host", cfg.Host,
		"refresh_hz", cfg.RefreshHz)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	driver := loop.NewDriver(host, animator)
	if err := driver.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		slog.Info("Loop interrupted", "frames", driver.Frames())
	}
	if err := animator.Err(); err != nil {
		return err
	}

	slog.Info("Loop finished", "frames", driver.Frames(), "ticks", animator.Ticks())
	return nil
}
