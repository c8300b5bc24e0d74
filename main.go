package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nstehr/skirmish/command"
	"github.com/nstehr/skirmish/config"
	"github.com/nstehr/skirmish/metrics"
	"github.com/nstehr/skirmish/scenario"
	"github.com/prometheus/client_golang/prometheus"
)

const banner = `
┌─┐┬┌─┬┬─┐┌┬┐┬┌─┐┬ ┬
└─┐├┴┐│├┬┘│││││└─┐├─┤
└─┘┴ ┴┴┴└─┴ ┴┴└─┘┴ ┴

Headless RTS Skirmish`

func main() {
	configPath := flag.String("config", "", "path to a JSON, YAML or TOML config file")
	scriptPath := flag.String("script", "", "JSON-lines command script for the player team (overrides sim.script)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *scriptPath != "" {
		cfg.Sim.Script = *scriptPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	if err := run(cfg); err != nil {
		slog.Error("skirmish failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	script, err := loadScript(cfg.Sim.Script)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	opts := scenario.FromConfig(cfg, seed)
	slog.Info("starting skirmish",
		"seed", opts.World.Seed,
		"tickRate", cfg.Sim.TickRate,
		"duration", cfg.Sim.Duration,
		"scripted", len(script),
	)

	s, err := scenario.Build(opts)
	if err != nil {
		return fmt.Errorf("build skirmish: %w", err)
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	collector.Attach(s.World.Events())

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, collector.Handler())
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown", "error", err)
			}
		}()
	}

	start := time.Now()
	res, err := s.Run(ctx, cfg.Sim.TickInterval(), cfg.Sim.Duration, script)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		slog.Info("interrupted")
	}

	slog.Info("skirmish finished",
		"ticks", res.Ticks,
		"simulated", res.Elapsed,
		"wall", time.Since(start).Round(time.Millisecond),
		"standing", res.Standing,
	)
	if winner, ok := res.Winner(); ok {
		slog.Info("winner", "team", winner)
	}
	for _, t := range s.World.Teams() {
		counts := s.World.UnitCounts(t.ID)
		slog.Info("team summary",
			"team", t.ID,
			"color", t.Color,
			"human", t.Human,
			"minerals", s.World.Minerals(t.ID),
			"units", counts,
		)
	}
	for _, a := range s.Agents {
		fmt.Println(a.Report(s.World))
	}
	return nil
}

func loadScript(path string) ([]command.Envelope, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return command.ReadScript(f)
}

func serveMetrics(addr string, h http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	return srv
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
