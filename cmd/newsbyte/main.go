package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/newsbyte/newsbyte/pkg/activity"
	"github.com/newsbyte/newsbyte/pkg/config"
	"github.com/newsbyte/newsbyte/pkg/content"
	"github.com/newsbyte/newsbyte/pkg/domain"
	"github.com/newsbyte/newsbyte/pkg/feed"
	"github.com/newsbyte/newsbyte/pkg/session"
	"github.com/newsbyte/newsbyte/pkg/store"
	"github.com/newsbyte/newsbyte/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	log.Printf("[INFO] starting newsbyte version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	log.Print("[INFO] shutdown complete")
}

// run wires the stores, feed manager and HTTP server together
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	kv, err := store.New(ctx, store.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			log.Printf("[WARN] failed to close storage: %v", closeErr)
		}
	}()

	sessions := session.New(ctx, kv)
	activities := activity.New(kv, sessions)

	fetcher := feed.NewFetcher(feedSources(cfg), cfg.Feeds.Timeout, cfg.Feeds.UserAgent)
	feeds := feed.NewManager(fetcher, cfg.Feeds.RefreshInterval)
	go feeds.Run(ctx)

	extractor := content.NewExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent)

	srv := server.New(cfg, sessions, activities, feeds, extractor, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file, a missing default file is not fatal
func loadConfig(opts Opts) (*config.Config, error) {
	path := opts.Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[WARN] config file %s not found, using defaults", path)
		path = ""
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	return cfg, nil
}

// feedSources converts configured sources to the fetcher's category map
func feedSources(cfg *config.Config) map[domain.Category][]feed.Source {
	sources := map[domain.Category][]feed.Source{}
	for category, list := range cfg.Feeds.Sources {
		for _, src := range list {
			sources[domain.Category(category)] = append(sources[domain.Category(category)],
				feed.Source{Name: src.Name, URL: src.URL})
		}
	}
	return sources
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
