// Command vpdemo runs a small scene of signs and aircraft through the
// viewport dirty tracker and writes one PNG per viewport every few ticks.
// Dirty areas are tinted red so that invalidation can be checked by eye.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/config"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command with args and returns the exit code. Failures
// are reported through the logger, which is closed before returning.
func execute(args []string) int {
	fs := flag.NewFlagSet("vpdemo", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "scene YAML file (default: built-in scene)")
		output     = fs.String("output", "", "output directory (overrides the scene)")
		ticks      = fs.Int("ticks", -1, "number of ticks (overrides the scene)")
		logFile    = fs.String("logfile", "", "write JSON logs to this rotated file")
		verbose    = fs.Bool("v", false, "log debug messages")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, closer := newLogger(*logFile, *verbose)
	defer closer.Close()
	viewport.SetLogger(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Error("failed to load scene", slog.Any("err", err))
			return 1
		}
	}
	if *output != "" {
		cfg.OutputDir = *output
	}
	if *ticks >= 0 {
		cfg.Ticks = *ticks
	}

	n, err := run(cfg, logger)
	if err != nil {
		logger.Error("demo failed", slog.Any("err", err))
		return 1
	}
	log.Printf("Wrote %d frames to %s\n", n, cfg.OutputDir)
	return 0
}

// newLogger returns a JSON logger writing to a rotated file when path is
// set, and a text logger on stderr otherwise.
func newLogger(path string, verbose bool) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nopCloser{}
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func frameName(vp string, tick int) string {
	return fmt.Sprintf("%s-%04d.png", vp, tick)
}
