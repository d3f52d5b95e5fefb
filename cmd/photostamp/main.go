package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// args holds the command-line arguments
var args struct {
	ConfigFile  string `arg:"--config" help:"Path to config file"`
	Verbose     bool   `arg:"-v,--verbose" help:"Enable verbose output"`
	JPEGQuality int    `arg:"--quality" help:"JPEG quality of the watermarked copies (1-100)"`
	FontFile    string `arg:"--font" help:"TrueType font for the watermark (default: Go Bold)"`
	ColorMode   string `arg:"--color-mode" help:"Colored console output (auto/always/never)"`
}

// config holds the application configuration
type config struct {
	ConfigFile  string    `yaml:"-"`
	JPEGQuality int       `yaml:"jpeg_quality"`
	FontFile    string    `yaml:"font_file"`
	Verbose     bool      `yaml:"verbose"`
	ColorMode   ColorMode `yaml:"color_mode"`
}

// setDefaults initializes the config with default values
func setDefaults(cfg *config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %v", err)
	}

	cfg.ConfigFile = filepath.Join(homeDir, ".photostamprc")
	cfg.JPEGQuality = defaultJPEGQuality
	cfg.FontFile = ""
	cfg.Verbose = false
	cfg.ColorMode = ColorAuto
	return nil
}

// parseConfigFile reads and parses the YAML configuration file
func parseConfigFile(cfg *config) error {
	data, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, just return without an error
			return nil
		}
		return fmt.Errorf("failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	return nil
}

// validateConfig checks if the configuration is valid
func validateConfig(cfg *config) error {
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return fmt.Errorf("invalid JPEG quality: %d (must be between 1 and 100)", cfg.JPEGQuality)
	}

	if cfg.FontFile != "" {
		if _, err := os.Stat(cfg.FontFile); os.IsNotExist(err) {
			return fmt.Errorf("font file does not exist: %s", cfg.FontFile)
		}
	}

	if !isValidColorMode(cfg.ColorMode) {
		return fmt.Errorf("invalid color mode: %q (must be auto, always, or never)", cfg.ColorMode)
	}

	return nil
}

// wasFlagProvided checks if a CLI flag was explicitly provided
func wasFlagProvided(flagName string) bool {
	for _, a := range os.Args[1:] {
		if a == flagName || strings.HasPrefix(a, flagName+"=") {
			return true
		}
	}
	return false
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run() error {
	// Create an instance of the config struct
	cfg := config{}

	// Set default values first
	if err := setDefaults(&cfg); err != nil {
		return fmt.Errorf("setting defaults: %w", err)
	}

	// Parse command-line arguments
	arg.MustParse(&args)

	// Apply config file path from command-line argument if provided
	if args.ConfigFile != "" {
		cfg.ConfigFile = args.ConfigFile
	}

	// Parse configuration file
	if err := parseConfigFile(&cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Override with command-line arguments
	if wasFlagProvided("-v") || wasFlagProvided("--verbose") {
		cfg.Verbose = args.Verbose
	}
	if wasFlagProvided("--quality") {
		cfg.JPEGQuality = args.JPEGQuality
	}
	if wasFlagProvided("--font") {
		cfg.FontFile = args.FontFile
	}
	if wasFlagProvided("--color-mode") {
		cfg.ColorMode = ColorMode(args.ColorMode)
	}

	// Validate the configuration
	if err := validateConfig(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.Verbose)
	logger.Debug().
		Str("config_file", cfg.ConfigFile).
		Int("jpeg_quality", cfg.JPEGQuality).
		Str("font_file", cfg.FontFile).
		Str("color_mode", string(cfg.ColorMode)).
		Msg("configuration loaded")

	renderer, err := NewRenderer(cfg.FontFile)
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}

	a, err := promptAnswers(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}

	printer := newPrinter(os.Stdout, os.Stderr, resolveColors(cfg.ColorMode))
	p := newProcessor(renderer, printer, logger, cfg.JPEGQuality)

	summary, err := p.processBatch(a.InputDir, a.Watermark)
	if err != nil {
		// A bad input directory ends the run without being an error exit.
		if errors.Is(err, errInvalidPath) || errors.Is(err, errNoImages) {
			printer.Error("%v", err)
			return nil
		}
		return fmt.Errorf("processing images: %w", err)
	}

	printer.Summary(summary)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
