// Package main provides the entry point for the symbol audit tool. It
// handles command-line arguments, configuration loading, and orchestrates
// one audit run: resolve the dependency closure of the target binary, then
// evaluate every policy rule against it and report the results.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/isseis/go-symbol-audit/internal/checker/config"
	"github.com/isseis/go-symbol-audit/internal/checker/elfreader"
	"github.com/isseis/go-symbol-audit/internal/checker/report"
	"github.com/isseis/go-symbol-audit/internal/checker/resolver"
	"github.com/isseis/go-symbol-audit/internal/checker/ruleset"
	"github.com/isseis/go-symbol-audit/internal/cmdcommon"
	"github.com/isseis/go-symbol-audit/internal/logging"
	"github.com/isseis/go-symbol-audit/internal/terminal"
)

// Error definitions
var (
	ErrMissingArguments = errors.New("expected two arguments: RULES FILE")
)

var (
	libPath      = flag.String("libpath", "", `":"-separated directories to search for shared libraries`)
	configPath   = flag.String("config", "", "path to optional TOML config file")
	outputFormat = flag.String("output", "", "report output format (text, json); overrides config")
	logLevel     = flag.String("log-level", "", "log level (debug, info, warn, error); overrides config")
	logDir       = flag.String("log-dir", "", "directory to place per-run JSON log (auto-named); overrides config")
	forceColor   = flag.Bool("force-color", false, "force colored report output")
	noColor      = flag.Bool("no-color", false, "disable colored report output")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] RULES FILE\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(flag.CommandLine.Output(),
		"Audits the ELF binary FILE and its transitive shared-library\ndependencies against the rules in RULES.\n\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	os.Exit(run())
}

// run executes one audit and returns the process exit code. All fatal
// failures are logged here so main stays a thin shell.
func run() int {
	runID := logging.GenerateRunID()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "symaudit: %v\n", err)
		return cmdcommon.ExitFailure
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "symaudit: %v\n", err)
		return cmdcommon.ExitFailure
	}
	if err := logging.Setup(logging.Config{Level: level, LogDir: cfg.LogDir, RunID: runID}); err != nil {
		fmt.Fprintf(os.Stderr, "symaudit: %v\n", err)
		return cmdcommon.ExitFailure
	}

	if flag.NArg() != 2 {
		slog.Error("invalid arguments", slog.Any("error", ErrMissingArguments))
		flag.Usage()
		return cmdcommon.ExitFailure
	}
	rulesPath := flag.Arg(0)
	targetPath := flag.Arg(1)

	// Load and validate the rule set before touching any binary, so a
	// malformed rule file never produces a partial report.
	ruleData, err := os.ReadFile(rulesPath)
	if err != nil {
		slog.Error("failed to read rule file", slog.String("path", rulesPath), slog.Any("error", err))
		return cmdcommon.ExitFailure
	}
	rules, err := ruleset.Load(ruleData)
	if err != nil {
		slog.Error("failed to load rule set", slog.String("path", rulesPath), slog.Any("error", err))
		return cmdcommon.ExitFailure
	}
	slog.Debug("rule set loaded", slog.String("path", rulesPath), slog.Int("rules", len(rules.Rules)))

	res := resolver.New(elfreader.NewReader(), buildSearchPath(cfg))
	closure, err := res.Resolve(targetPath)
	if err != nil {
		slog.Error("failed to resolve dependency closure",
			slog.String("target", targetPath), slog.Any("error", err))
		return cmdcommon.ExitFailure
	}

	results := rules.Run(closure)
	rep := report.New(runID, targetPath, results)
	if err := writeReport(rep, cfg); err != nil {
		slog.Error("failed to write report", slog.Any("error", err))
		return cmdcommon.ExitFailure
	}

	if ruleset.HasFiredAtSeverity(results, ruleset.SeverityError) {
		return cmdcommon.ExitViolation
	}
	return cmdcommon.ExitOK
}

// loadConfig merges the optional config file with command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.NewLoader().Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *outputFormat != "" {
		cfg.Output = *outputFormat
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSearchPath assembles the ordered library search path: the current
// working directory always comes first, then config-file entries, then
// --libpath entries, then the SYMAUDIT_LIBPATH environment variable.
func buildSearchPath(cfg *config.Config) []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	dirs = append(dirs, cfg.LibPath...)
	dirs = append(dirs, splitPathList(*libPath)...)
	dirs = append(dirs, splitPathList(os.Getenv(cmdcommon.EnvLibPath))...)
	return dirs
}

// splitPathList splits a ":"-separated directory list, dropping empty
// entries so a trailing or doubled separator is harmless.
func splitPathList(list string) []string {
	var dirs []string
	for _, dir := range strings.Split(list, ":") {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// writeReport renders the report in the configured format. Color applies to
// text output only and is decided by terminal capabilities unless forced.
func writeReport(rep *report.Report, cfg *config.Config) error {
	if cfg.Output == "json" {
		return rep.WriteJSON(os.Stdout)
	}
	capabilities := terminal.NewCapabilities(terminal.Options{
		ForceColor:   *forceColor,
		DisableColor: *noColor,
	})
	return rep.WriteText(os.Stdout, capabilities.SupportsColor())
}
