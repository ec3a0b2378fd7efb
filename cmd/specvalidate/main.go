// specvalidate - static validator for a domain-driven-design spec corpus.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/smilemakc/specvalidate/internal/autotest"
	"github.com/smilemakc/specvalidate/internal/config"
	"github.com/smilemakc/specvalidate/internal/logging"
	"github.com/smilemakc/specvalidate/pkg/models"
)

const (
	version = "1.0.0"
	usage   = `specvalidate - static validator for a DDD spec corpus

USAGE:
    specvalidate <project-path> [options]

OPTIONS:
    -strict        Include info-severity issues in the printed summary
    -no-reports    Skip writing the report documents to disk
    -log-level     Log level: debug, info, warn, error (default: info)
    -log-format    Log format: json, text (default: text)
    -version       Show version information
    -h, -help      Show this help message

ENVIRONMENT VARIABLES:
    SPECVALIDATE_PROJECT_PATH             Project path (overridden by the positional argument)
    SPECVALIDATE_LOG_LEVEL                Log level (overridden by -log-level)
    SPECVALIDATE_LOG_FORMAT               Log format (overridden by -log-format)
    SPECVALIDATE_MIN_FLOWS_FOR_COVERAGE    Minimum flows before coverage percent is computed (default: 5)
    SPECVALIDATE_WRITE_REPORTS            Whether to write reports to disk (default: true)
    SPECVALIDATE_REPORT_DIR               Directory reports are written to (default: project path)

Exit code is 0 on a successful run and 1 only for invalid arguments or a
missing project path. Validation findings are reported in the output
documents and never affect the exit code.
`
)

func main() {
	fs := flag.NewFlagSet("specvalidate", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	strict := fs.Bool("strict", false, "include info-severity issues in the printed summary")
	noReports := fs.Bool("no-reports", false, "skip writing report documents to disk")
	logLevel := fs.String("log-level", "", "log level override")
	logFormat := fs.String("log-format", "", "log format override")
	showVersion := fs.Bool("version", false, "show version information")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if *showVersion {
		fmt.Printf("specvalidate v%s\n", version)
		return
	}

	args := fs.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: missing required <project-path> argument")
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	projectPath := args[0]

	// Options may also follow the positional argument.
	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.ProjectPath = projectPath
	if os.Getenv("SPECVALIDATE_REPORT_DIR") == "" {
		cfg.ReportDir = projectPath
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}
	if *noReports {
		cfg.WriteReports = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging)

	compat, quality, err := autotest.Run(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(compat, quality, *strict)
}

func printSummary(compat *autotest.CompatibilityReport, quality *autotest.QualityReport, strict bool) {
	fmt.Printf("Compatibility: %s (%d/%d files parsed, %d/%d flows normalized)\n",
		compat.CompatibilityVerdict,
		compat.Summary.Parse.Success, compat.Summary.TotalFiles,
		compat.Summary.Normalize.Success, compat.Summary.Normalize.TotalFlows)

	fmt.Printf("Quality: %d/100 (%s) — %d error(s), %d warning(s)",
		quality.Summary.QualityScore, quality.QualityVerdict,
		quality.Summary.Errors, quality.Summary.Warnings)
	if strict {
		fmt.Printf(", %d info notice(s)", quality.Summary.Info)
	}
	fmt.Println()

	for _, r := range quality.FlowValidation {
		printResult("flow", r, strict)
	}
	for _, r := range quality.DomainValidation {
		printResult("domain", r, strict)
	}
	if quality.SystemValidation != nil {
		printResult("system", quality.SystemValidation, strict)
	}
}

func printResult(scope string, r *autotest.ReportResult, strict bool) {
	for _, issue := range r.Issues {
		if issue.Severity == models.SeverityInfo && !strict {
			continue
		}
		fmt.Printf("  [%s][%s] %s: %s\n", scope, issue.Severity, r.TargetID, issue.Message)
	}
}
