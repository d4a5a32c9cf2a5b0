// Command errorcode-checker lints coded error declarations: every
// errors.MustNewCode literal must be a valid code, unique across the tree and
// referenced somewhere, and library code must not build ad-hoc errors with
// the forbidden calls.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	var (
		dir        = flag.String("dir", ".", "Directory to check")
		configPath = flag.String("config", "", "Path to a YAML configuration file")
	)
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	os.Exit(run(os.Stdout, *dir, config))
}

func run(out io.Writer, dir string, config *Config) int {
	checker := NewChecker(config)
	if err := checker.CheckDirectory(dir); err != nil {
		fmt.Fprintf(out, "check failed: %v\n", err)
		return 2
	}

	report := checker.Report()
	fmt.Fprintf(out, "%d error codes declared\n", len(report.Codes))

	section(out, "Invalid codes", report.Invalid)
	section(out, "Duplicate codes", report.Duplicates)
	section(out, "Forbidden calls", report.Forbidden)

	if len(report.Unused) > 0 {
		fmt.Fprintln(out, "Unused codes:")
		for _, code := range report.Unused {
			fmt.Fprintf(out, "  %s:%d: %s (%s)\n", code.File, code.Line, code.Var, code.Value)
		}
	}

	if report.Failed(config) {
		return 1
	}
	return 0
}

func section(out io.Writer, title string, findings []Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintln(out, title+":")
	for _, f := range findings {
		fmt.Fprintln(out, "  "+f.String())
	}
}
