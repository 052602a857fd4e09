package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/VivekMadav/construction-ai/internal/conf"
	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("drawing-analyzer %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	configPath := flag.String("config", "", "path to config.yaml (optional)")
	discipline := flag.String("discipline", "", "force a discipline for every drawing (architectural, structural, civil, mep)")
	withCost := flag.Bool("cost", false, "include a project cost estimate")
	withCarbon := flag.Bool("carbon", false, "include a project carbon assessment")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	settings, err := conf.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drawing-analyzer: %v\n", err)
		os.Exit(1)
	}

	// Results go to stdout, logs to stderr.
	logger := conf.NewLogger(settings, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drawings := make([]pipeline.Drawing, 0, flag.NArg())
	for i, path := range flag.Args() {
		name := filepath.Base(path)
		drawings = append(drawings, pipeline.Drawing{
			ID:         fmt.Sprintf("drawing_%03d", i+1),
			Path:       path,
			FileName:   name,
			Discipline: detection.Discipline(strings.ToLower(*discipline)),
		})
	}

	analyzer := pipeline.New(settings, logger)
	project, err := analyzer.AnalyzeProject(ctx, drawings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drawing-analyzer: %v\n", err)
		os.Exit(1)
	}

	output := struct {
		*pipeline.ProjectResult
		Cost   any `json:"cost_estimate,omitempty"`
		Carbon any `json:"carbon_assessment,omitempty"`
	}{ProjectResult: project}

	if *withCost {
		output.Cost = analyzer.EstimateCost(project)
	}
	if *withCarbon {
		output.Carbon = analyzer.AssessCarbon(project)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "drawing-analyzer: encoding results: %v\n", err)
		os.Exit(1)
	}

	if len(project.Failed) > 0 {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "drawing-analyzer - construction drawing analysis pipeline")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: drawing-analyzer [options] page.png [page2.png ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Results are written to stdout as JSON; logs go to stderr.")
}
