package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"wt-battle-report/internal/gateway"
	"wt-battle-report/internal/usecase"
)

// Config supplies defaults for the command-line flags from a YAML file.
type Config struct {
	ReportsDir   string `yaml:"reports_dir"`
	DatabasePath string `yaml:"database_path"`
	XLSXPath     string `yaml:"xlsx_path"`
	Summary      bool   `yaml:"summary"`
}

// options holds the resolved command-line settings after config defaults
// have been applied.
type options struct {
	ReportsDir   string
	DatabasePath string
	XLSXPath     string
	Summary      bool
}

// applyConfigDefaults fills in options the user left unset from the config
// file. Explicit flag values always win over config values.
func applyConfigDefaults(opts options, cfg Config) options {
	if opts.ReportsDir == "" {
		opts.ReportsDir = cfg.ReportsDir
	}
	if opts.DatabasePath == "" {
		opts.DatabasePath = cfg.DatabasePath
	}
	if opts.XLSXPath == "" {
		opts.XLSXPath = cfg.XLSXPath
	}
	if !opts.Summary {
		opts.Summary = cfg.Summary
	}
	return opts
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	// Define command-line flags
	reportFile := flag.String("report", "", "Path to a single battle report file")
	reportsDir := flag.String("reports", "", "Path to a directory of battle report files")
	configPath := flag.String("config", "", "Path to a YAML config supplying flag defaults")
	summary := flag.Bool("summary", false, "Print aggregated statistics instead of the reports")
	xlsxPath := flag.String("xlsx", "", "Also export the statistics summary to this xlsx file")
	dbPath := flag.String("db", "", "Also persist every parsed report to this SQLite database")
	flag.Parse()

	opts := options{
		ReportsDir:   *reportsDir,
		DatabasePath: *dbPath,
		XLSXPath:     *xlsxPath,
		Summary:      *summary,
	}
	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		opts = applyConfigDefaults(opts, cfg)
	}

	if *reportFile == "" && opts.ReportsDir == "" {
		fmt.Println("Error: either -report or -reports is required.")
		flag.Usage()
		os.Exit(1)
	}

	// --- Dependency Injection (Wiring the application) ---
	repo := gateway.NewFileReportRepository()
	statistics := usecase.NewStatisticsUseCase(repo)

	ctx := context.Background()

	if *reportFile != "" {
		report, err := repo.GetReport(ctx, *reportFile)
		if err != nil {
			log.Fatalf("Parsing failed: %v", err)
		}
		printJSON(report)
		return
	}

	reports, err := repo.GetReports(ctx, opts.ReportsDir)
	if err != nil {
		log.Fatalf("Reading reports failed: %v", err)
	}

	if opts.DatabasePath != "" {
		store, err := gateway.OpenReportStore(opts.DatabasePath)
		if err != nil {
			log.Fatalf("Opening database failed: %v", err)
		}
		defer store.Close()
		for i := range reports {
			if _, err := store.SaveReport(ctx, &reports[i]); err != nil {
				log.Fatalf("Storing report %s failed: %v", reports[i].SessionID, err)
			}
		}
	}

	if opts.Summary || opts.XLSXPath != "" {
		sessionSummary, err := statistics.Summarize(ctx, opts.ReportsDir)
		if err != nil {
			log.Fatalf("Summarizing failed: %v", err)
		}
		if opts.XLSXPath != "" {
			if err := gateway.ExportSummaryXLSX(opts.XLSXPath, sessionSummary); err != nil {
				log.Fatalf("Exporting summary failed: %v", err)
			}
		}
		if opts.Summary {
			printJSON(sessionSummary)
			return
		}
	}

	printJSON(reports)
}

func printJSON(v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON output: %v", err)
	}
	fmt.Println(string(output))
}
