// Command layermap scans a polyglot workspace, extracts lexical
// dependencies, assigns architectural layers, and reports cycles and
// coupling. Grounded on the teacher's cmd/circular/main.go flag and
// logging setup, generalized from circular's tree-sitter-backed resolver
// to the facade in internal/analyzer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"layermap/internal/analyzer"
	"layermap/internal/config"
	"layermap/internal/hostadapter"
	"layermap/internal/history"
	"layermap/internal/model"
	"layermap/internal/report"
	"layermap/internal/watcher"
)

const version = "1.0.0"

var (
	configPath = flag.String("config", "./layermap.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run a single analysis pass and exit")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	watchMode  = flag.Bool("watch", false, "Re-run analysis on file-system changes")
	verboseLog = flag.Bool("verbose", false, "Enable verbose logging")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("layermap v%s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verboseLog {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if fi, err := os.Lstat(logPath); err == nil && fi.Mode()&os.ModeSymlink != 0 {
			fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
			if err == nil {
				output = f
			} else {
				fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", *configPath, "error", err)
		cfg = config.Default()
	}

	rootPath := "."
	if flag.NArg() > 0 {
		rootPath = flag.Arg(0)
	}
	absRoot, err := filepath.Abs(rootPath)
	if err == nil {
		rootPath = absRoot
	}

	a := analyzer.New(cfg.AnalyzerConfig())

	var program *tea.Program
	host := hostadapter.Adapter(slogAdapter{})
	if *ui {
		m := newUIModel()
		program = tea.NewProgram(m, tea.WithAltScreen())
		host = uiAdapter{program: program}
	}

	runOnce := func() model.ProjectStructure {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		proj, err := a.Analyze(ctx, rootPath, host)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Warn("analysis canceled")
			} else {
				slog.Error("analysis failed", "error", err)
			}
			return proj
		}

		if err := writeOutputs(cfg, proj); err != nil {
			slog.Error("failed to write report outputs", "error", err)
		}
		if cfg.History.Enabled {
			if err := saveRunHistory(cfg.History.Path, rootPath, proj); err != nil {
				slog.Error("failed to save run history", "error", err)
			}
		}

		if program != nil {
			program.Send(updateMsg{proj: proj})
		} else {
			printSummary(proj)
		}
		return proj
	}

	runOnce()

	if *once {
		os.Exit(0)
	}

	if *watchMode {
		w, err := watcher.NewWatcher(cfg.Watch.Debounce, nil, nil, func([]string) { runOnce() })
		if err != nil {
			slog.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		defer w.Close()
		if err := w.Watch([]string{rootPath}); err != nil {
			slog.Error("failed to watch root path", "error", err)
			os.Exit(1)
		}
	}

	if program != nil {
		if _, err := program.Run(); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
		return
	}

	if *watchMode {
		select {}
	}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "layermap", "layermap.log")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "layermap", "layermap.log")
	}
	return "layermap.log"
}

func writeOutputs(cfg *config.Config, proj model.ProjectStructure) error {
	if cfg.Output.JSON != "" {
		raw, err := report.GenerateJSON(proj)
		if err != nil {
			return fmt.Errorf("generate json report: %w", err)
		}
		if err := os.WriteFile(cfg.Output.JSON, raw, 0o644); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
	}
	if cfg.Output.DOT != "" {
		if err := os.WriteFile(cfg.Output.DOT, []byte(report.GenerateDOT(proj)), 0o644); err != nil {
			return fmt.Errorf("write dot report: %w", err)
		}
	}
	if cfg.Output.Mermaid != "" {
		if err := os.WriteFile(cfg.Output.Mermaid, []byte(report.GenerateMermaid(proj)), 0o644); err != nil {
			return fmt.Errorf("write mermaid report: %w", err)
		}
	}
	return nil
}

func saveRunHistory(path, rootPath string, proj model.ProjectStructure) error {
	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	commitHash, commitTime := history.ResolveGitMetadata(rootPath)

	externalCount, missingCount, databaseCount := 0, 0, 0
	for _, d := range proj.Dependencies {
		switch {
		case strings.HasPrefix(d.To, "[External] "):
			externalCount++
		case strings.HasPrefix(d.To, "[Missing] "):
			missingCount++
		case d.Kind == model.KindDatabase:
			databaseCount++
		}
	}

	return store.SaveRun(history.Run{
		RunID:           proj.RunID,
		RootPath:        rootPath,
		StartedAt:       proj.StartedAt,
		Duration:        proj.Duration,
		CommitHash:      commitHash,
		CommitTimestamp: commitTime,
		FileCount:       proj.Stats.TotalFiles,
		DependencyCount: proj.Stats.TotalDependencies,
		CycleCount:      proj.Stats.CycleCount,
		ExternalCount:   externalCount,
		MissingCount:    missingCount,
		DatabaseCount:   databaseCount,
		AverageCoupling: proj.Stats.AverageCoupling,
	})
}

func printSummary(proj model.ProjectStructure) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Run %s: %d files, %d dependencies in %v\n", proj.RunID, proj.Stats.TotalFiles, proj.Stats.TotalDependencies, proj.Duration)

	if len(proj.Cycles) > 0 {
		fmt.Printf("found %d import cycles:\n", len(proj.Cycles))
		for _, c := range proj.Cycles {
			fmt.Printf("   %s\n", strings.Join(c.Nodes, " -> "))
		}
	} else {
		fmt.Println("no import cycles found")
	}

	missing := 0
	external := 0
	for _, d := range proj.Dependencies {
		switch {
		case strings.HasPrefix(d.To, "[Missing] "):
			missing++
		case strings.HasPrefix(d.To, "[External] "):
			external++
		}
	}
	fmt.Printf("%d external packages referenced, %d unresolved imports\n", external, missing)
	fmt.Printf("average coupling: %.2f\n", proj.Stats.AverageCoupling)
	fmt.Println(strings.Repeat("-", 40))
}
