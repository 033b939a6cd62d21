// Package analyzer is the facade orchestrating one end-to-end workspace
// analysis run: scan, extract, assign layers, derive graph properties, and
// produce a finished model.ProjectStructure. It is grounded on the
// teacher's internal/core/app orchestration (analyzer.go/scanner.go/
// write_worker.go's batched-goroutine idiom) generalized from an
// incremental file-watch loop to a single batched fan-out pass.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"layermap/internal/coreerrors"
	"layermap/internal/extract"
	"layermap/internal/graphanalyze"
	"layermap/internal/hostadapter"
	"layermap/internal/layer"
	"layermap/internal/model"
	"layermap/internal/observability"
	"layermap/internal/scan"
	"layermap/internal/util"
)

// DefaultExtractBatchSize bounds how many files are read and extracted
// concurrently in one fan-out batch, mirroring scan's directory batching
// but sized wider since file extraction is less I/O-heavy per unit.
const DefaultExtractBatchSize = 20

// DefaultMemoryWarnMB is the heap threshold past which Analyze logs a
// memory warning and notifies the host adapter, without aborting the run.
const DefaultMemoryWarnMB = 500

// Config configures one Analyzer instance.
type Config struct {
	IgnoreDirs         map[string]bool
	ScanBatchSize      int
	ExtractBatchSize   int
	MemoryWarnMB       uint64
	ExtraLayerPatterns map[model.Layer][]string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Analyzer runs Analyze over a workspace root using a fixed configuration.
type Analyzer struct {
	scanOpts     scan.Options
	layers       *layer.Assigner
	batchSize    int
	memoryWarnMB uint64
	limiter      *util.Limiter
}

// New builds an Analyzer from cfg, filling in defaults for zero fields.
func New(cfg Config) *Analyzer {
	opts := scan.Options{
		IgnoreDirs: cfg.IgnoreDirs,
		BatchSize:  cfg.ScanBatchSize,
	}
	if opts.IgnoreDirs == nil {
		opts.IgnoreDirs = scan.DefaultIgnoreDirs
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = scan.DefaultBatchSize
	}

	batchSize := cfg.ExtractBatchSize
	if batchSize <= 0 {
		batchSize = DefaultExtractBatchSize
	}

	memoryWarnMB := cfg.MemoryWarnMB
	if memoryWarnMB == 0 {
		memoryWarnMB = DefaultMemoryWarnMB
	}

	var limiter *util.Limiter
	if cfg.RateLimitPerSecond > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = util.NewLimiter(cfg.RateLimitPerSecond, burst)
	}

	return &Analyzer{
		scanOpts:     opts,
		layers:       layer.New(cfg.ExtraLayerPatterns),
		batchSize:    batchSize,
		memoryWarnMB: memoryWarnMB,
		limiter:      limiter,
	}
}

// Analyze runs one full scan+extract+analyze pass rooted at rootPath,
// reporting progress through host as it goes. host may be
// hostadapter.Noop{} when the caller has nothing to report to.
func (a *Analyzer) Analyze(ctx context.Context, rootPath string, host hostadapter.Adapter) (model.ProjectStructure, error) {
	if host == nil {
		host = hostadapter.Noop{}
	}
	startedAt := time.Now()
	runID := uuid.New().String()

	host.Progress(hostadapter.StageScanStart, "scanning "+rootPath, nil)
	scanCtx, endScan := observability.StartPhase(ctx, "scan")
	scanResult, err := scan.Scan(scanCtx, rootPath, a.scanOpts)
	endScan()
	if err != nil {
		host.Error("scan", rootPath, err)
		return model.Empty(rootPath), err
	}
	if err := ctx.Err(); err != nil {
		return model.Empty(rootPath), err
	}
	observability.FilesScannedTotal.Add(float64(len(scanResult.Files)))
	host.Progress(hostadapter.StageScanDone, fmt.Sprintf("scanned %d files", len(scanResult.Files)), hostadapter.Percent(100))

	idx := extract.NewIndex(scanResult.AllFiles)

	host.Progress(hostadapter.StageDepsStart, "extracting dependencies", nil)
	extractCtx, endExtract := observability.StartPhase(ctx, "extract")
	deps := a.extractAll(extractCtx, scanResult.Files, idx, host)
	endExtract()

	paths := make([]string, 0, len(scanResult.Files))
	for _, f := range scanResult.Files {
		paths = append(paths, f.Path)
	}

	result := graphanalyze.Analyze(deps, paths)
	applyGraphResult(scanResult.Files, result)

	layers := a.layers.Assign(paths)
	observability.GraphNodes.Set(float64(len(paths)))
	observability.GraphEdges.Set(float64(len(deps)))
	host.Progress(hostadapter.StageDepsDone, fmt.Sprintf("found %d dependencies", len(deps)), hostadapter.Percent(100))

	stats := computeStats(scanResult, deps, result)

	host.Progress(hostadapter.StageDone, "analysis complete", hostadapter.Percent(100))

	cycles := make([]model.Cycle, 0, len(result.Cycles))
	for _, c := range result.Cycles {
		cycles = append(cycles, model.Cycle{Nodes: c.Nodes})
	}

	return model.ProjectStructure{
		RunID:        runID,
		RootPath:     rootPath,
		Files:        scanResult.Files,
		FileTree:     scanResult.Tree,
		Dependencies: deps,
		Layers:       layers,
		Stats:        stats,
		Cycles:       cycles,
		CriticalPath: result.CriticalPath,
		StartedAt:    startedAt,
		Duration:     time.Since(startedAt),
	}, nil
}

// extractAll reads and extracts every supported file in fixed-size
// goroutine batches, awaiting each batch before starting the next so peak
// concurrency never exceeds batchSize in flight. Grounded on the teacher's
// write_worker.go batch-then-await loop, generalized from a write queue to
// a read/extract fan-out.
func (a *Analyzer) extractAll(ctx context.Context, files []*model.FileNode, idx *extract.Index, host hostadapter.Adapter) []model.Dependency {
	var mu sync.Mutex
	var deps []model.Dependency

	for start := 0; start < len(files); start += a.batchSize {
		end := start + a.batchSize
		if end > len(files) {
			end = len(files)
		}
		batch := files[start:end]

		var wg sync.WaitGroup
		for _, f := range batch {
			wg.Add(1)
			go func(f *model.FileNode) {
				defer wg.Done()
				if a.limiter != nil {
					_ = a.limiter.Wait(ctx, 1)
				}
				fileDeps := a.extractOne(f, idx, host)
				if len(fileDeps) == 0 {
					return
				}
				mu.Lock()
				deps = append(deps, fileDeps...)
				mu.Unlock()
			}(f)
		}
		wg.Wait()

		if heap := util.HeapAllocMB(); heap > a.memoryWarnMB {
			observability.MemoryWarningsTotal.Inc()
			warnErr := coreerrors.New(coreerrors.KindMemoryWarning, fmt.Sprintf("heap usage %dMB exceeds warn threshold %dMB", heap, a.memoryWarnMB))
			slog.Warn("memory warning during extraction", "heap_mb", heap, "threshold_mb", a.memoryWarnMB)
			host.Error(string(coreerrors.KindMemoryWarning), "", warnErr)
		}
		observability.HeapAllocMB.Set(float64(util.HeapAllocMB()))
	}

	return deps
}

func (a *Analyzer) extractOne(f *model.FileNode, idx *extract.Index, host hostadapter.Adapter) []model.Dependency {
	content, err := os.ReadFile(f.FullPath)
	if err != nil {
		wrapped := coreerrors.Wrap(err, coreerrors.KindFileRead, "failed to read file").WithContext(coreerrors.CtxPath, f.Path)
		slog.Warn("failed to read file for extraction", "path", f.Path, "error", err)
		host.Error(string(coreerrors.KindFileRead), f.Path, wrapped)
		return nil
	}
	text := string(content)

	var deps []model.Dependency
	if extractor := extract.ForExtension(f.Extension); extractor != nil {
		deps = append(deps, extractor(f.Path, text, idx)...)
	}
	deps = append(deps, extract.ExtractDatabaseLinks(f.Path, text, idx)...)

	f.Comments = extract.ExtractComments(f.Extension, text)
	elements := extract.ExtractElements(f.Extension, text)
	f.Functions = elements.Functions
	f.Classes = elements.Classes
	f.Variables = elements.Variables

	return deps
}

func applyGraphResult(files []*model.FileNode, result graphanalyze.Result) {
	for _, f := range files {
		f.IsUsed = result.IsUsed[f.Path]
		f.ReferenceCount = result.ReferenceCount[f.Path]
	}
}

func computeStats(scanResult scan.Result, deps []model.Dependency, result graphanalyze.Result) model.ProjectStats {
	stats := model.ProjectStats{
		FilesByType: make(map[model.TypeTag]int),
	}

	var totalSize int64
	var totalDirs int
	countNodes(scanResult.Tree.Roots, &totalDirs)

	for _, f := range scanResult.Files {
		totalSize += f.Size
		stats.FilesByType[f.TypeTag]++
	}

	stats.TotalFiles = len(scanResult.Files)
	stats.TotalDirectories = totalDirs
	stats.TotalSize = totalSize
	stats.TotalDependencies = len(deps)
	if stats.TotalFiles > 0 {
		stats.AverageFileSize = float64(totalSize) / float64(stats.TotalFiles)
		stats.DependencyRatioPercent = float64(len(deps)) / float64(stats.TotalFiles) * 100
	}

	stats.CycleCount = len(result.Cycles)
	if len(result.Coupling) > 0 {
		var total int
		for _, c := range result.Coupling {
			total += c
		}
		stats.AverageCoupling = float64(total) / float64(len(result.Coupling))
	}
	return stats
}

func countNodes(nodes []*model.FileNode, dirs *int) {
	for _, n := range nodes {
		if n.IsDirectory {
			*dirs++
			countNodes(n.Children, dirs)
		}
	}
}
