// Package scan walks a workspace root and produces the classified
// model.FileTree plus its flattened, supported-extension-only file list.
// Traversal fans out in fixed-size batches so very large trees keep a
// bounded number of open file descriptors in flight — the same
// fixed-batch-await-before-next idiom the teacher's write worker
// (internal/core/app/write_worker.go) uses for persisting batches,
// adapted here to directory entries instead of write requests.
package scan

import (
	"context"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"layermap/internal/classify"
	"layermap/internal/coreerrors"
	"layermap/internal/model"
)

// DefaultBatchSize is the number of directory entries processed
// concurrently before the next batch starts, per spec section 4.3/5.
const DefaultBatchSize = 10

// DefaultIgnoreDirs is the authoritative ignore-directory set.
var DefaultIgnoreDirs = map[string]bool{
	"node_modules":   true,
	".git":           true,
	"dist":           true,
	"build":          true,
	"out":            true,
	".vscode":        true,
	".idea":          true,
	"__pycache__":    true,
	"venv":           true,
	".env":           true,
	"coverage":       true,
	".nyc_output":    true,
	".cache":         true,
	"tmp":            true,
	"temp":           true,
}

// DirFailureFunc is called when a subdirectory fails to read; the
// subtree it names contributes no children. nil is a valid no-op logger.
type DirFailureFunc func(fullPath string, err error)

// Options configures a Scan call.
type Options struct {
	IgnoreDirs map[string]bool
	BatchSize  int
	OnDirError DirFailureFunc
}

// Result is the output of a single Scan call.
type Result struct {
	Tree     model.FileTree
	Files    []*model.FileNode // flattened, supported-extension files only, in tree order
	AllFiles []*model.FileNode // every non-directory node, supported or not; used to resolve import targets
}

// Scan walks rootPath and returns its classified tree. A root-level read
// failure returns a *coreerrors.DomainError and a Result with an empty
// tree; per-directory failures below the root are swallowed (logged via
// opts.OnDirError) and simply yield an empty subtree.
func Scan(ctx context.Context, rootPath string, opts Options) (Result, error) {
	ignore := opts.IgnoreDirs
	if ignore == nil {
		ignore = DefaultIgnoreDirs
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return Result{Tree: model.FileTree{}}, coreerrors.Wrap(err, coreerrors.KindDirectoryRead, "failed to read root path").
			WithContext(coreerrors.CtxPath, rootPath).
			WithSuggestion("verify the workspace root exists and is readable")
	}

	w := &walker{ignore: ignore, batchSize: batchSize, onDirError: opts.OnDirError}
	roots := w.scanEntries(ctx, rootPath, "", entries)

	var files, allFiles []*model.FileNode
	flatten(roots, &files, &allFiles)

	return Result{Tree: model.FileTree{Roots: roots}, Files: files, AllFiles: allFiles}, nil
}

type walker struct {
	ignore     map[string]bool
	batchSize  int
	onDirError DirFailureFunc
}

// scanEntries classifies and recurses into a pre-listed set of directory
// entries, running batchSize entries at a time and awaiting each batch
// before starting the next.
func (w *walker) scanEntries(ctx context.Context, fullDir, relDir string, entries []os.DirEntry) []*model.FileNode {
	kept := make([]os.DirEntry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() && w.ignore[name] {
			continue
		}
		kept = append(kept, e)
	}

	nodes := make([]*model.FileNode, len(kept))
	for start := 0; start < len(kept); start += w.batchSize {
		end := start + w.batchSize
		if end > len(kept) {
			end = len(kept)
		}
		batch := kept[start:end]

		var wg sync.WaitGroup
		for i, e := range batch {
			idx := start + i
			entry := e
			wg.Add(1)
			go func() {
				defer wg.Done()
				select {
				case <-ctx.Done():
					return
				default:
				}
				nodes[idx] = w.scanOne(ctx, fullDir, relDir, entry)
			}()
		}
		wg.Wait()
	}

	out := nodes[:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}

	sortNodes(out)
	return out
}

func (w *walker) scanOne(ctx context.Context, fullDir, relDir string, entry os.DirEntry) *model.FileNode {
	name := entry.Name()
	fullPath := path.Join(fullDir, name)
	relPath := name
	if relDir != "" {
		relPath = relDir + "/" + name
	}

	info, err := entry.Info()
	if err != nil {
		if w.onDirError != nil {
			w.onDirError(fullPath, err)
		}
		return nil
	}

	if entry.IsDir() {
		childEntries, err := os.ReadDir(fullPath)
		if err != nil {
			if w.onDirError != nil {
				w.onDirError(fullPath, err)
			}
			return &model.FileNode{
				Path:        relPath,
				FullPath:    fullPath,
				Name:        name,
				IsDirectory: true,
				TypeTag:     model.TypeDirectory,
				Children:    []*model.FileNode{},
			}
		}
		children := w.scanEntries(ctx, fullPath, relPath, childEntries)
		return &model.FileNode{
			Path:        relPath,
			FullPath:    fullPath,
			Name:        name,
			IsDirectory: true,
			TypeTag:     model.TypeDirectory,
			Children:    children,
		}
	}

	ext := extensionOf(name)
	return &model.FileNode{
		Path:         relPath,
		FullPath:     fullPath,
		Name:         name,
		Extension:    ext,
		Size:         info.Size(),
		TypeTag:      classify.TypeTagFor(ext),
		LastModified: info.ModTime(),
	}
}

func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

// sortNodes orders a directory's children deterministically: directories
// first, then files, each group by case-insensitive name comparison (an
// approximation of locale-aware ordering that needs no extra dependency
// beyond the standard library).
func sortNodes(nodes []*model.FileNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDirectory != nodes[j].IsDirectory {
			return nodes[i].IsDirectory
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}

func flatten(nodes []*model.FileNode, supported, all *[]*model.FileNode) {
	for _, n := range nodes {
		if n.IsDirectory {
			flatten(n.Children, supported, all)
			continue
		}
		*all = append(*all, n)
		if classify.IsSupported(n.Extension) {
			*supported = append(*supported, n)
		}
	}
}
