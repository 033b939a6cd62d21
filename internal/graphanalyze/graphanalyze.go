// Package graphanalyze computes the derived graph properties of a
// completed dependency extraction pass: reference counts and usage
// reachability, cycle enumeration, an approximate critical path, and
// fan-in/fan-out coupling. The DFS walk is grounded on the teacher's
// internal/engine/graph/detect.go (findCycles/onStack bookkeeping); the
// fan-in/fan-out weighting is grounded on importance.go's
// CalculateImportanceScore idiom.
package graphanalyze

import (
	"sort"
	"strings"

	"layermap/internal/model"
)

// NodeKind is the tagged union every dependency target falls into. Cycle
// detection and the critical-path approximation restrict themselves to
// NodeKindProject nodes: external packages, unresolved imports, and
// database markers can never participate in an import cycle.
type NodeKind string

const (
	NodeKindProject  NodeKind = "project"
	NodeKindExternal NodeKind = "external"
	NodeKindMissing  NodeKind = "missing"
	NodeKindDatabase NodeKind = "database"
)

// ClassifyNode inspects a dependency target and returns its NodeKind.
func ClassifyNode(path string) NodeKind {
	switch {
	case strings.HasPrefix(path, "[External] "):
		return NodeKindExternal
	case strings.HasPrefix(path, "[Missing] "):
		return NodeKindMissing
	case strings.HasPrefix(path, "[DB:"):
		return NodeKindDatabase
	default:
		return NodeKindProject
	}
}

// Cycle is one detected import cycle, in the order discovered by the walk.
// Key is the canonical, rotation-independent identity of the cycle: its
// node set, sorted and joined with "-". Two cycles that differ only by
// which node the walk happened to start from share a Key and are reported
// once.
type Cycle struct {
	Nodes []string
	Key   string
}

// Result is everything GraphAnalyzer derives from a completed dependency list.
type Result struct {
	ReferenceCount map[string]int
	IsUsed         map[string]bool
	FanIn          map[string]int
	FanOut         map[string]int
	Coupling       map[string]int
	Cycles         []Cycle
	CriticalPath   []string
}

// Analyze derives Result from deps. allProjectFiles seeds IsUsed with false
// for every project file so that unreferenced files are reported as unused
// rather than simply absent from the map.
func Analyze(deps []model.Dependency, allProjectFiles []string) Result {
	res := Result{
		ReferenceCount: make(map[string]int),
		IsUsed:         make(map[string]bool, len(allProjectFiles)),
		FanIn:          make(map[string]int),
		FanOut:         make(map[string]int),
		Coupling:       make(map[string]int),
	}
	for _, f := range allProjectFiles {
		res.IsUsed[f] = false
	}

	adjacency := make(map[string][]string)
	projectNodes := make(map[string]bool)
	allNodes := make(map[string]bool, len(allProjectFiles))
	for _, f := range allProjectFiles {
		allNodes[f] = true
	}

	for _, d := range deps {
		res.ReferenceCount[d.To]++
		res.FanOut[d.From]++
		res.FanIn[d.To]++
		projectNodes[d.From] = true
		allNodes[d.From] = true
		allNodes[d.To] = true

		// From is always a real project file: it appears in sources, so
		// it is used regardless of what kind of node To turns out to be.
		res.IsUsed[d.From] = true

		if ClassifyNode(d.To) == NodeKindProject {
			res.IsUsed[d.To] = true
			projectNodes[d.To] = true
			adjacency[d.From] = append(adjacency[d.From], d.To)
		}
	}

	// coupling is outgoing-edge count per node (spec §4.8: coupling = Σ
	// outgoing); N is every node that appears, including files with no
	// edges at all, so averageCoupling = |E| / |N| over the full node set.
	for node := range allNodes {
		res.Coupling[node] = res.FanOut[node]
	}

	dedupeAdjacency(adjacency)

	res.Cycles = detectCycles(adjacency, projectNodes)
	res.CriticalPath = criticalPath(adjacency, projectNodes)

	return res
}

func dedupeAdjacency(adjacency map[string][]string) {
	for node, targets := range adjacency {
		seen := make(map[string]bool, len(targets))
		out := make([]string, 0, len(targets))
		for _, t := range targets {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
		sort.Strings(out)
		adjacency[node] = out
	}
}

// detectCycles runs a DFS from every project node, tracking the current
// path and an on-stack set. Whenever it reaches a node already on the
// stack, the slice of the path from that node forward is a cycle. Cycles
// are canonicalized by sorted-node-set key and deduplicated, unlike the
// teacher's detector which reports every rotation encountered.
func detectCycles(adjacency map[string][]string, nodeSet map[string]bool) []Cycle {
	nodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	seenKeys := make(map[string]bool)
	var cycles []Cycle

	var walk func(curr string, path []string)
	walk = func(curr string, path []string) {
		visited[curr] = true
		onStack[curr] = true
		path = append(path, curr)

		for _, next := range adjacency[curr] {
			if onStack[next] {
				start := -1
				for i, n := range path {
					if n == next {
						start = i
						break
					}
				}
				if start != -1 {
					cycleNodes := append([]string(nil), path[start:]...)
					key := canonicalCycleKey(cycleNodes)
					if !seenKeys[key] {
						seenKeys[key] = true
						cycles = append(cycles, Cycle{Nodes: cycleNodes, Key: key})
					}
				}
			} else if !visited[next] {
				walk(next, path)
			}
		}

		onStack[curr] = false
	}

	for _, n := range nodes {
		if !visited[n] {
			walk(n, nil)
		}
	}
	return cycles
}

func canonicalCycleKey(nodes []string) string {
	unique := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		unique[n] = true
	}
	sorted := make([]string, 0, len(unique))
	for n := range unique {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, "-")
}

// criticalPath approximates the longest simple path through the project
// subgraph by running a path-local-visited DFS from every node and keeping
// the longest path found. This is a deliberate approximation of the
// NP-hard longest-simple-path problem, not a guarantee of optimality.
func criticalPath(adjacency map[string][]string, nodeSet map[string]bool) []string {
	nodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	var longest []string
	var walk func(curr string, path []string, visited map[string]bool)
	walk = func(curr string, path []string, visited map[string]bool) {
		path = append(path, curr)
		if len(path) > len(longest) {
			longest = append([]string(nil), path...)
		}
		visited[curr] = true
		for _, next := range adjacency[curr] {
			if !visited[next] {
				nextVisited := make(map[string]bool, len(visited)+1)
				for k := range visited {
					nextVisited[k] = true
				}
				walk(next, path, nextVisited)
			}
		}
	}

	for _, n := range nodes {
		walk(n, nil, make(map[string]bool))
	}
	return longest
}
