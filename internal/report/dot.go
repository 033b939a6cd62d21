// Package report renders a completed model.ProjectStructure to the export
// formats a host process writes to disk: Graphviz DOT, Mermaid flowchart,
// and plain JSON. Grounded on the teacher's internal/output package
// (dot.go/mermaid.go's cycle-highlighting and node-categorization idiom),
// generalized from the teacher's module graph to layermap's file-level
// project/external/missing/database node kinds.
package report

import (
	"fmt"
	"sort"
	"strings"

	"layermap/internal/graphanalyze"
	"layermap/internal/model"
)

// GenerateDOT renders proj as a Graphviz digraph, clustering project files
// separately from external/missing/database marker nodes and highlighting
// edges that participate in a detected cycle.
func GenerateDOT(proj model.ProjectStructure) string {
	var buf strings.Builder

	cycleEdges := cycleEdgeSet(proj.Cycles)
	cycleNodes := cycleNodeSet(proj.Cycles)

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.5;\n\n")

	projectNodes, markerNodes := partitionNodes(proj)

	buf.WriteString("  subgraph cluster_project {\n")
	buf.WriteString("    label=\"Project Files\";\n")
	buf.WriteString("    style=filled;\n")
	buf.WriteString("    color=\"whitesmoke\";\n")
	buf.WriteString("    node [fillcolor=\"white\", style=\"rounded,filled\"];\n")
	for _, path := range projectNodes {
		if cycleNodes[path] {
			fmt.Fprintf(&buf, "    %q [fillcolor=\"mistyrose\", color=\"red\", penwidth=2.0];\n", path)
		} else {
			fmt.Fprintf(&buf, "    %q [color=\"darkslategrey\"];\n", path)
		}
	}
	buf.WriteString("  }\n\n")

	buf.WriteString("  // External, missing, and database markers\n")
	buf.WriteString("  node [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n")
	for _, m := range markerNodes {
		fmt.Fprintf(&buf, "  %q;\n", m)
	}
	buf.WriteString("\n")

	for _, d := range proj.Dependencies {
		key := d.From + "\x00" + d.To
		switch {
		case cycleEdges[key]:
			fmt.Fprintf(&buf, "  %q -> %q [color=\"red\", penwidth=3.0, label=\"cycle\"];\n", d.From, d.To)
		case graphanalyze.ClassifyNode(d.To) == graphanalyze.NodeKindProject:
			fmt.Fprintf(&buf, "  %q -> %q [color=\"forestgreen\", penwidth=1.6];\n", d.From, d.To)
		default:
			fmt.Fprintf(&buf, "  %q -> %q [color=\"grey\", style=dashed];\n", d.From, d.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func partitionNodes(proj model.ProjectStructure) (projectNodes, markerNodes []string) {
	seen := make(map[string]bool, len(proj.Files)+len(proj.Dependencies)*2)
	for _, f := range proj.Files {
		if f.IsDirectory || seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		projectNodes = append(projectNodes, f.Path)
	}

	markerSeen := make(map[string]bool)
	for _, d := range proj.Dependencies {
		if graphanalyze.ClassifyNode(d.To) != graphanalyze.NodeKindProject && !markerSeen[d.To] {
			markerSeen[d.To] = true
			markerNodes = append(markerNodes, d.To)
		}
	}

	sort.Strings(projectNodes)
	sort.Strings(markerNodes)
	return projectNodes, markerNodes
}

func cycleEdgeSet(cycles []model.Cycle) map[string]bool {
	edges := make(map[string]bool)
	for _, c := range cycles {
		for i := 0; i < len(c.Nodes); i++ {
			from := c.Nodes[i]
			to := c.Nodes[(i+1)%len(c.Nodes)]
			edges[from+"\x00"+to] = true
		}
	}
	return edges
}

func cycleNodeSet(cycles []model.Cycle) map[string]bool {
	nodes := make(map[string]bool)
	for _, c := range cycles {
		for _, n := range c.Nodes {
			nodes[n] = true
		}
	}
	return nodes
}
