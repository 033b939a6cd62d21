package report

import (
	"fmt"
	"strings"
	"unicode"

	"layermap/internal/graphanalyze"
	"layermap/internal/model"
)

const externalAggregateNodeID = "external_aggregate"

// GenerateMermaid renders proj as a Mermaid flowchart. External packages
// collapse into one aggregate node past aggregateThreshold distinct targets
// so a large workspace doesn't produce an unreadable diagram; missing
// imports and database markers are always rendered individually since they
// flag something worth a reader's attention.
func GenerateMermaid(proj model.ProjectStructure) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	cycleNodes := cycleNodeSet(proj.Cycles)
	ids := make(map[string]string)

	projectNodes, markerNodes := partitionNodes(proj)
	for _, path := range projectNodes {
		ids[path] = internalID(path, ids)
	}

	externalCount := 0
	for _, m := range markerNodes {
		if graphanalyze.ClassifyNode(m) == graphanalyze.NodeKindExternal {
			externalCount++
		}
	}
	aggregateExternal := externalCount > aggregateThreshold

	if len(projectNodes) > 0 {
		b.WriteString("  subgraph project[\"Project\"]\n")
		for _, path := range projectNodes {
			label := escapeMermaidLabel(path)
			if cycleNodes[path] {
				fmt.Fprintf(&b, "    %s[\"%s\"]:::cycle\n", ids[path], label)
			} else {
				fmt.Fprintf(&b, "    %s[\"%s\"]\n", ids[path], label)
			}
		}
		b.WriteString("  end\n")
	}

	if aggregateExternal {
		fmt.Fprintf(&b, "  %s([\"%d external packages\"]):::external\n", externalAggregateNodeID, externalCount)
	}
	for _, m := range markerNodes {
		kind := graphanalyze.ClassifyNode(m)
		if kind == graphanalyze.NodeKindExternal && aggregateExternal {
			continue
		}
		ids[m] = internalID(m, ids)
		class := "external"
		if kind == graphanalyze.NodeKindMissing {
			class = "missing"
		} else if kind == graphanalyze.NodeKindDatabase {
			class = "database"
		}
		fmt.Fprintf(&b, "  %s([\"%s\"]):::%s\n", ids[m], escapeMermaidLabel(m), class)
	}

	cycleEdges := cycleEdgeSet(proj.Cycles)
	for _, d := range proj.Dependencies {
		fromID, ok := ids[d.From]
		if !ok {
			continue
		}
		toID := ids[d.To]
		if graphanalyze.ClassifyNode(d.To) == graphanalyze.NodeKindExternal && aggregateExternal {
			toID = externalAggregateNodeID
		}
		if toID == "" {
			continue
		}
		if cycleEdges[d.From+"\x00"+d.To] {
			fmt.Fprintf(&b, "  %s ==>|cycle| %s\n", fromID, toID)
		} else {
			fmt.Fprintf(&b, "  %s --> %s\n", fromID, toID)
		}
	}

	b.WriteString("  classDef cycle fill:#fdd,stroke:#c00,stroke-width:2px\n")
	b.WriteString("  classDef external fill:#eee,stroke:#999\n")
	b.WriteString("  classDef missing fill:#fee,stroke:#e90\n")
	b.WriteString("  classDef database fill:#eef,stroke:#669\n")

	return b.String()
}

const aggregateThreshold = 10

func internalID(name string, used map[string]string) string {
	base := sanitizeMermaidID(name)
	candidate := base
	n := 1
	for {
		taken := false
		for k, v := range used {
			if v == candidate && k != name {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
		n++
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

func sanitizeMermaidID(s string) string {
	if s == "" {
		return "n"
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if out == "" {
		return "n"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "n_" + out
	}
	return out
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
