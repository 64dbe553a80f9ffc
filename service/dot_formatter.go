package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/version"
)

// DOTFormatterConfig configures the DOT formatter behavior.
type DOTFormatterConfig struct {
	ShowLegend bool
	RankDir    string
}

// DefaultDOTFormatterConfig returns a DOTFormatterConfig with sensible defaults.
func DefaultDOTFormatterConfig() *DOTFormatterConfig {
	return &DOTFormatterConfig{
		ShowLegend: true,
		RankDir:    "TB",
	}
}

// DOTFormatter formats dependency graphs as DOT for Graphviz.
type DOTFormatter struct {
	config *DOTFormatterConfig
}

// NewDOTFormatter creates a new DOT formatter with the given configuration.
func NewDOTFormatter(config *DOTFormatterConfig) *DOTFormatter {
	if config == nil {
		config = DefaultDOTFormatterConfig()
	}
	return &DOTFormatter{config: config}
}

var nodeColors = struct {
	entry, leaf, external, normal struct{ fill, border string }
}{
	entry:    struct{ fill, border string }{"#90EE90", "#228B22"},
	leaf:     struct{ fill, border string }{"#FFD700", "#FFA500"},
	external: struct{ fill, border string }{"#D3D3D3", "#808080"},
	normal:   struct{ fill, border string }{"#ADD8E6", "#4682B4"},
}

var edgeStyles = map[domain.DependencyEdgeType]struct{ style, arrow string }{
	domain.EdgeTypeImport:   {style: "solid", arrow: "normal"},
	domain.EdgeTypeDynamic:  {style: "dashed", arrow: "empty"},
	domain.EdgeTypeReExport: {style: "bold", arrow: "diamond"},
}

var validRankDirs = map[string]bool{"TB": true, "LR": true, "BT": true, "RL": true}

// FormatDependencyGraph formats a dependency graph as DOT and returns the string.
func (f *DOTFormatter) FormatDependencyGraph(response *domain.DependencyGraphResponse) (string, error) {
	var sb strings.Builder
	if err := f.WriteDependencyGraph(response, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteDependencyGraph writes a dependency graph as DOT to the writer.
func (f *DOTFormatter) WriteDependencyGraph(response *domain.DependencyGraphResponse, writer io.Writer) error {
	if response == nil || response.Graph == nil {
		return domain.NewOutputError("nil response or graph", nil)
	}
	if !validRankDirs[f.config.RankDir] {
		return domain.NewOutputError(fmt.Sprintf("invalid rank direction %q: must be one of TB, LR, BT, RL", f.config.RankDir), nil)
	}

	graph := response.Graph

	fmt.Fprintf(writer, "/* deadwood dependency graph - generated: %s */\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(writer, "/* version: %s */\n", version.GetVersion())
	fmt.Fprintln(writer, "digraph dependencies {")

	if graph.NodeCount() == 0 {
		fmt.Fprintln(writer, "    /* no modules in graph */")
		fmt.Fprintln(writer, "}")
		return nil
	}

	fmt.Fprintf(writer, "    rankdir=%s;\n", f.config.RankDir)
	fmt.Fprintln(writer, "    node [shape=box, style=filled, fontname=\"Helvetica\"];")
	fmt.Fprintln(writer, "    edge [fontname=\"Helvetica\", fontsize=10];")
	fmt.Fprintln(writer)

	fmt.Fprintln(writer, "    // Nodes")
	var nodeIDs []string
	for id := range graph.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)
	for _, id := range nodeIDs {
		f.writeNode(writer, graph.Nodes[id], "    ")
	}
	fmt.Fprintln(writer)

	fmt.Fprintln(writer, "    // Edges")
	f.writeEdges(writer, graph)
	fmt.Fprintln(writer)

	if f.config.ShowLegend {
		f.writeLegend(writer)
	}

	fmt.Fprintln(writer, "}")
	return nil
}

func (f *DOTFormatter) writeNode(writer io.Writer, node *domain.ModuleNode, indent string) {
	dotID := escapeDOTID(node.ID)
	label := node.Name
	if label == "" {
		label = node.ID
	}

	colors := nodeColors.normal
	var tooltip string
	switch {
	case node.IsExternal:
		colors = nodeColors.external
		tooltip = "External package"
	case node.IsEntryPoint:
		colors = nodeColors.entry
		tooltip = "Entry point"
	case node.IsLeaf:
		colors = nodeColors.leaf
		tooltip = "Leaf module"
	}

	fmt.Fprintf(writer, "%s%s [label=\"%s\", fillcolor=\"%s\", color=\"%s\"",
		indent, dotID, escapeDOTLabel(label), colors.fill, colors.border)
	if tooltip != "" {
		fmt.Fprintf(writer, ", tooltip=\"%s\"", tooltip)
	}
	fmt.Fprintln(writer, "];")
}

func (f *DOTFormatter) writeEdges(writer io.Writer, graph *domain.DependencyGraph) {
	var fromIDs []string
	for from := range graph.Edges {
		fromIDs = append(fromIDs, from)
	}
	sort.Strings(fromIDs)

	for _, from := range fromIDs {
		edges := append([]*domain.DependencyEdge(nil), graph.Edges[from]...)
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].To != edges[j].To {
				return edges[i].To < edges[j].To
			}
			return edges[i].EdgeType < edges[j].EdgeType
		})

		for _, edge := range edges {
			style := edgeStyles[edge.EdgeType]
			if style.style == "" {
				style = edgeStyles[domain.EdgeTypeImport]
			}
			fmt.Fprintf(writer, "    %s -> %s [style=%s, arrowhead=%s",
				escapeDOTID(edge.From), escapeDOTID(edge.To), style.style, style.arrow)
			if edge.EdgeType != domain.EdgeTypeImport {
				fmt.Fprintf(writer, ", label=\"%s\"", edge.EdgeType)
			}
			fmt.Fprintln(writer, "];")
		}
	}
}

func (f *DOTFormatter) writeLegend(writer io.Writer) {
	fmt.Fprintln(writer, "    // Legend")
	fmt.Fprintln(writer, "    subgraph cluster_legend {")
	fmt.Fprintln(writer, "        label=\"Legend\";")
	fmt.Fprintln(writer, "        style=filled;")
	fmt.Fprintln(writer, "        fillcolor=\"#F5F5F5\";")
	fmt.Fprintln(writer, "        color=\"#CCCCCC\";")
	fmt.Fprintln(writer, "        fontsize=10;")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "        legend_entry [label=\"Entry Point\", fillcolor=\"%s\", color=\"%s\"];\n",
		nodeColors.entry.fill, nodeColors.entry.border)
	fmt.Fprintf(writer, "        legend_leaf [label=\"Leaf Module\", fillcolor=\"%s\", color=\"%s\"];\n",
		nodeColors.leaf.fill, nodeColors.leaf.border)
	fmt.Fprintf(writer, "        legend_external [label=\"External\", fillcolor=\"%s\", color=\"%s\"];\n",
		nodeColors.external.fill, nodeColors.external.border)
	fmt.Fprintln(writer, "    }")
}

// escapeDOTID escapes a string for use as a DOT node ID.
func escapeDOTID(id string) string {
	replacer := strings.NewReplacer(
		"/", "__", ".", "_", "-", "_", "@", "_at_",
		" ", "_", ":", "_", "(", "_", ")", "_",
		"[", "_", "]", "_", "{", "_", "}", "_",
	)
	escaped := replacer.Replace(id)
	if len(escaped) > 0 && !isValidDOTIDStart(escaped[0]) {
		escaped = "_" + escaped
	}
	return escaped
}

// escapeDOTLabel escapes a string for use as a DOT label.
func escapeDOTLabel(label string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\", "\"", "\\\"", "\n", "\\n", "\r", "", "\t", "\\t",
	)
	return replacer.Replace(label)
}

func isValidDOTIDStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
