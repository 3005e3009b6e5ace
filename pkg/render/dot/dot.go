package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sankeyflow/pkg/flow"
	"github.com/matzehuels/sankeyflow/pkg/template"
)

// Pen width range for links; the heaviest link gets maxPen.
const (
	minPen = 1.0
	maxPen = 12.0
)

// Options configures DOT generation.
type Options struct {
	// ShowValues labels each link with its value.
	ShowValues bool

	// NodeTooltip and LinkTooltip are templates rendered per element
	// with [template.Format]. Empty templates emit no tooltip.
	NodeTooltip string
	LinkTooltip string
}

// ToDOT converts g to Graphviz DOT. Nodes that share a depth are pinned to
// the same rank; nodes without a depth are left to Graphviz.
func ToDOT(g *flow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph sankey {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#7f8c8d80\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if g == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	buf.WriteString("\n")
	for _, rank := range ranks(g.Nodes) {
		buf.WriteString("  { rank=same;")
		for _, name := range rank {
			buf.WriteString(" " + quote(name) + ";")
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes {
		attrs := []string{"label=" + quote(n.Name)}
		if opts.NodeTooltip != "" {
			attrs = append(attrs, "tooltip="+quote(template.Format(opts.NodeTooltip, template.NodeRecord(n))))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.Name), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	heaviest := maxValue(g.Links)
	for _, e := range g.Links {
		attrs := []string{"penwidth=" + strconv.FormatFloat(penWidth(e.Value, heaviest), 'f', 2, 64)}
		if opts.ShowValues {
			attrs = append(attrs, "label="+quote(strconv.FormatFloat(e.Value, 'f', -1, 64)))
		}
		if opts.LinkTooltip != "" {
			attrs = append(attrs, "tooltip="+quote(template.Format(opts.LinkTooltip, template.LinkRecord(e))))
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.Source), quote(e.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotEscaper escapes text for a double-quoted DOT string. Graphviz only
// understands \" and \\ there, plus \n as a centered line break in labels;
// every other character is passed through as is.
var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

// quote returns s as a double-quoted DOT string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// ranks groups node names by depth, shallowest first, in node order.
func ranks(nodes []flow.Node) [][]string {
	byDepth := make(map[int][]string)
	for _, n := range nodes {
		if n.Depth == nil {
			continue
		}
		byDepth[*n.Depth] = append(byDepth[*n.Depth], n.Name)
	}
	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	slices.Sort(depths)

	out := make([][]string, 0, len(depths))
	for _, d := range depths {
		out = append(out, byDepth[d])
	}
	return out
}

func maxValue(links []flow.Edge) float64 {
	m := 0.0
	for _, e := range links {
		m = max(m, e.Value)
	}
	return m
}

func penWidth(v, heaviest float64) float64 {
	if heaviest <= 0 || v <= 0 {
		return minPen
	}
	return minPen + (maxPen-minPen)*v/heaviest
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// zero-origin viewBox so the preview scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
