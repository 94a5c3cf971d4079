package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/citeforest/pkg/store"
)

// Format names an output format of the graph command.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the year and contributing affiliations to publication
	// labels. When false, only the id and heading are shown.
	Detailed bool
	// Affiliations draws affiliation nodes with dashed edges to the
	// publications they contributed to.
	Affiliations bool
}

// ToDOT converts the citation forest in s to Graphviz DOT format.
// Roots are drawn with a bold outline.
func ToDOT(s *store.Store, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	pubs := s.AllPublications()
	for _, id := range pubs {
		attrs := []string{fmt.Sprintf("label=%q", pubLabel(s, id, opts.Detailed))}
		if s.Parent(id) == store.NoPublication {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", pubNode(id), strings.Join(attrs, ", "))
	}

	if opts.Affiliations {
		buf.WriteString("\n")
		for _, id := range s.AllAffiliations() {
			label := fmt.Sprintf("%s\n%s", s.AffiliationName(id), s.AffiliationCoord(id))
			fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=lightgrey];\n", affNode(id), label)
		}
	}

	buf.WriteString("\n")
	for _, id := range pubs {
		for _, child := range s.DirectReferences(id) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", pubNode(id), pubNode(child))
		}
	}
	if opts.Affiliations {
		for _, id := range pubs {
			for _, aff := range s.PublicationAffiliations(id) {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", affNode(aff), pubNode(id))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pubNode(id store.PublicationID) string { return "p" + strconv.FormatUint(uint64(id), 10) }

func affNode(id store.AffiliationID) string { return "a:" + string(id) }

func pubLabel(s *store.Store, id store.PublicationID, detailed bool) string {
	label := fmt.Sprintf("#%d %s", id, s.PublicationName(id))
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("year: %d", s.PublicationYear(id))}
	if affs := s.PublicationAffiliations(id); len(affs) > 0 {
		names := make([]string, len(affs))
		for i, a := range affs {
			names[i] = string(a)
		}
		parts = append(parts, "by: "+strings.Join(names, ", "))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
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

// Render produces the diagram for s in the requested format.
func Render(ctx context.Context, s *store.Store, format Format, opts Options) ([]byte, error) {
	dot := ToDOT(s, opts)
	switch format {
	case FormatDOT, "":
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
