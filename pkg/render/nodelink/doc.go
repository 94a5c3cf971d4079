// Package nodelink renders the citation forest as a node-link diagram.
//
// # Overview
//
// Publications become boxes and every reference becomes an arrow from the
// cited publication down to the publication that cites it, so each tree of
// the forest hangs from its root. Affiliations can optionally be drawn as
// ellipses linked to the publications they contributed to.
//
// # Usage
//
//	dot := nodelink.ToDOT(s, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: publication labels include the year and contributors
//   - Affiliations: affiliation nodes and contribution edges are drawn
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be rendered
// directly via [RenderSVG] or saved and processed with external Graphviz
// tools. Nodes are emitted in insertion order, so the output is stable for a
// given store.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
