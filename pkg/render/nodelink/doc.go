// Package nodelink renders a resolved cinema as a node-link diagram.
//
// # Overview
//
// The diagram shows the reference graph that the JSON and XML encoders
// walk: the cinema node owns movies and users, movies own director and actor
// nodes, and users point back into the catalog through favorites, watchlist
// entries and comments. Directors and actors shared by several movies are
// drawn once.
//
// # Usage
//
//	v, err := resolve.Resolve(c)
//	dot := nodelink.ToDOT(v, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Edge Styles
//
//   - solid: ownership (catalog, users, director, actors)
//   - dashed: favorite
//   - dotted: watchlist
//   - bold: comment, from author to movie
//
// Titles referenced from a favorite list or watchlist that have no catalog
// entry appear as grey dashed "ghost" nodes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no system Graphviz install is needed.
package nodelink
