// Package pkg provides the core libraries for cinegraph.
//
// # Overview
//
// cinegraph models a cinema's catalog as an object graph (movies, their
// director and actors, users, comments, favorite lists and watchlists) and
// serializes it to JSON and XML. The graph is cyclic: users comment on movies
// and movies list the users' comments. Serialization breaks every cycle with
// a fixed policy that decides, per edge, whether the target is embedded or
// written as a reference key.
//
// # Architecture
//
//	TOML seed / Go code
//	         ↓
//	    [cinema] package (graph construction, validated constructors)
//	         ↓
//	    [resolve] package (validation + embed/reference policy)
//	         ↓
//	    [io] package (JSON, XML)  ·  [render/nodelink] (DOT, SVG)
//	         ↓
//	    atomic file writes
//
// # Quick Start
//
//	c, _ := cinema.New("Kinoteka")
//	refn, _ := cinema.NewDirector("Nicolas Winding Refn", "")
//	drive, _ := cinema.NewMovie(cinema.MovieInfo{Title: "Drive", Duration: 100}, refn)
//	c.AddMovie(drive)
//
//	if err := io.ExportJSON(c, "cinema.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Main Packages
//
// [cinema] - The domain graph. Movies and users carry surrogate ids so that
// favorite lists and watchlists deduplicate by identity, not by title.
//
// [resolve] - Validates the whole graph and builds an immutable resolved
// view. All problems are reported together; encoders only ever see a view
// that is known to be complete.
//
// [io] - JSON and XML encoders over the resolved view, plus atomic file
// writing.
//
// [catalog] - TOML seed loader and the built-in reference catalog.
//
// [render/nodelink] - Graphviz diagrams of the reference graph.
//
// [pipeline] - resolve → encode → write, shared by every CLI command.
//
// [observability] - No-op-by-default hooks for pipeline and write events.
//
// [errors] - Coded errors (MISSING_REFERENCE, INVALID_FIELD, IO_WRITE, ...)
// and field validators.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./...
//	go test -short ./...   # skip Graphviz rendering
//
// [cinema]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/cinema
// [resolve]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/resolve
// [io]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/io
// [catalog]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/catalog
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cinegraph/pkg/buildinfo
package pkg
