package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cinegraph/pkg/resolve"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds genre, year and duration to movie labels and email to
	// user labels. When false, only the title or name is shown.
	Detailed bool
}

// Edge styles. Ownership is solid; cross-references are dashed or dotted.
const (
	styleOwned     = "solid"
	styleFavorite  = "dashed"
	styleWatchlist = "dotted"
	styleComment   = "bold"
)

type graph struct {
	buf    bytes.Buffer
	opts   Options
	movies map[string]string // title -> node id of first catalog entry
	people map[string]string // role:name -> node id
	ghosts map[string]string // title -> node id of an uncatalogued movie
}

// ToDOT converts a resolved cinema to Graphviz DOT format.
//
// The cinema owns its movies and users; movies own their director and actor
// nodes. Users link to movies through favorites (dashed), watchlist entries
// (dotted) and comments (bold). A referenced title with no catalog entry is
// drawn as a grey ghost node. Movies that share a title in the catalog get
// separate nodes; references by title point at the first of them.
func ToDOT(v *resolve.Cinema, opts Options) string {
	g := &graph{
		opts:   opts,
		movies: make(map[string]string),
		people: make(map[string]string),
		ghosts: make(map[string]string),
	}

	g.buf.WriteString("digraph G {\n")
	g.buf.WriteString("  rankdir=LR;\n")
	g.buf.WriteString("  bgcolor=\"transparent\";\n")
	g.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	g.buf.WriteString("  ranksep=0.6;\n")
	g.buf.WriteString("  nodesep=0.3;\n")
	g.buf.WriteString("\n")

	g.node("cinema", v.Name, "shape=folder", "fillcolor=lightyellow")

	for i, ref := range v.Catalog {
		id := fmt.Sprintf("movie:%d", i)
		m, ok := ref.Record()
		if !ok {
			g.edge("cinema", g.ghost(ref.Key()), styleOwned, "")
			continue
		}
		if _, seen := g.movies[m.Title]; !seen {
			g.movies[m.Title] = id
		}
		g.node(id, g.movieLabel(m), "fillcolor=lightblue")
		g.edge("cinema", id, styleOwned, "")
		g.person(id, "director", m.Director)
		for _, a := range m.Actors {
			g.person(id, "actor", a)
		}
	}

	for i, ref := range v.Users {
		id := fmt.Sprintf("user:%d", i)
		label := ref.Key()
		if u, ok := ref.Record(); ok && g.opts.Detailed {
			label = u.Username + "\n" + u.Email
		}
		g.node(id, label, "shape=ellipse", "fillcolor=honeydew")
		g.edge("cinema", id, styleOwned, "")
	}

	// Cross-references are emitted after every owned node exists so that
	// ghosts are only created for titles missing from the catalog.
	users := make(map[string]string, len(v.Users))
	for i, ref := range v.Users {
		id := fmt.Sprintf("user:%d", i)
		users[ref.Key()] = id
		u, ok := ref.Record()
		if !ok {
			continue
		}
		for _, f := range u.Favorites {
			g.edge(id, g.movie(f.Key()), styleFavorite, "favorite")
		}
		for _, w := range u.Watchlist {
			g.edge(id, g.movie(w.Key()), styleWatchlist, "watchlist")
		}
	}

	for i, ref := range v.Catalog {
		m, ok := ref.Record()
		if !ok {
			continue
		}
		movieID := fmt.Sprintf("movie:%d", i)
		for _, c := range m.Comments {
			cm, ok := c.Record()
			if !ok {
				continue
			}
			author := cm.Author.Key()
			from, ok := users[author]
			if !ok {
				from = "author:" + author
				g.node(from, author, "shape=ellipse", "style=\"filled,dashed\"", "fillcolor=lightgrey")
				users[author] = from
			}
			g.edge(from, movieID, styleComment, "comment")
		}
	}

	g.buf.WriteString("}\n")
	return g.buf.String()
}

func (g *graph) node(id, label string, attrs ...string) {
	all := append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
	fmt.Fprintf(&g.buf, "  %q [%s];\n", id, strings.Join(all, ", "))
}

func (g *graph) edge(from, to, style, label string) {
	attrs := []string{"style=" + style}
	if label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label), "fontsize=10")
	}
	fmt.Fprintf(&g.buf, "  %q -> %q [%s];\n", from, to, strings.Join(attrs, ", "))
}

func (g *graph) person(movieID, role string, ref resolve.Ref[resolve.Person]) {
	key := role + ":" + ref.Key()
	id, ok := g.people[key]
	if !ok {
		id = key
		g.people[key] = id
		label := ref.Key()
		if p, ok := ref.Record(); ok {
			label = p.Name
		}
		g.node(id, label, "shape=note", "fillcolor=mistyrose")
	}
	g.edge(movieID, id, styleOwned, role)
}

func (g *graph) movie(title string) string {
	if id, ok := g.movies[title]; ok {
		return id
	}
	return g.ghost(title)
}

func (g *graph) ghost(title string) string {
	if id, ok := g.ghosts[title]; ok {
		return id
	}
	id := "ghost:" + title
	g.ghosts[title] = id
	g.node(id, title, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	return id
}

func (g *graph) movieLabel(m resolve.Movie) string {
	if !g.opts.Detailed {
		return m.Title
	}
	parts := []string{m.Title}
	if m.Genre != "" {
		parts = append(parts, m.Genre)
	}
	parts = append(parts, fmt.Sprintf("%d min", m.Duration))
	if m.ReleaseYear > 0 {
		parts = append(parts, strconv.Itoa(m.ReleaseYear))
	}
	return strings.Join(parts, "\n")
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

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// zero-origin viewBox and pixel width/height.
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
