package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/cinegraph/pkg/catalog"
	"github.com/matzehuels/cinegraph/pkg/cinema"
	"github.com/matzehuels/cinegraph/pkg/resolve"
)

func resolveDemo(t *testing.T) *resolve.Cinema {
	t.Helper()
	v, err := resolve.Resolve(catalog.Demo())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return v
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(resolveDemo(t), Options{})

	want := []string{
		`"cinema" [label="Kinoteka"`,
		`"movie:0" [label="Drive"`,
		`"cinema" -> "movie:0" [style=solid]`,
		`"cinema" -> "user:0" [style=solid]`,
		`"cinema" -> "user:1" [style=solid]`,
		`"movie:0" -> "director:Nicolas Winding Refn" [style=solid, label="director"`,
		`"movie:0" -> "actor:Ryan Gosling" [style=solid, label="actor"`,
		`"user:0" -> "movie:0" [style=dashed, label="favorite"`,
		`"user:0" -> "movie:0" [style=bold, label="comment"`,
		`"user:1" -> "movie:0" [style=bold, label="comment"`,
	}
	for _, w := range want {
		if !strings.Contains(dot, w) {
			t.Errorf("ToDOT() missing %s\n%s", w, dot)
		}
	}
	if !strings.HasPrefix(dot, "digraph G {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() is not a complete digraph:\n%s", dot)
	}
	if strings.Contains(dot, "ghost:") {
		t.Errorf("ToDOT() created a ghost node for a catalogued movie:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(resolveDemo(t), Options{Detailed: true})
	for _, w := range []string{`Drive\nCriminal\n100 min\n2011`, `Pashtet\npashtet@example.com`} {
		if !strings.Contains(dot, w) {
			t.Errorf("ToDOT(Detailed) missing %s\n%s", w, dot)
		}
	}
}

func TestToDOTSharedDirector(t *testing.T) {
	c, _ := cinema.New("Twice")
	d, _ := cinema.NewDirector("Refn", "")
	for _, title := range []string{"Drive", "Only God Forgives"} {
		m, _ := cinema.NewMovie(cinema.MovieInfo{Title: title, Duration: 90}, d)
		c.AddMovie(m)
	}
	v, err := resolve.Resolve(c)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	dot := ToDOT(v, Options{})
	if n := strings.Count(dot, `"director:Refn" [label=`); n != 1 {
		t.Errorf("director node declared %d times, want 1", n)
	}
	if n := strings.Count(dot, `-> "director:Refn"`); n != 2 {
		t.Errorf("director edges = %d, want 2", n)
	}
}

func TestToDOTGhostMovie(t *testing.T) {
	c, _ := cinema.New("Ghosts")
	d, _ := cinema.NewDirector("D", "")
	elsewhere, _ := cinema.NewMovie(cinema.MovieInfo{Title: "Elsewhere", Duration: 90}, d)
	u, _ := cinema.NewUser("u", "u@example.com")
	u.AddToWatchlist(elsewhere)
	u.AddToFavorites(elsewhere)
	c.AddUser(u)

	v, err := resolve.Resolve(c)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	dot := ToDOT(v, Options{})

	if n := strings.Count(dot, `"ghost:Elsewhere" [label="Elsewhere"`); n != 1 {
		t.Errorf("ghost node declared %d times, want 1\n%s", n, dot)
	}
	if !strings.Contains(dot, `"user:0" -> "ghost:Elsewhere" [style=dotted, label="watchlist"`) {
		t.Errorf("missing watchlist edge to ghost\n%s", dot)
	}
	if !strings.Contains(dot, `"user:0" -> "ghost:Elsewhere" [style=dashed, label="favorite"`) {
		t.Errorf("missing favorite edge to ghost\n%s", dot)
	}
}

func TestToDOTUnregisteredAuthor(t *testing.T) {
	c, _ := cinema.New("Drive-in")
	d, _ := cinema.NewDirector("D", "")
	m, _ := cinema.NewMovie(cinema.MovieInfo{Title: "Drive", Duration: 100}, d)
	stranger, _ := cinema.NewUser("stranger", "s@example.com")
	stranger.Comment(m, "hi")
	c.AddMovie(m)

	v, err := resolve.Resolve(c)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	dot := ToDOT(v, Options{})
	if !strings.Contains(dot, `"author:stranger" -> "movie:0" [style=bold, label="comment"`) {
		t.Errorf("missing comment edge from unregistered author\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites header",
			in:   `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 0"></svg>`,
			want: `<svg viewBox="0 0 0 0"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(resolveDemo(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() header not normalized: %.200s", s)
	}
	if !strings.Contains(s, "Kinoteka") {
		t.Error("RenderSVG() output missing cinema label")
	}
}
