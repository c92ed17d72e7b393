// Package catalog builds a populated cinema graph from a TOML seed file.
//
// # File Format
//
// People are declared once and referenced by key from movies; users are
// referenced by username from comments; movies are referenced by title from
// favorite lists and watchlists:
//
//	name = "Kinoteka"
//
//	[[directors]]
//	key = "refn"
//	name = "Nicolas Winding Refn"
//	biography = "Danish film director."
//
//	[[actors]]
//	key = "gosling"
//	name = "Ryan Gosling"
//
//	[[users]]
//	username = "Pashtet"
//	email = "pashtet@example.com"
//	favorites = ["Drive"]
//
//	[[movies]]
//	title = "Drive"
//	genre = "Criminal"
//	duration = 100
//	release_year = 2011
//	director = "refn"
//	actors = ["gosling"]
//
//	  [[movies.comments]]
//	  user = "Pashtet"
//	  text = "Main character literally me"
//
// A person's key defaults to their name. A movie may omit its director; the
// graph still loads, and encoding it later fails with a missing-reference
// error. Any other unresolved reference fails the load.
//
// duration and release_year must be integers; numeric strings such as "100"
// are accepted, anything else is an invalid-field error.
package catalog

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cinegraph/pkg/cinema"
	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
)

type file struct {
	Name      string        `toml:"name"`
	Directors []personEntry `toml:"directors"`
	Actors    []personEntry `toml:"actors"`
	Users     []userEntry   `toml:"users"`
	Movies    []movieEntry  `toml:"movies"`
}

type personEntry struct {
	Key       string `toml:"key"`
	Name      string `toml:"name"`
	Biography string `toml:"biography"`
}

type movieEntry struct {
	Title       string         `toml:"title"`
	Genre       string         `toml:"genre"`
	Duration    any            `toml:"duration"`
	Description string         `toml:"description"`
	ReleaseYear any            `toml:"release_year"`
	Director    string         `toml:"director"`
	Actors      []string       `toml:"actors"`
	Comments    []commentEntry `toml:"comments"`
}

type commentEntry struct {
	User string `toml:"user"`
	Text string `toml:"text"`
}

type userEntry struct {
	Username  string   `toml:"username"`
	Email     string   `toml:"email"`
	Favorites []string `toml:"favorites"`
	Watchlist []string `toml:"watchlist"`
}

// Read decodes a TOML seed from r and builds the cinema it describes.
// Unknown keys are rejected so typos do not silently drop data.
func Read(r io.Reader) (*cinema.Cinema, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "decode seed")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return build(f)
}

// Load reads the seed file at path.
func Load(path string) (*cinema.Cinema, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	c, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func build(f file) (*cinema.Cinema, error) {
	c, err := cinema.New(f.Name)
	if err != nil {
		return nil, err
	}

	directors := make(map[string]*cinema.Director, len(f.Directors))
	for _, p := range f.Directors {
		d, err := cinema.NewDirector(p.Name, p.Biography)
		if err != nil {
			return nil, err
		}
		if err := register(directors, "director", keyOf(p), d); err != nil {
			return nil, err
		}
	}

	actors := make(map[string]*cinema.Actor, len(f.Actors))
	for _, p := range f.Actors {
		a, err := cinema.NewActor(p.Name, p.Biography)
		if err != nil {
			return nil, err
		}
		if err := register(actors, "actor", keyOf(p), a); err != nil {
			return nil, err
		}
	}

	users := make(map[string]*cinema.User, len(f.Users))
	for _, e := range f.Users {
		u, err := cinema.NewUser(e.Username, e.Email)
		if err != nil {
			return nil, err
		}
		if err := register(users, "user", e.Username, u); err != nil {
			return nil, err
		}
		c.AddUser(u)
	}

	movies := make(map[string]*cinema.Movie, len(f.Movies))
	for _, e := range f.Movies {
		m, err := buildMovie(e, directors, actors, users)
		if err != nil {
			return nil, err
		}
		if err := register(movies, "movie", e.Title, m); err != nil {
			return nil, err
		}
		c.AddMovie(m)
	}

	for _, e := range f.Users {
		u := users[e.Username]
		for _, title := range e.Favorites {
			m, ok := movies[title]
			if !ok {
				return nil, &cerrors.MissingReferenceError{Entity: "user", Key: e.Username, Field: "favorite " + strconv.Quote(title)}
			}
			u.AddToFavorites(m)
		}
		for _, title := range e.Watchlist {
			m, ok := movies[title]
			if !ok {
				return nil, &cerrors.MissingReferenceError{Entity: "user", Key: e.Username, Field: "watchlist entry " + strconv.Quote(title)}
			}
			u.AddToWatchlist(m)
		}
	}

	return c, nil
}

func buildMovie(e movieEntry, directors map[string]*cinema.Director, actors map[string]*cinema.Actor, users map[string]*cinema.User) (*cinema.Movie, error) {
	duration, err := intField("duration", e.Title, e.Duration)
	if err != nil {
		return nil, err
	}
	year, err := intField("release_year", e.Title, e.ReleaseYear)
	if err != nil {
		return nil, err
	}

	var director *cinema.Director
	if e.Director != "" {
		d, ok := directors[e.Director]
		if !ok {
			return nil, &cerrors.MissingReferenceError{Entity: "movie", Key: e.Title, Field: "director " + strconv.Quote(e.Director)}
		}
		director = d
	}

	m, err := cinema.NewMovie(cinema.MovieInfo{
		Title:       e.Title,
		Genre:       e.Genre,
		Duration:    duration,
		Description: e.Description,
		ReleaseYear: year,
	}, director)
	if err != nil {
		return nil, err
	}

	for _, key := range e.Actors {
		a, ok := actors[key]
		if !ok {
			return nil, &cerrors.MissingReferenceError{Entity: "movie", Key: e.Title, Field: "actor " + strconv.Quote(key)}
		}
		m.AddActor(a)
	}
	for _, ce := range e.Comments {
		u, ok := users[ce.User]
		if !ok {
			return nil, &cerrors.MissingReferenceError{Entity: "movie", Key: e.Title, Field: "comment author " + strconv.Quote(ce.User)}
		}
		cm, err := cinema.NewComment(u, ce.Text)
		if err != nil {
			return nil, err
		}
		m.AddComment(cm)
	}
	return m, nil
}

// intField converts a decoded TOML value to int. The TOML decoder yields
// int64 for integers; numeric strings are tolerated.
func intField(field, title string, v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		if x < math.MinInt || x > math.MaxInt {
			return 0, &cerrors.InvalidFieldError{Entity: "movie", Key: title, Field: field, Value: x, Reason: "out of range"}
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err == nil {
			return n, nil
		}
	}
	return 0, &cerrors.InvalidFieldError{Entity: "movie", Key: title, Field: field, Value: v, Reason: "not an integer"}
}

func keyOf(p personEntry) string {
	if p.Key != "" {
		return p.Key
	}
	return p.Name
}

func register[T any](m map[string]T, entity, key string, v T) error {
	if _, dup := m[key]; dup {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "duplicate %s %q", entity, key)
	}
	m[key] = v
	return nil
}
