// Package resolve turns a cinema graph into a tree both encoders can walk.
//
// The graph in package cinema is cyclic: users point at movies through their
// favorite lists and movies point back at users through comments. Resolve
// cuts those cycles with a fixed per-edge policy (see [Policy]): an entity is
// embedded along the edge that owns it and referenced by a single identifying
// field everywhere else. Every link in the result is a [Ref], so the JSON and
// XML encoders make the same embed/reference decision for every field even
// though their output shapes differ.
//
// Resolve validates the whole graph before building anything and returns all
// problems at once, so an encoder either gets a complete tree or no tree.
package resolve

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/matzehuels/cinegraph/pkg/cinema"
	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
)

// Cinema is the resolved root.
type Cinema struct {
	Name    string
	Catalog []Ref[Movie]
	Users   []Ref[User]
}

// Movie is a resolved movie.
type Movie struct {
	Title       string
	Genre       string
	Duration    int
	Description string
	ReleaseYear int
	Director    Ref[Person]
	Actors      []Ref[Person]
	Comments    []Ref[Comment]
}

// Person is a resolved director or actor.
type Person struct {
	Name      string
	Biography string
}

// Comment is a resolved comment.
type Comment struct {
	Author Ref[User]
	Text   string
}

// User is a resolved user.
type User struct {
	Username  string
	Email     string
	Favorites []Ref[Movie]
	Watchlist []Ref[Movie]
}

// Option configures Resolve and Validate.
type Option func(*resolver)

// WithStrictAuthors requires every comment author to be one of the cinema's
// users. Without it, any non-nil author is accepted.
func WithStrictAuthors() Option { return func(r *resolver) { r.strict = true } }

type resolver struct {
	strict bool
	users  map[uuid.UUID]*cinema.User
}

func newResolver(c *cinema.Cinema, opts []Option) *resolver {
	r := &resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.strict {
		r.users = c.UserIndex()
	}
	return r
}

// Validate checks every constraint the encoders rely on without building
// any output. All problems are returned joined; use errors.Is from package
// cinegraph/pkg/errors to test for a code.
func Validate(c *cinema.Cinema, opts ...Option) error {
	if c == nil {
		return &cerrors.MissingReferenceError{Entity: "document", Field: "cinema"}
	}
	return newResolver(c, opts).validate(c)
}

// Resolve validates c and returns its resolved tree. The result shares no
// memory with c: later mutations of the graph are not reflected.
func Resolve(c *cinema.Cinema, opts ...Option) (*Cinema, error) {
	if c == nil {
		return nil, &cerrors.MissingReferenceError{Entity: "document", Field: "cinema"}
	}
	r := newResolver(c, opts)
	if err := r.validate(c); err != nil {
		return nil, err
	}
	return &Cinema{
		Name: c.Name,
		Catalog: lo.Map(c.Catalog(), func(m *cinema.Movie, _ int) Ref[Movie] {
			return link(EdgeCatalog, m.Title, func() Movie { return r.movie(m) })
		}),
		Users: lo.Map(c.Users(), func(u *cinema.User, _ int) Ref[User] {
			return link(EdgeUser, u.Username, func() User { return r.user(u) })
		}),
	}, nil
}

func (r *resolver) movie(m *cinema.Movie) Movie {
	return Movie{
		Title:       m.Title,
		Genre:       m.Genre,
		Duration:    m.Duration,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Director: link(EdgeDirector, m.Director.Name, func() Person {
			return Person{Name: m.Director.Name, Biography: m.Director.Biography}
		}),
		Actors: lo.Map(m.Actors(), func(a *cinema.Actor, _ int) Ref[Person] {
			return link(EdgeActor, a.Name, func() Person { return Person{Name: a.Name, Biography: a.Biography} })
		}),
		Comments: lo.Map(m.Comments(), func(c *cinema.Comment, _ int) Ref[Comment] {
			return link(EdgeComment, "", func() Comment {
				return Comment{
					Author: link(EdgeAuthor, c.Author.Username, func() User { return r.user(c.Author) }),
					Text:   c.Text,
				}
			})
		}),
	}
}

func (r *resolver) user(u *cinema.User) User {
	return User{
		Username: u.Username,
		Email:    u.Email,
		Favorites: lo.Map(u.Favorites().Movies(), func(m *cinema.Movie, _ int) Ref[Movie] {
			return link(EdgeFavorite, m.Title, func() Movie { return r.movie(m) })
		}),
		Watchlist: lo.Map(u.Watchlist().Movies(), func(m *cinema.Movie, _ int) Ref[Movie] {
			return link(EdgeWatchlist, m.Title, func() Movie { return r.movie(m) })
		}),
	}
}

func (r *resolver) validate(c *cinema.Cinema) error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(cerrors.ValidateName("cinema", "name", c.Name))

	seenMovies := make(map[*cinema.Movie]bool)
	for i, m := range c.Catalog() {
		if m == nil {
			add(&cerrors.MissingReferenceError{Entity: "cinema", Key: c.Name, Field: fmt.Sprintf("catalog[%d]", i)})
			continue
		}
		if seenMovies[m] {
			continue
		}
		seenMovies[m] = true
		add(r.validateMovie(m))
	}

	seenUsers := make(map[*cinema.User]bool)
	for i, u := range c.Users() {
		if u == nil {
			add(&cerrors.MissingReferenceError{Entity: "cinema", Key: c.Name, Field: fmt.Sprintf("users[%d]", i)})
			continue
		}
		if seenUsers[u] {
			continue
		}
		seenUsers[u] = true
		add(cerrors.ValidateName("user", "username", u.Username))
		add(cerrors.ValidateText("user", u.Username, "email", u.Email))
		for _, m := range append(u.Favorites().Movies(), u.Watchlist().Movies()...) {
			add(cerrors.ValidateName("movie", "title", m.Title))
		}
	}

	return stderrors.Join(errs...)
}

func (r *resolver) validateMovie(m *cinema.Movie) error {
	var errs []error
	if err := m.MovieInfo.Validate(); err != nil {
		errs = append(errs, err)
	}
	if m.Director == nil {
		errs = append(errs, &cerrors.MissingReferenceError{Entity: "movie", Key: m.Title, Field: "director"})
	} else {
		errs = append(errs,
			cerrors.ValidateName("director", "name", m.Director.Name),
			cerrors.ValidateText("director", m.Director.Name, "biography", m.Director.Biography))
	}
	for i, a := range m.Actors() {
		if a == nil {
			errs = append(errs, &cerrors.MissingReferenceError{Entity: "movie", Key: m.Title, Field: fmt.Sprintf("actors[%d]", i)})
			continue
		}
		errs = append(errs,
			cerrors.ValidateName("actor", "name", a.Name),
			cerrors.ValidateText("actor", a.Name, "biography", a.Biography))
	}
	for i, c := range m.Comments() {
		key := fmt.Sprintf("%s#%d", m.Title, i)
		switch {
		case c == nil:
			errs = append(errs, &cerrors.MissingReferenceError{Entity: "movie", Key: m.Title, Field: fmt.Sprintf("comments[%d]", i)})
		case c.Author == nil:
			errs = append(errs, &cerrors.MissingReferenceError{Entity: "comment", Key: key, Field: "author"})
		case r.strict && r.users[c.Author.ID()] == nil:
			errs = append(errs, &cerrors.MissingReferenceError{Entity: "comment", Key: key, Field: "registered author"})
		default:
			errs = append(errs,
				cerrors.ValidateName("user", "username", c.Author.Username),
				cerrors.ValidateText("comment", key, "text", c.Text))
		}
	}
	return stderrors.Join(errs...)
}
