package cinema

import (
	"slices"

	"github.com/google/uuid"

	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
)

// Director directs one or more movies. A director is attached to a movie by
// pointer and is not copied.
type Director struct {
	Name      string
	Biography string
}

// NewDirector creates a director. The name is required.
func NewDirector(name, biography string) (*Director, error) {
	if err := cerrors.ValidateName("director", "name", name); err != nil {
		return nil, err
	}
	if err := cerrors.ValidateText("director", name, "biography", biography); err != nil {
		return nil, err
	}
	return &Director{Name: name, Biography: biography}, nil
}

// Actor appears in a movie's cast.
type Actor struct {
	Name      string
	Biography string
}

// NewActor creates an actor. The name is required.
func NewActor(name, biography string) (*Actor, error) {
	if err := cerrors.ValidateName("actor", "name", name); err != nil {
		return nil, err
	}
	if err := cerrors.ValidateText("actor", name, "biography", biography); err != nil {
		return nil, err
	}
	return &Actor{Name: name, Biography: biography}, nil
}

// MovieInfo carries the scalar fields of a movie.
type MovieInfo struct {
	Title       string
	Genre       string
	Duration    int // minutes, > 0
	Description string
	ReleaseYear int
}

// Validate checks the format constraints on the scalar fields.
func (i MovieInfo) Validate() error {
	if err := cerrors.ValidateName("movie", "title", i.Title); err != nil {
		return err
	}
	if err := cerrors.ValidatePositive("movie", i.Title, "duration", i.Duration); err != nil {
		return err
	}
	if err := cerrors.ValidateText("movie", i.Title, "genre", i.Genre); err != nil {
		return err
	}
	if err := cerrors.ValidateText("movie", i.Title, "description", i.Description); err != nil {
		return err
	}
	return cerrors.ValidateNonNegative("movie", i.Title, "release_year", i.ReleaseYear)
}

// Movie is a catalog entry with its cast and comments.
type Movie struct {
	MovieInfo

	// Director is required for encoding but may be attached after
	// construction with SetDirector.
	Director *Director

	id       uuid.UUID
	actors   []*Actor
	comments []*Comment
}

// NewMovie creates a movie from validated info. director may be nil.
func NewMovie(info MovieInfo, director *Director) (*Movie, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &Movie{MovieInfo: info, Director: director, id: uuid.New()}, nil
}

// ID returns the movie's surrogate identity. A movie built as a struct
// literal gets its id on first use.
func (m *Movie) ID() uuid.UUID {
	if m.id == uuid.Nil {
		m.id = uuid.New()
	}
	return m.id
}

// SetDirector attaches (or replaces) the director.
func (m *Movie) SetDirector(d *Director) { m.Director = d }

// AddActor appends a to the cast.
func (m *Movie) AddActor(a *Actor) { m.actors = append(m.actors, a) }

// AddComment appends c to the comment list.
func (m *Movie) AddComment(c *Comment) { m.comments = append(m.comments, c) }

// Actors returns the cast in insertion order.
func (m *Movie) Actors() []*Actor { return slices.Clone(m.actors) }

// Comments returns the comments in insertion order.
func (m *Movie) Comments() []*Comment { return slices.Clone(m.comments) }
