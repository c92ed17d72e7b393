package cinema

import (
	"slices"

	"github.com/google/uuid"

	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
)

// Comment is a piece of text a user left on a movie. The movie owns the
// comment; Author is a back-reference and is not owned.
type Comment struct {
	Author *User
	Text   string
}

// NewComment creates a comment. The author is required.
func NewComment(author *User, text string) (*Comment, error) {
	if author == nil {
		return nil, &cerrors.MissingReferenceError{Entity: "comment", Field: "author"}
	}
	if err := cerrors.ValidateText("comment", author.Username, "text", text); err != nil {
		return nil, err
	}
	return &Comment{Author: author, Text: text}, nil
}

// MovieList is an insertion-ordered set of movie references. Entries are
// unique by movie identity.
//
// The zero value is an empty list ready to use.
type MovieList struct {
	items []*Movie
	index map[uuid.UUID]struct{}
}

// Add appends m unless it is already present. It reports whether the list
// changed. A nil movie is ignored.
func (l *MovieList) Add(m *Movie) bool {
	if m == nil {
		return false
	}
	if l.index == nil {
		l.index = make(map[uuid.UUID]struct{})
	}
	id := m.ID()
	if _, ok := l.index[id]; ok {
		return false
	}
	l.index[id] = struct{}{}
	l.items = append(l.items, m)
	return true
}

// Contains reports whether m is in the list.
func (l *MovieList) Contains(m *Movie) bool {
	if m == nil {
		return false
	}
	_, ok := l.index[m.ID()]
	return ok
}

// Len returns the number of entries.
func (l *MovieList) Len() int { return len(l.items) }

// Movies returns the entries in insertion order.
func (l *MovieList) Movies() []*Movie { return slices.Clone(l.items) }

// User is a cinema member with a favorite list and a watchlist.
type User struct {
	Username string
	Email    string

	id        uuid.UUID
	favorites MovieList
	watchlist MovieList
}

// NewUser creates a user. The username is required and email must look
// like an address.
func NewUser(username, email string) (*User, error) {
	if err := cerrors.ValidateName("user", "username", username); err != nil {
		return nil, err
	}
	if err := cerrors.ValidateEmail(username, email); err != nil {
		return nil, err
	}
	return &User{Username: username, Email: email, id: uuid.New()}, nil
}

// ID returns the user's surrogate identity. A user built as a struct
// literal gets its id on first use.
func (u *User) ID() uuid.UUID {
	if u.id == uuid.Nil {
		u.id = uuid.New()
	}
	return u.id
}

// AddToFavorites adds m to the favorite list. Adding a movie that is
// already there is a no-op and returns false.
func (u *User) AddToFavorites(m *Movie) bool { return u.favorites.Add(m) }

// AddToWatchlist adds m to the watchlist. Adding a movie that is already
// there is a no-op and returns false.
func (u *User) AddToWatchlist(m *Movie) bool { return u.watchlist.Add(m) }

// Favorites returns the favorite list.
func (u *User) Favorites() *MovieList { return &u.favorites }

// Watchlist returns the watchlist.
func (u *User) Watchlist() *MovieList { return &u.watchlist }

// Comment writes text on m as this user and returns the attached comment.
func (u *User) Comment(m *Movie, text string) *Comment {
	c := &Comment{Author: u, Text: text}
	m.AddComment(c)
	return c
}
