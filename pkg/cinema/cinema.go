package cinema

import (
	"slices"

	"github.com/google/uuid"

	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
)

// Cinema is the root of the graph. It owns an ordered catalog of movies and
// an ordered list of users.
//
// The zero value is not usable - use New.
type Cinema struct {
	Name string

	catalog []*Movie
	users   []*User
}

// New creates an empty cinema. The name is required.
func New(name string) (*Cinema, error) {
	if err := cerrors.ValidateName("cinema", "name", name); err != nil {
		return nil, err
	}
	return &Cinema{Name: name}, nil
}

// AddMovie appends m to the catalog. The same movie may be added twice.
func (c *Cinema) AddMovie(m *Movie) { c.catalog = append(c.catalog, m) }

// AddUser appends u to the user list. The same user may be added twice.
func (c *Cinema) AddUser(u *User) { c.users = append(c.users, u) }

// Catalog returns the movies in insertion order. The slice is a copy; the
// movies are not.
func (c *Cinema) Catalog() []*Movie { return slices.Clone(c.catalog) }

// Users returns the users in insertion order.
func (c *Cinema) Users() []*User { return slices.Clone(c.users) }

// MovieCount returns the catalog length.
func (c *Cinema) MovieCount() int { return len(c.catalog) }

// UserCount returns the number of users.
func (c *Cinema) UserCount() int { return len(c.users) }

// FindMovie returns the first catalog movie with the given title.
func (c *Cinema) FindMovie(title string) (*Movie, bool) {
	for _, m := range c.catalog {
		if m != nil && m.Title == title {
			return m, true
		}
	}
	return nil, false
}

// FindUser returns the first user with the given username.
func (c *Cinema) FindUser(username string) (*User, bool) {
	for _, u := range c.users {
		if u != nil && u.Username == username {
			return u, true
		}
	}
	return nil, false
}

// UserIndex builds an id lookup over the cinema's users.
func (c *Cinema) UserIndex() map[uuid.UUID]*User {
	idx := make(map[uuid.UUID]*User, len(c.users))
	for _, u := range c.users {
		if u != nil {
			idx[u.ID()] = u
		}
	}
	return idx
}
