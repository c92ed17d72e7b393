package cinema

import (
	"testing"

	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
)

func mustMovie(t *testing.T, title string) *Movie {
	t.Helper()
	m, err := NewMovie(MovieInfo{Title: title, Genre: "Drama", Duration: 90, ReleaseYear: 2000}, nil)
	if err != nil {
		t.Fatalf("NewMovie(%q) error: %v", title, err)
	}
	return m
}

func mustUser(t *testing.T, name string) *User {
	t.Helper()
	u, err := NewUser(name, name+"@example.com")
	if err != nil {
		t.Fatalf("NewUser(%q) error: %v", name, err)
	}
	return u
}

func TestNewMovieValidation(t *testing.T) {
	tests := []struct {
		name string
		info MovieInfo
		code cerrors.Code
	}{
		{"valid", MovieInfo{Title: "Drive", Duration: 100, ReleaseYear: 2011}, ""},
		{"zero year allowed", MovieInfo{Title: "Unknown", Duration: 1}, ""},
		{"empty title", MovieInfo{Duration: 100}, cerrors.ErrCodeInvalidField},
		{"zero duration", MovieInfo{Title: "Drive"}, cerrors.ErrCodeInvalidField},
		{"negative duration", MovieInfo{Title: "Drive", Duration: -10}, cerrors.ErrCodeInvalidField},
		{"negative year", MovieInfo{Title: "Drive", Duration: 100, ReleaseYear: -1}, cerrors.ErrCodeInvalidField},
		{"control character in description", MovieInfo{Title: "Drive", Duration: 100, Description: "bell\x07"}, cerrors.ErrCodeInvalidField},
		{"invalid utf-8 in genre", MovieInfo{Title: "Drive", Duration: 100, Genre: "cr\xffime"}, cerrors.ErrCodeInvalidField},
		{"multiline description", MovieInfo{Title: "Drive", Duration: 100, Description: "one\ntwo"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMovie(tt.info, nil)
			if got := cerrors.GetCode(err); got != tt.code {
				t.Fatalf("NewMovie() code = %q, want %q (err %v)", got, tt.code, err)
			}
			if tt.code == "" && m == nil {
				t.Fatal("NewMovie() returned nil movie without error")
			}
		})
	}
}

func TestNewPeopleValidation(t *testing.T) {
	if _, err := NewDirector("", "bio"); !cerrors.Is(err, cerrors.ErrCodeInvalidField) {
		t.Errorf("NewDirector(\"\") error = %v, want INVALID_FIELD", err)
	}
	if _, err := NewActor(" ", "bio"); !cerrors.Is(err, cerrors.ErrCodeInvalidField) {
		t.Errorf("NewActor(\" \") error = %v, want INVALID_FIELD", err)
	}
	if _, err := NewUser("", "a@b.com"); !cerrors.Is(err, cerrors.ErrCodeInvalidField) {
		t.Errorf("NewUser(\"\") error = %v, want INVALID_FIELD", err)
	}
	if _, err := NewUser("Pashtet", "nope"); !cerrors.Is(err, cerrors.ErrCodeInvalidField) {
		t.Errorf("NewUser(bad email) error = %v, want INVALID_FIELD", err)
	}
	if _, err := NewComment(nil, "text"); !cerrors.Is(err, cerrors.ErrCodeMissingReference) {
		t.Errorf("NewComment(nil) error = %v, want MISSING_REFERENCE", err)
	}
	if _, err := NewDirector("Refn", "bio\x00"); !cerrors.Is(err, cerrors.ErrCodeInvalidField) {
		t.Errorf("NewDirector(bad biography) error = %v, want INVALID_FIELD", err)
	}
	if _, err := NewActor("Gosling", "\uFFFF"); !cerrors.Is(err, cerrors.ErrCodeInvalidField) {
		t.Errorf("NewActor(bad biography) error = %v, want INVALID_FIELD", err)
	}
	if _, err := NewComment(mustUser(t, "Pashtet"), "esc\x1b"); !cerrors.Is(err, cerrors.ErrCodeInvalidField) {
		t.Errorf("NewComment(bad text) error = %v, want INVALID_FIELD", err)
	}
	if _, err := New(""); err == nil {
		t.Error("New(\"\") should fail")
	}
}

func TestCinemaOrderAndDuplicates(t *testing.T) {
	c, err := New("Kinoteka")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	a, b := mustMovie(t, "A"), mustMovie(t, "B")
	c.AddMovie(b)
	c.AddMovie(a)
	c.AddMovie(b)

	got := c.Catalog()
	want := []string{"B", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("Catalog() len = %d, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Title != want[i] {
			t.Errorf("Catalog()[%d] = %q, want %q", i, m.Title, want[i])
		}
	}

	// Mutating the returned slice does not touch the cinema.
	got[0] = nil
	if c.Catalog()[0] == nil {
		t.Error("Catalog() should return a copy")
	}
}

func TestMovieChildrenOrder(t *testing.T) {
	m := mustMovie(t, "Drive")
	u1, u2 := mustUser(t, "one"), mustUser(t, "two")

	for _, name := range []string{"Ryan Gosling", "Carey Mulligan", "Ryan Gosling"} {
		a, err := NewActor(name, "")
		if err != nil {
			t.Fatalf("NewActor() error: %v", err)
		}
		m.AddActor(a)
	}
	u2.Comment(m, "first")
	u1.Comment(m, "second")

	actors := m.Actors()
	if len(actors) != 3 || actors[0].Name != "Ryan Gosling" || actors[1].Name != "Carey Mulligan" {
		t.Errorf("Actors() order wrong: %+v", actors)
	}

	comments := m.Comments()
	if len(comments) != 2 {
		t.Fatalf("Comments() len = %d, want 2", len(comments))
	}
	if comments[0].Author != u2 || comments[0].Text != "first" {
		t.Errorf("Comments()[0] = %+v, want two/first", comments[0])
	}
	if comments[1].Author != u1 || comments[1].Text != "second" {
		t.Errorf("Comments()[1] = %+v, want one/second", comments[1])
	}
}

func TestFavoritesDedup(t *testing.T) {
	u := mustUser(t, "Pashtet")
	drive := mustMovie(t, "Drive")

	if !u.AddToFavorites(drive) {
		t.Error("first AddToFavorites should report a change")
	}
	for i := 0; i < 3; i++ {
		if u.AddToFavorites(drive) {
			t.Error("repeated AddToFavorites should be a no-op")
		}
	}
	if n := u.Favorites().Len(); n != 1 {
		t.Errorf("Favorites().Len() = %d, want 1", n)
	}

	// Same title, different identity: both kept.
	remake := mustMovie(t, "Drive")
	if !u.AddToFavorites(remake) {
		t.Error("distinct movie with same title should be added")
	}
	if n := u.Favorites().Len(); n != 2 {
		t.Errorf("Favorites().Len() = %d, want 2", n)
	}

	if u.AddToFavorites(nil) {
		t.Error("AddToFavorites(nil) should be ignored")
	}
}

func TestWatchlistIndependentOfFavorites(t *testing.T) {
	u := mustUser(t, "Pashtet")
	m := mustMovie(t, "Drive")

	u.AddToFavorites(m)
	if !u.AddToWatchlist(m) {
		t.Error("watchlist should accept a movie already in favorites")
	}
	if !u.Watchlist().Contains(m) {
		t.Error("Watchlist().Contains() = false, want true")
	}
	if u.Watchlist().Contains(mustMovie(t, "Other")) {
		t.Error("Watchlist().Contains(other) = true, want false")
	}
}

func TestMovieListZeroValue(t *testing.T) {
	var l MovieList
	if l.Contains(mustMovie(t, "X")) {
		t.Error("zero MovieList should be empty")
	}
	if l.Len() != 0 || len(l.Movies()) != 0 {
		t.Error("zero MovieList should have no movies")
	}
}

func TestMovieListLiteralMovies(t *testing.T) {
	a := &Movie{MovieInfo: MovieInfo{Title: "A", Duration: 1}}
	b := &Movie{MovieInfo: MovieInfo{Title: "B", Duration: 1}}
	u := &User{Username: "Pashtet", Email: "pashtet@example.com"}

	if !u.AddToFavorites(a) || !u.AddToFavorites(b) {
		t.Fatal("AddToFavorites() should accept two distinct movies")
	}
	if u.AddToFavorites(a) {
		t.Error("AddToFavorites(a) twice should be a no-op")
	}
	if got := u.Favorites().Len(); got != 2 {
		t.Errorf("Favorites().Len() = %d, want 2", got)
	}
	if !u.Favorites().Contains(b) {
		t.Error("Favorites().Contains(b) = false, want true")
	}
	id := a.ID()
	if id == b.ID() {
		t.Error("literal movies should get distinct ids")
	}
	if a.ID() != id {
		t.Error("ID() should be stable")
	}
}

func TestUserIndexLiteralUsers(t *testing.T) {
	c, _ := New("Kinoteka")
	a := &User{Username: "a", Email: "a@example.com"}
	b := &User{Username: "b", Email: "b@example.com"}
	c.AddUser(a)
	c.AddUser(nil)

	idx := c.UserIndex()
	if idx[a.ID()] != a {
		t.Error("UserIndex() missing literal user")
	}
	if idx[b.ID()] != nil {
		t.Error("UserIndex() should not contain an unregistered user")
	}
}

func TestFindAndIndex(t *testing.T) {
	c, _ := New("Kinoteka")
	m := mustMovie(t, "Drive")
	u := mustUser(t, "Pashtet")
	c.AddMovie(m)
	c.AddUser(u)

	if got, ok := c.FindMovie("Drive"); !ok || got != m {
		t.Errorf("FindMovie(Drive) = %v, %v", got, ok)
	}
	if _, ok := c.FindMovie("Nope"); ok {
		t.Error("FindMovie(Nope) should miss")
	}
	if got, ok := c.FindUser("Pashtet"); !ok || got != u {
		t.Errorf("FindUser(Pashtet) = %v, %v", got, ok)
	}
	idx := c.UserIndex()
	if idx[u.ID()] != u {
		t.Error("UserIndex() missing user")
	}
	if m.ID() == mustMovie(t, "Drive").ID() {
		t.Error("movies should get distinct ids")
	}
}
