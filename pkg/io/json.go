package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/matzehuels/cinegraph/pkg/cinema"
	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
	"github.com/matzehuels/cinegraph/pkg/resolve"
)

// Field order in these structs is the key order of the output.

type jsonCinema struct {
	Name    string `json:"name"`
	Catalog []any  `json:"catalog"`
	Users   []any  `json:"users"`
}

type jsonMovie struct {
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	Director    any    `json:"director"`
	Actors      []any  `json:"actors"`
	Comments    []any  `json:"comments"`
}

type jsonPerson struct {
	Name      string `json:"name"`
	Biography string `json:"biography"`
}

type jsonComment struct {
	User any    `json:"user"`
	Text string `json:"text"`
}

type jsonUser struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FavoriteList []any  `json:"favorite_list"`
	Watchlist    []any  `json:"watchlist"`
}

// jsonRef writes an embedded ref as its record and a reference as its key.
func jsonRef[T any](r resolve.Ref[T], embed func(T) any) any {
	if rec, ok := r.Record(); ok {
		return embed(rec)
	}
	return r.Key()
}

func jsonRefs[T any](refs []resolve.Ref[T], embed func(T) any) []any {
	return lo.Map(refs, func(r resolve.Ref[T], _ int) any { return jsonRef(r, embed) })
}

func jsonFromMovie(m resolve.Movie) any {
	return jsonMovie{
		Title:       m.Title,
		Genre:       m.Genre,
		Duration:    m.Duration,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Director:    jsonRef(m.Director, jsonFromPerson),
		Actors:      jsonRefs(m.Actors, jsonFromPerson),
		Comments:    jsonRefs(m.Comments, jsonFromComment),
	}
}

func jsonFromPerson(p resolve.Person) any {
	return jsonPerson{Name: p.Name, Biography: p.Biography}
}

func jsonFromComment(c resolve.Comment) any {
	return jsonComment{User: jsonRef(c.Author, jsonFromUser), Text: c.Text}
}

func jsonFromUser(u resolve.User) any {
	return jsonUser{
		Username:     u.Username,
		Email:        u.Email,
		FavoriteList: jsonRefs(u.Favorites, jsonFromMovie),
		Watchlist:    jsonRefs(u.Watchlist, jsonFromMovie),
	}
}

// MarshalJSON encodes an already resolved tree. Output is indented with two
// spaces, does not escape HTML characters and ends with a newline.
func MarshalJSON(v *resolve.Cinema) ([]byte, error) {
	out := jsonCinema{
		Name:    v.Name,
		Catalog: jsonRefs(v.Catalog, jsonFromMovie),
		Users:   jsonRefs(v.Users, jsonFromUser),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "encode json")
	}
	return buf.Bytes(), nil
}

// EncodeJSON resolves c and returns its JSON document. It fails with
// errors.ErrCodeMissingReference when a movie has no director (or a comment
// has no author) and with errors.ErrCodeInvalidField when a field violates
// its format constraint.
func EncodeJSON(c *cinema.Cinema, opts ...resolve.Option) ([]byte, error) {
	v, err := resolve.Resolve(c, opts...)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return MarshalJSON(v)
}

// WriteJSON encodes c and writes the document to w. Nothing is written if
// encoding fails.
func WriteJSON(c *cinema.Cinema, w io.Writer, opts ...resolve.Option) error {
	data, err := EncodeJSON(c, opts...)
	if err != nil {
		return err
	}
	return write(w, data)
}

// ExportJSON writes the JSON document for c to a file at path.
// This is a convenience wrapper around [EncodeJSON] and [WriteFile].
func ExportJSON(c *cinema.Cinema, path string, opts ...resolve.Option) error {
	data, err := EncodeJSON(c, opts...)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}
