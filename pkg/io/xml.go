package io

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/matzehuels/cinegraph/pkg/cinema"
	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
	"github.com/matzehuels/cinegraph/pkg/resolve"
)

type xmlCinema struct {
	XMLName xml.Name   `xml:"Cinema"`
	Name    string     `xml:"name,attr"`
	Catalog xmlMovies  `xml:"Catalog"`
	Users   xmlUserSet `xml:"Users"`
}

// Element names inside wrappers come from each item's XMLName.

type xmlMovies struct {
	Items []any `xml:"Movie"`
}

type xmlUserSet struct {
	Items []any `xml:"User"`
}

type xmlPeople struct {
	Items []any `xml:"Actor"`
}

type xmlComments struct {
	Items []any `xml:"Comment"`
}

type xmlMovie struct {
	XMLName     xml.Name    `xml:"Movie"`
	Title       string      `xml:"title,attr"`
	Genre       string      `xml:"genre,attr"`
	Duration    int         `xml:"duration,attr"`
	ReleaseYear int         `xml:"release_year,attr"`
	Description string      `xml:"Description"`
	Director    any         `xml:"Director"`
	Actors      xmlPeople   `xml:"Actors"`
	Comments    xmlComments `xml:"Comments"`
}

// xmlMovieRef is a cross-reference: an empty Movie element with only the
// title attribute.
type xmlMovieRef struct {
	XMLName xml.Name `xml:"Movie"`
	Title   string   `xml:"title,attr"`
}

// xmlPerson is a Director or an Actor; XMLName is set per use.
type xmlPerson struct {
	XMLName   xml.Name
	Name      string `xml:"name,attr"`
	Biography string `xml:",chardata"`
}

type xmlComment struct {
	XMLName xml.Name `xml:"Comment"`
	User    string   `xml:"user,attr"`
	Text    string   `xml:",chardata"`
}

type xmlUser struct {
	XMLName      xml.Name  `xml:"User"`
	Username     string    `xml:"username,attr"`
	Email        string    `xml:"email,attr"`
	FavoriteList xmlMovies `xml:"FavoriteList"`
	Watchlist    xmlMovies `xml:"Watchlist"`
}

type xmlUserRef struct {
	XMLName  xml.Name `xml:"User"`
	Username string   `xml:"username,attr"`
}

// xmlRef writes an embedded ref with embed and a reference with ref.
func xmlRef[T any](r resolve.Ref[T], embed func(T) any, ref func(string) any) any {
	if rec, ok := r.Record(); ok {
		return embed(rec)
	}
	return ref(r.Key())
}

func xmlRefs[T any](refs []resolve.Ref[T], embed func(T) any, ref func(string) any) []any {
	return lo.Map(refs, func(r resolve.Ref[T], _ int) any { return xmlRef(r, embed, ref) })
}

func xmlPersonAs(element string) (func(resolve.Person) any, func(string) any) {
	name := xml.Name{Local: element}
	embed := func(p resolve.Person) any { return xmlPerson{XMLName: name, Name: p.Name, Biography: p.Biography} }
	ref := func(key string) any { return xmlPerson{XMLName: name, Name: key} }
	return embed, ref
}

var (
	xmlDirector, xmlDirectorRef = xmlPersonAs("Director")
	xmlActor, xmlActorRef       = xmlPersonAs("Actor")
)

func xmlFromMovie(m resolve.Movie) any {
	return xmlMovie{
		Title:       m.Title,
		Genre:       m.Genre,
		Duration:    m.Duration,
		ReleaseYear: m.ReleaseYear,
		Description: m.Description,
		Director:    xmlRef(m.Director, xmlDirector, xmlDirectorRef),
		Actors:      xmlPeople{Items: xmlRefs(m.Actors, xmlActor, xmlActorRef)},
		Comments:    xmlComments{Items: xmlRefs(m.Comments, xmlFromComment, xmlNoComment)},
	}
}

func xmlToMovieRef(title string) any { return xmlMovieRef{Title: title} }

// xmlFromComment always writes the author as an attribute; an attribute
// cannot hold an embedded user, so only the key is used.
func xmlFromComment(c resolve.Comment) any {
	return xmlComment{User: c.Author.Key(), Text: c.Text}
}

// Comments are always embedded; a referenced comment has no key to write.
func xmlNoComment(string) any { return xmlComment{} }

func xmlFromUser(u resolve.User) any {
	return xmlUser{
		Username:     u.Username,
		Email:        u.Email,
		FavoriteList: xmlMovies{Items: xmlRefs(u.Favorites, xmlFromMovie, xmlToMovieRef)},
		Watchlist:    xmlMovies{Items: xmlRefs(u.Watchlist, xmlFromMovie, xmlToMovieRef)},
	}
}

func xmlToUserRef(username string) any { return xmlUserRef{Username: username} }

// MarshalXML encodes an already resolved tree as an XML document with a
// UTF-8 declaration, two-space indentation and a trailing newline.
func MarshalXML(v *resolve.Cinema) ([]byte, error) {
	out := xmlCinema{
		Name:    v.Name,
		Catalog: xmlMovies{Items: xmlRefs(v.Catalog, xmlFromMovie, xmlToMovieRef)},
		Users:   xmlUserSet{Items: xmlRefs(v.Users, xmlFromUser, xmlToUserRef)},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "encode xml")
	}
	if err := enc.Close(); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "encode xml")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EncodeXML resolves c and returns its XML document. Failure modes match
// [EncodeJSON].
func EncodeXML(c *cinema.Cinema, opts ...resolve.Option) ([]byte, error) {
	v, err := resolve.Resolve(c, opts...)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return MarshalXML(v)
}

// WriteXML encodes c and writes the document to w. Nothing is written if
// encoding fails.
func WriteXML(c *cinema.Cinema, w io.Writer, opts ...resolve.Option) error {
	data, err := EncodeXML(c, opts...)
	if err != nil {
		return err
	}
	return write(w, data)
}

// ExportXML writes the XML document for c to a file at path.
func ExportXML(c *cinema.Cinema, path string, opts ...resolve.Option) error {
	data, err := EncodeXML(c, opts...)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}
