package catalog

import "github.com/matzehuels/cinegraph/pkg/cinema"

// Demo builds the reference scenario: one director, one movie with one
// actor, and two users who both comment on it, one of whom favorites it.
func Demo() *cinema.Cinema {
	c := must(cinema.New("Kinoteka"))

	refn := must(cinema.NewDirector("Nicolas Winding Refn",
		"Danish film director and screenwriter known for stylised neon-noir thrillers."))
	drive := must(cinema.NewMovie(cinema.MovieInfo{
		Title:       "Drive",
		Genre:       "Criminal",
		Duration:    100,
		Description: "A Hollywood stunt driver moonlights as a getaway driver and gets pulled into a heist gone wrong.",
		ReleaseYear: 2011,
	}, refn))
	drive.AddActor(must(cinema.NewActor("Ryan Gosling", "Canadian actor.")))
	c.AddMovie(drive)

	pashtet := must(cinema.NewUser("Pashtet", "pashtet@example.com"))
	nePashtet := must(cinema.NewUser("Ne Pashtet", "ne.pashtet@example.com"))
	c.AddUser(pashtet)
	c.AddUser(nePashtet)

	pashtet.AddToFavorites(drive)
	pashtet.Comment(drive, "Main character literally me")
	nePashtet.Comment(drive, "Boring")

	return c
}

// must panics on constructor errors; Demo's inputs are constants.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
