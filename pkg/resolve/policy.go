package resolve

// Edge names a relationship in the cinema graph.
type Edge int

const (
	EdgeCatalog   Edge = iota // Cinema -> Movie
	EdgeUser                  // Cinema -> User
	EdgeDirector              // Movie -> Director
	EdgeActor                 // Movie -> Actor
	EdgeComment               // Movie -> Comment
	EdgeAuthor                // Comment -> User
	EdgeFavorite              // User -> Movie (favorite list)
	EdgeWatchlist             // User -> Movie (watchlist)
)

var edgeNames = map[Edge]string{
	EdgeCatalog:   "catalog",
	EdgeUser:      "users",
	EdgeDirector:  "director",
	EdgeActor:     "actors",
	EdgeComment:   "comments",
	EdgeAuthor:    "author",
	EdgeFavorite:  "favorite_list",
	EdgeWatchlist: "watchlist",
}

// String returns the field name the edge is written under.
func (e Edge) String() string {
	if s, ok := edgeNames[e]; ok {
		return s
	}
	return "unknown"
}

// policy embeds along ownership edges and references along every other
// edge. Cross edges are what would otherwise close the cycle
// User -> favorites -> Movie -> comments -> User.
var policy = map[Edge]Kind{
	EdgeCatalog:   Embedded,
	EdgeUser:      Embedded,
	EdgeDirector:  Embedded,
	EdgeActor:     Embedded,
	EdgeComment:   Embedded,
	EdgeAuthor:    Reference,
	EdgeFavorite:  Reference,
	EdgeWatchlist: Reference,
}

// Policy returns how entities along e are written.
func Policy(e Edge) Kind { return policy[e] }

// Edges returns all edges in declaration order.
func Edges() []Edge {
	return []Edge{EdgeCatalog, EdgeUser, EdgeDirector, EdgeActor, EdgeComment, EdgeAuthor, EdgeFavorite, EdgeWatchlist}
}

// link builds the ref for one edge, calling build only when the edge embeds.
func link[T any](e Edge, key string, build func() T) Ref[T] {
	if Policy(e) == Embedded {
		return Embed(key, build())
	}
	return Refer[T](key)
}
