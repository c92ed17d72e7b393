// Package cinema holds the entity model: a [Cinema] with its catalog of
// [Movie]s and its [User]s, plus the cast and crew ([Director], [Actor]) and
// the [Comment]s users leave on movies.
//
// # Ownership
//
// A Cinema owns its movies and users. A Movie owns its actor list and its
// comment list; its director is attached by pointer and may be shared by
// several movies. A Comment points back at the User who wrote it without
// owning it, and a User's [MovieList]s (favorites and watchlist) point at
// movies without owning them.
//
// # Identity
//
// Movies and users get a surrogate [uuid.UUID] when they are constructed, or
// on the first call to ID for values built as struct literals. A
// MovieList uses that id to refuse duplicates in O(1), so two movies that
// happen to share a title are still distinct entries.
//
// # Construction
//
// Constructors validate their input and return an error carrying
// errors.ErrCodeInvalidField on bad shapes (empty title, non-positive
// duration, malformed email). Add operations never fail: everything except
// the favorite and watch lists appends unconditionally.
//
// The model is not safe for concurrent mutation. Callers must not mutate a
// graph while it is being encoded.
//
// [uuid.UUID]: https://pkg.go.dev/github.com/google/uuid#UUID
package cinema
