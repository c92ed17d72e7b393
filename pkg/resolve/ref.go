package resolve

// Kind says how an entity is written at the point where it is referenced.
type Kind uint8

const (
	// Embedded writes the entity's full field set inline.
	Embedded Kind = iota + 1
	// Reference writes only the entity's identifying field.
	Reference
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Embedded:
		return "embedded"
	case Reference:
		return "reference"
	}
	return "unknown"
}

// Ref is a link from one resolved entity to another. It always carries the
// target's identifying key (title, username, name); embedded refs also carry
// the resolved record.
//
// The zero value is an invalid ref with Kind 0.
type Ref[T any] struct {
	kind   Kind
	key    string
	record *T
}

// Embed returns an embedded ref holding rec.
func Embed[T any](key string, rec T) Ref[T] {
	return Ref[T]{kind: Embedded, key: key, record: &rec}
}

// Refer returns a reference-by-key ref.
func Refer[T any](key string) Ref[T] {
	return Ref[T]{kind: Reference, key: key}
}

// Kind returns how the ref is written.
func (r Ref[T]) Kind() Kind { return r.kind }

// Key returns the target's identifying field.
func (r Ref[T]) Key() string { return r.key }

// Record returns the embedded record. ok is false for references.
func (r Ref[T]) Record() (rec T, ok bool) {
	if r.kind != Embedded || r.record == nil {
		return rec, false
	}
	return *r.record, true
}
