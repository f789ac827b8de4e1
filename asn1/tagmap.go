package asn1

/*
tagmap.go implements the tag map registry described in the package's
specification: a per-class table that resolves a non-universal
(class, tag number) pair to a universal type during decode. Unlike the
rest of this package, the registry has no direct analog in the teacher
library (which resolves everything through compile-time reflection over
Go struct tags rather than a runtime table); it is grounded directly on
the specification's own description of LDAP's APPLICATION-class usage
and on the tag-constant layout used by KilimcininKorOglu/oba's BER
package, adapted into an explicit, mutable table.
*/

// TagMap maps tag numbers within one TagClass to the universal type
// that tag number should be interpreted as.
type TagMap map[int]UniversalTag

// Clone returns a shallow copy of m (TagMap's values are not
// reference types, so a shallow copy is a full copy).
func (m TagMap) Clone() TagMap {
	if m == nil {
		return nil
	}
	out := make(TagMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// defaultApplicationTagMap is the APPLICATION-class table preloaded
// into every new Codec, matching LDAP's use of APPLICATION tags for
// its protocol operations (RFC 4511).
func defaultApplicationTagMap() TagMap {
	m := make(TagMap, 19)
	for _, n := range []int{0, 1, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 19, 23, 24, 25} {
		m[n] = TagSequence
	}
	m[2] = TagNull
	m[10] = TagOctetString
	m[16] = TagInteger
	return m
}

// TagMapRegistry holds the per-class overlay tables consulted during
// decode to interpret a non-universal tag. UNIVERSAL tags are implicit
// and never consulted through this registry.
type TagMapRegistry struct {
	application TagMap
	context     TagMap
	private     TagMap
}

// NewTagMapRegistry returns a registry preloaded with the default
// APPLICATION-class table; CONTEXT and PRIVATE start empty, per the
// specification.
func NewTagMapRegistry() *TagMapRegistry {
	return &TagMapRegistry{application: defaultApplicationTagMap()}
}

// Clone returns a deep copy of the receiver.
func (r *TagMapRegistry) Clone() *TagMapRegistry {
	return &TagMapRegistry{
		application: r.application.Clone(),
		context:     r.context.Clone(),
		private:     r.private.Clone(),
	}
}

// SetTypeMap replaces the mapping for a non-universal class. Passing
// ClassUniversal is a programmer error, since universal tags are
// resolved structurally and never consulted through this registry.
func (r *TagMapRegistry) SetTypeMap(class TagClass, m TagMap) error {
	switch class {
	case ClassApplication:
		r.application = m.Clone()
	case ClassContext:
		r.context = m.Clone()
	case ClassPrivate:
		r.private = m.Clone()
	default:
		return invalidArgumentf("SetTypeMap: tag map overlays apply only to non-universal classes")
	}
	return nil
}

// Resolve returns the universal type registered for (class, number),
// and whether one was found. UNIVERSAL-class lookups always report
// false: the universal type is the tag number itself and callers
// should not consult the registry for it.
func (r *TagMapRegistry) Resolve(class TagClass, number int) (UniversalTag, bool) {
	var m TagMap
	switch class {
	case ClassApplication:
		m = r.application
	case ClassContext:
		m = r.context
	case ClassPrivate:
		m = r.private
	default:
		return 0, false
	}
	t, ok := m[number]
	return t, ok
}
