package asn1

/*
value.go contains the Value type: a closed tagged union over every
ASN.1 universal type this package supports, plus the Incomplete variant
used for tags the active TagMap cannot resolve. See tag.go for the
Kind-independent class/tag constants and bitstring.go, oid.go, string.go,
timeval.go for the per-variant payload types.
*/

import (
	"math/big"
)

// Kind discriminates the variant held by a Value. Only the field(s)
// documented for a given Kind are meaningful; the others are zero.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindInteger
	KindBitString
	KindOctetString
	KindNull
	KindOID
	KindRelativeOID
	KindSequence
	KindSet
	KindString
	KindTime
	KindIncomplete
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindBitString:
		return "BitString"
	case KindOctetString:
		return "OctetString"
	case KindNull:
		return "Null"
	case KindOID:
		return "OID"
	case KindRelativeOID:
		return "RelativeOID"
	case KindSequence:
		return "Sequence"
	case KindSet:
		return "Set"
	case KindString:
		return "String"
	case KindTime:
		return "Time"
	case KindIncomplete:
		return "Incomplete"
	}
	return "Unknown"
}

// Envelope holds the attributes every Value carries regardless of its
// Kind: the tag class, tag number, constructed flag, and (root values
// only) the bytes left over past the first complete TLV in a decode
// call.
type Envelope struct {
	Class       TagClass
	Number      int
	Constructed bool
	Trailing    []byte
}

// Value is the tagged union described by the package's data model: one
// ASN.1 value, its envelope, and the payload belonging to its Kind.
//
// For KindSequence and KindSet, Children is authoritative. For every
// other Kind, the single field documented under that Kind is
// authoritative; the others are left at their zero value.
type Value struct {
	Envelope
	Kind Kind

	Bool     bool             // KindBoolean
	Int      *big.Int         // KindInteger (also ENUMERATED payload; see EnumTag)
	EnumTag  bool             // true when Int represents ENUMERATED rather than INTEGER
	Bits     BitString        // KindBitString
	Octets   []byte           // KindOctetString, KindIncomplete
	OID      ObjectIdentifier // KindOID, KindRelativeOID
	Children []Value          // KindSequence, KindSet
	Str      StringValue      // KindString
	Time     TimeValue        // KindTime
}

// UniversalType returns the universal tag number that corresponds to
// the receiver's Kind (and, for Kind-polymorphic variants such as
// strings, times, and OID/RELATIVE-OID, to the sub-selector carried in
// its payload). KindIncomplete returns TagIncomplete.
func (v Value) UniversalType() UniversalTag {
	switch v.Kind {
	case KindBoolean:
		return TagBoolean
	case KindInteger:
		if v.EnumTag {
			return TagEnumerated
		}
		return TagInteger
	case KindBitString:
		return TagBitString
	case KindOctetString:
		return TagOctetString
	case KindNull:
		return TagNull
	case KindOID:
		return TagOID
	case KindRelativeOID:
		return TagRelativeOID
	case KindSequence:
		return TagSequence
	case KindSet:
		return TagSet
	case KindString:
		return v.Str.Descriptor.tag
	case KindTime:
		if v.Time.Generalized {
			return TagGeneralizedTime
		}
		return TagUTCTime
	default:
		return TagIncomplete
	}
}

// IsCharacterRestricted reports whether the receiver is a character
// string variant (KindString) whose descriptor marks it as
// character-restricted. It reports false for OCTET STRING and BIT
// STRING, which DER's primitive-only table also covers; see
// (*Codec).isPrimitiveOnly for the full DER set.
func (v Value) IsCharacterRestricted() bool {
	return v.Kind == KindString && isCharacterRestricted(v.Str.Descriptor.tag)
}

// NewBoolean returns a BOOLEAN Value.
func NewBoolean(b bool) Value {
	return Value{Envelope: Envelope{Class: ClassUniversal, Number: int(TagBoolean)}, Kind: KindBoolean, Bool: b}
}

// NewInteger returns an INTEGER Value wrapping n. n is not copied by
// reference into future mutations of the caller's *big.Int; callers
// that keep n around after this call should Clone the Value first if
// they intend to mutate n in place.
func NewInteger(n *big.Int) Value {
	return Value{Envelope: Envelope{Class: ClassUniversal, Number: int(TagInteger)}, Kind: KindInteger, Int: n}
}

// NewIntegerInt64 returns an INTEGER Value from a native int64.
func NewIntegerInt64(n int64) Value {
	return NewInteger(big.NewInt(n))
}

// NewEnumerated returns an ENUMERATED Value wrapping n.
func NewEnumerated(n *big.Int) Value {
	v := NewInteger(n)
	v.EnumTag = true
	v.Number = int(TagEnumerated)
	return v
}

// NewNull returns a NULL Value.
func NewNull() Value {
	return Value{Envelope: Envelope{Class: ClassUniversal, Number: int(TagNull)}, Kind: KindNull}
}

// NewOctetString returns an OCTET STRING Value over a copy of b.
func NewOctetString(b []byte) Value {
	return Value{
		Envelope: Envelope{Class: ClassUniversal, Number: int(TagOctetString)},
		Kind:     KindOctetString,
		Octets:   append([]byte(nil), b...),
	}
}

// NewSequence returns a SEQUENCE Value over children, in order.
func NewSequence(children ...Value) Value {
	return Value{
		Envelope: Envelope{Class: ClassUniversal, Number: int(TagSequence), Constructed: true},
		Kind:     KindSequence,
		Children: children,
	}
}

// NewSet returns a SET Value over children. Construction order is
// preserved as given; DER canonicalizes the order on encode (see
// der.go), it does not mutate the Value in place.
func NewSet(children ...Value) Value {
	return Value{
		Envelope: Envelope{Class: ClassUniversal, Number: int(TagSet), Constructed: true},
		Kind:     KindSet,
		Children: children,
	}
}

// NewIncomplete returns an Incomplete Value: raw payload bytes captured
// during decode of a tag the active TagMap could not resolve to a
// universal type. class, number and constructed preserve the original
// tag exactly as seen on the wire. Use Complete to resolve it later.
func NewIncomplete(class TagClass, number int, constructed bool, payload []byte) Value {
	return Value{
		Envelope: Envelope{Class: class, Number: number, Constructed: constructed},
		Kind:     KindIncomplete,
		Octets:   append([]byte(nil), payload...),
	}
}

// WithTag overrides the receiver's tag class and number, returning the
// modified copy. This is how callers produce implicitly-tagged or
// application-class values: construct the value as its native
// universal type, then override the envelope.
func (v Value) WithTag(class TagClass, number int) Value {
	v.Class = class
	v.Number = number
	return v
}

// WithConstructed overrides the receiver's constructed flag, returning
// the modified copy.
func (v Value) WithConstructed(constructed bool) Value {
	v.Constructed = constructed
	return v
}

// Clone returns a deep copy of the receiver, including all descendant
// Children, so that callers may decode a tree, mutate the copy, and
// re-encode without aliasing the original.
func (v Value) Clone() Value {
	out := v
	out.Trailing = append([]byte(nil), v.Trailing...)
	out.Octets = append([]byte(nil), v.Octets...)
	if v.Int != nil {
		out.Int = new(big.Int).Set(v.Int)
	}
	out.Bits = v.Bits.Clone()
	out.OID = v.OID.Clone()
	if v.Children != nil {
		out.Children = make([]Value, len(v.Children))
		for i, c := range v.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Equal reports whether v and other describe the same ASN.1 value: same
// envelope (excluding Trailing, which only the decode root carries) and
// same payload, recursively for Children.
func (v Value) Equal(other Value) bool {
	if v.Class != other.Class || v.Number != other.Number ||
		v.Constructed != other.Constructed || v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindBoolean:
		return v.Bool == other.Bool
	case KindInteger:
		if v.EnumTag != other.EnumTag {
			return false
		}
		return bigIntEqual(v.Int, other.Int)
	case KindBitString:
		return v.Bits.Equal(other.Bits)
	case KindOctetString, KindIncomplete:
		return bytesEqual(v.Octets, other.Octets)
	case KindNull:
		return true
	case KindOID, KindRelativeOID:
		return v.OID.Equal(other.OID)
	case KindSequence, KindSet:
		if len(v.Children) != len(other.Children) {
			return false
		}
		for i := range v.Children {
			if !v.Children[i].Equal(other.Children[i]) {
				return false
			}
		}
		return true
	case KindString:
		return v.Str.Descriptor.tag == other.Str.Descriptor.tag && v.Str.Text == other.Str.Text
	case KindTime:
		return v.Time.Equal(other.Time)
	}
	return false
}

func bigIntEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
