package asn1

/*
oid.go implements the ASN.1 OBJECT IDENTIFIER (tag 6) and RELATIVE-OID
(tag 13) payloads: dotted-decimal parsing/formatting and the arc
validity rules from the data model. Wire encoding of the base-128 arcs
lives in ber.go, since it is shared by both tag numbers and differs only
in whether the first two arcs are merged (see PERT.4.2.3 in the
specification).
*/

import (
	"math/big"
	"strconv"
	"strings"
)

// ObjectIdentifier is a sequence of non-negative integer arcs. It
// backs both KindOID and KindRelativeOID; Value.Kind distinguishes an
// OBJECT IDENTIFIER (at least two arcs, first arc in {0,1,2}, and when
// the first arc is 0 or 1 the second arc no greater than 39) from a
// RELATIVE-OID (no such constraints).
type ObjectIdentifier []*big.Int

// ParseOID parses a dotted-decimal string such as "1.3.6.1.4.1" into an
// ObjectIdentifier and validates it against the OBJECT IDENTIFIER arc
// rules: at least two arcs, first arc in {0,1,2}, and if the first arc
// is 0 or 1 the second arc must be at most 39.
func ParseOID(s string) (ObjectIdentifier, error) {
	oid, err := parseDottedArcs(s)
	if err != nil {
		return nil, err
	}
	if len(oid) < 2 {
		return nil, encoderErrorf("OBJECT IDENTIFIER: an OID must have two or more arcs")
	}
	first := oid[0]
	if first.Sign() < 0 || first.Cmp(big.NewInt(2)) > 0 {
		return nil, encoderErrorf("OBJECT IDENTIFIER: first arc must be 0, 1 or 2")
	}
	if first.Cmp(big.NewInt(2)) < 0 && oid[1].Cmp(big.NewInt(39)) > 0 {
		return nil, encoderErrorf("OBJECT IDENTIFIER: second arc must be <= 39 when first arc is 0 or 1")
	}
	return oid, nil
}

// ParseRelativeOID parses a dotted-decimal string into an
// ObjectIdentifier with RELATIVE-OID's single invariant: at least one
// arc.
func ParseRelativeOID(s string) (ObjectIdentifier, error) {
	oid, err := parseDottedArcs(s)
	if err != nil {
		return nil, err
	}
	if len(oid) < 1 {
		return nil, encoderErrorf("RELATIVE-OID: must have at least one arc")
	}
	return oid, nil
}

func parseDottedArcs(s string) (ObjectIdentifier, error) {
	if s == "" {
		return nil, encoderErrorf("OID: empty dotted string")
	}
	parts := strings.Split(s, ".")
	out := make(ObjectIdentifier, len(parts))
	for i, p := range parts {
		n, ok := new(big.Int).SetString(p, 10)
		if !ok || n.Sign() < 0 {
			return nil, encoderErrorf("OID: invalid arc %q at position %d", p, i)
		}
		out[i] = n
	}
	return out, nil
}

// NewOIDValue returns a KindOID Value for a validated OID.
func NewOIDValue(oid ObjectIdentifier) Value {
	return Value{Envelope: Envelope{Class: ClassUniversal, Number: int(TagOID)}, Kind: KindOID, OID: oid}
}

// NewRelativeOIDValue returns a KindRelativeOID Value.
func NewRelativeOIDValue(oid ObjectIdentifier) Value {
	return Value{Envelope: Envelope{Class: ClassUniversal, Number: int(TagRelativeOID)}, Kind: KindRelativeOID, OID: oid}
}

// String renders o as dotted decimal.
func (o ObjectIdentifier) String() string {
	parts := make([]string, len(o))
	for i, arc := range o {
		parts[i] = arc.String()
	}
	return strings.Join(parts, ".")
}

// Clone returns a deep copy of o.
func (o ObjectIdentifier) Clone() ObjectIdentifier {
	if o == nil {
		return nil
	}
	out := make(ObjectIdentifier, len(o))
	for i, arc := range o {
		out[i] = new(big.Int).Set(arc)
	}
	return out
}

// Equal reports whether o and other hold the same arcs.
func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i].Cmp(other[i]) != 0 {
			return false
		}
	}
	return true
}

// IntSlice returns the arcs as native ints, for callers confident none
// of them overflow a machine int. It panics if one does; use the Big
// arcs directly ([]*big.Int(o)) for unbounded arcs.
func (o ObjectIdentifier) IntSlice() []int {
	out := make([]int, len(o))
	for i, arc := range o {
		if !arc.IsInt64() {
			panic("asn1: OID arc exceeds int64 range")
		}
		n, err := strconv.Atoi(arc.String())
		if err != nil {
			panic(err)
		}
		out[i] = n
	}
	return out
}
