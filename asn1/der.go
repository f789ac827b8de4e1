package asn1

/*
der.go documents and centralizes the handful of points where the
Distinguished Encoding Rules tighten the Basic Encoding Rules
implemented in ber.go. Each tightening is applied at its natural site
in ber.go or codec.go by consulting Codec.rule; this file is where the
DER-only rules that don't have an obvious BER home live:

  - shortest-length-form enforcement on decode (ber.go, decodeTLV)
  - primitive-only encoding for BIT STRING, OCTET STRING, and every
    character-restricted string (codec.go, derPrimitiveOnlyDefault)
  - BIT STRING trailing-bits-must-be-zero (ber.go, decodeBitStringPayload,
    using BitString.TrailingBitsZero's corrected formula)
  - SET element canonical ordering on encode (ber.go, encodeChildren/
    lessCanonical)
  - GeneralizedTime/UTCTime restricted to UTC with seconds precision
    and no trailing-zero fractional digits (validateDERTime, below)

This separation mirrors the teacher library's der.go, which likewise
reads as a short list of deltas against ber.go rather than a
standalone codec.
*/

// validateDERTime enforces DER's restrictions on GeneralizedTime and
// UTCTime values (X.690 §11.7-§11.8): the timezone must be UTC ('Z'),
// seconds precision is mandatory, and a fractional-seconds component
// must be both non-empty and free of a trailing zero digit.
func validateDERTime(tv TimeValue) error {
	if tv.TimezoneFormat != TimezoneUTC {
		return encoderErrorf("DER time values must use the UTC 'Z' timezone designator")
	}
	if tv.DatetimeFormat < FormatSeconds {
		return encoderErrorf("DER time values must specify seconds")
	}
	if tv.DatetimeFormat == FormatFractions {
		if tv.Fraction == "" {
			return encoderErrorf("DER fractional seconds must not be empty")
		}
		if tv.Fraction[len(tv.Fraction)-1] == '0' {
			return encoderErrorf("DER fractional seconds must not have a trailing zero")
		}
	}
	return nil
}

// CanonicalizeSet returns a copy of a SET's children reordered the way
// (*Codec).Encode would order them under DER: grouped by tag class in
// UNIVERSAL, APPLICATION, CONTEXT, PRIVATE order, then compared by
// their full encoded TLV octets within a group. It is exposed so tests
// and callers can assert on canonical order without round-tripping
// through Encode.
func (c *Codec) CanonicalizeSet(children []Value) ([]Value, error) {
	pairs := make([]canonicalPair, len(children))
	for i, ch := range children {
		enc, err := c.Encode(ch)
		if err != nil {
			return nil, err
		}
		pairs[i] = canonicalPair{v: ch, enc: enc}
	}
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && lessCanonical(pairs[j].enc, pairs[j-1].enc); j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
	out := make([]Value, len(pairs))
	for i, p := range pairs {
		out[i] = p.v
	}
	return out, nil
}

type canonicalPair struct {
	v   Value
	enc []byte
}
