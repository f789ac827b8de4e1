package asn1

/*
ber.go implements the Basic Encoding Rules codec: Codec.Encode and
Codec.Decode, and the per-type payload encode/decode helpers they
dispatch to. der.go layers DER's extra canonicalization and validation
on top by checking c.rule at the handful of points the specification
calls out; everything else in this file applies identically to both
encoding rules.

The tag/length parsing contracts (short/long/high-tag-number forms,
the PartialPDU-vs-EncoderError distinction between a root and a nested
decode) are grounded on the teacher library's pdu.go/pkt.go/tlv.go; the
two's-complement INTEGER and OID base-128 algorithms are adapted from
int.go and oid.go respectively, generalized to arbitrary precision via
math/big as directed by the specification's design notes.
*/

import (
	"math/big"
	"sort"
)

// alwaysPrimitiveOnly lists the universal types the BER decode
// contract never permits to be constructed, regardless of Codec
// configuration.
var alwaysPrimitiveOnly = map[UniversalTag]bool{
	TagBoolean:     true,
	TagInteger:     true,
	TagEnumerated:  true,
	TagNull:        true,
	TagOID:         true,
	TagRelativeOID: true,
	TagReal:        true,
}

func mustBePrimitive(c *Codec, t UniversalTag) bool {
	return alwaysPrimitiveOnly[t] || c.isPrimitiveOnly(t)
}

// Encode renders v to its BER or DER wire form, depending on the
// Codec's configured rule.
func (c *Codec) Encode(v Value) ([]byte, error) {
	payload, constructed, err := c.encodePayload(v)
	if err != nil {
		c.logger.Error("encode failed", err, "kind", v.Kind.String())
		return nil, err
	}

	var dst []byte
	encodeIdentifier(&dst, v.Class, v.Number, constructed)
	encodeLength(&dst, len(payload))
	dst = append(dst, payload...)

	c.logger.Trace("encoded TLV", "kind", v.Kind.String(), "class", v.Class.String(),
		"number", v.Number, "constructed", constructed, "length", len(payload))
	return dst, nil
}

func (c *Codec) encodePayload(v Value) (payload []byte, constructed bool, err error) {
	universal := v.UniversalType()

	if v.Constructed && mustBePrimitive(c, universal) {
		return nil, false, encoderErrorf("%s must not be constructed", universal)
	}

	switch v.Kind {
	case KindBoolean:
		b := byte(0x00)
		if v.Bool {
			b = 0xFF
		}
		return []byte{b}, false, nil

	case KindInteger:
		n := v.Int
		if n == nil {
			n = big.NewInt(0)
		}
		return encodeIntegerContent(n), false, nil

	case KindNull:
		return nil, false, nil

	case KindOID:
		if len(v.OID) < 2 {
			return nil, false, encoderErrorf("OBJECT IDENTIFIER: an OID must have two or more arcs")
		}
		p, err := encodeOIDContent(v.OID, false)
		return p, false, err

	case KindRelativeOID:
		if len(v.OID) < 1 {
			return nil, false, encoderErrorf("RELATIVE-OID: must have at least one arc")
		}
		p, err := encodeOIDContent(v.OID, true)
		return p, false, err

	case KindBitString:
		return c.encodeBitString(v)

	case KindOctetString:
		return c.encodeOctetString(v)

	case KindString:
		return c.encodeStringValue(v)

	case KindSequence, KindSet:
		return c.encodeChildren(v)

	case KindTime:
		if err := c.validateTimeForEncode(v.Time); err != nil {
			return nil, false, err
		}
		return []byte(v.Time.Format()), false, nil

	case KindIncomplete:
		return append([]byte(nil), v.Octets...), v.Constructed, nil
	}

	return nil, false, encoderErrorf("unsupported value kind %v", v.Kind)
}

func (c *Codec) encodeBitString(v Value) ([]byte, bool, error) {
	if v.Constructed {
		return c.encodeChildren(v)
	}
	bs := v.Bits
	unused := bs.UnusedBits()
	body := make([]byte, 1+len(bs.Bytes))
	body[0] = byte(unused)
	copy(body[1:], bs.Bytes)
	if len(bs.Bytes) == 0 {
		body = []byte{0x00}
		unused = 0
	}
	if unused > 0 {
		mask := byte(1<<uint(unused) - 1)
		idx := len(body) - 1
		body[idx] &^= mask
		if c.bitstringPadding == '1' {
			body[idx] |= mask
		}
	}
	return body, false, nil
}

func (c *Codec) encodeOctetString(v Value) ([]byte, bool, error) {
	if v.Constructed {
		return c.encodeChildren(v)
	}
	return append([]byte(nil), v.Octets...), false, nil
}

func (c *Codec) encodeStringValue(v Value) ([]byte, bool, error) {
	if v.Constructed {
		return c.encodeChildren(v)
	}
	return []byte(v.Str.Text), false, nil
}

func (c *Codec) encodeChildren(v Value) ([]byte, bool, error) {
	children := v.Children

	if v.Kind == KindSet && c.rule == DER {
		encoded := make([][]byte, len(children))
		for i, ch := range children {
			b, err := c.Encode(ch)
			if err != nil {
				return nil, false, err
			}
			encoded[i] = b
		}
		sort.SliceStable(encoded, func(i, j int) bool {
			return lessCanonical(encoded[i], encoded[j])
		})
		var buf []byte
		for _, b := range encoded {
			buf = append(buf, b...)
		}
		return buf, true, nil
	}

	var buf []byte
	for _, ch := range children {
		b, err := c.Encode(ch)
		if err != nil {
			return nil, false, err
		}
		buf = append(buf, b...)
	}
	return buf, true, nil
}

// lessCanonical orders two already-encoded TLVs for DER SET
// canonicalization: group by tag class in UNIVERSAL, APPLICATION,
// CONTEXT, PRIVATE order, then compare the full encoded octet
// sequence lexicographically, the shorter operand implicitly
// zero-padded. See der.go for the rationale (this supersedes sorting
// by tag number alone, per the specification's REDESIGN FLAGS).
func lessCanonical(a, b []byte) bool {
	ca, cb := classOrderOf(a), classOrderOf(b)
	if ca != cb {
		return ca < cb
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func classOrderOf(tlv []byte) int {
	if len(tlv) == 0 {
		return 0
	}
	switch TagClass(tlv[0] & 0xC0) {
	case ClassUniversal:
		return 0
	case ClassApplication:
		return 1
	case ClassContext:
		return 2
	case ClassPrivate:
		return 3
	}
	return 4
}

// Decode reads exactly one TLV from the front of data and returns it
// with any remaining bytes attached as Trailing.
func (c *Codec) Decode(data []byte) (Value, error) {
	if len(data) == 0 {
		return Value{}, invalidArgumentf("decode: empty input")
	}
	if len(data) == 1 {
		return Value{}, partialPDUf("input too short to contain a tag and length")
	}

	v, consumed, err := c.decodeTLV(data, true)
	if err != nil {
		c.logger.Error("decode failed", err)
		return Value{}, err
	}
	v.Trailing = append([]byte(nil), data[consumed:]...)

	c.logger.Trace("decoded TLV", "kind", v.Kind.String(), "consumed", consumed, "trailing", len(v.Trailing))
	return v, nil
}

func shortfall(root bool, format string, args ...any) error {
	if root {
		return partialPDUf(format, args...)
	}
	return encoderErrorf(format, args...)
}

func (c *Codec) decodeTLV(data []byte, root bool) (Value, int, error) {
	class, constructed, number, idLen, truncated, err := parseIdentifier(data)
	if err != nil {
		if truncated {
			return Value{}, 0, shortfall(root, "high-tag-number form has no terminating byte")
		}
		return Value{}, 0, err
	}

	length, lenLen, needMore, err := parseLength(data[idLen:])
	if err != nil {
		return Value{}, 0, err
	}
	if needMore {
		return Value{}, 0, shortfall(root, "Not enough data to decode the length")
	}
	if length == -1 {
		return Value{}, 0, encoderErrorf("Indefinite length encoding is not supported")
	}
	if c.rule == DER && lenLen > 1 && length < 128 {
		return Value{}, 0, encoderErrorf("DER must be encoded using the shortest possible length form")
	}

	headerLen := idLen + lenLen
	end := headerLen + length
	if end > len(data) {
		return Value{}, 0, shortfall(root, "not enough data to decode the value")
	}

	payload := data[headerLen:end]

	v := Value{Envelope: Envelope{Class: class, Number: number, Constructed: constructed}}

	universal, resolved := c.resolveUniversal(class, number)
	if class != ClassUniversal && !resolved {
		v.Kind = KindIncomplete
		v.Octets = append([]byte(nil), payload...)
		return v, end, nil
	}

	if err := c.decodePayload(&v, universal, constructed, payload); err != nil {
		return Value{}, 0, err
	}
	return v, end, nil
}

func (c *Codec) resolveUniversal(class TagClass, number int) (UniversalTag, bool) {
	if class == ClassUniversal {
		return UniversalTag(number), true
	}
	return c.tagMaps.Resolve(class, number)
}

func (c *Codec) decodePayload(v *Value, universal UniversalTag, constructed bool, payload []byte) error {
	if constructed && mustBePrimitive(c, universal) {
		return encoderErrorf("%s must not be constructed", universal)
	}

	switch universal {
	case TagBoolean:
		if len(payload) == 0 {
			return encoderErrorf("BOOLEAN: zero-length value")
		}
		if len(payload) > 1 {
			return encoderErrorf("BOOLEAN: length must be 1, got %d", len(payload))
		}
		v.Kind = KindBoolean
		v.Bool = payload[0] != 0x00
		return nil

	case TagInteger, TagEnumerated:
		if len(payload) == 0 {
			return encoderErrorf("%s: zero-length value", universal)
		}
		v.Kind = KindInteger
		v.EnumTag = universal == TagEnumerated
		v.Int = decodeIntegerContent(payload)
		return nil

	case TagNull:
		if len(payload) > 0 {
			return encoderErrorf("NULL: content length must be 0, got %d", len(payload))
		}
		v.Kind = KindNull
		return nil

	case TagOID, TagRelativeOID:
		if len(payload) == 0 {
			return encoderErrorf("%s: zero-length value", universal)
		}
		oid, err := decodeOIDContent(payload, universal == TagRelativeOID)
		if err != nil {
			return err
		}
		if universal == TagOID {
			v.Kind = KindOID
		} else {
			v.Kind = KindRelativeOID
		}
		v.OID = oid
		return nil

	case TagBitString:
		return c.decodeBitStringPayload(v, constructed, payload)

	case TagOctetString:
		return c.decodeOctetStringPayload(v, constructed, payload)

	case TagSequence, TagSet:
		if !constructed {
			return encoderErrorf("%s must be constructed", universal)
		}
		children, err := c.decodeChildrenOf(payload)
		if err != nil {
			return err
		}
		if universal == TagSequence {
			v.Kind = KindSequence
		} else {
			v.Kind = KindSet
		}
		v.Children = children
		return nil

	case TagUTCTime, TagGeneralizedTime:
		return c.decodeTimePayload(v, universal, constructed, payload)

	default:
		if d, ok := stringDescriptors[universal]; ok {
			return c.decodeStringPayload(v, d, constructed, payload)
		}
	}

	v.Kind = KindIncomplete
	v.Octets = append([]byte(nil), payload...)
	return nil
}

func (c *Codec) decodeChildrenOf(payload []byte) ([]Value, error) {
	var children []Value
	offset := 0
	for offset < len(payload) {
		child, consumed, err := c.decodeTLV(payload[offset:], false)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		offset += consumed
	}
	return children, nil
}

func (c *Codec) decodeOctetStringPayload(v *Value, constructed bool, payload []byte) error {
	v.Kind = KindOctetString
	if !constructed {
		v.Octets = append([]byte(nil), payload...)
		return nil
	}
	combined, err := decodePrimitiveChunks(c, payload)
	if err != nil {
		return err
	}
	v.Octets = combined
	return nil
}

func (c *Codec) decodeStringPayload(v *Value, d stringDescriptor, constructed bool, payload []byte) error {
	v.Kind = KindString
	if !constructed {
		v.Str = StringValue{Descriptor: d, Text: string(payload)}
		return nil
	}
	combined, err := decodePrimitiveChunks(c, payload)
	if err != nil {
		return err
	}
	v.Str = StringValue{Descriptor: d, Text: string(combined)}
	return nil
}

// decodePrimitiveChunks implements BER's allowance for a primitive
// value decomposed into a constructed sequence of primitive chunks
// (X.690 §8.7.3/§8.23.6 for OCTET STRING and character strings): the
// content octets of each chunk, concatenated in order. Nested
// constructed chunks are flattened recursively.
func decodePrimitiveChunks(c *Codec, payload []byte) ([]byte, error) {
	var combined []byte
	offset := 0
	for offset < len(payload) {
		class, constructed, number, idLen, truncated, err := parseIdentifier(payload[offset:])
		if err != nil {
			if truncated {
				return nil, encoderErrorf("high-tag-number form has no terminating byte")
			}
			return nil, err
		}
		_ = class
		_ = number
		length, lenLen, needMore, err := parseLength(payload[offset+idLen:])
		if err != nil {
			return nil, err
		}
		if needMore {
			return nil, encoderErrorf("not enough data to decode the length")
		}
		if length == -1 {
			return nil, encoderErrorf("indefinite length encoding is not supported")
		}
		headerLen := idLen + lenLen
		end := offset + headerLen + length
		if end > len(payload) {
			return nil, encoderErrorf("not enough data to decode the value")
		}
		chunk := payload[offset+headerLen : end]
		if constructed {
			sub, err := decodePrimitiveChunks(c, chunk)
			if err != nil {
				return nil, err
			}
			combined = append(combined, sub...)
		} else {
			combined = append(combined, chunk...)
		}
		offset = end
	}
	return combined, nil
}

func (c *Codec) decodeBitStringPayload(v *Value, constructed bool, payload []byte) error {
	v.Kind = KindBitString
	if !constructed {
		if len(payload) == 0 {
			return encoderErrorf("BIT STRING: zero-length value")
		}
		unused := int(payload[0])
		if unused > 7 {
			return encoderErrorf("BIT STRING: unused-bit count must be 0-7, got %d", unused)
		}
		bytesOut := append([]byte(nil), payload[1:]...)
		if len(bytesOut) == 0 && unused != 0 {
			return encoderErrorf("BIT STRING: empty string must declare 0 unused bits")
		}
		bitLen := len(bytesOut)*8 - unused
		bs := BitString{Bytes: bytesOut, BitLength: bitLen}
		if c.rule == DER && unused > 0 && !bs.TrailingBitsZero() {
			return encoderErrorf("The last %d unused bits of the bit string must be 0", unused)
		}
		v.Bits = bs
		return nil
	}

	bs, err := decodeConstructedBitString(payload)
	if err != nil {
		return err
	}
	if c.rule == DER && bs.UnusedBits() > 0 && !bs.TrailingBitsZero() {
		return encoderErrorf("The last %d unused bits of the bit string must be 0", bs.UnusedBits())
	}
	v.Bits = bs
	return nil
}

func decodeConstructedBitString(payload []byte) (BitString, error) {
	var allBytes []byte
	unused := 0
	offset := 0
	for offset < len(payload) {
		_, constructed, _, idLen, truncated, err := parseIdentifier(payload[offset:])
		if err != nil {
			if truncated {
				return BitString{}, encoderErrorf("high-tag-number form has no terminating byte")
			}
			return BitString{}, err
		}
		length, lenLen, needMore, err := parseLength(payload[offset+idLen:])
		if err != nil {
			return BitString{}, err
		}
		if needMore {
			return BitString{}, encoderErrorf("not enough data to decode the length")
		}
		if length == -1 {
			return BitString{}, encoderErrorf("indefinite length encoding is not supported")
		}
		headerLen := idLen + lenLen
		end := offset + headerLen + length
		if end > len(payload) {
			return BitString{}, encoderErrorf("not enough data to decode the value")
		}
		chunk := payload[offset+headerLen : end]
		if constructed {
			sub, err := decodeConstructedBitString(chunk)
			if err != nil {
				return BitString{}, err
			}
			allBytes = append(allBytes, sub.Bytes...)
			unused = sub.UnusedBits()
		} else {
			if len(chunk) == 0 {
				return BitString{}, encoderErrorf("BIT STRING: zero-length chunk")
			}
			allBytes = append(allBytes, chunk[1:]...)
			unused = int(chunk[0])
		}
		offset = end
	}
	return BitString{Bytes: allBytes, BitLength: len(allBytes)*8 - unused}, nil
}

func (c *Codec) decodeTimePayload(v *Value, universal UniversalTag, constructed bool, payload []byte) error {
	if len(payload) == 0 {
		return encoderErrorf("%s: zero-length value", universal)
	}
	var tv TimeValue
	var err error
	if universal == TagGeneralizedTime {
		tv, err = ParseGeneralizedTime(string(payload))
	} else {
		tv, err = ParseUTCTime(string(payload))
	}
	if err != nil {
		return err
	}
	if c.rule == DER {
		if err := validateDERTime(tv); err != nil {
			return err
		}
	}
	v.Kind = KindTime
	v.Time = tv
	return nil
}

func (c *Codec) validateTimeForEncode(tv TimeValue) error {
	if c.rule == DER {
		return validateDERTime(tv)
	}
	return nil
}

// encodeIntegerContent returns the minimal two's-complement big-endian
// encoding of n, looping over candidate widths rather than special-
// casing boundary values such as -128 (see the design notes on
// INTEGER width in the specification).
func encodeIntegerContent(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	if n.Sign() > 0 {
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}

	w := 1
	for {
		lower := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(8*w-1)))
		upper := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(8*w-1)), big.NewInt(1))
		if n.Cmp(lower) >= 0 && n.Cmp(upper) <= 0 {
			break
		}
		w++
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*w))
	twos := new(big.Int).Add(n, mod)
	b := twos.Bytes()
	for len(b) < w {
		b = append([]byte{0x00}, b...)
	}
	return b[len(b)-w:]
}

// decodeIntegerContent interprets encoded as a minimal two's-complement
// big-endian integer.
func decodeIntegerContent(encoded []byte) *big.Int {
	n := new(big.Int).SetBytes(encoded)
	if len(encoded) > 0 && encoded[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(encoded)))
		n.Sub(n, mod)
	}
	return n
}

var (
	big40    = big.NewInt(40)
	big80    = big.NewInt(80)
	bigTwo   = big.NewInt(2)
	bigSeven = uint(7)
)

// encodeOIDContent encodes an OBJECT IDENTIFIER (relative=false) or
// RELATIVE-OID (relative=true) arc sequence per X.690 §8.19/§8.20: for
// an absolute OID the first two arcs are merged into one base-128
// value (40*arc0+arc1); every other arc, and every RELATIVE-OID arc,
// is base-128 encoded independently.
func encodeOIDContent(oid ObjectIdentifier, relative bool) ([]byte, error) {
	var buf []byte
	arcs := oid
	if !relative {
		merged := new(big.Int).Mul(oid[0], big40)
		merged.Add(merged, oid[1])
		buf = append(buf, encodeBase128Big(merged)...)
		arcs = oid[2:]
	}
	for _, arc := range arcs {
		buf = append(buf, encodeBase128Big(arc)...)
	}
	return buf, nil
}

func decodeOIDContent(data []byte, relative bool) (ObjectIdentifier, error) {
	var arcs ObjectIdentifier
	offset := 0

	if !relative {
		merged, consumed, err := readBase128Big(data)
		if err != nil {
			return nil, err
		}
		offset = consumed

		var arc0, arc1 *big.Int
		if merged.Cmp(big80) < 0 {
			q, r := new(big.Int), new(big.Int)
			q.QuoRem(merged, big40, r)
			arc0, arc1 = q, r
		} else {
			arc0 = new(big.Int).Set(bigTwo)
			arc1 = new(big.Int).Sub(merged, big80)
		}
		arcs = append(arcs, arc0, arc1)
	}

	for offset < len(data) {
		n, consumed, err := readBase128Big(data[offset:])
		if err != nil {
			return nil, err
		}
		arcs = append(arcs, n)
		offset += consumed
	}
	return arcs, nil
}

func encodeBase128Big(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	v := new(big.Int).Set(n)
	mask := big.NewInt(0x7F)
	var tmp []byte
	for v.Sign() > 0 {
		chunk := new(big.Int).And(v, mask)
		tmp = append(tmp, byte(chunk.Int64()))
		v.Rsh(v, bigSeven)
	}
	out := make([]byte, len(tmp))
	last := len(tmp) - 1
	for i, b := range tmp {
		rev := last - i
		if rev != last {
			b |= 0x80
		}
		out[rev] = b
	}
	return out
}

func readBase128Big(data []byte) (*big.Int, int, error) {
	n := big.NewInt(0)
	i := 0
	for {
		if i >= len(data) {
			return nil, 0, encoderErrorf("truncated base-128 integer")
		}
		b := data[i]
		n.Lsh(n, bigSeven)
		n.Or(n, big.NewInt(int64(b&0x7F)))
		i++
		if b&0x80 == 0 {
			return n, i, nil
		}
	}
}
