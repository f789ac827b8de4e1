package asn1

/*
header.go parses and emits the identifier and length octets of a TLV
header: short/long/high-tag-number forms for the tag, and short/long
form for the length. The algorithms are grounded on the teacher
library's parseClassIdentifier/parseCompoundIdentifier/parseTagIdentifier/
parseLength (pdu.go/pkt.go), adapted to return the root/nested-sensitive
error distinction this package's Decode contract requires instead of a
single undifferentiated error type.
*/

type header struct {
	class       TagClass
	constructed bool
	number      int
	idLen       int
	length      int // -1 means indefinite
	lenLen      int
}

// errTruncatedTag is returned by parseIdentifier together with its
// truncated flag, so that the caller (decodeTLV) can decide, based on
// whether it is decoding the root element, whether to surface a
// PartialPDUError or an EncoderError.
var (
	errTruncatedTag = encoderErrorf("truncated high-tag-number form")
)

func parseIdentifier(b []byte) (class TagClass, constructed bool, number int, idLen int, truncated bool, err error) {
	if len(b) == 0 {
		return 0, false, 0, 0, false, invalidArgumentf("empty input")
	}

	class = TagClass(b[0] & 0xC0)
	constructed = b[0]&constructedBit != 0
	number = int(b[0] & highTagMask)
	idLen = 1

	if number != 0x1F {
		return class, constructed, number, idLen, false, nil
	}

	// High-tag-number form: base-128 continuation, MSB of each octet
	// signals "more bytes follow".
	number = 0
	for i := 1; i < len(b); i++ {
		idLen++
		ch := b[i]
		number = (number << 7) | int(ch&0x7F)
		if ch&0x80 == 0 {
			return class, constructed, number, idLen, false, nil
		}
		if i == 4 { // 5 octets max => 28 usable bits
			return 0, false, 0, 0, false, encoderErrorf("tag too large")
		}
	}
	// Ran off the end of the buffer with the continuation bit still set.
	return 0, false, 0, 0, true, errTruncatedTag
}

// parseLength reads the length octets starting at b[0]. It returns
// length == -1 for the indefinite form (0x80); callers reject that
// unconditionally per the BER decode contract. needMore is set when b
// does not contain enough bytes to even read the declared long-form
// length octets.
func parseLength(b []byte) (length int, lenLen int, needMore bool, err error) {
	if len(b) == 0 {
		return 0, 0, true, nil
	}

	first := b[0]
	lenLen = 1

	if first&0x80 == 0 {
		length = int(first)
		return length, lenLen, false, nil
	}

	n := int(first & 0x7F)
	if n == 0 {
		return -1, 1, false, nil // indefinite
	}
	if n == 0x7F {
		return 0, 0, false, encoderErrorf("reserved length form (0x7F)")
	}
	if n > len(b)-1 {
		return 0, 0, true, nil
	}
	if n > 8 {
		return 0, 0, false, encoderErrorf("length bytes too large")
	}

	length = 0
	for i := 1; i <= n; i++ {
		length = (length << 8) | int(b[i])
	}
	lenLen += n
	return length, lenLen, false, nil
}

// encodeIdentifier appends the identifier octet(s) for (class, number,
// constructed) to dst.
func encodeIdentifier(dst *[]byte, class TagClass, number int, constructed bool) {
	var id byte = byte(class)
	if constructed {
		id |= constructedBit
	}

	if number < 31 {
		id |= byte(number)
		*dst = append(*dst, id)
		return
	}

	id |= highTagMask
	*dst = append(*dst, id)
	*dst = append(*dst, encodeBase128(number)...)
}

// encodeBase128 returns the minimal base-128 big-endian encoding of n
// with the continuation bit set on every octet but the last, used for
// high-tag-number tags. OID/RELATIVE-OID arcs use encodeBase128Big in
// ber.go instead.
func encodeBase128(n int) []byte {
	if n == 0 {
		return []byte{0x00}
	}
	var tmp []byte
	for n > 0 {
		tmp = append(tmp, byte(n&0x7F))
		n >>= 7
	}
	out := make([]byte, len(tmp))
	for i, b := range tmp {
		rev := len(tmp) - 1 - i
		if rev != len(tmp)-1 {
			b |= 0x80
		}
		out[rev] = b
	}
	return out
}

// encodeLength appends the BER/DER length octets for n to dst: short
// form below 128, otherwise the minimal long form.
func encodeLength(dst *[]byte, n int) {
	if n < 128 {
		*dst = append(*dst, byte(n))
		return
	}

	var tmp [8]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte(n)
		n >>= 8
	}
	*dst = append(*dst, 0x80|byte(len(tmp)-i))
	*dst = append(*dst, tmp[i:]...)
}
