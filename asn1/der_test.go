package asn1

import (
	"bytes"
	"testing"
)

func TestDER_setCanonicalOrderIsConstructionOrderIndependent(t *testing.T) {
	a := NewSet(NewIntegerInt64(5), NewBoolean(true), NewOctetString([]byte("z")))
	b := NewSet(NewOctetString([]byte("z")), NewIntegerInt64(5), NewBoolean(true))

	c := NewDER()
	encA, err := c.Encode(a)
	if err != nil {
		t.Fatalf("%s failed [a]: %v", t.Name(), err)
	}
	encB, err := c.Encode(b)
	if err != nil {
		t.Fatalf("%s failed [b]: %v", t.Name(), err)
	}
	if !bytes.Equal(encA, encB) {
		t.Errorf("%s failed: DER SET encoding depends on construction order\n\ta: % X\n\tb: % X", t.Name(), encA, encB)
	}
}

func TestDER_setOrderedByClassThenOctets(t *testing.T) {
	c := NewDER()
	s := NewSet(
		NewOctetString([]byte{0x02}).WithTag(ClassPrivate, 1),
		NewBoolean(false),
		NewOctetString([]byte{0x01}).WithTag(ClassContext, 1),
		NewBoolean(true),
	)
	canon, err := c.CanonicalizeSet(s.Children)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	// UNIVERSAL members sort before CONTEXT before PRIVATE; within
	// UNIVERSAL, BOOLEAN(false)=010100 sorts before BOOLEAN(true)=0101FF.
	if canon[0].Class != ClassUniversal || canon[0].Bool != false {
		t.Errorf("%s failed: unexpected first element %+v", t.Name(), canon[0])
	}
	if canon[1].Class != ClassUniversal || canon[1].Bool != true {
		t.Errorf("%s failed: unexpected second element %+v", t.Name(), canon[1])
	}
	if canon[2].Class != ClassContext {
		t.Errorf("%s failed: unexpected third element %+v", t.Name(), canon[2])
	}
	if canon[3].Class != ClassPrivate {
		t.Errorf("%s failed: unexpected fourth element %+v", t.Name(), canon[3])
	}
}

func TestDER_rejectsNonMinimalLengthForm(t *testing.T) {
	c := NewDER()
	// A BOOLEAN whose length is encoded in the long form (0x81 0x01)
	// even though the short form would do: not the shortest form DER
	// requires.
	data := []byte{0x01, 0x81, 0x01, 0xFF}
	if _, err := c.Decode(data); !IsEncoderError(err) {
		t.Fatalf("%s failed: expected EncoderError, got %v", t.Name(), err)
	}
}

func TestDER_bitStringPaddingForcedToZero(t *testing.T) {
	c := NewDER(WithBitstringPadding('1'))
	// The source byte's low (unused) bit is 1; DER must still emit 0
	// there regardless of the WithBitstringPadding option.
	bs := BitString{Bytes: []byte{0xFF}, BitLength: 7}
	enc, err := c.Encode(Value{
		Envelope: Envelope{Class: ClassUniversal, Number: int(TagBitString)},
		Kind:     KindBitString,
		Bits:     bs,
	})
	if err != nil {
		t.Fatalf("%s encode failed: %v", t.Name(), err)
	}
	last := enc[len(enc)-1]
	if last&0x01 != 0 {
		t.Errorf("%s failed: DER must pad with 0 regardless of WithBitstringPadding, got last byte 0x%02X", t.Name(), last)
	}
}

func TestDER_bitStringTrailingBitsMustBeZero(t *testing.T) {
	c := NewDER()
	// unused=3, content byte 0xFF: the low 3 bits (the unused ones)
	// are 1, which DER forbids.
	data := []byte{0x03, 0x02, 0x03, 0xFF}
	if _, err := c.Decode(data); !IsEncoderError(err) {
		t.Fatalf("%s failed: expected EncoderError, got %v", t.Name(), err)
	}
}

func TestDER_primitiveOnlyStringsAndBitstrings(t *testing.T) {
	c := NewDER()
	for _, tag := range []UniversalTag{TagOctetString, TagBitString, TagUTF8String, TagPrintableString} {
		id := byte(tag) | constructedBit
		if _, err := c.Decode([]byte{id, 0x00}); !IsEncoderError(err) {
			t.Errorf("%s(%s) failed: expected EncoderError, got %v", t.Name(), tag, err)
		}
	}
}

func TestDER_timeRequiresUTCAndSeconds(t *testing.T) {
	c := NewDER()

	tv, err := ParseGeneralizedTime("202601021504") // no seconds
	if err != nil {
		t.Fatalf("%s failed to parse fixture: %v", t.Name(), err)
	}
	tv.TimezoneFormat = TimezoneUTC
	if _, err := c.Encode(NewGeneralizedTimeValue(tv)); !IsEncoderError(err) {
		t.Fatalf("%s failed: expected EncoderError for missing seconds, got %v", t.Name(), err)
	}

	tv2, err := ParseGeneralizedTime("20260102150405+0100")
	if err != nil {
		t.Fatalf("%s failed to parse fixture: %v", t.Name(), err)
	}
	if _, err := c.Encode(NewGeneralizedTimeValue(tv2)); !IsEncoderError(err) {
		t.Fatalf("%s failed: expected EncoderError for non-UTC timezone, got %v", t.Name(), err)
	}
}
