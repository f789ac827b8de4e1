package asn1

import "testing"

func TestNewString_roundTrip(t *testing.T) {
	v, err := NewString(TagPrintableString, "hello")
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	c := NewBER()
	enc, err := c.Encode(v)
	if err != nil {
		t.Fatalf("%s encode failed: %v", t.Name(), err)
	}
	out, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("%s decode failed: %v", t.Name(), err)
	}
	if out.Str.Text != "hello" || out.Str.Descriptor.tag != TagPrintableString {
		t.Errorf("%s failed: got %+v", t.Name(), out.Str)
	}
}

func TestNewString_rejectsOctetString(t *testing.T) {
	if _, err := NewString(TagOctetString, "x"); err == nil {
		t.Errorf("%s failed: expected an error for OCTET STRING", t.Name())
	}
}

func TestNewString_rejectsUnrecognizedTag(t *testing.T) {
	if _, err := NewString(TagSequence, "x"); err == nil {
		t.Errorf("%s failed: expected an error for a non-string tag", t.Name())
	}
}
