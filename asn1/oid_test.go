package asn1

import (
	"math/big"
	"testing"
)

func TestParseOID(t *testing.T) {
	for idx, tt := range []struct {
		in            string
		expectFailure bool
	}{
		{"1.3.6.1.4.1.56521", false},
		{"2.999.1", false}, // first arc 2 permits an arbitrarily large second arc
		{"0.39", false},
		{"0.40", true}, // second arc must be <= 39 when first arc is 0
		{"1.40", true},
		{"3.1", true}, // first arc must be 0, 1 or 2
		{"1", true},   // needs two or more arcs
		{"1.a", true},
	} {
		_, err := ParseOID(tt.in)
		if tt.expectFailure && err == nil {
			t.Errorf("%s[%d] failed: expected an error for %q, got none", t.Name(), idx, tt.in)
		}
		if !tt.expectFailure && err != nil {
			t.Errorf("%s[%d] failed: %q: %v", t.Name(), idx, tt.in, err)
		}
	}
}

func TestParseRelativeOID(t *testing.T) {
	if _, err := ParseRelativeOID(""); err == nil {
		t.Errorf("%s failed: expected an error for an empty RELATIVE-OID", t.Name())
	}
	if _, err := ParseRelativeOID("5.6"); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
}

func TestOID_roundTrip(t *testing.T) {
	for idx, want := range []string{
		"1.3.6.1.4.1.56521",
		"2.5.4.3",
		"0.0",
		"2.999999999999999999999999999999",
	} {
		oid, err := ParseOID(want)
		if err != nil {
			t.Fatalf("%s[%d] failed to parse fixture: %v", t.Name(), idx, err)
		}
		c := NewBER()
		enc, err := c.Encode(NewOIDValue(oid))
		if err != nil {
			t.Fatalf("%s[%d] encode failed: %v", t.Name(), idx, err)
		}
		v, err := c.Decode(enc)
		if err != nil {
			t.Fatalf("%s[%d] decode failed: %v", t.Name(), idx, err)
		}
		if !v.OID.Equal(oid) {
			t.Errorf("%s[%d] failed:\n\twant: %s\n\tgot:  %s", t.Name(), idx, oid, v.OID)
		}
	}
}

func TestRelativeOID_roundTrip(t *testing.T) {
	oid, err := ParseRelativeOID("8571.1")
	if err != nil {
		t.Fatalf("%s failed to parse fixture: %v", t.Name(), err)
	}
	c := NewBER()
	enc, err := c.Encode(NewRelativeOIDValue(oid))
	if err != nil {
		t.Fatalf("%s encode failed: %v", t.Name(), err)
	}
	v, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("%s decode failed: %v", t.Name(), err)
	}
	if v.Kind != KindRelativeOID || !v.OID.Equal(oid) {
		t.Errorf("%s failed:\n\twant: %s\n\tgot:  %s", t.Name(), oid, v.OID)
	}
}

func TestOID_intSliceOverflowPanics(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	oid := ObjectIdentifier{big.NewInt(2), huge}

	defer func() {
		if recover() == nil {
			t.Errorf("%s failed: expected a panic on int64 overflow", t.Name())
		}
	}()
	oid.IntSlice()
}
