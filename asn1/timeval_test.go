package asn1

import "testing"

func TestParseGeneralizedTime(t *testing.T) {
	for idx, tt := range []struct {
		in            string
		expectFailure bool
	}{
		{"20260102150405Z", false},
		{"20260102150405.5Z", false},
		{"2026010215", false},
		{"20260102240000Z", true}, // midnight must be 00, not 24
		{"202601", true},          // too short
		{"20261302150405Z", true}, // month 13
	} {
		_, err := ParseGeneralizedTime(tt.in)
		if tt.expectFailure && err == nil {
			t.Errorf("%s[%d] failed: expected an error for %q", t.Name(), idx, tt.in)
		}
		if !tt.expectFailure && err != nil {
			t.Errorf("%s[%d] failed: %q: %v", t.Name(), idx, tt.in, err)
		}
	}
}

func TestParseGeneralizedTime_midnightMessage(t *testing.T) {
	_, err := ParseGeneralizedTime("20260102240000Z")
	if err == nil {
		t.Fatalf("%s failed: expected an error", t.Name())
	}
	const want = "Midnight must only be specified by 00, but got 24."
	if err.Error() != want && !containsSuffix(err.Error(), want) {
		t.Errorf("%s failed:\n\twant suffix: %q\n\tgot:         %q", t.Name(), want, err.Error())
	}
}

func containsSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func TestParseUTCTime_requiresTimezone(t *testing.T) {
	if _, err := ParseUTCTime("260102150405"); err == nil {
		t.Errorf("%s failed: expected an error for a UTCTime with no timezone", t.Name())
	}
	if _, err := ParseUTCTime("260102150405Z"); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
}

func TestParseUTCTime_yearWindow(t *testing.T) {
	tv, err := ParseUTCTime("490101000000Z")
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	if tv.Year != 2049 {
		t.Errorf("%s failed: want 2049, got %d", t.Name(), tv.Year)
	}

	tv2, err := ParseUTCTime("500101000000Z")
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	if tv2.Year != 1950 {
		t.Errorf("%s failed: want 1950, got %d", t.Name(), tv2.Year)
	}
}

func TestTimeValue_formatRoundTrip(t *testing.T) {
	for idx, in := range []string{
		"20260102150405Z",
		"20260102150405.25Z",
		"20260102150405+0130",
	} {
		tv, err := ParseGeneralizedTime(in)
		if err != nil {
			t.Fatalf("%s[%d] parse failed: %v", t.Name(), idx, err)
		}
		if got := tv.Format(); got != in {
			t.Errorf("%s[%d] failed:\n\twant: %q\n\tgot:  %q", t.Name(), idx, in, got)
		}
	}
}

func TestTime_decodeRoundTrip(t *testing.T) {
	c := NewBER()
	tv, err := ParseGeneralizedTime("20260102150405Z")
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	enc, err := c.Encode(NewGeneralizedTimeValue(tv))
	if err != nil {
		t.Fatalf("%s encode failed: %v", t.Name(), err)
	}
	v, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("%s decode failed: %v", t.Name(), err)
	}
	if !v.Time.Equal(tv) {
		t.Errorf("%s failed:\n\twant: %+v\n\tgot:  %+v", t.Name(), tv, v.Time)
	}
}
