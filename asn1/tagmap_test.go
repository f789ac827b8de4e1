package asn1

import "testing"

func TestTagMapRegistry_defaultApplicationTable(t *testing.T) {
	r := NewTagMapRegistry()
	for _, tt := range []struct {
		number int
		want   UniversalTag
	}{
		{0, TagSequence},
		{2, TagNull},
		{10, TagOctetString},
		{16, TagInteger},
		{25, TagSequence},
	} {
		got, ok := r.Resolve(ClassApplication, tt.number)
		if !ok {
			t.Errorf("%s failed: tag %d not resolved", t.Name(), tt.number)
			continue
		}
		if got != tt.want {
			t.Errorf("%s failed: tag %d:\n\twant: %s\n\tgot:  %s", t.Name(), tt.number, tt.want, got)
		}
	}

	if _, ok := r.Resolve(ClassContext, 0); ok {
		t.Errorf("%s failed: CONTEXT class should start with no overlay", t.Name())
	}
}

func TestTagMapRegistry_setTypeMapRejectsUniversal(t *testing.T) {
	r := NewTagMapRegistry()
	if err := r.SetTypeMap(ClassUniversal, TagMap{}); err == nil {
		t.Errorf("%s failed: expected an error registering a UNIVERSAL overlay", t.Name())
	}
}

func TestTagMapRegistry_cloneIsIndependent(t *testing.T) {
	r := NewTagMapRegistry()
	clone := r.Clone()
	_ = clone.SetTypeMap(ClassContext, TagMap{7: TagBoolean})

	if _, ok := r.Resolve(ClassContext, 7); ok {
		t.Errorf("%s failed: mutating the clone's overlay mutated the original", t.Name())
	}
	if got, ok := clone.Resolve(ClassContext, 7); !ok || got != TagBoolean {
		t.Errorf("%s failed: clone overlay not applied, got %v %v", t.Name(), got, ok)
	}
}

func TestCodec_setTypeMapAffectsDecode(t *testing.T) {
	c := NewBER()
	if err := c.SetTypeMap(ClassContext, TagMap{5: TagBoolean}); err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}

	id := byte(ClassContext) | 5
	v, err := c.Decode([]byte{id, 0x01, 0xFF})
	if err != nil {
		t.Fatalf("%s decode failed: %v", t.Name(), err)
	}
	if v.Kind != KindBoolean || !v.Bool {
		t.Errorf("%s failed: got %+v", t.Name(), v)
	}
}
