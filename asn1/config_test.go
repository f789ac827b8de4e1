package asn1

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTagMapRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tagmap.toml")
	contents := `
[application]
0 = "SEQUENCE"
2 = "NULL"

[context]
9 = "OCTET STRING"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("%s failed to write fixture: %v", t.Name(), err)
	}

	reg, err := LoadTagMapRegistry(path)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}

	if got, ok := reg.Resolve(ClassApplication, 0); !ok || got != TagSequence {
		t.Errorf("%s failed: application[0] = %v, %v", t.Name(), got, ok)
	}
	if got, ok := reg.Resolve(ClassApplication, 2); !ok || got != TagNull {
		t.Errorf("%s failed: application[2] = %v, %v", t.Name(), got, ok)
	}
	if got, ok := reg.Resolve(ClassContext, 9); !ok || got != TagOctetString {
		t.Errorf("%s failed: context[9] = %v, %v", t.Name(), got, ok)
	}
	if _, ok := reg.Resolve(ClassPrivate, 0); ok {
		t.Errorf("%s failed: PRIVATE overlay should remain empty", t.Name())
	}
}

func TestLoadTagMapRegistry_unknownTypeName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tagmap.toml")
	contents := "[application]\n1 = \"NOT-A-REAL-TYPE\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("%s failed to write fixture: %v", t.Name(), err)
	}

	if _, err := LoadTagMapRegistry(path); err == nil {
		t.Errorf("%s failed: expected an error for an unrecognized type name", t.Name())
	}
}
