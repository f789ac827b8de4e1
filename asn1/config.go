package asn1

/*
config.go loads a TagMapRegistry overlay from a TOML file, so a
deployment can register its APPLICATION/CONTEXT/PRIVATE tag
assignments as data instead of Go source. The shape --- a struct with
toml tags decoded via toml.DecodeFile, consulting the returned
toml.MetaData to tell "absent" from "present but empty" --- is
grounded on danmuck-edgectl's cmd/ghostctl/config.go, the one file in
the example pool that loads TOML configuration this way.
*/

import (
	"strconv"

	"github.com/BurntSushi/toml"
)

// TagMapFile is the on-disk shape of a tag map overlay: one table per
// non-universal class, each table mapping a decimal tag number to the
// universal type name it should resolve to (e.g. "16" = "SEQUENCE").
type TagMapFile struct {
	Application map[string]string `toml:"application"`
	Context     map[string]string `toml:"context"`
	Private     map[string]string `toml:"private"`
}

var universalTagByName = func() map[string]UniversalTag {
	m := make(map[string]UniversalTag, 32)
	for t := TagBoolean; t <= TagBMPString; t++ {
		if name := t.String(); name != "UNKNOWN" {
			m[name] = t
		}
	}
	return m
}()

// LoadTagMapRegistry reads path as a TagMapFile and returns a
// TagMapRegistry built from it. A class table omitted from the file
// entirely leaves that class at the registry's built-in default
// (the APPLICATION table preloaded by NewTagMapRegistry); a class
// table present but empty clears it.
func LoadTagMapRegistry(path string) (*TagMapRegistry, error) {
	var file TagMapFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, encoderErrorf("LoadTagMapRegistry: %s: %v", path, err)
	}

	reg := NewTagMapRegistry()

	if meta.IsDefined("application") {
		m, err := parseTagMapFileEntries(file.Application)
		if err != nil {
			return nil, err
		}
		if err := reg.SetTypeMap(ClassApplication, m); err != nil {
			return nil, err
		}
	}
	if meta.IsDefined("context") {
		m, err := parseTagMapFileEntries(file.Context)
		if err != nil {
			return nil, err
		}
		if err := reg.SetTypeMap(ClassContext, m); err != nil {
			return nil, err
		}
	}
	if meta.IsDefined("private") {
		m, err := parseTagMapFileEntries(file.Private)
		if err != nil {
			return nil, err
		}
		if err := reg.SetTypeMap(ClassPrivate, m); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func parseTagMapFileEntries(entries map[string]string) (TagMap, error) {
	out := make(TagMap, len(entries))
	for numStr, typeName := range entries {
		num, err := strconv.Atoi(numStr)
		if err != nil {
			return nil, encoderErrorf("tag map: %q is not a decimal tag number", numStr)
		}
		t, ok := universalTagByName[typeName]
		if !ok {
			return nil, encoderErrorf("tag map: %q is not a recognized universal type name", typeName)
		}
		out[num] = t
	}
	return out, nil
}
