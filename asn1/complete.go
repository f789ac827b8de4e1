package asn1

/*
complete.go implements type completion: resolving a KindIncomplete
Value produced by an earlier Decode (because its non-universal tag had
no entry in the active TagMap at the time) into its semantic universal
type once the caller knows, from protocol context, what that type
should have been. The teacher library has no equivalent operation since
it resolves every tag at decode time via struct-tag reflection; this is
grounded instead on the specification's own Type Completion component.
*/

// Complete resolves an Incomplete Value into the universal type t,
// re-running the same payload decode logic (*Codec).Decode would have
// applied had the tag map already carried this entry. tagMaps, if
// given, is used instead of c's own registry to resolve any
// non-universal children found while decoding SEQUENCE/SET payloads;
// omit it to keep using c's registry.
func (c *Codec) Complete(incomplete Value, t UniversalTag, tagMaps ...*TagMapRegistry) (Value, error) {
	if incomplete.Kind != KindIncomplete {
		return Value{}, invalidArgumentf("Complete: value is not Incomplete (Kind=%s)", incomplete.Kind)
	}

	working := c
	if len(tagMaps) > 0 && tagMaps[0] != nil {
		clone := *c
		clone.tagMaps = tagMaps[0]
		working = &clone
	}

	out := Value{Envelope: incomplete.Envelope}
	if err := working.decodePayload(&out, t, incomplete.Constructed, incomplete.Octets); err != nil {
		return Value{}, err
	}
	return out, nil
}
