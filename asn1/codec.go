package asn1

/*
codec.go defines the Codec type shared by the BER and DER encoding
rules, and the functional-option surface used to configure it. der.go
layers DER's extra validation and canonicalization on top of the BER
algorithm implemented in ber.go by toggling Codec.rule and consulting
Codec.primitiveOnly/bitstringPadding, rather than by subclassing a
packet type the way the teacher library's BERPacket/DERPacket pair
does; a single Codec value matches the specification's own framing of
DER as BER "tightened," and avoids keeping two packet types with
duplicated accessor methods in sync.
*/

// EncodingRule names the ASN.1 encoding rule a Codec implements.
type EncodingRule uint8

const (
	BER EncodingRule = iota
	DER
)

func (r EncodingRule) String() string {
	if r == DER {
		return "DER"
	}
	return "BER"
}

// Codec encodes Values to bytes and decodes bytes to Values under one
// ASN.1 encoding rule. A Codec is safe for concurrent use by multiple
// goroutines provided SetTypeMap is not called concurrently with an
// Encode or Decode; construct and configure a Codec fully before
// handing it to concurrent callers (the build-then-freeze pattern
// described in the specification's concurrency section).
type Codec struct {
	rule             EncodingRule
	tagMaps          *TagMapRegistry
	bitstringPadding byte
	primitiveOnly    map[UniversalTag]bool
	logger           Logger
}

// CodecOption configures a Codec at construction time.
type CodecOption func(*Codec)

// WithBitstringPadding sets the concrete bit character ('0' or '1')
// used to pad a BIT STRING to a byte boundary on encode. DER ignores
// this option and always pads with '0'.
func WithBitstringPadding(bit byte) CodecOption {
	return func(c *Codec) { c.bitstringPadding = bit }
}

// WithPrimitiveOnly sets the set of universal types whose constructed
// encoding is forbidden. BER defaults to the empty set; DER defaults
// to every character-restricted string plus BIT STRING and OCTET
// STRING, and this option may be used to narrow or widen that set.
func WithPrimitiveOnly(set map[UniversalTag]bool) CodecOption {
	return func(c *Codec) { c.primitiveOnly = set }
}

// WithLogger installs a Logger consulted for trace/debug/error events
// during Encode and Decode. The default is NopLogger.
func WithLogger(l Logger) CodecOption {
	return func(c *Codec) { c.logger = l }
}

// WithTagMap installs an overlay TagMap for a non-universal tag class,
// equivalent to calling SetTypeMap on the returned Codec immediately
// after construction.
func WithTagMap(class TagClass, m TagMap) CodecOption {
	return func(c *Codec) { _ = c.tagMaps.SetTypeMap(class, m) }
}

// NewBER returns a Codec implementing the Basic Encoding Rules.
func NewBER(opts ...CodecOption) *Codec {
	c := &Codec{
		rule:             BER,
		tagMaps:          NewTagMapRegistry(),
		bitstringPadding: '0',
		primitiveOnly:    map[UniversalTag]bool{},
		logger:           NopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewDER returns a Codec implementing the Distinguished Encoding
// Rules: BER tightened per der.go.
func NewDER(opts ...CodecOption) *Codec {
	c := &Codec{
		rule:             DER,
		tagMaps:          NewTagMapRegistry(),
		bitstringPadding: '0',
		primitiveOnly:    derPrimitiveOnlyDefault(),
		logger:           NopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	c.bitstringPadding = '0' // DER forces this regardless of options
	return c
}

// SetTypeMap replaces the tag map overlay for a non-universal class.
// It must not be called concurrently with Encode or Decode on the same
// Codec.
func (c *Codec) SetTypeMap(class TagClass, m TagMap) error {
	return c.tagMaps.SetTypeMap(class, m)
}

// Rule returns the encoding rule this Codec implements.
func (c *Codec) Rule() EncodingRule { return c.rule }

func (c *Codec) isPrimitiveOnly(t UniversalTag) bool {
	return c.primitiveOnly[t]
}

func derPrimitiveOnlyDefault() map[UniversalTag]bool {
	m := map[UniversalTag]bool{
		TagBitString:   true,
		TagOctetString: true,
	}
	for tag, d := range stringDescriptors {
		if d.restricted {
			m[tag] = true
		}
	}
	return m
}
