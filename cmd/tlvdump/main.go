// Command tlvdump decodes one hex-encoded BER or DER TLV and prints
// its value tree. It is a thin binary over the asn1 package, in the
// shape of the example pool's cmd/ wrappers: flag parsing and output
// formatting here, every decision about the wire format delegated to
// the library.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/coretlv/go-tlvcodec/asn1"
	"github.com/rs/zerolog"
)

type options struct {
	rule    string
	hex     string
	config  string
	verbose bool
}

func main() {
	opts := parseFlags()

	logger := zerolog.Nop()
	if opts.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Str("app", "tlvdump").Logger().Level(zerolog.TraceLevel)
	}

	input, err := readInput(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tlvdump: %v\n", err)
		os.Exit(1)
	}

	codecOpts := []asn1.CodecOption{asn1.WithLogger(asn1.NewZerologLogger(logger))}
	if opts.config != "" {
		reg, err := asn1.LoadTagMapRegistry(opts.config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tlvdump: %v\n", err)
			os.Exit(1)
		}
		codecOpts = append(codecOpts,
			asn1.WithTagMap(asn1.ClassApplication, tagMapFromRegistry(reg, asn1.ClassApplication)),
			asn1.WithTagMap(asn1.ClassContext, tagMapFromRegistry(reg, asn1.ClassContext)),
			asn1.WithTagMap(asn1.ClassPrivate, tagMapFromRegistry(reg, asn1.ClassPrivate)))
	}

	var codec *asn1.Codec
	switch strings.ToLower(opts.rule) {
	case "der":
		codec = asn1.NewDER(codecOpts...)
	default:
		codec = asn1.NewBER(codecOpts...)
	}

	value, err := codec.Decode(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tlvdump: decode: %v\n", err)
		os.Exit(1)
	}

	printValue(os.Stdout, value, 0)
	if len(value.Trailing) > 0 {
		fmt.Fprintf(os.Stdout, "%d trailing byte(s) past the decoded TLV\n", len(value.Trailing))
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.rule, "rule", "ber", "encoding rule to decode with: ber or der")
	flag.StringVar(&opts.hex, "hex", "", "hex-encoded input; reads stdin if omitted")
	flag.StringVar(&opts.config, "config", "", "path to a TOML tag map overlay")
	flag.BoolVar(&opts.verbose, "v", false, "log trace/debug events to stderr")
	flag.Parse()
	return opts
}

func readInput(opts options) ([]byte, error) {
	src := opts.hex
	if src == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		src = string(raw)
	}
	src = strings.TrimSpace(strings.ReplaceAll(src, "\n", ""))
	src = strings.ReplaceAll(src, " ", "")
	return decodeHex(src)
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("hex input has an odd number of digits")
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, err := hexDigit(s[2*i])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(s[2*i+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(b byte) (byte, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %q", b)
}

func tagMapFromRegistry(reg *asn1.TagMapRegistry, class asn1.TagClass) asn1.TagMap {
	m := asn1.TagMap{}
	for n := 0; n < 64; n++ {
		if t, ok := reg.Resolve(class, n); ok {
			m[n] = t
		}
	}
	return m
}

func printValue(w io.Writer, v asn1.Value, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(w, "%s[%s %d] %s", pad, v.Class, v.Number, v.Kind)

	switch v.Kind {
	case asn1.KindBoolean:
		fmt.Fprintf(w, " %v\n", v.Bool)
	case asn1.KindInteger:
		fmt.Fprintf(w, " %s\n", v.Int.String())
	case asn1.KindNull:
		fmt.Fprintln(w)
	case asn1.KindOID, asn1.KindRelativeOID:
		fmt.Fprintf(w, " %s\n", v.OID.String())
	case asn1.KindBitString:
		fmt.Fprintf(w, " %s (%d bits)\n", v.Bits.String(), v.Bits.BitLength)
	case asn1.KindOctetString:
		fmt.Fprintf(w, " % x\n", v.Octets)
	case asn1.KindString:
		fmt.Fprintf(w, " %q\n", v.Str.Text)
	case asn1.KindTime:
		fmt.Fprintf(w, " %s\n", v.Time.Format())
	case asn1.KindIncomplete:
		fmt.Fprintf(w, " % x (unresolved tag)\n", v.Octets)
	case asn1.KindSequence, asn1.KindSet:
		fmt.Fprintln(w)
		for _, child := range v.Children {
			printValue(w, child, indent+1)
		}
	default:
		fmt.Fprintln(w)
	}
}
