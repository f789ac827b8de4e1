package asn1

/*
errors.go defines the three error kinds surfaced by this package's
codecs: InvalidArgumentError, PartialPDUError and EncoderError.
Codec.Encode, Codec.Decode and Codec.Complete return them to the caller
unchanged.
*/

import (
	"errors"
	"fmt"
)

// InvalidArgumentError indicates a programmer error at an API boundary,
// such as an empty buffer passed to Decode.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return "invalid argument: " + e.Msg }

func invalidArgumentf(format string, args ...any) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// PartialPDUError indicates that the input buffer is a syntactically
// consistent prefix of a valid TLV but does not yet contain the complete
// element. It is only raised at the root of a Decode call; the same
// shortfall one level deeper in a constructed value is an EncoderError.
// A caller reading from a stream should read more bytes and retry.
type PartialPDUError struct {
	Msg string
}

func (e *PartialPDUError) Error() string {
	if e.Msg == "" {
		return "partial PDU"
	}
	return "partial PDU: " + e.Msg
}

func partialPDUf(format string, args ...any) error {
	return &PartialPDUError{Msg: fmt.Sprintf(format, args...)}
}

// EncoderError indicates that the bytes being decoded, or the value being
// encoded, violate a rule of the encoding in use (indefinite length,
// zero-length INTEGER, constructed primitive, non-shortest DER length,
// and so on). The message text of several EncoderErrors is part of the
// package's observable contract; see ber.go and der.go for the exact
// strings.
type EncoderError struct {
	Msg string
}

func (e *EncoderError) Error() string { return e.Msg }

func encoderErrorf(format string, args ...any) error {
	return &EncoderError{Msg: fmt.Sprintf(format, args...)}
}

// IsPartialPDU reports whether err is (or wraps) a *PartialPDUError.
func IsPartialPDU(err error) bool {
	var p *PartialPDUError
	return errors.As(err, &p)
}

// IsEncoderError reports whether err is (or wraps) an *EncoderError.
func IsEncoderError(err error) bool {
	var e *EncoderError
	return errors.As(err, &e)
}
