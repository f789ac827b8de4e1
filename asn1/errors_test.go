package asn1

import (
	"fmt"
	"testing"
)

func TestErrorKinds_wrapping(t *testing.T) {
	base := partialPDUf("truncated at offset %d", 3)
	wrapped := fmt.Errorf("decoding frame: %w", base)

	if !IsPartialPDU(wrapped) {
		t.Errorf("%s failed: IsPartialPDU did not see through fmt.Errorf wrapping", t.Name())
	}
	if IsEncoderError(wrapped) {
		t.Errorf("%s failed: a PartialPDUError should not also be an EncoderError", t.Name())
	}

	encErr := encoderErrorf("bad length")
	if !IsEncoderError(encErr) {
		t.Errorf("%s failed: IsEncoderError did not recognize its own error", t.Name())
	}

	argErr := invalidArgumentf("empty input")
	if IsPartialPDU(argErr) || IsEncoderError(argErr) {
		t.Errorf("%s failed: InvalidArgumentError misclassified as a codec error", t.Name())
	}
}
