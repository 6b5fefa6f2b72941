package code

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrIs(t *testing.T) {
	err := ValidationErr.WithField("density", "density is required")
	if !errors.Is(err, ValidationErr) {
		t.Errorf("%v is not a ValidationErr", err)
	}
	if errors.Is(err, ReagentNotFound) {
		t.Errorf("%v matched ReagentNotFound", err)
	}
	wrapped := fmt.Errorf("register: %w", err)
	if !errors.Is(wrapped, ValidationErr) {
		t.Errorf("wrapped error lost its code")
	}
	if got := FieldOf(wrapped); got != "density" {
		t.Errorf("FieldOf = %q, want density", got)
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrCode
	}{
		{nil, Success},
		{ReagentNotFound, ReagentNotFound},
		{InvalidQuantity.WithMsg("negative"), InvalidQuantity},
		{WriteFileErr.WithErr(io.ErrShortWrite), WriteFileErr},
		{fmt.Errorf("io: %w", UnknownCategory.WithMsg("x")), UnknownCategory},
		{io.EOF, UnDefineErr},
	}
	for _, tt := range tests {
		if got := Of(tt.err); got != tt.want {
			t.Errorf("Of(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	err := ReadFileErr.WithErr(io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("cause not reachable from %v", err)
	}
	if err.Error() != "read file error: unexpected EOF" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMessage(t *testing.T) {
	if got := Message(ReagentNotFound.WithMsgf("reagent %q not found", "x")); got != `reagent "x" not found` {
		t.Errorf("Message = %q", got)
	}
	if got := Message(ReagentNotFound); got != "reagent not found" {
		t.Errorf("Message = %q", got)
	}
}
