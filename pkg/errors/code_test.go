package errors

import (
	"testing"
)

func TestNewCode(t *testing.T) {
	validCodes := []string{
		"protocol.unregistered_type",
		"buffer.insufficient_data",
		"manifest.duplicate_name",
		"codec.payload_too_large",
	}

	for _, codeStr := range validCodes {
		code, err := NewCode(codeStr)
		if err != nil {
			t.Errorf("Expected valid code '%s' to succeed, got error: %v", codeStr, err)
		}
		if code.String() != codeStr {
			t.Errorf("Expected code string '%s', got '%s'", codeStr, code.String())
		}
	}

	invalidCodes := []string{
		"invalid",                          // No dot
		"protocol.",                        // Ends with dot
		".unregistered_type",               // Starts with dot
		"Protocol.unregistered_type",       // Uppercase
		"protocol.unregistered-type",       // Hyphens not allowed
		"protocol.unregistered_type.extra", // Too many segments
		"error.unregistered_type",          // Contains "error"
		"protocol.deferred",                // Contains "err"
	}

	for _, codeStr := range invalidCodes {
		_, err := NewCode(codeStr)
		if err == nil {
			t.Errorf("Expected invalid code '%s' to fail, but it succeeded", codeStr)
		}
	}
}

func TestMustNewCodePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected MustNewCode to panic with invalid code")
		}
	}()
	MustNewCode("not a code")
}

func TestCodeEquals(t *testing.T) {
	a := MustNewCode("protocol.one")
	b := MustNewCode("protocol.one")
	c := MustNewCode("protocol.two")

	if !a.Equals(b) {
		t.Error("Expected equal codes to compare equal")
	}
	if a.Equals(c) {
		t.Error("Expected different codes to compare unequal")
	}
}
