package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// HasCode reports whether err, or any error it wraps, is an *Error carrying code
func HasCode(err error, code Code) bool {
	for err != nil {
		var coded *Error
		if !stderrors.As(err, &coded) {
			return false
		}
		if coded.Code.Equals(code) {
			return true
		}
		err = coded.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in the chain, or ""
func GetCode(err error) string {
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code.String()
	}
	return ""
}

// GetContext returns the context of the outermost *Error in the chain
func GetContext(err error) map[string]string {
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Context
	}
	return nil
}

// FormatError renders err on multiple lines for logs and CLI output
func FormatError(err error) string {
	var coded *Error
	if !stderrors.As(err, &coded) {
		return err.Error()
	}

	parts := []string{
		fmt.Sprintf("Code: %s", coded.Code),
		fmt.Sprintf("Message: %s", coded.Message),
	}

	if len(coded.Context) > 0 {
		keys := make([]string, 0, len(coded.Context))
		for k := range coded.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts = append(parts, "Context:")
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("  %s: %s", k, coded.Context[k]))
		}
	}

	if coded.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %v", coded.Cause))
	}

	return strings.Join(parts, "\n")
}

// AsError converts any error to *Error. Plain errors become CommonInternal.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var coded *Error
	if stderrors.As(err, &coded) {
		return coded
	}

	return New(CommonInternal, err.Error(), err)
}
