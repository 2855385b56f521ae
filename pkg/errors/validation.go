package errors

import (
	"strings"
	"unicode"
)

// ValidateFormat checks that format is one of the supported output formats.
// The empty string is accepted and means "infer or default".
func ValidateFormat(format string, supported []string) error {
	if format == "" {
		return nil
	}
	for _, f := range supported {
		if f == format {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (must be one of %s)", format, strings.Join(supported, ", "))
}

// ValidateKindPath validates a dotted diagram kind path such as
// "diagrams.aws.compute.EC2". It needs at least a namespace and a symbol,
// and no empty or whitespace segments.
func ValidateKindPath(path string) error {
	if path == "" {
		return New(ErrCodeUnknownKind, "kind cannot be empty")
	}
	parts := strings.Split(path, ".")
	if len(parts) < 2 {
		return New(ErrCodeUnknownKind, "kind %q must be a dotted path (namespace.Symbol)", path)
	}
	for _, p := range parts {
		if p == "" {
			return New(ErrCodeUnknownKind, "kind %q contains an empty segment", path)
		}
		for _, r := range p {
			if unicode.IsSpace(r) || unicode.IsControl(r) {
				return New(ErrCodeUnknownKind, "kind %q contains invalid characters", path)
			}
		}
	}
	return nil
}
