// Package hostcheck validates user-entered hostnames and ports before they
// reach the resolution engine. The checks here are stricter than the
// engine's own: the engine only requires non-empty fields and a numeric
// port, while this package enforces hostname shape so obviously broken
// input is rejected at the prompt.
package hostcheck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidHostname is wrapped by every hostname rejection.
	ErrInvalidHostname = errors.New("invalid hostname")
	// ErrInvalidPort is wrapped by every port rejection.
	ErrInvalidPort = errors.New("invalid port")
)

const _minAlphanumeric = 3

// Hostname reports whether s looks like a resolvable hostname: letters,
// digits, dots and hyphens only, at least three alphanumeric characters,
// at least one dot, non-empty dot-separated labels, and no label starting
// or ending with a hyphen.
func Hostname(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidHostname)
	}

	alnum := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			alnum++
		case r == '.' || r == '-':
		default:
			return fmt.Errorf("%w: character %q not allowed", ErrInvalidHostname, r)
		}
	}
	if alnum < _minAlphanumeric {
		return fmt.Errorf("%w: needs at least %d letters or digits", ErrInvalidHostname, _minAlphanumeric)
	}
	if !strings.Contains(s, ".") {
		return fmt.Errorf("%w: needs at least one dot", ErrInvalidHostname)
	}

	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return fmt.Errorf("%w: empty label", ErrInvalidHostname)
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return fmt.Errorf("%w: label %q starts or ends with a hyphen", ErrInvalidHostname, label)
		}
	}

	return nil
}

// Port reports whether s is a decimal port number between 1 and 65535.
func Port(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPort)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidPort, s)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("%w: %d out of range 1-65535", ErrInvalidPort, n)
	}
	return nil
}
