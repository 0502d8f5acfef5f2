package hostcheck

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type HostcheckTestSuite struct {
	suite.Suite
}

func (s *HostcheckTestSuite) TestHostname() {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple domain", input: "example.com"},
		{name: "subdomain", input: "api.example.com"},
		{name: "hyphenated label", input: "my-host.example.com"},
		{name: "digits", input: "host123.example.com"},
		{name: "surrounding whitespace", input: "  example.com  "},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "no dot", input: "localhost", wantErr: true},
		{name: "too few alphanumerics", input: "a.b", wantErr: true},
		{name: "illegal character", input: "exa_mple.com", wantErr: true},
		{name: "space inside", input: "exa mple.com", wantErr: true},
		{name: "empty label", input: "example..com", wantErr: true},
		{name: "trailing dot", input: "example.com.", wantErr: true},
		{name: "label starts with hyphen", input: "-example.com", wantErr: true},
		{name: "label ends with hyphen", input: "example-.com", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := Hostname(tc.input)
			if tc.wantErr {
				s.ErrorIs(err, ErrInvalidHostname)
				return
			}
			s.NoError(err)
		})
	}
}

func (s *HostcheckTestSuite) TestPort() {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "common port", input: "443"},
		{name: "minimum", input: "1"},
		{name: "maximum", input: "65535"},
		{name: "surrounding whitespace", input: " 8080 "},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "too large", input: "65536", wantErr: true},
		{name: "service name", input: "https", wantErr: true},
		{name: "decimal point", input: "80.5", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := Port(tc.input)
			if tc.wantErr {
				s.ErrorIs(err, ErrInvalidPort)
				return
			}
			s.NoError(err)
		})
	}
}

func TestHostcheckSuite(t *testing.T) {
	suite.Run(t, new(HostcheckTestSuite))
}
