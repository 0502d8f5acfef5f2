package resolve

import (
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type EndpointTestSuite struct {
	suite.Suite
}

func (s *EndpointTestSuite) TestFamilyOf() {
	testCases := []struct {
		name     string
		ip       string
		expected Family
	}{
		{name: "plain IPv4", ip: "93.184.216.34", expected: FamilyIPv4},
		{name: "IPv4-mapped IPv6", ip: "::ffff:192.0.2.1", expected: FamilyIPv4},
		{name: "plain IPv6", ip: "2606:2800:220:1:248:1893:25c8:1946", expected: FamilyIPv6},
		{name: "loopback IPv6", ip: "::1", expected: FamilyIPv6},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			ip := net.ParseIP(tc.ip)
			s.Require().NotNil(ip)
			s.Equal(tc.expected, FamilyOf(ip))
		})
	}
}

func (s *EndpointTestSuite) TestFamilyString() {
	s.Equal("IPv4", FamilyIPv4.String())
	s.Equal("IPv6", FamilyIPv6.String())
	s.Equal("Family(0)", Family(0).String())
}

func (s *EndpointTestSuite) TestFamilyYAMLRoundTrip() {
	in := []Endpoint{
		{Address: "93.184.216.34", Family: FamilyIPv4},
		{Address: "2606:2800:220:1:248:1893:25c8:1946", Family: FamilyIPv6},
	}

	data, err := yaml.Marshal(in)
	s.Require().NoError(err)
	s.Contains(string(data), "IPv4")
	s.Contains(string(data), "IPv6")

	var out []Endpoint
	s.Require().NoError(yaml.Unmarshal(data, &out))
	s.Equal(in, out)
}

func (s *EndpointTestSuite) TestFamilyYAMLUnknown() {
	var f Family
	s.Error(yaml.Unmarshal([]byte(`"IPX"`), &f))
}

func (s *EndpointTestSuite) TestEndpointString() {
	ep := Endpoint{Address: "93.184.216.34", Family: FamilyIPv4}
	s.Equal("93.184.216.34/IPv4", ep.String())
}

func (s *EndpointTestSuite) TestLookupErrorUnwrap() {
	cause := net.ErrClosed
	lerr := &LookupError{Code: CodeTransport, Message: "closed", Err: cause}
	s.ErrorIs(lerr, cause)
	s.Contains(lerr.Error(), "code -1")
}

func TestEndpointSuite(t *testing.T) {
	suite.Run(t, new(EndpointTestSuite))
}
