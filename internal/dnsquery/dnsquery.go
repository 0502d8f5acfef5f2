package dnsquery

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/lc/hostq/internal/resolve"
)

// ErrEmptyResponse is returned when a nameserver answers with no message.
var ErrEmptyResponse = errors.New("empty response")

var _defaultResolver = "1.1.1.1:53"

var _ resolve.Backend = (*Client)(nil)

// Exchanger defines the interface for DNS message exchange.
type Exchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, a string) (r *dns.Msg, rtt time.Duration, err error)
}

// Client resolves hostnames into endpoints over DNS. It implements
// resolve.Backend.
type Client struct {
	Client    Exchanger
	Timeout   time.Duration
	Resolvers []string
}

// Opt is a function option for configuring the Client.
type Opt func(c *Client)

// New creates a new Client with the given per-query timeout and optional
// configurations. The returned Client is ready to use for lookups.
func New(timeout time.Duration, opts ...Opt) *Client {
	c := &Client{
		Client: &dns.Client{
			Timeout: timeout,
		},
		Timeout: timeout,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// WithResolvers returns an option to set custom DNS resolvers.
// If not provided, the default resolver (1.1.1.1:53) will be used.
func WithResolvers(resolvers []string) Opt {
	return func(c *Client) {
		c.Resolvers = resolvers
	}
}

// WithTimeout returns an option to set a custom timeout for DNS queries.
// This overrides the timeout provided to New.
func WithTimeout(timeout time.Duration) Opt {
	return func(c *Client) {
		c.Timeout = timeout
	}
}

// Lookup resolves a hostname into its endpoints, IPv4 first, then IPv6.
// If the hostname is already an IP literal it is returned directly without
// touching the network. A hostname that exists but has no address records
// yields an empty, non-error result; a name-level failure (NXDOMAIN and
// friends) or an unreachable resolver yields a *resolve.LookupError.
func (c *Client) Lookup(ctx context.Context, hostname string) ([]resolve.Endpoint, error) {
	if strings.TrimSpace(hostname) == "" {
		return nil, resolve.ErrEmptyHostname
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return []resolve.Endpoint{{Address: ip.String(), Family: resolve.FamilyOf(ip)}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	return c.lookupEndpoints(ctx, hostname)
}

// lookupEndpoints queries A and AAAA records concurrently. It returns every
// endpoint that succeeded, or a normalized error if *both* queries fail.
func (c *Client) lookupEndpoints(ctx context.Context, host string) ([]resolve.Endpoint, error) {
	grp, ctx := errgroup.WithContext(ctx)

	var (
		v4, v6     []resolve.Endpoint
		err4, err6 error
	)

	grp.Go(func() error {
		v4, err4 = c.query(ctx, host, dns.TypeA)
		return nil
	})
	grp.Go(func() error {
		v6, err6 = c.query(ctx, host, dns.TypeAAAA)
		return nil
	})

	// The goroutines never return errors; Wait only joins them.
	_ = grp.Wait()

	if err4 != nil && err6 != nil {
		combined := multierr.Combine(err4, err6)

		// A nameserver-level failure (NXDOMAIN etc.) beats a transport
		// failure: it carries a meaningful RCODE for the caller.
		var lerr *resolve.LookupError
		if errors.As(combined, &lerr) {
			return nil, lerr
		}
		return nil, &resolve.LookupError{
			Code:    resolve.CodeTransport,
			Message: fmt.Sprintf("lookup for %q: %v", host, combined),
			Err:     combined,
		}
	}

	return append(v4, v6...), nil
}

// query resolves qtype (A or AAAA) for host. Answers are returned in
// nameserver order. A NOERROR response with zero usable answers is a
// successful empty result.
func (c *Client) query(ctx context.Context, host string, qtype uint16) ([]resolve.Endpoint, error) {
	req := &dns.Msg{}
	req.SetQuestion(dns.Fqdn(host), qtype)

	resp, _, err := c.Client.ExchangeContext(ctx, req, c.pickResolver())
	if err != nil {
		return nil, fmt.Errorf("%s query for %q: %w", dns.TypeToString[qtype], host, err)
	}
	if resp == nil {
		return nil, ErrEmptyResponse
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, &resolve.LookupError{
			Code:    resp.Rcode,
			Message: dns.RcodeToString[resp.Rcode],
		}
	}

	return endpointsFrom(resp), nil
}

// endpointsFrom extracts address records from a response, preserving
// answer order and tagging each endpoint with its family.
func endpointsFrom(resp *dns.Msg) []resolve.Endpoint {
	var eps []resolve.Endpoint
	for _, rr := range resp.Answer {
		switch record := rr.(type) {
		case *dns.A:
			eps = append(eps, resolve.Endpoint{Address: record.A.String(), Family: resolve.FamilyIPv4})
		case *dns.AAAA:
			eps = append(eps, resolve.Endpoint{Address: record.AAAA.String(), Family: resolve.FamilyIPv6})
		}
	}
	return eps
}

// pickResolver returns a random resolver from the configured pool.
func (c *Client) pickResolver() string {
	if len(c.Resolvers) == 0 {
		return _defaultResolver
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(c.Resolvers))))
	if err != nil {
		// Fall back to the first resolver on error
		return c.Resolvers[0]
	}

	return c.Resolvers[n.Int64()]
}
