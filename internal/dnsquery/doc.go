// Package dnsquery implements the DNS lookup backend for hostq with
// concurrent IPv4 and IPv6 queries.
//
// The package provides the resolve.Backend used by the resolution engine.
// It issues A and AAAA queries concurrently against a configurable pool of
// resolvers and merges the answers into an ordered endpoint list, IPv4
// first, then IPv6.
//
// # Basic Usage
//
// Create a client with default settings:
//
//	backend := dnsquery.New(5 * time.Second)
//	eps, err := backend.Lookup(ctx, "example.com")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, ep := range eps {
//		fmt.Println(ep.Address, ep.Family)
//	}
//
// Configure a client with custom options:
//
//	backend := dnsquery.New(
//		5 * time.Second,
//		dnsquery.WithResolvers([]string{
//			"1.1.1.1:53",
//			"8.8.8.8:53",
//		}),
//		dnsquery.WithTimeout(3 * time.Second),
//	)
//
// # Result Semantics
//
//   - An IP-literal hostname is returned directly, classified by family,
//     with no network traffic.
//   - A NOERROR response with zero address records is a successful empty
//     result, not an error.
//   - A nameserver failure (NXDOMAIN, SERVFAIL, ...) becomes a
//     *resolve.LookupError carrying the RCODE.
//   - Both transports failing becomes a *resolve.LookupError with a
//     negative local code, aggregating the underlying errors via
//     go.uber.org/multierr.
//   - If only one of the two queries fails, the successful answers are
//     returned and the failure is dropped.
//
// The per-query timeout configured on the client is the only timeout in
// the system; there are no retries.
//
// # Thread Safety
//
// The client is safe for concurrent use, although hostq drives it from a
// single worker goroutine.
package dnsquery
