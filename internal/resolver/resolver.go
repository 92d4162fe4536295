// Package resolver turns the host half of a target spec into a
// concrete IP address, either by parsing it as a literal or by asking
// a name resolver.
package resolver

import (
	"context"
	"net"

	"gotel/internal/errors"
	"gotel/util"
)

// Lookup resolves hostnames to addresses.  *net.Resolver satisfies it;
// tests inject fakes.
type Lookup interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Resolver classifies a host as IP literal or name and resolves it.
type Resolver struct {
	Lookup Lookup // defaults to net.DefaultResolver when nil
	NoDNS  bool   // refuse non-literal hosts instead of consulting DNS
	Logger *util.Logger
}

// New returns a Resolver backed by the system resolver.
func New(logger *util.Logger) *Resolver {
	return &Resolver{Lookup: net.DefaultResolver, Logger: logger}
}

func (r *Resolver) lookup() Lookup {
	if r.Lookup != nil {
		return r.Lookup
	}
	return net.DefaultResolver
}

// Resolve returns the address for host.  A host whose final character
// is a decimal digit is treated as an IP literal and parsed directly;
// anything else goes through the name lookup.
func (r *Resolver) Resolve(ctx context.Context, host string) (net.IP, error) {
	if isLiteral(host) {
		ip := net.ParseIP(host)
		if ip == nil {
			return nil, &errors.AddressError{Text: host}
		}
		return ip, nil
	}

	if r.NoDNS {
		return nil, errors.WrapResolve(host,
			errors.New("DNS resolution disabled with -n"))
	}

	r.Logger.Verbose("resolving %s", host)
	addrs, err := r.lookup().LookupHost(ctx, host)
	if err != nil {
		return nil, errors.WrapResolve(host, err)
	}
	if len(addrs) == 0 {
		return nil, errors.WrapResolve(host, errors.New("no addresses"))
	}

	ip := net.ParseIP(addrs[0])
	if ip == nil {
		return nil, &errors.AddressError{Text: addrs[0]}
	}
	r.Logger.Verbose("resolved %s to %s", host, ip)
	return ip, nil
}

// isLiteral reports whether host looks like an IP literal.  The
// heuristic is the trailing character: names never end in a digit,
// IPv4 and (almost all) IPv6 literals do.
func isLiteral(host string) bool {
	if host == "" {
		return false
	}
	c := host[len(host)-1]
	return c >= '0' && c <= '9'
}
