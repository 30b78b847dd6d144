// Package resolver queries nameservers directly and reports an empty answer,
// a timeout and failing nameservers as distinct probe.ResolveError kinds.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/hamed0406/opscheck/internal/probe"
)

// ErrNXDomain is returned when a nameserver says the name does not exist.
// It is deliberately outside the retryable set.
var ErrNXDomain = errors.New("NXDOMAIN")

const resolvConf = "/etc/resolv.conf"

type Resolver struct {
	Servers  []string // host:port
	Timeout  time.Duration
	Lifetime time.Duration
	client   *dns.Client
}

// New builds a resolver for servers, or for the nameservers of
// /etc/resolv.conf when servers is empty.
func New(servers []string, timeout, lifetime time.Duration) (*Resolver, error) {
	if len(servers) == 0 {
		cc, err := dns.ClientConfigFromFile(resolvConf)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", resolvConf, err)
		}
		for _, s := range cc.Servers {
			servers = append(servers, net.JoinHostPort(s, cc.Port))
		}
	}
	if len(servers) == 0 {
		return nil, errors.New("no nameservers configured")
	}
	return &Resolver{
		Servers:  servers,
		Timeout:  timeout,
		Lifetime: lifetime,
		client:   &dns.Client{Net: "udp", Timeout: timeout},
	}, nil
}

// Resolve asks for the A records of name, trying each server in turn until
// one gives an authoritative answer.
func (r *Resolver) Resolve(ctx context.Context, name string) (probe.Answer, error) {
	if _, ok := dns.IsDomainName(name); !ok {
		return probe.Answer{}, fmt.Errorf("invalid domain name %q", name)
	}
	if r.Lifetime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Lifetime)
		defer cancel()
	}

	q := new(dns.Msg)
	q.SetQuestion(dns.Fqdn(name), dns.TypeA)
	q.RecursionDesired = true

	var (
		errs     []string
		timeouts int
	)
	for _, server := range r.Servers {
		if err := ctx.Err(); err != nil {
			break
		}
		resp, _, err := r.client.ExchangeContext(ctx, q, server)
		if err != nil {
			if isTimeout(err) {
				timeouts++
			}
			errs = append(errs, fmt.Sprintf("%s: %v", server, err))
			continue
		}
		if resp.Truncated {
			resp, err = r.exchangeTCP(ctx, q, server)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s (tcp): %v", server, err))
				continue
			}
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
			recs := answerRecords(resp, dns.TypeA)
			if len(recs) == 0 {
				return probe.Answer{}, &probe.ResolveError{Kind: probe.NoAnswer, Name: name}
			}
			return probe.Answer{Records: recs}, nil
		case dns.RcodeNameError:
			return probe.Answer{}, fmt.Errorf("resolve %s: %w", name, ErrNXDomain)
		default:
			errs = append(errs, fmt.Sprintf("%s: %s", server, dns.RcodeToString[resp.Rcode]))
		}
	}

	// the caller's own deadline or cancellation is not ours to classify
	if parent := context.Cause(ctx); parent != nil && !errors.Is(parent, context.DeadlineExceeded) {
		return probe.Answer{}, parent
	}
	if ctx.Err() != nil || (timeouts > 0 && timeouts == len(errs)) {
		return probe.Answer{}, &probe.ResolveError{Kind: probe.Timeout, Name: name, Err: joinErrs(errs)}
	}
	return probe.Answer{}, &probe.ResolveError{Kind: probe.NoNameservers, Name: name, Err: joinErrs(errs)}
}

func (r *Resolver) exchangeTCP(ctx context.Context, q *dns.Msg, server string) (*dns.Msg, error) {
	c := &dns.Client{Net: "tcp", Timeout: r.Timeout}
	resp, _, err := c.ExchangeContext(ctx, q, server)
	return resp, err
}

// answerRecords keeps records of type t. A recursive server answering through
// a CNAME chain already includes the final A records.
func answerRecords(m *dns.Msg, t uint16) []string {
	var out []string
	for _, rr := range m.Answer {
		if rr.Header().Rrtype == t {
			out = append(out, rr.String())
		}
	}
	return out
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func joinErrs(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, "; "))
}
