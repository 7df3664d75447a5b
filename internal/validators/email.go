package validators

import (
	"context"
	"net"
	"strings"
)

// DomainChecker reports whether the domain of an email address can
// receive mail.
type DomainChecker func(ctx context.Context, email string) bool

// IsEmailDomainValid looks up MX records, falling back to A/AAAA.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	domain := EmailDomain(email)
	if domain == "" {
		return false
	}

	var r net.Resolver

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// AcceptAll skips DNS checks.
func AcceptAll(context.Context, string) bool {
	return true
}

func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
