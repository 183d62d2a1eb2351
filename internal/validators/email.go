package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// EmailDomain confere se o domínio do e-mail recebe correio (MX) ou ao
// menos resolve. Falha de DNS conta como domínio inválido.
type EmailDomain struct {
	Resolver *net.Resolver
	Timeout  time.Duration
}

func NewEmailDomain() *EmailDomain {
	return &EmailDomain{Resolver: net.DefaultResolver, Timeout: 3 * time.Second}
}

// domainOf devolve "" para endereços sem domínio.
func domainOf(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") || strings.ContainsAny(domain, " /\\") {
		return ""
	}
	return domain
}

func (v *EmailDomain) Valid(email string) bool {
	domain := domainOf(email)
	if domain == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), v.Timeout)
	defer cancel()

	if mx, err := v.Resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := v.Resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
