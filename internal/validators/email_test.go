package validators

import "testing"

func TestDomainOf(t *testing.T) {
	tests := map[string]string{
		"ana@Example.COM":  "example.com",
		" joao@barber.io ": "barber.io",
		"a@b@corte.com.br": "corte.com.br",
		"sem-arroba":       "",
		"@example.com":     "",
		"ana@":             "",
		"ana@localhost":    "",
		"ana@exa mple.com": "",
	}

	for in, want := range tests {
		if got := domainOf(in); got != want {
			t.Errorf("domainOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidRejectsMalformedWithoutLookup(t *testing.T) {
	v := &EmailDomain{}
	if v.Valid("sem-arroba") {
		t.Fatal("malformed address accepted")
	}
}
