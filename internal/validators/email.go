package validators

import (
	"net"
	"strings"
)

// emailDomain extrai o domínio depois do último "@", em minúsculas.
// Vazio quando o endereço não tem domínio utilizável.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// IsEmailDomainValid faz uma checagem barata de existência do domínio
// antes de criar a conta: MX primeiro, A/AAAA como fallback para
// domínios que recebem e-mail sem registro MX.
func IsEmailDomainValid(email string) bool {
	domain := emailDomain(email)
	if domain == "" {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
