package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailDomain(t *testing.T) {
	cases := []struct {
		name  string
		email string
		want  string
	}{
		{"simples", "dono@barbearia.com.br", "barbearia.com.br"},
		{"maiúsculas", "Dono@Barbearia.COM.BR", "barbearia.com.br"},
		{"arroba na parte local", `"a@b"@exemplo.com`, "exemplo.com"},
		{"sem arroba", "barbearia.com.br", ""},
		{"sem domínio", "dono@", ""},
		{"sem parte local", "@exemplo.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, emailDomain(tc.email))
		})
	}
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("sem-arroba"))
	assert.False(t, IsEmailDomainValid("dono@"))
}
