package validators

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizePhone reduz um telefone à forma canônica usada como chave de
// deduplicação de clientes (apenas dígitos, DDI incluído).
//
// Heurística (Brasil):
// - remove tudo que não é dígito
// - 10/11 dígitos (DDD+número) → prefixa 55
// - já com DDI → mantém
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty phone")
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	phone := strings.TrimLeft(b.String(), "0")

	if len(phone) == 10 || len(phone) == 11 {
		phone = "55" + phone
	}

	if len(phone) < 12 || len(phone) > 15 {
		return "", fmt.Errorf("invalid phone length: %d", len(phone))
	}

	return phone, nil
}
