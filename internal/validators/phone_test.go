package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"celular com máscara", "(11) 98888-7777", "5511988887777"},
		{"celular sem máscara", "11988887777", "5511988887777"},
		{"fixo com DDD", "1133334444", "551133334444"},
		{"já com DDI", "5511988887777", "5511988887777"},
		{"DDI com +", "+55 11 98888-7777", "5511988887777"},
		{"zero à esquerda", "011988887777", "5511988887777"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePhoneSameNumberSameKey(t *testing.T) {
	formats := []string{
		"(11) 98888-7777",
		"11 98888 7777",
		"11988887777",
		"+5511988887777",
	}

	first, err := NormalizePhone(formats[0])
	require.NoError(t, err)

	for _, f := range formats[1:] {
		got, err := NormalizePhone(f)
		require.NoError(t, err)
		assert.Equal(t, first, got, f)
	}
}

func TestNormalizePhoneInvalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"vazio", ""},
		{"só espaços", "   "},
		{"curto demais", "12345"},
		{"longo demais", "5511988887777999999"},
		{"sem dígitos", "abc-def"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizePhone(tc.in)
			assert.Error(t, err)
		})
	}
}
