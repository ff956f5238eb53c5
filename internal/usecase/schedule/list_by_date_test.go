package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A data do painel chega como meia-noite UTC. Para uma barbearia em
// São Paulo (UTC-3), converter o instante recuaria para o dia anterior
// e a listagem voltaria vazia. O dia civil deve ser reconstruído no
// fuso da loja.
func TestListByDateKeepsCivilDayAcrossTimezones(t *testing.T) {
	repo := newFakeRepo()
	reserve := newReserve(repo)

	_, err := reserve.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	date, err := time.Parse("2006-01-02", testDate)
	require.NoError(t, err)

	uc := NewListAppointmentsByDate(repo)
	items, err := uc.Execute(context.Background(), 7, 1, date)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, testDate, items[0].StartTime.Format("2006-01-02"))
}
