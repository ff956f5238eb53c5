package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbeariapro/barbearia-api/internal/models"
)

var saoPaulo = mustLoad("America/Sao_Paulo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, saoPaulo)
}

func at(date time.Time, hour, min int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, date.Location())
}

func TestBuildGridMarksBookedSlots(t *testing.T) {
	date := day(2030, time.June, 10)
	tpl := DayTemplate{
		Start: at(date, 9, 0),
		End:   at(date, 12, 0),
	}

	busy := []Interval{
		{Start: at(date, 10, 0), End: at(date, 10, 30)},
	}

	grid := BuildGrid(tpl, 30*time.Minute, busy)
	require.Len(t, grid, 6)

	expected := []struct {
		hour, min int
		status    SlotStatus
	}{
		{9, 0, SlotFree},
		{9, 30, SlotFree},
		{10, 0, SlotBooked},
		{10, 30, SlotFree},
		{11, 0, SlotFree},
		{11, 30, SlotFree},
	}

	for i, exp := range expected {
		assert.Equal(t, at(date, exp.hour, exp.min), grid[i].Start, "slot %d", i)
		assert.Equal(t, exp.status, grid[i].Status, "slot %d", i)
	}
}

func TestBuildGridSlotCount(t *testing.T) {
	date := day(2030, time.June, 10)
	granularity := 30 * time.Minute

	// 09:00-18:00 com pausa 12:00-13:00 = 8h úteis = 16 slots de 30min
	tpl := DayTemplate{
		Start:      at(date, 9, 0),
		End:        at(date, 18, 0),
		BreakStart: at(date, 12, 0),
		BreakEnd:   at(date, 13, 0),
	}

	grid := BuildGrid(tpl, granularity, nil)
	assert.Len(t, grid, 16)

	// Grade ordenada e contígua dentro de cada janela
	for i := 1; i < len(grid); i++ {
		assert.True(t, grid[i].Start.After(grid[i-1].Start))
	}
}

func TestBuildGridBreakTruncatesNeighborSlot(t *testing.T) {
	date := day(2030, time.June, 10)

	// Pausa desalinhada (12:10-13:10): o slot 12:00-12:30 não cabe na
	// manhã, e a tarde começa exatamente às 13:10.
	tpl := DayTemplate{
		Start:      at(date, 9, 0),
		End:        at(date, 18, 0),
		BreakStart: at(date, 12, 10),
		BreakEnd:   at(date, 13, 10),
	}

	grid := BuildGrid(tpl, 30*time.Minute, nil)
	require.NotEmpty(t, grid)

	var firstAfternoon *Slot
	for i := range grid {
		if !grid[i].Start.Before(at(date, 12, 10)) {
			firstAfternoon = &grid[i]
			break
		}
	}

	require.NotNil(t, firstAfternoon)
	assert.Equal(t, at(date, 13, 10), firstAfternoon.Start)

	// Último slot da manhã termina antes da pausa
	for _, s := range grid {
		if s.Start.Before(at(date, 12, 10)) {
			assert.False(t, s.End.After(at(date, 12, 10)))
		}
	}
}

func TestBuildGridOverlapIsHalfOpen(t *testing.T) {
	date := day(2030, time.June, 10)
	tpl := DayTemplate{
		Start: at(date, 9, 0),
		End:   at(date, 11, 0),
	}

	// Agendamento 09:30-10:00: encostar não é sobrepor
	busy := []Interval{{Start: at(date, 9, 30), End: at(date, 10, 0)}}

	grid := BuildGrid(tpl, 30*time.Minute, busy)
	require.Len(t, grid, 4)

	assert.Equal(t, SlotFree, grid[0].Status)
	assert.Equal(t, SlotBooked, grid[1].Status)
	assert.Equal(t, SlotFree, grid[2].Status)
	assert.Equal(t, SlotFree, grid[3].Status)
}

func TestTemplateForDate(t *testing.T) {
	date := day(2030, time.June, 10)

	t.Run("dia ativo", func(t *testing.T) {
		wh := &models.WorkingHours{
			Active:    true,
			StartTime: "09:00",
			EndTime:   "18:00",
		}

		tpl, ok := TemplateForDate(wh, date)
		require.True(t, ok)
		assert.Equal(t, at(date, 9, 0), tpl.Start)
		assert.Equal(t, at(date, 18, 0), tpl.End)
	})

	t.Run("dia inativo devolve grade vazia", func(t *testing.T) {
		wh := &models.WorkingHours{
			Active:    false,
			StartTime: "09:00",
			EndTime:   "18:00",
		}

		_, ok := TemplateForDate(wh, date)
		assert.False(t, ok)
	})

	t.Run("sem expediente cadastrado", func(t *testing.T) {
		_, ok := TemplateForDate(nil, date)
		assert.False(t, ok)
	})

	t.Run("fim antes do início", func(t *testing.T) {
		wh := &models.WorkingHours{
			Active:    true,
			StartTime: "18:00",
			EndTime:   "09:00",
		}

		_, ok := TemplateForDate(wh, date)
		assert.False(t, ok)
	})
}

func TestIsValidSlotStart(t *testing.T) {
	date := day(2030, time.June, 10)
	granularity := 30 * time.Minute
	tpl := DayTemplate{
		Start:      at(date, 9, 0),
		End:        at(date, 18, 0),
		BreakStart: at(date, 12, 0),
		BreakEnd:   at(date, 13, 0),
	}

	assert.True(t, IsValidSlotStart(tpl, granularity, at(date, 9, 0)))
	assert.True(t, IsValidSlotStart(tpl, granularity, at(date, 11, 30)))
	assert.True(t, IsValidSlotStart(tpl, granularity, at(date, 13, 0)))
	assert.True(t, IsValidSlotStart(tpl, granularity, at(date, 17, 30)))

	// Desalinhado à granularidade
	assert.False(t, IsValidSlotStart(tpl, granularity, at(date, 9, 15)))
	// Dentro da pausa
	assert.False(t, IsValidSlotStart(tpl, granularity, at(date, 12, 0)))
	// Fora do expediente
	assert.False(t, IsValidSlotStart(tpl, granularity, at(date, 8, 30)))
	assert.False(t, IsValidSlotStart(tpl, granularity, at(date, 18, 0)))
}

func TestIsValidRange(t *testing.T) {
	date := day(2030, time.June, 10)
	granularity := 30 * time.Minute
	tpl := DayTemplate{
		Start:      at(date, 9, 0),
		End:        at(date, 18, 0),
		BreakStart: at(date, 12, 0),
		BreakEnd:   at(date, 13, 0),
	}

	// Serviço de 60min ocupando dois slots contíguos
	assert.True(t, IsValidRange(tpl, granularity, at(date, 10, 0), at(date, 11, 0)))

	// Atravessar a pausa é inválido
	assert.False(t, IsValidRange(tpl, granularity, at(date, 11, 30), at(date, 13, 30)))

	// Estourar o fim do expediente é inválido
	assert.False(t, IsValidRange(tpl, granularity, at(date, 17, 30), at(date, 18, 30)))
}

func TestBusyIntervalsIgnoresCancelled(t *testing.T) {
	date := day(2030, time.June, 10)

	appointments := []models.Appointment{
		{StartTime: at(date, 9, 0), EndTime: at(date, 9, 30), Status: string(StatusScheduled)},
		{StartTime: at(date, 10, 0), EndTime: at(date, 10, 30), Status: string(StatusCancelled)},
		{StartTime: at(date, 11, 0), EndTime: at(date, 11, 30), Status: string(StatusCompleted)},
	}

	busy := BusyIntervals(appointments)
	require.Len(t, busy, 2)
	assert.Equal(t, at(date, 9, 0), busy[0].Start)
	assert.Equal(t, at(date, 11, 0), busy[1].Start)
}

func TestCancelReleasesAndIsTerminal(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusScheduled)}

	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)

	// Cancelar de novo, ou concluir um cancelado, é estado inválido
	assert.Error(t, Cancel(ap, now))
	assert.Error(t, Complete(ap, now))
}
