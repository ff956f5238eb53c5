package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barbeariapro/barbearia-api/internal/domain/schedule"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/timezone"
)

func testDay(t *testing.T, repo *fakeRepo) time.Time {
	t.Helper()

	loc := timezone.Location(repo.shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", testDate, loc)
	require.NoError(t, err)
	return date
}

func TestGetAvailabilityFullGrid(t *testing.T) {
	repo := newFakeRepo()
	repo.hours.StartTime = "09:00"
	repo.hours.EndTime = "12:00"
	uc := NewGetAvailability(repo)

	// Reserva o slot das 10:00 antes de pedir a grade
	_, err := newReserve(repo).Execute(context.Background(), baseInput())
	require.NoError(t, err)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		BarbershopID: 1,
		BarberID:     7,
		Date:         testDay(t, repo),
	})
	require.NoError(t, err)
	require.Len(t, slots, 6)

	statuses := make([]domain.SlotStatus, 0, len(slots))
	for _, s := range slots {
		statuses = append(statuses, s.Status)
	}

	assert.Equal(t, []domain.SlotStatus{
		domain.SlotFree,
		domain.SlotFree,
		domain.SlotBooked,
		domain.SlotFree,
		domain.SlotFree,
		domain.SlotFree,
	}, statuses)
}

func TestGetAvailabilityCancelledFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.hours.StartTime = "09:00"
	repo.hours.EndTime = "12:00"

	ap, err := newReserve(repo).Execute(context.Background(), baseInput())
	require.NoError(t, err)

	cancelUC := NewCancelAppointment(repo, nil)
	_, err = cancelUC.Execute(context.Background(), 1, 7, ap.ID)
	require.NoError(t, err)

	slots, err := NewGetAvailability(repo).Execute(context.Background(), AvailabilityInput{
		BarbershopID: 1,
		BarberID:     7,
		Date:         testDay(t, repo),
	})
	require.NoError(t, err)

	for _, s := range slots {
		assert.Equal(t, domain.SlotFree, s.Status)
	}
}

func TestGetAvailabilityDayOff(t *testing.T) {
	repo := newFakeRepo()
	repo.hours.Active = false
	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		BarbershopID: 1,
		BarberID:     7,
		Date:         testDay(t, repo),
	})

	// Dia sem expediente: grade vazia, não erro
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailabilityPastDate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo)

	loc := timezone.Location(repo.shop.Timezone)
	yesterday := time.Now().In(loc).AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		BarbershopID: 1,
		BarberID:     7,
		Date:         yesterday,
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "past_date"))
}

func TestGetAvailabilityUnknownBarber(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		BarbershopID: 1,
		BarberID:     99,
		Date:         testDay(t, repo),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
}

func TestCancelAndCompleteLifecycle(t *testing.T) {
	repo := newFakeRepo()

	ap, err := newReserve(repo).Execute(context.Background(), baseInput())
	require.NoError(t, err)

	t.Run("concluir agendado", func(t *testing.T) {
		done, err := NewCompleteAppointment(repo, nil).Execute(context.Background(), 1, 7, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), done.Status)
		require.NotNil(t, done.CompletedAt)
	})

	t.Run("cancelar concluído é estado inválido", func(t *testing.T) {
		_, err := NewCancelAppointment(repo, nil).Execute(context.Background(), 1, 7, ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("agendamento de outro barbeiro não aparece", func(t *testing.T) {
		_, err := NewCancelAppointment(repo, nil).Execute(context.Background(), 1, 99, ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}
