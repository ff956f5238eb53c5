package schedule

import (
	"context"
	"time"

	domain "github.com/barbeariapro/barbearia-api/internal/domain/schedule"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/timezone"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	Date         time.Time // ancorada no fuso da barbearia
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute devolve a grade completa do dia: todo slot do expediente,
// marcado livre ou ocupado, em ordem crescente. Dia sem expediente
// devolve grade vazia, não erro.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.Slot, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeShopNotFound)
	}

	now := timezone.NowIn(shop.Timezone)
	today, _ := timezone.DayBounds(now)
	if in.Date.Before(today) {
		return nil, httperr.ErrBusiness("past_date")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, int(in.Date.Weekday()))
	if err != nil {
		return []domain.Slot{}, nil
	}

	tpl, ok := domain.TemplateForDate(wh, in.Date)
	if !ok {
		return []domain.Slot{}, nil
	}

	dayStart, dayEnd := timezone.DayBounds(in.Date)
	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.BarberID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	granularity := slotGranularity(barber.SlotMinutes)
	return domain.BuildGrid(tpl, granularity, domain.BusyIntervals(appointments)), nil
}

func slotGranularity(minutes int) time.Duration {
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}
