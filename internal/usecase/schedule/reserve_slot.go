package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barbeariapro/barbearia-api/internal/audit"
	domain "github.com/barbeariapro/barbearia-api/internal/domain/schedule"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/metrics"
	"github.com/barbeariapro/barbearia-api/internal/models"
	"github.com/barbeariapro/barbearia-api/internal/timezone"
	"github.com/barbeariapro/barbearia-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type ReserveSlotInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint // 0 = sem serviço, reserva de um slot

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	// true para reservas feitas pelo próprio painel (sem antecedência
	// mínima do público)
	Internal bool
}

// ======================================================
// USE CASE
// ======================================================

type ReserveSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReserveSlot(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
) *ReserveSlot {
	return &ReserveSlot{
		repo:  repo,
		audit: dispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute revalida tudo que o cliente alega (alinhamento do slot,
// expediente, antecedência) antes de tentar a reserva. Uma lista de
// slots velha no navegador nunca passa batida. A escrita em si é
// serializada pelo banco: em corrida pela mesma chave, exatamente um
// INSERT vence e os perdedores recebem slot_conflict.
func (uc *ReserveSlot) Execute(
	ctx context.Context,
	in ReserveSlotInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Barbearia e barbeiro
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeShopNotFound)
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}

	// --------------------------------------------------
	// Data/hora no fuso da barbearia
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Antecedência mínima (reserva pública)
	// --------------------------------------------------
	now := timezone.NowIn(shop.Timezone)
	if in.Internal {
		if start.Before(now) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	} else {
		minAdvance := shop.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	// --------------------------------------------------
	// Alinhamento do slot + expediente
	// --------------------------------------------------
	granularity := slotGranularity(barber.SlotMinutes)

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, int(start.Weekday()))
	if err != nil {
		metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	tpl, ok := domain.TemplateForDate(wh, start)
	if !ok {
		metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	// --------------------------------------------------
	// Duração (slots inteiros)
	// --------------------------------------------------
	duration := granularity
	var serviceID *uint
	if in.ServiceID != 0 {
		service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		duration = roundUpToSlots(
			time.Duration(service.DurationMin)*time.Minute,
			granularity,
		)
		serviceID = &service.ID
	}

	end := start.Add(duration)
	if !domain.IsValidRange(tpl, granularity, start, end) {
		metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	// --------------------------------------------------
	// Cliente (find-or-create por telefone, à prova de corrida)
	// --------------------------------------------------
	client, err := uc.findOrCreateClient(ctx, in, shop.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Reserva (o banco decide o vencedor)
	// --------------------------------------------------
	ap := &models.Appointment{
		Reference:    uuid.NewString(),
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    serviceID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
			uc.audit.Dispatch(audit.Event{
				BarbershopID: in.BarbershopID,
				Action:       audit.ActionAppointmentConflict,
				Entity:       "appointment",
				Metadata: map[string]any{
					"barber_id": in.BarberID,
					"start":     start,
				},
			})
		}
		return nil, err
	}

	metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeCreated).Inc()
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       audit.ActionAppointmentCreated,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// findOrCreateClient deduplica pelo telefone normalizado. Dois cadastros
// simultâneos do mesmo número nunca geram duas linhas: quem perde a
// corrida no índice único refaz a busca.
func (uc *ReserveSlot) findOrCreateClient(
	ctx context.Context,
	in ReserveSlotInput,
	barbershopID uint,
) (*models.Client, error) {

	phone, err := validators.NormalizePhone(in.ClientPhone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	if client, err := uc.repo.FindClientByPhone(ctx, barbershopID, phone); err == nil {
		return client, nil
	}

	client := &models.Client{
		BarbershopID: barbershopID,
		Name:         in.ClientName,
		Phone:        phone,
		Email:        in.ClientEmail,
	}

	if err := uc.repo.CreateClient(ctx, client); err != nil {
		if httperr.IsUniqueViolation(err) {
			return uc.repo.FindClientByPhone(ctx, barbershopID, phone)
		}
		return nil, err
	}

	return client, nil
}

func roundUpToSlots(d, granularity time.Duration) time.Duration {
	if d <= granularity {
		return granularity
	}
	slots := (d + granularity - 1) / granularity
	return slots * granularity
}
