package schedule

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barbeariapro/barbearia-api/internal/domain/schedule"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo reproduz em memória o contrato do repositório real,
// inclusive a serialização de reservas: com o lock em mãos, uma
// reserva só entra se não sobrepor nenhum agendamento vivo.
type fakeRepo struct {
	mu sync.Mutex

	shop     *models.Barbershop
	barber   *models.User
	services map[uint]*models.Service
	hours    *models.WorkingHours

	clients      []*models.Client
	appointments []*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	trialEnd := time.Now().AddDate(0, 0, 14)
	return &fakeRepo{
		shop: &models.Barbershop{
			ID:                1,
			Name:              "Barbearia do Zé",
			Slug:              "barbearia-do-ze",
			Timezone:          "America/Sao_Paulo",
			TrialExpiresAt:    &trialEnd,
			MinAdvanceMinutes: 120,
		},
		barber: &models.User{
			ID:           7,
			BarbershopID: 1,
			Name:         "Zé",
			Role:         models.RoleBarbearia,
			SlotMinutes:  30,
			Active:       true,
		},
		services: map[uint]*models.Service{},
		hours: &models.WorkingHours{
			BarberID:  7,
			Active:    true,
			StartTime: "09:00",
			EndTime:   "18:00",
		},
	}
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if f.shop == nil || f.shop.ID != id {
		return nil, fmt.Errorf("not found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	if f.shop == nil || f.shop.Slug != slug {
		return nil, fmt.Errorf("not found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.User, error) {
	if f.barber == nil || f.barber.ID != barberID || f.barber.BarbershopID != barbershopID {
		return nil, fmt.Errorf("not found")
	}
	return f.barber, nil
}

func (f *fakeRepo) GetService(_ context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.BarbershopID != barbershopID {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (f *fakeRepo) FindClientByPhone(_ context.Context, barbershopID uint, phone string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.clients {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			return c, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeRepo) CreateClient(_ context.Context, client *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	client.ID = f.nextID
	f.clients = append(f.clients, client)
	return nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.appointments {
		if existing.BarberID != ap.BarberID {
			continue
		}
		if !domain.Status(existing.Status).Occupies() {
			continue
		}
		if ap.StartTime.Before(existing.EndTime) && ap.EndTime.After(existing.StartTime) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}

	f.nextID++
	ap.ID = f.nextID
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			return ap, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, _ uint, _ int) (*models.WorkingHours, error) {
	if f.hours == nil {
		return nil, fmt.Errorf("not found")
	}
	return f.hours, nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.ListAppointmentsForDay(ctx, barberID, start, end)
}

func (f *fakeRepo) CountScheduledBetween(_ context.Context, barbershopID uint, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, ap := range f.appointments {
		if ap.BarbershopID != barbershopID || ap.Status != string(domain.StatusScheduled) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

const testDate = "2030-06-10"

func newReserve(repo domain.Repository) *ReserveSlot {
	return NewReserveSlot(repo, nil)
}

func baseInput() ReserveSlotInput {
	return ReserveSlotInput{
		BarbershopID: 1,
		BarberID:     7,
		ClientName:   "Carlos",
		ClientPhone:  "(11) 98888-7777",
		Date:         testDate,
		Time:         "10:00",
		Internal:     true,
	}
}

// ======================================================
// TESTS
// ======================================================

func TestReserveSlotHappyPath(t *testing.T) {
	repo := newFakeRepo()
	uc := newReserve(repo)

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	assert.NotEmpty(t, ap.Reference)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
	require.Len(t, repo.clients, 1)
	assert.Equal(t, "5511988887777", repo.clients[0].Phone)
}

// Corrida pelo mesmo slot: exatamente uma reserva vence, todas as
// outras recebem slot_conflict. Nunca zero, nunca duas.
func TestReserveSlotConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := newReserve(repo)

	const n = 16
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := baseInput()
			in.ClientPhone = fmt.Sprintf("119%08d", i)
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case httperr.IsBusiness(err, httperr.CodeSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, repo.appointments, 1)
}

// Corrida entre reservas de múltiplos slots com inícios diferentes mas
// intervalos sobrepostos (10:00-11:00 contra 10:30-11:30). A checagem
// por início igual não basta: o conflito é de intervalo, e exatamente
// uma das duas deve entrar.
func TestReserveSlotConcurrentOverlappingRanges(t *testing.T) {
	repo := newFakeRepo()
	repo.services[5] = &models.Service{
		ID:           5,
		BarbershopID: 1,
		Name:         "Combo completo",
		DurationMin:  60,
		Active:       true,
	}
	uc := newReserve(repo)

	starts := []string{"10:00", "10:30"}
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i, start := range starts {
		wg.Add(1)
		go func(i int, start string) {
			defer wg.Done()
			in := baseInput()
			in.ServiceID = 5
			in.Time = start
			in.ClientPhone = fmt.Sprintf("119%08d", i)
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i, start)
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case httperr.IsBusiness(err, httperr.CodeSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, conflicts)
	require.Len(t, repo.appointments, 1)
	assert.Equal(t, 60*time.Minute, repo.appointments[0].EndTime.Sub(repo.appointments[0].StartTime))
}

func TestReserveSlotClientDeduplicatedByPhone(t *testing.T) {
	repo := newFakeRepo()
	uc := newReserve(repo)

	first := baseInput()
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Mesmo número em outro formato, horário diferente
	second := baseInput()
	second.ClientPhone = "11 98888 7777"
	second.Time = "11:00"
	_, err = uc.Execute(context.Background(), second)
	require.NoError(t, err)

	require.Len(t, repo.clients, 1)
	require.Len(t, repo.appointments, 2)
	assert.Equal(t, repo.clients[0].ID, repo.appointments[0].ClientID)
	assert.Equal(t, repo.clients[0].ID, repo.appointments[1].ClientID)
}

func TestReserveSlotRejectsInvalidStart(t *testing.T) {
	cases := []struct {
		name string
		time string
	}{
		{"desalinhado", "10:15"},
		{"antes do expediente", "08:00"},
		{"depois do expediente", "18:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := newReserve(repo)

			in := baseInput()
			in.Time = tc.time
			_, err := uc.Execute(context.Background(), in)

			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSlot))
			// Validação falhou antes de qualquer escrita
			assert.Empty(t, repo.clients)
			assert.Empty(t, repo.appointments)
		})
	}
}

func TestReserveSlotServiceSpansWholeSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.services[3] = &models.Service{
		ID:           3,
		BarbershopID: 1,
		Name:         "Corte + Barba",
		DurationMin:  45,
		Active:       true,
	}
	uc := newReserve(repo)

	in := baseInput()
	in.ServiceID = 3
	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// 45min arredonda para cima: dois slots de 30min
	assert.Equal(t, 60*time.Minute, ap.EndTime.Sub(ap.StartTime))
	require.NotNil(t, ap.ServiceID)
	assert.Equal(t, uint(3), *ap.ServiceID)
}

func TestReserveSlotPublicMinAdvance(t *testing.T) {
	repo := newFakeRepo()
	uc := newReserve(repo)

	in := baseInput()
	in.Internal = false
	in.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestReserveSlotInvalidPhone(t *testing.T) {
	repo := newFakeRepo()
	uc := newReserve(repo)

	in := baseInput()
	in.ClientPhone = "123"
	_, err := uc.Execute(context.Background(), in)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
	assert.Empty(t, repo.appointments)
}

func TestReserveSlotUnknownBarber(t *testing.T) {
	repo := newFakeRepo()
	uc := newReserve(repo)

	in := baseInput()
	in.BarberID = 99
	_, err := uc.Execute(context.Background(), in)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
}
