package schedule

import (
	"time"

	"github.com/barbeariapro/barbearia-api/internal/models"
)

// ===============================
// Slot Grid
// ===============================

type SlotStatus string

const (
	SlotFree   SlotStatus = "free"
	SlotBooked SlotStatus = "booked"
)

type Slot struct {
	Start  time.Time
	End    time.Time
	Status SlotStatus
}

type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

// DayTemplate é o expediente de um barbeiro ancorado em uma data
// concreta, já no fuso da barbearia. Pausa zerada = sem pausa.
type DayTemplate struct {
	Start      time.Time
	End        time.Time
	BreakStart time.Time
	BreakEnd   time.Time
}

func (t DayTemplate) hasBreak() bool {
	return !t.BreakStart.IsZero() && !t.BreakEnd.IsZero() && t.BreakEnd.After(t.BreakStart)
}

// segments divide o expediente em janelas contínuas. A segunda janela
// começa exatamente no fim da pausa: uma pausa desalinhada à
// granularidade trunca o slot vizinho, nunca arredonda.
func (t DayTemplate) segments() []Interval {
	if !t.hasBreak() {
		return []Interval{{Start: t.Start, End: t.End}}
	}

	segs := make([]Interval, 0, 2)
	if t.BreakStart.After(t.Start) {
		segs = append(segs, Interval{Start: t.Start, End: minTime(t.BreakStart, t.End)})
	}
	if t.BreakEnd.Before(t.End) {
		segs = append(segs, Interval{Start: maxTime(t.BreakEnd, t.Start), End: t.End})
	}
	return segs
}

// TemplateForDate ancora o expediente do weekday sobre a data. O
// segundo retorno é false quando o dia não tem expediente ativo:
// grade vazia, não erro.
func TemplateForDate(wh *models.WorkingHours, date time.Time) (DayTemplate, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return DayTemplate{}, false
	}

	tpl := DayTemplate{
		Start: atClock(date, wh.StartTime),
		End:   atClock(date, wh.EndTime),
	}
	if !tpl.End.After(tpl.Start) {
		return DayTemplate{}, false
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		tpl.BreakStart = atClock(date, wh.BreakStart)
		tpl.BreakEnd = atClock(date, wh.BreakEnd)
	}

	return tpl, true
}

// BuildGrid particiona o expediente em slots contíguos de `granularity`
// e marca cada um como livre ou ocupado conforme os intervalos já
// agendados (não cancelados). Saída ordenada por horário de início.
func BuildGrid(tpl DayTemplate, granularity time.Duration, busy []Interval) []Slot {
	if granularity <= 0 {
		return nil
	}

	var slots []Slot
	for _, seg := range tpl.segments() {
		for cur := seg.Start; !cur.Add(granularity).After(seg.End); cur = cur.Add(granularity) {
			slot := Slot{
				Start:  cur,
				End:    cur.Add(granularity),
				Status: SlotFree,
			}
			for _, b := range busy {
				if b.Overlaps(slot.Start, slot.End) {
					slot.Status = SlotBooked
					break
				}
			}
			slots = append(slots, slot)
		}
	}

	return slots
}

// IsValidSlotStart confere se `start` cai exatamente em um início de
// slot da grade: dentro do expediente, alinhado à granularidade e
// fora da pausa. Revalidado no servidor: uma lista de slots velha no
// cliente nunca passa por aqui.
func IsValidSlotStart(tpl DayTemplate, granularity time.Duration, start time.Time) bool {
	if granularity <= 0 {
		return false
	}

	for _, seg := range tpl.segments() {
		if start.Before(seg.Start) || start.Add(granularity).After(seg.End) {
			continue
		}
		offset := start.Sub(seg.Start)
		if offset%granularity == 0 {
			return true
		}
	}
	return false
}

// IsValidRange confere se [start, end) começa em um início de slot e
// cabe inteiro dentro de uma única janela do expediente: um
// atendimento nunca atravessa a pausa.
func IsValidRange(tpl DayTemplate, granularity time.Duration, start, end time.Time) bool {
	if !IsValidSlotStart(tpl, granularity, start) || !end.After(start) {
		return false
	}

	for _, seg := range tpl.segments() {
		if !start.Before(seg.Start) && !end.After(seg.End) {
			return true
		}
	}
	return false
}

// BusyIntervals extrai os intervalos ocupados de uma lista de
// agendamentos, ignorando cancelados.
func BusyIntervals(appointments []models.Appointment) []Interval {
	out := make([]Interval, 0, len(appointments))
	for _, ap := range appointments {
		if !Status(ap.Status).Occupies() {
			continue
		}
		out = append(out, Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return out
}

func atClock(date time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
