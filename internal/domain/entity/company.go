package entity

import "time"

// Company representa una organización/tenant del sistema. Es la raíz de aislamiento:
// sucursales, usuarios, inventario, ventas, compras y suscripción cuelgan de ella.
// Solo una empresa puede ser la proveedora (IsProvider), la que opera la plataforma.
type Company struct {
	ID         string
	Name       string // único
	RUT        string // único, validado con pkg/rut
	Address    string
	Phone      string
	Email      string
	IsProvider bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Planes de suscripción disponibles.
const (
	PlanBasico   = "basico"
	PlanEstandar = "estandar"
	PlanPremium  = "premium"
)

// ValidPlan informa si el plan es uno de los soportados.
func ValidPlan(plan string) bool {
	switch plan {
	case PlanBasico, PlanEstandar, PlanPremium:
		return true
	}
	return false
}

// Subscription relación uno a uno con Company: plan y ventana de vigencia.
type Subscription struct {
	ID        string
	CompanyID string
	PlanName  string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoversDate informa si la suscripción está activa y vigente en el día calendario de t.
// Compara fechas, no instantes: StartDate y EndDate valen por su día en su propia zona.
func (s *Subscription) CoversDate(t time.Time) bool {
	if s == nil || !s.Active {
		return false
	}
	day := calendarDay(t)
	return !day.Before(calendarDay(s.StartDate)) && !day.After(calendarDay(s.EndDate))
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
