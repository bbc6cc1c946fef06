package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

// Mensajes de suscripciones.
const (
	MsgSubscriptionNotFound = "Suscripción no encontrada"
	MsgNoCompany            = "Sin empresa asociada"
	MsgNoSubscription       = "Sin suscripción"
	MsgInvalidPlan          = "Plan no válido."
	MsgEndBeforeStart       = "La fecha de término debe ser mayor que la fecha de inicio."
	MsgCompanyHasSub        = "La empresa ya tiene una suscripción."
)

// SubscriptionUseCase planes de las empresas. Una suscripción por empresa.
type SubscriptionUseCase struct {
	repo      repository.SubscriptionRepository
	companies repository.CompanyRepository
	loc       *time.Location
	now       func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso. loc define el día calendario de las fechas.
func NewSubscriptionUseCase(repo repository.SubscriptionRepository, companies repository.CompanyRepository, loc *time.Location) *SubscriptionUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SubscriptionUseCase{repo: repo, companies: companies, loc: loc, now: time.Now}
}

func (uc *SubscriptionUseCase) List(ctx context.Context, page repository.Page) (*dto.SubscriptionListResponse, error) {
	list, total, err := uc.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		r, err := uc.response(ctx, s)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return &dto.SubscriptionListResponse{Items: items, Page: pageResponse(page, total)}, nil
}

func (uc *SubscriptionUseCase) GetByID(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, s)
}

// Mine suscripción de la empresa de quien llama.
func (uc *SubscriptionUseCase) Mine(ctx context.Context, caps identity.Capabilities) (*dto.SubscriptionResponse, error) {
	if caps.CompanyID == "" {
		return nil, domain.BadRequest(MsgNoCompany)
	}
	s, err := uc.repo.GetByCompany(ctx, caps.CompanyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound(MsgNoSubscription)
	}
	return uc.response(ctx, s)
}

func (uc *SubscriptionUseCase) Create(ctx context.Context, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	fe := domain.FieldErrors{}
	now := uc.now()
	s := &entity.Subscription{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		PlanName:  in.PlanName,
		Active:    boolOr(in.Active, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.PlanName == "" {
		s.PlanName = entity.PlanBasico
	}
	if validate.Required(fe, "start_date", in.StartDate) {
		s.StartDate, _ = validate.Date(fe, "start_date", in.StartDate, uc.loc)
	}
	if validate.Required(fe, "end_date", in.EndDate) {
		s.EndDate, _ = validate.Date(fe, "end_date", in.EndDate, uc.loc)
	}
	if validate.Required(fe, "company", s.CompanyID) {
		c, err := uc.companies.GetByID(ctx, s.CompanyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			fe.Add("company", MsgCompanyNotFound)
		} else {
			existing, err := uc.repo.GetByCompany(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				fe.Add("company", MsgCompanyHasSub)
			}
		}
	}
	if err := checkSubscription(fe, s); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewFieldError("company", MsgCompanyHasSub)
		}
		return nil, err
	}
	return uc.response(ctx, s)
}

// Update edita plan, fechas y estado; la empresa no cambia.
func (uc *SubscriptionUseCase) Update(ctx context.Context, id string, in dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	fe := domain.FieldErrors{}
	if in.PlanName != nil {
		s.PlanName = *in.PlanName
	}
	if in.StartDate != nil {
		if d, ok := validate.Date(fe, "start_date", *in.StartDate, uc.loc); ok {
			s.StartDate = d
		}
	}
	if in.EndDate != nil {
		if d, ok := validate.Date(fe, "end_date", *in.EndDate, uc.loc); ok {
			s.EndDate = d
		}
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	if err := checkSubscription(fe, s); err != nil {
		return nil, err
	}
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return uc.response(ctx, s)
}

func (uc *SubscriptionUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// HasActive informa si la empresa tiene una suscripción activa que cubre hoy.
// Devuelve false sin error si no tiene suscripción; error solo ante fallas de infraestructura.
func (uc *SubscriptionUseCase) HasActive(ctx context.Context, companyID string) (bool, error) {
	if companyID == "" {
		return false, nil
	}
	s, err := uc.repo.GetByCompany(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("suscripción: %w", err)
	}
	return s.CoversDate(uc.now().In(uc.loc)), nil
}

func (uc *SubscriptionUseCase) get(ctx context.Context, id string) (*entity.Subscription, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound(MsgSubscriptionNotFound)
	}
	return s, nil
}

func checkSubscription(fe domain.FieldErrors, s *entity.Subscription) error {
	if !entity.ValidPlan(s.PlanName) {
		fe.Add("plan_name", MsgInvalidPlan)
	}
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && !s.EndDate.After(s.StartDate) {
		fe.Add("end_date", MsgEndBeforeStart)
	}
	return fe.OrNil()
}

func (uc *SubscriptionUseCase) response(ctx context.Context, s *entity.Subscription) (*dto.SubscriptionResponse, error) {
	out := &dto.SubscriptionResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		PlanName:  s.PlanName,
		StartDate: s.StartDate.Format(dto.DateLayout),
		EndDate:   s.EndDate.Format(dto.DateLayout),
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
	c, err := uc.companies.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		out.CompanyName = c.Name
	}
	return out, nil
}
