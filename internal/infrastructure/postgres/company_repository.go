package postgres

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, rut, address, phone, email, is_provider, is_active, created_at, updated_at`

func scanCompany(row scanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.Name, &c.RUT, &c.Address, &c.Phone, &c.Email,
		&c.IsProvider, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.RUT, c.Address, c.Phone, c.Email, c.IsProvider, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert company", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id), scanCompany, "get company")
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE name = $1`, name), scanCompany, "get company by name")
}

func (r *CompanyRepo) GetByRUT(ctx context.Context, rut string) (*entity.Company, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE rut = $1`, rut), scanCompany, "get company by rut")
}

func (r *CompanyRepo) GetProvider(ctx context.Context) (*entity.Company, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE is_provider`), scanCompany, "get provider")
}

func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter) ([]*entity.Company, int, error) {
	w := &where{}
	if !f.IncludeProvider {
		w.add("NOT is_provider")
	}
	return pageOf(ctx, r.q, listQuery{
		op:      "list companies",
		columns: companyColumns,
		from:    "FROM companies" + w.String(),
		orderBy: "created_at DESC",
		args:    w.args,
	}, f.Page, scanCompany)
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE companies SET name = $2, rut = $3, address = $4, phone = $5, email = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.RUT, c.Address, c.Phone, c.Email, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return writeErr("update company", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la empresa; las FK arrastran sucursales, usuarios y suscripción.
// Una sucursal con compras bloquea el borrado (ErrInUse).
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return deleteErr("delete company", err)
	}
	return nil
}

func (r *CompanyRepo) CountClients(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM companies WHERE NOT is_provider`).Scan(&n); err != nil {
		return 0, writeErr("count companies", err)
	}
	return n, nil
}

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo suscripciones sobre PostgreSQL (una por empresa, UNIQUE company_id).
type SubscriptionRepo struct {
	q Querier
}

func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, company_id, plan_name, start_date, end_date, active, created_at, updated_at`

func scanSubscription(row scanner) (*entity.Subscription, error) {
	var s entity.Subscription
	err := row.Scan(&s.ID, &s.CompanyID, &s.PlanName, &s.StartDate, &s.EndDate, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.CompanyID, s.PlanName, s.StartDate, s.EndDate, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert subscription", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id), scanSubscription, "get subscription")
}

func (r *SubscriptionRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE company_id = $1`, companyID), scanSubscription, "get subscription by company")
}

func (r *SubscriptionRepo) List(ctx context.Context, p repository.Page) ([]*entity.Subscription, int, error) {
	return pageOf(ctx, r.q, listQuery{
		op:      "list subscriptions",
		columns: subscriptionColumns,
		from:    "FROM subscriptions",
		orderBy: "created_at DESC",
	}, p, scanSubscription)
}

func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE subscriptions SET plan_name = $2, start_date = $3, end_date = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		s.ID, s.PlanName, s.StartDate, s.EndDate, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return writeErr("update subscription", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id); err != nil {
		return deleteErr("delete subscription", err)
	}
	return nil
}
