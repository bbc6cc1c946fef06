package memory

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	s    *Store
	inTx bool
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	for _, o := range d.companies {
		if o.Name == c.Name || o.RUT == c.RUT {
			return domain.ErrDuplicate
		}
	}
	d.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	defer r.s.guard(r.inTx)()
	if c, ok := r.s.d.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CompanyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	return r.find(func(c entity.Company) bool { return c.Name == name })
}

func (r *CompanyRepo) GetByRUT(_ context.Context, rut string) (*entity.Company, error) {
	return r.find(func(c entity.Company) bool { return c.RUT == rut })
}

func (r *CompanyRepo) GetProvider(_ context.Context) (*entity.Company, error) {
	return r.find(func(c entity.Company) bool { return c.IsProvider })
}

func (r *CompanyRepo) find(match func(entity.Company) bool) (*entity.Company, error) {
	defer r.s.guard(r.inTx)()
	for _, c := range r.s.d.companies {
		if match(c) {
			return ptr(c), nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) List(_ context.Context, f repository.CompanyFilter) ([]*entity.Company, int, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]entity.Company, 0, len(r.s.d.companies))
	for _, c := range r.s.d.companies {
		if c.IsProvider && !f.IncludeProvider {
			continue
		}
		rows = append(rows, c)
	}
	list, total := paginate(rows, func(a, b entity.Company) bool { return a.CreatedAt.After(b.CreatedAt) }, f.Page)
	return list, total, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range d.companies {
		if o.ID != c.ID && (o.Name == c.Name || o.RUT == c.RUT) {
			return domain.ErrDuplicate
		}
	}
	d.companies[c.ID] = *c
	return nil
}

// Delete elimina la empresa en cascada (sucursales, usuarios, suscripción).
// Se rechaza con ErrInUse si alguna sucursal tiene compras.
func (r *CompanyRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	for _, b := range d.branches {
		if b.CompanyID == id && branchHasPurchases(d, b.ID) {
			return domain.ErrInUse
		}
	}
	for _, b := range d.branches {
		if b.CompanyID == id {
			deleteBranch(d, b.ID)
		}
	}
	for _, u := range d.users {
		if u.CompanyID == id {
			deleteUser(d, u.ID)
		}
	}
	for sid, s := range d.subscriptions {
		if s.CompanyID == id {
			delete(d.subscriptions, sid)
		}
	}
	delete(d.companies, id)
	return nil
}

func (r *CompanyRepo) CountClients(_ context.Context) (int, error) {
	defer r.s.guard(r.inTx)()
	n := 0
	for _, c := range r.s.d.companies {
		if !c.IsProvider {
			n++
		}
	}
	return n, nil
}

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo suscripciones en memoria (una por empresa).
type SubscriptionRepo struct {
	s    *Store
	inTx bool
}

func (r *SubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.companies[sub.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range d.subscriptions {
		if o.CompanyID == sub.CompanyID {
			return domain.ErrDuplicate
		}
	}
	d.subscriptions[sub.ID] = *sub
	return nil
}

func (r *SubscriptionRepo) GetByID(_ context.Context, id string) (*entity.Subscription, error) {
	defer r.s.guard(r.inTx)()
	if s, ok := r.s.d.subscriptions[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SubscriptionRepo) GetByCompany(_ context.Context, companyID string) (*entity.Subscription, error) {
	defer r.s.guard(r.inTx)()
	for _, s := range r.s.d.subscriptions {
		if s.CompanyID == companyID {
			return ptr(s), nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepo) List(_ context.Context, p repository.Page) ([]*entity.Subscription, int, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]entity.Subscription, 0, len(r.s.d.subscriptions))
	for _, s := range r.s.d.subscriptions {
		rows = append(rows, s)
	}
	list, total := paginate(rows, func(a, b entity.Subscription) bool { return a.CreatedAt.After(b.CreatedAt) }, p)
	return list, total, nil
}

func (r *SubscriptionRepo) Update(_ context.Context, sub *entity.Subscription) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.d.subscriptions[sub.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.subscriptions[sub.ID] = *sub
	return nil
}

func (r *SubscriptionRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	delete(r.s.d.subscriptions, id)
	return nil
}
