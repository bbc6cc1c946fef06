package memory

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s    *Store
	inTx bool
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if err := checkUserUnique(d, u); err != nil {
		return err
	}
	if u.CompanyID != "" {
		if _, ok := d.companies[u.CompanyID]; !ok {
			return domain.ErrNotFound
		}
	}
	d.users[u.ID] = *u
	return nil
}

func checkUserUnique(d *data, u *entity.User) error {
	for _, o := range d.users {
		if o.ID == u.ID {
			continue
		}
		if o.Username == u.Username || (u.RUT != "" && o.RUT == u.RUT) {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.guard(r.inTx)()
	if u, ok := r.s.d.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *UserRepo) GetByRUT(_ context.Context, rut string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.RUT == rut })
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	defer r.s.guard(r.inTx)()
	for _, u := range r.s.d.users {
		if match(u) {
			return ptr(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	rows := make([]entity.User, 0)
	for _, u := range d.users {
		if f.CompanyID != "" && u.CompanyID != f.CompanyID {
			continue
		}
		if f.ClientsOnly && !isClientUser(d, u) {
			continue
		}
		rows = append(rows, u)
	}
	list, total := paginate(rows, func(a, b entity.User) bool { return a.CreatedAt.After(b.CreatedAt) }, f.Page)
	return list, total, nil
}

func isClientUser(d *data, u entity.User) bool {
	c, ok := d.companies[u.CompanyID]
	return ok && !c.IsProvider
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	if _, ok := d.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := checkUserUnique(d, u); err != nil {
		return err
	}
	d.users[u.ID] = *u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	deleteUser(r.s.d, id)
	return nil
}

func (r *UserRepo) CountClientUsers(_ context.Context) (int, error) {
	defer r.s.guard(r.inTx)()
	n := 0
	for _, u := range r.s.d.users {
		if isClientUser(r.s.d, u) {
			n++
		}
	}
	return n, nil
}
