package postgres

import (
	"context"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, company_id, username, email, password_hash, rut, role, is_active, created_at, updated_at`

func scanUser(row scanner) (*entity.User, error) {
	var (
		u         entity.User
		companyID *string
	)
	err := row.Scan(&u.ID, &companyID, &u.Username, &u.Email, &u.PasswordHash, &u.RUT,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.CompanyID = deref(companyID)
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, nullable(u.CompanyID), u.Username, u.Email, u.PasswordHash, u.RUT,
		string(u.Role), u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert user", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), scanUser, "get user")
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username), scanUser, "get user by username")
}

func (r *UserRepo) GetByRUT(ctx context.Context, rut string) (*entity.User, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE rut = $1`, rut), scanUser, "get user by rut")
}

const clientUsersCond = `company_id IN (SELECT id FROM companies WHERE NOT is_provider)`

func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	w := &where{}
	if f.CompanyID != "" {
		w.add("company_id = ?", f.CompanyID)
	}
	if f.ClientsOnly {
		w.add(clientUsersCond)
	}
	return pageOf(ctx, r.q, listQuery{
		op:      "list users",
		columns: userColumns,
		from:    "FROM users" + w.String(),
		orderBy: "created_at DESC",
		args:    w.args,
	}, f.Page, scanUser)
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE users SET company_id = $2, username = $3, email = $4, password_hash = $5, rut = $6,
			role = $7, is_active = $8, updated_at = $9
		WHERE id = $1`,
		u.ID, nullable(u.CompanyID), u.Username, u.Email, u.PasswordHash, u.RUT,
		string(u.Role), u.IsActive, u.UpdatedAt,
	)
	if err != nil {
		return writeErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el usuario con su carrito y sus ventas; sus órdenes quedan sin usuario.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return deleteErr("delete user", err)
	}
	return nil
}

func (r *UserRepo) CountClientUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users WHERE `+clientUsersCond).Scan(&n); err != nil {
		return 0, writeErr("count users", err)
	}
	return n, nil
}
