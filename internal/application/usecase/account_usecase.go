package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/tenant"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/authz"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/pkg/rut"
)

// Mensajes de registro y edición de usuarios.
const (
	MsgUserNotFound           = "Usuario no encontrado"
	MsgPasswordMismatch       = "Las contraseñas no coinciden."
	MsgInvalidRole            = "Rol no válido."
	MsgSuperAdminProvider     = "El super_admin sólo puede pertenecer a la empresa proveedora."
	MsgCompanyRequiredForRole = "Los usuarios que no son super_admin deben tener una empresa."
	MsgRoleAboveCaller        = "No puede asignar un rol superior al propio."
)

// AccountUseCase registro y administración de usuarios.
//
// Hay dos vistas sobre los mismos datos:
//   - cuentas cliente (/api/admin/accounts): solo usuarios de empresas no proveedoras; un id fuera
//     del conjunto visible responde 404.
//   - usuarios (/api/users): todos los usuarios del tenant; un id de otra empresa responde 403.
type AccountUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	now       func() time.Time
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(users repository.UserRepository, companies repository.CompanyRepository) *AccountUseCase {
	return &AccountUseCase{users: users, companies: companies, now: time.Now}
}

// ListAccounts usuarios de empresas cliente; admin_cliente solo ve los de su empresa.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, caps identity.Capabilities, page repository.Page) (*dto.UserListResponse, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.UserFilter{CompanyID: companyID, ClientsOnly: true, Page: page})
}

// CreateAccount registra un usuario. admin_cliente solo puede crear usuarios en su empresa.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, caps identity.Capabilities, in dto.CreateAccountRequest) (*dto.UserResponse, error) {
	if !caps.PlatformWide() {
		in.CompanyID = caps.CompanyID
	}
	return uc.Register(ctx, in)
}

// Register aplica las reglas de registro y persiste el usuario con la contraseña hasheada.
func (uc *AccountUseCase) Register(ctx context.Context, in dto.CreateAccountRequest) (*dto.UserResponse, error) {
	fe := domain.FieldErrors{}
	validate.Required(fe, "password", in.Password)
	if in.Password != in.PasswordConfirm {
		fe.Add("password_confirm", MsgPasswordMismatch)
	}
	now := uc.now()
	u := &entity.User{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		Username:  in.Username,
		Email:     in.Email,
		RUT:       in.RUT,
		Role:      identity.Role(in.Role),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.check(ctx, u, fe, false); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, duplicateAs(err, "username")
	}
	return uc.response(ctx, u)
}

// UpdateAccount edita una cuenta cliente visible.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, caps identity.Capabilities, id string, in dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	u, err := uc.account(ctx, caps, id)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, caps, u, in, true)
}

// DeleteAccount elimina una cuenta cliente visible.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, caps identity.Capabilities, id string) error {
	if _, err := uc.account(ctx, caps, id); err != nil {
		return err
	}
	return uc.users.Delete(ctx, id)
}

// ListUsers usuarios del tenant de quien llama (todos para super_admin).
func (uc *AccountUseCase) ListUsers(ctx context.Context, caps identity.Capabilities, page repository.Page) (*dto.UserListResponse, error) {
	companyID, err := tenant.CompanyFilter(caps)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.UserFilter{CompanyID: companyID, Page: page})
}

// GetUser obtiene un usuario: 404 si no existe, 403 si es de otra empresa.
func (uc *AccountUseCase) GetUser(ctx context.Context, caps identity.Capabilities, id string) (*dto.UserResponse, error) {
	u, err := uc.user(ctx, caps, id, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, u)
}

func (uc *AccountUseCase) UpdateUser(ctx context.Context, caps identity.Capabilities, id string, in dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	u, err := uc.user(ctx, caps, id, http.MethodPatch)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, caps, u, in, false)
}

func (uc *AccountUseCase) DeleteUser(ctx context.Context, caps identity.Capabilities, id string) error {
	if _, err := uc.user(ctx, caps, id, http.MethodDelete); err != nil {
		return err
	}
	return uc.users.Delete(ctx, id)
}

func (uc *AccountUseCase) list(ctx context.Context, f repository.UserFilter) (*dto.UserListResponse, error) {
	list, total, err := uc.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		r, err := uc.response(ctx, u)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return &dto.UserListResponse{Items: items, Page: pageResponse(f.Page, total)}, nil
}

// account busca dentro del conjunto de cuentas cliente visibles; fuera de él responde 404.
func (uc *AccountUseCase) account(ctx context.Context, caps identity.Capabilities, id string) (*entity.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.CompanyID == "" || !tenant.Visible(caps, u.CompanyID) {
		return nil, domain.NotFound(MsgUserNotFound)
	}
	c, err := uc.companies.GetByID(ctx, u.CompanyID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsProvider {
		return nil, domain.NotFound(MsgUserNotFound)
	}
	return u, nil
}

func (uc *AccountUseCase) user(ctx context.Context, caps identity.Capabilities, id, method string) (*entity.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound(MsgUserNotFound)
	}
	if err := authz.AuthorizeObject(caps, authz.ResourceUser, method, u.CompanyID); err != nil {
		return nil, err
	}
	return u, nil
}

// update aplica un parche. La empresa solo la cambia super_admin; en cuentas cliente
// la nueva empresa no puede ser la proveedora.
func (uc *AccountUseCase) update(ctx context.Context, caps identity.Capabilities, u *entity.User, in dto.UpdateAccountRequest, clientsOnly bool) (*dto.UserResponse, error) {
	fe := domain.FieldErrors{}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = identity.Role(*in.Role)
		if u.Role.Valid() && !caps.Role.AtLeast(u.Role) {
			fe.Add("role", MsgRoleAboveCaller)
		}
	}
	if in.RUT != nil {
		u.RUT = *in.RUT
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.CompanyID != nil && caps.Role == identity.RoleSuperAdmin {
		u.CompanyID = *in.CompanyID
	}
	password := ""
	if in.Password != nil && *in.Password != "" {
		password = *in.Password
		if in.PasswordConfirm == nil || *in.PasswordConfirm != password {
			fe.Add("password_confirm", MsgPasswordMismatch)
		}
	}
	if err := uc.check(ctx, u, fe, clientsOnly); err != nil {
		return nil, err
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, duplicateAs(err, "username")
	}
	return uc.response(ctx, u)
}

// check valida los campos del usuario y la relación rol/empresa; acumula en fe.
func (uc *AccountUseCase) check(ctx context.Context, u *entity.User, fe domain.FieldErrors, clientsOnly bool) error {
	u.RUT = rut.Format(u.RUT)
	if validate.Required(fe, "username", u.Username) {
		other, err := uc.users.GetByUsername(ctx, u.Username)
		if err != nil {
			return err
		}
		if other != nil && other.ID != u.ID {
			fe.Add("username", validate.MsgDuplicate)
		}
	}
	validate.Email(fe, "email", u.Email, false)
	validate.RUT(fe, "rut", u.RUT)
	if rut.Valid(u.RUT) {
		other, err := uc.users.GetByRUT(ctx, u.RUT)
		if err != nil {
			return err
		}
		if other != nil && other.ID != u.ID {
			fe.Add("rut", validate.MsgDuplicate)
		}
	}
	if !u.Role.Valid() {
		fe.Add("role", MsgInvalidRole)
	}

	var company *entity.Company
	if u.CompanyID != "" {
		c, err := uc.companies.GetByID(ctx, u.CompanyID)
		if err != nil {
			return err
		}
		if c == nil || (clientsOnly && c.IsProvider) {
			fe.Add("company", MsgCompanyInvalid)
		}
		company = c
	}
	switch {
	case u.Role == identity.RoleSuperAdmin:
		if company == nil || !company.IsProvider {
			fe.Add("company", MsgSuperAdminProvider)
		}
	case u.Role.Valid() && u.CompanyID == "":
		fe.Add("company", MsgCompanyRequiredForRole)
	}
	return fe.OrNil()
}

func (uc *AccountUseCase) response(ctx context.Context, u *entity.User) (*dto.UserResponse, error) {
	out := &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		RUT:       u.RUT,
		CompanyID: optional(u.CompanyID),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if u.CompanyID != "" {
		c, err := uc.companies.GetByID(ctx, u.CompanyID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out.CompanyName = optional(c.Name)
		}
	}
	return out, nil
}
