package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/entity"
	"github.com/temucosoft/retail-api/internal/domain/identity"
	"github.com/temucosoft/retail-api/internal/domain/repository"
	"github.com/temucosoft/retail-api/pkg/jwt"
)

// Mensajes de autenticación.
const (
	MsgBadCredentials = "No se encontró una cuenta activa con las credenciales entregadas"
	MsgInvalidToken   = "Token inválido o expirado"
	MsgUserNotFound   = "Usuario no encontrado"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

func (c JWTConfig) accessTTL() time.Duration {
	return time.Duration(c.ExpMinutes) * time.Minute
}

func (c JWTConfig) refreshTTL() time.Duration {
	return time.Duration(c.RefreshExpMinutes) * time.Minute
}

// AuthUseCase casos de uso de autenticación: login, refresco de token y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password y emite el par de tokens. Usuario inexistente, clave
// incorrecta o cuenta inactiva responden lo mismo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.Unauthorized(MsgBadCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthorized(MsgBadCredentials)
	}
	sub, err := uc.subject(ctx, user)
	if err != nil {
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, sub, jwt.TypeAccess, uc.jwtCfg.accessTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, sub, jwt.TypeRefresh, uc.jwtCfg.refreshTTL())
	if err != nil {
		return nil, err
	}
	var companyID *string
	if user.CompanyID != "" {
		companyID = &user.CompanyID
	}
	return &dto.TokenResponse{
		Access:    access,
		Refresh:   refresh,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.String(),
		CompanyID: companyID,
	}, nil
}

// Refresh emite un nuevo token de acceso. Rol y empresa se releen de la DB, de modo que
// un cambio de rol o una desactivación se reflejan en el siguiente refresco.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.Refresh, jwt.TypeRefresh)
	if err != nil {
		return nil, domain.Unauthorized(MsgInvalidToken)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.Unauthorized(MsgInvalidToken)
	}
	sub, err := uc.subject(ctx, user)
	if err != nil {
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, sub, jwt.TypeAccess, uc.jwtCfg.accessTTL())
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: access}, nil
}

// Authenticate valida un token de acceso y devuelve la identidad que transporta.
func (uc *AuthUseCase) Authenticate(token string) (identity.Principal, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, jwt.TypeAccess)
	if err != nil {
		return identity.Anonymous(), domain.Unauthorized(MsgInvalidToken)
	}
	role, ok := identity.ParseRole(claims.Role)
	if !ok {
		return identity.Anonymous(), domain.Unauthorized(MsgInvalidToken)
	}
	return identity.NewPrincipal(claims.UserID, role, claims.CompanyID, claims.Provider), nil
}

// Profile datos del usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound(MsgUserNotFound)
	}
	out := &dto.ProfileResponse{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.String(),
		RUT:       user.RUT,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
	if user.CompanyID != "" {
		c, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out.Company = &c.Name
		}
	}
	return out, nil
}

func (uc *AuthUseCase) subject(ctx context.Context, user *entity.User) (jwt.Subject, error) {
	sub := jwt.Subject{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role.String()}
	if user.CompanyID == "" {
		return sub, nil
	}
	c, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return sub, err
	}
	sub.Provider = c != nil && c.IsProvider
	return sub, nil
}
