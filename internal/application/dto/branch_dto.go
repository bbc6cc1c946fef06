package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal. CompanyID solo lo respeta super_admin.
type CreateBranchRequest struct {
	Name      string `json:"name"`
	CompanyID string `json:"company"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateBranchRequest actualización parcial de una sucursal.
type UpdateBranchRequest struct {
	Name      *string `json:"name"`
	CompanyID *string `json:"company"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchListResponse lista paginada de sucursales.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
