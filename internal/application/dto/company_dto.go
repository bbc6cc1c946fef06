package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa cliente.
type CreateCompanyRequest struct {
	Name     string `json:"name"`
	RUT      string `json:"rut"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IsActive *bool  `json:"is_active"`
}

// UpdateCompanyRequest actualización parcial de una empresa.
type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	RUT      *string `json:"rut"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RUT      string `json:"rut"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateSubscriptionRequest entrada para crear una suscripción. Fechas en formato YYYY-MM-DD.
type CreateSubscriptionRequest struct {
	CompanyID string `json:"company"`
	PlanName  string `json:"plan_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Active    *bool  `json:"active"`
}

// UpdateSubscriptionRequest actualización parcial de una suscripción.
type UpdateSubscriptionRequest struct {
	PlanName  *string `json:"plan_name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Active    *bool   `json:"active"`
}

// SubscriptionResponse salida de una suscripción.
type SubscriptionResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company"`
	CompanyName string    `json:"company_name"`
	PlanName    string    `json:"plan_name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubscriptionListResponse lista paginada de suscripciones.
type SubscriptionListResponse struct {
	Items []SubscriptionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
