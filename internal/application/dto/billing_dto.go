package dto

// BillingInfo datos estáticos de facturación de la plataforma.
type BillingInfo struct {
	Status   string `json:"status"`
	Plan     string `json:"plan"`
	Currency string `json:"currency"`
}

// BillingOverviewResponse salida de GET /api/admin/billing.
type BillingOverviewResponse struct {
	TotalClientCompanies int         `json:"total_client_companies"`
	TotalUsers           int         `json:"total_users"`
	TotalSales           int         `json:"total_sales"`
	BillingInfo          BillingInfo `json:"billing_info"`
}
