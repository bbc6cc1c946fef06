package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP. Fields solo viene en errores de validación (campo -> mensajes).
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// DateLayout formato de fechas sin hora (compras, suscripciones, filtros de reporte).
const DateLayout = "2006-01-02"
