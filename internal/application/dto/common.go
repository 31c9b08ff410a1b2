package dto

// PageResponse metadatos de página en respuestas. Filter es la codificación canónica del
// filtro aplicado (query string) para que el cliente la conserve en su navegación.
type PageResponse struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Total    int    `json:"total,omitempty"`
	Filter   string `json:"filter,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse errores de validación por campo.
type ValidationErrorResponse struct {
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

// Estados del sobre de respuesta de envío de ventas.
const (
	SubmitStatusSuccess = "success"
	SubmitStatusError   = "error"
)

// SubmitResponse sobre {status, message, data} de los envíos de ventas.
type SubmitResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
