package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse respuesta de operaciones sin cuerpo propio (p. ej. borrado).
type SuccessResponse struct {
	Success bool `json:"success"`
}
