package googledomain

import "fmt"

type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// IsAuthError indica token ausente, expirado ou sem permissão na conta
func (e *ErrorResponse) IsAuthError() bool {
	return e.Error.Code == 401 || e.Error.Status == "UNAUTHENTICATED" || e.Error.Status == "PERMISSION_DENIED"
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("%s (code=%d, status=%s)", e.Error.Message, e.Error.Code, e.Error.Status)
}
