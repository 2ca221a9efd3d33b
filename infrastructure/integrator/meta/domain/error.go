package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired reconhece o código 190 e os subcódigos OAuth 460, 463 e 467
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("%s (code=%d, subcode=%d, type=%s, fbtrace_id=%s)",
		e.Error.Message, e.Error.Code, e.Error.ErrorSubcode, e.Error.Type, e.Error.FBTraceID)
}
