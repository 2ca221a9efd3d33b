package handler

import (
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-pacing-api/pkg/apiErrors"
)

const maxBodyBytes = 1 << 20

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New()
)

// decodeAndValidate lê o corpo JSON e aplica as tags validate; em falha já escreve a resposta
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler o corpo da requisição", nil)
		return false
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, dest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "JSON inválido", err.Error())
			return false
		}
	}

	if err := validate.Struct(dest); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", validationDetails(err))
		return false
	}

	return true
}

func validationDetails(err error) map[string]string {
	details := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		details["error"] = err.Error()
		return details
	}

	for _, ve := range validationErrors {
		details[ve.Field()] = ve.Tag()
	}
	return details
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeReviewError usa o código do ReviewError quando houver; senão classifica pela causa
func writeReviewError(w http.ResponseWriter, err error, message string) {
	code := reviewing.CodeFor(err)

	var reviewErr *reviewing.ReviewError
	if errors.As(err, &reviewErr) && reviewErr.Code != "" {
		code = reviewErr.Code
	}

	apiErrors.WriteError(w, code, message, err.Error())
}
