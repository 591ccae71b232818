package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tennis-space/backend/internal/domain/apperr"
	"tennis-space/backend/internal/httpjson"
	"tennis-space/backend/internal/uploads"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	httpjson.Write(w, status, v)
}

func Fail(w http.ResponseWriter, status int, msg string) {
	httpjson.Error(w, status, msg)
}

// FailErr writes err with the status its taxonomy tag maps to.
func FailErr(w http.ResponseWriter, err error) {
	status, msg := mapError(err)
	Fail(w, status, msg)
}

func mapError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case apperr.IsErrValidation(err):
		return 400, err.Error()
	case apperr.IsErrAuthentication(err), apperr.IsErrNotAuthenticated(err):
		return 401, err.Error()
	case apperr.IsErrForbidden(err):
		return 403, err.Error()
	case apperr.IsErrNotFound(err):
		return 404, err.Error()
	case apperr.IsErrRegistration(err):
		return 409, err.Error()
	case apperr.IsErrPolicy(err):
		return 422, err.Error()
	case errors.Is(err, uploads.ErrNotConfigured):
		return 503, err.Error()
	default:
		return 500, err.Error()
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// decode reads the body into dst and validates it. Failures are written to w
// and reported as false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpjson.Read(r, dst); err != nil {
		Fail(w, 400, "invalid json")
		return false
	}
	if t, ok := dst.(interface{ Trim() }); ok {
		t.Trim()
	}
	if err := validate.Struct(dst); err != nil {
		Fail(w, 400, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			if fe.Kind() == reflect.String {
				msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
			}
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
