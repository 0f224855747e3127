package http

import (
	"encoding/json"
	"net/http"
	"reflect"

	apperrors "storefront/pkg/errors"
	"storefront/pkg/pagination"
)

// Envelope is the single response shape of the API. Success is always
// present; Message and Error only when non-empty; Data only when the caller
// supplied a non-nil value.
type Envelope struct {
	Success    bool                   `json:"success"`
	Data       any                    `json:"data,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Details    []apperrors.FieldError `json:"details,omitempty"`
	Pagination *pagination.Info       `json:"pagination,omitempty"`
}

// NewEnvelope builds an envelope. Falsy data such as 0, false, "" or an
// empty slice is kept; only nil (including typed nil pointers, slices and
// maps) drops the member.
func NewEnvelope(success bool, data any, message, errMsg string) Envelope {
	env := Envelope{
		Success: success,
		Message: message,
		Error:   errMsg,
	}
	if !isNil(data) {
		env.Data = data
	}
	return env
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, NewEnvelope(true, data, "", ""))
}

func WriteCreated(w http.ResponseWriter, data any, message string) error {
	return WriteJSON(w, http.StatusCreated, NewEnvelope(true, data, message, ""))
}

func WriteMessage(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, NewEnvelope(true, nil, message, ""))
}

// WritePaginated writes a list page. A nil slice is sent as data anyway so
// list responses always carry an array.
func WritePaginated(w http.ResponseWriter, data any, window pagination.Window) error {
	env := NewEnvelope(true, data, "", "")
	if env.Data == nil {
		env.Data = []any{}
	}
	info := window.Info()
	env.Pagination = &info
	return WriteJSON(w, http.StatusOK, env)
}

// WriteError maps err onto an error envelope. Errors that are not an
// *AppError are reported as a generic internal error so causes never leak.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	message := appErr.Message
	if message == "" {
		message = http.StatusText(appErr.StatusCode())
	}

	env := NewEnvelope(false, nil, "", message)
	env.Details = appErr.Details
	return WriteJSON(w, appErr.StatusCode(), env)
}
