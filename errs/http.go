package errs

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	ECONFLICT:        http.StatusConflict,
	EINVALID:         http.StatusBadRequest,
	ENOTFOUND:        http.StatusNotFound,
	EUNAUTHENTICATED: http.StatusUnauthorized,
	EUNAUTHORIZED:    http.StatusForbidden,
	EINTERNAL:        http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

// ResponseError carries the machine-readable code and the user-facing message.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReturnError writes an error response to the client. Internal errors are
// logged with their real cause; the client only ever sees the generic message.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)
	if code == EINTERNAL {
		LogError(r, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	json.NewEncoder(w).Encode(&ErrorResponse{
		Error: ResponseError{Code: code, Message: message},
	})
}

// LogError logs an error together with the request method and path.
func LogError(r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
}
