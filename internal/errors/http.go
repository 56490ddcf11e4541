package errors

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON shape returned to API clients.
type errorBody struct {
	Error string                 `json:"error"`
	Code  string                 `json:"code,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// WriteJSON writes an error as a JSON response with the HTTP status
// derived from its code. Unknown errors are written as 500s with a
// generic message so internal details never leak to clients.
func WriteJSON(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	code := GetCode(err)
	body := errorBody{
		Error: GetMessage(err),
		Code:  code.String(),
	}

	if code == CodeInternal {
		body.Error = "internal server error"
	}

	var customErr *Error
	if As(err, &customErr) && len(customErr.Meta) > 0 {
		body.Meta = customErr.Meta
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	_ = json.NewEncoder(w).Encode(body)
}
