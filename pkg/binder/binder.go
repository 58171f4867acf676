package binder

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// maxFormMemory bounds the in-memory portion of multipart form parsing.
const maxFormMemory = 10 << 20

// BindJSON decodes the request body as JSON into v and validates it.
// Failed validation rules come back as ValidationErrors with a nil error;
// malformed payloads and misuse surface through the error instead.
func BindJSON(r *http.Request, v any) (ValidationErrors, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, errors.Join(ErrDecode, io.EOF)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	return Validate(v)
}

// BindForm parses the request form (URL-encoded or multipart) into v using
// `form` struct tags, then validates it. Body values take precedence over
// URL query values, matching http.Request.FormValue.
func BindForm(r *http.Request, v any) (ValidationErrors, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, errors.Join(ErrDecode, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	if err := decode(r.Form, v, "form"); err != nil {
		return nil, err
	}
	return Validate(v)
}

// BindQuery decodes URL query parameters into v using `query` struct tags,
// then validates it.
func BindQuery(r *http.Request, v any) (ValidationErrors, error) {
	if err := decode(r.URL.Query(), v, "query"); err != nil {
		return nil, err
	}
	return Validate(v)
}
