// Package binder decodes HTTP request data into structs and validates the
// result in one step.
//
// Three entry points cover the common payload sources: [BindJSON] for JSON
// bodies, [BindForm] for URL-encoded and multipart forms (`form` tags), and
// [BindQuery] for query strings (`query` tags). Form and query fields opt in
// through their tag; untagged fields are ignored. Validation rules come from
// `validate` tags via go-playground/validator.
//
// Each function separates the two failure classes: rule failures are returned
// as [ValidationErrors] with a nil error, while malformed payloads and misuse
// come back through the error. Handlers can therefore turn the first into a
// 422 with field details and the second into a 400:
//
//	type createProduct struct {
//		Name  string  `json:"name" validate:"required,min=2"`
//		Price float64 `json:"price" validate:"gte=0"`
//	}
//
//	var in createProduct
//	verrs, err := binder.BindJSON(r, &in)
//	if err != nil {
//		// 400: payload could not be parsed
//	}
//	if len(verrs) > 0 {
//		// 422: verrs lists each failed field and rule
//	}
package binder
