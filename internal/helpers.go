package internal

import "strconv"

// ContextValue returns the value stored under key, or T's zero value when the
// key is absent or holds a different type.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a route parameter converted to T, or T's zero value when the
// parameter is missing or does not parse.
func Param[T string | int | int64 | float64 | bool](c Context, name string) T {
	v, _ := convert[T](c.Param(name))
	return v
}

// Query returns a query parameter converted to T, or T's zero value when the
// parameter is missing or does not parse.
func Query[T string | int | int64 | float64 | bool](c Context, name string) T {
	v, _ := convert[T](c.Query(name))
	return v
}

// QueryDefault returns a query parameter converted to T, falling back to
// defaultValue when the parameter is empty or does not parse.
func QueryDefault[T string | int | int64 | float64 | bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convert[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// convert parses raw into T. The constraint makes the switch exhaustive, so
// every instantiation hits exactly one case.
func convert[T string | int | int64 | float64 | bool](raw string) (T, bool) {
	var v T
	switch p := any(&v).(type) {
	case *string:
		*p = raw
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return v, false
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return v, false
		}
		*p = n
	case *float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return v, false
		}
		*p = f
	case *bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return v, false
		}
		*p = b
	}
	return v, true
}
