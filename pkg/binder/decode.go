package binder

import (
	"encoding"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	durationType  = reflect.TypeOf(time.Duration(0))
	byteSliceType = reflect.TypeOf([]byte(nil))
)

// decode copies values into the exported fields of the struct pointed to by v.
// Fields opt in with the given tag; untagged fields and "-" are skipped.
func decode(values url.Values, v any, tag string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrUnsupportedTarget
	}
	return decodeStruct(values, rv.Elem(), tag)
}

func decodeStruct(values url.Values, rv reflect.Value, tag string) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if field.Anonymous {
			// Embedded structs contribute their promoted fields. Exported
			// fields of an unexported embedded struct stay settable, so the
			// export check applies only to embedded pointers we must allocate.
			fv := rv.Field(i)
			ft := field.Type
			if ft.Kind() == reflect.Pointer && ft.Elem().Kind() == reflect.Struct {
				if !field.IsExported() {
					continue
				}
				if fv.IsNil() {
					fv.Set(reflect.New(ft.Elem()))
				}
				if err := decodeStruct(values, fv.Elem(), tag); err != nil {
					return err
				}
				continue
			}
			if ft.Kind() == reflect.Struct {
				if err := decodeStruct(values, fv, tag); err != nil {
					return err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "" || name == "-" {
			continue
		}
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setField(rv.Field(i), vals); err != nil {
			return errors.Join(ErrDecode, fmt.Errorf("field %s: %w", field.Name, err))
		}
	}
	return nil
}

// setField assigns raw values to one field, converting to its Go type.
// A single empty value leaves the field at its zero value so that required
// rules, not conversion errors, report blank inputs.
func setField(fv reflect.Value, vals []string) error {
	if len(vals) == 1 && vals[0] == "" {
		return nil
	}

	ft := fv.Type()

	if ft.Kind() == reflect.Pointer {
		ptr := reflect.New(ft.Elem())
		if err := setField(ptr.Elem(), vals); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	}

	if ft.Kind() == reflect.Slice && ft != byteSliceType {
		out := reflect.MakeSlice(ft, len(vals), len(vals))
		for i, raw := range vals {
			if err := setScalar(out.Index(i), raw); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	}

	return setScalar(fv, vals[0])
}

func setScalar(fv reflect.Value, raw string) error {
	ft := fv.Type()

	switch ft {
	case timeType:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", raw, err)
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	case durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		fv.SetInt(int64(d))
		return nil
	case byteSliceType:
		fv.SetBytes([]byte(raw))
		return nil
	}

	if fv.CanAddr() {
		if u, ok := fv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(raw))
		}
	}

	switch ft.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		// HTML checkboxes submit "on" without an explicit value.
		if raw == "on" {
			fv.SetBool(true)
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid bool %q: %w", raw, err)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", raw, err)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q: %w", raw, err)
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, ft.Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", raw, err)
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", ft)
	}
	return nil
}
