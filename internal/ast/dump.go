package ast

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pythia-lang/pythia/internal/position"
)

var spanType = reflect.TypeOf(position.Span{})

// Dump converts a tree into nested maps and slices suitable for
// marshaling (YAML, JSON). Each node becomes a map with a "node" key
// holding the variant name, a "span" key when the node covers source,
// and one key per populated child field.
func Dump(n Node) any {
	if n == nil {
		return nil
	}
	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	out := map[string]any{"node": v.Type().Name()}
	if span := n.GetSpan(); span.IsValid() {
		out["span"] = span.String()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		if val, ok := dumpValue(v.Field(i)); ok {
			out[fieldKey(field.Name)] = val
		}
	}
	return out
}

func fieldKey(name string) string {
	return strings.ToLower(name[:1]) + name[1:]
}

// dumpValue renders one field. The boolean reports whether the field
// carries anything worth emitting; empty lists, nil children, and
// invalid spans are dropped.
func dumpValue(v reflect.Value) (any, bool) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
		if n, ok := v.Interface().(Node); ok {
			return Dump(n), true
		}
		return dumpValue(v.Elem())

	case reflect.Struct:
		if v.Type() == spanType {
			span := v.Interface().(position.Span)
			if !span.IsValid() {
				return nil, false
			}
			return span.String(), true
		}
		// Child lists and other plain aggregates: emit populated
		// fields only.
		out := map[string]any{}
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			if val, ok := dumpValue(v.Field(i)); ok {
				out[fieldKey(field.Name)] = val
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true

	case reflect.Slice:
		if v.Len() == 0 {
			return nil, false
		}
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if val, ok := dumpValue(v.Index(i)); ok {
				out = append(out, val)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true

	case reflect.Bool:
		return v.Bool(), v.Bool()

	case reflect.String:
		return v.String(), v.String() != ""

	case reflect.Int:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			str := s.String()
			return str, str != ""
		}
		return v.Int(), v.Int() != 0

	default:
		return v.Interface(), true
	}
}
