package cell

import "reflect"

// Equal is the default equality used by cells.
//
// Values whose dynamic type is comparable use ==, which is value equality
// for numbers, strings, booleans and structs, and identity for pointers and
// channels. Slices, maps and funcs compare by reference: two slices are
// equal only when they share the same backing array and length. Other
// non-comparable values (structs or arrays holding slices) fall back to
// reflect.DeepEqual.
func Equal[T any](a, b T) bool {
	av, bv := any(a), any(b)

	// Fast path for the common scalar types.
	switch x := av.(type) {
	case int:
		y, ok := bv.(int)
		return ok && x == y
	case int64:
		y, ok := bv.(int64)
		return ok && x == y
	case float64:
		y, ok := bv.(float64)
		return ok && x == y
	case string:
		y, ok := bv.(string)
		return ok && x == y
	case bool:
		y, ok := bv.(bool)
		return ok && x == y
	}

	ta, tb := reflect.TypeOf(av), reflect.TypeOf(bv)
	if ta != tb {
		return false
	}
	if ta == nil {
		// Both are nil interfaces.
		return true
	}

	switch ta.Kind() {
	case reflect.Slice:
		ra, rb := reflect.ValueOf(av), reflect.ValueOf(bv)
		if ra.IsNil() || rb.IsNil() {
			return ra.IsNil() == rb.IsNil()
		}
		return ra.Len() == rb.Len() && ra.UnsafePointer() == rb.UnsafePointer()
	case reflect.Map:
		return reflect.ValueOf(av).UnsafePointer() == reflect.ValueOf(bv).UnsafePointer()
	case reflect.Func:
		ra, rb := reflect.ValueOf(av), reflect.ValueOf(bv)
		return ra.IsNil() && rb.IsNil()
	}

	if ta.Comparable() {
		return comparableEqual(av, bv)
	}
	return reflect.DeepEqual(av, bv)
}

// comparableEqual compares with == and falls back to reflect.DeepEqual when
// an interface field holds a non-comparable dynamic value, which makes ==
// panic at runtime.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}
