package cache

import (
	"fmt"
	"reflect"
)

// Key builds a cache key from a prefix and parts.
func Key(prefix string, parts ...interface{}) string {
	key := prefix
	for _, part := range parts {
		key = fmt.Sprintf("%s:%v", key, part)
	}
	return key
}

// deref returns the value a pointer points at, or the value itself when it
// is not a pointer. Used when backfilling L1 from a decoded L2 read.
func deref(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}
