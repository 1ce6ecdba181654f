package fileoutput

import (
	"strconv"
	"strings"
)

// Record is the model a field reads its stored path from.
type Record interface {
	Get(key string) any
}

// State is the mutable form state the delete action writes back to.
type State interface {
	Record
	Set(key string, value any)
}

// Refresher is optionally implemented by a State that needs to reload
// fields after they were changed.
type Refresher interface {
	Refresh(keys ...string)
}

// RecordFunc adapts a plain function to Record.
type RecordFunc func(key string) any

func (f RecordFunc) Get(key string) any {
	return f(key)
}

// Values is a map-backed Record and State. Keys use dot notation to reach
// nested maps and list indexes, e.g. "documents.passport" or "files.0".
type Values map[string]any

var (
	_ Record = Values(nil)
	_ State  = Values(nil)
)

func (v Values) Get(key string) any {
	if v == nil {
		return nil
	}
	if val, ok := v[key]; ok {
		return val
	}

	var cur any = map[string]any(v)
	for _, segment := range strings.Split(key, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil
			}
			cur = next
		case Values:
			next, ok := node[segment]
			if !ok {
				return nil
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		case []string:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}

	return cur
}

// Set writes value at key, creating intermediate maps as needed.
// A nil Values is left untouched.
func (v Values) Set(key string, value any) {
	if v == nil {
		return
	}

	segments := strings.Split(key, ".")
	node := map[string]any(v)
	for _, segment := range segments[:len(segments)-1] {
		switch next := node[segment].(type) {
		case map[string]any:
			node = next
		case Values:
			node = next
		default:
			child := map[string]any{}
			node[segment] = child
			node = child
		}
	}

	node[segments[len(segments)-1]] = value
}
