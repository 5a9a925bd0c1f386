// Copyright 2026 Joseph Cumines

package baseenv

import (
	"github.com/dop251/goja"
)

// Storage is an in-memory, insertion-ordered string store with Web Storage
// semantics. Updating an existing key keeps its position.
//
// Storage is not safe for concurrent use; it is accessed from the runtime's
// thread only.
type Storage struct {
	values map[string]string
	keys   []string
}

// NewStorage creates an empty Storage.
func NewStorage() *Storage {
	return &Storage{values: make(map[string]string)}
}

// GetItem returns the value for key, reporting whether it exists.
func (s *Storage) GetItem(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// SetItem stores value under key, appending the key if it is new.
func (s *Storage) SetItem(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// RemoveItem deletes key. Removing an absent key is a no-op.
func (s *Storage) RemoveItem(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Clear removes all keys.
func (s *Storage) Clear() {
	s.values = make(map[string]string)
	s.keys = s.keys[:0]
}

// Key returns the key at index i in insertion order, reporting whether the
// index is in range.
func (s *Storage) Key(i int) (string, bool) {
	if i < 0 || i >= len(s.keys) {
		return "", false
	}
	return s.keys[i], true
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	return len(s.keys)
}

// bind exposes the storage to JavaScript as an object with the Web Storage
// method surface. Arguments are coerced to strings, getItem and key return
// null for misses, and length is a read-only accessor.
func (s *Storage) bind(runtime *goja.Runtime) (*goja.Object, error) {
	obj := runtime.NewObject()

	if err := obj.Set("getItem", func(call goja.FunctionCall) goja.Value {
		if v, ok := s.GetItem(call.Argument(0).String()); ok {
			return runtime.ToValue(v)
		}
		return goja.Null()
	}); err != nil {
		return nil, err
	}

	if err := obj.Set("setItem", func(call goja.FunctionCall) goja.Value {
		s.SetItem(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	}); err != nil {
		return nil, err
	}

	if err := obj.Set("removeItem", func(call goja.FunctionCall) goja.Value {
		s.RemoveItem(call.Argument(0).String())
		return goja.Undefined()
	}); err != nil {
		return nil, err
	}

	if err := obj.Set("clear", func(call goja.FunctionCall) goja.Value {
		s.Clear()
		return goja.Undefined()
	}); err != nil {
		return nil, err
	}

	if err := obj.Set("key", func(call goja.FunctionCall) goja.Value {
		if k, ok := s.Key(int(call.Argument(0).ToInteger())); ok {
			return runtime.ToValue(k)
		}
		return goja.Null()
	}); err != nil {
		return nil, err
	}

	length := runtime.ToValue(func(call goja.FunctionCall) goja.Value {
		return runtime.ToValue(s.Len())
	})
	if err := obj.DefineAccessorProperty("length", length, nil, goja.FLAG_FALSE, goja.FLAG_FALSE); err != nil {
		return nil, err
	}

	return obj, nil
}
