package httpd

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResourceLoader returns the content of a static resource.
type ResourceLoader interface {
	Load(key string) ([]byte, error)
}

// Dir loads resources from files under a directory, reading the file on every call.
type Dir string

func (d Dir) Load(key string) ([]byte, error) {
	// keys come from the route table, never from the request
	b, err := os.ReadFile(filepath.Join(string(d), key))
	if err != nil {
		return nil, fmt.Errorf("load resource %q: %w", key, err)
	}
	return b, nil
}

// StaticResources serves resources held in memory.
type StaticResources map[string][]byte

func (s StaticResources) Load(key string) ([]byte, error) {
	b, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("load resource %q: %w", key, os.ErrNotExist)
	}
	return b, nil
}

// VerifyResources loads every resource the route table can select.
func VerifyResources(rt *RouteTable, rl ResourceLoader) error {
	for _, key := range rt.Resources() {
		if _, err := rl.Load(key); err != nil {
			return err
		}
	}
	return nil
}
