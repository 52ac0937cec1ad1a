// Package store provides the persistence backends the inventory repository
// writes through: a local SQLite file and a remote document store. Both
// implement the same narrow record contract; the repository never sees
// anything beyond it.
package store

import (
	"context"
	"encoding/json"
)

// Record is one stored document.
type Record struct {
	Code string          `json:"code"`
	Data json.RawMessage `json:"data"`
}

// Backend is the contract the repository depends on. Put is an upsert keyed
// by code. ListAll returns records in the backend's storage order; backends
// that can preserve insertion order do so, and the repository treats the
// returned order as authoritative.
type Backend interface {
	Put(ctx context.Context, collection, code string, data []byte) error
	Delete(ctx context.Context, collection, code string) error
	ListAll(ctx context.Context, collection string) ([]Record, error)
}
