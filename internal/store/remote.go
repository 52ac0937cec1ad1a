package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Remote talks to a REST document store. Documents live under
// /collections/{collection}/records/{code}. A failed call surfaces as an
// error and mutates nothing locally; the repository keeps its last-known-good
// state.
type Remote struct {
	client *resty.Client
}

// NewRemote creates a client for the document store at baseURL. The token is
// sent as a bearer token when non-empty.
func NewRemote(baseURL, token string) *Remote {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &Remote{client: client}
}

// Put stores the document under the given code, replacing any previous
// version.
func (r *Remote) Put(ctx context.Context, collection, code string, data []byte) error {
	res, err := r.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"collection": collection, "code": code}).
		SetBody(json.RawMessage(data)).
		Put("/collections/{collection}/records/{code}")
	if err != nil {
		return fmt.Errorf("storing document %s/%s: %w", collection, code, err)
	}
	if res.IsError() {
		return fmt.Errorf("storing document %s/%s: status %d", collection, code, res.StatusCode())
	}
	return nil
}

// Delete removes the document with the given code. A 404 from the store is
// treated as already deleted.
func (r *Remote) Delete(ctx context.Context, collection, code string) error {
	res, err := r.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"collection": collection, "code": code}).
		Delete("/collections/{collection}/records/{code}")
	if err != nil {
		return fmt.Errorf("deleting document %s/%s: %w", collection, code, err)
	}
	if res.IsError() && res.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("deleting document %s/%s: status %d", collection, code, res.StatusCode())
	}
	return nil
}

// ListAll returns every document in the collection in the store's order.
func (r *Remote) ListAll(ctx context.Context, collection string) ([]Record, error) {
	var records []Record
	res, err := r.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetResult(&records).
		Get("/collections/{collection}/records")
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", collection, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("listing documents in %s: status %d", collection, res.StatusCode())
	}
	return records, nil
}
