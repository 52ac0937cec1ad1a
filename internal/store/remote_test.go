package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeDocStore is a minimal in-memory document store behind the REST
// interface Remote expects.
type fakeDocStore struct {
	mu      sync.Mutex
	records map[string][]byte // code -> data
	order   []string
	token   string
}

func (f *fakeDocStore) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /collections/{collection}/records/{code}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		data, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		code := r.PathValue("code")
		if _, exists := f.records[code]; !exists {
			f.order = append(f.order, code)
		}
		f.records[code] = data
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("DELETE /collections/{collection}/records/{code}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		code := r.PathValue("code")
		if _, exists := f.records[code]; !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(f.records, code)
		for i, c := range f.order {
			if c == code {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /collections/{collection}/records", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		out := make([]Record, 0, len(f.order))
		for _, code := range f.order {
			out = append(out, Record{Code: code, Data: f.records[code]})
		}
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})
	return mux
}

func (f *fakeDocStore) authorized(r *http.Request) bool {
	return f.token == "" || r.Header.Get("Authorization") == "Bearer "+f.token
}

func newFakeDocStore(t *testing.T, token string) (*fakeDocStore, *httptest.Server) {
	t.Helper()
	fake := &fakeDocStore{records: make(map[string][]byte), token: token}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	return fake, server
}

func TestRemoteRoundTrip(t *testing.T) {
	_, server := newFakeDocStore(t, "")
	remote := NewRemote(server.URL, "")
	ctx := context.Background()

	if err := remote.Put(ctx, "inventory", "A1", []byte(`{"code":"A1"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := remote.Put(ctx, "inventory", "B1", []byte(`{"code":"B1"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	records, err := remote.ListAll(ctx, "inventory")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Code != "A1" || string(records[0].Data) != `{"code":"A1"}` {
		t.Errorf("unexpected first record: %+v", records[0])
	}

	if err := remote.Delete(ctx, "inventory", "A1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	records, _ = remote.ListAll(ctx, "inventory")
	if len(records) != 1 || records[0].Code != "B1" {
		t.Errorf("expected only B1 after delete, got %+v", records)
	}
}

func TestRemoteDeleteAbsentIsOK(t *testing.T) {
	_, server := newFakeDocStore(t, "")
	remote := NewRemote(server.URL, "")

	if err := remote.Delete(context.Background(), "inventory", "ZZZ"); err != nil {
		t.Errorf("deleting absent record: %v", err)
	}
}

func TestRemoteSendsBearerToken(t *testing.T) {
	_, server := newFakeDocStore(t, "secret")

	withToken := NewRemote(server.URL, "secret")
	if err := withToken.Put(context.Background(), "inventory", "A1", []byte(`{}`)); err != nil {
		t.Errorf("authorized Put: %v", err)
	}

	withoutToken := NewRemote(server.URL, "")
	if err := withoutToken.Put(context.Background(), "inventory", "B1", []byte(`{}`)); err == nil {
		t.Error("expected error for unauthorized Put")
	}
}

func TestRemoteMapsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	remote := NewRemote(server.URL, "")
	ctx := context.Background()

	if err := remote.Put(ctx, "inventory", "A1", []byte(`{}`)); err == nil {
		t.Error("expected error from failing Put")
	}
	if _, err := remote.ListAll(ctx, "inventory"); err == nil {
		t.Error("expected error from failing ListAll")
	}
}
