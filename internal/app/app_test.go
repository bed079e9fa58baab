package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/karandattani71/vaultview/internal/cache"
	"github.com/karandattani71/vaultview/internal/catalog"
)

func TestFetchFor_MapsKeysToEndpoints(t *testing.T) {
	t.Parallel()

	var gotListQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/files/":
			gotListQuery = r.URL.RawQuery
			_ = json.NewEncoder(w).Encode(catalog.FileListPage{Count: 2})
		case "/files/file_types/":
			_ = json.NewEncoder(w).Encode([]string{"pdf"})
		case "/files/stats/":
			_ = json.NewEncoder(w).Encode(catalog.Stats{UniqueFiles: 3})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := catalog.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	fetch := fetchFor(client, 25)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	payload, err := fetch(ctx, cache.KeyStats)
	if err != nil {
		t.Fatalf("fetch(stats) returned error: %v", err)
	}
	if stats, ok := payload.(*catalog.Stats); !ok || stats.UniqueFiles != 3 {
		t.Fatalf("fetch(stats) = %#v, want *catalog.Stats{UniqueFiles: 3}", payload)
	}

	payload, err = fetch(ctx, cache.KeyFileTypes)
	if err != nil {
		t.Fatalf("fetch(file_types) returned error: %v", err)
	}
	if types, ok := payload.([]string); !ok || len(types) != 1 || types[0] != "pdf" {
		t.Fatalf("fetch(file_types) = %#v, want [pdf]", payload)
	}

	key := cache.FileListKey("file_type=pdf&ordering=-uploaded_at")
	payload, err = fetch(ctx, key)
	if err != nil {
		t.Fatalf("fetch(file list) returned error: %v", err)
	}
	if page, ok := payload.(catalog.FileListPage); !ok || page.Count != 2 {
		t.Fatalf("fetch(file list) = %#v, want page with count 2", payload)
	}
	// The filter query is forwarded untouched, with the page size riding
	// along as a presentation parameter.
	if gotListQuery != "file_type=pdf&ordering=-uploaded_at&page_size=25" {
		t.Fatalf("list query = %q, want filter params plus page_size", gotListQuery)
	}

	if _, err := fetch(ctx, cache.Key("bogus")); err == nil {
		t.Fatalf("fetch(bogus key) returned nil error")
	}
}
