package crates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonnieCache/cargo-open/pkg/cache"
	"github.com/JonnieCache/cargo-open/pkg/registry"
)

const serdeBody = `{"crate": {
	"name": "serde",
	"max_version": "1.0.219",
	"max_stable_version": "1.0.219",
	"description": "A generic serialization/deserialization framework",
	"repository": "https://github.com/serde-rs/serde",
	"downloads": 1000000,
	"recent_downloads": 50000
}}`

// crateServer serves body for /crates/<name> and 404s everything else,
// counting how many requests actually reached it.
func crateServer(t *testing.T, name, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Path != "/crates/"+name {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func clientFor(serverURL string, store cache.Cache) *Client {
	return &Client{
		Client:  registry.NewClient(store, "crates:", time.Hour, nil),
		baseURL: serverURL,
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(cache.NewNullCache(), time.Hour)
	if c.Client == nil {
		t.Error("expected client to be initialized")
	}
}

func TestFetchCrate(t *testing.T) {
	server := crateServer(t, "serde", serdeBody, nil)
	c := clientFor(server.URL, cache.NewNullCache())

	info, err := c.FetchCrate(context.Background(), "serde", true)
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}

	checks := []struct {
		field string
		got   any
		want  any
	}{
		{"Name", info.Name, "serde"},
		{"Version", info.Version, "1.0.219"},
		{"StableVersion", info.StableVersion, "1.0.219"},
		{"Repository", info.Repository, "https://github.com/serde-rs/serde"},
		{"Downloads", info.Downloads, 1000000},
		{"RecentDownloads", info.RecentDownloads, 50000},
	}
	for _, check := range checks {
		if check.got != check.want {
			t.Errorf("%s = %v, want %v", check.field, check.got, check.want)
		}
	}
}

func TestFetchCrateNotFound(t *testing.T) {
	server := crateServer(t, "serde", serdeBody, nil)
	c := clientFor(server.URL, cache.NewNullCache())

	_, err := c.FetchCrate(context.Background(), "no-such-crate", true)
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchCrateUsesCache(t *testing.T) {
	var hits atomic.Int32
	server := crateServer(t, "serde", serdeBody, &hits)

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	defer store.Close()
	c := clientFor(server.URL, store)

	for i := 0; i < 3; i++ {
		info, err := c.FetchCrate(context.Background(), "serde", false)
		if err != nil {
			t.Fatalf("FetchCrate #%d failed: %v", i+1, err)
		}
		if info.Version != "1.0.219" {
			t.Errorf("FetchCrate #%d: Version = %s, want 1.0.219", i+1, info.Version)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1 (later calls should hit the cache)", got)
	}

	// refresh=true bypasses the cache even when an entry exists.
	if _, err := c.FetchCrate(context.Background(), "serde", true); err != nil {
		t.Fatalf("FetchCrate with refresh failed: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server saw %d requests after refresh, want 2", got)
	}
}

func TestCrateInfoLatest(t *testing.T) {
	tests := []struct {
		name string
		info CrateInfo
		want string
	}{
		{"stable available", CrateInfo{Version: "2.0.0-rc.1", StableVersion: "1.9.3"}, "1.9.3"},
		{"prerelease only", CrateInfo{Version: "0.1.0-alpha"}, "0.1.0-alpha"},
		{"stable equals max", CrateInfo{Version: "1.4.0", StableVersion: "1.4.0"}, "1.4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Latest(); got != tt.want {
				t.Errorf("Latest() = %s, want %s", got, tt.want)
			}
		})
	}
}
