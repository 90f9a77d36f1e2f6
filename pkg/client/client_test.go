package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeAPI mimics the server just enough for the SDK: a fixed token,
// one user, and bearer-gated endpoints.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	const goodToken = "good-token"

	writeEnv := func(w http.ResponseWriter, status int, data any, message string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": status, "success": status < 400, "message": message, "data": data,
		})
	}
	me := map[string]any{"id": 1, "name": "Sarah", "email": "sarah@example.com", "type": "shipowner"}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "pass1234" {
			writeEnv(w, http.StatusUnauthorized, nil, "invalid credentials")
			return
		}
		writeEnv(w, http.StatusOK, map[string]any{"user": me, "token": goodToken}, "login successful")
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+goodToken {
			writeEnv(w, http.StatusUnauthorized, nil, "missing access token")
			return
		}
		writeEnv(w, http.StatusOK, map[string]any{"user": me}, "profile")
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeEnv(w, http.StatusOK, map[string]any{"loggedOut": true}, "logged out")
	})
	mux.HandleFunc("/api/matches", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+goodToken {
			writeEnv(w, http.StatusUnauthorized, nil, "missing access token")
			return
		}
		writeEnv(w, http.StatusConflict, nil, "ship already matched")
	})
	mux.HandleFunc("/api/ships", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "minDwt=80000") {
			t.Errorf("expected minDwt in query, got %q", r.URL.RawQuery)
		}
		writeEnv(w, http.StatusOK, []map[string]any{{"id": 7, "name": "Ocean Pioneer", "dwt": 95000}}, "ships")
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginAttachesBearer(t *testing.T) {
	server := fakeAPI(t)
	c := New(server.URL)

	if _, err := c.Login(context.Background(), "sarah@example.com", "wrong"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	u, err := c.Login(context.Background(), "sarah@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Name != "Sarah" {
		t.Errorf("got user %+v", u)
	}

	// The session token is now attached automatically.
	if _, err := c.Me(context.Background()); err != nil {
		t.Errorf("Me after login: %v", err)
	}
}

func TestSessionSubscribers(t *testing.T) {
	server := fakeAPI(t)
	c := New(server.URL)

	var events []bool
	c.Sessions().Subscribe(func(_ Session, active bool) {
		events = append(events, active)
	})

	if _, err := c.Login(context.Background(), "s@example.com", "pass1234"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if len(events) != 2 || events[0] != true || events[1] != false {
		t.Errorf("expected [active, cleared], got %v", events)
	}
	if _, ok := c.Sessions().Current(); ok {
		t.Error("session should be cleared after logout")
	}
}

func TestRestore(t *testing.T) {
	server := fakeAPI(t)

	// Valid persisted token.
	ts := NewMemoryTokenStore()
	_ = ts.Save("good-token")
	c := New(server.URL, WithTokenStore(ts))

	u, err := c.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if u.Name != "Sarah" {
		t.Errorf("got user %+v", u)
	}
	if s, ok := c.Sessions().Current(); !ok || s.User.Name != "Sarah" {
		t.Errorf("session not populated after restore")
	}

	// Stale token is discarded.
	stale := NewMemoryTokenStore()
	_ = stale.Save("expired-token")
	c2 := New(server.URL, WithTokenStore(stale))

	if _, err := c2.Restore(context.Background()); err == nil {
		t.Fatal("expected restore failure for stale token")
	}
	if tok, _ := stale.Load(); tok != "" {
		t.Error("stale token should be cleared")
	}
	if _, ok := c2.Sessions().Current(); ok {
		t.Error("no session should remain after failed restore")
	}
}

func TestErrorMapping(t *testing.T) {
	server := fakeAPI(t)
	c := New(server.URL)
	if _, err := c.Login(context.Background(), "s@example.com", "pass1234"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := c.Swipe(context.Background(), 7, nil); err != ErrConflict {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestShipsQueryEncoding(t *testing.T) {
	server := fakeAPI(t)
	c := New(server.URL)

	ships, err := c.Ships(context.Background(), ShipFilters{MinDWT: 80000})
	if err != nil {
		t.Fatalf("Ships: %v", err)
	}
	if len(ships) != 1 || ships[0].Name != "Ocean Pioneer" {
		t.Errorf("got %+v", ships)
	}
}

func TestFileTokenStore(t *testing.T) {
	path := t.TempDir() + "/token"
	fs := NewFileTokenStore(path)

	if tok, err := fs.Load(); err != nil || tok != "" {
		t.Fatalf("empty store: tok=%q err=%v", tok, err)
	}
	if err := fs.Save("abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tok, _ := fs.Load(); tok != "abc" {
		t.Errorf("expected abc, got %q", tok)
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tok, _ := fs.Load(); tok != "" {
		t.Errorf("expected cleared store, got %q", tok)
	}
}
