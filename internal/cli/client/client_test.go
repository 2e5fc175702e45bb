package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/painel-dev/painelctl/internal/cli/auth"
)

func newTestClient(t *testing.T, serverURL string, store auth.TokenStore, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithTokenStore(store)}, opts...)
	return New(serverURL, opts...)
}

func TestResolveError_StatusTableForUnparsableBody(t *testing.T) {
	tests := []struct {
		status          int
		expectedMessage string
	}{
		{400, "Invalid data sent to the server"},
		{401, "Invalid or expired credentials"},
		{403, "Access denied"},
		{404, "Service not found"},
		{500, "Internal server error"},
		{502, "Server unavailable"},
		{503, "Service temporarily unavailable"},
		{418, "Error communicating with the server"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("<html>not json</html>"))
			}))
			defer server.Close()

			store := auth.NewMemoryStore()
			c := newTestClient(t, server.URL, store)

			_, err := c.Login(context.Background(), "admin@painel.local", "secret")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Message != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, apiErr.Message)
			}
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
		})
	}
}

func TestResolveError_ServerMessageWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "email is required",
			"status":  400,
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, auth.NewMemoryStore())

	_, err := c.Login(context.Background(), "", "secret")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "email is required" {
		t.Errorf("expected server-provided message, got %q", err.Error())
	}
}

func TestResolveError_SessionInvalidatingStatuses(t *testing.T) {
	for _, status := range []int{401, 403} {
		t.Run(fmt.Sprintf("status_%d", status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte("nope"))
			}))
			defer server.Close()

			store := auth.NewMemoryStore()
			store.SaveToken("stale-token")

			var hookStatus int
			hookFired := false
			c := newTestClient(t, server.URL, store, WithInvalidationHook(func(s int) {
				hookFired = true
				hookStatus = s
				// The token must already be gone when the hook observes
				// the invalidation.
				if store.HasToken() {
					t.Error("token still stored when invalidation hook fired")
				}
			}))

			_, err := c.Login(context.Background(), "admin@painel.local", "wrong")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if store.HasToken() {
				t.Error("expected stored token to be deleted")
			}
			if !hookFired {
				t.Error("expected invalidation hook to fire before the error returned")
			}
			if hookStatus != status {
				t.Errorf("expected hook status %d, got %d", status, hookStatus)
			}
			if !IsSessionInvalid(err) {
				t.Error("expected IsSessionInvalid to report true")
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Email != "admin@painel.local" || req.Senha != "secret" {
			t.Errorf("unexpected credentials: %s / %s", req.Email, req.Senha)
		}

		json.NewEncoder(w).Encode(LoginResponse{
			Admin: Admin{ID: "01HZX5", Name: "Admin", Email: req.Email, Role: "admin"},
			Token: "token-abc",
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, auth.NewMemoryStore())

	resp, err := c.Login(context.Background(), "admin@painel.local", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "token-abc" {
		t.Errorf("expected token token-abc, got %s", resp.Token)
	}
	if resp.Admin.Email != "admin@painel.local" {
		t.Errorf("unexpected admin email: %s", resp.Admin.Email)
	}
}

func TestLogin_ConnectivityFailure(t *testing.T) {
	// Point at a closed port so the dial fails before any HTTP response.
	c := newTestClient(t, "http://127.0.0.1:1", auth.NewMemoryStore())

	_, err := c.Login(context.Background(), "admin@painel.local", "secret")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != connectivityMessage {
		t.Errorf("expected fixed connectivity message, got %q", err.Error())
	}

	// The underlying dial error stays reachable for callers that care.
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Unwrap() == nil {
		t.Error("expected wrapped transport error")
	}
	if apiErr.Status != 0 {
		t.Errorf("expected status 0 for transport failure, got %d", apiErr.Status)
	}
}

func TestValidateToken_ClearsTokenOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer stale-token" {
			t.Errorf("unexpected Authorization header: %s", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "Invalid or expired token", "status": 401})
	}))
	defer server.Close()

	store := auth.NewMemoryStore()
	store.SaveToken("stale-token")
	c := newTestClient(t, server.URL, store)

	_, err := c.ValidateToken(context.Background(), "stale-token")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if store.HasToken() {
		t.Error("expected stored token to be deleted")
	}
}

func TestValidateToken_ClearsTokenOnTransportError(t *testing.T) {
	store := auth.NewMemoryStore()
	store.SaveToken("some-token")
	c := newTestClient(t, "http://127.0.0.1:1", store)

	_, err := c.ValidateToken(context.Background(), "some-token")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if store.HasToken() {
		t.Error("expected stored token to be deleted on transport failure")
	}
}

func TestValidateToken_ClearsTokenOnNonAuthHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := auth.NewMemoryStore()
	store.SaveToken("some-token")
	c := newTestClient(t, server.URL, store)

	_, err := c.ValidateToken(context.Background(), "some-token")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if store.HasToken() {
		t.Error("expected stored token to be deleted on 500")
	}
}

func TestValidateToken_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Admin{ID: "01HZX5", Name: "Admin", Email: "admin@painel.local", Role: "admin"})
	}))
	defer server.Close()

	store := auth.NewMemoryStore()
	store.SaveToken("good-token")
	c := newTestClient(t, server.URL, store)

	admin, err := c.ValidateToken(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Email != "admin@painel.local" {
		t.Errorf("unexpected admin email: %s", admin.Email)
	}
	if !store.HasToken() {
		t.Error("token must survive a successful validation")
	}
}

func TestLogout_AlwaysClearsToken(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		dead    bool
	}{
		{
			name: "server accepts logout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/logout" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
					t.Errorf("unexpected Authorization header: %s", got)
				}
				w.WriteHeader(http.StatusNoContent)
			},
		},
		{
			name: "server rejects logout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "server unreachable",
			dead: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "http://127.0.0.1:1"
			if !tt.dead {
				server := httptest.NewServer(tt.handler)
				defer server.Close()
				url = server.URL
			}

			store := auth.NewMemoryStore()
			store.SaveToken("token-abc")
			c := newTestClient(t, url, store)

			if err := c.Logout(context.Background()); err != nil {
				t.Fatalf("logout must be best-effort, got error: %v", err)
			}
			if store.HasToken() {
				t.Error("expected stored token to be deleted")
			}
		})
	}
}

func TestLogout_NoStoredToken(t *testing.T) {
	// No network call expected; a handler that fails the test proves it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request during logout without a stored token")
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, auth.NewMemoryStore())

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profiles/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("unexpected Authorization header: %s", got)
		}
		json.NewEncoder(w).Encode(AccessProfile{
			ID:          42,
			Name:        "Support",
			Description: "Read-only support access",
			Permissions: []string{"tickets:read"},
		})
	}))
	defer server.Close()

	store := auth.NewMemoryStore()
	store.SaveToken("token-abc")
	c := newTestClient(t, server.URL, store)

	profile, err := c.GetProfile(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Support" {
		t.Errorf("unexpected profile name: %s", profile.Name)
	}
}

func TestGetProfile_NotAuthenticated(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1", auth.NewMemoryStore())

	_, err := c.GetProfile(context.Background(), 42)
	if err != auth.ErrNoToken {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestCheckServerHealth(t *testing.T) {
	t.Run("healthy server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, auth.NewMemoryStore())
		if !c.CheckServerHealth(context.Background()) {
			t.Error("expected true for healthy server")
		}
	})

	t.Run("failing server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, auth.NewMemoryStore())
		if c.CheckServerHealth(context.Background()) {
			t.Error("expected false for 500 response")
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		c := newTestClient(t, "http://127.0.0.1:1", auth.NewMemoryStore())
		if c.CheckServerHealth(context.Background()) {
			t.Error("expected false for unreachable server")
		}
	})

	t.Run("slow server hits the probe timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		c := newTestClient(t, server.URL, auth.NewMemoryStore(),
			WithHealthTimeout(50*time.Millisecond))

		start := time.Now()
		if c.CheckServerHealth(context.Background()) {
			t.Error("expected false when the probe times out")
		}
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Errorf("probe did not honor its timeout, took %v", elapsed)
		}
	})
}
