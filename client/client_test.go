package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLoginSuccess(t *testing.T) {
	token := mintToken(t, "alice", "student", "alice@example.com", time.Now().Add(time.Hour))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != loginPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req loginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "alice" || req.Password != "pw" {
			t.Errorf("credentials = %+v", req)
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"access_token": token,
			"token_type":   "bearer",
			"user_type":    "student",
			"username":     "alice",
		})
	}))
	defer backend.Close()

	store := NewMemoryStore()
	notifier := &recordingNotifier{}
	c := NewClient(backend.URL, store, WithNotifier(notifier))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	role, err := c.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if role != "student" {
		t.Errorf("role = %q, want student", role)
	}

	session := c.Session()
	if session == nil || session.Role != "student" || session.Username != "alice" {
		t.Fatalf("Session() = %+v", session)
	}
	if decision := c.Evaluate("student"); decision.State != AuthorizedForRoute {
		t.Errorf("guard decision = %+v", decision)
	}
	if RoleHome(role) != RouteStudentHome {
		t.Errorf("redirect target = %q, want %q", RoleHome(role), RouteStudentHome)
	}
	if stored, _ := store.Get(); stored != token {
		t.Error("token not persisted")
	}
	if len(notifier.successes) == 0 {
		t.Error("no success notification emitted")
	}
}

func TestLoginBackendFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
	}))
	defer backend.Close()

	store := NewMemoryStore()
	notifier := &recordingNotifier{}
	c := NewClient(backend.URL, store, WithNotifier(notifier))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	_, err := c.Login(context.Background(), "alice", "wrong")
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("Login() error = %v, want *BackendError", err)
	}
	if backendErr.Detail != "Invalid credentials" {
		t.Errorf("Detail = %q, want Invalid credentials", backendErr.Detail)
	}
	if backendErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", backendErr.StatusCode)
	}

	if stored, _ := store.Get(); stored != "" {
		t.Error("token store changed on failed login")
	}
	if c.Session() != nil {
		t.Error("session established on failed login")
	}
	if len(notifier.errors) == 0 {
		t.Error("no error notification emitted")
	}
}

func TestLoginNetworkFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", NewMemoryStore(),
		WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	_, err := c.Login(context.Background(), "alice", "pw")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Login() error = %v, want *NetworkError", err)
	}
}

func TestLoginValidation(t *testing.T) {
	c := NewClient("http://backend", NewMemoryStore())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "pw"},
		{name: "empty password", username: "alice", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Login(context.Background(), tt.username, tt.password)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Login() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestRegisterThenLogin(t *testing.T) {
	token := mintToken(t, "carol", "instructor", "carol@example.com", time.Now().Add(time.Hour))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case registerPath:
			var profile RegisterProfile
			_ = json.NewDecoder(r.Body).Decode(&profile)
			if profile.UserType != "instructor" {
				t.Errorf("user_type = %q", profile.UserType)
			}
			writeJSON(w, http.StatusCreated, map[string]any{"id": 3, "username": profile.Username})
		case loginPath:
			writeJSON(w, http.StatusOK, map[string]string{
				"access_token": token,
				"user_type":    "instructor",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer backend.Close()

	notifier := &recordingNotifier{}
	c := NewClient(backend.URL, NewMemoryStore(), WithNotifier(notifier))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	role, err := c.Register(context.Background(), RegisterProfile{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "pw",
		UserType: "instructor",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if role != "instructor" {
		t.Errorf("role = %q, want instructor", role)
	}
	if c.Session() == nil {
		t.Error("no session after register+login")
	}
	if len(notifier.successes) < 2 || notifier.successes[0] != "Account created successfully" {
		t.Errorf("notifications = %v", notifier.successes)
	}
}

func TestRegisterSurfacesLoginFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case registerPath:
			writeJSON(w, http.StatusCreated, map[string]any{"id": 4})
		case loginPath:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
		}
	}))
	defer backend.Close()

	store := NewMemoryStore()
	c := NewClient(backend.URL, store, WithNotifier(&recordingNotifier{}))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	_, err := c.Register(context.Background(), RegisterProfile{
		Username: "dave", Email: "dave@example.com", Password: "pw", UserType: "student",
	})
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("Register() error = %v, want the login *BackendError", err)
	}
	if backendErr.Detail != "Incorrect username or password" {
		t.Errorf("Detail = %q", backendErr.Detail)
	}
	if c.Session() != nil || mustGet(t, store) != "" {
		t.Error("session established despite login failure")
	}
}

func TestDoubleSubmitGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	token := mintToken(t, "alice", "student", "", time.Now().Add(time.Hour))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "user_type": "student"})
	}))
	defer backend.Close()

	c := NewClient(backend.URL, NewMemoryStore(), WithNotifier(&recordingNotifier{}))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Login(context.Background(), "alice", "pw")
		done <- err
	}()

	<-entered
	if _, err := c.Login(context.Background(), "alice", "pw"); !errors.Is(err, ErrLoginInFlight) {
		t.Errorf("second Login() error = %v, want ErrLoginInFlight", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("first Login() error = %v", err)
	}
}

func TestLogoutDuringPendingLogin(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	token := mintToken(t, "alice", "student", "", time.Now().Add(time.Hour))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "user_type": "student"})
	}))
	defer backend.Close()

	store := NewMemoryStore()
	c := NewClient(backend.URL, store, WithNotifier(&recordingNotifier{}))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Login(context.Background(), "alice", "pw")
		done <- err
	}()

	<-entered
	c.Logout()
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("pending Login() error = %v, want ErrSuperseded", err)
	}
	if c.Session() != nil {
		t.Error("logged-out session resurrected by stale login response")
	}
	if mustGet(t, store) != "" {
		t.Error("stale token written after logout")
	}
	if decision := c.Evaluate(""); decision.State != Unauthenticated {
		t.Errorf("guard decision = %+v, want Unauthenticated", decision)
	}
}

func mustGet(t *testing.T, store TokenStore) string {
	t.Helper()
	token, err := store.Get()
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	return token
}
