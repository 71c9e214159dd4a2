package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tinqs/internal/store"
)

// fakeAPI is a minimal in-memory tinqs server for command tests.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	requireAuth := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer tok-test" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid token"}`))
			return false
		}
		return true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "ada@example.com" && body["password"] == "hunter22" {
			_, _ = w.Write([]byte(`{"authToken":"tok-test"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Wrong email or password."}`))
	})
	mux.HandleFunc("GET /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"ada@example.com"}`))
	})
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		_, _ = w.Write([]byte(`[
			{"_id":"t1","title":"Monday task","date":"2025-01-06","status":"pending","category":"cat-1"},
			{"_id":"t2","title":"Wednesday task","date":"2025-01-08","status":"done"},
			{"_id":"t3","title":"Undated task","status":"pending"}
		]`))
	})
	mux.HandleFunc("POST /categories", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["name"] == "Work" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"E11000 duplicate key"}`))
			return
		}
		_, _ = w.Write([]byte(`{"_id":"cat-2","name":"` + body["name"] + `"}`))
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		_, _ = w.Write([]byte(`[{"_id":"cat-1","name":"Work"}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func storedToken(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	kv, err := store.OpenKV(ctx)
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	defer kv.Close()
	tok, _, err := kv.Get(ctx, store.TokenKey)
	if err != nil {
		t.Fatalf("get token: %v", err)
	}
	return tok
}

func TestLogin_StoresTokenAndWhoamiUsesIt(t *testing.T) {
	t.Setenv("TINQS_CONFIG_DIR", t.TempDir())
	srv := fakeAPI(t)

	out, err := run(t, "--api", srv.URL, "login", "--email", "ada@example.com", "--password", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, `"loggedIn":true`) {
		t.Fatalf("login output = %q", out)
	}
	if got := storedToken(t); got != "tok-test" {
		t.Fatalf("stored token = %q", got)
	}

	out, err = run(t, "--api", srv.URL, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, `"email":"ada@example.com"`) {
		t.Fatalf("whoami output = %q", out)
	}

	if _, err := run(t, "--api", srv.URL, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got := storedToken(t); got != "" {
		t.Fatalf("token after logout = %q", got)
	}
}

func TestLogin_BadCredentialsShowServerMessage(t *testing.T) {
	t.Setenv("TINQS_CONFIG_DIR", t.TempDir())
	srv := fakeAPI(t)

	_, err := run(t, "--api", srv.URL, "login", "--email", "ada@example.com", "--password", "nope")
	if err == nil {
		t.Fatalf("expected login failure")
	}
	if err.Error() != "Wrong email or password." {
		t.Fatalf("error = %q, want server message verbatim", err.Error())
	}
	if got := storedToken(t); got != "" {
		t.Fatalf("token stored on failed login: %q", got)
	}
}

func TestCommands_RequireLogin(t *testing.T) {
	t.Setenv("TINQS_CONFIG_DIR", t.TempDir())
	srv := fakeAPI(t)

	_, err := run(t, "--api", srv.URL, "tasks", "list")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("err = %v", err)
	}
}

func TestCategoriesCreate_ConflictGetsFriendlyMessage(t *testing.T) {
	t.Setenv("TINQS_CONFIG_DIR", t.TempDir())
	srv := fakeAPI(t)

	if _, err := run(t, "--api", srv.URL, "login", "--email", "ada@example.com", "--password", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err := run(t, "--api", srv.URL, "categories", "create", "Work")
	if err == nil {
		t.Fatalf("expected conflict")
	}
	if err.Error() != msgDuplicateCategory {
		t.Fatalf("error = %q, want %q", err.Error(), msgDuplicateCategory)
	}

	// A fresh name succeeds.
	out, err := run(t, "--api", srv.URL, "categories", "create", "Home")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, `"name":"Home"`) {
		t.Fatalf("output = %q", out)
	}
}

func TestTasksList_FiltersAndSorts(t *testing.T) {
	t.Setenv("TINQS_CONFIG_DIR", t.TempDir())
	srv := fakeAPI(t)

	if _, err := run(t, "--api", srv.URL, "login", "--email", "ada@example.com", "--password", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	out, err := run(t, "--api", srv.URL, "tasks", "list", "--status", "pending")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var payload struct {
		Data []struct {
			ID string `json:"_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v (out=%q)", err, out)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("pending tasks = %+v", payload.Data)
	}
	// Dated first (date desc), undated last.
	if payload.Data[0].ID != "t1" || payload.Data[1].ID != "t3" {
		t.Fatalf("order = %+v", payload.Data)
	}

	if _, err := run(t, "--api", srv.URL, "tasks", "list", "--status", "bogus"); err == nil {
		t.Fatalf("expected invalid status error")
	}
}

func TestTasksCreate_RejectsMalformedDate(t *testing.T) {
	t.Setenv("TINQS_CONFIG_DIR", t.TempDir())
	srv := fakeAPI(t)

	_, err := run(t, "--api", srv.URL, "tasks", "create", "--title", "X", "--date", "next tuesday")
	if err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Fatalf("err = %v", err)
	}
}

func TestResolveAPIURL_FallsBackToConfig(t *testing.T) {
	t.Setenv("TINQS_CONFIG_DIR", t.TempDir())

	if _, err := run(t, "config", "set-api", "https://api.tinqs.example/"); err != nil {
		t.Fatalf("set-api: %v", err)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIURL != "https://api.tinqs.example" {
		t.Fatalf("apiUrl = %q (trailing slash should be trimmed)", cfg.APIURL)
	}

	got, err := resolveAPIURL(&App{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "https://api.tinqs.example" {
		t.Fatalf("resolved = %q", got)
	}

	if _, err := run(t, "config", "set-api", "not a url"); err == nil {
		t.Fatalf("expected invalid URL error")
	}
}
