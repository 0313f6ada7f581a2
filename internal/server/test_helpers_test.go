package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"ice-breaker/internal/config"
	"ice-breaker/internal/platform"
)

// fakePlatform stands in for the hosted backend: auth endpoints, remote
// procedures, and table reads, with call counting for the tests that assert
// a request never went out.
type fakePlatform struct {
	t     *testing.T
	calls atomic.Int64

	rpcResults    map[string]string
	tableResults  map[string]string
	tableFailures map[string]string
}

func newFakePlatform(t *testing.T) *fakePlatform {
	return &fakePlatform{
		t:             t,
		rpcResults:    make(map[string]string),
		tableResults:  make(map[string]string),
		tableFailures: make(map[string]string),
	}
}

func (f *fakePlatform) rpc(fn, body string) {
	f.rpcResults[fn] = body
}

func (f *fakePlatform) table(name, rows string) {
	f.tableResults[name] = rows
}

// tableError makes every read of the named table fail with a 500 and the
// given error body.
func (f *fakePlatform) tableError(name, body string) {
	f.tableFailures[name] = body
}

func (f *fakePlatform) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": body["email"]})
	})
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if r.URL.Query().Get("grant_type") == "password" && body["password"] != "hunter22" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Invalid login credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"expires_in":    3600,
			"user":          map[string]string{"id": "host-1", "email": "ada@example.test"},
		})
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rest/v1/rpc/", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		fn := strings.TrimPrefix(r.URL.Path, "/rest/v1/rpc/")
		body, ok := f.rpcResults[fn]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"unknown function","code":"PGRST301"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/rest/v1/", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		if body, failed := f.tableFailures[table]; failed {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(body))
			return
		}
		rows, ok := f.tableResults[table]
		if !ok {
			rows = "[]"
		}
		_, _ = w.Write([]byte(rows))
	})
	return mux
}

// newTestApp wires a Server (in-memory sessions, no database) against a fake
// platform and returns both.
func newTestApp(t *testing.T) (*fakePlatform, *httptest.Server) {
	t.Helper()
	backend := newFakePlatform(t)
	backendTS := httptest.NewServer(backend.handler())
	t.Cleanup(backendTS.Close)

	client, err := platform.New(platform.Config{URL: backendTS.URL, AnonKey: "anon"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	cfg := config.Default()
	cfg.Platform = platform.Config{URL: backendTS.URL, AnonKey: "anon"}

	srv := New(nil, cfg, client)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return backend, ts
}

// testClient is an http client with a cookie jar, no redirect following, so
// tests can observe 302s and keep one browser session across requests.
type testClient struct {
	t      *testing.T
	http   *http.Client
	base   string
	cookie *http.Cookie
}

func newTestClient(t *testing.T, ts *httptest.Server) *testClient {
	return &testClient{
		t: t,
		http: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		base: ts.URL,
	}
}

func (tc *testClient) do(req *http.Request) *http.Response {
	tc.t.Helper()
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}
	resp, err := tc.http.Do(req)
	if err != nil {
		tc.t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "ib_session" {
			tc.cookie = cookie
		}
	}
	tc.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (tc *testClient) get(path string) *http.Response {
	tc.t.Helper()
	req, err := http.NewRequest(http.MethodGet, tc.base+path, nil)
	if err != nil {
		tc.t.Fatalf("new request: %v", err)
	}
	return tc.do(req)
}

func (tc *testClient) postForm(path string, form url.Values) *http.Response {
	tc.t.Helper()
	req, err := http.NewRequest(http.MethodPost, tc.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		tc.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req)
}

func (tc *testClient) postJSON(path string, payload any) *http.Response {
	tc.t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		tc.t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, tc.base+path, bytes.NewReader(data))
	if err != nil {
		tc.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func signIn(t *testing.T, tc *testClient) {
	t.Helper()
	resp := tc.postForm("/login", url.Values{
		"email":    []string{"ada@example.test"},
		"password": []string{"hunter22"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("sign in status = %d", resp.StatusCode)
	}
}
