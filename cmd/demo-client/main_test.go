package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/Denwa799/openapi-example/demoserver"
	"github.com/Denwa799/openapi-example/logger"
	"github.com/Denwa799/openapi-example/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startDemoServer(t *testing.T, scenario demoserver.Scenario) string {
	t.Helper()
	cfg := server.Config{}
	cfg.ApplyDefaults()
	srv := server.New(cfg, logger.Nop())
	app := demoserver.New(scenario, demoserver.WithLogger(logger.Nop()))
	srv.ApplyDefaults("demo-server", app)
	app.Register(srv.GinEngine())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func quietConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "environment: production\nlogging:\n  level: disabled\n  output: stderr\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", quietConfig(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFetchAll(t *testing.T) {
	tests := []struct {
		name     string
		outcome  demoserver.Outcome
		policy   string
		expected []string
	}{
		{
			name:    "success",
			outcome: demoserver.OutcomeSuccess,
			policy:  "all",
			expected: []string{
				"GET /text -> 200: text plain",
				"GET /json -> 200: data",
				"GET /xml -> 200: This is an example response",
			},
		},
		{
			name:    "bad request under all",
			outcome: demoserver.OutcomeBadRequest,
			policy:  "all",
			expected: []string{
				"GET /text -> 400: Alternative output",
				"GET /json -> 400: Alternative output",
				"GET /xml -> 400: Alternative output",
			},
		},
		{
			name:    "server error under all",
			outcome: demoserver.OutcomeServerError,
			policy:  "all",
			expected: []string{
				"GET /text -> 500: Server error",
				"GET /json -> 500: Server error",
				"GET /xml -> 500: Server error",
			},
		},
		{
			name:    "bad request under native",
			outcome: demoserver.OutcomeBadRequest,
			policy:  "native",
			expected: []string{
				"GET /text -> ERR_BAD_REQUEST (400): Request failed with status code 400",
				"GET /json -> ERR_BAD_REQUEST (400): Request failed with status code 400",
				"GET /xml -> ERR_BAD_REQUEST (400): Request failed with status code 400",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			url := startDemoServer(t, demoserver.FixedScenario(tc.outcome))
			out, err := run(t, "--base-url", url, "--valid-status", tc.policy)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			got := strings.Split(strings.TrimSpace(out), "\n")
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchAllTally(t *testing.T) {
	url := startDemoServer(t, demoserver.FixedScenario(demoserver.OutcomeSuccess))
	out, err := run(t, "--base-url", url, "--calls", "2")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasSuffix(out, "statuses:\n  200: 6\n") {
		t.Errorf("missing tally in output:\n%s", out)
	}
}

func TestURICommand(t *testing.T) {
	out, err := run(t, "uri", "--base-url", "http://api.example.com/")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	expected := "http://api.example.com/text\nhttp://api.example.com/json\nhttp://api.example.com/xml\n"
	if out != expected {
		t.Errorf("got %q, want %q", out, expected)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown policy", []string{"--valid-status", "some"}},
		{"zero calls", []string{"--calls", "0"}},
		{"bad base url", []string{"--base-url", "not a url"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := run(t, tc.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	out, err := run(t, "--base-url", url)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "GET /text -> ERR_NETWORK") {
		t.Errorf("expected network outcome, got:\n%s", out)
	}
}

func TestLoadConfigObservability(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cfg, err := loadConfig(write("defaults.yml", "environment: staging\n"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Observability.ServiceName != serviceName || cfg.Observability.Environment != "staging" {
		t.Errorf("observability defaults not propagated: %+v", cfg.Observability)
	}
	if cfg.Observability.Enabled {
		t.Error("observability should be disabled by default")
	}

	bad := write("bad.yml", "observability:\n  enabled: true\n  sample_rate: 3\n")
	if _, err := loadConfig(bad); err == nil || !strings.Contains(err.Error(), "sample_rate") {
		t.Fatalf("expected sample_rate error, got %v", err)
	}
}
