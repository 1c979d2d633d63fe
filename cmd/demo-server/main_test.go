package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Denwa799/openapi-example/demoapi"
	"github.com/Denwa799/openapi-example/demoserver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
environment: staging
server:
  port: 8081
demo:
  mode: server_error
  seed: 7
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Name != serviceName {
		t.Errorf("name = %q, want %q", cfg.Name, serviceName)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("port = %d, want 8081", cfg.Server.Port)
	}
	want := demoserver.Config{Mode: demoserver.ModeServerError, Seed: 7}
	if diff := cmp.Diff(want, cfg.Demo); diff != "" {
		t.Errorf("demo config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Observability.ServiceName != serviceName || cfg.Observability.Environment != "staging" {
		t.Errorf("observability defaults not propagated: %+v", cfg.Observability)
	}
}

func TestLoadConfigRejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, "demo:\n  mode: flaky\n")
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "demo") {
		t.Fatalf("expected demo validation error, got %v", err)
	}
}

func TestSpecCommand(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out []byte)
	}{
		{"json", func(t *testing.T, out []byte) {
			var doc struct {
				OpenAPI string                    `json:"openapi"`
				Paths   map[string]map[string]any `json:"paths"`
			}
			if err := json.Unmarshal(out, &doc); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			for _, p := range demoapi.Paths {
				if _, ok := doc.Paths[p]["get"]; !ok {
					t.Errorf("missing GET %s", p)
				}
			}
		}},
		{"yaml", func(t *testing.T, out []byte) {
			if !bytes.Contains(out, []byte("openapi: 3.1.0")) {
				t.Errorf("yaml output missing version line:\n%s", out)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCommand()
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"spec", "--format", tc.format})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("execute: %v", err)
			}
			tc.check(t, out.Bytes())
		})
	}
}

func TestSpecCommandUnknownFormat(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"spec", "--format", "toml"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
