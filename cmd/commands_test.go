package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vaults-mcp/internal/tools"

	"github.com/spf13/cobra"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestToolsCommand(t *testing.T) {
	out, _, err := execute(t, newToolsCmd())
	if err != nil {
		t.Fatalf("tools command failed: %v", err)
	}

	for _, name := range []string{"health_check", "get_billing_status", "apply_sensitivity_labels"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected %s in tools output", name)
		}
	}
	if !strings.Contains(out, "51 tools") {
		t.Errorf("Expected tool count in output. Got: %q", out)
	}
}

func TestToolsCommand_Category(t *testing.T) {
	out, _, err := execute(t, newToolsCmd(), "--category", "Payment")
	if err != nil {
		t.Fatalf("tools command failed: %v", err)
	}

	if !strings.Contains(out, "create_stripe_checkout") {
		t.Errorf("Expected payment tools in output. Got: %q", out)
	}
	if strings.Contains(out, "health_check") {
		t.Errorf("Did not expect health tools in payment listing")
	}
	if !strings.Contains(out, "5 tools") {
		t.Errorf("Expected 5 payment tools. Got: %q", out)
	}
}

func TestToolsCommand_UnknownCategory(t *testing.T) {
	_, _, err := execute(t, newToolsCmd(), "--category", "weather")
	if err == nil {
		t.Fatal("Expected error for unknown category")
	}
	if !strings.Contains(err.Error(), `unknown category "weather"`) || !strings.Contains(err.Error(), "governance") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	registry := tools.NewRegistry(nil)

	c, err := parseCategory(registry, " Governance ")
	if err != nil {
		t.Fatalf("parseCategory failed: %v", err)
	}
	if c != tools.CategoryGovernance {
		t.Errorf("Expected governance, got %s", c)
	}
}

func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("baseUrl: %s\nmaxRetries: 1\nlogLevel: CRITICAL\n", baseURL)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestCallCommand_Local(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "healthy", "message": "ok"}`))
	}))
	defer backend.Close()

	out, _, err := execute(t, newCallCmd(), "health_check", "--config", writeTestConfig(t, backend.URL))
	if err != nil {
		t.Fatalf("call command failed: %v", err)
	}
	if !strings.Contains(out, "System Health Status: HEALTHY") {
		t.Errorf("Unexpected output: %q", out)
	}
}

func TestCallCommand_ErrorResultExitsNonZero(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "tenant not found"}`))
	}))
	defer backend.Close()

	_, errOut, err := execute(t, newCallCmd(), "get_tenant_overview",
		"--args", `{"tenant_id": "missing"}`,
		"--config", writeTestConfig(t, backend.URL))
	if err == nil {
		t.Fatal("Expected error for failed tool call")
	}
	if !strings.Contains(errOut, "tenant not found") {
		t.Errorf("Expected backend error on stderr. Got: %q", errOut)
	}
}

func TestCallCommand_InvalidInput(t *testing.T) {
	_, _, err := execute(t, newCallCmd(), "health_check", "--args", "[1,2]")
	if err == nil || !strings.Contains(err.Error(), "arguments must be a JSON object") {
		t.Errorf("Expected argument error, got %v", err)
	}

	_, _, err = execute(t, newCallCmd(), "health_check", "--output", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("Expected output format error, got %v", err)
	}

	_, _, err = execute(t, newCallCmd())
	if err == nil {
		t.Error("Expected error when no tool name is given")
	}
}

func TestBuildClientConfig(t *testing.T) {
	data, err := buildClientConfig("/usr/local/bin/vaults-mcp", "https://vaults.example.net")
	if err != nil {
		t.Fatalf("buildClientConfig failed: %v", err)
	}

	var decoded mcpClientConfig
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("client config is not valid JSON: %v", err)
	}
	server, ok := decoded.MCPServers["vaults"]
	if !ok {
		t.Fatal("Expected a 'vaults' server entry")
	}
	if server.Command != "/usr/local/bin/vaults-mcp" {
		t.Errorf("Unexpected command %q", server.Command)
	}
	if len(server.Args) != 1 || server.Args[0] != "serve" {
		t.Errorf("Unexpected args %v", server.Args)
	}
	if server.Env["VAULTS_BASE_URL"] != "https://vaults.example.net" {
		t.Errorf("Unexpected base URL %q", server.Env["VAULTS_BASE_URL"])
	}
	if server.Env["VAULTS_FUNCTION_KEY"] != functionKeyPlaceholder {
		t.Errorf("Unexpected function key %q", server.Env["VAULTS_FUNCTION_KEY"])
	}
}

func TestClientConfigCommand_Copy(t *testing.T) {
	originalWrite := clipboardWriteAll
	originalExecutable := osExecutable
	defer func() {
		clipboardWriteAll = originalWrite
		osExecutable = originalExecutable
	}()

	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	osExecutable = func() (string, error) { return "/opt/vaults-mcp", nil }

	out, errOut, err := execute(t, newClientConfigCmd(), "--copy", "--base-url", "https://vaults.example.net")
	if err != nil {
		t.Fatalf("client-config failed: %v", err)
	}
	if strings.TrimSpace(out) != copied {
		t.Errorf("Clipboard content differs from printed snippet")
	}
	if !strings.Contains(out, `"command": "/opt/vaults-mcp"`) {
		t.Errorf("Unexpected output: %q", out)
	}
	if !strings.Contains(errOut, "Copied to clipboard") {
		t.Errorf("Expected copy confirmation. Got: %q", errOut)
	}
}

func TestClientConfigCommand_CopyFailure(t *testing.T) {
	originalWrite := clipboardWriteAll
	defer func() { clipboardWriteAll = originalWrite }()
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }

	_, _, err := execute(t, newClientConfigCmd(), "--copy")
	if err == nil || !strings.Contains(err.Error(), "failed to copy to clipboard") {
		t.Errorf("Expected clipboard error, got %v", err)
	}
}

func TestClientConfigCommand_ExecutableFallback(t *testing.T) {
	originalExecutable := osExecutable
	defer func() { osExecutable = originalExecutable }()
	osExecutable = func() (string, error) { return "", errors.New("unknown") }

	out, _, err := execute(t, newClientConfigCmd())
	if err != nil {
		t.Fatalf("client-config failed: %v", err)
	}
	if !strings.Contains(out, `"command": "vaults-mcp"`) {
		t.Errorf("Expected fallback command name. Got: %q", out)
	}
}
