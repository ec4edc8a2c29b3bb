package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	catalogPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	catalogPath := filepath.Join(base, "catalog.json")
	writeTestCatalog(t, catalogPath)

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`log_level = "error"
log_format = "console"

[paths]
data_dir = %q
log_dir = %q

[catalog]
source = "file"
file = %q
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		catalogPath,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		baseDir:     base,
		configPath:  configPath,
		catalogPath: catalogPath,
	}
}

func writeTestCatalog(t *testing.T, path string) {
	t.Helper()
	catalogJSON := `[
  {"id": "bolt-m21", "name": "Lightning Bolt", "set_code": "M21", "collector_number": "141"},
  {"id": "bolt-sta", "name": "Lightning Bolt", "set_code": "STA", "collector_number": "42"},
  {"id": "fog-lea", "name": "Fog", "set_code": "LEA", "collector_number": "55"}
]`
	if err := os.WriteFile(path, []byte(catalogJSON), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLILedgerLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "add", "bolt-m21", "--quantity", "4", "--location", "Trade Binder")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added 4 x bolt-m21")

	out, _, err = runCLI(t, env.configPath, "move", "bolt-m21", "--quantity", "2", "--from", "Trade Binder", "--to", "Deck Box")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	requireContains(t, out, "trade_binder -> deck_box")

	out, _, err = runCLI(t, env.configPath, "remove", "bolt-m21", "--quantity", "1", "--location", "deck_box")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, "Removed 1 x bolt-m21")

	out, _, err = runCLI(t, env.configPath, "set", "condition", "bolt-m21", "LP")
	if err != nil {
		t.Fatalf("set condition: %v", err)
	}
	requireContains(t, out, "Set condition for bolt-m21")

	out, _, err = runCLI(t, env.configPath, "holdings")
	if err != nil {
		t.Fatalf("holdings: %v", err)
	}
	requireContains(t, out, "bolt-m21")
	requireContains(t, out, "deck_box=1")
	requireContains(t, out, "trade_binder=2")
	requireContains(t, out, "LP")
}

func TestCLIHoldingsEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "holdings")
	if err != nil {
		t.Fatalf("holdings: %v", err)
	}
	requireContains(t, out, "Ledger is empty")
}

func TestCLIRejectsNonPositiveQuantity(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "add", "bolt-m21", "--quantity", "0"); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if _, _, err := runCLI(t, env.configPath, "remove", "bolt-m21", "--quantity", "-1"); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestCLIExportImportRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "add", "bolt-m21", "--quantity", "2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := runCLI(t, env.configPath, "add", "fog-lea"); err != nil {
		t.Fatalf("add fog: %v", err)
	}

	batchPath := filepath.Join(env.baseDir, "batch.json")
	out, _, err := runCLI(t, env.configPath, "export", "--output", batchPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 2 events")

	// Importing into the same ledger is a pure no-op: every id is known.
	out, _, err = runCLI(t, env.configPath, "import", batchPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Imported 0 new events (2 duplicates skipped)")

	// A second device with an empty ledger picks up both events.
	other := setupCLITestEnv(t)
	out, _, err = runCLI(t, other.configPath, "import", batchPath)
	if err != nil {
		t.Fatalf("import into fresh ledger: %v", err)
	}
	requireContains(t, out, "Imported 2 new events (0 duplicates skipped)")

	out, _, err = runCLI(t, other.configPath, "holdings")
	if err != nil {
		t.Fatalf("holdings after import: %v", err)
	}
	requireContains(t, out, "bolt-m21")
	requireContains(t, out, "fog-lea")
}

func TestCLIScanAppendsConfirmedAdds(t *testing.T) {
	env := setupCLITestEnv(t)

	// Number and set push the exact match past the auto-confirm threshold
	// and clear of the other printing.
	framePath := filepath.Join(env.baseDir, "frames.txt")
	frames := strings.Repeat("Lightning Bolt\t141\tM21\n", 3)
	if err := os.WriteFile(framePath, []byte(frames), 0o644); err != nil {
		t.Fatalf("write frames: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "scan", "--input", framePath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Added Lightning Bolt (bolt-m21, score 100)")
	requireContains(t, out, "1 added")

	out, _, err = runCLI(t, env.configPath, "holdings")
	if err != nil {
		t.Fatalf("holdings after scan: %v", err)
	}
	requireContains(t, out, "bolt-m21")
}

func TestCLIScanAmbiguousGoesToReview(t *testing.T) {
	env := setupCLITestEnv(t)

	// Name-only frames score both Bolt printings identically, so the
	// result stays below auto-confirm and lands in review.
	framePath := filepath.Join(env.baseDir, "frames.txt")
	frames := strings.Repeat("Lightning Bolt\n", 3)
	if err := os.WriteFile(framePath, []byte(frames), 0o644); err != nil {
		t.Fatalf("write frames: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "scan", "--input", framePath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Review needed")
	requireContains(t, out, "0 added, 1 for review")

	out, _, err = runCLI(t, env.configPath, "holdings")
	if err != nil {
		t.Fatalf("holdings after scan: %v", err)
	}
	requireContains(t, out, "Ledger is empty")
}

func TestCLIScanUnknownCardNotFound(t *testing.T) {
	env := setupCLITestEnv(t)

	framePath := filepath.Join(env.baseDir, "frames.txt")
	frames := strings.Repeat("Totally Unknown Card\n", 3)
	if err := os.WriteFile(framePath, []byte(frames), 0o644); err != nil {
		t.Fatalf("write frames: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "scan", "--input", framePath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Not found: Totally Unknown Card")
}

func TestCLIValueReport(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "add", "bolt-m21", "--quantity", "4"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := runCLI(t, env.configPath, "add", "fog-lea"); err != nil {
		t.Fatalf("add fog: %v", err)
	}

	pricesPath := filepath.Join(env.baseDir, "prices.json")
	if err := os.WriteFile(pricesPath, []byte(`{"bolt-m21": "1.45"}`), 0o644); err != nil {
		t.Fatalf("write prices: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "value", "--prices", pricesPath)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	requireContains(t, out, "5.80")
	requireContains(t, out, "Total: 5.80")
	requireContains(t, out, "fog-lea")
}
