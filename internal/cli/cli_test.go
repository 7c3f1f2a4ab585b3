package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetmap/pkg/config"
	"github.com/matzehuels/assetmap/pkg/graph"
)

const scenarioJSON = `{
  "nodes": [
    {"id": "A", "title": "web-a", "systems": ["Prod"], "groups": ["Web"]},
    {"id": "B", "title": "web-b", "systems": ["Prod"], "groups": ["Web"]},
    {"id": "C", "title": "db", "classification": "database", "systems": ["Prod"]}
  ],
  "edges": [
    {"id": "e1", "from": "A", "to": "C", "relationship": "uses"},
    {"id": "e2", "from": "B", "to": "C", "relationship": "uses"}
  ]
}`

// writeInventory writes the scenario inventory into a temp dir.
func writeInventory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte(scenarioJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with a config path that does not exist,
// so every test sees the built-in defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var logs bytes.Buffer
	c := New(&logs, log.DebugLevel)
	root := c.RootCommand()
	missing := filepath.Join(t.TempDir(), "missing.toml")
	root.SetArgs(append([]string{"--config", missing}, args...))
	root.SetOut(&logs)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	for _, name := range []string{"map", "render", "inspect", "serve", "cache"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
	if root.PersistentFlags().Lookup("no-cache") == nil {
		t.Error("--no-cache flag missing")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug message logged at info level")
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug message not logged after SetLogLevel")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "dot, json", []string{"dot", "json"}},
		{"empty parts dropped", "dot,,svg,", []string{"dot", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "inv/assets.json", "inv/assets"},
		{"", "assets.hcl", "assets"},
		{"out/picture.svg", "assets.json", "out/picture"},
		{"out/picture", "assets.json", "out/picture"},
		{"out/picture.txt", "assets.json", "out/picture.txt"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRoutingOrDefault(t *testing.T) {
	cfg := config.Default()
	if got := routingOrDefault("", cfg); got != cfg.Mapping.Routing {
		t.Errorf("routingOrDefault(\"\") = %q, want config value %q", got, cfg.Mapping.Routing)
	}
	if got := routingOrDefault("all-pairs", cfg); got != "all-pairs" {
		t.Errorf("routingOrDefault(all-pairs) = %q", got)
	}
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[mapping]\nrouting = \"all-pairs\"\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Mapping.Routing != "all-pairs" || cfg.Cache.Backend != "none" {
		t.Errorf("loadConfig() = %+v, want values from file", cfg)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[mapping]\nroute = \"first\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	if _, err := c.loadConfig(); err == nil {
		t.Error("loadConfig() should fail on unknown keys")
	}
}

func TestMapCommandWritesElements(t *testing.T) {
	input := writeInventory(t)
	output := filepath.Join(t.TempDir(), "elements.json")

	if _, err := execute(t, "map", input, "-o", output, "--pass", "t"); err != nil {
		t.Fatalf("map error: %v", err)
	}

	elems, err := graph.ReadElementsFile(output)
	if err != nil {
		t.Fatalf("ReadElementsFile() error: %v", err)
	}
	if len(elems) != 7 {
		t.Fatalf("got %d elements, want 7 (2 compounds, 3 instances, 2 edges)", len(elems))
	}
	if elems[0].ID != "system.t-1" || elems[1].ParentID != "system.t-1" {
		t.Errorf("compounds = %q/%q, want Web nested in Prod", elems[0].ID, elems[1].ParentID)
	}
}

func TestMapCommandRejectsBadRouting(t *testing.T) {
	input := writeInventory(t)
	output := filepath.Join(t.TempDir(), "elements.json")

	if _, err := execute(t, "map", input, "-o", output, "--routing", "shortest"); err == nil {
		t.Error("map with unknown routing should fail")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("no output should be written on failure")
	}
}

func TestMapCommandMissingInput(t *testing.T) {
	if _, err := execute(t, "map", filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("map of a missing file should fail")
	}
}

func TestRenderCommandWritesDOTAndJSON(t *testing.T) {
	input := writeInventory(t)
	base := filepath.Join(t.TempDir(), "out", "assets")

	if _, err := execute(t, "render", input, "-f", "dot,json", "-o", base, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("dot output missing: %v", err)
	}
	if !strings.HasPrefix(string(dot), "digraph G {") || !strings.Contains(string(dot), "subgraph") {
		t.Errorf("unexpected dot output:\n%s", dot)
	}
	if _, err := graph.ReadElementsFile(base + ".elements.json"); err != nil {
		t.Errorf("elements output unreadable: %v", err)
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	input := writeInventory(t)
	if _, err := execute(t, "render", input, "-f", "gif"); err == nil {
		t.Error("render with unknown format should fail")
	}
}

func TestRenderCommandCachesPictures(t *testing.T) {
	input := writeInventory(t)
	base := filepath.Join(t.TempDir(), "assets")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(&bytes.Buffer{}, LogDebug)
	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	opts := renderOpts{output: base, formats: []string{"dot"}, rankDir: "TB", scale: 1}

	// Each run maps under a fresh pass token; the second picture still
	// matches the first because it is served from the cache.
	var outputs [][]byte
	for i := 0; i < 2; i++ {
		if err := c.runRender(context.Background(), input, opts); err != nil {
			t.Fatalf("render %d error: %v", i, err)
		}
		data, err := os.ReadFile(base + ".dot")
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("second render should be served from the cache")
	}

	dir, err := c.fileCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if entries, err := os.ReadDir(dir); err != nil || len(entries) == 0 {
		t.Errorf("expected cached artifacts under %s, err=%v", dir, err)
	}
}

func TestFileCacheDirFollowsXDG(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	dir, err := c.fileCacheDir()
	if err != nil {
		t.Fatalf("fileCacheDir() error: %v", err)
	}
	if want := filepath.Join(cacheHome, appName); dir != want {
		t.Errorf("fileCacheDir() = %q, want %q", dir, want)
	}
}

func TestFileCacheDirRejectsRemoteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"redis\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	if _, err := c.fileCacheDir(); err == nil {
		t.Error("fileCacheDir() should fail for the redis backend")
	}
}

func TestCacheClearCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	dir := filepath.Join(cacheHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a", "b"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestMetricsURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080/metrics",
		"127.0.0.1:9000": "http://127.0.0.1:9000/metrics",
	}
	for addr, want := range tests {
		if got := metricsURL(addr); got != want {
			t.Errorf("metricsURL(%q) = %q, want %q", addr, got, want)
		}
	}
}
