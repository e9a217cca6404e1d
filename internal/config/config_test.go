package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()
	if cfg.Server.Port != DefaultPort || cfg.Server.Host != DefaultHost {
		t.Errorf("server = %+v", cfg.Server)
	}
	if got := cfg.TooltipConfig(); got != tooltip.DefaultConfig() {
		t.Errorf("TooltipConfig() = %+v, want defaults", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if cfg.Address() != "localhost:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: JSONFileName,
			content: `{
  "tooltip": {"placement": "Bottom-Start", "offset": 4, "hoverDelay": "250ms", "showArrow": false},
  "server": {"port": 9000}
}`,
		},
		{
			name: "yaml",
			file: YAMLFileName,
			content: `tooltip:
  placement: bottom-start
  offset: 4
  hoverDelay: 250ms
  showArrow: false
server:
  port: 9000
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() = %v", err)
			}
			if cfg.Path() != path || cfg.Dir() != dir {
				t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
			}

			got := cfg.TooltipConfig()
			want := tooltip.Config{
				Placement:  geometry.PlacementBottomStart,
				Offset:     4,
				ShowArrow:  false,
				HoverDelay: 250 * time.Millisecond,
			}
			if got != want {
				t.Errorf("TooltipConfig() = %+v, want %+v", got, want)
			}
			if cfg.Server.Port != 9000 || cfg.Server.Host != DefaultHost {
				t.Errorf("server = %+v", cfg.Server)
			}
		})
	}
}

func TestLoad_PrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{"tooltip": {"placement": "left"}}`)
	writeFile(t, dir, YAMLFileName, "tooltip:\n  placement: right\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Tooltip.Placement != "left" {
		t.Errorf("placement = %q, want left", cfg.Tooltip.Placement)
	}
	if !Exists(dir) {
		t.Error("Exists() = false")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	if !errors.HasCode(err, "T001") {
		t.Errorf("Load(empty) = %v, want T001", err)
	}
	if Exists(dir) {
		t.Error("Exists() = true for an empty dir")
	}

	path := writeFile(t, dir, JSONFileName, "{\n  \"tooltip\": {\n    \"offset\": ,\n  }\n}")
	_, err = LoadFile(path)
	if !errors.HasCode(err, "T002") {
		t.Fatalf("LoadFile(bad json) = %v, want T002", err)
	}
	if e := err.(*errors.Error); e.Location == nil || e.Location.Line != 3 {
		t.Errorf("Location = %+v, want line 3", e.Location)
	}

	ypath := writeFile(t, dir, "bad.yaml", "tooltip:\n  offset: [1\n")
	_, err = LoadFile(ypath)
	if !errors.HasCode(err, "T002") {
		t.Errorf("LoadFile(bad yaml) = %v, want T002", err)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	if !errors.HasCode(err, "T001") {
		t.Errorf("LoadFile(missing) = %v, want T001", err)
	}
}

func TestValidate(t *testing.T) {
	neg := -2.0
	tests := []struct {
		name  string
		edit  func(c *Config)
		codes []string
	}{
		{"valid", func(c *Config) {}, nil},
		{"placement", func(c *Config) { c.Tooltip.Placement = "middle" }, []string{"T003"}},
		{"offset", func(c *Config) { c.Tooltip.Offset = &neg }, []string{"T004"}},
		{"delay unparsable", func(c *Config) { c.Tooltip.HoverDelay = "soon" }, []string{"T005"}},
		{"delay negative", func(c *Config) { c.Tooltip.HoverDelay = "-1s" }, []string{"T005"}},
		{"port", func(c *Config) { c.Server.Port = 70000 }, []string{"T006"}},
		{"several", func(c *Config) {
			c.Tooltip.Placement = "middle"
			c.Server.Port = -1
		}, []string{"T003", "T006"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.edit(cfg)
			err := cfg.Validate()
			if len(tt.codes) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			for _, code := range tt.codes {
				if !errors.HasCode(err, code) {
					t.Errorf("Validate() = %v, want %s", err, code)
				}
			}
		})
	}
}

func TestTooltipConfig_PassesInvalidValuesThrough(t *testing.T) {
	neg := -3.0
	cfg := New()
	cfg.Tooltip.Placement = "middle"
	cfg.Tooltip.Offset = &neg

	got := cfg.TooltipConfig()
	if got.Placement != "middle" || got.Offset != -3 {
		t.Errorf("TooltipConfig() = %+v", got)
	}
	normalized, issues := got.Normalize()
	if len(issues) != 2 || normalized.Placement != geometry.PlacementTop || normalized.Offset != 0 {
		t.Errorf("Normalize() = %+v, %v", normalized, issues)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.yaml"} {
		cfg := New()
		cfg.Tooltip.Placement = "right-end"
		path := filepath.Join(dir, name)
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("SaveTo(%s) = %v", name, err)
		}
		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) = %v", name, err)
		}
		if loaded.TooltipConfig() != cfg.TooltipConfig() {
			t.Errorf("%s: round trip = %+v, want %+v", name, loaded.TooltipConfig(), cfg.TooltipConfig())
		}
		if loaded.Path() != path {
			t.Errorf("Path() = %q, want %q", loaded.Path(), path)
		}
	}

	if err := New().SaveTo(filepath.Join(dir, "missing", "tooltip.yaml")); !errors.HasCode(err, "T002") {
		t.Errorf("SaveTo() into a missing directory = %v, want T002", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"
	cfg.Logger(&buf).Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("json debug output = %q", buf.String())
	}

	buf.Reset()
	cfg.Log.Level = "bogus"
	cfg.Log.Format = "text"
	cfg.Logger(&buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug written at info level: %q", buf.String())
	}
}
