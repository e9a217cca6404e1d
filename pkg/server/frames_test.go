package server

import (
	"errors"
	"net/http/httptest"
	"testing"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     FrameType
		wantCode string
	}{
		{"hello", `{"type":"hello","trigger":{"x":1,"y":2,"width":3,"height":4}}`, FrameHello, ""},
		{"hello without trigger", `{"type":"hello"}`, "", "T060"},
		{"hello bad placement", `{"type":"hello","trigger":{},"placement":"up"}`, "", "T060"},
		{"pointer", `{"type":"pointer","target":"floating","event":"pointerleave"}`, FramePointer, ""},
		{"pointer mouse alias", `{"type":"pointer","target":"trigger","event":"mouseenter"}`, FramePointer, ""},
		{"pointer bad event", `{"type":"pointer","target":"trigger","event":"click"}`, "", "T060"},
		{"layout", `{"type":"layout"}`, FrameLayout, ""},
		{"rendered", `{"type":"rendered","floating":{"width":10,"height":5}}`, FrameRendered, ""},
		{"malformed", `{"type":`, "", "T060"},
		{"unknown", `{"type":"visibility"}`, "", "T061"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeFrame([]byte(tt.in))
			if tt.wantCode != "" {
				if !terrors.HasCode(err, tt.wantCode) {
					t.Fatalf("DecodeFrame() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeFrame() = %v", err)
			}
			if f.Type != tt.want {
				t.Errorf("Type = %q, want %q", f.Type, tt.want)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	if ev, ok := ParseEvent("pointerenter"); !ok || ev != tooltip.PointerEnter {
		t.Error("pointerenter not parsed")
	}
	if ev, ok := ParseEvent("mouseleave"); !ok || ev != tooltip.PointerLeave {
		t.Error("mouseleave not parsed")
	}
	if _, ok := ParseEvent("focus"); ok {
		t.Error("focus should not parse")
	}
}

func TestErrorFrame(t *testing.T) {
	f := errorFrame(terrors.New("T061").WithDetail(`frame type "x"`))
	if f.Code != "T061" || f.Message != `Unknown frame type: frame type "x"` {
		t.Errorf("errorFrame = %+v", f)
	}
	plain := errorFrame(errors.New("boom"))
	if plain.Code != "" || plain.Message != "boom" {
		t.Errorf("errorFrame(plain) = %+v", plain)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := (&Config{Address: ":9999"}).withDefaults()
	if cfg.Address != ":9999" || cfg.WriteTimeout == 0 || cfg.Logger == nil {
		t.Errorf("withDefaults() = %+v", cfg)
	}
	if cfg.Tooltip != tooltip.DefaultConfig() {
		t.Errorf("Tooltip = %+v, want defaults", cfg.Tooltip)
	}
	var nilCfg *Config
	if nilCfg.withDefaults().Address != "localhost:8080" {
		t.Error("nil config should use defaults")
	}
}

func TestSameOrigin(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/ws", nil)
	if !sameOrigin(r) {
		t.Error("request without Origin rejected")
	}
	r.Header.Set("Origin", "http://example.com")
	if !sameOrigin(r) {
		t.Error("same origin rejected")
	}
	r.Header.Set("Origin", "http://evil.test")
	if sameOrigin(r) {
		t.Error("cross origin accepted")
	}
}
