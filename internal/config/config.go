package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

const (
	// JSONFileName is the JSON configuration file name.
	JSONFileName = "tooltip.json"

	// YAMLFileName is the YAML configuration file name.
	YAMLFileName = "tooltip.yaml"

	// DefaultHost is the default playground server host.
	DefaultHost = "localhost"

	// DefaultPort is the default playground server port.
	DefaultPort = 8080

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// Config is the complete configuration file.
type Config struct {
	// Tooltip is the controller configuration.
	Tooltip TooltipConfig `json:"tooltip" yaml:"tooltip"`

	// Server is the playground server configuration.
	Server ServerConfig `json:"server" yaml:"server"`

	// Log configures logging.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// TooltipConfig mirrors tooltip.Config in file form. Pointer fields
// distinguish "unset" from zero values.
type TooltipConfig struct {
	// Placement is one of the twelve placements (default: "top").
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty"`

	// Offset is the gap in pixels (default: 8).
	Offset *float64 `json:"offset,omitempty" yaml:"offset,omitempty"`

	// Disabled starts the tooltip disabled.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`

	// ShowArrow toggles the arrow (default: true).
	ShowArrow *bool `json:"showArrow,omitempty" yaml:"showArrow,omitempty"`

	// HoverDelay is a Go duration string (default: "100ms").
	HoverDelay string `json:"hoverDelay,omitempty" yaml:"hoverDelay,omitempty"`

	// Content is the tooltip text.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// ServerConfig configures the playground server.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads tooltip.json, or tooltip.yaml when there is no JSON file,
// from dir.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, YAMLFileName, "tooltip.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("T001").
		WithDetail("No " + JSONFileName + " or " + YAMLFileName + " found in " + dir).
		WithSuggestion("Create " + YAMLFileName + " or pass --config")
}

// LoadFile reads the configuration at path. The format follows the file
// extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("T001").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("T002").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("T002").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithLocationFromYAML(path, err).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			e := errors.New("T002").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
			var syntax *json.SyntaxError
			if stderrors.As(err, &syntax) {
				line, col := lineCol(data, syntax.Offset)
				e = e.WithLocation(path, line, col)
			}
			return nil, e
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(data []byte, offset int64) (int, int) {
	line, col := 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// SaveTo writes the configuration to path in the format its extension
// names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("T002").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("T002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	def := tooltip.DefaultConfig()

	if c.Tooltip.Placement == "" {
		c.Tooltip.Placement = string(def.Placement)
	}
	if c.Tooltip.Offset == nil {
		offset := def.Offset
		c.Tooltip.Offset = &offset
	}
	if c.Tooltip.ShowArrow == nil {
		show := def.ShowArrow
		c.Tooltip.ShowArrow = &show
	}
	if c.Tooltip.HoverDelay == "" {
		c.Tooltip.HoverDelay = def.HoverDelay.String()
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks the configuration and returns every problem found,
// each as a coded error.
func (c *Config) Validate() error {
	var errs []error
	loc := func(e *errors.Error) *errors.Error {
		if c.configPath != "" {
			e.Location = &errors.Location{File: c.configPath}
		}
		return e
	}

	if _, err := geometry.ParsePlacement(c.Tooltip.Placement); err != nil {
		errs = append(errs, loc(errors.New("T003").
			WithDetail(fmt.Sprintf("placement %q", c.Tooltip.Placement)).
			WithSuggestion("Use one of: "+placementList())))
	}
	if c.Tooltip.Offset != nil && *c.Tooltip.Offset < 0 {
		errs = append(errs, loc(errors.New("T004").
			WithDetail(fmt.Sprintf("offset %g", *c.Tooltip.Offset))))
	}
	if d, err := time.ParseDuration(c.Tooltip.HoverDelay); err != nil {
		errs = append(errs, loc(errors.New("T005").
			WithDetail(fmt.Sprintf("hoverDelay %q is not a duration", c.Tooltip.HoverDelay)).
			WithSuggestion(`Use a Go duration such as "100ms"`)))
	} else if d < 0 {
		errs = append(errs, loc(errors.New("T005").
			WithDetail("hoverDelay " + c.Tooltip.HoverDelay)))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, loc(errors.New("T006").
			WithDetail("port "+strconv.Itoa(c.Server.Port)).
			WithSuggestion("Use a port between 1 and 65535")))
	}

	return stderrors.Join(errs...)
}

func placementList() string {
	names := make([]string, len(geometry.Placements))
	for i, p := range geometry.Placements {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// TooltipConfig converts the file form into a tooltip.Config.
func (c *Config) TooltipConfig() tooltip.Config {
	return c.Tooltip.Resolve()
}

// Resolve converts t into a tooltip.Config, using defaults for unset
// fields. Values that fail validation are passed through; tooltip.New
// clamps them.
func (t TooltipConfig) Resolve() tooltip.Config {
	out := tooltip.DefaultConfig()
	out.Disabled = t.Disabled
	out.Content = t.Content

	if t.Placement != "" {
		out.Placement = geometry.Placement(strings.ToLower(strings.TrimSpace(t.Placement)))
	}
	if t.Offset != nil {
		out.Offset = *t.Offset
	}
	if t.ShowArrow != nil {
		out.ShowArrow = *t.ShowArrow
	}
	if t.HoverDelay != "" {
		if d, err := time.ParseDuration(t.HoverDelay); err == nil {
			out.HoverDelay = d
		}
	}
	return out
}

// Address returns host:port for the playground server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Logger builds a slog.Logger writing to w per the Log section.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists reports whether dir contains a configuration file.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, YAMLFileName, "tooltip.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
