package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"
	"unicode"

	"golang.org/x/mod/modfile"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// LibraryPath is the import path generated code depends on.
const LibraryPath = "github.com/vango-dev/tooltip"

// DefaultOutDir is where components go, relative to the module root.
const DefaultOutDir = "components"

//go:embed templates/*.tmpl
var templateFS embed.FS

var files = template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))

var validName = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// Options describes the component to generate.
type Options struct {
	// Name is the component name in any case style, e.g. "HelpHint" or
	// "help-hint".
	Name string

	// Dir is any directory inside the target module (default: ".").
	Dir string

	// OutDir is the parent directory of the component, relative to the
	// module root (default: "components").
	OutDir string

	// Placement, HoverDelay and Content preset the generated options.
	// Zero values take the tooltip defaults.
	Placement  geometry.Placement
	HoverDelay time.Duration
	Content    string
}

// Result describes what was generated.
type Result struct {
	Dir        string
	ImportPath string
	Package    string
	Files      []string
}

type data struct {
	Package          string
	Type             string
	Kebab            string
	ImportPath       string
	LibraryPath      string
	Placement        string
	HoverDelayMillis int64
	Content          string
}

// Generate writes a component package. It never overwrites: an existing
// component directory fails with T041.
func Generate(opts Options) (*Result, error) {
	kebab := Kebab(opts.Name)
	if !validName.MatchString(kebab) {
		return nil, errors.New("T040").
			WithDetail(fmt.Sprintf("%q", opts.Name)).
			WithSuggestion("Use letters and digits, e.g. HelpHint or help-hint")
	}

	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.OutDir == "" {
		opts.OutDir = DefaultOutDir
	}
	def := tooltip.DefaultConfig()
	if opts.Placement == "" {
		opts.Placement = def.Placement
	}
	if !opts.Placement.Valid() {
		return nil, errors.New("T003").WithDetail(fmt.Sprintf("placement %q", opts.Placement))
	}
	if opts.HoverDelay == 0 {
		opts.HoverDelay = def.HoverDelay
	}
	if opts.HoverDelay < 0 {
		return nil, errors.New("T005").WithDetail("hover delay " + opts.HoverDelay.String())
	}

	root, modPath, err := findModule(opts.Dir)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(root, opts.OutDir, kebab)
	if _, err := os.Stat(dir); err == nil {
		return nil, errors.New("T041").
			WithDetail(dir).
			WithSuggestion("Pick another name or remove the directory")
	}

	d := data{
		Package:          strings.ReplaceAll(kebab, "-", ""),
		Type:             pascal(kebab),
		Kebab:            kebab,
		ImportPath:       path.Join(modPath, filepath.ToSlash(opts.OutDir), kebab),
		LibraryPath:      LibraryPath,
		Placement:        string(opts.Placement),
		HoverDelayMillis: opts.HoverDelay.Milliseconds(),
		Content:          opts.Content,
	}

	outputs := map[string]string{
		kebab + ".go":      "component.go.tmpl",
		"options.go":       "options.go.tmpl",
		kebab + "_test.go": "component_test.go.tmpl",
	}

	rendered := make(map[string][]byte, len(outputs))
	for name, tmpl := range outputs {
		src, err := render(tmpl, d)
		if err != nil {
			return nil, errors.New("T043").WithDetail(name).Wrap(err)
		}
		rendered[name] = src
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("T043").Wrap(err)
	}
	res := &Result{Dir: dir, ImportPath: d.ImportPath, Package: d.Package}
	for _, name := range []string{kebab + ".go", "options.go", kebab + "_test.go"} {
		full := filepath.Join(dir, name)
		if err := os.WriteFile(full, rendered[name], 0644); err != nil {
			return nil, errors.New("T043").Wrap(err)
		}
		res.Files = append(res.Files, full)
	}
	return res, nil
}

func render(name string, d data) ([]byte, error) {
	var buf bytes.Buffer
	if err := files.ExecuteTemplate(&buf, name, d); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

// findModule walks up from dir to the nearest go.mod and returns its
// directory and module path.
func findModule(dir string) (string, string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", errors.New("T042").Wrap(err)
	}
	for cur := abs; ; {
		data, err := os.ReadFile(filepath.Join(cur, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", "", errors.New("T042").
					WithDetail("go.mod in " + cur + " has no module directive")
			}
			return cur, modPath, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", "", errors.New("T042").
				WithDetail("no go.mod found above " + abs).
				WithSuggestion("Run inside a Go module or pass --dir")
		}
		cur = parent
	}
}

// Kebab converts HelpHint, helpHint, help_hint or "help hint" to help-hint.
func Kebab(name string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(name))
	for i, r := range runes {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		case unicode.IsUpper(r):
			if i > 0 && b.Len() > 0 && !strings.HasSuffix(b.String(), "-") &&
				(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

func pascal(kebab string) string {
	var b strings.Builder
	for _, part := range strings.Split(kebab, "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}
