// Package preset loads named dice-pool presets from YAML or TOML.
//
// A catalog starts from the presets embedded in this package; a preset file
// on disk adds to it and replaces built-in presets that share a name.
package preset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtinYAML []byte

// Preset is a named dice expression chain with optional rule overrides.
type Preset struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
	Dice        []string `yaml:"dice" toml:"dice" json:"dice"`
	Success     *int     `yaml:"success,omitempty" toml:"success" json:"success,omitempty"`
	Reroll      *int     `yaml:"reroll,omitempty" toml:"reroll" json:"reroll,omitempty"`
	Crit        *int     `yaml:"crit,omitempty" toml:"crit" json:"crit,omitempty"`
	NSC         *bool    `yaml:"nsc,omitempty" toml:"nsc" json:"nsc,omitempty"`
}

type file struct {
	Presets []Preset `yaml:"presets" toml:"presets"`
}

// Format names a preset document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from a file extension. Anything that is not
// ".toml" reads as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Catalog is an immutable set of presets keyed by name.
type Catalog struct {
	presets map[string]Preset
}

// Builtin returns the catalog embedded in the binary.
func Builtin() Catalog {
	catalog, err := Parse(builtinYAML, "builtin")
	if err != nil {
		panic(fmt.Sprintf("builtin presets: %v", err))
	}
	return catalog
}

// Load returns the built-in catalog merged with the presets in path.
// An empty path or a missing file yields the built-in catalog alone.
func Load(path string) (Catalog, error) {
	catalog := Builtin()
	if strings.TrimSpace(path) == "" {
		return catalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return catalog, nil
		}
		return Catalog{}, fmt.Errorf("read presets: %w", err)
	}
	overrides, err := Decode(data, FormatOf(path), path)
	if err != nil {
		return Catalog{}, err
	}
	return catalog.Merge(overrides), nil
}

// DefaultPath returns the first preset file found under the user's config
// directory, or "" when there is none.
func DefaultPath() string {
	for _, dir := range configDirs() {
		for _, name := range []string{"presets.yaml", "presets.yml", "presets.toml"} {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "dicepool"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "dicepool"))
	}
	return dirs
}

// Parse decodes and validates a YAML preset document. source names the
// document in error messages.
func Parse(data []byte, source string) (Catalog, error) {
	return Decode(data, FormatYAML, source)
}

// Decode decodes and validates a preset document in the given format.
func Decode(data []byte, format Format, source string) (Catalog, error) {
	var doc file
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return Catalog{}, invalid(source, err.Error(), err)
	}

	catalog := Catalog{presets: make(map[string]Preset, len(doc.Presets))}
	for i, p := range doc.Presets {
		p.Name = strings.TrimSpace(p.Name)
		if err := validate(p); err != nil {
			return Catalog{}, invalid(source, fmt.Sprintf("preset %d: %s", i+1, err), nil)
		}
		if _, dup := catalog.presets[p.Name]; dup {
			return Catalog{}, invalid(source, fmt.Sprintf("duplicate preset %q", p.Name), nil)
		}
		catalog.presets[p.Name] = p
	}
	return catalog, nil
}

func validate(p Preset) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Dice) == 0 {
		return fmt.Errorf("%q has no dice", p.Name)
	}
	for _, expr := range p.Dice {
		if !strings.Contains(expr, "d") {
			return fmt.Errorf("%q has malformed dice %q", p.Name, expr)
		}
	}
	if p.Reroll != nil && *p.Reroll <= 1 {
		return fmt.Errorf("%q reroll must be greater than 1", p.Name)
	}
	for _, v := range []*int{p.Success, p.Crit} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%q thresholds must not be negative", p.Name)
		}
	}
	return nil
}

func invalid(source, reason string, cause error) error {
	return apperrors.WrapWithMetadata(
		apperrors.CodePresetInvalid,
		fmt.Sprintf("invalid presets in %s: %s", source, reason),
		map[string]string{"Path": source, "Reason": reason},
		cause,
	)
}

// Merge returns a catalog holding c's presets replaced or extended by other's.
func (c Catalog) Merge(other Catalog) Catalog {
	out := Catalog{presets: make(map[string]Preset, len(c.presets)+len(other.presets))}
	for name, p := range c.presets {
		out.presets[name] = p
	}
	for name, p := range other.presets {
		out.presets[name] = p
	}
	return out
}

// Lookup returns the preset called name.
func (c Catalog) Lookup(name string) (Preset, error) {
	p, ok := c.presets[strings.TrimSpace(name)]
	if !ok {
		return Preset{}, apperrors.WithMetadata(
			apperrors.CodePresetNotFound,
			fmt.Sprintf("preset %q not found", name),
			map[string]string{"Name": name},
		)
	}
	p.Dice = slices.Clone(p.Dice)
	return p, nil
}

// List returns every preset sorted by name.
func (c Catalog) List() []Preset {
	out := make([]Preset, 0, len(c.presets))
	for _, p := range c.presets {
		p.Dice = slices.Clone(p.Dice)
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Len returns the number of presets in the catalog.
func (c Catalog) Len() int {
	return len(c.presets)
}
