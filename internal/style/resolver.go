// Package style resolves semantic style names to display tokens.
// A Resolver is built once at startup from a theme and is read-only afterwards.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"kvshell/internal/data/embedded"
	"kvshell/internal/logger"
	"kvshell/pkg/kvtypes"
)

// Semantic names referenced by the reply renderers.
const (
	Success = "success"
	Error   = "error"
	Key     = "key"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "default"

// Required lists the names every theme must define.
var Required = []string{Success, Error, Key}

// ConfigError reports a style name the theme does not define. It is a configuration
// bug and is surfaced at startup.
type ConfigError struct {
	Theme string
	Name  string
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("theme %q does not define required style %q", e.Theme, e.Name)
}

// Token is an opaque handle to a display style. The zero Token renders text unchanged.
type Token struct {
	name  string
	style lipgloss.Style
}

// Name returns the semantic name the token was resolved from, or "" for the zero Token.
func (t Token) Name() string {
	return t.name
}

// IsZero reports whether the token carries no style.
func (t Token) IsZero() bool {
	return t.name == ""
}

// Render applies the style line by line so newlines inside text are preserved exactly.
func (t Token) Render(text string) string {
	if t.IsZero() || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = t.style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Resolver maps semantic names to tokens.
type Resolver struct {
	theme  string
	tokens map[string]Token
}

// Load builds a Resolver from an embedded theme and checks that every Required name
// is defined.
func Load(theme string) (*Resolver, error) {
	name := canonicalTheme(theme)

	data, err := embedded.ThemeData(name)
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", theme, strings.Join(Themes(), ", "))
	}

	var file kvtypes.ThemeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
	}
	if file.Name == "" {
		file.Name = name
	}

	return New(file, Required...)
}

// New builds a Resolver from a decoded theme file. Every name in required must be
// present, otherwise a *ConfigError naming the first missing style is returned.
func New(file kvtypes.ThemeFile, required ...string) (*Resolver, error) {
	r := &Resolver{
		theme:  file.Name,
		tokens: make(map[string]Token, len(file.Styles)),
	}

	for name, config := range file.Styles {
		r.tokens[name] = Token{name: name, style: createStyle(config)}
	}

	for _, name := range required {
		if _, err := r.Resolve(name); err != nil {
			return nil, err
		}
	}

	logger.Debug("Theme loaded", "theme", r.theme, "styles", len(r.tokens))
	return r, nil
}

// Resolve returns the token for a semantic name.
func (r *Resolver) Resolve(name string) (Token, error) {
	token, ok := r.tokens[name]
	if !ok {
		return Token{}, &ConfigError{Theme: r.theme, Name: name}
	}
	return token, nil
}

// Theme returns the name of the loaded theme.
func (r *Resolver) Theme() string {
	return r.theme
}

// Names returns the defined style names, sorted.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.tokens))
	for name := range r.tokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Themes returns the names of the available themes.
func Themes() []string {
	return embedded.ThemeNames()
}

func canonicalTheme(theme string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(theme)); normalized {
	case "":
		return DefaultTheme
	case "dark1":
		return "dark"
	default:
		return normalized
	}
}

// createStyle converts a StyleConfig to a lipgloss.Style.
func createStyle(config kvtypes.StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if config.Foreground != nil {
		if color := parseColor(config.Foreground); color != nil {
			style = style.Foreground(color)
		}
	}
	if config.Background != nil {
		if color := parseColor(config.Background); color != nil {
			style = style.Background(color)
		}
	}

	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}
	if config.Strikethrough != nil && *config.Strikethrough {
		style = style.Strikethrough(true)
	}

	return style
}

// parseColor parses a color value that can be a string or a light/dark map.
func parseColor(value interface{}) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
		return nil
	default:
		return nil
	}
}
