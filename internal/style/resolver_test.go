package style

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvshell/pkg/kvtypes"
)

func TestLoadEmbeddedThemes(t *testing.T) {
	for _, theme := range Themes() {
		t.Run(theme, func(t *testing.T) {
			resolver, err := Load(theme)
			require.NoError(t, err)
			assert.Equal(t, theme, resolver.Theme())
			for _, name := range Required {
				token, err := resolver.Resolve(name)
				require.NoError(t, err)
				assert.Equal(t, name, token.Name())
			}
		})
	}
}

func TestLoadThemeAliases(t *testing.T) {
	resolver, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, resolver.Theme())

	resolver, err = Load(" Dark1 ")
	require.NoError(t, err)
	assert.Equal(t, "dark", resolver.Theme())
}

func TestLoadUnknownTheme(t *testing.T) {
	_, err := Load("solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solarized")
	assert.Contains(t, err.Error(), "plain")
}

func TestNewFailsFastOnMissingStyle(t *testing.T) {
	file := kvtypes.ThemeFile{
		Name: "partial",
		Styles: map[string]kvtypes.StyleConfig{
			Success: {},
			Error:   {},
		},
	}

	_, err := New(file, Required...)

	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "partial", configErr.Theme)
	assert.Equal(t, Key, configErr.Name)
	assert.Contains(t, err.Error(), `"key"`)
}

func TestResolveUndefinedName(t *testing.T) {
	resolver, err := Load("plain")
	require.NoError(t, err)

	_, err = resolver.Resolve("hyperlink")
	var configErr *ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestTokenRender(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	defer lipgloss.SetColorProfile(originalProfile)

	resolver, err := Load("dark")
	require.NoError(t, err)
	token, err := resolver.Resolve(Key)
	require.NoError(t, err)

	rendered := token.Render(" \"k1\"\n")
	assert.NotEqual(t, " \"k1\"\n", rendered)
	assert.Equal(t, " \"k1\"\n", ansi.Strip(rendered))
	assert.Equal(t, 1, countNewlines(rendered))
}

func TestZeroTokenRendersVerbatim(t *testing.T) {
	var token Token
	assert.True(t, token.IsZero())
	assert.Equal(t, "10)", token.Render("10)"))
}

func TestCreateStyle(t *testing.T) {
	bold := true
	style := createStyle(kvtypes.StyleConfig{
		Foreground: "#FF0000",
		Background: map[string]interface{}{"light": "#FFFFFF", "dark": "#000000"},
		Bold:       &bold,
	})

	assert.True(t, style.GetBold())
	assert.Equal(t, lipgloss.Color("#FF0000"), style.GetForeground())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}, style.GetBackground())
}

func TestParseColorRejectsIncompleteAdaptive(t *testing.T) {
	assert.Nil(t, parseColor(map[string]interface{}{"light": "#FFFFFF"}))
	assert.Nil(t, parseColor(42))
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
