// Package kvtypes defines theme-related data structures for the reply renderers.
// This file contains the types a theme YAML file is decoded into.
package kvtypes

// ThemeFile represents a theme configuration loaded from YAML.
// Styles maps semantic names ("success", "error", "key", ...) to their visual definition.
type ThemeFile struct {
	// Name is the theme identifier (e.g., "default", "dark", "light", "plain")
	Name string `yaml:"name" json:"name"`

	// Description provides a brief description of the theme
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Styles map[string]StyleConfig `yaml:"styles" json:"styles"`
}

// StyleConfig defines the visual styling for a semantic element.
// It supports both simple color specifications and adaptive colors for light/dark terminals.
type StyleConfig struct {
	// Foreground color - can be hex color, named color, or adaptive color object
	Foreground interface{} `yaml:"foreground,omitempty" json:"foreground,omitempty"`

	// Background color - can be hex color, named color, or adaptive color object
	Background interface{} `yaml:"background,omitempty" json:"background,omitempty"`

	Bold          *bool `yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic        *bool `yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline     *bool `yaml:"underline,omitempty" json:"underline,omitempty"`
	Strikethrough *bool `yaml:"strikethrough,omitempty" json:"strikethrough,omitempty"`
}
