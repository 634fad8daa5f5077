// Package embedded provides access to the theme definitions compiled into kvshell.
package embedded

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed themes/*.yaml
var themeFS embed.FS

// ThemeData returns the YAML definition of the named theme.
func ThemeData(name string) ([]byte, error) {
	return themeFS.ReadFile(path.Join("themes", name+".yaml"))
}

// ThemeNames returns the names of all embedded themes, sorted.
func ThemeNames() []string {
	entries, err := fs.ReadDir(themeFS, "themes")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
