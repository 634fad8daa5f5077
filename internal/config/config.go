// Package config loads the kvshell configuration.
//
// Values come from, highest priority first: command-line flags, KVSHELL_* environment
// variables, a .env file in the working directory, and defaults. The result is an
// immutable Config passed explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"kvshell/internal/logger"
	"kvshell/internal/style"
)

// Configuration keys. Flags use the same names.
const (
	KeyRaw      = "raw"
	KeyNoColor  = "no-color"
	KeyTheme    = "theme"
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"
	KeyReplay   = "replay"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "KVSHELL"

// Config is the resolved configuration.
type Config struct {
	// Raw selects scripting-safe output.
	Raw      bool
	NoColor  bool
	Theme    string
	LogLevel string
	LogFile  string
	// Replay is the path of a recorded replies file served instead of a live server.
	Replay string
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// Flags are bound over every other source. May be nil.
	Flags *pflag.FlagSet
	// Dir is searched for a .env file. Empty means the working directory.
	Dir string
	// StdoutFd decides raw mode when it is not configured explicitly: output that is
	// not a terminal defaults to raw.
	StdoutFd uintptr
	// TestMode skips the .env file.
	TestMode bool
}

// RegisterFlags adds the configuration flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Bool(KeyRaw, false, "Emit raw, unstyled output suitable for scripts (default when stdout is not a terminal)")
	flags.Bool(KeyNoColor, false, "Disable colors but keep the human-readable layout")
	flags.String(KeyTheme, style.DefaultTheme, "Color theme ("+strings.Join(style.Themes(), "|")+")")
	flags.String(KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String(KeyLogFile, "", "Write logs to file instead of stderr")
	flags.String(KeyReplay, "", "Serve replies from a recorded YAML file")
}

// Load resolves the configuration.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTheme, style.DefaultTheme)

	if !opts.TestMode {
		if err := loadDotEnv(v, opts.Dir); err != nil {
			return Config{}, err
		}
	}

	if opts.Flags != nil {
		if err := v.BindPFlags(opts.Flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := Config{
		NoColor:  v.GetBool(KeyNoColor),
		Theme:    v.GetString(KeyTheme),
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		Replay:   v.GetString(KeyReplay),
	}

	if v.IsSet(KeyRaw) {
		cfg.Raw = v.GetBool(KeyRaw)
	} else {
		cfg.Raw = !isTerminal(opts.StdoutFd)
	}

	logger.Debug("Configuration loaded", "raw", cfg.Raw, "theme", cfg.Theme, "replay", cfg.Replay)
	return cfg, nil
}

// loadDotEnv applies KVSHELL_* entries of dir/.env as defaults. A missing file is not
// an error.
func loadDotEnv(v *viper.Viper, dir string) error {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	envPath := filepath.Join(dir, ".env")
	data, err := os.ReadFile(envPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", envPath, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", envPath, err)
	}

	prefix := EnvPrefix + "_"
	for name, value := range envMap {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, prefix)), "_", "-")
		v.SetDefault(key, value)
	}
	return nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
