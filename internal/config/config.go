// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/curriculumlab/internal/export"
	"github.com/jeranaias/curriculumlab/internal/logging"
	"github.com/jeranaias/curriculumlab/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CURRICULUMLAB_"

// Config represents the complete curriculumlab configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Export behavior
	Export ExportConfig `toml:"export" json:"export"`

	// Attribution printed in every export
	Branding export.Branding `toml:"branding" json:"branding"`

	// Overrides of the human-visible labels. Empty fields keep the defaults.
	Labels export.Labels `toml:"labels" json:"labels"`

	Log     LogConfig     `toml:"log" json:"log"`
	Library LibraryConfig `toml:"library" json:"library"`
	Watch   WatchConfig   `toml:"watch" json:"watch"`
}

// ExportConfig contains export configuration.
type ExportConfig struct {
	// OutputDir is where exports are written. Default: current directory
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// OpenAfterExport opens saved files in the default application
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
	// PrettyJSON indents JSON exports
	PrettyJSON bool `toml:"pretty_json" json:"pretty_json"`
	// Lang is the lang attribute of HTML exports
	Lang string `toml:"lang" json:"lang"`
	// Overwrite replaces existing files instead of adding a numeric suffix
	Overwrite bool `toml:"overwrite" json:"overwrite"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Mode is "dev" (console) or "prod" (JSON lines)
	Mode string `toml:"mode" json:"mode"`
}

// LibraryConfig contains course library configuration.
type LibraryConfig struct {
	// DBPath is the SQLite database file. Empty means ~/.curriculumlab/library.db
	DBPath string `toml:"db_path" json:"db_path"`
}

// WatchConfig contains watch mode configuration.
type WatchConfig struct {
	// DebounceMS coalesces bursts of file events
	DebounceMS int `toml:"debounce_ms" json:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Export: ExportConfig{
			OutputDir:  ".",
			PrettyJSON: true,
			Lang:       "es",
		},
		Branding: export.DefaultBranding(),
		Labels:   export.DefaultLabels(),
		Log: LogConfig{
			Level: "info",
			Mode:  "dev",
		},
		Watch: WatchConfig{
			DebounceMS: 300,
		},
	}
}

// ExportOptions converts the configuration into export options.
func (c *Config) ExportOptions() *export.Options {
	opts := export.DefaultOptions()
	opts.OutputDir = c.Export.OutputDir
	opts.OpenAfterExport = c.Export.OpenAfterExport
	opts.PrettyJSON = c.Export.PrettyJSON
	opts.Lang = c.Export.Lang
	opts.Branding = c.Branding
	opts.Labels = c.Labels.WithDefaults()
	return opts
}

// NewLogger builds the logger described by the log section.
func (c *Config) NewLogger() (*logging.Logger, error) {
	return logging.New(c.Log.Mode, c.Log.Level)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the curriculumlab configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".curriculumlab"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultDBPath returns the default library database path.
func DefaultDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "library.db"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads .env files into the process environment. Missing files
// are skipped and variables already set are never replaced.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// dotEnvPaths lists the .env files consulted by Load.
func dotEnvPaths() []string {
	paths := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	return paths
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// .env files and environment overrides are applied last.
func Load() (*Config, error) {
	if err := LoadDotEnv(dotEnvPaths()...); err != nil {
		return nil, err
	}

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are JSON, everything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadFile decodes path over cfg without env overrides or validation.
func LoadFile(cfg *Config, path string) error {
	if isJSONPath(path) {
		if err := LoadJSON(cfg, path); err != nil {
			return fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
		return nil
	}
	if err := LoadTOML(cfg, path); err != nil {
		return fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return nil
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveFile writes cfg as JSON when path ends in .json, TOML otherwise.
func SaveFile(cfg *Config, path string) error {
	if isJSONPath(path) {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// RELIABILITY: Atomic write with fsync prevents a half-written config
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# curriculumlab configuration file")
	fmt.Fprintln(&buf, "# Environment variables prefixed with "+EnvPrefix+" take precedence")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Export.OutputDir) == "" {
		errs = append(errs, ValidationError{Field: "export.output_dir", Message: "cannot be empty"})
	}
	if strings.TrimSpace(c.Export.Lang) == "" {
		errs = append(errs, ValidationError{Field: "export.lang", Message: "cannot be empty"})
	} else if strings.ContainsAny(c.Export.Lang, " \"'<>&") {
		errs = append(errs, ValidationError{
			Field:   "export.lang",
			Message: fmt.Sprintf("invalid language tag '%s'", c.Export.Lang),
		})
	}

	if strings.TrimSpace(c.Branding.AppName) == "" {
		errs = append(errs, ValidationError{Field: "branding.app_name", Message: "cannot be empty"})
	}
	if c.Branding.Year < 0 {
		errs = append(errs, ValidationError{Field: "branding.year", Message: "cannot be negative"})
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	validModes := map[string]bool{"dev": true, "development": true, "prod": true, "production": true}
	if !validModes[strings.ToLower(c.Log.Mode)] {
		errs = append(errs, ValidationError{
			Field:   "log.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: dev, prod", c.Log.Mode),
		})
	}

	if c.Watch.DebounceMS < 50 || c.Watch.DebounceMS > 60000 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce_ms",
			Message: fmt.Sprintf("must be between 50 and 60000, got %d", c.Watch.DebounceMS),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have a sensible default.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = d.Export.OutputDir
	}
	if c.Export.Lang == "" {
		c.Export.Lang = d.Export.Lang
	}
	if c.Branding.AppName == "" {
		c.Branding.AppName = d.Branding.AppName
	}
	c.Labels = c.Labels.WithDefaults()
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Mode == "" {
		c.Log.Mode = d.Log.Mode
	}
	if c.Library.DBPath == "" {
		if p, err := DefaultDBPath(); err == nil {
			c.Library.DBPath = p
		}
	}
	if c.Watch.DebounceMS == 0 {
		c.Watch.DebounceMS = d.Watch.DebounceMS
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
// Supported variables:
//   - CURRICULUMLAB_OUTPUT_DIR: overrides export.output_dir
//   - CURRICULUMLAB_OPEN_AFTER_EXPORT: overrides export.open_after_export
//   - CURRICULUMLAB_LOG_LEVEL: overrides log.level
//   - CURRICULUMLAB_LOG_MODE: overrides log.mode
//   - CURRICULUMLAB_DB_PATH: overrides library.db_path
//   - CURRICULUMLAB_ATTRIBUTION: overrides branding.attribution
//   - CURRICULUMLAB_CREDITS: overrides branding.credits
//   - CURRICULUMLAB_AUTHOR: overrides branding.author
func (c *Config) ApplyEnvOverrides() {
	str := func(name string, dst *string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	str("OUTPUT_DIR", &c.Export.OutputDir)
	if v := os.Getenv(EnvPrefix + "OPEN_AFTER_EXPORT"); v != "" {
		c.Export.OpenAfterExport = parseBool(v)
	}
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_MODE", &c.Log.Mode)
	str("DB_PATH", &c.Library.DBPath)
	str("ATTRIBUTION", &c.Branding.Attribution)
	str("CREDITS", &c.Branding.Credits)
	str("AUTHOR", &c.Branding.Author)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "export.output_dir").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "log.level").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns the scalar configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if name == "" || name == "-" {
				continue
			}
			if prefix != "" {
				name = prefix + "." + name
			}
			if f.Type.Kind() == reflect.Struct {
				walk(name, f.Type)
				continue
			}
			keys = append(keys, name)
		}
	}
	walk("", reflect.TypeOf(Config{}))
	return keys
}

// Clone creates a copy of the configuration. Config holds no maps or
// slices, so a value copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}
