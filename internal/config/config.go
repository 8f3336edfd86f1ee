// Package config composes the schema validator of internal/config/schema
// and the file watcher of internal/config/watcher into the editor-level
// settings surface spec §2/§9 requires: segmented sequence chunk size,
// view scroll margins, control/tab cell widths, the theme file path,
// and syntax-type registrations (tokenizer/codec bindings, looked up by
// file extension).
//
// Grounded on the teacher's internal/config/schema (validator/builder)
// and internal/config/watcher (fsnotify-driven reload), collapsed into
// a single settings object sized to this module's actual configuration
// surface rather than the teacher's editor+LSP+plugin+git stack (see
// DESIGN.md's dropped-modules note).
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/keystorm/keystorm/internal/config/schema"
	"github.com/keystorm/keystorm/internal/config/watcher"
	"github.com/keystorm/keystorm/internal/coreerr"
)

// SyntaxRegistration binds a file extension (without the leading dot)
// to the syntax type name a session looks up in its type registry when
// opening a Resource.
type SyntaxRegistration struct {
	Extension string `json:"extension"`
	Type      string `json:"type"`
}

// Config is the editor-level settings surface.
type Config struct {
	ChunkSize        int                   `json:"chunk_size"`
	VerticalMargin   int                   `json:"vertical_margin"`
	HorizontalMargin int                   `json:"horizontal_margin"`
	TabSize          int                   `json:"tab_size"`
	CtlSize          int                   `json:"ctl_size"`
	ThemePath        string                `json:"theme_path"`
	SnapshotPath     string                `json:"snapshot_path"`
	Syntax           []SyntaxRegistration  `json:"syntax"`
}

// Default returns the built-in Config used when no file is supplied or
// the supplied path cannot be read, matching spec §7's
// configuration-failure policy of falling back to defaults.
func Default() Config {
	return Config{
		ChunkSize:        64,
		VerticalMargin:   4,
		HorizontalMargin: 8,
		TabSize:          8,
		CtlSize:          2,
		ThemePath:        "",
		SnapshotPath:     "",
	}
}

var editorSchema = schema.Object().
	Title("keystorm editor configuration").
	Property("chunk_size", schema.IntRange(8, 4096).Default(64).Build()).
	Property("vertical_margin", schema.IntRange(0, 64).Default(4).Build()).
	Property("horizontal_margin", schema.IntRange(0, 64).Default(8).Build()).
	Property("tab_size", schema.IntRange(1, 16).Default(8).Build()).
	Property("ctl_size", schema.IntRange(1, 4).Default(2).Build()).
	Property("theme_path", schema.String().Build()).
	Property("snapshot_path", schema.String().Build()).
	Property("syntax", schema.Array().Items(
		schema.Object().
			Property("extension", schema.String().Build()).
			Property("type", schema.String().Build()).
			Required("extension", "type").
			Build(),
	).Build()).
	AdditionalProperties(false).
	Build()

// Load reads and validates a JSON configuration file at path. A
// malformed file is a spec §7 configuration-failure: the caller is
// expected to fall back to Default() and log the error, which is why
// Load returns a *coreerr.Error rather than a bare error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, coreerr.ConfigurationFailure("config.Load", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, coreerr.ConfigurationFailure("config.Load", err)
	}

	v := schema.NewValidator(editorSchema).WithStrictMode(true)
	if err := v.Validate(raw); err != nil {
		return Config{}, coreerr.ConfigurationFailure("config.Load", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, coreerr.ConfigurationFailure("config.Load", err)
	}
	return cfg, nil
}

// TypeFor returns the registered syntax type name for extension
// (without a leading dot), or "" if nothing is registered.
func (c Config) TypeFor(extension string) string {
	for _, reg := range c.Syntax {
		if reg.Extension == extension {
			return reg.Type
		}
	}
	return ""
}

// Watch installs a file watcher on path that reloads and revalidates
// the configuration on change, invoking onReload with the new Config
// (or the error, on a configuration-failure) every time the file's
// mtime advances. The returned watcher.Watcher must be Start()ed and
// Stop()ed by the caller, matching internal/config/watcher's lifecycle.
func Watch(path string, onReload func(Config, error)) (*watcher.Watcher, error) {
	w := watcher.New(watcher.WithDebounce(0))
	if err := w.Watch(path); err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	w.OnChange(func(watcher.Event) {
		cfg, err := Load(path)
		onReload(cfg, err)
	})
	return w, nil
}
