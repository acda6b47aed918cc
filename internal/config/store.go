package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	acErrors "github.com/bwestphal/autocommit/internal/errors"
)

// Kind identifies the type a setting holds. Settings are a closed tagged
// union: boolean, integer, string, or list of strings.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
	KindStringList
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindString:
		return "string"
	case KindStringList:
		return "string list"
	}
	return "unknown"
}

// Value is a coerced settings value.
type Value struct {
	Kind Kind
	Bool bool
	Int  int
	Str  string
	List []string
}

// CoerceValue converts a raw string into a typed Value: all-digit strings
// become integers, "true"/"false" (case-insensitive) become booleans, and
// everything else stays a string. List coercion happens at assignment time
// when the target setting is list-valued.
func CoerceValue(raw string) Value {
	if raw != "" && isAllDigits(raw) {
		n, err := strconv.Atoi(raw)
		if err == nil {
			return Value{Kind: KindInt, Int: n}
		}
	}
	switch strings.ToLower(raw) {
	case "true":
		return Value{Kind: KindBool, Bool: true}
	case "false":
		return Value{Kind: KindBool, Bool: false}
	}
	return Value{Kind: KindString, Str: raw}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// fieldRef binds a dotted settings path to typed accessors on Config.
type fieldRef struct {
	kind Kind
	get  func(c *Config) Value
	set  func(c *Config, v Value)
}

// fields is the closed registry of addressable settings. Toggle and Set
// refuse any path not present here.
var fields = map[string]fieldRef{
	"enabled": boolField(
		func(c *Config) *bool { return &c.Enabled }),
	"auto_commit.enabled": boolField(
		func(c *Config) *bool { return &c.AutoCommit.Enabled }),
	"auto_commit.threshold": intField(
		func(c *Config) *int { return &c.AutoCommit.Threshold }),
	"auto_commit.exclude_patterns": listField(
		func(c *Config) *[]string { return &c.AutoCommit.ExcludePatterns }),
	"auto_commit.commit_on_stop": boolField(
		func(c *Config) *bool { return &c.AutoCommit.CommitOnStop }),
	"auto_commit.commit_on_important_tools": boolField(
		func(c *Config) *bool { return &c.AutoCommit.CommitOnImportantTools }),
	"auto_push.enabled": boolField(
		func(c *Config) *bool { return &c.AutoPush.Enabled }),
	"auto_push.branch_whitelist": listField(
		func(c *Config) *[]string { return &c.AutoPush.BranchWhitelist }),
	"auto_push.require_clean_working_tree": boolField(
		func(c *Config) *bool { return &c.AutoPush.RequireCleanWorkingTree }),
	"commit_message.include_task_info": boolField(
		func(c *Config) *bool { return &c.CommitMessage.IncludeTaskInfo }),
	"commit_message.include_file_stats": boolField(
		func(c *Config) *bool { return &c.CommitMessage.IncludeFileStats }),
	"commit_message.conventional_commits": boolField(
		func(c *Config) *bool { return &c.CommitMessage.ConventionalCommits }),
	"commit_message.max_length": intField(
		func(c *Config) *int { return &c.CommitMessage.MaxLength }),
	"notifications.on_commit": boolField(
		func(c *Config) *bool { return &c.Notifications.OnCommit }),
	"notifications.on_push": boolField(
		func(c *Config) *bool { return &c.Notifications.OnPush }),
	"notifications.on_error": boolField(
		func(c *Config) *bool { return &c.Notifications.OnError }),
}

func boolField(ptr func(c *Config) *bool) fieldRef {
	return fieldRef{
		kind: KindBool,
		get:  func(c *Config) Value { return Value{Kind: KindBool, Bool: *ptr(c)} },
		set:  func(c *Config, v Value) { *ptr(c) = v.Bool },
	}
}

func intField(ptr func(c *Config) *int) fieldRef {
	return fieldRef{
		kind: KindInt,
		get:  func(c *Config) Value { return Value{Kind: KindInt, Int: *ptr(c)} },
		set:  func(c *Config, v Value) { *ptr(c) = v.Int },
	}
}

func listField(ptr func(c *Config) *[]string) fieldRef {
	return fieldRef{
		kind: KindStringList,
		get:  func(c *Config) Value { return Value{Kind: KindStringList, List: *ptr(c)} },
		set:  func(c *Config, v Value) { *ptr(c) = v.List },
	}
}

// Paths returns every addressable settings path in sorted order.
func Paths() []string {
	paths := make([]string, 0, len(fields))
	for p := range fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Entry is a settings path and its display value, used by the config CLI
// formatters.
type Entry struct {
	Path  string
	Value string
}

// Entries returns the document as sorted path/value pairs.
func Entries(c *Config) []Entry {
	paths := Paths()
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, Entry{Path: p, Value: displayValue(fields[p].get(c))})
	}
	return entries
}

func displayValue(v Value) string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindStringList:
		return strings.Join(v.List, ", ")
	}
	return v.Str
}

// Store loads and persists the settings document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the given config file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings document. A missing file or parse failure never
// surfaces as an error: the defaults are written back to disk and returned,
// with fellBack=true so callers can log the degradation.
func (s *Store) Load() (cfg *Config, fellBack bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		cfg = Default()
		_ = s.Save(cfg)
		return cfg, true
	}

	cfg = Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		_ = s.Save(cfg)
		return cfg, true
	}
	return cfg, false
}

// Save serializes the document as pretty-printed JSON and overwrites the
// config file. Non-ASCII characters are preserved as-is.
func (s *Store) Save(cfg *Config) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return acErrors.NewConfigError("path", s.path,
				acErrors.Wrap(err, "failed to create config directory"))
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return acErrors.NewConfigError("config", nil,
			acErrors.Wrap(err, "failed to serialize settings"))
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return acErrors.NewConfigError("path", s.path,
			acErrors.Wrap(err, "failed to write config file"))
	}
	return nil
}

// Toggle flips the boolean setting at the dotted path and persists the
// document. It fails closed: unknown paths and non-boolean settings are
// rejected without modifying the file. Returns the new value.
func (s *Store) Toggle(path string) (bool, error) {
	ref, ok := fields[path]
	if !ok {
		return false, acErrors.NewConfigError(path, nil, acErrors.ErrPathNotFound)
	}
	if ref.kind != KindBool {
		return false, acErrors.NewConfigError(path, nil, acErrors.ErrNotBoolean)
	}

	cfg, _ := s.Load()
	next := !ref.get(cfg).Bool
	ref.set(cfg, Value{Kind: KindBool, Bool: next})

	if err := s.Save(cfg); err != nil {
		return false, err
	}
	return next, nil
}

// Set coerces raw to the type of the setting at the dotted path, assigns it,
// and persists the document. Unknown paths and type mismatches are rejected;
// no intermediate branches are ever created.
func (s *Store) Set(path, raw string) error {
	ref, ok := fields[path]
	if !ok {
		return acErrors.NewConfigError(path, raw, acErrors.ErrPathNotFound)
	}

	var v Value
	if ref.kind == KindStringList {
		v = Value{Kind: KindStringList, List: splitList(raw)}
	} else {
		v = CoerceValue(raw)
		if v.Kind != ref.kind {
			return acErrors.NewConfigError(path, raw,
				acErrors.Wrapf(acErrors.ErrTypeMismatch, "expected %s, got %s", ref.kind, v.Kind))
		}
	}

	cfg, _ := s.Load()
	ref.set(cfg, v)
	return s.Save(cfg)
}

// Reset rewrites the config file with the default document and returns it.
func (s *Store) Reset() (*Config, error) {
	cfg := Default()
	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList parses a comma-separated value into a trimmed string list.
// An empty raw value yields an empty list.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
