package config

import (
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOptionsDefaults(t *testing.T) {
	opts := NewOptions()

	if opts.Verbose {
		t.Error("Expected Verbose to be false by default")
	}
	if opts.Debug {
		t.Error("Expected Debug to be false by default")
	}
	if opts.VersionInfo.Version != "dev" {
		t.Errorf("Expected default version 'dev', got %q", opts.VersionInfo.Version)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AUTOCOMMIT_REPO_PATH", "/tmp/some-repo")
	t.Setenv("AUTOCOMMIT_VERBOSE", "true")
	t.Setenv("AUTOCOMMIT_DEBUG", "1")

	opts := NewOptions()
	opts.LoadFromEnvironment()

	if opts.RepoPath != "/tmp/some-repo" {
		t.Errorf("Expected repo path from environment, got %q", opts.RepoPath)
	}
	if !opts.Verbose {
		t.Error("Expected Verbose to be enabled from environment")
	}
	if !opts.Debug {
		t.Error("Expected Debug to be enabled from environment")
	}
}

func TestLoadFromEnvironmentIgnoresInvalidBool(t *testing.T) {
	t.Setenv("AUTOCOMMIT_VERBOSE", "sometimes")

	opts := NewOptions()
	opts.LoadFromEnvironment()

	if opts.Verbose {
		t.Error("Expected invalid boolean value to fall back to default")
	}
}

func TestSetupFlags(t *testing.T) {
	opts := NewOptions()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts.SetupFlags(fs)

	err := fs.Parse([]string{"-repo", "/tmp/flag-repo", "-verbose", "-audit-log", "/tmp/audit.jsonl"})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if opts.RepoPath != "/tmp/flag-repo" {
		t.Errorf("Expected repo path from flag, got %q", opts.RepoPath)
	}
	if !opts.Verbose {
		t.Error("Expected Verbose to be set by flag")
	}
	if opts.AuditLog != "/tmp/audit.jsonl" {
		t.Errorf("Expected audit log path from flag, got %q", opts.AuditLog)
	}
}

func TestFinalizeDerivesStatePaths(t *testing.T) {
	repo := t.TempDir()

	opts := NewOptions()
	opts.RepoPath = repo

	if err := opts.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	stateDir := filepath.Join(repo, ".autocommit")
	if opts.ConfigPath != filepath.Join(stateDir, "config.json") {
		t.Errorf("Unexpected config path: %q", opts.ConfigPath)
	}
	if opts.AuditLog != filepath.Join(stateDir, "audit.jsonl") {
		t.Errorf("Unexpected audit log path: %q", opts.AuditLog)
	}
	if opts.TaskHistory != filepath.Join(stateDir, "task-history.jsonl") {
		t.Errorf("Unexpected task history path: %q", opts.TaskHistory)
	}
	if opts.LogFile == "" {
		t.Error("Expected a derived log file path")
	}
}

func TestFinalizeRespectsExplicitPaths(t *testing.T) {
	repo := t.TempDir()

	opts := NewOptions()
	opts.RepoPath = repo
	opts.ConfigPath = "/tmp/custom-config.json"
	opts.LogFile = "/tmp/custom.log"

	if err := opts.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if opts.ConfigPath != "/tmp/custom-config.json" {
		t.Errorf("Expected explicit config path to be preserved, got %q", opts.ConfigPath)
	}
	if opts.LogFile != "/tmp/custom.log" {
		t.Errorf("Expected explicit log file to be preserved, got %q", opts.LogFile)
	}
}

func TestFinalizeUsesXDGDataHome(t *testing.T) {
	repo := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	opts := NewOptions()
	opts.RepoPath = repo

	if err := opts.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if !strings.HasPrefix(opts.LogFile, dataHome) {
		t.Errorf("Expected log file under XDG_DATA_HOME, got %q", opts.LogFile)
	}
}
