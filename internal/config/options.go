package config

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwestphal/autocommit/internal/constants"
	acErrors "github.com/bwestphal/autocommit/internal/errors"
)

// Options holds the process-level settings for a hook invocation: where the
// repository and state files live and how the logger behaves. The policy
// knobs (thresholds, push rules) live in the file-backed Config document.
type Options struct {
	// Repository configuration
	RepoPath    string
	ConfigPath  string
	AuditLog    string
	TaskHistory string

	// User experience
	Verbose bool

	// Debugging
	Debug   bool
	LogFile string

	// Special flags
	Version bool

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewOptions creates Options with default values
func NewOptions() *Options {
	return &Options{
		Verbose: false,
		Debug:   false,

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// LoadFromEnvironment updates options from environment variables
func (o *Options) LoadFromEnvironment() {
	o.RepoPath = getEnvString("AUTOCOMMIT_REPO_PATH", o.RepoPath)
	o.ConfigPath = getEnvString("AUTOCOMMIT_CONFIG", o.ConfigPath)
	o.AuditLog = getEnvString("AUTOCOMMIT_AUDIT_LOG", o.AuditLog)
	o.TaskHistory = getEnvString("AUTOCOMMIT_TASK_HISTORY", o.TaskHistory)
	o.Verbose = getEnvBool("AUTOCOMMIT_VERBOSE", o.Verbose)
	o.Debug = getEnvBool("AUTOCOMMIT_DEBUG", o.Debug)
	o.LogFile = getEnvString("AUTOCOMMIT_LOG_FILE", o.LogFile)
}

// SetupFlags sets up command-line flags to override option values
func (o *Options) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.RepoPath, "repo", o.RepoPath, "Path to repository (default: current directory)")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "Path to settings file (default: <repo>/.autocommit/config.json)")
	fs.StringVar(&o.AuditLog, "audit-log", o.AuditLog, "Path to audit log (default: <repo>/.autocommit/audit.jsonl)")
	fs.StringVar(&o.TaskHistory, "task-history", o.TaskHistory, "Path to task history log (default: <repo>/.autocommit/task-history.jsonl)")
	fs.BoolVar(&o.Verbose, "verbose", o.Verbose, "Show warnings on stderr")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "Enable debug logging")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "Path to log file (default: ~/.local/share/autocommit/logs/autocommit-{repo-hash}.log)")
	fs.BoolVar(&o.Version, "version", o.Version, "Print version information and exit")
}

// ParseFlags parses the command-line arguments and updates the options
func (o *Options) ParseFlags() error {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	o.SetupFlags(fs)

	var appArgs []string
	if len(os.Args) > 1 {
		appArgs = os.Args[1:]
	}

	if err := fs.Parse(appArgs); err != nil {
		return acErrors.NewConfigError("flags", nil,
			acErrors.Wrap(acErrors.ErrInvalidConfiguration,
				fmt.Sprintf("failed to parse command-line arguments: %v", err)))
	}

	return nil
}

// Finalize validates the options and fills in the derived defaults
func (o *Options) Finalize() error {
	if o.RepoPath == "" {
		var err error
		o.RepoPath, err = os.Getwd()
		if err != nil {
			return acErrors.NewConfigError("repoPath", "",
				acErrors.Wrap(acErrors.ErrInvalidConfiguration,
					fmt.Sprintf("failed to get current directory: %v", err)))
		}
	}

	absRepoPath, err := filepath.Abs(o.RepoPath)
	if err != nil {
		return acErrors.NewConfigError("repoPath", o.RepoPath,
			acErrors.Wrap(acErrors.ErrInvalidConfiguration,
				fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	o.RepoPath = absRepoPath

	stateDir := filepath.Join(o.RepoPath, constants.StateDirName)
	if o.ConfigPath == "" {
		o.ConfigPath = filepath.Join(stateDir, constants.ConfigFileName)
	}
	if o.AuditLog == "" {
		o.AuditLog = filepath.Join(stateDir, constants.AuditLogFileName)
	}
	if o.TaskHistory == "" {
		o.TaskHistory = filepath.Join(stateDir, constants.TaskHistoryFileName)
	}

	if o.LogFile == "" {
		// Follow XDG Base Directory Specification
		logDir := os.Getenv("XDG_DATA_HOME")
		if logDir == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				logDir = filepath.Join(homeDir, ".local", "share")
			} else {
				// Fallback to the temp directory if home dir can't be determined
				logDir = os.TempDir()
			}
		}

		repoHash := fmt.Sprintf("%x", sha256OfString(o.RepoPath)[:8])
		o.LogFile = filepath.Join(logDir, "autocommit", "logs",
			fmt.Sprintf("autocommit-%s.log", repoHash))
	}

	return nil
}

// getEnvString returns an environment variable string or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvBool returns an environment variable as bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		valueLower := strings.ToLower(valueStr)
		if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
			return true
		}
		if valueLower == "false" || valueLower == "0" || valueLower == "no" {
			return false
		}
		// For any other value, fall back to default
	}
	return defaultValue
}

// sha256OfString returns the SHA256 hash of a string
func sha256OfString(input string) []byte {
	hash := sha256.Sum256([]byte(input))
	return hash[:]
}
