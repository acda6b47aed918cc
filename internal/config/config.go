package config

// Config is the settings document controlling the auto-commit pipeline.
// It is stored as pretty-printed JSON at a fixed path under the repository's
// .autocommit directory and is deliberately a closed, typed schema: the
// toggle/set operations in Store reject paths and types this struct does not
// declare instead of growing new branches at runtime.
type Config struct {
	// Enabled is the master kill-switch for the whole pipeline.
	Enabled bool `json:"enabled" yaml:"enabled"`

	AutoCommit    AutoCommitConfig    `json:"auto_commit" yaml:"auto_commit"`
	AutoPush      AutoPushConfig      `json:"auto_push" yaml:"auto_push"`
	CommitMessage CommitMessageConfig `json:"commit_message" yaml:"commit_message"`
	Notifications NotificationsConfig `json:"notifications" yaml:"notifications"`
}

// AutoCommitConfig controls when a commit is created.
type AutoCommitConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Threshold is the minimum number of changed files that triggers an
	// unconditional commit.
	Threshold int `json:"threshold" yaml:"threshold"`

	// ExcludePatterns are glob patterns matched against each status path
	// (and its basename); matching paths do not count toward the threshold.
	ExcludePatterns []string `json:"exclude_patterns" yaml:"exclude_patterns"`

	// CommitOnStop commits any pending changes when the session stops.
	CommitOnStop bool `json:"commit_on_stop" yaml:"commit_on_stop"`

	// CommitOnImportantTools commits after mutating tools (write/edit style)
	// even below the threshold.
	CommitOnImportantTools bool `json:"commit_on_important_tools" yaml:"commit_on_important_tools"`
}

// AutoPushConfig controls whether and where commits are pushed.
type AutoPushConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// BranchWhitelist limits pushing to the named branches. Empty means
	// any branch may be pushed.
	BranchWhitelist []string `json:"branch_whitelist" yaml:"branch_whitelist"`

	// RequireCleanWorkingTree skips the push when the working tree still
	// has changes after the commit.
	RequireCleanWorkingTree bool `json:"require_clean_working_tree" yaml:"require_clean_working_tree"`
}

// CommitMessageConfig controls commit message synthesis.
type CommitMessageConfig struct {
	IncludeTaskInfo     bool `json:"include_task_info" yaml:"include_task_info"`
	IncludeFileStats    bool `json:"include_file_stats" yaml:"include_file_stats"`
	ConventionalCommits bool `json:"conventional_commits" yaml:"conventional_commits"`

	// MaxLength truncates the subject line. Zero disables truncation.
	MaxLength int `json:"max_length" yaml:"max_length"`
}

// NotificationsConfig controls which user-facing messages the hook emits.
type NotificationsConfig struct {
	OnCommit bool `json:"on_commit" yaml:"on_commit"`
	OnPush   bool `json:"on_push" yaml:"on_push"`
	OnError  bool `json:"on_error" yaml:"on_error"`
}

// Default returns the settings document used when no config file exists or
// the existing one cannot be parsed.
func Default() *Config {
	return &Config{
		Enabled: true,
		AutoCommit: AutoCommitConfig{
			Enabled:                true,
			Threshold:              5,
			ExcludePatterns:        []string{"*.log", "*.tmp", ".env*"},
			CommitOnStop:           true,
			CommitOnImportantTools: true,
		},
		AutoPush: AutoPushConfig{
			Enabled:                 false,
			BranchWhitelist:         []string{},
			RequireCleanWorkingTree: true,
		},
		CommitMessage: CommitMessageConfig{
			IncludeTaskInfo:     true,
			IncludeFileStats:    true,
			ConventionalCommits: true,
			MaxLength:           72,
		},
		Notifications: NotificationsConfig{
			OnCommit: true,
			OnPush:   true,
			OnError:  true,
		},
	}
}
