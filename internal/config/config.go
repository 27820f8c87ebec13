package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration. The planner thresholds are
// empirically chosen defaults; overriding them is possible but they
// are not tunable at runtime once the process is up.
type Config struct {
	// AmbiguityWindow is the confidence gap under which the top two
	// skill candidates are treated as ambiguous.
	AmbiguityWindow float64 `json:"ambiguity_window,omitempty"`

	// CandidateFloor drops skill matches below this confidence.
	CandidateFloor float64 `json:"candidate_floor,omitempty"`

	// LowAutoExecute / LowConfirm gate low-risk plans (navigation,
	// queries).
	LowAutoExecute float64 `json:"low_auto_execute,omitempty"`
	LowConfirm     float64 `json:"low_confirm,omitempty"`

	// MediumAutoExecute / MediumConfirm gate medium-risk plans
	// (creates, edits, ratings).
	MediumAutoExecute float64 `json:"medium_auto_execute,omitempty"`
	MediumConfirm     float64 `json:"medium_confirm,omitempty"`

	// UndoWindowMs is the undo window attached to undoable mutations.
	UndoWindowMs int64 `json:"undo_window_ms,omitempty"`

	// DisabledSkills is a list of skill IDs to exclude from the
	// registry. Unknown IDs are logged as warnings.
	DisabledSkills []string `json:"disabled_skills,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database
	// connections. If set to 1, all database access is serialized.
	// 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database
	// connections. 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AmbiguityWindow:   0.15,
		CandidateFloor:    0.2,
		LowAutoExecute:    0.80,
		LowConfirm:        0.55,
		MediumAutoExecute: 0.90,
		MediumConfirm:     0.70,
		UndoWindowMs:      8000,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of
// ~/.voxplan.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take
// precedence for scalars when non-zero; arrays are merged and
// deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	mergeFloat := func(b, o float64) float64 {
		if o != 0 {
			return o
		}
		return b
	}
	result.AmbiguityWindow = mergeFloat(base.AmbiguityWindow, overlay.AmbiguityWindow)
	result.CandidateFloor = mergeFloat(base.CandidateFloor, overlay.CandidateFloor)
	result.LowAutoExecute = mergeFloat(base.LowAutoExecute, overlay.LowAutoExecute)
	result.LowConfirm = mergeFloat(base.LowConfirm, overlay.LowConfirm)
	result.MediumAutoExecute = mergeFloat(base.MediumAutoExecute, overlay.MediumAutoExecute)
	result.MediumConfirm = mergeFloat(base.MediumConfirm, overlay.MediumConfirm)

	result.UndoWindowMs = overlay.UndoWindowMs
	if result.UndoWindowMs == 0 {
		result.UndoWindowMs = base.UndoWindowMs
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}
	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledSkills = mergeStringSlice(base.DisabledSkills, overlay.DisabledSkills)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
