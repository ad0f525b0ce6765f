package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectFileName is the per-repository project file, expected at the
// repository root. The root is an injected path; sredlog never walks parent
// directories looking for it.
const projectFileName = ".sred.toml"

// defaultProjectName appears on reports when no project file exists.
const defaultProjectName = "Unknown Project"

// ProjectConfig holds per-repository settings.
type ProjectConfig struct {
	// ProjectName appears on generated reports.
	ProjectName string `toml:"project_name"`

	// ExperimentPrefix is the reference scheme used in start commits:
	// "EXP" matches EXP-001, "WID" matches WID-001, and so on.
	ExperimentPrefix string `toml:"experiment_prefix"`

	// Tags extends the tag vocabulary with per-project prefixes, mapping
	// each prefix to its role (start, intermediate or end):
	//
	//	[tags]
	//	"probe:" = "intermediate"
	Tags map[string]string `toml:"tags"`
}

// LoadProject reads .sred.toml from the repository root. A missing file is
// not an error; defaults apply.
func LoadProject(repoPath string) (*ProjectConfig, error) {
	cfg := &ProjectConfig{
		ProjectName:      defaultProjectName,
		ExperimentPrefix: "EXP",
	}

	path := filepath.Join(repoPath, projectFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.ProjectName == "" {
		cfg.ProjectName = defaultProjectName
	}

	return cfg, nil
}
