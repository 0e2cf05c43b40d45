package config

import (
	"fmt"
	"os"

	"github.com/aryankumar/convoy/internal/util"
	"gopkg.in/yaml.v3"
)

// LoadJobfile reads and validates a batch of jobs from a YAML file.
func LoadJobfile(path string) (*Jobfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", util.ErrJobfileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read jobfile: %w", err)
	}

	return ParseJobfile(data)
}

// ParseJobfile parses and validates jobfile YAML.
func ParseJobfile(data []byte) (*Jobfile, error) {
	var jf Jobfile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("failed to parse jobfile: %w", err)
	}

	if err := jf.Validate(); err != nil {
		return nil, err
	}

	return &jf, nil
}

// Validate checks the jobfile for missing or conflicting job definitions.
func (jf *Jobfile) Validate() error {
	if len(jf.Jobs) == 0 {
		return fmt.Errorf("%w: jobfile must define at least one job", util.ErrNoJobs)
	}

	seen := make(map[string]bool, len(jf.Jobs))
	for i, job := range jf.Jobs {
		if job.Name == "" {
			return fmt.Errorf("%w: %v", util.ErrInvalidConfig,
				util.NewValidationError(fmt.Sprintf("jobs[%d].name", i), nil, "must not be empty"))
		}
		if job.Command == "" {
			return fmt.Errorf("%w: %v", util.ErrInvalidConfig,
				util.NewValidationError(fmt.Sprintf("jobs[%d].command", i), nil, "must not be empty"))
		}
		if seen[job.Name] {
			return fmt.Errorf("%w: %q", util.ErrDuplicateJob, job.Name)
		}
		seen[job.Name] = true
	}

	return nil
}
