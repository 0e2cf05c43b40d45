package config

import (
	"time"

	"github.com/aryankumar/convoy/internal/runner"
)

// ConvoyConfig represents the convoy configuration file structure
type ConvoyConfig struct {
	// Defaults contains default settings for runs
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Parallel is the number of jobs to keep in flight
	Parallel int `yaml:"parallel,omitempty" json:"parallel,omitempty"`

	// OnError is the failure policy (abort, drain, continue)
	OnError string `yaml:"onError,omitempty" json:"onError,omitempty"`

	// Timeout is the per-job timeout
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`
}

// Jobfile represents a batch of jobs loaded from a YAML file
type Jobfile struct {
	// Jobs is the ordered list of jobs to run
	Jobs []runner.Job `yaml:"jobs" json:"jobs"`
}
