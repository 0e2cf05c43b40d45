package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd == nil {
		t.Fatal("expected root command, got nil")
	}

	if cmd.Use != "convoy" {
		t.Errorf("expected use 'convoy', got %q", cmd.Use)
	}

	// Verify subcommands are registered
	expectedCommands := []string{
		"version",
		"completion",
		"run",
	}

	for _, cmdName := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == cmdName {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", cmdName)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--help"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	help := output.String()

	expectedStrings := []string{
		"Convoy",
		"failure policy",
		"version",
		"completion",
		"run",
	}

	for _, want := range expectedStrings {
		if !strings.Contains(help, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	expectedFlags := []string{
		"config",
		"output",
		"verbose",
		"no-color",
		"timeout",
		"parallel",
		"on-error",
	}

	for _, flagName := range expectedFlags {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected persistent flag %q to be defined", flagName)
		}
	}

	if got := cmd.PersistentFlags().Lookup("on-error").DefValue; got != "drain" {
		t.Errorf("expected default policy 'drain', got %q", got)
	}
	if got := cmd.PersistentFlags().Lookup("parallel").DefValue; got != "4" {
		t.Errorf("expected default parallel '4', got %q", got)
	}
}

func executeWithConfig(t *testing.T, configContent string, extraArgs ...string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Cleanup(func() { cfgFile = "" })

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd := newRootCmd()
	args := append([]string{"--config", path}, extraArgs...)
	args = append(args, "version")
	cmd.SetArgs(args)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInitConfig_FileDefaults(t *testing.T) {
	// Settings written in the config file's defaults schema must reach
	// the run settings when the matching flags are left unset.
	executeWithConfig(t, `
defaults:
  parallel: 9
  onError: continue
  timeout: 42s
  outputFormat: yaml
`)

	if got := viper.GetInt("parallel"); got != 9 {
		t.Errorf("expected parallel 9 from config file, got %d", got)
	}
	if got := viper.GetString("on-error"); got != "continue" {
		t.Errorf("expected policy 'continue' from config file, got %q", got)
	}
	if got := viper.GetDuration("timeout").String(); got != "42s" {
		t.Errorf("expected timeout 42s from config file, got %s", got)
	}
	if got := viper.GetString("output"); got != "yaml" {
		t.Errorf("expected output 'yaml' from config file, got %q", got)
	}
}

func TestInitConfig_FlagsOverrideFile(t *testing.T) {
	executeWithConfig(t, `
defaults:
  parallel: 9
  onError: continue
`, "-p", "2", "--on-error", "abort")

	if got := viper.GetInt("parallel"); got != 2 {
		t.Errorf("expected flag to override config file, got parallel %d", got)
	}
	if got := viper.GetString("on-error"); got != "abort" {
		t.Errorf("expected flag to override config file, got policy %q", got)
	}
}

func TestInitConfig_MissingFileUsesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Cleanup(func() { cfgFile = "" })

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "version"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := viper.GetInt("parallel"); got != 4 {
		t.Errorf("expected built-in default parallel 4, got %d", got)
	}
	if got := viper.GetString("on-error"); got != "drain" {
		t.Errorf("expected built-in default policy 'drain', got %q", got)
	}
}

func TestInitConfig_InvalidFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Cleanup(func() { cfgFile = "" })

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  onError: retry\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", path, "version"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an invalid config file")
	}
}
