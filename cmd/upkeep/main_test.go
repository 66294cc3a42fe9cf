package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zpdzap/upkeep/internal/config"
	"github.com/zpdzap/upkeep/internal/executor"
)

func commandWithFlags(t *testing.T, configPath string, args ...string) (*cobra.Command, *flags) {
	t.Helper()
	f := &flags{configPath: configPath}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringSliceVarP(&f.directories, "directory", "d", nil, "")
	addRunFlags(cmd, f)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return cmd, f
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOptionsFromFile(t *testing.T) {
	path := writeConfig(t, `
yes: true
vagrant:
  directories: [/vm/a, /vm/b]
  power_on: false
  keep_going: true
`)
	cmd, f := commandWithFlags(t, path)

	cfg, opts, err := loadOptions(cmd, f)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if !reflect.DeepEqual(opts.Directories, []string{"/vm/a", "/vm/b"}) {
		t.Errorf("Directories = %v", opts.Directories)
	}
	if opts.PowerOn || !opts.Yes || !opts.KeepGoing {
		t.Errorf("opts = %+v, want PowerOn=false Yes=true KeepGoing=true", opts)
	}
	if cfg.DryRun {
		t.Error("DryRun should default to false")
	}
}

func TestLoadOptionsFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
yes: true
vagrant:
  directories: [/vm/a]
  power_on: false
`)
	cmd, f := commandWithFlags(t, path,
		"-d", "/vm/x", "-d", "/vm/y", "--yes=false", "--power-on", "--dry-run")

	cfg, opts, err := loadOptions(cmd, f)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if !reflect.DeepEqual(opts.Directories, []string{"/vm/x", "/vm/y"}) {
		t.Errorf("Directories = %v", opts.Directories)
	}
	if !opts.PowerOn || opts.Yes {
		t.Errorf("opts = %+v, want PowerOn=true Yes=false", opts)
	}
	if !cfg.DryRun {
		t.Error("--dry-run not applied")
	}
}

func TestLoadOptionsUnsetFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, "vagrant:\n  directories: [/vm/a]\n  power_on: false\n")
	cmd, f := commandWithFlags(t, path)

	_, opts, err := loadOptions(cmd, f)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	// --power-on defaults to true but was not passed.
	if opts.PowerOn {
		t.Error("unset --power-on overrode the config file")
	}
}

func TestLoadOptionsRequiresDirectories(t *testing.T) {
	cmd, f := commandWithFlags(t, filepath.Join(t.TempDir(), "missing.yaml"))

	_, _, err := loadOptions(cmd, f)
	if !errors.Is(err, config.ErrNoDirectories) {
		t.Errorf("loadOptions err = %v, want ErrNoDirectories", err)
	}
}

func TestInitWritesDiscoveredDirectories(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "box"), 0o755)
	os.WriteFile(filepath.Join(root, "box", config.Vagrantfile), nil, 0o644)
	path := filepath.Join(t.TempDir(), "upkeep", "config.yaml")

	cmd := newRootCommand(&slog.LevelVar{})
	cmd.SetArgs([]string{"init", root, "--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Vagrant.Directories, []string{filepath.Join(root, "box")}) {
		t.Errorf("Directories = %v", cfg.Vagrant.Directories)
	}
}

func TestRunRequiresDirectoriesBeforeTool(t *testing.T) {
	path := writeConfig(t, "vagrant:\n  binary: definitely-not-a-real-vagrant\n")

	cmd := newRootCommand(&slog.LevelVar{})
	cmd.SetArgs([]string{"run", "--config", path})
	if err := cmd.Execute(); !errors.Is(err, config.ErrNoDirectories) {
		t.Errorf("run err = %v, want ErrNoDirectories", err)
	}
}

func TestRunRequiresVagrantBinary(t *testing.T) {
	path := writeConfig(t, "vagrant:\n  binary: definitely-not-a-real-vagrant\n  directories: [/vm/a]\n")

	cmd := newRootCommand(&slog.LevelVar{})
	cmd.SetArgs([]string{"--config", path})
	if err := cmd.Execute(); !errors.Is(err, executor.ErrToolNotFound) {
		t.Errorf("run err = %v, want ErrToolNotFound", err)
	}
}
