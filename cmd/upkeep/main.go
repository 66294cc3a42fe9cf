package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/zpdzap/upkeep/internal/config"
	"github.com/zpdzap/upkeep/internal/executor"
	"github.com/zpdzap/upkeep/internal/logging"
	"github.com/zpdzap/upkeep/internal/terminal"
	"github.com/zpdzap/upkeep/internal/tui"
	"github.com/zpdzap/upkeep/internal/vagrant"
)

// flags holds command line overrides for the config file.
type flags struct {
	configPath  string
	directories []string
	yes         bool
	dryRun      bool
	powerOn     bool
	keepGoing   bool
	logLevel    string
	logFormat   string
}

func main() {
	var level slog.LevelVar
	logger := logging.New(logging.FormatText, os.Stderr, &level)
	slog.SetDefault(logger)

	root := newRootCommand(&level)
	if err := root.Execute(); err != nil {
		slog.Default().Error("upkeep failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand(level *slog.LevelVar) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "upkeep",
		Short:         "Run topgrade inside every Vagrant box, restoring power states afterwards",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpkeep(cmd, f)
		},
	}

	root.PersistentFlags().StringVar(&f.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/upkeep/config.yaml)")
	root.PersistentFlags().StringSliceVarP(&f.directories, "directory", "d", nil, "Vagrant directory to process (repeatable, replaces the configured list)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "warning", "Log verbosity (debug, info, warning, error)")
	root.PersistentFlags().StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := logging.ParseLevel(f.logLevel)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(f.logFormat)
		if err != nil {
			return err
		}
		level.Set(lvl)
		slog.SetDefault(logging.New(format, os.Stderr, level))
		return nil
	}

	addRunFlags(root, f)

	run := &cobra.Command{
		Use:   "run",
		Short: "Run topgrade in every configured box (the default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpkeep(cmd, f)
		},
	}
	addRunFlags(run, f)

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive list of boxes; run upkeep on one at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := loadOptions(cmd, f)
			if err != nil {
				return err
			}
			v, err := newVagrant(cfg)
			if err != nil {
				return err
			}
			return tui.Run(v, opts)
		},
	}
	addRunFlags(dashboard, f)

	root.AddCommand(run, dashboard, statusCmd(f), initCmd(f))
	return root
}

func addRunFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Run topgrade non-interactively (topgrade -y)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print power and ssh commands instead of running them")
	cmd.Flags().BoolVar(&f.powerOn, "power-on", true, "Bring up boxes that are not running (false skips them)")
	cmd.Flags().BoolVar(&f.keepGoing, "keep-going", false, "Continue with the next box when one fails")
}

func statusCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List every configured box and its power state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := loadOptions(cmd, f)
			if err != nil {
				return err
			}
			v, err := newVagrant(cfg)
			if err != nil {
				return err
			}

			printer := terminal.NewPrinter(os.Stdout)
			for _, dir := range opts.Directories {
				boxes, err := v.Boxes(dir)
				if err != nil {
					return err
				}
				rows := make([]terminal.Row, 0, len(boxes))
				for _, b := range boxes {
					rows = append(rows, terminal.Row{Name: b.Box.Name, State: b.State.String()})
				}
				printer.Table(dir, rows)
			}
			return nil
		},
	}
}

func initCmd(f *flags) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "init [root]",
		Short: "Find Vagrant directories below root and write the config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				root = args[0]
			}

			path, err := configPath(f)
			if err != nil {
				return err
			}
			if config.Exists(path) {
				fmt.Printf("Config already exists at %s.\n", path)
				return nil
			}

			dirs, err := config.Discover(root, depth)
			if err != nil {
				return err
			}
			if len(dirs) == 0 {
				return fmt.Errorf("no Vagrantfile found below %s", root)
			}

			cfg := &config.Config{
				Version: config.Version,
				Vagrant: config.Vagrant{Directories: dirs},
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			fmt.Printf("Wrote %s with %d Vagrant directories:\n", path, len(dirs))
			for _, d := range dirs {
				fmt.Printf("  %s\n", d)
			}
			fmt.Println("\nRun `upkeep` to upgrade every box.")
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 3, "How many directory levels to search")
	return cmd
}

func runUpkeep(cmd *cobra.Command, f *flags) error {
	cfg, opts, err := loadOptions(cmd, f)
	if err != nil {
		return err
	}
	v, err := newVagrant(cfg)
	if err != nil {
		return err
	}
	return v.Upkeep(opts)
}

func configPath(f *flags) (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return config.DefaultPath()
}

// loadOptions reads the config file and applies flags the user set explicitly.
func loadOptions(cmd *cobra.Command, f *flags) (*config.Config, vagrant.Options, error) {
	path, err := configPath(f)
	if err != nil {
		return nil, vagrant.Options{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, vagrant.Options{}, err
	}

	if len(f.directories) > 0 {
		cfg.Vagrant.Directories = f.directories
	}
	if cmd.Flags().Changed("yes") {
		cfg.Yes = f.yes
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if cmd.Flags().Changed("power-on") {
		cfg.Vagrant.PowerOn = &f.powerOn
	}
	if cmd.Flags().Changed("keep-going") {
		cfg.Vagrant.KeepGoing = f.keepGoing
	}

	dirs, err := cfg.Vagrant.RequireDirectories()
	if err != nil {
		return nil, vagrant.Options{}, fmt.Errorf("%w (set vagrant.directories in %s or pass --directory)", err, path)
	}

	return cfg, vagrant.Options{
		Directories: dirs,
		PowerOn:     cfg.Vagrant.ShouldPowerOn(),
		Yes:         cfg.Yes,
		KeepGoing:   cfg.Vagrant.KeepGoing,
	}, nil
}

// newVagrant resolves the vagrant binary and wires the runner, printer and logger.
func newVagrant(cfg *config.Config) (*vagrant.Vagrant, error) {
	binary, err := executor.Require(cfg.Vagrant.BinaryName())
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	return vagrant.New(binary, executor.New(cfg.DryRun, logger), terminal.NewPrinter(os.Stdout), logger), nil
}
