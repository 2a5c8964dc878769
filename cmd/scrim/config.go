package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/scrim/config"
)

var configShowOpts struct {
	format string
}

var configInitOpts struct {
	force bool
}

// configCmd represents the config command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration",
	Long: `Inspect and manage the scrim configuration file.

The effective configuration is the on-disk file overlaid on built-in
defaults; missing keys fall through to the defaults.

Use 'scrim config show' to print the effective configuration.
Use 'scrim config init' to write a default config file.
Use 'scrim config path' to print the config file location.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to showing the effective config
		return runConfigShow(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration after merging the config file with
built-in defaults.

Examples:
  # Print as TOML (the on-disk format)
  scrim config show

  # Print as YAML
  scrim config show --format yaml`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a config file populated with default values.

The file is written to the path given by --config, or to the default
location when none is set. An existing file is not overwritten unless
--force is given.`,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Long:  `Print the path of the config file scrim reads on startup.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configShowCmd.Flags().StringVarP(&configShowOpts.format, "format", "f", "toml",
		"Output format (toml, yaml)")
	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing config file")

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)

	switch configShowOpts.format {
	case "toml":
		data, err = toml.Marshal(cfg)
	case "yaml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unknown format: %s (valid: toml, yaml)", configShowOpts.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Print(string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configInitOpts.force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := config.DefaultFile().Save(path); err != nil {
		return err
	}

	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// resolveConfigPath returns the --config override or the default path.
func resolveConfigPath() (string, error) {
	if globalOpts.configPath != "" {
		return globalOpts.configPath, nil
	}

	path, err := config.ConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return path, nil
}
