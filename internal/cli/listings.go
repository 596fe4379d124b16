package cli

import (
	"os"
	"strings"

	"github.com/ptlint/ptlint/internal/config"
	"github.com/ptlint/ptlint/internal/index"
	"github.com/ptlint/ptlint/internal/models"
	"github.com/ptlint/ptlint/internal/ports"
	"github.com/ptlint/ptlint/internal/report"
	"github.com/spf13/cobra"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show categories with ports counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd)
			if err != nil {
				return err
			}
			return report.WriteCategories(os.Stdout, store)
		},
	}
	addListingFlags(cmd)
	return cmd
}

// NewMaintainersCmd creates the maintainers command
func NewMaintainersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintainers",
		Short: "Show maintainers with ports counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(cmd)
			if err != nil {
				return err
			}
			return report.WriteMaintainers(os.Stdout, store)
		},
	}
	addListingFlags(cmd)
	return cmd
}

func addListingFlags(cmd *cobra.Command) {
	cmd.Flags().String("ports-dir", "", "Ports tree root")
	cmd.Flags().String("index", "", "Index file (default: highest INDEX-N under the ports dir)")
	cmd.Flags().StringP("cat", "c", "", "Select only the comma-separated categories")
	cmd.Flags().StringP("mnt", "m", "", "Select only the comma-separated maintainers")
	cmd.Flags().StringP("port", "p", "", "Select only the comma-separated ports")
}

func loadStore(cmd *cobra.Command) (*ports.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("ports-dir") {
		cfg.PortsDir, _ = flags.GetString("ports-dir")
	}
	if flags.Changed("index") {
		cfg.IndexFile, _ = flags.GetString("index")
	}
	if flags.Changed("cat") {
		value, _ := flags.GetString("cat")
		cfg.Categories = strings.Split(strings.ToLower(value), ",")
	}
	if flags.Changed("mnt") {
		value, _ := flags.GetString("mnt")
		cfg.Maintainers = strings.Split(strings.ToLower(value), ",")
	}
	if flags.Changed("port") {
		value, _ := flags.GetString("port")
		cfg.Ports = strings.Split(value, ",")
	}

	indexFile := cfg.IndexFile
	if indexFile == "" {
		located, err := index.Locate(cfg.PortsDir)
		if err != nil {
			return nil, &models.LintError{Type: models.ErrIndexLoad, Err: err}
		}
		indexFile = located
	}

	store, _, err := index.Parse(indexFile)
	if err != nil {
		return nil, err
	}
	store.Select(cfg.Categories, cfg.Maintainers, cfg.Ports)
	return store, nil
}

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				var err error
				path, err = config.Path()
				if err != nil {
					return &models.LintError{Type: models.ErrInvalidConfig, Err: err}
				}
			}
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				if _, err := os.Stat(path); err == nil {
					return &models.LintError{
						Type: models.ErrInvalidConfig,
						Err:  os.ErrExist,
					}
				}
			}
			if err := config.WriteDefault(path); err != nil {
				return &models.LintError{Type: models.ErrInvalidConfig, Err: err}
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	cmd.AddCommand(initCmd)

	return cmd
}
