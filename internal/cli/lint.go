package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ptlint/ptlint/internal/advisory"
	"github.com/ptlint/ptlint/internal/config"
	"github.com/ptlint/ptlint/internal/index"
	"github.com/ptlint/ptlint/internal/models"
	"github.com/ptlint/ptlint/internal/ports"
	"github.com/ptlint/ptlint/internal/probe"
	"github.com/ptlint/ptlint/internal/recipe"
	"github.com/ptlint/ptlint/internal/report"
	"github.com/ptlint/ptlint/internal/rules"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const probeTimeout = 10 * time.Second

// NewLintCmd creates the lint command
func NewLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run the check battery over the ports tree",
		Long: `Loads the INDEX file, scans each selected port's Makefile, runs the
check battery and prints the findings per maintainer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyLintFlags(cmd, cfg)
			if err := validateLimits(cfg); err != nil {
				return err
			}
			return runLint(cmd, cfg)
		},
	}

	cmd.Flags().String("ports-dir", "", "Ports tree root")
	cmd.Flags().String("index", "", "Index file (default: highest INDEX-N under the ports dir)")
	cmd.Flags().StringP("cat", "c", "", "Select only the comma-separated categories")
	cmd.Flags().StringP("mnt", "m", "", "Select only the comma-separated maintainers")
	cmd.Flags().StringP("port", "p", "", "Select only the comma-separated ports")
	cmd.Flags().Int("comment-length", 0, "Set the comment length limit")
	cmd.Flags().Int("plist", 0, "Set PLIST_FILES abuse to NUM entries")
	cmd.Flags().Int("broken", 0, "Set BROKEN since to NUM days")
	cmd.Flags().Int("deprecated", 0, "Set DEPRECATED since to NUM days")
	cmd.Flags().Int("forbidden", 0, "Set FORBIDDEN since to NUM days")
	cmd.Flags().Int("unchanged", 0, "Set Unchanged since to NUM days")
	cmd.Flags().Bool("check-host", false, "Enable checking hostname resolution (long!)")
	cmd.Flags().BoolP("check-url", "u", false, "Enable checking URL reachability (very long!)")
	cmd.Flags().StringP("output", "o", "", "Enable per-maintainer CSV output to FILE")
	cmd.Flags().String("advisory-db", "", "SQLite advisory database for the vulnerability check")
	cmd.Flags().Int("workers", 0, "Bound extraction and check parallelism")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return nil, &models.LintError{Type: models.ErrInvalidConfig, Err: err}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &models.LintError{Type: models.ErrInvalidConfig, Err: err}
	}
	return cfg, nil
}

// applyLintFlags lets explicitly set flags win over the config file.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config) {
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
	if flags.Changed("comment-length") {
		cfg.CommentLength, _ = flags.GetInt("comment-length")
	}
	if flags.Changed("plist") {
		cfg.PlistAbuse, _ = flags.GetInt("plist")
	}
	if flags.Changed("broken") {
		cfg.BrokenDays, _ = flags.GetInt("broken")
	}
	if flags.Changed("deprecated") {
		cfg.DeprecatedDays, _ = flags.GetInt("deprecated")
	}
	if flags.Changed("forbidden") {
		cfg.ForbiddenDays, _ = flags.GetInt("forbidden")
	}
	if flags.Changed("unchanged") {
		cfg.UnchangedDays, _ = flags.GetInt("unchanged")
	}
	if flags.Changed("check-host") {
		cfg.CheckHost = true
	}
	if flags.Changed("check-url") {
		// URL checking needs hostname resolution first
		cfg.CheckHost = true
		cfg.CheckURL = true
	}
	if flags.Changed("output") {
		cfg.CSVFile, _ = flags.GetString("output")
	}
	if flags.Changed("advisory-db") {
		cfg.AdvisoryDB, _ = flags.GetString("advisory-db")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
}

func validateLimits(cfg *config.Config) error {
	invalid := func(format string, args ...interface{}) error {
		return &models.LintError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf(format, args...),
		}
	}
	if cfg.PlistAbuse < 3 {
		return invalid("the plist limit must be >= 3, got %d", cfg.PlistAbuse)
	}
	for name, days := range map[string]int{
		"broken":     cfg.BrokenDays,
		"deprecated": cfg.DeprecatedDays,
		"forbidden":  cfg.ForbiddenDays,
		"unchanged":  cfg.UnchangedDays,
	} {
		if days < 30 {
			return invalid("the %s limit must be >= 30 days, got %d", name, days)
		}
	}
	return nil
}

func runLint(cmd *cobra.Command, cfg *config.Config) error {
	indexFile := cfg.IndexFile
	if indexFile == "" {
		located, err := index.Locate(cfg.PortsDir)
		if err != nil {
			return &models.LintError{Type: models.ErrIndexLoad, Err: err}
		}
		indexFile = located
	}

	store, notes, err := index.Parse(indexFile)
	if err != nil {
		return err
	}
	total := store.Len()

	store.Select(cfg.Categories, cfg.Maintainers, cfg.Ports)
	selected := len(store.Selected())
	logrus.Infof("Selected %d ports", selected)

	ctx := cmd.Context()
	recipe.ExtractAll(ctx, store, cfg.Workers)

	ruleCtx := rules.NewContext(store)
	ruleCtx.Limits = rules.Limits{
		CommentLength:  cfg.CommentLength,
		PlistAbuse:     cfg.PlistAbuse,
		BrokenDays:     cfg.BrokenDays,
		DeprecatedDays: cfg.DeprecatedDays,
		ForbiddenDays:  cfg.ForbiddenDays,
		UnchangedDays:  cfg.UnchangedDays,
	}
	ruleCtx.ProbeSeverity = ports.ParseSeverity(cfg.ProbeSeverity)
	ruleCtx.ExcludedVulns = toSet(cfg.ExcludedVulns)
	ruleCtx.ExcludedLicensePorts = toSet(cfg.ExcludedLicenses)
	if !cfg.AllChecksEnabled() {
		enabled := make(map[string]bool, len(cfg.Checks))
		for name, on := range cfg.Checks {
			enabled[strings.ReplaceAll(name, "_", "-")] = on
		}
		ruleCtx.Enabled = enabled
	}

	if cfg.CheckHost {
		ruleCtx.CheckHost = true
		ruleCtx.Hosts = probe.NewHost(probeTimeout)
	}
	if cfg.CheckURL {
		ruleCtx.CheckURL = true
		ruleCtx.URLs = probe.NewURL(probeTimeout, 1)
	}

	if cfg.AdvisoryDB != "" {
		db, err := advisory.Open(cfg.AdvisoryDB)
		if err != nil {
			return &models.LintError{Type: models.ErrAdvisory, Err: err}
		}
		defer db.Close()
		ruleCtx.Advisories = db
	}

	agg := report.NewAggregator()
	for _, n := range notes {
		agg.Add(n)
	}
	logrus.Infof("Starting run %s", agg.RunID())

	engine := rules.NewEngine(cfg.Workers)
	engine.Run(ctx, ruleCtx, agg)

	if err := agg.WriteText(os.Stdout); err != nil {
		return &models.LintError{Type: models.ErrReport, Err: err}
	}

	if cfg.CSVFile != "" {
		f, err := os.Create(cfg.CSVFile)
		if err != nil {
			return &models.LintError{
				Type: models.ErrReport,
				Err:  fmt.Errorf("unable to save per-maintainer output to %s: %w", cfg.CSVFile, err),
			}
		}
		defer f.Close()
		if err := agg.WriteCSV(f); err != nil {
			return &models.LintError{Type: models.ErrReport, Err: err}
		}
	}

	if err := agg.WriteSummary(os.Stdout, selected, total); err != nil {
		return &models.LintError{Type: models.ErrReport, Err: err}
	}
	logrus.Infof("Run %s collected %d notifications", agg.RunID(), agg.Total())

	return nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
