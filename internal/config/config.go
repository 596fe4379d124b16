// Package config loads the ~/.ptlint INI configuration. Missing files fall
// back to defaults; flags override config values downstream.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// CheckNames lists the battery check names accepted in the [checks]
// section, INI key per check.
var CheckNames = []string{
	"port_path",
	"makefile",
	"installation_prefix",
	"comment",
	"description_file",
	"plist",
	"maintainer",
	"categories",
	"www_site",
	"marks",
	"unchanging_ports",
	"versions",
	"licenses",
	"dependencies",
	"vulnerabilities",
}

// Config holds the effective run configuration.
type Config struct {
	PortsDir      string
	IndexFile     string
	CSVFile       string
	LogLevel      string
	AdvisoryDB    string
	Workers       int
	ProbeSeverity string

	// Checks maps INI check keys to their enabled state.
	Checks    map[string]bool
	CheckHost bool
	CheckURL  bool

	CommentLength  int
	PlistAbuse     int
	BrokenDays     int
	DeprecatedDays int
	ForbiddenDays  int
	UnchangedDays  int

	Categories  []string
	Maintainers []string
	Ports       []string

	ExcludedVulns    []string
	ExcludedLicenses []string
}

// Default returns the stock configuration.
func Default() *Config {
	checks := make(map[string]bool, len(CheckNames))
	for _, name := range CheckNames {
		checks[name] = true
	}
	return &Config{
		PortsDir:       "/usr/ports",
		LogLevel:       "warning",
		Workers:        15,
		ProbeSeverity:  "error",
		Checks:         checks,
		CommentLength:  70,
		PlistAbuse:     7,
		BrokenDays:     365,
		DeprecatedDays: 180,
		ForbiddenDays:  90,
		UnchangedDays:  3 * 365,
	}
}

// Path returns the user configuration file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ptlint"), nil
}

// Load reads the configuration file at path, returning defaults when the
// file does not exist. The PTLINT_PORTSDIR environment variable overrides
// the tree root either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	} else {
		applyFile(v, cfg)
	}

	if dir := os.Getenv("PTLINT_PORTSDIR"); dir != "" {
		cfg.PortsDir = dir
	}
	return cfg, nil
}

func applyFile(v *viper.Viper, cfg *Config) {
	setString := func(dst *string, key string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setInt := func(dst *int, key string) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	setString(&cfg.PortsDir, "params.ports_dir")
	setString(&cfg.IndexFile, "params.index_file")
	setString(&cfg.CSVFile, "params.csv_filename")
	setString(&cfg.LogLevel, "params.log_level")
	setString(&cfg.AdvisoryDB, "params.advisory_db")
	setString(&cfg.ProbeSeverity, "params.probe_severity")
	setInt(&cfg.Workers, "params.workers")

	for _, name := range CheckNames {
		key := "checks." + name
		if v.IsSet(key) {
			cfg.Checks[name] = v.GetBool(key)
		}
	}
	if v.IsSet("checks.hostnames") {
		cfg.CheckHost = v.GetBool("checks.hostnames")
	}
	if v.IsSet("checks.url") {
		cfg.CheckURL = v.GetBool("checks.url")
		if cfg.CheckURL {
			// URL checking needs hostname resolution first
			cfg.CheckHost = true
		}
	}

	setInt(&cfg.CommentLength, "limits.comment_length")
	setInt(&cfg.PlistAbuse, "limits.plist_abuse")
	setInt(&cfg.BrokenDays, "limits.broken_since")
	setInt(&cfg.DeprecatedDays, "limits.deprecated_since")
	setInt(&cfg.ForbiddenDays, "limits.forbidden_since")
	setInt(&cfg.UnchangedDays, "limits.unchanged_since")

	if v.IsSet("selections.categories") {
		cfg.Categories = splitList(v.GetString("selections.categories"))
	}
	if v.IsSet("selections.maintainers") {
		cfg.Maintainers = splitList(v.GetString("selections.maintainers"))
	}
	if v.IsSet("selections.ports") {
		cfg.Ports = splitList(v.GetString("selections.ports"))
	}

	if v.IsSet("exclusions.vulnerabilities") {
		cfg.ExcludedVulns = splitList(v.GetString("exclusions.vulnerabilities"))
	}
	if v.IsSet("exclusions.licenses") {
		cfg.ExcludedLicenses = splitList(v.GetString("exclusions.licenses"))
	}
}

// AllChecksEnabled reports whether every battery check is enabled.
func (c *Config) AllChecksEnabled() bool {
	for _, enabled := range c.Checks {
		if !enabled {
			return false
		}
	}
	return true
}

// WriteDefault writes a commented default configuration file.
func WriteDefault(path string) error {
	cfg := Default()
	content := fmt.Sprintf(`# ptlint configuration file

[params]
ports_dir = %s
#index_file =
csv_filename =
log_level = warning
#log_level = info
#log_level = debug
#advisory_db = /var/db/ptlint/advisories.db
workers = %d
probe_severity = %s

[checks]
categories = true
comment = true
dependencies = true
description_file = true
hostnames = false
installation_prefix = true
licenses = true
maintainer = true
makefile = true
marks = true
plist = true
port_path = true
unchanging_ports = true
url = false
versions = true
vulnerabilities = true
www_site = true

[limits]
# number of characters:
comment_length = %d
# number of entries:
plist_abuse = %d
# number of days:
broken_since = %d
deprecated_since = %d
forbidden_since = %d
unchanged_since = %d

[selections]
# space separated lists:
categories =
maintainers =
ports =

[exclusions]
# space separated list of advisory IDs:
vulnerabilities =
# space separated list of PORTNAMEs:
licenses =
`, cfg.PortsDir, cfg.Workers, cfg.ProbeSeverity, cfg.CommentLength, cfg.PlistAbuse,
		cfg.BrokenDays, cfg.DeprecatedDays, cfg.ForbiddenDays, cfg.UnchangedDays)

	return os.WriteFile(path, []byte(content), 0644)
}

// splitList accepts space, comma or newline separated values.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
}
