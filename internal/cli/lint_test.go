package cli

import (
	"errors"
	"testing"

	"github.com/ptlint/ptlint/internal/config"
	"github.com/ptlint/ptlint/internal/models"
)

func TestValidateLimits(t *testing.T) {
	cfg := config.Default()
	if err := validateLimits(cfg); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	cfg.PlistAbuse = 2
	if err := validateLimits(cfg); err == nil {
		t.Error("a plist limit below 3 must be rejected")
	} else {
		var lintErr *models.LintError
		if !errors.As(err, &lintErr) || lintErr.Type != models.ErrInvalidConfig {
			t.Errorf("err = %v, want an invalid-config error", err)
		}
	}

	cfg = config.Default()
	cfg.BrokenDays = 10
	if err := validateLimits(cfg); err == nil {
		t.Error("a day limit below 30 must be rejected")
	}
}

func TestApplyLintFlags(t *testing.T) {
	cmd := NewLintCmd()
	if err := cmd.Flags().Set("cat", "Misc,Devel"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cmd.Flags().Set("check-url", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cmd.Flags().Set("comment-length", "60"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cfg := config.Default()
	applyLintFlags(cmd, cfg)

	if len(cfg.Categories) != 2 || cfg.Categories[0] != "misc" {
		t.Errorf("Categories = %v, want lowercased split", cfg.Categories)
	}
	if !cfg.CheckURL || !cfg.CheckHost {
		t.Error("check-url must imply check-host")
	}
	if cfg.CommentLength != 60 {
		t.Errorf("CommentLength = %d", cfg.CommentLength)
	}
	if cfg.PortsDir != "/usr/ports" {
		t.Errorf("PortsDir = %q, unset flags must not override the config", cfg.PortsDir)
	}
}
