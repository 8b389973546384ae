package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

const (
	EnvPrivacyPhonePattern = "DVAI_PRIVACY_PHONE_PATTERN"
	EnvPipelineBatchLimit  = "DVAI_PIPELINE_BATCH_LIMIT"
)

// PrivacyConfig holds PII detection parameters. The phone pattern is the
// regional piece of detection; everything else is fixed behavior.
type PrivacyConfig struct {
	PhonePattern string `toml:"phone_pattern"`
}

// Finalize applies environment variable overrides and validation. An empty
// phone pattern is valid and selects the detector's regional default.
func (c *PrivacyConfig) Finalize() error {
	if v := os.Getenv(EnvPrivacyPhonePattern); v != "" {
		c.PhonePattern = v
	}

	if c.PhonePattern != "" {
		if _, err := regexp.Compile(c.PhonePattern); err != nil {
			return fmt.Errorf("invalid phone_pattern: %w", err)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *PrivacyConfig) Merge(overlay *PrivacyConfig) {
	if overlay.PhonePattern != "" {
		c.PhonePattern = overlay.PhonePattern
	}
}

// PipelineConfig bounds pipeline-level behavior.
type PipelineConfig struct {
	BatchLimit int `toml:"batch_limit"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	if c.BatchLimit == 0 {
		c.BatchLimit = 4
	}

	if v := os.Getenv(EnvPipelineBatchLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchLimit = n
		}
	}

	if c.BatchLimit < 1 {
		return fmt.Errorf("batch_limit must be positive")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.BatchLimit != 0 {
		c.BatchLimit = overlay.BatchLimit
	}
}
