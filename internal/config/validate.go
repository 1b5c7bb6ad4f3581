package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownPlatforms = map[string]struct{}{
	"telegram": {},
	"tiktok":   {},
}

var watermarkPositions = map[string]struct{}{
	"top_left":     {},
	"top_right":    {},
	"bottom_left":  {},
	"bottom_right": {},
	"center":       {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validatePlatforms(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.SplitDuration < 0 {
		return errors.New("processing.split_duration must not be negative")
	}
	if _, ok := watermarkPositions[c.Processing.WatermarkPosition]; !ok {
		return fmt.Errorf("processing.watermark_position: unsupported value %q", c.Processing.WatermarkPosition)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.UploadConcurrency < 1 {
		return errors.New("workflow.upload_concurrency must be at least 1")
	}
	return nil
}

func (c *Config) validatePlatforms() error {
	for _, platform := range c.Platforms.Enabled {
		if _, ok := knownPlatforms[platform]; !ok {
			return fmt.Errorf("platforms.enabled: unknown platform %q (supported: %s)",
				platform, strings.Join(supportedPlatforms(), ", "))
		}
	}
	return nil
}

// SupportedPlatforms returns the sorted list of destination identifiers the
// distribution layer implements.
func SupportedPlatforms() []string {
	return supportedPlatforms()
}

func supportedPlatforms() []string {
	return []string{"telegram", "tiktok"}
}
