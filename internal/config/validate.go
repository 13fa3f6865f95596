package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLastFM(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateClaude(); err != nil {
		return err
	}
	if err := c.validateEnrichment(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateLastFM() error {
	if strings.TrimSpace(c.LastFM.BaseURL) == "" {
		return errors.New("lastfm.base_url must be set")
	}
	if c.LastFM.TimeoutSeconds < 0 {
		return errors.New("lastfm.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateMusicBrainz() error {
	if strings.TrimSpace(c.MusicBrainz.BaseURL) == "" {
		return errors.New("musicbrainz.base_url must be set")
	}
	if strings.TrimSpace(c.MusicBrainz.UserAgent) == "" {
		return errors.New("musicbrainz.user_agent must be set (the service rejects anonymous clients)")
	}
	return nil
}

func (c *Config) validateClaude() error {
	// An empty API key is allowed: sync runs with paid enrichment
	// disabled. A key with no model is a misconfiguration.
	if strings.TrimSpace(c.Claude.APIKey) != "" && strings.TrimSpace(c.Claude.Model) == "" {
		return errors.New("claude.model must be set when claude.api_key is configured")
	}
	if c.Claude.MaxTokens < 0 {
		return errors.New("claude.max_tokens must not be negative")
	}
	return nil
}

func (c *Config) validateEnrichment() error {
	if c.Enrichment.QualityThreshold < 0 || c.Enrichment.QualityThreshold > 1 {
		return errors.New("enrichment.quality_threshold must be between 0 and 1")
	}
	if c.Enrichment.AICallLimit < 0 {
		return errors.New("enrichment.ai_call_limit must not be negative")
	}
	if c.Enrichment.SyncPageSize <= 0 {
		return errors.New("enrichment.sync_page_size must be positive")
	}
	if c.Enrichment.TrackLimit <= 0 {
		return errors.New("enrichment.track_limit must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.TimeoutSeconds < 0 {
		return errors.New("notifications.timeout_seconds must not be negative")
	}
	if topic := strings.TrimSpace(c.Notifications.NtfyTopic); topic != "" && !strings.HasPrefix(topic, "http") {
		return errors.New("notifications.ntfy_topic must be a full URL")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
