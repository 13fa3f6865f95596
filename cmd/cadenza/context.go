package main

import (
	"errors"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/spf13/cobra"

	"cadenza/internal/config"
	"cadenza/internal/enrichment"
	"cadenza/internal/library"
	"cadenza/internal/logging"
	"cadenza/internal/services/claude"
	"cadenza/internal/services/lastfm"
	"cadenza/internal/services/musicbrainz"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) openStore() (*library.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return library.Open(cfg)
}

// resolveUser picks the user from the positional argument or the
// configured default.
func (c *commandContext) resolveUser(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if user := strings.TrimSpace(cfg.LastFM.User); user != "" {
		return user, nil
	}
	return "", errors.New("no user given and lastfm.user is not configured")
}

// buildOrchestrator wires the service clients into the enrichment
// workflow. The paid tier is attached only when an API key is
// configured.
func (c *commandContext) buildOrchestrator(store *library.Store, logger *slog.Logger) (*enrichment.Orchestrator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	history, err := lastfm.New(cfg.LastFM.APIKey, cfg.LastFM.BaseURL, time.Duration(cfg.LastFM.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	lookup, err := musicbrainz.New(cfg.MusicBrainz.BaseURL, cfg.MusicBrainz.UserAgent, time.Duration(cfg.MusicBrainz.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	var enricher enrichment.Enricher
	if strings.TrimSpace(cfg.Claude.APIKey) != "" {
		enricher = claude.NewClient(claude.Config{
			APIKey:         cfg.Claude.APIKey,
			BaseURL:        cfg.Claude.BaseURL,
			Model:          cfg.Claude.Model,
			MaxTokens:      cfg.Claude.MaxTokens,
			TimeoutSeconds: cfg.Claude.TimeoutSeconds,
		})
	}

	return enrichment.NewOrchestrator(store, history, lookup, enricher, logger, enrichment.Options{
		QualityThreshold: cfg.Enrichment.QualityThreshold,
		PageSize:         cfg.Enrichment.SyncPageSize,
	}), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
