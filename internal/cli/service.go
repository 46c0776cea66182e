package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"attachsearch/internal/config"
	"attachsearch/internal/domain"
	"attachsearch/internal/loader"
	"attachsearch/internal/logger"
	"attachsearch/internal/matcher"
	"attachsearch/internal/service"
)

// compatService is loaded on first use by a command. Tests inject their own.
var compatService domain.CompatibilityService

// SetService replaces the service commands run against.
func SetService(svc domain.CompatibilityService) {
	compatService = svc
}

func loadService(cmd *cobra.Command) (domain.CompatibilityService, error) {
	if compatService != nil {
		return compatService, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	paths := dataDirs
	if len(paths) == 0 {
		paths = cfg.DataDirs
	}
	if len(paths) == 0 {
		return nil, errors.New("no vehicle data configured: pass --data, set data_dirs or " + config.EnvDataDir)
	}

	ld := loader.NewXMLLoader(loader.Options{
		Workers:    cfg.Loader.Workers,
		Strict:     cfg.Loader.Strict,
		Extensions: cfg.Loader.Extensions,
		Logger:     lg,
	})
	svc := service.NewCompatibilityService(ld, matcher.Options{ExcludeSelf: cfg.Matcher.ExcludeSelf}, lg)
	if _, err := svc.Ingest(cmd.Context(), paths); err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	compatService = svc
	return svc, nil
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

func newLogger(cmd *cobra.Command, cfg *config.AppConfig) (*log.Logger, error) {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	return logger.New(cmd.ErrOrStderr(), level, cfg.Log.Format)
}
