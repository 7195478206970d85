package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportingConfig carries the presentation knobs for margin reporting. The
// ledger stores full-precision decimals; rounding to DisplayDecimalPlaces
// happens only when responses are rendered.
type ReportingConfig struct {
	DisplayDecimalPlaces int32 `mapstructure:"displayDecimalPlaces"`
	DefaultWindowDays    int   `mapstructure:"defaultWindowDays"`
}

func DefaultReportingConfig() ReportingConfig {
	return ReportingConfig{
		DisplayDecimalPlaces: 2,
		DefaultWindowDays:    1,
	}
}

// ReportingHolder exposes the current reporting config and hot-reloads it
// when the backing file changes.
type ReportingHolder struct {
	current atomic.Value // holds ReportingConfig
}

func NewReportingHolder() (*ReportingHolder, error) {
	v := viper.New()

	v.SetConfigName("reporting")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/rxledger/config") // Volume-mounted config
	v.AddConfigPath("/etc/rxledger")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("RXLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultReportingConfig()
		v.SetDefault("reporting.displayDecimalPlaces", defaults.DisplayDecimalPlaces)
		v.SetDefault("reporting.defaultWindowDays", defaults.DefaultWindowDays)
	}

	var cfg ReportingConfig
	if err := v.UnmarshalKey("reporting", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportingHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportingConfig
		if err := v.UnmarshalKey("reporting", &updated); err != nil {
			log.Printf("[reporting-config] reload failed: %v", err)
			return
		}
		if err := validateReportingConfig(updated); err != nil {
			log.Printf("[reporting-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reporting-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticReportingHolder wraps a fixed config with no backing file. Used where
// hot reload is not wanted, such as tests.
func StaticReportingHolder(cfg ReportingConfig) *ReportingHolder {
	holder := &ReportingHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ReportingHolder) Get() ReportingConfig {
	return h.current.Load().(ReportingConfig)
}

func validateReportingConfig(cfg ReportingConfig) error {
	if cfg.DisplayDecimalPlaces < 0 || cfg.DisplayDecimalPlaces > 6 {
		return errors.New("reporting.displayDecimalPlaces must be between 0 and 6")
	}
	if cfg.DefaultWindowDays < 1 {
		return errors.New("reporting.defaultWindowDays must be at least 1")
	}
	return nil
}
