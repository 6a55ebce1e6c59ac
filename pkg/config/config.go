package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// AnalyzerConfig holds per-analyzer tuning knobs.
type AnalyzerConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	// Directory containing statute provision YAML files.
	ProvisionDir string `yaml:"provision_dir"`

	// ForensicScorer alert threshold on the 0-1 fraud score.
	TextAlertThreshold float64 `yaml:"text_alert_threshold"`

	// RiskAggregator weights.
	TextFraudWeight float64 `yaml:"text_fraud_weight"`
	AnomalyWeight   float64 `yaml:"anomaly_weight"`

	// ActionabilityFilter thresholds.
	MinActionableConfidence float64 `yaml:"min_actionable_confidence"`
	MinActionableSeverity   float64 `yaml:"min_actionable_severity"`

	// Batch analysis worker count.
	BatchWorkers int `yaml:"batch_workers"`

	Analyzers map[string]AnalyzerConfig `yaml:"analyzers"`
}

// DefaultConfig returns the thresholds the pipeline ships with.
func DefaultConfig() *Config {
	return &Config{
		TextAlertThreshold:      0.3,
		TextFraudWeight:         0.4,
		AnomalyWeight:           0.3,
		MinActionableConfidence: 80,
		MinActionableSeverity:   60,
		BatchWorkers:            4,
		Analyzers: map[string]AnalyzerConfig{
			"pattern":  {Enabled: true, Timeout: 10 * time.Second},
			"text":     {Enabled: true, Timeout: 10 * time.Second},
			"forensic": {Enabled: true, Timeout: 15 * time.Second},
			"anomaly":  {Enabled: true, Timeout: 10 * time.Second},
		},
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".fraudscope")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Analyzers == nil {
		cfg.Analyzers = DefaultConfig().Analyzers
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// AnalyzerTimeout returns the configured timeout for an analyzer, falling
// back to the default when the analyzer is not configured.
func (c *Config) AnalyzerTimeout(name string) time.Duration {
	if a, ok := c.Analyzers[name]; ok && a.Timeout > 0 {
		return a.Timeout
	}
	return 10 * time.Second
}

// AnalyzerEnabled reports whether an analyzer should run. Unknown analyzers
// default to enabled.
func (c *Config) AnalyzerEnabled(name string) bool {
	if a, ok := c.Analyzers[name]; ok {
		return a.Enabled
	}
	return true
}
