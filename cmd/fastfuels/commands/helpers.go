package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/fastfuels-io/fastfuels-client/pkg/ffclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration persisted in
// ~/.fastfuels/config.yml.
type Config struct {
	API    string `json:"api,omitempty"    yaml:"api,omitempty"`
	Key    string `json:"key,omitempty"    yaml:"key,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	return filepath.Join(home, ".fastfuels", "config.yml"), nil
}

// loadConfig reads the persisted CLI configuration. A missing config file is
// not an error; it simply yields an empty config.
func loadConfig() *Config {
	config := &Config{}

	path, err := configFilePath()
	if err != nil {
		return config
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

func saveConfig(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateClient builds a fastfuels client from flags, environment, and the
// persisted CLI configuration, in that order of precedence.
func CreateClient() (fastfuels.Client, error) {
	config := loadConfig()

	endpoint := viper.GetString("api")
	if endpoint == "" {
		endpoint = config.API
	}

	key := viper.GetString("key")
	if key == "" {
		key = config.Key
	}

	clientConfig := &fastfuels.Config{
		APIEndpoint: endpoint,
		APIKey:      key,
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = stderrLogger{}
	}

	return ffclient.New(clientConfig)
}

// stderrLogger writes structured log lines to stderr for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s %s", time.Now().Format(time.RFC3339), level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode output as JSON: %w", err)
	}

	return nil
}

// outputYAML writes v to stdout as YAML.
func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() { _ = encoder.Close() }()

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode output as YAML: %w", err)
	}

	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

func formatStatus(status fastfuels.Status) string {
	if status == "" {
		return constants.NotAvailable
	}

	return status.String()
}

// waitOptionsFromFlags builds WaitOptions from the shared --interval and
// --timeout wait flags, printing status transitions when verbose.
func waitOptionsFromFlags(interval, timeout time.Duration) *fastfuels.WaitOptions {
	opts := fastfuels.DefaultWaitOptions()

	if interval > 0 {
		opts.Interval = interval
	}

	if timeout > 0 {
		opts.Timeout = timeout
	}

	if viper.GetBool("verbose") {
		var lastStatus fastfuels.Status

		opts.Progress = func(event fastfuels.ProgressEvent) {
			if event.Status == lastStatus {
				return
			}

			lastStatus = event.Status
			fmt.Fprintf(os.Stderr, "status: %s (elapsed %s)\n", event.Status, event.Elapsed.Round(time.Second))
		}
	}

	return opts
}
