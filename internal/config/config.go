package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config captures environment driven configuration values for the scheduling
// service.
type Config struct {
	HTTPPort        int
	SQLiteDSN       string
	PolicyFile      string
	ShutdownTimeout time.Duration
	Policy          Policy
}

// Policy holds the notification trigger knobs, loaded from an optional YAML
// file so operators can tune leads without rebuilding.
type Policy struct {
	ConfirmationLead      Duration `yaml:"confirmation_lead"`
	ReminderLead          Duration `yaml:"reminder_lead"`
	DefaultDeliveryMethod string   `yaml:"default_delivery_method"`
	SweepSchedule         string   `yaml:"sweep_schedule"`
}

// Duration decodes YAML values like "24h" or "90m" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultPolicy returns the policy applied when no file overrides it.
func DefaultPolicy() Policy {
	return Policy{
		ConfirmationLead:      Duration(24 * time.Hour),
		ReminderLead:          Duration(2 * time.Hour),
		DefaultDeliveryMethod: "email",
		SweepSchedule:         "*/5 * * * *",
	}
}

// Load parses configuration from a .env file when present, then the process
// environment, then the optional policy file. Defaults cover every value, so
// the service starts with an empty environment.
func Load() (Config, error) {
	// Missing .env files are not an error; explicit environment wins.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:        8080,
		SQLiteDSN:       "file:homecare.db?_foreign_keys=on",
		ShutdownTimeout: 10 * time.Second,
		Policy:          DefaultPolicy(),
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("HOMECARE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "HOMECARE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("HOMECARE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("HOMECARE_SHUTDOWN_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "HOMECARE_SHUTDOWN_TIMEOUT")
		} else {
			cfg.ShutdownTimeout = timeout
		}
	}

	cfg.PolicyFile = strings.TrimSpace(os.Getenv("HOMECARE_POLICY_FILE"))

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	if cfg.PolicyFile != "" {
		policy, err := LoadPolicy(cfg.PolicyFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Policy = policy
	}

	return cfg, nil
}

// LoadPolicy reads a YAML policy file, falling back to defaults for any value
// the file leaves unset.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file %s: %w", path, err)
	}

	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	if policy.ConfirmationLead <= 0 {
		return Policy{}, fmt.Errorf("policy file %s: confirmation_lead must be positive", path)
	}
	if policy.ReminderLead <= 0 {
		return Policy{}, fmt.Errorf("policy file %s: reminder_lead must be positive", path)
	}
	if policy.DefaultDeliveryMethod == "" {
		policy.DefaultDeliveryMethod = "email"
	}
	if policy.SweepSchedule == "" {
		policy.SweepSchedule = DefaultPolicy().SweepSchedule
	}
	return policy, nil
}
