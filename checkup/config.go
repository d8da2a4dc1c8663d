package checkup

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"

	"github.com/awgbot/stack-doctor/checkup/internal/utils"
)

// Deployment defaults, matching the stock compose file.
const (
	DefaultAWGContainer  = "amnezia-awg"
	DefaultXrayContainer = "amnezia-xray"
	DefaultDNSContainer  = "amnezia-dns"
	DefaultBotContainer  = "awgbot"

	DefaultXrayConfigPath = "/opt/amnezia/xray/server.json"
	DefaultAWGConfigPath  = "/opt/amnezia/awg/wg0.conf"

	DefaultBotEnvFile    = ".env"
	DefaultBotSecretPath = "/app/.env"
	DefaultBotDataDir    = "/app/data"

	DefaultProxyLogLevel = "notice"

	// Key the secret env file must define for the bot to start.
	BotTokenKey = "TELEGRAM_BOT_TOKEN"
)

// Config holds the resolved deployment knobs for one run. Every field has a
// default; the env file and the process environment only override.
type Config struct {
	AWGContainer  string
	XrayContainer string
	DNSContainer  string
	BotContainer  string

	// Paths checked for readability inside their containers
	XrayConfigPath string
	AWGConfigPath  string

	// Host path of the secret env file and its mount inside the bot container
	BotEnvFile    string
	BotSecretPath string

	// In-container data volume of the bot
	BotDataDir string

	// Reported, not enforced
	ProxyLogLevel string

	// Day-to-day reachability probe target; empty skips the probe
	ProxyProbeURL string
}

// ResolveConfig reads the deployment env file (missing file is fine, all
// keys have defaults) and applies process environment overrides on top.
func ResolveConfig(envFile string) Config {
	vals, err := utils.ParseEnvFile(envFile)
	if err != nil {
		logger.L().Debug("deployment env file not read, using defaults",
			helpers.String("path", envFile), helpers.Error(err))
		vals = map[string]string{}
	}

	lookup := func(key, fallback string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if v := vals[key]; v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		AWGContainer:   lookup("AWG_CONTAINER", DefaultAWGContainer),
		XrayContainer:  lookup("XRAY_CONTAINER", DefaultXrayContainer),
		DNSContainer:   lookup("DNS_CONTAINER", DefaultDNSContainer),
		BotContainer:   lookup("BOT_CONTAINER", DefaultBotContainer),
		XrayConfigPath: lookup("XRAY_CONFIG_PATH", DefaultXrayConfigPath),
		AWGConfigPath:  lookup("AWG_CONFIG_PATH", DefaultAWGConfigPath),
		BotEnvFile:     lookup("BOT_ENV_FILE", DefaultBotEnvFile),
		BotSecretPath:  lookup("BOT_SECRET_PATH", DefaultBotSecretPath),
		BotDataDir:     lookup("BOT_DATA_DIR", DefaultBotDataDir),
		ProxyLogLevel:  lookup("DOCKER_PROXY_LOG_LEVEL", DefaultProxyLogLevel),
		ProxyProbeURL:  lookup("PROXY_PROBE_URL", ""),
	}

	logger.L().Debug("resolved deployment config",
		helpers.String("awg", cfg.AWGContainer),
		helpers.String("xray", cfg.XrayContainer),
		helpers.String("dns", cfg.DNSContainer),
		helpers.String("bot", cfg.BotContainer))

	return cfg
}

// Settings is the doctor's own tuning, loaded from an optional TOML file.
// It configures how the probes run, never what they conclude.
type Settings struct {
	DockerBinary          string  `toml:"docker_binary"`
	ExecTimeoutSeconds    int     `toml:"exec_timeout_seconds"`
	ExecRetries           int     `toml:"exec_retries"`
	RetryDelaySeconds     float64 `toml:"retry_delay_seconds"`
	ComposeFile           string  `toml:"compose_file"`
	HeartbeatPath         string  `toml:"heartbeat_path"`
	HeartbeatStaleSeconds int64   `toml:"heartbeat_stale_seconds"`
}

func defaultSettings() Settings {
	return Settings{
		DockerBinary:          "docker",
		ExecTimeoutSeconds:    10,
		ExecRetries:           1,
		RetryDelaySeconds:     2,
		ComposeFile:           "docker-compose.yml",
		HeartbeatPath:         DefaultBotDataDir + "/heartbeat",
		HeartbeatStaleSeconds: DefaultHeartbeatStaleSeconds,
	}
}

// LoadSettings parses the settings file. An empty path or a missing file
// yields the defaults; a present but malformed file is an error.
func LoadSettings(path string) (Settings, error) {
	set := defaultSettings()
	if path == "" {
		return set, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.L().Debug("settings file not found, using defaults", helpers.String("path", path))
		return set, nil
	}
	if _, err := toml.DecodeFile(path, &set); err != nil {
		return set, fmt.Errorf("failed to parse settings file %s: %v", path, err)
	}
	if set.ExecTimeoutSeconds <= 0 {
		set.ExecTimeoutSeconds = 10
	}
	if set.HeartbeatStaleSeconds <= 0 {
		set.HeartbeatStaleSeconds = DefaultHeartbeatStaleSeconds
	}
	return set, nil
}

// ExecTimeout returns the per-command probe timeout.
func (s Settings) ExecTimeout() time.Duration {
	return time.Duration(s.ExecTimeoutSeconds) * time.Second
}

// RetryDelay returns the pause between retried probe commands.
func (s Settings) RetryDelay() time.Duration {
	return time.Duration(s.RetryDelaySeconds * float64(time.Second))
}
