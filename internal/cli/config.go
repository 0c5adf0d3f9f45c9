package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/prajan97/diamond-intel/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "DIAMOND_INTEL"
)

// Config keys.
const (
	cfgKeyServerAddr      = "server.addr"
	cfgKeyShutdownTimeout = "server.shutdown_timeout"
	cfgKeyDataDir         = "data_dir"
	cfgKeyDatabaseFile    = "database.file"
	cfgKeyWebDir          = "web.dir"
	cfgKeyLogLevel        = "log.level"
	cfgKeyLogFormat       = "log.format"
)

// Settings is the decoded configuration.
type Settings struct {
	Server   ServerSettings   `mapstructure:"server" yaml:"server"`
	DataDir  string           `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Database DatabaseSettings `mapstructure:"database" yaml:"database"`
	Web      WebSettings      `mapstructure:"web" yaml:"web"`
	Log      LogSettings      `mapstructure:"log" yaml:"log"`
}

type ServerSettings struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type DatabaseSettings struct {
	File string `mapstructure:"file" yaml:"file"`
}

type WebSettings struct {
	// Dir holds the built frontend (index.html and assets).
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultSettings returns the values used when neither config.yaml nor the
// environment sets a key.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:            ":3001",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseSettings{File: types.DefaultDatabaseFile},
		Web:      WebSettings{Dir: "client/dist"},
		Log:      LogSettings{Level: "info", Format: "console"},
	}
}

// envKeys can be overridden with DIAMOND_INTEL_<KEY>. data_dir is left out:
// its environment variable is resolved by the paths package, after
// config.yaml.
var envKeys = []string{
	cfgKeyServerAddr,
	cfgKeyShutdownTimeout,
	cfgKeyDatabaseFile,
	cfgKeyWebDir,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
}

// loadSettings reads config.yaml from configDir, creating the directory and
// a default file on first run, and applies environment overrides.
func loadSettings(configDir string) (*Settings, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	defaults := DefaultSettings()
	v := viper.New()
	v.SetDefault(cfgKeyServerAddr, defaults.Server.Addr)
	v.SetDefault(cfgKeyShutdownTimeout, defaults.Server.ShutdownTimeout)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyDatabaseFile, defaults.Database.File)
	v.SetDefault(cfgKeyWebDir, defaults.Web.Dir)
	v.SetDefault(cfgKeyLogLevel, defaults.Log.Level)
	v.SetDefault(cfgKeyLogFormat, defaults.Log.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &s, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes a commented default config.yaml if the
// directory has none.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# diamond-intel configuration
# Every key can also be set as DIAMOND_INTEL_<KEY>, e.g. DIAMOND_INTEL_SERVER_ADDR.

server:
  addr: ":3001"
  shutdown_timeout: 10s

# Directory holding the store file (optional; overridable by --data-dir)
# data_dir:

database:
  file: diamonds.db

web:
  dir: client/dist

log:
  level: info     # debug, info, warn, error
  format: console # console or json
`
