package providers

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"smokeless/internal/structures"
	"strings"
)

const AppName = "Smokeless"

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", filepath.Join(home, "smokeless.dat"))
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8377)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0o644)
	v.SetDefault("logger.dir", filepath.Join(home, "logs"))
	v.SetDefault("scheduler.refreshInterval", "1m")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 1)
	v.SetDefault("cache.ttl", "1m")
	v.SetDefault("metrics.enabled", false)
}

// DataHome is the directory holding the store and logs when the config
// does not say otherwise.
func DataHome() string {
	if dir := os.Getenv("SMOKELESS_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "smokeless")
	}
	return ".smokeless"
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional; values there only seed the SMOKELESS_* variables below.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, DataHome())

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("storage.driver", "SMOKELESS_STORAGE_DRIVER")
	v.BindEnv("storage.path", "SMOKELESS_STORAGE_PATH")
	v.BindEnv("logger.level", "SMOKELESS_LOG_LEVEL")
	v.BindEnv("logger.dir", "SMOKELESS_LOG_DIR")
	v.BindEnv("webServer.port", "SMOKELESS_PORT")
	v.BindEnv("scheduler.refreshInterval", "SMOKELESS_REFRESH_INTERVAL")
	v.BindEnv("cache.enabled", "SMOKELESS_CACHE_ENABLED")
	v.BindEnv("metrics.enabled", "SMOKELESS_METRICS_ENABLED")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
