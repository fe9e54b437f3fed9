package providers

import (
	"smokeless/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{
			Driver: "file",
			Path:   "/tmp/smokeless.dat",
		},
		WebServer: structures.Server{
			Host: "127.0.0.1",
			Port: 8377,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Scheduler: structures.SchedulerConfig{
			RefreshInterval: time.Minute,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_UnknownDriver(t *testing.T) {
	c := validConfig()
	c.Storage.Driver = "redis"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_FileDriverNeedsPath(t *testing.T) {
	c := validConfig()
	c.Storage.Path = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MemoryDriverWithoutPath(t *testing.T) {
	c := validConfig()
	c.Storage.Driver = "memory"
	c.Storage.Path = ""
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MissingRefreshInterval(t *testing.T) {
	c := validConfig()
	c.Scheduler.RefreshInterval = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}
