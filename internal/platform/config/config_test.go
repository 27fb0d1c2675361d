package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(":8080", cfg.Addr)
	s.Equal(50, cfg.MaxBatchSize)
	s.Equal(256, cfg.MaxStringLength)
	s.Equal(int64(1<<53-1), cfg.MaxTimestamp)
	s.Empty(cfg.EventLogPath, "in-memory log by default")
	s.Empty(cfg.KafkaBrokers, "fan-out disabled by default")
}

func (s *ConfigSuite) TestFileOverridesDefaults() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(
		"addr: \":9090\"\nmax_batch_size: 10\nevent_log_path: /var/lib/ledger/events.db\nrebuild_interval: 5s\n",
	), 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(":9090", cfg.Addr)
	s.Equal(10, cfg.MaxBatchSize)
	s.Equal("/var/lib/ledger/events.db", cfg.EventLogPath)
	s.Equal(5*time.Second, cfg.RebuildInterval)
	s.Equal(256, cfg.MaxStringLength, "untouched keys keep defaults")
}

func (s *ConfigSuite) TestEnvOverridesFile() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600))

	s.T().Setenv("LEDGER_ADDR", ":7070")
	s.T().Setenv("LEDGER_MAX_BATCH_SIZE", "5")
	s.T().Setenv("LEDGER_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(":7070", cfg.Addr)
	s.Equal(5, cfg.MaxBatchSize)
	s.Equal("broker-1:9092,broker-2:9092", cfg.KafkaBrokers)
}

func (s *ConfigSuite) TestRejectsInvalidBounds() {
	s.T().Setenv("LEDGER_MAX_BATCH_SIZE", "0")

	_, err := Load("")
	s.Error(err)
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "absent.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestLimitsExtraction() {
	cfg := Default()
	cfg.MaxBatchSize = 7

	limits := cfg.Limits()
	s.Equal(7, limits.MaxBatchSize)
	s.Equal(cfg.MaxStringLength, limits.MaxStringLength)
	s.Equal(cfg.MaxTimestamp, limits.MaxTimestamp)
}
