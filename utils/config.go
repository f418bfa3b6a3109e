package utils

import (
	"os"

	"beacon/api/models"
	storeBackend "beacon/api/models/constants/store-backend"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ConfigFileEnv names the variable holding the optional YAML config file path.
const ConfigFileEnv = "BEACON_CONFIG_FILE"

const (
	defaultGa4ghUrl                 = "http://1kgenomes.ga4gh.org"
	defaultPort                     = "5000"
	defaultLogLevel                 = "info"
	defaultPageSize                 = 100
	defaultMaxRetries               = 5
	defaultQueryTimeoutSeconds      = 30
	defaultDescriptorRefreshMinutes = 60
)

/*
LoadConfig gathers the configuration from, in order:
  - the YAML file named by BEACON_CONFIG_FILE, if any
  - BEACON_* environment variables, overriding the file
  - defaults, for whatever is still unset
*/
func LoadConfig() (*models.Config, error) {
	var cfg models.Config

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "reading environment")
	}

	ApplyConfigDefaults(&cfg)

	if storeBackend.CastToStoreBackend(cfg.Store.Backend) == storeBackend.Unknown {
		return nil, errors.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return &cfg, nil
}

func loadConfigFile(path string, cfg *models.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening config file %s", path)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return errors.Wrapf(err, "decoding config file %s", path)
	}
	return nil
}

// ApplyConfigDefaults fills the fields left empty by the file and environment.
func ApplyConfigDefaults(cfg *models.Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Api.Port == "" {
		cfg.Api.Port = defaultPort
	}
	if cfg.Api.QueryTimeoutSeconds <= 0 {
		cfg.Api.QueryTimeoutSeconds = defaultQueryTimeoutSeconds
	}
	if cfg.Beacon.DescriptorRefreshMinutes == 0 {
		cfg.Beacon.DescriptorRefreshMinutes = defaultDescriptorRefreshMinutes
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = string(storeBackend.Ga4gh)
	}
	if cfg.Ga4gh.Url == "" {
		cfg.Ga4gh.Url = defaultGa4ghUrl
	}
	if cfg.Ga4gh.PageSize <= 0 {
		cfg.Ga4gh.PageSize = defaultPageSize
	}
	if cfg.Ga4gh.MaxRetries == 0 {
		cfg.Ga4gh.MaxRetries = defaultMaxRetries
	}
}
