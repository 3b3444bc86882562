package cert

import (
	"time"

	"gopkg.in/yaml.v2"

	"github.com/certree/certree/utils"
)

const day = 24 * time.Hour

// Config carries the subject defaults, validity periods and key sizes used
// for every tier of the hierarchy. It is passed explicitly into each
// component instead of living in package-level state.
type Config struct {
	Country          string `yaml:"country"`
	State            string `yaml:"state"`
	Locality         string `yaml:"locality"`
	Organization     string `yaml:"organization"`
	OrganizationUnit string `yaml:"organization-unit"`

	RootExpiry         time.Duration `yaml:"-"`
	IntermediateExpiry time.Duration `yaml:"-"`
	HostExpiry         time.Duration `yaml:"-"`

	RootKeySize         int `yaml:"-"`
	IntermediateKeySize int `yaml:"-"`
	HostKeySize         int `yaml:"-"`
}

// DefaultConfig returns the built-in defaults: 10y/4096 root, 5y/4096
// intermediate, 825d/2048 host certificates.
func DefaultConfig() *Config {
	return &Config{
		Country:          "Internet",
		State:            "Internet",
		Locality:         "Server",
		Organization:     "Certree",
		OrganizationUnit: "Certree CA",

		RootExpiry:         3650 * day,
		IntermediateExpiry: 1825 * day,
		HostExpiry:         825 * day,

		RootKeySize:         4096,
		IntermediateKeySize: 4096,
		HostKeySize:         2048,
	}
}

// LoadConfig returns the defaults overlaid with the subject fields found in
// the given yaml file. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" || !utils.FileExists(path) {
		return cfg, nil
	}

	b, err := utils.ReadFileContent(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
