package motor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Definition declares one motor to be created at startup.
type Definition struct {
	Name   string `yaml:"name"`
	Type   Type   `yaml:"type"`
	Driver string `yaml:"driver"`
	Params Params `yaml:"params"`
}

// Config is the on-disk description of a motor fleet.
type Config struct {
	Version int          `yaml:"version"`
	Motors  []Definition `yaml:"motors"`
}

// LoadConfig parses a yaml motor configuration.
func LoadConfig(data []byte) (config *Config, err error) {
	config = new(Config)
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal motor config")
	}

	switch config.Version {
	case 1:
	default:
		return nil, errors.Errorf("unable to work with config version %d", config.Version)
	}

	return config, nil
}

// NewControllerFromConfig builds a controller and creates every motor the
// config declares, in order. If any motor fails to create, the ones already
// created are shut down and the error is returned.
func NewControllerFromConfig(config *Config, registry *Registry, log *zap.SugaredLogger) (*Controller, error) {
	c := NewController(registry, log)

	for _, def := range config.Motors {
		if _, err := c.CreateMotor(def.Name, def.Type, def.Driver, def.Params); err != nil {
			if serr := c.Shutdown(); serr != nil {
				c.log.Errorw("teardown after failed motor create reported failures", "error", serr)
			}
			return nil, err
		}
	}

	return c, nil
}
