package explorer

import (
	"fmt"
	"io"

	"github.com/diwise/graph-explorer/pkg/graph"
	yaml "gopkg.in/yaml.v2"
)

type ConnectionConfig struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Dialect  graph.Dialect `yaml:"dialect"`
	Endpoint string        `yaml:"endpoint"`

	// BatchSize caps the number of ids in a single detail query
	BatchSize                int `yaml:"batchSize"`
	EdgeConnectionSampleSize int `yaml:"edgeConnectionSampleSize"`
	CacheSize                int `yaml:"cacheSize"`

	Headers map[string]string `yaml:"headers"`
	Debug   bool              `yaml:"debug"`
}

type Config struct {
	Connections []ConnectionConfig `yaml:"connections"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}

	for _, c := range cfg.Connections {
		if c.ID == "" {
			return nil, fmt.Errorf("connection %q has no id", c.Name)
		}

		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("duplicate connection id %q", c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.Dialect != graph.Gremlin && c.Dialect != graph.OpenCypher {
			return nil, fmt.Errorf("connection %q has unsupported dialect %q", c.ID, c.Dialect)
		}
	}

	return cfg, nil
}
