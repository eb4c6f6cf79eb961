package bootstrap

import (
	"fmt"
	"os"

	"connregistry/models"
	"connregistry/pkg/logger"

	"gopkg.in/yaml.v3"
)

// DefaultConnection is one entry of the default-connections seed file.
type DefaultConnection struct {
	ConnectionID string  `yaml:"connection_id"`
	ConnType     string  `yaml:"conn_type"`
	Description  *string `yaml:"description"`
	Host         *string `yaml:"host"`
	Login        *string `yaml:"login"`
	Password     *string `yaml:"password"`
	Schema       *string `yaml:"schema"`
	Port         *int    `yaml:"port"`
	Extra        *string `yaml:"extra"`
}

type defaultsFile struct {
	Connections []DefaultConnection `yaml:"connections"`
}

// LoadDefaultConnections reads the YAML seed file and returns the well-known
// connection records it declares. A missing file is not an error; it means no
// defaults are configured for this deployment.
func LoadDefaultConnections(path string) ([]models.Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warnf("Default connections file %s not found, nothing to seed", path)
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read default connections file %s: %w", path, err)
	}

	var file defaultsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse default connections file %s: %w", path, err)
	}

	conns := make([]models.Connection, 0, len(file.Connections))
	for _, entry := range file.Connections {
		if entry.ConnectionID == "" || entry.ConnType == "" {
			return nil, fmt.Errorf("default connection entries require connection_id and conn_type (file %s)", path)
		}
		conns = append(conns, models.Connection{
			ConnID:      entry.ConnectionID,
			ConnType:    entry.ConnType,
			Description: entry.Description,
			Host:        entry.Host,
			Login:       entry.Login,
			Password:    entry.Password,
			Schema:      entry.Schema,
			Port:        entry.Port,
			Extra:       entry.Extra,
		})
	}
	logger.Infof("Loaded %d default connection(s) from %s", len(conns), path)
	return conns, nil
}
