package env

import (
	"bank_backend/internal/config"
	"os"

	"gopkg.in/yaml.v3"
)

type adminYAML struct {
	AdminUIDs []int `yaml:"admin_uids"`
}

type adminConfig struct {
	adminIDs map[int]struct{}
}

// NewAdminConfigFromYAML - читает список ID администраторов из YAML конфигурации
func NewAdminConfigFromYAML(path string) (config.AdminConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed adminYAML
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	ids := make(map[int]struct{}, len(parsed.AdminUIDs))
	for _, id := range parsed.AdminUIDs {
		ids[id] = struct{}{}
	}

	return &adminConfig{
		adminIDs: ids,
	}, nil
}

// NewAdminConfig - конфигурация администраторов из готового списка ID (для тестов)
func NewAdminConfig(ids ...int) config.AdminConfig {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &adminConfig{adminIDs: m}
}

func (cfg *adminConfig) IsAdmin(id int) bool {
	_, ok := cfg.adminIDs[id]
	return ok
}
