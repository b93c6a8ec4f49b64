// Package config 提供服务配置加载
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath 是 SQLite 数据库文件路径
	// 可以通过环境变量 TAGD_DB_PATH 配置
	// 默认：~/.local/share/tagd/tagd.db
	DBPath string `yaml:"db_path"`

	// Address 是 HTTP API 的绑定地址
	// 可以通过环境变量 TAGD_ADDRESS 配置
	Address string `yaml:"address"`

	// EntityTypes 是允许打标签的实体类型名
	// 未登记的类型在 API 层会被拒绝
	EntityTypes []string `yaml:"entity_types"`

	// DefaultTags 是默认标签同步的固定身份
	DefaultTags DefaultTagsConfig `yaml:"default_tags"`
}

// DefaultTagsConfig 默认标签同步配置
// Author 是作者 ID，Language 是语言名称（如 "en"）
type DefaultTagsConfig struct {
	Author   string `yaml:"author"`
	Language string `yaml:"language"`
}

func New() (*Config, error) {
	cfg := &Config{
		DBPath:      getDBPath(),
		Address:     getAddress(),
		EntityTypes: defaultEntityTypes(),
	}

	// 配置文件可选，存在时覆盖默认值，环境变量优先级最高
	if path := os.Getenv("TAGD_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		if dbPath := os.Getenv("TAGD_DB_PATH"); dbPath != "" {
			cfg.DBPath = dbPath
		}
		if addr := os.Getenv("TAGD_ADDRESS"); addr != "" {
			cfg.Address = addr
		}
	}

	return cfg, nil
}

// loadFile 从 YAML 文件加载配置，文件里省略的字段保留已有值
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// getDBPath 获取数据库路径，优先使用环境变量 TAGD_DB_PATH
func getDBPath() string {
	if path := os.Getenv("TAGD_DB_PATH"); path != "" {
		return path
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "tagd", "tagd.db")
	}

	return filepath.Join(".", "data", "tagd.db")
}

// getAddress 获取绑定地址，优先使用环境变量 TAGD_ADDRESS
func getAddress() string {
	if addr := os.Getenv("TAGD_ADDRESS"); addr != "" {
		return addr
	}

	return "0.0.0.0:7780"
}

// defaultEntityTypes 默认登记的实体类型
func defaultEntityTypes() []string {
	return []string{"article", "video", "image"}
}
