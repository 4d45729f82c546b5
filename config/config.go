package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileName  = "svgcss.yaml"
	envPrefix = "SVGCSS"
)

type Config struct {
	DataDir     string  `mapstructure:"data_dir"`
	ListenAddr  string  `mapstructure:"listen_addr"`
	Logging     Logging `mapstructure:"logging"`
	PreviewSize int     `mapstructure:"preview_size"`
	CatalogFile string  `mapstructure:"catalog_file"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Default() Config {
	return Config{
		DataDir:     ".",
		ListenAddr:  ":8080",
		Logging:     Logging{Level: "info", Format: "console"},
		PreviewSize: 128,
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("preview_size", def.PreviewSize)
	v.SetDefault("catalog_file", def.CatalogFile)
}

// New returns a viper instance with defaults and SVGCSS_* environment
// bindings, reading svgcss.yaml from dataDir when it exists.
func New(dataDir string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(filepath.Join(dataDir, FileName))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load reads the configuration for dataDir. A missing file yields defaults.
func Load(dataDir string) (Config, *viper.Viper, error) {
	v, err := New(dataDir)
	if err != nil {
		return Config{}, nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DataDir == "" || cfg.DataDir == "." {
		cfg.DataDir = dataDir
	}
	return cfg, v, nil
}

// Save writes cfg to svgcss.yaml in cfg.DataDir.
func Save(cfg Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.Set("data_dir", cfg.DataDir)
	v.Set("listen_addr", cfg.ListenAddr)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)
	v.Set("preview_size", cfg.PreviewSize)
	v.Set("catalog_file", cfg.CatalogFile)

	path := filepath.Join(cfg.DataDir, FileName)
	tmp := path + ".tmp.yaml"
	if err := v.WriteConfigAs(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}

// Path returns where the config file for dataDir lives.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}
