package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/csvpeek-cli/internal/utils"
)

// Dir is the config directory under the user's home.
const Dir = ".csvpeek"

// Global configuration structure.
type Global struct {
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
	Encoding      string `mapstructure:"encoding" yaml:"encoding"`
	// Color is auto, always or never.
	Color        string `mapstructure:"color" yaml:"color"`
	Quiet        bool   `mapstructure:"quiet" yaml:"quiet"`
	TopK         int    `mapstructure:"top_k" yaml:"top_k"`
	SampleValues int    `mapstructure:"sample_values" yaml:"sample_values"`
	// ParallelFinalize finalizes column statistics concurrently.
	ParallelFinalize bool `mapstructure:"parallel_finalize" yaml:"parallel_finalize"`
	// MaxRows caps accumulated rows; 0 means unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"default_format", "delimiter", "encoding", "color", "quiet",
	"top_k", "sample_values", "parallel_finalize", "max_rows",
}

// Default is the configuration used when nothing is set.
func Default() *Global {
	return &Global{DefaultFormat: "table", Color: "auto", TopK: 5, SampleValues: 5}
}

// Path resolves the config file location. An explicit cfgFile wins;
// otherwise ~/.csvpeek/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, Dir, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.csvpeek/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (CSVP_*) > config file > defaults. Command flags are
// applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVP")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("default_format", d.DefaultFormat)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("encoding", d.Encoding)
	v.SetDefault("color", d.Color)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("top_k", d.TopK)
	v.SetDefault("sample_values", d.SampleValues)
	v.SetDefault("parallel_finalize", d.ParallelFinalize)
	v.SetDefault("max_rows", d.MaxRows)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, Dir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no command could use.
func (c *Global) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color: %s (use auto, always or never)", c.Color)
	}
	if c.TopK < 0 || c.SampleValues < 0 || c.MaxRows < 0 {
		return fmt.Errorf("top_k, sample_values and max_rows must not be negative")
	}
	return nil
}

// Set assigns one key from its text form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "default_format":
		c.DefaultFormat = strings.ToLower(val)
	case "delimiter":
		c.Delimiter = val
	case "encoding":
		c.Encoding = val
	case "color":
		v := strings.ToLower(val)
		switch v {
		case "auto", "always", "never":
			c.Color = v
		default:
			return fmt.Errorf("invalid color: %s (use auto, always or never)", val)
		}
	case "quiet", "parallel_finalize":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		if key == "quiet" {
			c.Quiet = b
		} else {
			c.ParallelFinalize = b
		}
	case "top_k", "sample_values", "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "top_k":
			c.TopK = i
		case "sample_values":
			c.SampleValues = i
		default:
			c.MaxRows = i
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get renders one key for display.
func (c *Global) Get(key string) string {
	switch key {
	case "default_format":
		return c.DefaultFormat
	case "delimiter":
		return c.Delimiter
	case "encoding":
		return c.Encoding
	case "color":
		return c.Color
	case "quiet":
		return strconv.FormatBool(c.Quiet)
	case "top_k":
		return strconv.Itoa(c.TopK)
	case "sample_values":
		return strconv.Itoa(c.SampleValues)
	case "parallel_finalize":
		return strconv.FormatBool(c.ParallelFinalize)
	case "max_rows":
		return strconv.Itoa(c.MaxRows)
	}
	return ""
}
