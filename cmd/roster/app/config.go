package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/registry"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Layout
	CategoriesDir   string
	RootCategory    string
	RootDir         string
	DefaultCategory string
	Extension       string

	// Rescue index suffix
	Suffix string

	// Description length past which lint warns
	DescriptionLimit int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. ROSTER_* environment variables
// 3. .env and .env.local files
// 4. Config file (configFile, else ~/.roster.yaml or ./.roster.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".roster")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		CategoriesDir:   v.GetString("categories_dir"),
		RootCategory:    v.GetString("root_category"),
		RootDir:         v.GetString("root_dir"),
		DefaultCategory: v.GetString("default_category"),
		Extension:       v.GetString("extension"),

		Suffix:           v.GetString("suffix"),
		DescriptionLimit: v.GetInt("description_limit"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", string(output.FormatText))
	v.SetDefault("categories_dir", constants.CategoriesDir)
	v.SetDefault("root_category", constants.RootCategory)
	v.SetDefault("root_dir", constants.RootDir)
	v.SetDefault("default_category", constants.DefaultCategory)
	v.SetDefault("extension", constants.Extension)
	v.SetDefault("suffix", constants.Suffix)
	v.SetDefault("description_limit", constants.MaxDescriptionLength)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate checks the values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return errors.NewConfigError("format", err.Error(), err)
	}
	if c.DescriptionLimit <= 0 {
		return errors.NewConfigError("description_limit", "must be positive", nil)
	}
	return c.Layout().Validate()
}

// Layout builds the directory policy from the configured values and the
// built-in category and alias tables.
func (c *Config) Layout() registry.Layout {
	layout := registry.DefaultLayout()
	layout.CategoriesDir = c.CategoriesDir
	layout.RootCategory = c.RootCategory
	layout.RootDir = c.RootDir
	layout.DefaultCategory = c.DefaultCategory
	layout.Extension = strings.TrimPrefix(c.Extension, ".")
	return layout
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so .env.local
// is loaded first to take precedence over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
