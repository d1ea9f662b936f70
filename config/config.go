// Package config layers modelgen settings from defaults, config files,
// dotenv files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/modelgen/database"
)

const (
	configName = ".modelgen"
	envPrefix  = "MODELGEN"
)

// Config holds the settings of one CLI invocation.
type Config struct {
	Schema          string `mapstructure:"schema"`
	Out             string `mapstructure:"out"`
	ProjectType     string `mapstructure:"project_type"`
	DB              DB     `mapstructure:"db"`
	RequiredVersion string `mapstructure:"required_version"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// DB holds the raw database options as written by the user.
type DB struct {
	Dialect   string `mapstructure:"dialect"`
	CaseStyle string `mapstructure:"case_style"`
	NounForm  string `mapstructure:"noun_form"`
	CreatedAt string `mapstructure:"created_at"`
	UpdatedAt string `mapstructure:"updated_at"`
	DeletedAt string `mapstructure:"deleted_at"`
}

func setDefaults(v *viper.Viper) {
	d := database.DefaultDbOptions
	v.SetDefault("schema", "schema.yaml")
	v.SetDefault("out", "generated")
	v.SetDefault("project_type", "")
	v.SetDefault("db.dialect", string(d.SQLDialect))
	v.SetDefault("db.case_style", string(d.CaseStyle))
	v.SetDefault("db.noun_form", string(d.NounForm))
	v.SetDefault("db.created_at", d.CreatedAtColumn)
	v.SetDefault("db.updated_at", d.UpdatedAtColumn)
	v.SetDefault("db.deleted_at", d.DeletedAtColumn)
	v.SetDefault("required_version", "")
}

// Load reads the configuration. When file is empty, .modelgen.yaml is
// searched in the working directory, the home directory and
// ~/.config/modelgen; a missing file is not an error. Dotenv files are
// applied to the process environment before MODELGEN_* variables are read.
func Load(fs afero.Fs, file string) (*Config, error) {
	if err := loadDotenv(fs, ".env", false); err != nil {
		return nil, err
	}
	if err := loadDotenv(fs, ".env.local", true); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "modelgen"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return &cfg, nil
}

// loadDotenv applies name to the environment. Existing variables win
// unless override is set.
func loadDotenv(fs afero.Fs, name string, override bool) error {
	f, err := fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	for k, val := range vars {
		if _, set := os.LookupEnv(k); set && !override {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// DbOptions parses the db section. Empty values take the defaults.
func (c *Config) DbOptions() (database.DbOptions, error) {
	opts := database.DbOptions{
		CreatedAtColumn: c.DB.CreatedAt,
		UpdatedAtColumn: c.DB.UpdatedAt,
		DeletedAtColumn: c.DB.DeletedAt,
	}
	var err error
	if c.DB.Dialect != "" {
		if opts.SQLDialect, err = database.ParseSQLDialect(c.DB.Dialect); err != nil {
			return database.DbOptions{}, fmt.Errorf("db.dialect: %w", err)
		}
	}
	if c.DB.CaseStyle != "" {
		if opts.CaseStyle, err = database.ParseCaseStyle(c.DB.CaseStyle); err != nil {
			return database.DbOptions{}, fmt.Errorf("db.case_style: %w", err)
		}
	}
	if c.DB.NounForm != "" {
		if opts.NounForm, err = database.ParseNounForm(c.DB.NounForm); err != nil {
			return database.DbOptions{}, fmt.Errorf("db.noun_form: %w", err)
		}
	}
	return opts.WithDefaults(), nil
}

// CheckVersion fails when current does not satisfy required_version.
func (c *Config) CheckVersion(current string) error {
	if strings.TrimSpace(c.RequiredVersion) == "" {
		return nil
	}
	constraints, err := version.NewConstraint(c.RequiredVersion)
	if err != nil {
		return fmt.Errorf("required_version: %w", err)
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", current, err)
	}
	if !constraints.Check(v) {
		return fmt.Errorf("modelgen %s does not satisfy required_version %q", v, c.RequiredVersion)
	}
	return nil
}
