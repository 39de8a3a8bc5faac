package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

type Configuration struct {
	configFs afero.Fs

	Prompt        string  `json:"prompt"`
	Banner        bool    `json:"banner"`
	MaxLineLength int     `json:"max_line_length" validate:"gt=0"`
	EventLog      string  `json:"event_log"`
	Compile       Compile `json:"compile"`
}

// Compile configures the compile builtin.
type Compile struct {
	// Command is split into words like a shell would, then {source} and
	// {output} are substituted in each word.
	Command string `json:"command" validate:"required"`
	// Output is the path of the produced binary.
	Output string `json:"output" validate:"required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// OpenEventLog opens the event log in an append only state. It returns
// (nil, nil) if event logging is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, os.ErrNotExist
	}
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration rooted at dir. Event logging
// is off until a configuration file asks for it, so a bare run leaves no
// files behind.
func Default(dir string) *Configuration {
	out := defaultConfig()
	out.EventLog = ""
	out.configFs = afero.NewBasePathFs(afero.NewOsFs(), dir)
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

func configDir(path string) string {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		return filepath.Dir(path)
	}
	return path
}
