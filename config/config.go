package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

var DefaultLocalPath = ".cmdline"
var DefaultLocalHCLPath = ".cmdline.hcl"
var DefaultSystemPath = "/etc/cmdline/config.hcl"

// Config holds settings shared by every cmdline invocation. Defaults maps a
// flag name to the value used when the flag is absent. Stack, Stage and App
// name the service whose remote defaults are read when DefaultsFrom is "ssm"
// or "secrets".
type Config struct {
	Stack        string `json:"stack,omitempty" hcl:"stack,optional"`
	Stage        string `json:"stage,omitempty" hcl:"stage,optional"`
	App          string `json:"app,omitempty" hcl:"app,optional"`
	DefaultsFrom string `json:"defaultsFrom,omitempty" hcl:"defaults_from,optional"`

	Debug         bool              `json:"debug,omitempty" hcl:"debug,optional"`
	WarnOnDefault bool              `json:"warnOnDefault,omitempty" hcl:"warn_on_default,optional"`
	Defaults      map[string]string `json:"defaults,omitempty" hcl:"defaults,optional"`
}

// File is an open config file. The path decides the syntax: ".hcl" files are
// HCL, anything else is JSON.
type File struct {
	Path string
	io.ReadCloser
}

func (c *Config) Unmarshal(path string, data []byte) error {
	if filepath.Ext(path) == ".hcl" {
		return hclsimple.Decode(path, data, nil, c)
	}
	return json.Unmarshal(data, c)
}

func (c Config) Default(name string) (string, bool) {
	v, ok := c.Defaults[name]
	return v, ok
}

// Merge combines configs left to right. Later non-empty strings win, switches
// are on if any config turns them on, and defaults merge key by key.
func Merge(configs ...Config) Config {
	var out Config

	for _, config := range configs {
		if config.App != "" {
			out.App = config.App
		}
		if config.Stack != "" {
			out.Stack = config.Stack
		}
		if config.Stage != "" {
			out.Stage = config.Stage
		}
		if config.DefaultsFrom != "" {
			out.DefaultsFrom = config.DefaultsFrom
		}
		out.Debug = out.Debug || config.Debug
		out.WarnOnDefault = out.WarnOnDefault || config.WarnOnDefault

		for k, v := range config.Defaults {
			if out.Defaults == nil {
				out.Defaults = map[string]string{}
			}
			out.Defaults[k] = v
		}
	}

	return out
}

func DefaultFiles() []File {
	paths := []string{DefaultLocalPath, DefaultLocalHCLPath, DefaultSystemPath}
	files := []File{}

	for _, path := range paths {
		file, err := os.Open(path)
		if err == nil {
			files = append(files, File{Path: path, ReadCloser: file})
		}
	}

	return files
}

// Reads any file configs and merges with passed arg values. When both present,
// the arg value is preferred. Only the first file that contains config data is
// used.
func Read(argConfig Config, files ...File) (Config, error) {
	fileConfig := Config{}

	for _, f := range files {
		defer f.Close()
		data, err := io.ReadAll(f)
		if err == nil {
			err = fileConfig.Unmarshal(f.Path, data)
			if err != nil {
				return fileConfig, fmt.Errorf("unable to parse %s: %w", f.Path, err)
			}

			break
		}
	}

	return Merge(fileConfig, argConfig), nil
}

func Write(config Config) error {
	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal JSON: %w", err)
	}

	err = os.WriteFile(DefaultLocalPath, out, 0644)
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}
