// Package config loads the per-project settings of the release workflow.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// FileName is the project-level configuration file.
	FileName = "jvdl-local-publish.json"
	// Section is the top-level key holding local-publish settings.
	Section = "local-publish"
	// EnvPrefix prefixes environment overrides, e.g. JVDL_LOCAL_PUBLISH_DEPLOY.
	EnvPrefix = "JVDL"
)

// LocalPublish configures `jvdl local-publish`.
type LocalPublish struct {
	BuildScript      string
	TestScript       string
	StorybookScript  string
	DeployCommand    string
	EnableNpmPublish bool
	Branch           string
	Remote           string
}

func key(name string) string { return Section + "." + name }

// LoadLocalPublish reads FileName from dir. A missing file yields the
// defaults: build and test scripts "build" and "test", branch "main",
// remote "origin", no storybook, no deploy and no publish.
func LoadLocalPublish(dir string) (LocalPublish, error) {
	v := viper.New()
	v.SetDefault(key("npm-build"), "build")
	v.SetDefault(key("npm-test"), "test")
	v.SetDefault(key("npm-build-storybook"), "")
	v.SetDefault(key("deploy"), "")
	v.SetDefault(key("enable-npm-publish"), false)
	v.SetDefault(key("branch"), "main")
	v.SetDefault(key("remote"), "origin")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return LocalPublish{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return LocalPublish{}, fmt.Errorf("failed to stat config file: %w", err)
	}

	cfg := LocalPublish{
		BuildScript:      v.GetString(key("npm-build")),
		TestScript:       v.GetString(key("npm-test")),
		StorybookScript:  v.GetString(key("npm-build-storybook")),
		DeployCommand:    v.GetString(key("deploy")),
		EnableNpmPublish: v.GetBool(key("enable-npm-publish")),
		Branch:           v.GetString(key("branch")),
		Remote:           v.GetString(key("remote")),
	}
	if err := cfg.Validate(); err != nil {
		return LocalPublish{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks required settings.
func (c LocalPublish) Validate() error {
	if c.BuildScript == "" {
		return errors.New("npm-build cannot be empty")
	}
	if c.TestScript == "" {
		return errors.New("npm-test cannot be empty")
	}
	if c.Branch == "" {
		return errors.New("branch cannot be empty")
	}
	if c.Remote == "" {
		return errors.New("remote cannot be empty")
	}
	return nil
}
