package config

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadStartConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"shield_config":{"listen_address":"127.0.0.1:9000"}}`), 0o644))

	c, err := LoadStartConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", c.ShieldConfig.ListenAddress)
	assert.Equal(t, "/", c.ShieldConfig.Path)
	assert.Equal(t, 5, c.ShieldConfig.CommandTimeoutSeconds)
	assert.Equal(t, "plugins_config.yaml", c.PluginConfigPath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, path, c.WriteBackPath())

	commented := "{\n\t// where the game connects\n\t\"shield_config\": {\"listen_address\": \"127.0.0.1:9001\"}, /* level */ \"log_level\": \"debug\"\n}"
	require.NoError(t, os.WriteFile(path, []byte(commented), 0o644))
	c, err = LoadStartConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9001", c.ShieldConfig.ListenAddress)
	assert.Equal(t, "debug", c.LogLevel)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err = LoadStartConfig(path)
	assert.Error(t, err)

	_, err = LoadStartConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteBackConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := DefaultStartConfig()
	c.writeBackPath = path
	c.ShieldConfig.ListenAddress = DefaultListenAddress
	WriteBackConfig(&c)

	back, err := LoadStartConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c.ShieldConfig, back.ShieldConfig)
	assert.Equal(t, c.PluginConfigPath, back.PluginConfigPath)
}

func TestLoadPluginSystemConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins_config.yaml")
	doc := `
version: 0.0.0
plugins:
  - name: storage
    file: internal
    configs:
      root: data
  - name: builder
    as: wooden_axe
    file: internal
    require: [storage, cli_interface]
    configs:
      operator: console
      progress_every: 8
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	c, err := LoadPluginSystemConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", c.Version)
	require.Len(t, c.Plugins, 2)
	assert.Equal(t, "wooden_axe", c.Plugins[1].As)
	assert.Equal(t, []string{"storage", "cli_interface"}, c.Plugins[1].Require)

	// plugin configs are handed on as yaml bytes
	raw, err := yaml.Marshal(c.Plugins[1].Configs)
	require.NoError(t, err)
	conf := struct {
		Operator      string `yaml:"operator"`
		ProgressEvery int    `yaml:"progress_every"`
	}{}
	require.NoError(t, yaml.Unmarshal(raw, &conf))
	assert.Equal(t, "console", conf.Operator)
	assert.Equal(t, 8, conf.ProgressEvery)
}

func TestAsk(t *testing.T) {
	out := &bytes.Buffer{}
	got := ask(bufio.NewReader(strings.NewReader("\n\n0.0.0.0:1\n")), out, "> ")
	assert.Equal(t, "0.0.0.0:1", got)
	assert.Equal(t, "> > > ", out.String())

	assert.Equal(t, "", ask(bufio.NewReader(strings.NewReader("")), out, "> "))
}
