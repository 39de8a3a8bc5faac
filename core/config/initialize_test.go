package config

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("LoadConfigFile", func(t *testing.T) {
		byFile, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
		assert.Equal(t, cfg.Prompt, byFile.Prompt)
	})

	t.Run("OpenEventLog", func(t *testing.T) {
		fd, err := cfg.OpenEventLog()
		assert.Nil(t, err)
		fd.Close()

		_, err = os.Stat(filepath.Join(tempDir, cfg.EventLog))
		assert.Nil(t, err)
	})

	t.Run("ReadEventLog", func(t *testing.T) {
		fd, err := cfg.ReadEventLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("NoOverwrite", func(t *testing.T) {
		path := filepath.Join(tempDir, ConfigurationName)
		custom := []byte("prompt: \"$ \"\nbanner: false\nmax_line_length: 10\nevent_log: \"\"\ncompile:\n  command: cc {source}\n  output: a.out\n")
		assert.Nil(t, ioutil.WriteFile(path, custom, 0644))

		reinit, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0))
		assert.Nil(t, err)
		assert.Equal(t, "$ ", reinit.Prompt)
		assert.Equal(t, 10, reinit.MaxLineLength)
	})
}

func TestLoadOrDefault(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := LoadOrDefault(tempDir, log.New(ioutil.Discard, "", 0))
	assert.Nil(t, err)
	assert.Equal(t, defaultConfig().Prompt, cfg.Prompt)
	assert.Empty(t, cfg.EventLog)

	fd, err := cfg.OpenEventLog()
	assert.Nil(t, err)
	assert.Nil(t, fd)
}

func TestLoadInvalid(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, ConfigurationName)

	t.Run("unknown field", func(t *testing.T) {
		assert.Nil(t, ioutil.WriteFile(path, []byte("not_a_field: 1\n"), 0644))
		_, err := Load(tempDir)
		assert.NotNil(t, err)
	})

	t.Run("fails validation", func(t *testing.T) {
		assert.Nil(t, ioutil.WriteFile(path, []byte("max_line_length: -1\ncompile:\n  command: gcc\n  output: a.out\n"), 0644))
		_, err := Load(tempDir)
		assert.NotNil(t, err)
	})
}
