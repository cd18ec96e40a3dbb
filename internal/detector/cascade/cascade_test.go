package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "haarcascade_frontalface_default.xml", cfg.CascadePath)
	assert.Equal(t, 1.1, cfg.ScaleFactor)
	assert.Equal(t, 5, cfg.MinNeighbors)
	assert.Equal(t, 30, cfg.MinSize)
}

func TestNew_MissingCascadeFile(t *testing.T) {
	_, err := New(Config{
		CascadePath: "testdata/does-not-exist.xml",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cascade file not found")
}
