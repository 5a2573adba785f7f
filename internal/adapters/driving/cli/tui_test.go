package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "health check")
}

func TestTUICmd_RequiresQuizFactory(t *testing.T) {
	SetServices(Services{})

	_, err := execute("tui")

	assert.ErrorIs(t, err, errQuizNotConfigured)
}

func TestTUICmd_RejectsArgs(t *testing.T) {
	_, err := execute("tui", "extra")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
