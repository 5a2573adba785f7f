package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrMissingQuizFactory(t *testing.T) {
	assert.Contains(t, ErrMissingQuizFactory.Error(), "quiz factory")
}
