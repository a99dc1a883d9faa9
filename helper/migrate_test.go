package helper_test

import (
	"testing"

	"parkflow/config"
	"parkflow/helper"

	"github.com/stretchr/testify/assert"
)

func TestActions(t *testing.T) {
	for _, action := range []string{"up", "down", "drop", "step-up"} {
		assert.Contains(t, helper.Actions, action)
	}
}

func TestRunnerRejectsUnknownAction(t *testing.T) {
	err := helper.Runner(&config.Config{}, "sideways")

	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}
