package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hamed0406/opscheck/internal/config"
)

func TestRun_FailsWithoutCredentials(t *testing.T) {
	cfg := config.FromEnv()
	cfg.GenieKey = ""
	assert.False(t, run(cfg))
}

func TestRun_PassesWithCompleteConfig(t *testing.T) {
	cfg := config.FromEnv()
	cfg.GenieKey = "g"
	cfg.MailgunKey = "m"
	cfg.MailgunDomain = "mg.example.com"
	cfg.Recipients = []string{"ops@example.com"}
	cfg.NodeIP = "10.0.0.1"
	assert.True(t, run(cfg))
}
