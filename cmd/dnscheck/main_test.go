package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_RequiresExactlyOneArg(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestRootCmd_RejectsEmptyHostList(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{" , ,"})
	err := cmd.Execute()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "no hostnames")
	}
}
