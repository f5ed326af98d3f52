package util

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func getEchoPath() string {
	// unlikely to fail
	p, _ := exec.LookPath("echo")
	return p
}

func TestSafeCmdExecution(t *testing.T) {
	// GIVEN
	executable := getEchoPath()
	args := []string{"0x11 0x22"}

	// WHEN
	result, err := SafeCmdExecution(context.Background(), executable, args, 2*time.Second)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "0x11 0x22", result)
}

func TestSafeCmdExecutionMissingExecutable(t *testing.T) {
	// GIVEN
	executable := "/this/does/not/exist"

	// WHEN
	_, err := SafeCmdExecution(context.Background(), executable, nil, 2*time.Second)

	// THEN
	assert.Error(t, err)
}
