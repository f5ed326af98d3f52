package ipmi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

type invocation struct {
	executable string
	args       []string
	timeout    time.Duration
}

func fakeRunner(out string, err error, invocations *[]invocation) commandRunner {
	return func(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
		*invocations = append(*invocations, invocation{executable, args, timeout})
		return out, err
	}
}

func TestIpmitoolRawArguments(t *testing.T) {
	// GIVEN
	var invocations []invocation
	tool := &Ipmitool{
		exec:    "/usr/bin/ipmitool",
		args:    []string{"-I", "lanplus", "-H", "10.0.0.2"},
		timeout: 3 * time.Second,
		run:     fakeRunner("", nil, &invocations),
	}

	// WHEN
	response, err := tool.Raw(context.Background(), 0x30, 0x30, []byte{0x02, 0xff, 0x2b})

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, response)
	assert.Equal(t, []invocation{{
		executable: "/usr/bin/ipmitool",
		args:       []string{"-I", "lanplus", "-H", "10.0.0.2", "raw", "0x30", "0x30", "0x02", "0xff", "0x2b"},
		timeout:    3 * time.Second,
	}}, invocations)
	// configured args must not be modified
	assert.Equal(t, []string{"-I", "lanplus", "-H", "10.0.0.2"}, tool.args)
}

func TestIpmitoolRawParsesResponse(t *testing.T) {
	// GIVEN
	var invocations []invocation
	tool := &Ipmitool{
		exec: "/usr/bin/ipmitool",
		run:  fakeRunner(" 20 01 03 03 02 bf 7c 2a 00 0b 09\n 00 00 00 00", nil, &invocations),
	}

	// WHEN
	response, err := tool.Raw(context.Background(), 0x06, 0x01, nil)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x20, 0x01, 0x03, 0x03, 0x02, 0xbf, 0x7c, 0x2a, 0x00, 0x0b, 0x09, 0, 0, 0, 0}, response)
}

func TestIpmitoolRawInvalidOutput(t *testing.T) {
	// GIVEN
	var invocations []invocation
	tool := &Ipmitool{
		exec: "/usr/bin/ipmitool",
		run:  fakeRunner("Could not open device", nil, &invocations),
	}

	// WHEN
	_, err := tool.Raw(context.Background(), 0x30, 0x45, []byte{0x00})

	// THEN
	assert.ErrorContains(t, err, "unexpected ipmitool output")
}

func TestIpmitoolRawCompletionCode(t *testing.T) {
	// GIVEN
	var invocations []invocation
	runErr := errors.New("exit status 1: Unable to send RAW command (channel=0x0 netfn=0x30 lun=0x0 cmd=0x30 rsp=0xc1): Invalid command")
	tool := &Ipmitool{
		exec: "/usr/bin/ipmitool",
		run:  fakeRunner("", runErr, &invocations),
	}

	// WHEN
	_, err := tool.Raw(context.Background(), 0x30, 0x30, []byte{0x01, 0x00})

	// THEN
	var codeErr *CompletionCodeError
	assert.ErrorAs(t, err, &codeErr)
	assert.Equal(t, byte(0xc1), codeErr.Code)
}

func TestIpmitoolRawExecutionError(t *testing.T) {
	// GIVEN
	var invocations []invocation
	runErr := errors.New("command timed out after 5s: /usr/bin/ipmitool")
	tool := &Ipmitool{
		exec: "/usr/bin/ipmitool",
		run:  fakeRunner("", runErr, &invocations),
	}

	// WHEN
	_, err := tool.Raw(context.Background(), 0x06, 0x01, nil)

	// THEN
	assert.ErrorIs(t, err, runErr)
	assert.ErrorContains(t, err, "ipmitool raw 0x06 0x01")
}

func TestOpenIpmitoolMissingExecutable(t *testing.T) {
	// GIVEN
	config := configuration.IpmitoolConfig{Exec: "/this/path/does/not/exist/ipmitool"}

	// WHEN
	_, err := OpenIpmitool(config, time.Second)

	// THEN
	assert.ErrorContains(t, err, "ipmitool executable not found")
}

func TestParseCompletionCode(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		code     byte
		expected bool
	}{
		{"invalid command", "Unable to send RAW command (channel=0x0 netfn=0x30 lun=0x0 cmd=0x30 rsp=0xc1): Invalid command", 0xc1, true},
		{"single digit", "rsp=0xd", 0x0d, true},
		{"no code", "Error: Unable to establish IPMI v2 / RMCP+ session", 0, false},
		{"zero code", "rsp=0x00", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := parseCompletionCode(tt.message)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}
