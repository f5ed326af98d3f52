package ipmi

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/util"
)

// ipmitool reports rejected requests like:
// "Unable to send RAW command (channel=0x0 netfn=0x30 lun=0x0 cmd=0x30 rsp=0xc1): Invalid command"
var completionCodeRegex = regexp.MustCompile(`rsp=0x([0-9a-fA-F]{1,2})`)

type commandRunner func(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error)

// Ipmitool sends raw requests by invoking "ipmitool raw". Unlike Device this
// also allows targeting a remote BMC, using the configured arguments.
type Ipmitool struct {
	exec    string
	args    []string
	timeout time.Duration
	run     commandRunner
}

// OpenIpmitool resolves the configured ipmitool executable
func OpenIpmitool(config configuration.IpmitoolConfig, timeout time.Duration) (*Ipmitool, error) {
	path, err := exec.LookPath(config.Exec)
	if err != nil {
		return nil, fmt.Errorf("ipmitool executable not found: %w", err)
	}
	return &Ipmitool{
		exec:    path,
		args:    config.Args,
		timeout: timeout,
		run:     util.SafeCmdExecution,
	}, nil
}

func (t *Ipmitool) Raw(ctx context.Context, netFn byte, cmd byte, data []byte) ([]byte, error) {
	args := append([]string{}, t.args...)
	args = append(args, "raw")
	args = append(args, rawArgs(netFn, cmd, data)...)

	out, err := t.run(ctx, t.exec, args, t.timeout)
	if err != nil {
		if code, ok := parseCompletionCode(err.Error()); ok {
			return nil, &CompletionCodeError{Code: code}
		}
		return nil, fmt.Errorf("ipmitool raw %s: %w", FormatRequest(netFn, cmd, data), err)
	}
	return parseRawOutput(out)
}

func (t *Ipmitool) Close() error {
	return nil
}

// parseRawOutput parses the hex bytes printed by "ipmitool raw", which may span multiple lines
func parseRawOutput(out string) ([]byte, error) {
	fields := strings.Fields(out)
	result := make([]byte, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseUint(field, 16, 8)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("unexpected ipmitool output: %q", out), err)
		}
		result = append(result, byte(value))
	}
	return result, nil
}

func parseCompletionCode(message string) (byte, bool) {
	match := completionCodeRegex.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseUint(match[1], 16, 8)
	if err != nil || value == 0 {
		return 0, false
	}
	return byte(value), true
}
