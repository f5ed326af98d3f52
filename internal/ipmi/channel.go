package ipmi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/ipmi2go/internal/configuration"
)

// Channel is an exclusively owned connection to a BMC accepting raw IPMI requests.
// The returned bytes are the response data without the completion code.
type Channel interface {
	Raw(ctx context.Context, netFn byte, cmd byte, data []byte) ([]byte, error)
	Close() error
}

var completionCodes = map[byte]string{
	0xc0: "node busy",
	0xc1: "invalid command",
	0xc2: "invalid command for given lun",
	0xc3: "timeout while processing command",
	0xc4: "out of space",
	0xc5: "reservation canceled or invalid",
	0xc6: "request data truncated",
	0xc7: "request data length invalid",
	0xc8: "request data field length limit exceeded",
	0xc9: "parameter out of range",
	0xca: "cannot return number of requested data bytes",
	0xcb: "requested sensor, data, or record not present",
	0xcc: "invalid data field in request",
	0xcd: "command illegal for specified sensor or record type",
	0xce: "command response could not be provided",
	0xcf: "cannot execute duplicated request",
	0xd0: "sdr repository in update mode",
	0xd1: "device in firmware update mode",
	0xd2: "bmc initialization in progress",
	0xd3: "destination unavailable",
	0xd4: "insufficient privilege level",
	0xd5: "command not supported in present state",
	0xd6: "command sub-function has been disabled or is unavailable",
	0xff: "unspecified error",
}

// CompletionCodeError is returned when the BMC answered a request
// with a non-zero completion code.
type CompletionCodeError struct {
	Code byte
}

func (e *CompletionCodeError) Error() string {
	description, ok := completionCodes[e.Code]
	if !ok {
		description = "unknown completion code"
	}
	return fmt.Sprintf("completion code 0x%02x: %s", e.Code, description)
}

var errEmptyResponse = errors.New("empty response")

// decodeResponse checks a message received in reply to the request with the
// given msgID and strips the completion code. ok is false if the message
// belongs to another (earlier) request.
func decodeResponse(msgID int, receivedID int, message []byte) (data []byte, ok bool, err error) {
	if receivedID != msgID {
		return nil, false, nil
	}
	if len(message) == 0 {
		return nil, true, errEmptyResponse
	}
	if message[0] != 0 {
		return nil, true, &CompletionCodeError{Code: message[0]}
	}
	return message[1:], true, nil
}

// FormatRequest renders a raw request the way ipmitool accepts it, e.g. "0x30 0x30 0x02 0xff 0x2a"
func FormatRequest(netFn byte, cmd byte, data []byte) string {
	return strings.Join(rawArgs(netFn, cmd, data), " ")
}

// FormatResponse renders response bytes as space separated hex
func FormatResponse(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

func rawArgs(netFn byte, cmd byte, data []byte) []string {
	result := []string{fmt.Sprintf("0x%02x", netFn), fmt.Sprintf("0x%02x", cmd)}
	for _, b := range data {
		result = append(result, fmt.Sprintf("0x%02x", b))
	}
	return result
}

// Open creates the Channel configured by the given BmcConfig
func Open(config configuration.BmcConfig) (Channel, error) {
	switch config.Transport {
	case configuration.BmcTransportDevice:
		device, err := OpenDevice(config.Device, config.Timeout)
		if err != nil {
			return nil, err
		}
		return device, nil
	case configuration.BmcTransportIpmitool:
		tool, err := OpenIpmitool(config.Ipmitool, config.Timeout)
		if err != nil {
			return nil, err
		}
		return tool, nil
	default:
		return nil, fmt.Errorf("unsupported bmc transport: %s", config.Transport)
	}
}
