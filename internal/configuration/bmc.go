package configuration

import "time"

const (
	BmcTransportDevice   = "device"
	BmcTransportIpmitool = "ipmitool"
)

type BmcConfig struct {
	// Transport used to send raw IPMI commands, one of: device | ipmitool
	Transport string `json:"transport" yaml:"transport"`
	// Device is the path of the OpenIPMI character device
	Device string `json:"device" yaml:"device"`
	// Timeout for a single request/response roundtrip
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// RestoreAutoOnExit hands fan control back to the BMC when
	// the daemon is stopped by a signal
	RestoreAutoOnExit bool `json:"restoreAutoOnExit" yaml:"restoreAutoOnExit"`

	Ipmitool IpmitoolConfig `json:"ipmitool" yaml:"ipmitool"`
}

type IpmitoolConfig struct {
	// Exec is the path to the ipmitool executable
	Exec string `json:"exec" yaml:"exec"`
	// Args are prepended to every "raw" invocation, e.g. to target a remote BMC:
	// ["-I", "lanplus", "-H", "10.0.0.2", "-U", "admin", "-P", "secret"]
	Args []string `json:"args" yaml:"args"`
}
