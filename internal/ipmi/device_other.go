//go:build !linux

package ipmi

import (
	"context"
	"errors"
	"time"
)

var errDeviceUnsupported = errors.New("the OpenIPMI device transport is only available on linux, use the ipmitool transport instead")

// Device is not available on this platform
type Device struct{}

func OpenDevice(path string, timeout time.Duration) (*Device, error) {
	return nil, errDeviceUnsupported
}

func (d *Device) Raw(ctx context.Context, netFn byte, cmd byte, data []byte) ([]byte, error) {
	return nil, errDeviceUnsupported
}

func (d *Device) Close() error {
	return nil
}
