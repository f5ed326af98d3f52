//go:build linux

package ipmi

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestIoctlRequestNumbers(t *testing.T) {
	if runtime.GOARCH != "amd64" && runtime.GOARCH != "arm64" {
		t.Skip("reference values are for 64 bit platforms")
	}

	// THEN
	assert.Equal(t, uintptr(16), unsafe.Sizeof(ipmiMsg{}))
	assert.Equal(t, uintptr(40), unsafe.Sizeof(ipmiReq{}))
	assert.Equal(t, uintptr(48), unsafe.Sizeof(ipmiRecv{}))
	assert.Equal(t, uintptr(8), unsafe.Sizeof(systemInterfaceAddr{}))
	assert.Equal(t, uintptr(0x8028690d), ipmictlSendCommand)
	assert.Equal(t, uintptr(0xc030690b), ipmictlReceiveMsgTrunc)
}
