//go:build linux

package ipmi

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	ipmiIocMagic = 'i'

	// IPMI_SYSTEM_INTERFACE_ADDR_TYPE
	systemInterfaceAddrType = 0x0c
	// IPMI_BMC_CHANNEL
	bmcChannel = 0x0f

	// IPMI_MAX_MSG_LENGTH
	maxMessageLength = 272

	pollSlice = 100 * time.Millisecond
)

// struct ipmi_msg
type ipmiMsg struct {
	netFn   byte
	cmd     byte
	dataLen uint16
	data    unsafe.Pointer
}

// struct ipmi_system_interface_addr
type systemInterfaceAddr struct {
	addrType int32
	channel  int16
	lun      byte
	_        byte
}

// struct ipmi_req
type ipmiReq struct {
	addr    unsafe.Pointer
	addrLen uint32
	msgID   int
	msg     ipmiMsg
}

// struct ipmi_recv
type ipmiRecv struct {
	recvType int32
	addr     unsafe.Pointer
	addrLen  uint32
	msgID    int
	msg      ipmiMsg
}

var (
	ipmictlSendCommand     = ioc(2, ipmiIocMagic, 13, unsafe.Sizeof(ipmiReq{}))
	ipmictlReceiveMsgTrunc = ioc(3, ipmiIocMagic, 11, unsafe.Sizeof(ipmiRecv{}))
)

// ioc mirrors the _IOC macro of linux/ioctl.h
func ioc(dir uintptr, t uintptr, nr uintptr, size uintptr) uintptr {
	return dir<<30 | size<<16 | t<<8 | nr
}

// Device talks to the local BMC through the OpenIPMI character device
type Device struct {
	path    string
	fd      int
	timeout time.Duration
	msgID   int
}

// OpenDevice opens the OpenIPMI character device at path, e.g. /dev/ipmi0
func OpenDevice(path string, timeout time.Duration) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	return &Device{
		path:    path,
		fd:      fd,
		timeout: timeout,
	}, nil
}

func (d *Device) Raw(ctx context.Context, netFn byte, cmd byte, data []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	d.msgID++
	msgID := d.msgID
	if err := d.send(msgID, netFn, cmd, data); err != nil {
		return nil, fmt.Errorf("%s: send %s: %w", d.path, FormatRequest(netFn, cmd, data), err)
	}

	for {
		if err := d.await(ctx); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", d.path, FormatRequest(netFn, cmd, data), err)
		}
		id, message, err := d.receive()
		if err != nil {
			return nil, fmt.Errorf("%s: receive: %w", d.path, err)
		}
		response, ok, err := decodeResponse(msgID, id, message)
		if !ok {
			// stale response of an earlier request that timed out
			continue
		}
		if errors.Is(err, errEmptyResponse) {
			return nil, fmt.Errorf("%s: %w to %s", d.path, err, FormatRequest(netFn, cmd, data))
		}
		return response, err
	}
}

func (d *Device) send(msgID int, netFn byte, cmd byte, data []byte) error {
	addr := &systemInterfaceAddr{
		addrType: systemInterfaceAddrType,
		channel:  bmcChannel,
	}
	payload := make([]byte, len(data)+1)
	copy(payload, data)

	req := &ipmiReq{
		addr:    unsafe.Pointer(addr),
		addrLen: uint32(unsafe.Sizeof(*addr)),
		msgID:   msgID,
		msg: ipmiMsg{
			netFn:   netFn,
			cmd:     cmd,
			dataLen: uint16(len(data)),
			data:    unsafe.Pointer(&payload[0]),
		},
	}
	err := ioctl(d.fd, ipmictlSendCommand, unsafe.Pointer(req))
	runtime.KeepAlive(addr)
	runtime.KeepAlive(payload)
	return err
}

func (d *Device) receive() (int, []byte, error) {
	addr := &systemInterfaceAddr{}
	buffer := make([]byte, maxMessageLength)
	recv := &ipmiRecv{
		addr:    unsafe.Pointer(addr),
		addrLen: uint32(unsafe.Sizeof(*addr)),
		msg: ipmiMsg{
			dataLen: uint16(len(buffer)),
			data:    unsafe.Pointer(&buffer[0]),
		},
	}
	for {
		err := ioctl(d.fd, ipmictlReceiveMsgTrunc, unsafe.Pointer(recv))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		runtime.KeepAlive(addr)
		runtime.KeepAlive(buffer)
		if err != nil && !errors.Is(err, unix.EMSGSIZE) {
			return 0, nil, err
		}
		break
	}

	length := min(int(recv.msg.dataLen), len(buffer))
	response := make([]byte, length)
	copy(response, buffer[:length])
	return recv.msgID, response, nil
}

// await blocks until a response can be read from the device, ctx is done or the deadline expires
func (d *Device) await(ctx context.Context) error {
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("no response: %w", err)
		}
		wait := pollSlice
		if deadline, ok := ctx.Deadline(); ok {
			wait = min(wait, time.Until(deadline))
		}
		n, err := unix.Poll(fds, int(max(wait.Milliseconds(), 1)))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
}

func (d *Device) Close() error {
	return unix.Close(d.fd)
}

func ioctl(fd int, request uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), request, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
