package shield

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
)

var ErrNotConnected = errors.New("shield: no game client connected")

type ShieldIO struct {
	newFrameCBCount           int
	newFrameCallbacks         map[int]func(f *Frame)
	initCallBacks             []func(remote string)
	sessionTerminateCallBacks []func()
	cbMu                      sync.RWMutex

	sendMu    sync.Mutex
	session   *session
	connected atomic.Bool
}

// session is the write side of one live connection
type session struct {
	remote string
	out    chan []*Frame
	done   chan struct{}
}

func newShieldIO() *ShieldIO {
	return &ShieldIO{
		newFrameCallbacks:         make(map[int]func(f *Frame)),
		initCallBacks:             make([]func(remote string), 0),
		sessionTerminateCallBacks: make([]func(), 0),
	}
}

func (io *ShieldIO) Connected() bool {
	return io.connected.Load()
}

func (io *ShieldIO) AddNewFrameCallback(cb func(f *Frame)) int {
	io.cbMu.Lock()
	defer io.cbMu.Unlock()
	io.newFrameCBCount += 1
	io.newFrameCallbacks[io.newFrameCBCount] = cb
	return io.newFrameCBCount
}

func (io *ShieldIO) RemoveFrameCallback(id int) error {
	io.cbMu.Lock()
	defer io.cbMu.Unlock()
	if _, ok := io.newFrameCallbacks[id]; !ok {
		return fmt.Errorf("do not have such new frame callback ID (%v) to remove", id)
	}
	delete(io.newFrameCallbacks, id)
	return nil
}

func (io *ShieldIO) AddInitCallBack(cb func(remote string)) {
	io.cbMu.Lock()
	defer io.cbMu.Unlock()
	io.initCallBacks = append(io.initCallBacks, cb)
}

func (io *ShieldIO) AddSessionTerminateCallBack(cb func()) {
	io.cbMu.Lock()
	defer io.cbMu.Unlock()
	io.sessionTerminateCallBacks = append(io.sessionTerminateCallBacks, cb)
}

// SendFrames queues frames as one group; a group is never interleaved with another
func (io *ShieldIO) SendFrames(frames ...*Frame) error {
	io.sendMu.Lock()
	s := io.session
	io.sendMu.Unlock()
	if s == nil {
		return ErrNotConnected
	}
	select {
	case s.out <- frames:
		return nil
	case <-s.done:
		return ErrNotConnected
	}
}

func (io *ShieldIO) SendFrame(f *Frame) error {
	return io.SendFrames(f)
}

// claim reserves the single session slot, false if it is already taken
func (io *ShieldIO) claim() bool {
	return io.connected.CompareAndSwap(false, true)
}

// release frees a slot claimed for a connection that never attached
func (io *ShieldIO) release() {
	io.connected.Store(false)
}

func (io *ShieldIO) attach(s *session) {
	io.sendMu.Lock()
	io.session = s
	io.sendMu.Unlock()

	io.cbMu.RLock()
	cbs := append([]func(string){}, io.initCallBacks...)
	io.cbMu.RUnlock()
	for _, cb := range cbs {
		cb(s.remote)
	}
}

func (io *ShieldIO) detach(s *session) {
	io.sendMu.Lock()
	current := io.session == s
	if current {
		io.session = nil
	}
	io.sendMu.Unlock()
	if !current {
		return
	}
	io.connected.Store(false)

	io.cbMu.RLock()
	cbs := append([]func(){}, io.sessionTerminateCallBacks...)
	io.cbMu.RUnlock()
	for _, cb := range cbs {
		cb()
	}
}

func (io *ShieldIO) dispatch(f *Frame) {
	io.cbMu.RLock()
	cbs := make([]func(*Frame), 0, len(io.newFrameCallbacks))
	for _, cb := range io.newFrameCallbacks {
		cbs = append(cbs, cb)
	}
	io.cbMu.RUnlock()
	for _, cb := range cbs {
		cb(f)
	}
}

type ShieldConfig struct {
	ListenAddress         string `json:"listen_address"`
	Path                  string `json:"ws_path"`
	MaxDelaySeconds       int    `json:"max_delay_seconds"`
	CommandTimeoutSeconds int    `json:"command_timeout_seconds"`
}

func (c *ShieldConfig) CommandTimeout() time.Duration {
	if c.CommandTimeoutSeconds < 1 {
		return 5 * time.Second
	}
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}
