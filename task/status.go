package task

import "sync"

type statusWaiter struct {
	once   sync.Once
	waiter chan struct{}
}

func (w *statusWaiter) wait() {
	<-w.waiter
}

func (w *statusWaiter) init() {
	w.once.Do(func() { close(w.waiter) })
}

func newWaitor() *statusWaiter {
	return &statusWaiter{waiter: make(chan struct{})}
}

type HoldedStatus struct {
	mu           sync.Mutex
	remoteWaiter *statusWaiter
	remote       string
	sessions     int
}

func newHolder() *HoldedStatus {
	return &HoldedStatus{remoteWaiter: newWaitor()}
}

func (s *HoldedStatus) setRemote(remote string) {
	s.mu.Lock()
	s.remote = remote
	s.sessions++
	s.mu.Unlock()
	s.remoteWaiter.init()
}

// Remote waits for the first session and returns the address of the latest one
func (s *HoldedStatus) Remote() string {
	s.remoteWaiter.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}

func (s *HoldedStatus) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions
}
