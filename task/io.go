package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/VincentZyu233/woodenaxe/shield"
)

type EventCallBack struct {
	cbs   map[int]func(ev *Event, cbId int)
	count int
}

type CallBacks struct {
	eventCBS            map[string]*EventCallBack
	onCmdFeedbackTmpCbS map[uuid.UUID]func(resp *CommandResponse)
}

func newCallbacks() *CallBacks {
	return &CallBacks{
		eventCBS:            make(map[string]*EventCallBack),
		onCmdFeedbackTmpCbS: make(map[uuid.UUID]func(resp *CommandResponse)),
	}
}

type TaskIO struct {
	ShieldIO *shield.ShieldIO
	cbs      *CallBacks
	mu       sync.Mutex
	log      logrus.FieldLogger

	Status *HoldedStatus
}

func NewTaskIO(shieldIO *shield.ShieldIO, log logrus.FieldLogger) *TaskIO {
	if log == nil {
		log = logrus.New()
	}
	taskIO := &TaskIO{
		ShieldIO: shieldIO,
		cbs:      newCallbacks(),
		log:      log,
		Status:   newHolder(),
	}
	shieldIO.AddInitCallBack(taskIO.onInit)
	shieldIO.AddSessionTerminateCallBack(taskIO.onSessionTerminate)
	shieldIO.AddNewFrameCallback(taskIO.newFrameFn)
	return taskIO
}

// WaitInit blocks until a game client has connected at least once
func (io *TaskIO) WaitInit() {
	io.Status.Remote()
}

// AddEventCallback subscribes to the named game event.
// The subscription is sent now if a client is connected and again on every reconnect.
func (io *TaskIO) AddEventCallback(eventName string, cb func(ev *Event, cbID int)) int {
	io.mu.Lock()
	eventCBS, ok := io.cbs.eventCBS[eventName]
	if !ok {
		eventCBS = &EventCallBack{cbs: make(map[int]func(ev *Event, id int))}
		io.cbs.eventCBS[eventName] = eventCBS
	}
	c := eventCBS.count + 1
	_, hasK := eventCBS.cbs[c]
	for hasK {
		c += 1
		_, hasK = eventCBS.cbs[c]
	}
	eventCBS.count = c
	eventCBS.cbs[c] = cb
	io.mu.Unlock()

	if !ok && io.ShieldIO.Connected() {
		if err := io.subscribe(eventName); err != nil {
			io.log.WithError(err).Warnf("subscribe %v failed", eventName)
		}
	}
	return c
}

func (io *TaskIO) RemoveEventCallback(eventName string, callBackID int) bool {
	io.mu.Lock()
	defer io.mu.Unlock()
	eventCBS, ok := io.cbs.eventCBS[eventName]
	if ok {
		delete(eventCBS.cbs, callBackID)
	}
	return ok
}

func (io *TaskIO) subscribedEvents() []string {
	io.mu.Lock()
	defer io.mu.Unlock()
	names := make([]string, 0, len(io.cbs.eventCBS))
	for name := range io.cbs.eventCBS {
		names = append(names, name)
	}
	return names
}

func (io *TaskIO) activateEventCallbacks(ev *Event) {
	io.mu.Lock()
	eventCBS, ok := io.cbs.eventCBS[ev.Name]
	if !ok {
		io.mu.Unlock()
		return
	}
	ids := make([]int, 0, len(eventCBS.cbs))
	fns := make([]func(*Event, int), 0, len(eventCBS.cbs))
	for id, cb := range eventCBS.cbs {
		ids = append(ids, id)
		fns = append(fns, cb)
	}
	io.mu.Unlock()
	for i, cb := range fns {
		cb(ev, ids[i])
	}
}

func (io *TaskIO) addCmdFeedbackCallback(id uuid.UUID, cb func(resp *CommandResponse)) {
	io.mu.Lock()
	defer io.mu.Unlock()
	io.cbs.onCmdFeedbackTmpCbS[id] = cb
}

func (io *TaskIO) takeCmdFeedbackCallback(id uuid.UUID) (func(resp *CommandResponse), bool) {
	io.mu.Lock()
	defer io.mu.Unlock()
	cb, ok := io.cbs.onCmdFeedbackTmpCbS[id]
	if ok {
		delete(io.cbs.onCmdFeedbackTmpCbS, id)
	}
	return cb, ok
}

// schedule
func (io *TaskIO) DelayExec(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
