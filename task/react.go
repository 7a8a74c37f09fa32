package task

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/VincentZyu233/woodenaxe/shield"
)

func (taskIO *TaskIO) onInit(remote string) {
	taskIO.log.Info("Reactor: Start OnInit Tasks")
	taskIO.Status.setRemote(remote)
	for _, name := range taskIO.subscribedEvents() {
		if err := taskIO.subscribe(name); err != nil {
			taskIO.log.WithError(err).Warnf("Reactor: subscribe %v failed", name)
		}
	}
}

func (taskIO *TaskIO) onSessionTerminate() {
	taskIO.log.Info("Reactor: Find Session Terminated")
	taskIO.mu.Lock()
	pending := taskIO.cbs.onCmdFeedbackTmpCbS
	taskIO.cbs.onCmdFeedbackTmpCbS = make(map[uuid.UUID]func(resp *CommandResponse))
	taskIO.mu.Unlock()
	for _, cb := range pending {
		cb(&CommandResponse{StatusCode: StatusSessionLost, StatusMessage: "session terminated"})
	}
}

func (taskIO *TaskIO) newFrameFn(f *shield.Frame) {
	switch f.Header.MessagePurpose {
	case shield.PurposeCommandResponse, shield.PurposeError:
		reqUUID, err := uuid.Parse(f.Header.RequestID)
		if err != nil {
			return
		}
		cb, ok := taskIO.takeCmdFeedbackCallback(reqUUID)
		if !ok {
			return
		}
		resp := &CommandResponse{}
		if err := json.Unmarshal(f.Body, resp); err != nil {
			resp.StatusCode = StatusRejected
			resp.StatusMessage = err.Error()
		}
		if f.Header.MessagePurpose == shield.PurposeError && resp.StatusCode >= 0 {
			resp.StatusCode = StatusRejected
		}
		cb(resp)
	case shield.PurposeEvent:
		name := f.Header.EventName
		if name == "" {
			// older clients put the name in the body
			probe := struct {
				EventName string `json:"eventName"`
			}{}
			_ = json.Unmarshal(f.Body, &probe)
			name = probe.EventName
		}
		taskIO.activateEventCallbacks(&Event{Name: name, Body: f.Body})
	}
}
