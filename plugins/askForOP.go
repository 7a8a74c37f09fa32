package plugins

import (
	"context"
	"time"

	"github.com/fatih/color"

	"github.com/VincentZyu233/woodenaxe/define"
	"github.com/VincentZyu233/woodenaxe/task"
)

// AskForOP waits until the connected player may run cheat commands,
// which setblock and querytarget both need.
type AskForOP struct {
	taskIO   *task.TaskIO
	initLock chan struct{}
	closed   chan struct{}
}

func (a *AskForOP) New(config []byte) define.Plugin {
	a.initLock = make(chan struct{})
	a.closed = make(chan struct{})
	return a
}

func (a *AskForOP) WaitOP() {
	<-a.initLock
}

func (a *AskForOP) Inject(taskIO *task.TaskIO, collaborationContext map[string]define.Plugin) define.Plugin {
	a.taskIO = taskIO
	return a
}

func (a *AskForOP) AskForOP() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		resp, err := a.taskIO.SendCmdAndWait(ctx, "testfor @s")
		cancel()
		if err == nil && resp.OK() {
			color.Green("Op getted")
			close(a.initLock)
			return
		}
		if err != nil {
			color.Yellow("need OP and cheat mode (%v)", err)
		} else {
			color.Yellow("need OP and cheat mode (%v)", resp.StatusMessage)
		}
		select {
		case <-a.closed:
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (a *AskForOP) Routine() {
	a.taskIO.WaitInit()
	a.AskForOP()
}

func (a *AskForOP) Close() {
	close(a.closed)
}
