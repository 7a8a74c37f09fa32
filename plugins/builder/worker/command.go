package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
	"github.com/VincentZyu233/woodenaxe/task"
	world "github.com/VincentZyu233/woodenaxe/world/define"
)

type CommandSender interface {
	SendCmdAndWait(ctx context.Context, cmd string) (*task.CommandResponse, error)
}

// CommandWorker places blocks by issuing setblock commands through the connected client.
// Update flags have no command equivalent; the game always updates neighbours and clients.
type CommandWorker struct {
	ctx     context.Context
	sender  CommandSender
	timeout time.Duration
}

func NewCommandWorker(ctx context.Context, sender CommandSender, timeout time.Duration) *CommandWorker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CommandWorker{ctx: ctx, sender: sender, timeout: timeout}
}

func SetBlockCommand(dim define.Dimension, pos define.Pos, name string) (string, error) {
	dimName, ok := dim.Name()
	if !ok {
		return "", fmt.Errorf("%w: unknown dimension %v", ErrPlacementFailed, int32(dim))
	}
	return fmt.Sprintf("execute in %v run setblock %v %v replace", dimName, pos, name), nil
}

func (w *CommandWorker) SetBlock(dim define.Dimension, pos define.Pos, blk world.BlockType, flags define.UpdateFlag) error {
	cmd, err := SetBlockCommand(dim, pos, blk.Name)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()
	resp, err := w.sender.SendCmdAndWait(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlacementFailed, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: %v at %v: %v", ErrPlacementFailed, blk.Name, pos, resp.StatusMessage)
	}
	return nil
}
