package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/VincentZyu233/woodenaxe/shield"
)

const (
	// StatusSessionLost is reported to pending commands when the client disconnects
	StatusSessionLost = -1
	// StatusRejected marks error frames and responses that could not be decoded
	StatusRejected = -2
)

type CommandResponse struct {
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Details       string `json:"details,omitempty"`
}

func (r *CommandResponse) OK() bool {
	return r != nil && r.StatusCode >= 0
}

func (io *TaskIO) GenCMD(command string) (*shield.Frame, uuid.UUID) {
	UUID := uuid.New()
	f, _ := shield.NewFrame(shield.PurposeCommandRequest, UUID.String(), &shield.CommandRequestBody{
		Version:     shield.ProtocolVersion,
		CommandLine: command,
		Origin:      shield.CommandOrigin{Type: "player"},
	})
	return f, UUID
}

func (io *TaskIO) SendCmds(cmds ...string) error {
	frames := make([]*shield.Frame, 0, len(cmds))
	for _, cmd := range cmds {
		f, _ := io.GenCMD(cmd)
		frames = append(frames, f)
	}
	return io.ShieldIO.SendFrames(frames...)
}

func (io *TaskIO) SendCmd(cmd string) error {
	f, _ := io.GenCMD(cmd)
	return io.ShieldIO.SendFrame(f)
}

func (io *TaskIO) SendCmdWithFeedBack(cmd string, cb func(resp *CommandResponse)) error {
	f, reqUUID := io.GenCMD(cmd)
	io.addCmdFeedbackCallback(reqUUID, cb)
	if err := io.ShieldIO.SendFrame(f); err != nil {
		io.takeCmdFeedbackCallback(reqUUID)
		return err
	}
	return nil
}

// SendCmdAndWait sends cmd and blocks until the client answers or ctx is done.
// A response with a negative status code is returned as is, not as an error.
func (io *TaskIO) SendCmdAndWait(ctx context.Context, cmd string) (*CommandResponse, error) {
	f, reqUUID := io.GenCMD(cmd)
	respC := make(chan *CommandResponse, 1)
	io.addCmdFeedbackCallback(reqUUID, func(resp *CommandResponse) { respC <- resp })
	if err := io.ShieldIO.SendFrame(f); err != nil {
		io.takeCmdFeedbackCallback(reqUUID)
		return nil, err
	}
	select {
	case resp := <-respC:
		if resp.StatusCode == StatusSessionLost {
			return resp, shield.ErrNotConnected
		}
		return resp, nil
	case <-ctx.Done():
		io.takeCmdFeedbackCallback(reqUUID)
		return nil, fmt.Errorf("%v: %w", cmd, ctx.Err())
	}
}

type rawText struct {
	Text string `json:"text"`
}

func tellraw(target string, content string) string {
	body, _ := json.Marshal(struct {
		RawText []rawText `json:"rawtext"`
	}{RawText: []rawText{{Text: content}}})
	return fmt.Sprintf("tellraw %s %s", target, body)
}

// Selector quotes a player name for use in a target selector
func Selector(player string) string {
	name, _ := json.Marshal(player)
	return fmt.Sprintf("@a[name=%s]", name)
}

func (io *TaskIO) TalkTo(player string, content string) error {
	return io.SendCmd(tellraw(Selector(player), content))
}

func (io *TaskIO) Say(isJson bool, content string) error {
	if !isJson {
		return io.SendCmd(tellraw("@a", content))
	}
	return io.SendCmd(fmt.Sprintf(`tellraw @a {"rawtext" : %s}`, content))
}
