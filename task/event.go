package task

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/VincentZyu233/woodenaxe/shield"
)

const EventPlayerMessage = "PlayerMessage"

type Event struct {
	Name string
	Body json.RawMessage
}

type PlayerMessage struct {
	Message  string `json:"message"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Type     string `json:"type"`
}

func (ev *Event) PlayerMessage() (*PlayerMessage, error) {
	if ev.Name != EventPlayerMessage {
		return nil, fmt.Errorf("event %v is not a %v", ev.Name, EventPlayerMessage)
	}
	msg := &PlayerMessage{}
	if err := json.Unmarshal(ev.Body, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// player positions reported by querytarget are taken at eye level
var playerEyeOffset = mgl64.Vec3{0, 1.62, 0}

type Target struct {
	Dimension int32 `json:"dimension"`
	Position  struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"position"`
	UniqueID string  `json:"uniqueId"`
	YRot     float64 `json:"yRot"`
}

func (t *Target) Eye() mgl64.Vec3 {
	return mgl64.Vec3{t.Position.X, t.Position.Y, t.Position.Z}
}

// Feet is where the target stands, nudged up so that rounding error stays in the block
func (t *Target) Feet() mgl64.Vec3 {
	return t.Eye().Sub(playerEyeOffset).Add(mgl64.Vec3{0, 1e-3, 0})
}

// BlockPos is the block the target stands in
func (t *Target) BlockPos() [3]int32 {
	feet := t.Feet()
	return [3]int32{
		int32(math.Floor(feet.X())),
		int32(math.Floor(feet.Y())),
		int32(math.Floor(feet.Z())),
	}
}

// QueryTarget asks the game where the named player is
func (io *TaskIO) QueryTarget(ctx context.Context, player string) (*Target, error) {
	resp, err := io.SendCmdAndWait(ctx, "querytarget "+Selector(player))
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("querytarget %v: %v", player, resp.StatusMessage)
	}
	targets := make([]Target, 0, 1)
	if err := json.Unmarshal([]byte(resp.Details), &targets); err != nil {
		return nil, fmt.Errorf("querytarget %v: %w", player, err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("querytarget %v: no such player", player)
	}
	return &targets[0], nil
}

func (io *TaskIO) subscribe(eventName string) error {
	f, err := shield.NewFrame(shield.PurposeSubscribe, uuid.NewString(), &shield.SubscribeBody{EventName: eventName})
	if err != nil {
		return err
	}
	return io.ShieldIO.SendFrame(f)
}
