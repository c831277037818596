package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies an input command.
type Kind int

const (
	MoveIntent  Kind = iota // Axis + Value
	Jump                    // jump requested
	Fire                    // fire requested
	PauseToggle             // pause/resume requested
	Look                    // Direction: current view direction
	Restart                 // start a new run
)

func (k Kind) String() string {
	switch k {
	case MoveIntent:
		return "move"
	case Jump:
		return "jump"
	case Fire:
		return "fire"
	case PauseToggle:
		return "pause"
	case Look:
		return "look"
	case Restart:
		return "restart"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Axis is a camera-relative movement axis.
type Axis int

const (
	AxisForward Axis = iota // +1 forward, -1 back
	AxisStrafe              // +1 right, -1 left
)

// Command is one discrete event from the input-capture collaborator.
type Command struct {
	Kind      Kind
	Axis      Axis
	Value     float64    // MoveIntent: desired fraction of movement speed in [-1, 1]
	Direction mgl64.Vec3 // Look
}

func Move(axis Axis, value float64) Command {
	return Command{Kind: MoveIntent, Axis: axis, Value: value}
}

func LookAt(dir mgl64.Vec3) Command {
	return Command{Kind: Look, Direction: dir}
}
