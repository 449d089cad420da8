package types

import "github.com/cbodonnell/ghist/pkg/kinematic"

// Command is an inbound client intent. The set of commands is closed.
type Command interface {
	command()
}

// JoinCommand creates the player of the sending session if it does not exist yet.
type JoinCommand struct {
	Name string
}

// MoveCommand replaces the movement input of the sending session's player.
type MoveCommand struct {
	Input kinematic.Vector
}

// ClickCommand records the pointer state of the sending session's player.
type ClickCommand struct {
	MouseDown bool
}

func (JoinCommand) command()  {}
func (MoveCommand) command()  {}
func (ClickCommand) command() {}
