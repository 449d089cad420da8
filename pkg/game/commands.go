package game

import (
	"fmt"

	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/kinematic"
	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/messages"
)

// CommandFromMessage decodes a client message into a game command.
func CommandFromMessage(codec messages.Codec, message *messages.Message) (types.Command, error) {
	switch message.Type {
	case messages.MessageTypeClientJoin:
		join := &messages.ClientJoin{}
		if err := codec.DecodePayload(message, join); err != nil {
			return nil, fmt.Errorf("failed to decode join: %v", err)
		}
		return types.JoinCommand{Name: join.Name}, nil
	case messages.MessageTypeClientMove:
		move := &messages.ClientMove{}
		if err := codec.DecodePayload(message, move); err != nil {
			return nil, fmt.Errorf("failed to decode move: %v", err)
		}
		return types.MoveCommand{Input: kinematic.NewVector(move.X, move.Y)}, nil
	case messages.MessageTypeClientClick:
		click := &messages.ClientClick{}
		if err := codec.DecodePayload(message, click); err != nil {
			return nil, fmt.Errorf("failed to decode click: %v", err)
		}
		return types.ClickCommand{MouseDown: click.MouseDown}, nil
	default:
		return nil, fmt.Errorf("unhandled message type: %s", message.Type)
	}
}

// HandleCommand applies a command from clientID to the game state.
// Commands for a client without a player are accepted and have no effect.
func (gm *GameManager) HandleCommand(clientID uint32, command types.Command) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	applied := false
	switch cmd := command.(type) {
	case types.JoinCommand:
		if !gm.registry.Exists(clientID) {
			log.Debug("Ignoring join from unregistered client %d", clientID)
			break
		}
		start := kinematic.NewVector(constants.PlayerStartingX, constants.PlayerStartingY)
		if _, created := gm.gameState.CreatePlayer(clientID, cmd.Name, start); created {
			log.Info("Client %d joined as %q", clientID, cmd.Name)
			applied = true
		}
	case types.MoveCommand:
		applied = gm.gameState.SetInput(clientID, cmd.Input)
	case types.ClickCommand:
		applied = gm.gameState.SetMouse(clientID, cmd.MouseDown)
	default:
		log.Error("Unhandled command type: %T", command)
	}

	if applied {
		gm.metrics.IncCommandApplied()
	} else {
		log.Trace("Command %T from client %d had no effect", command, clientID)
		gm.metrics.IncCommandDiscarded()
	}
}
