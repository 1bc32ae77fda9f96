package engine

import "fmt"

// CommandType discriminates deferred mutations
type CommandType uint8

const (
	CommandSpawn CommandType = iota
	CommandDespawn
	CommandMove
	CommandQuit
)

func (t CommandType) String() string {
	switch t {
	case CommandSpawn:
		return "Spawn"
	case CommandDespawn:
		return "Despawn"
	case CommandMove:
		return "Move"
	case CommandQuit:
		return "Quit"
	default:
		return fmt.Sprintf("CommandType(%d)", uint8(t))
	}
}

// Command is a structural mutation requested by an update handler
// Applied after all handlers of the frame ran, in queue order
// Indices resolve against the entity list as it is when the command is applied
type Command struct {
	Type   CommandType
	Entity *Entity // Spawn
	Index  int     // Despawn, Move
	DX, DY int     // Move
}

// Spawn appends e to the entity list
func Spawn(e *Entity) Command {
	return Command{Type: CommandSpawn, Entity: e}
}

// Despawn removes the entity at index, shifting later entities down by one
func Despawn(index int) Command {
	return Command{Type: CommandDespawn, Index: index}
}

// Move offsets the entity at index, clamped to the grid per axis
func Move(index, dx, dy int) Command {
	return Command{Type: CommandMove, Index: index, DX: dx, DY: dy}
}

// Quit ends the loop after the current frame renders
func Quit() Command {
	return Command{Type: CommandQuit}
}

func (c Command) String() string {
	switch c.Type {
	case CommandDespawn:
		return fmt.Sprintf("Despawn(%d)", c.Index)
	case CommandMove:
		return fmt.Sprintf("Move(%d, %d, %d)", c.Index, c.DX, c.DY)
	default:
		return c.Type.String()
	}
}
