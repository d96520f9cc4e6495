package preview

import "github.com/gdamore/tcell/v2"

// Action is a viewer command.
type Action uint8

const (
	ActionNone Action = iota
	ActionPanN
	ActionPanS
	ActionPanE
	ActionPanW
	ActionCenter
	ActionSight
	ActionRegenerate
	ActionQuit
)

// keyToAction maps a tcell key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionPanN
	case tcell.KeyDown:
		return ActionPanS
	case tcell.KeyRight:
		return ActionPanE
	case tcell.KeyLeft:
		return ActionPanW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	switch ev.Rune() {
	case 'k', 'K':
		return ActionPanN
	case 'j', 'J':
		return ActionPanS
	case 'l', 'L':
		return ActionPanE
	case 'h', 'H':
		return ActionPanW
	case 'c', 'C':
		return ActionCenter
	case 'v', 'V':
		return ActionSight
	case 'r', 'R':
		return ActionRegenerate
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// panDelta converts a pan action to (dx, dy) in tiles.
func panDelta(a Action) (int, int) {
	switch a {
	case ActionPanN:
		return 0, -panStep
	case ActionPanS:
		return 0, panStep
	case ActionPanE:
		return panStep, 0
	case ActionPanW:
		return -panStep, 0
	}
	return 0, 0
}
