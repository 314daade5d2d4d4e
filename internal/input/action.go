// internal/input/action.go
package input

// Action represents something the review screen can do.
type Action int

const (
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionSave

	// --- Selection ---
	ActionMoveUp
	ActionMoveDown

	// --- Detail pane ---
	ActionPageUp
	ActionPageDown

	ActionCopy // Copy the selected diff
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionSave:
		return "save"
	case ActionMoveUp:
		return "move-up"
	case ActionMoveDown:
		return "move-down"
	case ActionPageUp:
		return "page-up"
	case ActionPageDown:
		return "page-down"
	case ActionCopy:
		return "copy"
	default:
		return "unknown"
	}
}
