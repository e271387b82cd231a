package motion

import (
	"fmt"

	"phenos/internal/model"
)

// GridSize is the fixed edge length of the activation grid.
const GridSize = 7

// Grid is one snapshot of discretized motion activations.
type Grid [GridSize][GridSize]float64

// Action is a symbolic interface action resolved from an active cell.
type Action string

const (
	ActionMenuOpen       Action = "menu_open"
	ActionSelectCenter   Action = "select_center"
	ActionEscape         Action = "escape_action"
	ActionHelpRequest    Action = "help_request"
	ActionSettingsToggle Action = "settings_toggle"
)

// activationThreshold gates cell activation (strict comparison).
const activationThreshold = 0.5

var defaultMotionMap = map[string]Action{
	"0,0": ActionMenuOpen,
	"3,3": ActionSelectCenter,
	"6,6": ActionEscape,
	"0,6": ActionHelpRequest,
	"6,0": ActionSettingsToggle,
}

// Interpret scans the grid in row-major order and resolves every active cell
// through the phenotype's preferred motion map, falling back to the default
// map. Active cells with no mapping produce no action; that is intentional,
// unmapped regions of the grid are dead zones rather than errors. Result
// order follows the scan, not activation magnitude.
func Interpret(grid Grid, profile model.NeurodivergenceProfile) []Action {
	var actions []Action
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if grid[row][col] <= activationThreshold {
				continue
			}
			key := CellKey(row, col)
			if preferred, ok := profile.PreferredMotionMap[key]; ok {
				actions = append(actions, Action(preferred))
				continue
			}
			if action, ok := defaultMotionMap[key]; ok {
				actions = append(actions, action)
			}
		}
	}
	return actions
}

// CellKey renders the "<row>,<col>" lookup key for one grid cell.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d,%d", row, col)
}

// DefaultMap returns a copy of the built-in cell-to-action table.
func DefaultMap() map[string]Action {
	out := make(map[string]Action, len(defaultMotionMap))
	for k, v := range defaultMotionMap {
		out[k] = v
	}
	return out
}
