package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/textquest/types"
)

// renderStatusBar produces a full-width inverted status line showing
// current room, exits, inventory, and turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	room := m.engine.World.Rooms[s.CurrentRoom()]

	roomName := s.CurrentRoom()
	if room != nil && room.Name != "" {
		roomName = room.Name
	}

	var dirs []string
	if room != nil {
		for dir := range room.Exits {
			if !s.Hidden(types.ExitAttrID(room.ID, dir)) {
				dirs = append(dirs, dir)
			}
		}
	}
	sort.Strings(dirs)

	left := fmt.Sprintf(" %s | Exits: %s", roomName, strings.Join(dirs, ","))
	right := fmt.Sprintf("T:%d ", s.Turns())

	// Show carried item names if they fit, otherwise just the count.
	if inv := s.Inventory(); len(inv) > 0 {
		names := make([]string, 0, len(inv))
		for _, id := range inv {
			name := id
			if obj := m.engine.World.Objects[id]; obj != nil && obj.Name != "" {
				name = obj.Name
			}
			names = append(names, name)
		}
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(names, ", "), s.Turns())
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(inv), s.Turns())
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
