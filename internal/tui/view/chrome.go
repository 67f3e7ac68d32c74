package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/bitemap/bitemap-cli/internal/tui/theme"
)

const (
	ScreenFeed    = "feed"
	ScreenSearch  = "search"
	ScreenSaved   = "saved"
	ScreenOrders  = "orders"
	ScreenProfile = "profile"
)

var screenTabs = []struct {
	Screen string
	Label  string
}{
	{ScreenFeed, "Feed"},
	{ScreenSearch, "Search"},
	{ScreenSaved, "Saved"},
	{ScreenOrders, "Orders"},
	{ScreenProfile, "Profile"},
}

func TabBar(active string, th tuitheme.Theme) string {
	parts := make([]string, 0, len(screenTabs))
	for _, tab := range screenTabs {
		parts = append(parts, th.RenderTab(tab.Screen == active, tab.Label))
	}
	return strings.Join(parts, " ")
}

func Toolbar(screen string, searching bool) string {
	if searching {
		return "type to search | enter: run | esc: cancel"
	}
	switch screen {
	case ScreenFeed:
		return "up/down next dish | space play/pause | l like | b save | s share | o order | r refresh | 1-5 screens | ? help | q quit"
	case ScreenSearch:
		return "j/k move | / new search | b save | o order | 1-5 screens | q quit"
	case ScreenSaved:
		return "j/k move | b unsave | o order | 1-5 screens | q quit"
	case ScreenOrders:
		return "j/k move | 1-5 screens | q quit"
	default:
		return "1-5 screens | q quit"
	}
}

func Footer(screen string, position, total int, source string, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("screen") + " " + th.MetaValue.Render(screen),
	}
	if total > 0 {
		parts = append(parts, th.MetaValue.Render(fmt.Sprintf("%d of %d", position+1, total)))
	} else {
		parts = append(parts, th.MetaValue.Render("empty"))
	}
	if source != "" {
		parts = append(parts, th.MetaLabel.Render("source")+" "+th.MetaValue.Render(source))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
