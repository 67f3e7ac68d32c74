package tui

import (
	"fmt"
	"strings"

	"github.com/bitemap/bitemap-cli/internal/tui/view"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Bitemap") + "  " + view.TabBar(m.screen, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Toolbar(m.screen, m.searching))
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.helpView())
	} else {
		switch m.screen {
		case view.ScreenFeed:
			b.WriteString(m.feedView())
		case view.ScreenSearch:
			b.WriteString(m.searchView())
		case view.ScreenSaved:
			b.WriteString(m.savedView())
		case view.ScreenOrders:
			b.WriteString(m.ordersView())
		case view.ScreenProfile:
			b.WriteString(m.profileView())
		}
	}

	b.WriteString("\n")
	b.WriteString(view.Message(m.loading, m.warning != "", m.status, m.warning, m.theme))
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) feedView() string {
	if m.engine.Empty() {
		if m.loading {
			return "Loading dishes...\n"
		}
		return "No dishes nearby. Press r to refresh.\n"
	}

	d, _ := m.engine.Active()
	pb := m.engine.Playback()
	params := view.CardParams{
		Dish:  d,
		Flags: m.engine.ActiveFlags(),
		Width: m.contentWidth(),
	}
	if pb != nil {
		params.State = pb.State()
		params.Fallback = pb.Fallback()
		params.Position = pb.Position()
		params.Length = pb.Length()
		params.Progress = pb.Progress()
		if pb.Fallback() {
			params.Poster = view.PosterState{
				Loading: m.posterLoading[d.ID],
				Raw:     m.posters[d.ID],
				Err:     m.posterErrs[d.ID],
			}
		}
	}

	var b strings.Builder
	b.WriteString(view.RenderDishCard(params, m.theme))
	b.WriteString("\n")
	b.WriteString(view.Markers(m.engine.Markers(), m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) searchView() string {
	var b strings.Builder
	if m.searching {
		b.WriteString("search: " + m.searchInput + "█\n\n")
	} else if m.searchQuery != "" {
		b.WriteString(fmt.Sprintf("search: %s (%d results, / for new search)\n\n", m.searchQuery, len(m.results)))
	} else {
		b.WriteString("Press / to search dishes, restaurants and tags.\n\n")
	}

	if !m.searching && m.searchQuery != "" && len(m.results) == 0 {
		b.WriteString("No dishes matched.\n")
		return b.String()
	}
	for i, d := range m.results {
		b.WriteString(view.RenderDishLine(view.DishLineParams{
			Dish:   d,
			Flags:  m.engine.Flags(d.ID),
			Active: i == m.resultCursor,
			Width:  m.contentWidth(),
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) savedView() string {
	if len(m.saved) == 0 {
		if m.loading {
			return "Loading saved dishes...\n"
		}
		return "No saved dishes yet. Press b on a dish to save it.\n"
	}
	var b strings.Builder
	for i, s := range m.saved {
		b.WriteString(view.RenderDishLine(view.DishLineParams{
			Dish:   s.Dish,
			Flags:  m.engine.Flags(s.Dish.ID),
			Active: i == m.savedCursor,
			Width:  m.contentWidth(),
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) ordersView() string {
	if len(m.orders) == 0 {
		if m.loading {
			return "Loading orders...\n"
		}
		return "No orders yet. Press o on a dish to order it.\n"
	}
	now := m.nowFn()
	var b strings.Builder
	for i, o := range m.orders {
		b.WriteString(view.RenderOrderLine(o, now, m.contentWidth(), i == m.orderCursor, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) profileView() string {
	name := m.profile.DisplayName
	if name == "" {
		name = "Food Explorer"
	}
	var b strings.Builder
	b.WriteString(m.theme.Section.Render(name) + "\n")
	if m.profile.Handle != "" {
		b.WriteString(m.theme.MetaValue.Render("@"+m.profile.Handle) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render("likes") + " " + m.theme.MetaValue.Render(fmt.Sprintf("%d", m.likes)) + "\n")
	b.WriteString(m.theme.MetaLabel.Render("saved") + " " + m.theme.MetaValue.Render(fmt.Sprintf("%d", len(m.saved))) + "\n")
	b.WriteString(m.theme.MetaLabel.Render("orders") + " " + m.theme.MetaValue.Render(fmt.Sprintf("%d", len(m.orders))) + "\n")
	return b.String()
}

func (m Model) helpView() string {
	return strings.Join([]string{
		"Help (? to close)",
		"",
		"  up/down      previous / next dish",
		"  click        top half previous, bottom half next",
		"  space        play / pause the clip",
		"  l            like the dish",
		"  b            save for later (unsave on the saved screen)",
		"  s            share the dish",
		"  o            order the dish",
		"  r            refresh the feed",
		"  /            search (on the search screen)",
		"  j/k          move in lists",
		"  1-5          feed / search / saved / orders / profile",
		"  q            quit",
	}, "\n") + "\n"
}

func (m Model) footer() string {
	screenPos, total := m.screenPosition()
	return view.Footer(m.screen, screenPos, total, string(m.source), m.theme)
}

func (m Model) screenPosition() (int, int) {
	switch m.screen {
	case view.ScreenFeed:
		idx, ok := m.engine.Current()
		if !ok {
			return 0, 0
		}
		return idx, m.engine.Len()
	case view.ScreenSearch:
		return m.resultCursor, len(m.results)
	case view.ScreenSaved:
		return m.savedCursor, len(m.saved)
	case view.ScreenOrders:
		return m.orderCursor, len(m.orders)
	}
	return 0, 0
}
