package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/bitemap/bitemap-cli/internal/app"
	"github.com/bitemap/bitemap-cli/internal/dish"
	"github.com/bitemap/bitemap-cli/internal/feed"
	"github.com/bitemap/bitemap-cli/internal/share"
	"github.com/bitemap/bitemap-cli/internal/tui/actions"
	tuitheme "github.com/bitemap/bitemap-cli/internal/tui/theme"
	"github.com/bitemap/bitemap-cli/internal/tui/view"
)

const playbackTickInterval = 250 * time.Millisecond

type playbackTickMsg struct{}

type clearStatusMsg struct {
	id int
}

type posterLoadedMsg struct {
	dishID string
	raw    string
}

type posterErrorMsg struct {
	dishID string
	err    error
}

type Profile struct {
	DisplayName string
	Handle      string
}

type Model struct {
	service actions.Service
	engine  *feed.Engine
	theme   tuitheme.Theme
	log     zerolog.Logger

	screen  string
	profile Profile
	source  app.FeedSource

	searching    bool
	searchInput  string
	searchQuery  string
	results      []dish.Dish
	resultCursor int

	saved       []dish.SavedDish
	savedCursor int

	orders      []dish.Order
	orderCursor int

	width    int
	height   int
	loading  bool
	status   string
	statusID int
	warning  string
	showHelp bool

	feedLimit int
	likes     int

	shareOpenFn    func(share.Payload) error
	shareCopyFn    func(share.Payload) error
	renderPosterFn func(string, int) (string, error)
	nowFn          func() time.Time

	posters       map[string]string
	posterErrs    map[string]string
	posterLoading map[string]bool
}

func NewModel(service actions.Service, dishes []dish.Dish, source app.FeedSource, feedLimit int, profile Profile, logger zerolog.Logger) Model {
	if feedLimit <= 0 {
		feedLimit = app.DefaultFeedLimit
	}
	return Model{
		service:        service,
		engine:         feed.NewEngine(dishes, logger),
		theme:          tuitheme.Default(),
		log:            logger,
		screen:         view.ScreenFeed,
		profile:        profile,
		source:         source,
		feedLimit:      feedLimit,
		shareOpenFn:    share.Open,
		shareCopyFn:    share.CopyToClipboard,
		renderPosterFn: view.RenderPosterPreview,
		nowFn:          time.Now,
		posters:        make(map[string]string),
		posterErrs:     make(map[string]string),
		posterLoading:  make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{playbackTickCmd()}
	if m.service != nil && m.engine.Empty() {
		cmds = append(cmds, actions.LoadFeedCmd(m.service, m.feedLimit))
	}
	return tea.Batch(cmds...)
}

func playbackTickCmd() tea.Cmd {
	return tea.Tick(playbackTickInterval, func(time.Time) tea.Msg {
		return playbackTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case playbackTickMsg:
		if m.screen == view.ScreenFeed {
			m.engine.Tick(playbackTickInterval)
		}
		return m, tea.Batch(playbackTickCmd(), m.ensurePosterCmd())

	case actions.FeedLoadedMsg:
		m.loading = false
		m.warning = ""
		m.engine.Replace(msg.Dishes)
		m.source = msg.Source
		m.status = fmt.Sprintf("Feed updated (%d dishes, %s)", len(msg.Dishes), msg.Source)
		m.statusID++
		return m, tea.Batch(clearStatusCmd(m.statusID, 3*time.Second), m.ensurePosterCmd())

	case actions.FeedLoadErrorMsg:
		m.loading = false
		m.warning = msg.Err.Error()
		m.log.Warn().Err(msg.Err).Dur("duration", msg.Duration).Msg("feed load failed")
		return m, nil

	case actions.SearchResultsMsg:
		m.loading = false
		m.warning = ""
		m.searchQuery = msg.Query
		m.results = msg.Dishes
		m.resultCursor = 0
		return m, nil

	case actions.SearchErrorMsg:
		m.loading = false
		m.warning = msg.Err.Error()
		return m, nil

	case actions.SavedLoadedMsg:
		m.loading = false
		m.saved = msg.Dishes
		if m.savedCursor >= len(m.saved) {
			m.savedCursor = 0
		}
		return m, nil

	case actions.SavedLoadErrorMsg:
		m.loading = false
		m.warning = msg.Err.Error()
		return m, nil

	case actions.OrdersLoadedMsg:
		m.loading = false
		m.orders = msg.Orders
		if m.orderCursor >= len(m.orders) {
			m.orderCursor = 0
		}
		return m, nil

	case actions.OrdersLoadErrorMsg:
		m.loading = false
		m.warning = msg.Err.Error()
		return m, nil

	case actions.LikeFailedMsg:
		m.engine.ReportFailure("record_like", msg.DishID, msg.Err)
		return m, nil

	case actions.BookmarkFailedMsg:
		m.engine.ReportFailure("record_bookmark", msg.DishID, msg.Err)
		return m, nil

	case actions.OrderPlacedMsg:
		m.orders = append([]dish.Order{msg.Order}, m.orders...)
		m.status = fmt.Sprintf("Order placed: %s ($%.2f)", msg.Order.DishName, msg.Order.Total)
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)

	case actions.OrderErrorMsg:
		m.warning = "Order failed: " + msg.Err.Error()
		m.log.Warn().Err(msg.Err).Str("dish_id", msg.DishID).Msg("order failed")
		return m, nil

	case actions.SharedMsg:
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)

	case actions.ShareErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)

	case posterLoadedMsg:
		delete(m.posterLoading, msg.dishID)
		delete(m.posterErrs, msg.dishID)
		m.posters[msg.dishID] = msg.raw
		return m, nil

	case posterErrorMsg:
		delete(m.posterLoading, msg.dishID)
		m.posterErrs[msg.dishID] = msg.err.Error()
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearchInput(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp {
		if msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "1":
		return m.switchScreen(view.ScreenFeed)
	case "2":
		return m.switchScreen(view.ScreenSearch)
	case "3":
		return m.switchScreen(view.ScreenSaved)
	case "4":
		return m.switchScreen(view.ScreenOrders)
	case "5":
		return m.switchScreen(view.ScreenProfile)
	}

	switch m.screen {
	case view.ScreenFeed:
		return m.updateFeedKey(msg)
	case view.ScreenSearch:
		return m.updateSearchKey(msg)
	case view.ScreenSaved:
		return m.updateSavedKey(msg)
	case view.ScreenOrders:
		return m.updateOrdersKey(msg)
	}
	return m, nil
}

func (m Model) updateFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if intent, ok := feed.IntentForKey(key); ok {
		m.engine.Apply(intent)
		return m, m.ensurePosterCmd()
	}

	switch key {
	case " ", "space":
		m.engine.TogglePlayback()
		return m, nil
	case "l":
		dishID, liked, ok := m.engine.ToggleLiked()
		if !ok {
			return m, nil
		}
		if liked {
			m.likes++
			m.status = "Liked"
		} else {
			if m.likes > 0 {
				m.likes--
			}
			m.status = "Like removed"
		}
		m.statusID++
		return m, tea.Batch(
			actions.RecordLikeCmd(m.service, dishID, liked),
			clearStatusCmd(m.statusID, 3*time.Second),
		)
	case "b":
		dishID, bookmarked, ok := m.engine.ToggleBookmarked()
		if !ok {
			return m, nil
		}
		if bookmarked {
			m.status = "Saved for later"
		} else {
			m.status = "Removed from saved"
		}
		m.statusID++
		return m, tea.Batch(
			actions.RecordBookmarkCmd(m.service, dishID, bookmarked),
			clearStatusCmd(m.statusID, 3*time.Second),
		)
	case "s":
		d, ok := m.engine.Active()
		if !ok {
			return m, nil
		}
		return m, actions.ShareCmd(share.PayloadFor(d), m.shareOpenFn, m.shareCopyFn)
	case "o":
		d, ok := m.engine.Active()
		if !ok {
			return m, nil
		}
		return m, actions.PlaceOrderCmd(m.service, d)
	case "r":
		if m.service == nil {
			return m, nil
		}
		m.loading = true
		m.warning = ""
		return m, actions.LoadFeedCmd(m.service, m.feedLimit)
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen != view.ScreenFeed || m.showHelp {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	intent, ok := feed.IntentForTap(msg.Y, m.height)
	if !ok {
		return m, nil
	}
	m.engine.Apply(intent)
	return m, m.ensurePosterCmd()
}

func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput = ""
		return m, nil
	case "enter":
		m.searching = false
		query := strings.TrimSpace(m.searchInput)
		if query == "" {
			return m, nil
		}
		m.loading = true
		return m, actions.SearchCmd(m.service, query, m.feedLimit)
	case "backspace":
		if m.searchInput != "" {
			runes := []rune(m.searchInput)
			m.searchInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case " ", "space":
		m.searchInput += " "
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.searchInput += string(msg.Runes)
	}
	return m, nil
}

func (m Model) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.searching = true
		m.searchInput = ""
		return m, nil
	case "up", "k":
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	case "down", "j":
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
		return m, nil
	case "b":
		if m.resultCursor >= len(m.results) {
			return m, nil
		}
		d := m.results[m.resultCursor]
		m.status = "Saved for later"
		m.statusID++
		return m, tea.Batch(
			actions.RecordBookmarkCmd(m.service, d.ID, true),
			clearStatusCmd(m.statusID, 3*time.Second),
		)
	case "o":
		if m.resultCursor >= len(m.results) {
			return m, nil
		}
		return m, actions.PlaceOrderCmd(m.service, m.results[m.resultCursor])
	}
	return m, nil
}

func (m Model) updateSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.savedCursor > 0 {
			m.savedCursor--
		}
		return m, nil
	case "down", "j":
		if m.savedCursor < len(m.saved)-1 {
			m.savedCursor++
		}
		return m, nil
	case "b":
		if m.savedCursor >= len(m.saved) {
			return m, nil
		}
		d := m.saved[m.savedCursor].Dish
		m.saved = append(m.saved[:m.savedCursor], m.saved[m.savedCursor+1:]...)
		if m.savedCursor >= len(m.saved) && m.savedCursor > 0 {
			m.savedCursor--
		}
		m.status = "Removed from saved"
		m.statusID++
		return m, tea.Batch(
			actions.RecordBookmarkCmd(m.service, d.ID, false),
			clearStatusCmd(m.statusID, 3*time.Second),
		)
	case "o":
		if m.savedCursor >= len(m.saved) {
			return m, nil
		}
		return m, actions.PlaceOrderCmd(m.service, m.saved[m.savedCursor].Dish)
	}
	return m, nil
}

func (m Model) updateOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.orderCursor > 0 {
			m.orderCursor--
		}
	case "down", "j":
		if m.orderCursor < len(m.orders)-1 {
			m.orderCursor++
		}
	}
	return m, nil
}

func (m Model) switchScreen(screen string) (tea.Model, tea.Cmd) {
	if screen == m.screen {
		return m, nil
	}
	m.screen = screen
	m.searching = false
	switch screen {
	case view.ScreenFeed:
		// ticks are gated to the feed screen, so the clip freezes while away
		return m, m.ensurePosterCmd()
	case view.ScreenSaved:
		if m.service != nil {
			m.loading = true
			return m, actions.LoadSavedCmd(m.service, m.feedLimit)
		}
	case view.ScreenOrders:
		if m.service != nil {
			m.loading = true
			return m, actions.LoadOrdersCmd(m.service, m.feedLimit)
		}
	}
	return m, nil
}

func (m Model) ensurePosterCmd() tea.Cmd {
	pb := m.engine.Playback()
	d, ok := m.engine.Active()
	if !ok || pb == nil || !pb.Fallback() {
		return nil
	}
	if d.ImageURL == "" {
		return nil
	}
	if m.posterLoading[d.ID] || m.posters[d.ID] != "" || m.posterErrs[d.ID] != "" {
		return nil
	}
	m.posterLoading[d.ID] = true
	renderFn := m.renderPosterFn
	imageURL := d.ImageURL
	dishID := d.ID
	width := m.contentWidth()
	return func() tea.Msg {
		raw, err := renderFn(imageURL, width)
		if err != nil {
			return posterErrorMsg{dishID: dishID, err: err}
		}
		return posterLoadedMsg{dishID: dishID, raw: raw}
	}
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 72
	}
	if m.width > 100 {
		return 100
	}
	return m.width
}
