package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/money-machine/internal/config"
	"github.com/vovakirdan/money-machine/internal/core"
	"github.com/vovakirdan/money-machine/internal/games/slots"
	"github.com/vovakirdan/money-machine/internal/puzzle"
)

func TestMenuItems(t *testing.T) {
	items := MenuItems()
	if len(items) < 4 {
		t.Fatalf("Expected both machines and two puzzle screens, got %d items", len(items))
	}

	if items[0].Kind != MenuKindGame || items[0].GameID != slots.IDMoney {
		t.Errorf("Expected %q first, got %+v", slots.IDMoney, items[0])
	}
	if items[1].GameID != slots.IDFruits {
		t.Errorf("Expected %q second, got %+v", slots.IDFruits, items[1])
	}

	n := len(items)
	if items[n-2].Kind != MenuKindFetcher || items[n-1].Kind != MenuKindHistory {
		t.Errorf("Expected fetcher then history last, got %v and %v", items[n-2].Kind, items[n-1].Kind)
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	menuUpdate := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}

	menuUpdate(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first item: %d", m.cursor)
	}

	for i := 0; i < 20; i++ {
		menuUpdate(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor moved past the last item: %d", m.cursor)
	}

	menuUpdate(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Config().ScreenW != 120 || m.Config().ScreenH != 40 {
		t.Errorf("config not resized: %+v", m.Config())
	}

	menuUpdate(tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.Kind != MenuKindHistory {
		t.Errorf("Expected the history entry, got %+v", sel)
	}
}

func openSession(t *testing.T) (SessionModel, *memStore) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	store := &memStore{}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Clock: core.NewManualClock(time.Time{})}
	m := NewSessionModel(SessionDeps{
		Store:   store,
		Fetcher: &fakeFetcher{},
		Puzzle:  config.DefaultPuzzleConfig(),
	}, cfg)
	return m, store
}

func sessionUpdate(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func selectKind(t *testing.T, m SessionModel, kind MenuKind) SessionModel {
	t.Helper()
	for i, item := range MenuItems() {
		if item.Kind == kind {
			for j := 0; j < i; j++ {
				m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
			}
			return sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		}
	}
	t.Fatalf("no menu item of kind %v", kind)
	return m
}

func TestSessionGameAndBack(t *testing.T) {
	m, _ := openSession(t)

	m = selectKind(t, m, MenuKindGame)
	if m.screen != screenGame {
		t.Fatalf("Expected the game screen, got %v", m.screen)
	}

	// Busy machine keeps the player on the game screen.
	m = sessionUpdate(t, m, space, TickMsg(time.Now()), keyRunes("b"))
	if m.screen != screenGame {
		t.Fatal("left the game while charging")
	}

	m = sessionUpdate(t, m, space, TickMsg(time.Now()))
	m.config.Clock.(*core.ManualClock).Advance(5 * time.Second)
	m = sessionUpdate(t, m, TickMsg(time.Now()), keyRunes("b"))
	if m.screen != screenMenu {
		t.Fatalf("Expected the menu after the draw, got %v", m.screen)
	}
	if m.menu.Selected() != nil {
		t.Error("menu should start fresh")
	}
}

func TestSessionPuzzleAndHistory(t *testing.T) {
	m, store := openSession(t)
	store.SavePuzzle(puzzle.Puzzle{ID: "p1", Title: "Irises", Email: validEmail, Difficulty: 4})

	m = selectKind(t, m, MenuKindFetcher)
	if m.screen != screenPuzzle {
		t.Fatalf("Expected the puzzle screen, got %v", m.screen)
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("Expected the menu, got %v", m.screen)
	}

	m = selectKind(t, m, MenuKindHistory)
	if m.screen != screenHistory {
		t.Fatalf("Expected the history screen, got %v", m.screen)
	}
	if len(m.history.Entries()) != 1 {
		t.Errorf("Expected the stored puzzle, got %d entries", len(m.history.Entries()))
	}
	m = sessionUpdate(t, m, keyRunes("b"))
	if m.screen != screenMenu {
		t.Errorf("Expected the menu, got %v", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m, _ := openSession(t)

	next, cmd := m.Update(keyRunes("q"))
	m = next.(SessionModel)
	if !m.quitting || cmd == nil {
		t.Error("q on the menu should end the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}
