package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/money-machine/internal/config"
	"github.com/vovakirdan/money-machine/internal/puzzle"
	"github.com/vovakirdan/money-machine/internal/storage"
)

type fakeFetcher struct {
	puzzle   puzzle.Puzzle
	err      error
	requests []puzzle.Request
}

func (f *fakeFetcher) Fetch(_ context.Context, req puzzle.Request) (puzzle.Puzzle, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return puzzle.Puzzle{}, f.err
	}
	p := f.puzzle
	p.Email = req.Email
	p.Difficulty = req.Difficulty
	return p, nil
}

// memStore keeps puzzles newest first.
type memStore struct {
	entries []storage.PuzzleEntry
	err     error
}

func (s *memStore) SavePuzzle(p puzzle.Puzzle) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	id := int64(len(s.entries) + 1)
	s.entries = append([]storage.PuzzleEntry{{RowID: id, Puzzle: p}}, s.entries...)
	return id, nil
}

func (s *memStore) RecentPuzzles(email string, limit int) ([]storage.PuzzleEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []storage.PuzzleEntry
	for _, e := range s.entries {
		if email == "" || e.Email == email {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

const validEmail = "ada@edu.univ-eiffel.fr"

func formUpdate(t *testing.T, m FetcherModel, msg tea.Msg) (FetcherModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	fm, ok := next.(FetcherModel)
	require.True(t, ok, "Update() returned %T", next)
	return fm, cmd
}

func TestFetcherEmailValidation(t *testing.T) {
	m := NewFetcherModel(config.DefaultPuzzleConfig(), &fakeFetcher{}, nil, nil)
	assert.False(t, m.CanFetch(), "empty email must not enable fetch")

	m.SetEmail("ada@gmail.com")
	assert.False(t, m.CanFetch())
	assert.Contains(t, m.View(), "email must end with")

	m.SetEmail("  " + validEmail + " ")
	assert.Equal(t, validEmail, m.Email())
	assert.True(t, m.CanFetch())
	assert.NotContains(t, m.View(), "email must end with")
}

func TestFetcherNoFetcherDisablesButton(t *testing.T) {
	m := NewFetcherModel(config.DefaultPuzzleConfig(), nil, nil, nil)
	m.SetEmail(validEmail)
	assert.False(t, m.CanFetch())
}

func TestFetcherTypingQDoesNotQuit(t *testing.T) {
	m := NewFetcherModel(config.DefaultPuzzleConfig(), &fakeFetcher{}, nil, nil)

	m, _ = formUpdate(t, m, keyRunes("q"))
	m, _ = formUpdate(t, m, keyRunes("b"))
	assert.False(t, m.IsQuitting())
	assert.False(t, m.IsGoingBack())
	assert.Equal(t, "qb", m.Email())
}

func TestFetcherDifficultySlider(t *testing.T) {
	cfg := config.DefaultPuzzleConfig()
	m := NewFetcherModel(cfg, &fakeFetcher{}, nil, nil)
	require.Equal(t, cfg.Difficulty.Default, m.Difficulty())

	m, _ = formUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = formUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, cfg.Difficulty.Default+1, m.Difficulty())

	for i := 0; i < 10; i++ {
		m, _ = formUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, cfg.Difficulty.Max, m.Difficulty())

	for i := 0; i < 10; i++ {
		m, _ = formUpdate(t, m, keyRunes("h"))
	}
	assert.Equal(t, cfg.Difficulty.Min, m.Difficulty())
	assert.Contains(t, m.View(), fmt.Sprintf("level %d", cfg.Difficulty.Min))

	m.SetDifficulty(99)
	assert.Equal(t, cfg.Difficulty.Max, m.Difficulty())
}

func TestFetcherFetchSuccess(t *testing.T) {
	fetcher := &fakeFetcher{puzzle: puzzle.Puzzle{ID: "p42", Title: "Starry Night", FetchedAt: time.Now()}}
	store := &memStore{}
	m := NewFetcherModel(config.DefaultPuzzleConfig(), fetcher, store, nil)
	m.SetEmail(validEmail)

	// Enter on the email field moves to the slider, the next one fetches.
	m, _ = formUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.Fetching())
	m, _ = formUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m, cmd := formUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Fetching())
	assert.Equal(t, "fetching puzzle...", m.Status())
	assert.False(t, m.CanFetch(), "only one request at a time")

	_, again := formUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again, "second fetch must be refused while one is in flight")

	msg := m.fetchCmd(puzzle.Request{Email: m.Email(), Difficulty: m.Difficulty()})()
	m, _ = formUpdate(t, m, msg)

	assert.False(t, m.Fetching())
	assert.Equal(t, "puzzle fetched! (Starry Night)", m.Status())
	require.NotNil(t, m.LastPuzzle())
	assert.Equal(t, "p42", m.LastPuzzle().ID)

	require.Len(t, fetcher.requests, 1)
	assert.Equal(t, puzzle.Request{Email: validEmail, Difficulty: 5}, fetcher.requests[0])

	require.Len(t, store.entries, 1)
	assert.Equal(t, "p42", store.entries[0].ID)
	assert.Equal(t, 5, store.entries[0].Difficulty)
}

func TestFetcherFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"status error", &puzzle.StatusError{Code: 403, Message: "forbidden"}, "error 403: forbidden"},
		{"wrapped status error", fmt.Errorf("fetch: %w", &puzzle.StatusError{Code: 500, Message: "boom"}), "error 500: boom"},
		{"network error", errors.New("connection refused"), "error: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			m := NewFetcherModel(config.DefaultPuzzleConfig(), &fakeFetcher{}, store, nil)
			m.SetEmail(validEmail)
			m.fetching = true

			m, _ = formUpdate(t, m, fetchResultMsg{err: tt.err})
			assert.False(t, m.Fetching())
			assert.Equal(t, tt.status, m.Status())
			assert.Nil(t, m.LastPuzzle())
			assert.Empty(t, store.entries)
			assert.True(t, m.CanFetch(), "a failed fetch can be retried")
		})
	}
}

func TestFetcherStoreFailureKeepsResult(t *testing.T) {
	m := NewFetcherModel(config.DefaultPuzzleConfig(), &fakeFetcher{}, &memStore{err: errors.New("disk full")}, nil)

	m, _ = formUpdate(t, m, fetchResultMsg{puzzle: puzzle.Puzzle{ID: "p1", Title: "Irises"}})
	assert.Equal(t, "puzzle fetched! (Irises)", m.Status())
}

func TestFetcherNavigation(t *testing.T) {
	m := NewFetcherModel(config.DefaultPuzzleConfig(), &fakeFetcher{}, nil, nil)

	m, _ = formUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = formUpdate(t, m, keyRunes("b"))
	assert.True(t, m.IsGoingBack(), "b leaves the form outside the email field")

	m = NewFetcherModel(config.DefaultPuzzleConfig(), &fakeFetcher{}, nil, nil)
	m, _ = formUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsGoingBack())

	m = NewFetcherModel(config.DefaultPuzzleConfig(), &fakeFetcher{}, nil, nil)
	m, cmd := formUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
}

func TestSplashFillsThenStarts(t *testing.T) {
	m := NewSplashModel(2*time.Second, 80, 24)
	require.NotNil(t, m.Init())

	splashUpdate := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(SplashModel)
		return cmd
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, splashUpdate(splashTickMsg(start)))
	assert.Zero(t, m.Percent())

	splashUpdate(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Started(), "start is disabled until the bar is full")

	splashUpdate(splashTickMsg(start.Add(time.Second)))
	assert.InDelta(t, 0.5, m.Percent(), 1e-9)
	assert.Contains(t, m.View(), "Loading...")
	assert.Contains(t, m.View(), "50%")

	assert.Nil(t, splashUpdate(splashTickMsg(start.Add(3*time.Second))))
	assert.True(t, m.Done())
	assert.Equal(t, 1.0, m.Percent())
	assert.Contains(t, m.View(), "[ Start ]")
	assert.Contains(t, m.View(), "100%")

	splashUpdate(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Started())
}

func TestSplashZeroDuration(t *testing.T) {
	m := NewSplashModel(0, 80, 24)
	assert.True(t, m.Done())
	assert.Nil(t, m.Init())
}

func TestPuzzleFlow(t *testing.T) {
	cfg := config.DefaultPuzzleConfig()
	cfg.SplashMS = 0
	m := NewPuzzleModel(cfg, &fakeFetcher{}, nil, nil, 80, 24)
	m.Form().SetEmail(validEmail)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PuzzleModel)
	require.True(t, m.OnForm())
	assert.Contains(t, m.View(), "Request a new puzzle")
	assert.Contains(t, m.View(), validEmail)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(PuzzleModel)
	assert.True(t, m.IsGoingBack())
}
