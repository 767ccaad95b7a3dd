package puzzle

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Fetcher hands out new puzzles.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Puzzle, error)
}

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("puzzle: server returned %d: %s", e.Code, e.Message)
}

// HTTPFetcher asks the puzzle server for a new puzzle with one GET request.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
	now     func() time.Time
}

// NewHTTPFetcher creates a fetcher for the server at baseURL.
// A nil client gets a client with the given timeout; a nil logger discards logs.
func NewHTTPFetcher(baseURL string, client *http.Client, timeout time.Duration, logger *log.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch requests {base}/puzzle/new?email=..&difficulty=.. and reads the
// puzzle id from the first body line and the title from the second.
func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) (Puzzle, error) {
	endpoint, err := url.Parse(f.baseURL + "/puzzle/new")
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle: bad server url: %w", err)
	}
	q := endpoint.Query()
	q.Set("email", req.Email)
	q.Set("difficulty", strconv.Itoa(req.Difficulty))
	endpoint.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle: cannot build request: %w", err)
	}

	f.debug("fetching puzzle", "email", req.Email, "difficulty", req.Difficulty)
	start := f.now()

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzle: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		f.debug("puzzle server refused", "status", resp.StatusCode, "message", msg)
		return Puzzle{}, &StatusError{Code: resp.StatusCode, Message: msg}
	}

	p := Puzzle{
		Title:      UntitledPuzzle,
		Email:      req.Email,
		Difficulty: req.Difficulty,
	}
	scanner := bufio.NewScanner(resp.Body)
	if scanner.Scan() {
		p.ID = strings.TrimSpace(scanner.Text())
	}
	// Only a missing title line gets the default; a blank one stays blank.
	if scanner.Scan() {
		p.Title = strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Puzzle{}, fmt.Errorf("puzzle: cannot read response: %w", err)
	}
	p.FetchedAt = f.now()

	f.debug("puzzle fetched", "id", p.ID, "title", p.Title, "elapsed", p.FetchedAt.Sub(start))
	return p, nil
}

func (f *HTTPFetcher) debug(msg string, keyvals ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, keyvals...)
	}
}
