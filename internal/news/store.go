package news

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/vcashweb/internal/observe"
	"github.com/roach88/vcashweb/internal/schedule"
)

// DefaultSearchDelay is the quiet period before a search commits its keywords.
const DefaultSearchDelay = time.Second

// Option configures a Store.
type Option func(*Store)

// WithScheduler replaces the timer source used for the search debounce.
// Default: schedule.Real.
func WithScheduler(s schedule.Scheduler) Option {
	return func(st *Store) {
		st.sched = s
	}
}

// WithSearchDelay overrides the search debounce delay.
// Default: DefaultSearchDelay.
func WithSearchDelay(d time.Duration) Option {
	return func(st *Store) {
		st.delay = d
	}
}

// WithLogger sets the logger for fetch failures. Falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) {
		st.log = l
	}
}

// Store holds news posts, the pagination cursor and the search state.
//
// Thread-safety: all methods are safe for concurrent use. Each state field is
// an observe.Value; listeners run after the mutation on the mutating
// goroutine (the caller for SetPage/SetPosts, the timer goroutine for a
// search commit).
type Store struct {
	fetcher Fetcher
	sched   schedule.Scheduler
	delay   time.Duration
	log     *slog.Logger

	page   *observe.Value[int]
	posts  *observe.Value[[]Post]
	search *observe.Value[SearchState]

	// mu guards the search generation and the pending commit.
	mu        sync.Mutex
	gen       uint64
	committed uint64
	pending   schedule.Task

	ready     chan struct{}
	readyOnce sync.Once
}

// New creates a store and starts its one FetchNews in the background.
// Nothing blocks on the fetch; wait on Ready when a caller needs the posts.
func New(ctx context.Context, fetcher Fetcher, opts ...Option) *Store {
	s := newStore(fetcher, opts...)
	go s.FetchNews(ctx)
	return s
}

func newStore(fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher: fetcher,
		sched:   schedule.Real{},
		delay:   DefaultSearchDelay,
		page:    observe.NewValue(1),
		posts:   observe.NewValue([]Post{}),
		search:  observe.NewValue(SearchState{Keywords: []string{}}),
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.log = s.log.WithGroup("news")
	return s
}

// Ready is closed once the first FetchNews has finished, successfully or not.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Page returns the current 1-based page.
func (s *Store) Page() int {
	return s.page.Get()
}

// Posts returns a copy of the full, unfiltered post list in fetch order.
func (s *Store) Posts() []Post {
	posts := s.posts.Get()
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}

// Search returns the current search state.
func (s *Store) Search() SearchState {
	return s.search.Get()
}

// SearchPending reports whether a keyword commit is scheduled.
func (s *Store) SearchPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// SetPage replaces the page unconditionally. Out-of-range pages are allowed
// and simply produce an empty or partial Filtered window.
func (s *Store) SetPage(page int) {
	s.page.Set(page)
}

// AdvancePage moves the page by delta in one atomic step and returns the new
// page. Like SetPage it does not clamp.
func (s *Store) AdvancePage(delta int) int {
	return s.page.Update(func(page int) int { return page + delta })
}

// SetPosts replaces the whole post collection. Page and search are untouched.
func (s *Store) SetPosts(posts []Post) {
	stored := make([]Post, len(posts))
	copy(stored, posts)
	s.posts.Set(stored)
}

// SetSearch records raw in the search box immediately and debounces the
// keyword commit.
//
// Any previously scheduled commit is cancelled. After the search delay with
// no further SetSearch, the commit tokenizes raw into Keywords and resets the
// page to 1 if it is not already 1.
func (s *Store) SetSearch(raw string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	prev := s.pending
	s.pending = nil
	notify := s.search.Stage(func(cur SearchState) SearchState {
		cur.Value = raw
		return cur
	})
	s.mu.Unlock()

	notify()
	if prev != nil {
		prev.Stop()
	}

	task := s.sched.AfterFunc(s.delay, func() {
		s.commitSearch(gen, raw)
	})

	s.mu.Lock()
	// The task may already have run (schedule.Immediate) or been superseded.
	if s.gen == gen && s.committed != gen {
		s.pending = task
	}
	s.mu.Unlock()
}

// commitSearch applies the keywords of generation gen if it is still current.
// Both changes are staged under s.mu so a newer SetSearch cannot interleave.
func (s *Store) commitSearch(gen uint64, raw string) {
	keywords := Tokenize(raw)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.committed = gen
	s.pending = nil
	notifySearch := s.search.Stage(func(cur SearchState) SearchState {
		cur.Keywords = keywords
		return cur
	})
	var notifyPage func()
	if s.page.Get() != 1 {
		notifyPage = s.page.Stage(func(int) int { return 1 })
	}
	s.mu.Unlock()

	notifySearch()
	if notifyPage != nil {
		notifyPage()
	}
}

// FetchNews reads the news endpoint once and replaces the posts on success.
//
// Failures are logged and swallowed: the store keeps whatever posts it had,
// no retry is scheduled, and nothing is surfaced to renderers.
func (s *Store) FetchNews(ctx context.Context) {
	defer s.readyOnce.Do(func() { close(s.ready) })

	if s.fetcher == nil {
		s.log.Error("failed to fetch news", "error", errNoFetcher)
		return
	}

	posts, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.log.Error("failed to fetch news", "error", err)
		return
	}
	s.log.Debug("news fetched", "posts", len(posts))
	s.SetPosts(posts)
}

// ByID maps post ids to posts; later duplicates win.
func (s *Store) ByID() map[ID]Post {
	return IndexByID(s.posts.Get())
}

// Filtered returns the current page of posts matching the committed keywords.
func (s *Store) Filtered() Filtered {
	return Filter(s.posts.Get(), s.search.Get().Keywords, s.page.Get(), PerPage)
}

// LatestFive returns headlines for the first five stored posts.
func (s *Store) LatestFive() []Headline {
	return LatestFive(s.posts.Get())
}

// ObservePage subscribes to page changes.
func (s *Store) ObservePage(fn func(int)) (unsubscribe func()) {
	return s.page.Subscribe(fn)
}

// ObservePosts subscribes to post list replacements.
func (s *Store) ObservePosts(fn func([]Post)) (unsubscribe func()) {
	return s.posts.Subscribe(fn)
}

// ObserveSearch subscribes to search state changes.
func (s *Store) ObserveSearch(fn func(SearchState)) (unsubscribe func()) {
	return s.search.Subscribe(fn)
}

// Subscribe calls fn after any state change. Renderers re-read the derived
// views from inside fn.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	cancels := []func(){
		s.page.Subscribe(func(int) { fn() }),
		s.posts.Subscribe(func([]Post) { fn() }),
		s.search.Subscribe(func(SearchState) { fn() }),
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
