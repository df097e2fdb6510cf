package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/roach88/vcashweb/internal/news"
)

// sessionCommands lists the browse commands, for help and tab completion.
var sessionCommands = []string{"search", "page", "next", "prev", "latest", "show", "list", "help", "quit"}

// Session is one interactive browse session over a single news store.
//
// The listing is re-rendered whenever the store's page, posts or committed
// keywords change. Identical consecutive listings are printed once.
//
// Thread-safety: Exec and store notifications may run on different
// goroutines; output is serialized by mu.
type Session struct {
	store *news.Store
	out   io.Writer

	mu          sync.Mutex
	last        string
	unsubscribe func()
}

// NewSession attaches a session to st and subscribes to its changes.
func NewSession(st *news.Store, out io.Writer) *Session {
	s := &Session{store: st, out: out}

	var keywordsMu sync.Mutex
	var keywords []string
	cancels := []func(){
		st.ObservePage(func(int) { s.Render() }),
		st.ObservePosts(func([]news.Post) { s.Render() }),
		st.ObserveSearch(func(search news.SearchState) {
			// Typing only changes Value; render once the keywords commit.
			keywordsMu.Lock()
			changed := !equalStrings(keywords, search.Keywords)
			keywords = search.Keywords
			keywordsMu.Unlock()
			if changed {
				s.Render()
			}
		}),
	}
	s.unsubscribe = func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
	return s
}

// Close detaches the session from the store.
func (s *Session) Close() {
	s.unsubscribe()
}

// Exec runs one command line. It reports whether the session should end.
func (s *Session) Exec(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printf("Commands: %s\n", strings.Join(sessionCommands, ", "))
		s.printf("  search <words>  filter posts (empty clears the filter)\n")
		s.printf("  page <n>        jump to page n\n")
		s.printf("  show <id>       print one post\n")
	case "search", "s":
		s.store.SetSearch(rest)
	case "page", "p":
		page, err := strconv.Atoi(rest)
		if err != nil {
			s.printf("page: %q is not a number\n", rest)
			return false
		}
		s.store.SetPage(page)
	case "next", "n":
		s.store.AdvancePage(1)
	case "prev":
		s.store.AdvancePage(-1)
	case "latest":
		s.printLatest()
	case "show":
		s.printPost(news.ID(rest))
	case "list", "ls":
		s.forceRender()
	default:
		s.printf("Unknown command: %s (type 'help' for commands)\n", name)
	}
	return false
}

// Render prints the current listing unless it matches the previous one.
func (s *Session) Render() {
	view := s.listing()
	s.mu.Lock()
	defer s.mu.Unlock()
	if view == s.last {
		return
	}
	s.last = view
	io.WriteString(s.out, view)
}

func (s *Session) forceRender() {
	view := s.listing()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = view
	io.WriteString(s.out, view)
}

// listing formats the filtered window.
func (s *Session) listing() string {
	filtered := s.store.Filtered()
	keywords := s.store.Search().Keywords
	page := s.store.Page()

	var b strings.Builder
	fmt.Fprintf(&b, "-- page %d of %d, %d posts", page, news.Pages(filtered.Count, news.PerPage), filtered.Count)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, " matching %q", strings.Join(keywords, " "))
	}
	b.WriteString(" --\n")
	if len(filtered.Posts) == 0 {
		b.WriteString("(no posts)\n")
	}
	for _, p := range filtered.Posts {
		fmt.Fprintf(&b, "[%s] %s %s\n", p.ID, p.Timestamp.Time().Format("2006-01-02"), p.Title)
	}
	return b.String()
}

func (s *Session) printLatest() {
	var b strings.Builder
	b.WriteString("-- latest news --\n")
	for _, h := range s.store.LatestFive() {
		fmt.Fprintf(&b, "[%s] %s\n", h.ID, h.Title)
	}
	s.printf("%s", b.String())
}

func (s *Session) printPost(id news.ID) {
	if id == "" {
		s.printf("show: missing post id\n")
		return
	}
	p, ok := s.store.ByID()[id]
	if !ok {
		s.printf("show: post %s not found\n", id)
		return
	}
	s.printf("%s\n%s\n\n%s\n", p.Title, p.Timestamp.Time().Format("2006-01-02"), p.Body)
}

func (s *Session) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// complete offers command names for tab completion.
func complete(line string) []string {
	var out []string
	for _, c := range sessionCommands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
