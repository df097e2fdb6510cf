// Package news implements the news store behind the site's news pages.
//
// The store holds the authoritative in-memory copy of news posts plus every
// piece of view-affecting state: the pagination cursor and the search box.
// Renderers read derived views (Filtered, ByID, LatestFive) and call the two
// actions (SetPage, SetSearch) from UI event handlers.
//
// # Lifecycle
//
// New builds a store and starts exactly one background FetchNews. Rendering
// may proceed immediately against an empty post list; Ready is closed when the
// fetch finishes, and observers are notified when SetPosts runs. The store has
// no teardown.
//
// # Ownership
//
// There is no package-level store. A server request builds its own store and
// drops it with the response; a long-lived client session (the browse REPL)
// owns one store for its whole lifetime. A store is never shared between
// sessions.
//
// # Search debounce
//
// SetSearch records the raw text immediately and schedules a keyword commit
// after one second of inactivity. Each call bumps a generation counter; a
// commit applies only if its generation is still current, so a superseded
// commit can never land, even if its timer fired concurrently with the newer
// SetSearch.
//
// # Derived views
//
// Derived views are pure functions of current state (see Filter, IndexByID,
// LatestFive) recomputed on every read. Nothing is memoized.
package news
