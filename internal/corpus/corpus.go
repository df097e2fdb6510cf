// Package corpus reads the YAML news corpus that seeds the post repository.
//
// A corpus file looks like:
//
//	posts:
//	  - id: 1
//	    title: Alpha Launch
//	    body: We launched.
//	    timestamp: 1500000000
//
// Ids may be integers or strings. Timestamps may be UNIX seconds or RFC 3339
// strings. Order is preserved: it is the order the news endpoint serves.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vcashweb/internal/news"
)

// File is the on-disk corpus document.
type File struct {
	// Posts lists the posts in serving order. Duplicate ids are kept; the
	// store's byId view lets the later one win.
	Posts []Entry `yaml:"posts"`
}

// Entry is one post as written in YAML.
type Entry struct {
	ID        interface{} `yaml:"id"`
	Title     string      `yaml:"title"`
	Body      string      `yaml:"body"`
	Timestamp interface{} `yaml:"timestamp,omitempty"`
}

// Load reads and parses a corpus file.
func Load(path string) ([]news.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	posts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return posts, nil
}

// Parse decodes a corpus document. Unknown fields are rejected so typos
// like "tittle:" fail loudly instead of producing empty posts.
func Parse(data []byte) ([]news.Post, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []news.Post{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	posts := make([]news.Post, 0, len(file.Posts))
	for i, entry := range file.Posts {
		post, err := entry.Post()
		if err != nil {
			return nil, fmt.Errorf("posts[%d]: %w", i, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Post converts the entry into a news post.
func (e Entry) Post() (news.Post, error) {
	id, err := convertID(e.ID)
	if err != nil {
		return news.Post{}, err
	}
	ts, err := convertTimestamp(e.Timestamp)
	if err != nil {
		return news.Post{}, err
	}
	return news.Post{ID: id, Title: e.Title, Body: e.Body, Timestamp: ts}, nil
}

func convertID(v interface{}) (news.ID, error) {
	switch id := v.(type) {
	case nil:
		return "", errors.New("id is required")
	case int:
		return news.ID(strconv.Itoa(id)), nil
	case int64:
		return news.ID(strconv.FormatInt(id, 10)), nil
	case uint64:
		return news.ID(strconv.FormatUint(id, 10)), nil
	case string:
		if id == "" {
			return "", errors.New("id is required")
		}
		return news.ID(id), nil
	default:
		return "", fmt.Errorf("id must be an integer or string, got %T", v)
	}
}

func convertTimestamp(v interface{}) (news.Timestamp, error) {
	switch ts := v.(type) {
	case nil:
		return 0, nil
	case int:
		return news.Timestamp(ts), nil
	case int64:
		return news.Timestamp(ts), nil
	case float64:
		if ts < math.MinInt64 || ts >= math.MaxInt64 {
			return 0, fmt.Errorf("timestamp %g is out of range", ts)
		}
		return news.Timestamp(int64(ts)), nil
	case time.Time:
		return news.Timestamp(ts.Unix()), nil
	case string:
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return 0, fmt.Errorf("timestamp: %w", err)
		}
		return news.Timestamp(t.Unix()), nil
	default:
		return 0, fmt.Errorf("timestamp must be UNIX seconds or RFC 3339, got %T", v)
	}
}

// Encode writes posts as a corpus document. Numeric ids are written as
// integers so a round trip through Parse keeps them numeric.
func Encode(w io.Writer, posts []news.Post) error {
	file := File{Posts: make([]Entry, len(posts))}
	for i, p := range posts {
		var id interface{} = string(p.ID)
		if n, err := strconv.ParseInt(string(p.ID), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(p.ID) {
			id = n
		}
		file.Posts[i] = Entry{ID: id, Title: p.Title, Body: p.Body, Timestamp: int64(p.Timestamp)}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}
	return enc.Close()
}
