package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcashweb/internal/news"
)

func TestLoad(t *testing.T) {
	posts, err := Load(filepath.Join("testdata", "news.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []news.Post{
		{ID: "1", Title: "Alpha Launch", Body: "We launched.", Timestamp: 1500000000},
		{ID: "2", Title: "Beta", Body: "Alpha inside.", Timestamp: 1500086400},
		{ID: "post-3", Title: "Gamma", Body: "Nothing related.", Timestamp: 1500172800},
	}, posts)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    []news.Post
		wantErr string
	}{
		{
			name: "empty document",
			yaml: "",
			want: []news.Post{},
		},
		{
			name: "empty list",
			yaml: "posts: []\n",
			want: []news.Post{},
		},
		{
			name: "unquoted timestamp",
			yaml: "posts:\n  - id: a\n    title: t\n    timestamp: 1970-01-01T00:01:00Z\n",
			want: []news.Post{{ID: "a", Title: "t", Timestamp: 60}},
		},
		{
			name: "missing timestamp",
			yaml: "posts:\n  - id: 9\n    title: t\n",
			want: []news.Post{{ID: "9", Title: "t"}},
		},
		{
			name: "duplicate ids kept in order",
			yaml: "posts:\n  - id: 1\n    title: first\n  - id: 1\n    title: second\n",
			want: []news.Post{{ID: "1", Title: "first"}, {ID: "1", Title: "second"}},
		},
		{
			name:    "unknown field",
			yaml:    "posts:\n  - id: 1\n    tittle: t\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing id",
			yaml:    "posts:\n  - title: t\n",
			wantErr: "posts[0]: id is required",
		},
		{
			name:    "list id",
			yaml:    "posts:\n  - id: [1]\n",
			wantErr: "id must be an integer or string",
		},
		{
			name:    "bad timestamp",
			yaml:    "posts:\n  - id: 1\n    timestamp: yesterday\n",
			wantErr: "timestamp",
		},
		{
			name: "fractional timestamp",
			yaml: "posts:\n  - id: 1\n    timestamp: 1500000000.75\n",
			want: []news.Post{{ID: "1", Timestamp: 1500000000}},
		},
		{
			name:    "timestamp out of range",
			yaml:    "posts:\n  - id: 1\n    timestamp: 1.0e300\n",
			wantErr: "posts[0]: timestamp 1e+300 is out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	posts := []news.Post{
		{ID: "1", Title: "Alpha Launch", Body: "We launched.", Timestamp: 1500000000},
		{ID: "post-3", Title: "Gamma", Body: "Multi\nline", Timestamp: 0},
		{ID: "007", Title: "Leading zeros stay strings"},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, posts))
	assert.Contains(t, buf.String(), "id: 1\n")
	assert.Contains(t, buf.String(), `id: "007"`)

	got, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, posts, got)
}
