package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

//go:embed locales
var embedded embed.FS

// maxBundleBytes bounds how much of a remote bundle is read.
const maxBundleBytes = 1 << 20

// Locales returns the embedded locales tree, rooted so that bundles live at
// <lang>/<namespace>.json.
func Locales() fs.FS {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded locales: %v", err))
	}
	return sub
}

// Loader fetches translation bundles.
type Loader interface {
	// Load returns the bundles for lang, one per namespace in files.
	// Any missing or malformed bundle fails the whole load.
	Load(ctx context.Context, lang string, files []string) (Resources, error)
}

// ErrBundleNotFound is returned when a bundle does not exist.
var ErrBundleNotFound = errors.New("translation bundle not found")

// BundlePath returns the relative path of a bundle: <lang>/<namespace>.json.
// It rejects languages and namespaces that would escape the locales tree.
func BundlePath(lang, ns string) (string, error) {
	if lang == "" || ns == "" || strings.ContainsAny(lang+ns, `/\`) || lang == ".." || ns == ".." {
		return "", fmt.Errorf("invalid bundle %q/%q", lang, ns)
	}
	p := path.Join(lang, ns+".json")
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid bundle %q/%q", lang, ns)
	}
	return p, nil
}

// FSLoader reads bundles from a file system laid out as <lang>/<namespace>.json.
type FSLoader struct {
	FS fs.FS
}

// NewFSLoader creates a loader over fsys. A nil fsys uses the embedded locales.
func NewFSLoader(fsys fs.FS) *FSLoader {
	if fsys == nil {
		fsys = Locales()
	}
	return &FSLoader{FS: fsys}
}

// Load implements Loader.
func (l *FSLoader) Load(ctx context.Context, lang string, files []string) (Resources, error) {
	namespaces := make(map[string]Bundle, len(files))
	for _, ns := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := BundlePath(lang, ns)
		if err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(l.FS, p)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p, ErrBundleNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		bundle, err := decodeBundle(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		namespaces[ns] = bundle
	}
	return Resources{lang: namespaces}, nil
}

// HTTPLoader GETs bundles from <Host>/static/locales/<lang>/<namespace>.json.
type HTTPLoader struct {
	Client *http.Client
	Host   string
}

// NewHTTPLoader creates a loader for host (scheme and authority, no trailing
// path), e.g. "https://vcash.info".
func NewHTTPLoader(host string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		Host:   strings.TrimRight(host, "/"),
		Client: &http.Client{Timeout: timeout},
	}
}

// BundleURL returns the remote location of a bundle.
func (l *HTTPLoader) BundleURL(lang, ns string) (string, error) {
	p, err := BundlePath(lang, ns)
	if err != nil {
		return "", err
	}
	return l.Host + "/static/locales/" + (&url.URL{Path: p}).EscapedPath(), nil
}

// Load implements Loader. Bundles are fetched one at a time, in order.
func (l *HTTPLoader) Load(ctx context.Context, lang string, files []string) (Resources, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	namespaces := make(map[string]Bundle, len(files))
	for _, ns := range files {
		u, err := l.BundleURL(lang, ns)
		if err != nil {
			return nil, err
		}
		bundle, err := l.fetch(ctx, client, u)
		if err != nil {
			return nil, err
		}
		namespaces[ns] = bundle
	}
	return Resources{lang: namespaces}, nil
}

func (l *HTTPLoader) fetch(ctx context.Context, client *http.Client, u string) (Bundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", u, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", u, ErrBundleNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %d", u, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	bundle, err := decodeBundle(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", u, err)
	}
	return bundle, nil
}

// decodeBundle parses a flat JSON object of strings.
func decodeBundle(data []byte) (Bundle, error) {
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, errors.New("bundle is not a JSON object")
	}
	return bundle, nil
}
