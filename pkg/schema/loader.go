package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// Loader fetches raw schema documents by delegating to file, fs.FS, or HTTP
// strategies depending on the source kind.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem supplies an fs.FS backing SourceKindFS loads.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithHTTPClient enables URL sources using the supplied client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
		l.allowHTTP = client != nil
	}
}

// WithRequestTimeout bounds URL fetches.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// NewLoader constructs a Loader applying the provided options. URL sources
// are disabled unless an HTTP client is configured.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load fetches a document from the provided source and wraps it.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		if err = ctx.Err(); err == nil {
			data, err = os.ReadFile(src.Location())
		}
	case SourceKindFS:
		if l.fs == nil {
			return Document{}, errors.New("schema loader: no file system configured")
		}
		if err = ctx.Err(); err == nil {
			data, err = fs.ReadFile(l.fs, src.Location())
		}
	case SourceKindURL:
		if !l.allowHTTP {
			return Document{}, errors.New("schema loader: http support disabled")
		}
		data, err = l.loadHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("schema loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, err
	}

	return NewDocument(src, data)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("schema loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("schema loader: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
