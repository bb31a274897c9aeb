package todos

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"sync"
)

// pngBytes starts with the PNG signature, which is all mimetype needs.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), []byte("fake image body")...)

var pngDataURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

func pngUpload(name string) *Upload {
	return &Upload{Filename: name, Size: int64(len(pngBytes)), Content: bytes.NewReader(pngBytes)}
}

type fakeRepo struct {
	mu      sync.Mutex
	todos   []Todo
	saves   int
	failErr error
}

func (r *fakeRepo) Load(ctx context.Context) ([]Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.todos), nil
}

func (r *fakeRepo) Save(ctx context.Context, todos []Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.todos = clone(todos)
	r.saves++
	return nil
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

var errDisk = errors.New("disk unplugged")

func sampleTodos() []Todo {
	return []Todo{
		{ID: 1, Title: "one", Description: "first", EndDate: "2024-01-01", Image: pngDataURI},
		{ID: 2, Title: "two", Description: "second", EndDate: "2024-01-02", Image: pngDataURI, IsCompleted: true},
		{ID: 3, Title: "three", Description: "third", EndDate: "2024-01-03", Image: pngDataURI},
	}
}

func readerOf(s string) *bytes.Reader { return bytes.NewReader([]byte(s)) }
