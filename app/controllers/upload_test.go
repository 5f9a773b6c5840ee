package controllers

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/rasoi/pkg/storage"
)

type captureDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newCaptureDisk() *captureDisk { return &captureDisk{files: map[string][]byte{}} }

func (d *captureDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = content
	return nil
}

func (d *captureDisk) PutStream(path string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, b)
}

func (d *captureDisk) Get(path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.files[path]; ok {
		return b, nil
	}
	return nil, os.ErrNotExist
}

func (d *captureDisk) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *captureDisk) Delete(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *captureDisk) URL(path string) string { return "/uploads/" + path }

func TestStoreFileSanitizesName(t *testing.T) {
	disk := newCaptureDisk()
	storage.RegisterDisk("capture", disk)
	storage.SetDefault("capture")

	path, err := storeFile(strings.NewReader("content"), "../.. evil name?.png")
	require.NoError(t, err)

	assert.NotContains(t, path, "/")
	assert.NotContains(t, path, "..", "path traversal fragments must be stripped")
	assert.NotContains(t, path, " ")
	assert.True(t, strings.HasSuffix(path, ".png"))
	assert.True(t, disk.Exists(path))
}
