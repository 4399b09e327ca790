// internal/asset/asset.go
package asset

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrAssetLoad indicates the reference image could not be read. A command
// that hits this error aborts before any backend call is made.
var ErrAssetLoad = errors.New("failed to load reference image")

// ReferenceLoader supplies the locator for the fixed character reference
// image handed to the generation backend.
type ReferenceLoader interface {
	ReferenceImage() (string, error)
}

// RemoteReference serves a static, publicly reachable URL. No I/O.
type RemoteReference struct {
	URL string
}

func (r RemoteReference) ReferenceImage() (string, error) {
	return r.URL, nil
}

// LocalReference reads a local JPEG and serves it as a base64 data URI.
// The read is memoized for the process lifetime; the asset never changes
// while the bot is running.
type LocalReference struct {
	Path string

	once    sync.Once
	dataURI string
	err     error
}

func (l *LocalReference) ReferenceImage() (string, error) {
	l.once.Do(func() {
		raw, err := os.ReadFile(l.Path)
		if err != nil {
			l.err = fmt.Errorf("%w: reading %s: %v", ErrAssetLoad, l.Path, err)
			return
		}
		l.dataURI = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	})
	return l.dataURI, l.err
}

// NewReferenceLoader picks the local-embed strategy when a path is
// configured, otherwise the remote-URL strategy.
func NewReferenceLoader(localPath, remoteURL string) ReferenceLoader {
	if localPath != "" {
		return &LocalReference{Path: localPath}
	}
	return RemoteReference{URL: remoteURL}
}
