package asset

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteReference(t *testing.T) {
	loader := RemoteReference{URL: "https://example.com/bombo.jpeg"}

	got, err := loader.ReferenceImage()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/bombo.jpeg", got)
}

func TestLocalReferenceEncodesDataURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bombo.jpeg")
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0x01, 0x02}
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	loader := &LocalReference{Path: path}

	got, err := loader.ReferenceImage()
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(payload), got)
}

func TestLocalReferenceMissingFile(t *testing.T) {
	loader := &LocalReference{Path: filepath.Join(t.TempDir(), "missing.jpeg")}

	_, err := loader.ReferenceImage()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssetLoad))
}

func TestLocalReferenceMemoizesRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bombo.jpeg")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	loader := &LocalReference{Path: path}
	first, err := loader.ReferenceImage()
	require.NoError(t, err)

	// Overwriting the file must not change the served locator.
	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	second, err := loader.ReferenceImage()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewReferenceLoaderStrategySelection(t *testing.T) {
	local := NewReferenceLoader("/tmp/bombo.jpeg", "https://example.com/bombo.jpeg")
	_, isLocal := local.(*LocalReference)
	assert.True(t, isLocal)

	remote := NewReferenceLoader("", "https://example.com/bombo.jpeg")
	_, isRemote := remote.(RemoteReference)
	assert.True(t, isRemote)
}
