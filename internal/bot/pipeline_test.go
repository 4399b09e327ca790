package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maakle/bombo-go/internal/generation"
	"github.com/maakle/bombo-go/internal/storage"
)

type fakeLoader struct {
	locator string
	err     error
}

func (f fakeLoader) ReferenceImage() (string, error) {
	return f.locator, f.err
}

type fakeGenerator struct {
	output any
	err    error
	calls  []generation.Input
}

func (f *fakeGenerator) Generate(ctx context.Context, in generation.Input) (any, error) {
	f.calls = append(f.calls, in)
	return f.output, f.err
}

type fakeStore struct {
	url        string
	storeErr   error
	storeCalls []string
}

func (f *fakeStore) StoreImage(ctx context.Context, sourceURL, fileName string) (string, error) {
	f.storeCalls = append(f.storeCalls, fileName)
	if f.storeErr != nil {
		return "", f.storeErr
	}
	return f.url, nil
}

func (f *fakeStore) ImageURL(ctx context.Context, fileName string) (string, error) {
	return f.url, nil
}

func (f *fakeStore) DeleteImage(ctx context.Context, fileName string) error {
	return nil
}

func (f *fakeStore) ListImages(ctx context.Context, prefix string) ([]storage.ImageInfo, error) {
	return nil, nil
}

type fakeResponder struct {
	messages []*slack.WebhookMessage
}

func (f *fakeResponder) Respond(ctx context.Context, responseURL string, msg *slack.WebhookMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func newTestPipeline(loader fakeLoader, gen *fakeGenerator, store *fakeStore) (*Pipeline, *fakeResponder) {
	responder := &fakeResponder{}
	p := NewPipeline(loader, gen, store)
	p.responder = responder
	return p, responder
}

func command(text string) slack.SlashCommand {
	return slack.SlashCommand{
		Command:     "/generate",
		Text:        text,
		ResponseURL: "https://hooks.slack.test/response",
		UserID:      "U123",
	}
}

func TestHandleSuccess(t *testing.T) {
	gen := &fakeGenerator{output: "https://backend.test/generated.png"}
	store := &fakeStore{url: "https://minio.test/bombo-images/key.png"}
	p, responder := newTestPipeline(fakeLoader{locator: "https://ref.test/bombo.jpeg"}, gen, store)

	p.Handle(context.Background(), command("Bombo surfing"))

	require.Len(t, responder.messages, 2)

	interim := responder.messages[0]
	assert.Equal(t, responseInChannel, interim.ResponseType)
	assert.Contains(t, interim.Text, "Bombo surfing")
	assert.Contains(t, interim.Text, "Processing")

	final := responder.messages[1]
	assert.Equal(t, responseInChannel, final.ResponseType)
	assert.True(t, final.ReplaceOriginal)
	require.Len(t, final.Attachments, 1)
	assert.Equal(t, "https://minio.test/bombo-images/key.png", final.Attachments[0].ImageURL)
	assert.Equal(t, "Bombo sticker: Bombo surfing", final.Attachments[0].Fallback)

	// The generation call carried the reference image.
	require.Len(t, gen.calls, 1)
	assert.Equal(t, []string{"https://ref.test/bombo.jpeg"}, gen.calls[0].ReferenceImages)
	assert.Equal(t, "Bombo surfing", gen.calls[0].Theme)
}

func TestHandleEmptyPrompt(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		gen := &fakeGenerator{}
		store := &fakeStore{}
		p, responder := newTestPipeline(fakeLoader{locator: "ref"}, gen, store)

		p.Handle(context.Background(), command(text))

		require.Len(t, responder.messages, 1)
		msg := responder.messages[0]
		assert.Equal(t, responseEphemeral, msg.ResponseType)
		assert.Contains(t, msg.Text, "Usage: /generate")

		// No backend or storage calls for empty prompts.
		assert.Empty(t, gen.calls)
		assert.Empty(t, store.storeCalls)
	}
}

func TestHandleGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend unreachable")}
	store := &fakeStore{}
	p, responder := newTestPipeline(fakeLoader{locator: "ref"}, gen, store)

	p.Handle(context.Background(), command("a stormy day"))

	require.Len(t, responder.messages, 2)
	final := responder.messages[1]
	assert.Contains(t, final.Text, "Image Generation Failed")
	assert.Contains(t, final.Text, "a stormy day")
	assert.Contains(t, final.Text, "backend unreachable")
	assert.Empty(t, final.Attachments)

	// Nothing was written after the failed call.
	assert.Empty(t, store.storeCalls)
}

func TestHandleInvalidOutput(t *testing.T) {
	gen := &fakeGenerator{output: "None"}
	store := &fakeStore{}
	p, responder := newTestPipeline(fakeLoader{locator: "ref"}, gen, store)

	p.Handle(context.Background(), command("a quiet evening"))

	require.Len(t, responder.messages, 2)
	final := responder.messages[1]
	assert.Contains(t, final.Text, "Image Generation Failed")
	assert.Contains(t, final.Text, generation.ErrInvalidOutput.Error())
	assert.Empty(t, store.storeCalls)
}

func TestHandleStorageFailure(t *testing.T) {
	gen := &fakeGenerator{output: "https://backend.test/generated.png"}
	store := &fakeStore{storeErr: errors.New("upload rejected")}
	p, responder := newTestPipeline(fakeLoader{locator: "ref"}, gen, store)

	p.Handle(context.Background(), command("fishing trip"))

	require.Len(t, responder.messages, 2)
	final := responder.messages[1]
	assert.Contains(t, final.Text, "fishing trip")
	assert.Contains(t, final.Text, "upload rejected")

	// No presigned URL reaches the user.
	assert.Empty(t, final.Attachments)
}

func TestHandleAssetLoadFailure(t *testing.T) {
	gen := &fakeGenerator{output: "https://backend.test/generated.png"}
	store := &fakeStore{}
	p, responder := newTestPipeline(fakeLoader{err: errors.New("reference image unreadable")}, gen, store)

	p.Handle(context.Background(), command("market day"))

	require.Len(t, responder.messages, 2)
	final := responder.messages[1]
	assert.Contains(t, final.Text, "reference image unreadable")

	// The backend is never called without a reference image.
	assert.Empty(t, gen.calls)
	assert.Empty(t, store.storeCalls)
}

func TestHandleInterimAlwaysPrecedesTerminal(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	store := &fakeStore{}
	p, responder := newTestPipeline(fakeLoader{locator: "ref"}, gen, store)

	p.Handle(context.Background(), command("any theme"))

	require.Len(t, responder.messages, 2)
	assert.Contains(t, responder.messages[0].Text, "Processing")
	assert.False(t, responder.messages[0].ReplaceOriginal)
	assert.True(t, responder.messages[1].ReplaceOriginal)
}

func TestHandleStoresUnderSynthesizedKey(t *testing.T) {
	gen := &fakeGenerator{output: "https://backend.test/generated.png"}
	store := &fakeStore{url: "https://minio.test/x.png"}
	p, _ := newTestPipeline(fakeLoader{locator: "ref"}, gen, store)

	p.Handle(context.Background(), command("Hello, World!"))

	require.Len(t, store.storeCalls, 1)
	assert.Regexp(t, `^bombo-Hello--World--\d+\.png$`, store.storeCalls[0])
}
