package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakasatria/folio/internal/utils"
)

type fakeStore struct {
	objects   map[string]string
	uploadErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (f *fakeStore) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, _ := io.ReadAll(r)
	f.objects[name] = string(b)
	return "https://fake/" + name, nil
}

func (f *fakeStore) Delete(_ context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.objects[name]; !ok {
		return errors.New("no such object")
	}
	delete(f.objects, name)
	return nil
}

func (f *fakeStore) Resolve(url string) (string, bool) {
	name, ok := strings.CutPrefix(url, "https://fake/")
	return name, ok
}

func TestUploadNamesObjectUnderOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewUploadService(store)

	url, err := svc.Upload(context.Background(), testOwner, "avatar.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)

	name, ok := store.Resolve(url)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(name, "uploads/"+testOwner+"/"))
	assert.True(t, strings.HasSuffix(name, ".png"), "original extension survives")
	assert.Equal(t, "img", store.objects[name])
}

func TestReplaceDeletesPriorObject(t *testing.T) {
	store := newFakeStore()
	svc := NewUploadService(store)
	ctx := context.Background()

	prior, err := svc.Upload(ctx, testOwner, "old.png", "image/png", strings.NewReader("old"))
	require.NoError(t, err)

	url, err := svc.Replace(ctx, testOwner, prior, "new.png", "image/png", strings.NewReader("new"))
	require.NoError(t, err)
	assert.NotEqual(t, prior, url)

	assert.Len(t, store.objects, 1, "replace must not orphan the prior object")
	name, _ := store.Resolve(url)
	assert.Equal(t, "new", store.objects[name])
}

func TestReplaceUploadsBeforeDeleting(t *testing.T) {
	store := newFakeStore()
	svc := NewUploadService(store)
	ctx := context.Background()

	prior, err := svc.Upload(ctx, testOwner, "old.png", "image/png", strings.NewReader("old"))
	require.NoError(t, err)

	store.uploadErr = errors.New("bucket down")
	_, err = svc.Replace(ctx, testOwner, prior, "new.png", "image/png", strings.NewReader("new"))
	require.Error(t, err)

	name, _ := store.Resolve(prior)
	assert.Contains(t, store.objects, name, "a failed upload must not touch the prior object")
}

func TestReplaceReportsFailedCleanup(t *testing.T) {
	store := newFakeStore()
	svc := NewUploadService(store)
	ctx := context.Background()

	prior, err := svc.Upload(ctx, testOwner, "old.png", "image/png", strings.NewReader("old"))
	require.NoError(t, err)

	store.deleteErr = errors.New("bucket down")
	url, err := svc.Replace(ctx, testOwner, prior, "new.png", "image/png", strings.NewReader("new"))

	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
	assert.NotEmpty(t, url, "the new URL is still returned so the caller can keep it")
}

func TestDeleteForeignURLRejected(t *testing.T) {
	svc := NewUploadService(newFakeStore())

	err := svc.Delete(context.Background(), "https://elsewhere/obj")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
