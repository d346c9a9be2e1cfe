package repositories_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/syneepse/ResumeFix/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := repositories.NewLocalStore(dir)
	require.NoError(t, err)

	n, err := store.Save(ctx, "1-abc-cv.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	// Generated names never overwrite.
	_, err = store.Save(ctx, "1-abc-cv.pdf", strings.NewReader("other"), "application/pdf")
	assert.Error(t, err)

	rc, err := store.Open(ctx, "1-abc-cv.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, store.Delete(ctx, "1-abc-cv.pdf"))
	_, err = os.Stat(filepath.Join(dir, "1-abc-cv.pdf"))
	assert.True(t, os.IsNotExist(err))

	// Already gone is still a successful delete.
	assert.NoError(t, store.Delete(ctx, "1-abc-cv.pdf"))

	_, err = store.Open(ctx, "1-abc-cv.pdf")
	assert.ErrorIs(t, err, repositories.ErrFileNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := repositories.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(ctx, "../escape.pdf", strings.NewReader("x"), "")
	assert.Error(t, err)

	_, err = store.Open(ctx, "../escape.pdf")
	assert.ErrorIs(t, err, repositories.ErrFileNotFound)
}

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestR2Store(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	store := repositories.NewR2Store(objects, "resumes")

	n, err := store.Save(ctx, "2-xyz-cv.docx", strings.NewReader("docx-bytes"), "application/msword")
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, "application/msword", objects.types["2-xyz-cv.docx"])

	rc, err := store.Open(ctx, "2-xyz-cv.docx")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "docx-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "2-xyz-cv.docx"))
	_, err = store.Open(ctx, "2-xyz-cv.docx")
	assert.ErrorIs(t, err, repositories.ErrFileNotFound)
}
