package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:3000/uploads/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "receipts/2025/01/a.png", bytes.NewBufferString("img"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/receipts/2025/01/a.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "receipts", "2025", "01", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	require.NoError(t, s.Delete(context.Background(), "receipts/2025/01/a.png"))
	require.NoError(t, s.Delete(context.Background(), "receipts/2025/01/a.png"))
}

func TestLocalStorage_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "up"), "/uploads")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "../../evil.txt", bytes.NewBufferString("x"), 1, "")
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "up", "evil.txt"))
	assert.NoError(t, statErr)
}

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	client := &fakeS3{}
	s := NewS3StorageWithClient(client, "bucket", "https://cdn.example.com/")

	url, err := s.Put(context.Background(), "news/x.jpg", bytes.NewBufferString("abc"), 3, "")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/news/x.jpg", url)
	assert.Equal(t, "bucket", aws.ToString(client.put.Bucket))
	assert.Equal(t, "application/octet-stream", aws.ToString(client.put.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(client.put.ContentLength))
	assert.Equal(t, "abc", string(client.body))

	require.NoError(t, s.Delete(context.Background(), "news/x.jpg"))
	assert.Equal(t, "news/x.jpg", client.deleted)

	client.err = errors.New("boom")
	_, err = s.Put(context.Background(), "k", bytes.NewBufferString("a"), 1, "")
	assert.ErrorContains(t, err, "boom")
}

func TestNew_Driver(t *testing.T) {
	s, err := New(context.Background(), &config.Upload{Driver: "local", Dir: t.TempDir()}, "http://localhost:3000")
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = New(context.Background(), &config.Upload{Driver: "s3", S3: &config.S3{}}, "")
	assert.Error(t, err)

	_, err = New(context.Background(), &config.Upload{Driver: "ftp"}, "")
	assert.Error(t, err)
}
