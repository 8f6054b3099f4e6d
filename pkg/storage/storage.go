package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLimit is how much of an upload is read to detect its type.
const sniffLimit = 3072

// Storage keeps uploaded receipts and images.
type Storage interface {
	// Put stores r under key and returns the public URL of the object.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileTypeInvalid = errors.New("file type not allowed")
)

// Policy bounds what may be uploaded.
type Policy struct {
	MaxSize      int64
	AllowedTypes []string
}

// Check validates a file by name and size. Returned errors wrap
// domain.ErrValidation.
func (p Policy) Check(filename string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("empty file: %w", domain.ErrValidation)
	}
	if p.MaxSize > 0 && size > p.MaxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d: %w", ErrFileTooLarge, size, p.MaxSize, domain.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(p.AllowedTypes, ext) {
		return fmt.Errorf("%w: %q: %w", ErrFileTypeInvalid, ext, domain.ErrValidation)
	}
	return nil
}

// CheckContent matches the sniffed type of head against the file extension
// and, when the client sent one, the declared content type.
// application/octet-stream is treated as undeclared.
func (p Policy) CheckContent(filename, declared string, head []byte) (*mimetype.MIME, error) {
	detected := mimetype.Detect(head)
	if canonicalExt(detected.Extension()) != canonicalExt(filepath.Ext(filename)) {
		return nil, fmt.Errorf("%w: content is %s: %w", ErrFileTypeInvalid, detected.String(), domain.ErrValidation)
	}
	if declared == "" {
		return detected, nil
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return nil, fmt.Errorf("%w: content type %q: %w", ErrFileTypeInvalid, declared, domain.ErrValidation)
	}
	if mt != "application/octet-stream" && !detected.Is(mt) {
		return nil, fmt.Errorf("%w: declared %s, content is %s: %w",
			ErrFileTypeInvalid, mt, detected.String(), domain.ErrValidation)
	}
	return detected, nil
}

func canonicalExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}

// NewKey builds a unique object key under folder keeping the file
// extension, e.g. "receipts/2025/01/<uuid>.png".
func NewKey(folder, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", folder, now.UTC().Format("2006/01"), uuid.NewString(), ext)
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Uploader checks uploads against a policy before storing them.
type Uploader struct {
	store  Storage
	policy Policy
	now    func() time.Time
}

func NewUploader(store Storage, policy Policy) *Uploader {
	return &Uploader{store: store, policy: policy, now: time.Now}
}

// Save stores f below folder and returns its URL and key. The stored
// content type is the sniffed one.
func (u *Uploader) Save(ctx context.Context, folder string, f *Upload) (url, key string, err error) {
	if f == nil {
		return "", "", fmt.Errorf("file is required: %w", domain.ErrValidation)
	}
	if err := u.policy.Check(f.Filename, f.Size); err != nil {
		return "", "", err
	}
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(f.Body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	detected, err := u.policy.CheckContent(f.Filename, f.ContentType, head)
	if err != nil {
		return "", "", err
	}
	key = NewKey(folder, f.Filename, u.now())
	body := io.MultiReader(bytes.NewReader(head), f.Body)
	url, err = u.store.Put(ctx, key, body, f.Size, detected.String())
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// Discard removes an object stored by Save. Used to undo an upload whose
// record failed to commit.
func (u *Uploader) Discard(ctx context.Context, key string) error {
	return u.store.Delete(ctx, key)
}
