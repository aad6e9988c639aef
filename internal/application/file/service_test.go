package file

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestUpload_RejectsOversize(t *testing.T) {
	svc := NewService(&mockObjectStore{}, 1024)
	_, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("x"),
		Filename:    "big.png",
		ContentType: "image/png",
		Size:        2048,
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpload_RejectsDisallowedType(t *testing.T) {
	svc := NewService(&mockObjectStore{}, 1024)
	_, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("#!/bin/sh"),
		Filename:    "run.sh",
		ContentType: "application/x-sh",
		Size:        9,
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpload_KeyKeepsExtensionOnly(t *testing.T) {
	store := &mockObjectStore{}
	var key string
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
		Run(func(args mock.Arguments) { key = args.String(1) }).
		Return("https://cdn.example.com/obj", nil)

	svc := NewService(store, 1024)
	res, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("jpegdata"),
		Filename:    "my retreat photo.JPEG",
		ContentType: "image/jpeg",
		Size:        8,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".jpeg"))
	assert.NotContains(t, key, "retreat")
	assert.Equal(t, "https://cdn.example.com/obj", res.URL)
}

func TestDelete_OutsideUploadPrefix(t *testing.T) {
	svc := NewService(&mockObjectStore{}, 1024)
	err := svc.Delete(context.Background(), "../secrets/key.pem")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
