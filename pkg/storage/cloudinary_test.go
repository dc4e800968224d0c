package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"versioned", "https://res.cloudinary.com/demo/image/upload/v1712/langanalytics/logos/acme.webp", "langanalytics/logos/acme"},
		{"no version", "https://res.cloudinary.com/demo/image/upload/logos/acme.png", "logos/acme"},
		{"folder starting with v", "https://res.cloudinary.com/demo/image/upload/vendors/acme.png", "vendors/acme"},
		{"not cloudinary", "https://example.com/acme.png", ""},
		{"garbage", "://", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicIDFromURL(tt.url))
		})
	}
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("logo.PNG"))
	assert.True(t, IsImageFile("logo.jpeg"))
	assert.False(t, IsImageFile("logo.pdf"))
	assert.False(t, IsImageFile("logo"))
}
