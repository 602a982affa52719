package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/camp-photos/photo_b-1.jpg", PublicURL("camp-photos", "photo_b-1.jpg"))
}
