package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhotoKey(t *testing.T) {
	assert.NoError(t, validatePhotoKey("tenant-1/vehicle-2/item-3.jpg"))
	assert.Error(t, validatePhotoKey("tenant-1/../other-tenant/item.jpg"))
	assert.Error(t, validatePhotoKey(".."))
}

func TestPhotoKey(t *testing.T) {
	assert.Equal(t, "t1/v2/i3.jpg", PhotoKey("t1", "v2", "i3"))
}
