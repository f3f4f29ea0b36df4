package base64_test

import (
	"labbook/shared/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/png", base64.GetContentType("data:image/png;base64,AAAA"))
	assert.Empty(t, base64.GetContentType("image/png;base64,AAAA"))
	assert.Empty(t, base64.GetContentType("data:image/png,AAAA"))
	assert.False(t, base64.IsDataURI("https://cdn.lab.test/a.png"))
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, ".jpg", base64.Extension(contentType))

	_, _, err = base64.Decode("plain")
	assert.ErrorIs(t, err, base64.ErrNotDataURI)

	_, _, err = base64.Decode("data:image/png;base64,@@@")
	assert.Error(t, err)
}
