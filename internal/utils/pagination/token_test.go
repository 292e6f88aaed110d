package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	in := Cursor{
		LastDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		LastID:   "entry-123",
	}

	token, err := EncodeToken(in)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, in.LastDate.Equal(out.LastDate))
	assert.Equal(t, in.LastID, out.LastID)
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, err := DecodeToken("not base64!!!")
	assert.Error(t, err)

	_, err = DecodeToken("bm90LWpzb24")
	assert.Error(t, err)
}
