package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	png, err := Generate("http://localhost:8080/api/v1/user/7")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestGenerateEmptyContent(t *testing.T) {
	_, err := Generate("")
	assert.Error(t, err)
}
