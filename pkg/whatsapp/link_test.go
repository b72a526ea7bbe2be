package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLinkEncodesNewlines(t *testing.T) {
	t.Parallel()

	link, err := BuildLink("https://wa.me/56912345678", "Hola\nCotización Nº COT-1")
	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "Hola\nCotización Nº COT-1", parsed.Query().Get("text"))
}

func TestBuildLinkRequiresBase(t *testing.T) {
	t.Parallel()

	_, err := BuildLink("   ", "hola")
	assert.Error(t, err)
}
