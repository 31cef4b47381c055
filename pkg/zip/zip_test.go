package zip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveAssetsRoundTrip(t *testing.T) {
	assets := []Asset{
		{Filename: "mothers-day-card-author.png", MIME: "image/png", Data: []byte("one")},
		{Filename: "mothers-day-card-author.png", MIME: "image/png", Data: []byte("two")},
		{Filename: "../../etc/mothers-day-card-artist.png", MIME: "image/png", Data: []byte("three")},
		{Filename: "notes.txt", MIME: "text/plain", Data: []byte("four")},
	}
	archive, err := ArchiveAssets(assets)
	require.NoError(t, err)

	got, err := ReadAssets(archive)
	require.NoError(t, err)
	require.Len(t, got, 4)

	names := make([]string, len(got))
	for i, a := range got {
		names[i] = a.Filename
	}
	assert.Equal(t, []string{
		"mothers-day-card-author.png",
		"mothers-day-card-author-2.png",
		"mothers-day-card-artist.png",
		"notes.txt",
	}, names)
	assert.Equal(t, []byte("two"), got[1].Data)
	assert.Equal(t, []byte("four"), got[3].Data)
}

func TestUniqueNameAvoidsSuffixClash(t *testing.T) {
	used := map[string]int{}
	assert.Equal(t, "a-2.png", uniqueName("a-2.png", used))
	assert.Equal(t, "a.png", uniqueName("a.png", used))
	assert.Equal(t, "a-2-2.png", uniqueName("a.png", used))
}

func TestRequireAssets(t *testing.T) {
	assert.Error(t, RequireAssets(nil))
	assert.NoError(t, RequireAssets([]Asset{{Filename: "x"}}))
}
