package metainfo

import (
	"testing"

	abencode "github.com/anacrolix/torrent/bencode"
	ametainfo "github.com/anacrolix/torrent/metainfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Descriptors written by a widely used client use "piece length" and carry
// extra keys; they must decode to the same model and info-hash.
func TestParse_anacrolixMultiFile(t *testing.T) {
	pieces := []byte(testPieces + testPieces)
	info := ametainfo.Info{
		Name:        "pkg",
		PieceLength: 16384,
		Pieces:      pieces,
		Files: []ametainfo.FileInfo{
			{Length: 5, Path: []string{"a.txt"}},
			{Length: 20000, Path: []string{"docs", "manual.pdf"}},
		},
	}
	mi := ametainfo.MetaInfo{
		Announce:     testAnnounce,
		Comment:      "built for tests",
		CreatedBy:    "anacrolix",
		CreationDate: 1700000000,
		InfoBytes:    abencode.MustMarshal(info),
	}
	buf := abencode.MustMarshal(mi)

	tf, err := Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, testAnnounce, tf.Announce)
	assert.Equal(t, "pkg", tf.Info.Name)
	assert.Equal(t, uint64(16384), tf.Info.PieceLength)
	assert.Len(t, tf.Info.Pieces, 2)
	assert.Equal(t, Multiple{Files: []FileListItem{
		{Length: 5, Path: []string{"a.txt"}},
		{Length: 20000, Path: []string{"docs", "manual.pdf"}},
	}}, tf.Info.FileList)
	assert.Equal(t, [20]byte(mi.HashInfoBytes()), tf.InfoHash)
}

func TestParse_anacrolixSingleFile(t *testing.T) {
	info := ametainfo.Info{
		Name:        "disk.img",
		PieceLength: 262144,
		Pieces:      []byte(testPieces),
		Length:      1 << 20,
	}
	mi := ametainfo.MetaInfo{
		Announce:  testAnnounce,
		InfoBytes: abencode.MustMarshal(info),
	}
	tf, err := Parse(abencode.MustMarshal(mi))
	require.NoError(t, err)
	assert.Equal(t, Single{Length: 1 << 20}, tf.Info.FileList)
	assert.Equal(t, [20]byte(mi.HashInfoBytes()), tf.InfoHash)
}
