package svc

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnvilloyDevStudio/torrent-cleaner/cleaner/internal/config"
	bencode "github.com/jackpal/bencode-go"
	"github.com/stretchr/testify/require"
)

type fixtureFile struct {
	Length int64    `bencode:"length"`
	Path   []string `bencode:"path"`
}

type fixtureInfo struct {
	Files       []fixtureFile `bencode:"files,omitempty"`
	Length      int64         `bencode:"length,omitempty"`
	Name        string        `bencode:"name"`
	PieceLength int64         `bencode:"piece_length"`
	Pieces      string        `bencode:"pieces"`
}

type fixtureTorrent struct {
	Announce string      `bencode:"announce"`
	Info     fixtureInfo `bencode:"info"`
}

func writeTorrent(t *testing.T, dir, name string, info fixtureInfo) string {
	t.Helper()
	info.PieceLength = 16384
	info.Pieces = strings.Repeat("p", 20)
	buf := &bytes.Buffer{}
	require.NoError(t, bencode.Marshal(buf, fixtureTorrent{
		Announce: "http://tracker.example/announce",
		Info:     info,
	}))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeFile(t *testing.T, root, rel string, size int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0o644))
}

func newTestContext(t *testing.T, input string) (*ServiceContext, *bytes.Buffer) {
	t.Helper()
	c, err := config.Load("")
	require.NoError(t, err)
	c.Progress = false
	out := &bytes.Buffer{}
	return &ServiceContext{
		Config: *c,
		In:     bufio.NewReader(strings.NewReader(input)),
		Out:    out,
		Err:    io.Discard,
	}, out
}

// pkgInfo lists a.txt (5), dir/b.bin (7) and dir/c (3) under "pkg".
func pkgInfo() fixtureInfo {
	return fixtureInfo{
		Name: "pkg",
		Files: []fixtureFile{
			{Length: 5, Path: []string{"a.txt"}},
			{Length: 7, Path: []string{"dir", "b.bin"}},
			{Length: 3, Path: []string{"dir", "c"}},
		},
	}
}

// layoutPkg creates pkg with a.txt matching, dir/b.bin of the wrong size,
// dir/c missing, and extras inside and beside the listed tree.
func layoutPkg(t *testing.T, base string) string {
	t.Helper()
	root := filepath.Join(base, "pkg")
	writeFile(t, root, "a.txt", 5)
	writeFile(t, root, "dir/b.bin", 4)
	writeFile(t, root, "dir/junk/x", 1)
	writeFile(t, root, "extra.log", 2)
	writeFile(t, root, "other/y", 3)
	return root
}
