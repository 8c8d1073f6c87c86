package metainfo

import (
	"fmt"
	"strings"
)

func bstr(s string) string {
	return fmt.Sprintf("%d:%s", len(s), s)
}

func bint(n int64) string {
	return fmt.Sprintf("i%de", n)
}

func blist(items ...string) string {
	return "l" + strings.Join(items, "") + "e"
}

func pair(key, value string) string {
	return bstr(key) + value
}

func bdict(pairs ...string) string {
	return "d" + strings.Join(pairs, "") + "e"
}

const testAnnounce = "http://tracker.example/announce"

var testPieces = func() string {
	b := make([]byte, 20)
	for i := range b {
		b[i] = byte(i)
	}
	return string(b)
}()

func fileEntry(length int64, path ...string) string {
	segments := make([]string, len(path))
	for i, p := range path {
		segments[i] = bstr(p)
	}
	return bdict(pair("length", bint(length)), pair("path", blist(segments...)))
}

// torrentWith wraps info pairs into a torrent with an announce key.
func torrentWith(infoPairs ...string) []byte {
	return []byte(bdict(
		pair("announce", bstr(testAnnounce)),
		pair("info", bdict(infoPairs...)),
	))
}

func multiFileInfo(files ...string) []string {
	return []string{
		pair("files", blist(files...)),
		pair("name", bstr("pkg")),
		pair("piece_length", bint(16384)),
		pair("pieces", bstr(testPieces)),
	}
}
