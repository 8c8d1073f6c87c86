package svc

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/AnvilloyDevStudio/torrent-cleaner/common/metainfo"
	"github.com/elliotchance/orderedmap"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

func PrintReport(w io.Writer, root string, r *Report) {
	fmt.Fprintf(w, "%s:\n", root)
	if r.Empty() {
		fmt.Fprintln(w, "  matches the torrent")
		return
	}
	for _, f := range r.Extra {
		fmt.Fprintf(w, "  extra     %s (%d bytes)\n", f.Rel, f.Size)
	}
	for _, m := range r.Missing {
		fmt.Fprintf(w, "  missing   %s\n", m)
	}
	for _, m := range r.Mismatched {
		fmt.Fprintf(w, "  size      %s (want %d, got %d)\n", m.Rel, m.Want, m.Got)
	}
}

type torrentView struct {
	Announce    string                  `yaml:"announce"`
	InfoHash    string                  `yaml:"info_hash"`
	Name        string                  `yaml:"name"`
	PieceLength uint64                  `yaml:"piece_length"`
	Pieces      int                     `yaml:"pieces"`
	Length      uint64                  `yaml:"length,omitempty"`
	Files       []metainfo.FileListItem `yaml:"files,omitempty"`
	TotalLength uint64                  `yaml:"total_length"`
}

func PrintTorrent(w io.Writer, t *metainfo.TorrentFile) error {
	view := torrentView{
		Announce:    t.Announce,
		InfoHash:    hex.EncodeToString(t.InfoHash[:]),
		Name:        t.Info.Name,
		PieceLength: t.Info.PieceLength,
		Pieces:      len(t.Info.Pieces),
		TotalLength: t.Info.TotalLength(),
	}
	switch fl := t.Info.FileList.(type) {
	case metainfo.Single:
		view.Length = fl.Length
	case metainfo.Multiple:
		view.Files = fl.Files
	}
	return encodeYAML(w, view)
}

// PrintValue renders a value from bencode.Decode, keeping dictionary order.
func PrintValue(w io.Writer, v any) error {
	return encodeYAML(w, toNode(v))
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(enc.Close())
}

func toNode(v any) *yaml.Node {
	switch x := v.(type) {
	case []byte:
		if utf8.Valid(x) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(x)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(x)}
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(x, 10)}
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case *orderedmap.OrderedMap:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range x.Keys() {
			item, _ := x.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k.(string)},
				toNode(item),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
