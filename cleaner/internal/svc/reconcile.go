package svc

import (
	"sort"

	"github.com/elliotchance/orderedmap"
)

type Mismatch struct {
	Rel  string
	Want uint64
	Got  int64
}

type Report struct {
	// Extra are local files the torrent does not list, sorted by path.
	Extra []LocalFile
	// Missing are listed paths with no local file, in torrent order.
	Missing    []string
	Mismatched []Mismatch
}

func (r *Report) Empty() bool {
	return len(r.Extra) == 0 && len(r.Missing) == 0 && len(r.Mismatched) == 0
}

// Reconcile compares the torrent's path to size mapping with the local files.
func Reconcile(expected *orderedmap.OrderedMap, local []LocalFile) *Report {
	sorted := make([]LocalFile, len(local))
	copy(sorted, local)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rel < sorted[j].Rel
	})

	r := &Report{}
	present := make(map[string]struct{}, len(sorted))
	for _, f := range sorted {
		present[f.Rel] = struct{}{}
		v, ok := expected.Get(f.Rel)
		if !ok {
			r.Extra = append(r.Extra, f)
			continue
		}
		if want := v.(uint64); f.Size < 0 || uint64(f.Size) != want {
			r.Mismatched = append(r.Mismatched, Mismatch{Rel: f.Rel, Want: want, Got: f.Size})
		}
	}
	for _, k := range expected.Keys() {
		if _, ok := present[k.(string)]; !ok {
			r.Missing = append(r.Missing, k.(string))
		}
	}
	return r
}
