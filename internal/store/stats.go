package store

import (
	"os"
)

// Stats holds data directory statistics.
type Stats struct {
	DataDir      string        `json:"data_dir"`
	TotalBytes   int64         `json:"total_bytes"`
	TotalRecords int           `json:"total_records"`
	Entities     []EntityStats `json:"entities"`
}

// EntityStats holds per-entity counts.
type EntityStats struct {
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Records   int    `json:"records"`
	SizeBytes int64  `json:"size_bytes"`
}

// Stats opens every store under l and reports its size.
func (l Layout) Stats() (*Stats, error) {
	st := &Stats{DataDir: l.Dir}
	for _, kind := range Kinds() {
		h, err := l.Open(kind)
		if err != nil {
			return nil, err
		}
		es := EntityStats{Kind: kind, Path: h.Path(), Records: h.Len()}
		if info, err := os.Stat(h.Path()); err == nil {
			es.SizeBytes = info.Size()
		}
		st.TotalBytes += es.SizeBytes
		st.TotalRecords += es.Records
		st.Entities = append(st.Entities, es)
	}
	return st, nil
}
