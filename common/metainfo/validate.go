package metainfo

// Validate checks the business rules the encoding cannot express. Checks run
// in a fixed order and the first failure is returned.
func Validate(t *TorrentFile) error {
	return t.Info.Validate()
}

func (i *MetaFileInfo) Validate() error {
	if len(i.Pieces) == 0 {
		return &InvariantError{Field: "info.pieces", Index: -1, Problem: "empty"}
	}
	if i.PieceLength == 0 {
		return &InvariantError{Field: "info.piece_length", Index: -1, Problem: "zero"}
	}
	switch fl := i.FileList.(type) {
	case Single:
		if fl.Length == 0 {
			return &InvariantError{Field: "info.length", Index: -1, Problem: "zero"}
		}
	case Multiple:
		if len(fl.Files) == 0 {
			return &InvariantError{Field: "info.files", Index: -1, Problem: "empty"}
		}
		for idx, f := range fl.Files {
			if len(f.Path) == 0 {
				return &InvariantError{Field: "info.files.path", Index: idx, Problem: "empty"}
			}
			if f.Length == 0 {
				return &InvariantError{Field: "info.files.length", Index: idx, Problem: "zero"}
			}
		}
	default:
		return &InvariantError{Field: "info.length", Index: -1, Problem: "missing"}
	}
	return nil
}
