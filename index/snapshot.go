package index

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
)

// Snapshot identifies the on-disk index a Cache loaded.
type Snapshot struct {
	Dir         string
	Fingerprint string
	DocCount    uint64
}

type fileStamp struct {
	rel     string
	size    int64
	modTime int64
}

// computeFingerprint generates a stable hash of the files under dir.
// It changes whenever a segment file is added, removed, resized or
// rewritten, which makes a stale process easy to spot in logs.
func computeFingerprint(dir string) (string, error) {
	var stamps []fileStamp
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		stamps = append(stamps, fileStamp{
			rel:     filepath.ToSlash(rel),
			size:    info.Size(),
			modTime: info.ModTime().UnixNano(),
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return fingerprintStamps(stamps), nil
}

func fingerprintStamps(stamps []fileStamp) string {
	// sorted for walk-order independence
	sorted := slices.Clone(stamps)
	slices.SortFunc(sorted, func(a, b fileStamp) int {
		switch {
		case a.rel < b.rel:
			return -1
		case a.rel > b.rel:
			return 1
		}
		return 0
	})

	h := sha256.New()
	for _, s := range sorted {
		h.Write([]byte(s.rel))
		h.Write([]byte{0}) // separator
		h.Write([]byte(strconv.FormatInt(s.size, 10)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatInt(s.modTime, 10)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
