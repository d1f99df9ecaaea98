package attachment

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// legacyTempPrefix is how profile images were named before they were
// confirmed; older rows still point at the final name.
const legacyTempPrefix = "profile_temp_"

// Resolve maps a requested upload name to a file on disk. With legacy lookup
// disabled only an exact match is served. With it enabled the lookup also
// tries a case-insensitive match, the common image extensions and the
// profile_temp_ naming of older uploads.
func (s *Store) Resolve(dir, name string) (string, error) {
	if !knownDirs[dir] {
		return "", internal.ErrFileNotFound
	}
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || strings.HasPrefix(name, ".") {
		return "", internal.ErrFileNotFound
	}

	diskDir := filepath.Join(s.root, filepath.FromSlash(s.urlPrefix), dir)
	exact := filepath.Join(diskDir, name)
	if isFile(exact) {
		return exact, nil
	}
	if !s.legacyLookup {
		return "", internal.ErrFileNotFound
	}

	entries, err := os.ReadDir(diskDir)
	if err != nil {
		return "", internal.ErrFileNotFound
	}
	index := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			index[strings.ToLower(e.Name())] = e.Name()
		}
	}

	for _, candidate := range legacyCandidates(name) {
		if actual, ok := index[strings.ToLower(candidate)]; ok {
			s.logger.Debug("resolved upload through legacy lookup", "requested", name, "resolved", actual)
			return filepath.Join(diskDir, actual), nil
		}
	}
	return "", internal.ErrFileNotFound
}

func legacyCandidates(name string) []string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	stems := []string{base}
	if rest, ok := strings.CutPrefix(base, "profile_"); ok && !strings.HasPrefix(base, legacyTempPrefix) {
		stems = append(stems, legacyTempPrefix+rest)
	}

	out := []string{name}
	for _, stem := range stems {
		if stem != base {
			out = append(out, stem+filepath.Ext(name))
		}
		for _, ext := range imageExtensions {
			out = append(out, stem+ext)
		}
	}
	return out
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
