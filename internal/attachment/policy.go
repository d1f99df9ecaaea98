package attachment

import (
	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEGIF  = "image/gif"
	MIMEWEBP = "image/webp"
)

// Upload directories below the public uploads root.
const (
	DirDocuments   = "documents"
	DirResumes     = "resumes"
	DirProfiles    = "profiles"
	DirDepartments = "departments"
	DirContracts   = "contracts"
)

var knownDirs = map[string]bool{
	DirDocuments:   true,
	DirResumes:     true,
	DirProfiles:    true,
	DirDepartments: true,
	DirContracts:   true,
}

// Policy is the per-endpoint upload contract. A zero MaxBytes means the
// store-wide limit applies.
type Policy struct {
	Name        string
	AllowedMIME []string
	MaxBytes    int64
	// NormalizeImage downscales JPEG and PNG uploads to the store's max dimension.
	NormalizeImage bool
}

var (
	DocumentPolicy = Policy{
		Name:        "document",
		AllowedMIME: []string{MIMEPDF, MIMEJPEG, MIMEPNG},
	}
	ImagePolicy = Policy{
		Name:           "image",
		AllowedMIME:    []string{MIMEJPEG, MIMEPNG, MIMEGIF, MIMEWEBP},
		NormalizeImage: true,
	}
	AnyPolicy = Policy{
		Name:        "any",
		AllowedMIME: []string{MIMEPDF, MIMEJPEG, MIMEPNG, MIMEGIF, MIMEWEBP},
	}
)

func (p Policy) allows(m *mimetype.MIME) bool {
	for _, allowed := range p.AllowedMIME {
		if m.Is(allowed) {
			return true
		}
	}
	return false
}

func (p Policy) limit(storeMax int64) int64 {
	if p.MaxBytes > 0 && (storeMax <= 0 || p.MaxBytes < storeMax) {
		return p.MaxBytes
	}
	return storeMax
}

// canonicalExtension keeps stored names predictable regardless of what the
// client called the file.
func canonicalExtension(m *mimetype.MIME) string {
	switch {
	case m.Is(MIMEJPEG):
		return ".jpg"
	case m.Is(MIMEPNG):
		return ".png"
	case m.Is(MIMEGIF):
		return ".gif"
	case m.Is(MIMEWEBP):
		return ".webp"
	case m.Is(MIMEPDF):
		return ".pdf"
	}
	return m.Extension()
}
