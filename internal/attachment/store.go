// Package attachment validates uploaded files and stores them below the public
// web root. Validation always happens before anything touches the disk, and a
// file is written before the database row that references it.
package attachment

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type StoredFile struct {
	OriginalName string `json:"original_name"`
	StoredName   string `json:"stored_name"`
	// Path is the public URL path saved in attachment rows.
	Path string `json:"path"`
	Size int64  `json:"size"`
	MIME string `json:"mime_type"`
}

func (f *StoredFile) ToFile() profile.File {
	return profile.File{
		FileName: f.OriginalName,
		FilePath: f.Path,
		FileSize: f.Size,
		MimeType: f.MIME,
	}
}

type Store struct {
	root         string
	urlPrefix    string
	maxBytes     int64
	maxDimension int
	legacyLookup bool
	logger       *slog.Logger
	now          func() time.Time
}

func NewStore(cfg internal.StorageConfig, logger *slog.Logger) *Store {
	prefix := "/" + strings.Trim(cfg.URLPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	return &Store{
		root:         cfg.PublicRoot,
		urlPrefix:    prefix,
		maxBytes:     cfg.UploadLimit(),
		maxDimension: cfg.MaxImageDimension,
		legacyLookup: cfg.LegacyLookup,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates fh against policy and writes it to <root><prefix>/<dir>/.
// Nothing is written when validation fails.
func (s *Store) Save(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy Policy) (*StoredFile, error) {
	if fh == nil {
		return nil, internal.ErrFileMissing
	}
	if !knownDirs[dir] {
		return nil, fmt.Errorf("attachment: unknown upload directory %q", dir)
	}

	limit := policy.limit(s.maxBytes)
	if fh.Size > limit {
		return nil, tooLarge(fh.Size, limit)
	}

	data, err := readLimited(fh, limit)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, internal.ErrFileMissing
	}

	detected := mimetype.Detect(data)
	if !policy.allows(detected) {
		s.logger.Warn("rejected upload with disallowed type",
			"file_name", fh.Filename,
			"detected_mime", detected.String(),
			"policy", policy.Name)
		return nil, unsupported(detected.String(), policy)
	}

	ext := canonicalExtension(detected)
	if policy.NormalizeImage && s.maxDimension > 0 && (detected.Is(MIMEJPEG) || detected.Is(MIMEPNG)) {
		data, err = s.normalizeImage(data, ext)
		if err != nil {
			return nil, internal.NewValidationFieldError("file", "image could not be decoded", internal.ErrCodeUnsupportedFileType).WithCause(err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := s.storedName(prefix, ext)
	diskDir := filepath.Join(s.root, filepath.FromSlash(s.urlPrefix), dir)
	if err := writeAtomic(diskDir, name, data); err != nil {
		s.logger.Error("failed to write upload", "error", err, "dir", diskDir)
		return nil, internal.NewInternalError("failed to store file", err)
	}

	stored := &StoredFile{
		OriginalName: filepath.Base(fh.Filename),
		StoredName:   name,
		Path:         path.Join(s.urlPrefix, dir, name),
		Size:         int64(len(data)),
		MIME:         mimeName(detected),
	}
	s.logger.Info("stored upload", "path", stored.Path, "size", stored.Size, "mime_type", stored.MIME)
	return stored, nil
}

// SaveWithRecord stores the file, then runs insert. If insert fails the file
// is removed again so no orphan is left on disk.
func (s *Store) SaveWithRecord(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy Policy, insert func(*StoredFile) error) (*StoredFile, error) {
	stored, err := s.Save(ctx, dir, prefix, fh, policy)
	if err != nil {
		return nil, err
	}
	if err := insert(stored); err != nil {
		if rmErr := s.Remove(stored.Path); rmErr != nil {
			s.logger.Error("failed to clean up file after insert failure", "error", rmErr, "path", stored.Path)
		}
		return nil, err
	}
	return stored, nil
}

// Remove deletes the file behind a stored URL path. Missing files are ignored.
func (s *Store) Remove(urlPath string) error {
	diskPath, err := s.diskPathFor(urlPath)
	if err != nil {
		return err
	}
	if err := os.Remove(diskPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) diskPathFor(urlPath string) (string, error) {
	clean := path.Clean("/" + urlPath)
	if !strings.HasPrefix(clean, s.urlPrefix+"/") {
		return "", fmt.Errorf("attachment: path %q is outside %s", urlPath, s.urlPrefix)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func (s *Store) storedName(prefix, ext string) string {
	prefix = strings.Trim(unsafeChars.ReplaceAllString(prefix, "-"), "-")
	if prefix == "" {
		prefix = "file"
	}
	return fmt.Sprintf("%d_%s_%s%s", s.now().UnixNano(), prefix, uuid.NewString()[:8], ext)
}

func (s *Store) normalizeImage(data []byte, ext string) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= s.maxDimension && cfg.Height <= s.maxDimension {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readLimited(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, internal.NewInternalError("failed to open upload", err)
	}
	defer f.Close()

	// The header size comes from the client; count the bytes as well.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, internal.NewInternalError("failed to read upload", err)
	}
	if int64(len(data)) > limit {
		return nil, tooLarge(int64(len(data)), limit)
	}
	return data, nil
}

func writeAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// mimeName strips parameters such as "; charset=utf-8".
func mimeName(m *mimetype.MIME) string {
	return strings.TrimSpace(strings.SplitN(m.String(), ";", 2)[0])
}

func tooLarge(size, limit int64) *internal.AppError {
	return internal.ErrFileTooLarge.Clone().WithDetails(internal.ValidationErrors{
		Errors: []internal.ValidationError{{
			Field:   "file",
			Message: fmt.Sprintf("file is %d bytes, the limit is %d bytes", size, limit),
			Code:    string(internal.ErrCodeFileTooLarge),
		}},
	})
}

func unsupported(detected string, policy Policy) *internal.AppError {
	return internal.ErrUnsupportedFileType.Clone().WithDetails(internal.ValidationErrors{
		Errors: []internal.ValidationError{{
			Field:   "file",
			Message: fmt.Sprintf("file type %s is not allowed, accepted: %s", detected, strings.Join(policy.AllowedMIME, ", ")),
			Code:    string(internal.ErrCodeUnsupportedFileType),
		}},
	})
}
