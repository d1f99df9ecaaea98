package attachment

import (
	stdErrors "errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal"
)

// multipart overhead allowed on top of the file limit before the body is cut off.
const formOverhead = 1 << 20

// FormFile reads the single file of a multipart request. The request body is
// capped slightly above limit so oversized uploads fail without being buffered.
func FormFile(w http.ResponseWriter, r *http.Request, field string, limit int64) (*multipart.FileHeader, error) {
	form, err := MultipartForm(w, r, limit)
	if err != nil {
		return nil, err
	}

	files := form.File[field]
	switch len(files) {
	case 0:
		return nil, internal.ErrFileMissing
	case 1:
		return files[0], nil
	default:
		return nil, internal.NewValidationFieldError(field, "only one file may be uploaded per request", internal.ErrCodeValidationFailed)
	}
}

// MultipartForm parses a multipart/form-data body of at most limit bytes of
// files plus form overhead.
func MultipartForm(w http.ResponseWriter, r *http.Request, limit int64) (*multipart.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	if err := r.ParseMultipartForm(limit + formOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if stdErrors.As(err, &maxErr) {
			return nil, tooLarge(r.ContentLength, limit)
		}
		return nil, internal.NewValidationError("request must be multipart/form-data", internal.ErrCodeValidationFailed).WithCause(err)
	}
	return r.MultipartForm, nil
}

// IsMultipart reports whether r carries a multipart/form-data body.
func IsMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
