// Package attachmenttest builds multipart uploads for handler and service tests.
package attachmenttest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
)

// PDF returns size bytes starting with a PDF signature.
func PDF(size int) []byte {
	head := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	if size <= len(head) {
		return head
	}
	return append(head, bytes.Repeat([]byte("0"), size-len(head))...)
}

// PNG returns an encoded w x h image.
func PNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{G: 180, A: 255})
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Body encodes a single file field as multipart/form-data.
func Body(field, name string, content []byte) (io.Reader, string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &body, mw.FormDataContentType(), nil
}

// FileHeader parses content back into the header a handler would receive.
// The caller owns the returned form and should call RemoveAll on it.
func FileHeader(field, name string, content []byte) (*multipart.FileHeader, *multipart.Form, error) {
	body, contentType, err := Body(field, name, content)
	if err != nil {
		return nil, nil, err
	}
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	if err := req.ParseMultipartForm(64 << 20); err != nil {
		return nil, nil, err
	}
	return req.MultipartForm.File[field][0], req.MultipartForm, nil
}
