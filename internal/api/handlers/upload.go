package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/services"
	"github.com/yoockh/jobportal/internal/utils"
)

type uploadRule struct {
	what     string
	maxBytes int64
	exts     map[string]string // extension -> sniffed content type
}

var (
	imageRule = uploadRule{
		what:     "image (jpg, png or webp, max 2MB)",
		maxBytes: 2 << 20,
		exts: map[string]string{
			".jpg":  "image/jpeg",
			".jpeg": "image/jpeg",
			".png":  "image/png",
			".webp": "image/webp",
		},
	}
	pdfRule = uploadRule{
		what:     "PDF (max 5MB)",
		maxBytes: 5 << 20,
		exts:     map[string]string{".pdf": "application/pdf"},
	}
)

// readUpload validates the multipart file under field. It returns a nil
// upload when the field is absent. The caller must call closeFn.
func readUpload(c *gin.Context, op, field string, rule uploadRule) (u *services.Upload, closeFn func(), err error) {
	closeFn = func() {}

	fh, ferr := c.FormFile(field)
	if ferr != nil {
		if errors.Is(ferr, http.ErrMissingFile) {
			return nil, closeFn, nil
		}
		return nil, closeFn, utils.E(utils.CodeInvalidArgument, op, "invalid multipart field '"+field+"'", ferr)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	want, ok := rule.exts[ext]
	if !ok {
		return nil, closeFn, utils.E(utils.CodeInvalidArgument, op, field+" must be an "+rule.what, nil)
	}
	if fh.Size <= 0 || fh.Size > rule.maxBytes {
		return nil, closeFn, utils.E(utils.CodeInvalidArgument, op, field+" is empty or too large, expected "+rule.what, nil)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, closeFn, utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}

	r, ct, err := sniff(file)
	if err != nil {
		file.Close()
		return nil, closeFn, utils.E(utils.CodeInvalidArgument, op, "failed to read "+field, err)
	}
	if ct != want {
		file.Close()
		return nil, closeFn, utils.E(utils.CodeInvalidArgument, op, field+" content does not match its extension", nil)
	}

	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
		Body:        r,
	}, func() { file.Close() }, nil
}

// sniff reads the head of f to detect its content type and returns a
// reader that replays the head before the rest of the file.
func sniff(f multipart.File) (io.Reader, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, "", err
	}
	head = head[:n]
	return io.MultiReader(bytes.NewReader(head), f), http.DetectContentType(head), nil
}
