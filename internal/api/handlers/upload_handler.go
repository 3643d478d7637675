package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rakasatria/folio/internal/services"
	"github.com/rakasatria/folio/internal/utils"
)

const maxUploadBytes = 10 << 20

// allowed upload content types, keyed by sniffed type
var allowedUploads = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

type UploadHandler struct {
	svc services.UploadService
}

func NewUploadHandler(svc services.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// openUpload validates the multipart file and returns a reader whose
// head has already been sniffed for content type.
func openUpload(c *gin.Context, op string) (r io.Reader, filename, contentType string, cleanup func(), ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return nil, "", "", nil, false
	}

	if fh.Size <= 0 || fh.Size > maxUploadBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return nil, "", "", nil, false
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return nil, "", "", nil, false
	}

	// sniff content type (read 512 bytes)
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)
	ct = strings.TrimSpace(strings.Split(ct, ";")[0])

	if !allowedUploads[ct] {
		file.Close()
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "unsupported content type "+ct, nil))
		return nil, "", "", nil, false
	}

	// re-compose stream: head + remaining file
	r = &readJoin{a: bytes.NewReader(head), b: file}
	return r, filepath.Base(fh.Filename), ct, func() { file.Close() }, true
}

func (h *UploadHandler) Upload(c *gin.Context) {
	const op = "UploadHandler.Upload"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	r, filename, ct, cleanup, ok := openUpload(c, op)
	if !ok {
		return
	}
	defer cleanup()

	url, err := h.svc.Upload(c.Request.Context(), userID, filename, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Replace uploads a new object and removes the one it supersedes, so
// edited records never leave orphans behind.
func (h *UploadHandler) Replace(c *gin.Context) {
	const op = "UploadHandler.Replace"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	priorURL := c.PostForm("prior_url")
	if priorURL == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing form field 'prior_url'", nil))
		return
	}

	r, filename, ct, cleanup, ok := openUpload(c, op)
	if !ok {
		return
	}
	defer cleanup()

	url, err := h.svc.Replace(c.Request.Context(), userID, priorURL, filename, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	const op = "UploadHandler.Delete"

	if _, ok := requireUserID(c); !ok {
		return
	}

	url := c.Query("url")
	if url == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing query param 'url'", nil))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), url); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
