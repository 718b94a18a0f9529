package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"huffpress/internal/repo"
	"huffpress/internal/service"
	"huffpress/internal/storage"
	"huffpress/pkg/huffman"
	"huffpress/pkg/logger"
)

type CompressHandler struct {
	svc  *service.CompressService
	logg logger.Logger
}

func NewCompressHandler(s *service.CompressService, l logger.Logger) *CompressHandler {
	return &CompressHandler{svc: s, logg: l}
}

func (h *CompressHandler) Compress(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.uploadError(c, err)
		return
	}
	headers := form.File["file"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			h.uploadError(c, err)
			return
		}
		files = append(files, service.UploadedFile{Name: fh.Filename, Data: data})
	}

	job, err := h.svc.Compress(files)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *CompressHandler) Decompress(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.uploadError(c, err)
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		h.uploadError(c, err)
		return
	}

	job, err := h.svc.Decompress(fh.Filename, data)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *CompressHandler) Download(c *gin.Context) {
	name := c.Param("name")
	data, err := h.svc.Download(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		h.serviceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *CompressHandler) GetJob(c *gin.Context) {
	job, err := h.svc.Job(c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *CompressHandler) ListJobs(c *gin.Context) {
	jobs, err := h.svc.Jobs()
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *CompressHandler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, huffman.ErrEmptyInput),
		errors.Is(err, huffman.ErrCorruptContainer),
		errors.Is(err, service.ErrBadArchive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, huffman.ErrUnsupportedFormat):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	default:
		h.logg.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// uploadError distinguishes oversize uploads from plain bad requests.
func (h *CompressHandler) uploadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file size exceeds the upload limit"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
