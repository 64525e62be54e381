package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/services"
)

const (
	maxUploadSize   = 10 << 20 // per file
	uploadFolder    = "products"
	presignLifetime = 15 * time.Minute
)

// UploadController serves the image upload endpoints backed by R2.
type UploadController struct {
	storage *services.StorageService
}

// NewUploadController creates an UploadController.
func NewUploadController(storage *services.StorageService) *UploadController {
	return &UploadController{storage: storage}
}

// Upload handles POST /upload. It accepts one or more files under the
// "images" form field.
func (ctl *UploadController) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, apperrors.BadRequest("Invalid multipart form"))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.Error(c, apperrors.BadRequest("At least one image is required"))
		return
	}
	for _, file := range files {
		if file.Size > maxUploadSize {
			response.Error(c, apperrors.BadRequest("File too large (max 10MB)"))
			return
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			response.Error(c, apperrors.BadRequest("Only image files are allowed"))
			return
		}
	}

	uploaded, err := ctl.storage.UploadMultiple(c.Request.Context(), uploadFolder, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(uploaded) == 0 {
		response.Error(c, apperrors.New(http.StatusInternalServerError, "Failed to upload files", nil))
		return
	}
	response.Created(c, uploaded, "Files uploaded")
}

// Presign handles GET /upload/presign, returning a presigned PUT URL
// for direct browser upload.
func (ctl *UploadController) Presign(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		response.Error(c, apperrors.BadRequest("filename is required"))
		return
	}
	contentType := c.DefaultQuery("contentType", "application/octet-stream")

	url, file, err := ctl.storage.SignedUploadURL(c.Request.Context(), uploadFolder, filename, contentType, presignLifetime)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"uploadUrl": url,
		"key":       file.Key,
		"publicUrl": file.URL,
	})
}

// Delete handles DELETE /upload. The object is addressed by its
// public URL.
func (ctl *UploadController) Delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		response.Error(c, apperrors.BadRequest("url is required"))
		return
	}

	if err := ctl.storage.DeleteByURL(c.Request.Context(), url); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, nil, "File deleted")
}
