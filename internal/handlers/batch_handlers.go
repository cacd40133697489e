package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/ditherlab/internal/imageprocessing"
	"github.com/rmitchellscott/ditherlab/internal/logging"
)

// BatchDitherHandler processes several uploads with one algorithm/palette
// selection and returns the results packaged as a ZIP archive. The batch
// is all-or-nothing: any failing file fails the request before a partial
// archive is sent.
func (s *DitherService) BatchDitherHandler(c *gin.Context) {
	var form ditherForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	files := mpForm.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	algo, pal, err := resolveRequest(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, fh := range files {
		if fh.Filename == "" || !imageprocessing.AllowedFile(fh.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File type not allowed: %s", fh.Filename),
			})
			return
		}
	}

	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)
	for _, fh := range files {
		data, err := s.processFile(fh, algo, pal, form.MaxWidth)
		if err != nil {
			zipWriter.Close()
			logging.ErrorWithComponent(logging.ComponentBatch, "Batch dithering failed",
				"file", fh.Filename, "algorithm", algo, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Failed to process %s", fh.Filename),
			})
			return
		}
		entry, err := zipWriter.Create(outputName(string(algo), fh.Filename))
		if err == nil {
			_, err = entry.Write(data)
		}
		if err != nil {
			zipWriter.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build archive"})
			return
		}
	}
	if err := zipWriter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build archive"})
		return
	}

	logging.InfoWithComponent(logging.ComponentBatch, "Dithered batch",
		"files", len(files), "algorithm", algo, "palette_size", pal.Len(),
		"bytes", buf.Len(), "request_id", c.GetString("request_id"))

	c.Header("Content-Disposition", `attachment; filename="dithered.zip"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
