package handlers

import (
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rmitchellscott/ditherlab/internal/dither"
	"github.com/rmitchellscott/ditherlab/internal/imageprocessing"
	"github.com/rmitchellscott/ditherlab/internal/logging"
	"github.com/rmitchellscott/ditherlab/internal/utils"
)

var validate = validator.New()

const fetchTimeout = 30 * time.Second

// DitherService holds the engine and limits shared by the dithering
// endpoints.
type DitherService struct {
	engine   *dither.Engine
	maxBytes int64
}

// NewDitherService creates the handler set backed by a fresh engine.
// maxBytes caps remote image downloads, mirroring the upload size limit.
func NewDitherService(maxBytes int64) *DitherService {
	return &DitherService{engine: dither.NewEngine(), maxBytes: maxBytes}
}

// ditherForm is the multipart form accompanying an upload. Either a file
// part or a remote URL supplies the image.
type ditherForm struct {
	Algorithm string `form:"algorithm"`
	Palette   string `form:"palette"`
	Colors    string `form:"colors"` // comma-separated hex list, overrides Palette
	URL       string `form:"url" binding:"omitempty,url"`
	MaxWidth  int    `form:"max_width" binding:"omitempty,min=1,max=8192"`
}

// resolveRequest validates the form and produces the algorithm and palette
// for a dither call. The bw default mirrors the engine default.
func resolveRequest(form ditherForm) (dither.Algorithm, *dither.Palette, error) {
	name := form.Algorithm
	if name == "" {
		name = string(dither.AlgoFloydSteinberg)
	}
	algo, err := dither.ParseAlgorithm(name)
	if err != nil {
		return "", nil, fmt.Errorf("invalid algorithm")
	}

	if form.Colors != "" {
		hexes := strings.Split(form.Colors, ",")
		for i, h := range hexes {
			h = strings.TrimSpace(h)
			if !strings.HasPrefix(h, "#") {
				h = "#" + h
			}
			if err := validate.Var(h, "hexcolor"); err != nil {
				return "", nil, fmt.Errorf("invalid color %q", hexes[i])
			}
			hexes[i] = h
		}
		pal, err := dither.ParsePalette(hexes)
		if err != nil {
			return "", nil, err
		}
		return algo, pal, nil
	}

	id := form.Palette
	if id == "" {
		id = "bw"
	}
	preset, ok := dither.LookupPreset(id)
	if !ok {
		return "", nil, fmt.Errorf("unknown palette %q", id)
	}
	return algo, preset.Palette, nil
}

// processImage runs the engine over a decoded image and returns the
// encoded PNG. Binary black/white requests are processed in grayscale,
// everything else in RGB, matching the palette the output must collapse
// onto.
func (s *DitherService) processImage(img image.Image, algo dither.Algorithm, pal *dither.Palette, maxWidth int) ([]byte, error) {
	if maxWidth > 0 {
		img = imageprocessing.ScaleToMaxWidth(img, maxWidth)
	}

	var buf *dither.Buffer
	if pal.Binary() {
		buf = dither.FromGrayscale(img)
	} else {
		buf = dither.FromRGB(img)
	}

	out, err := s.engine.Apply(buf, algo, pal)
	if err != nil {
		return nil, err
	}
	return imageprocessing.EncodePNG(out.ToImage())
}

// processFile decodes one multipart upload and dithers it.
func (s *DitherService) processFile(fh *multipart.FileHeader, algo dither.Algorithm, pal *dither.Palette, maxWidth int) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	img, _, err := imageprocessing.Decode(f)
	if err != nil {
		return nil, err
	}
	return s.processImage(img, algo, pal, maxWidth)
}

// DitherHandler processes a single image, from a multipart file part or a
// remote URL, and responds with the dithered PNG as an attachment.
func (s *DitherService) DitherHandler(c *gin.Context) {
	var form ditherForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	algo, pal, err := resolveRequest(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, fileErr := c.FormFile("file")
	if fileErr != nil && form.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}

	var (
		data     []byte
		fileName string
	)
	if fileErr == nil {
		if fh.Filename == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No selected file"})
			return
		}
		if !imageprocessing.AllowedFile(fh.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
			return
		}
		fileName = fh.Filename
		data, err = s.processFile(fh, algo, pal, form.MaxWidth)
	} else {
		if policyErr := utils.ValidateURL(form.URL); policyErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": policyErr.Error()})
			return
		}
		var img image.Image
		img, _, err = imageprocessing.FetchImage(form.URL, fetchTimeout, s.maxBytes)
		if err == nil {
			fileName = urlBase(form.URL)
			data, err = s.processImage(img, algo, pal, form.MaxWidth)
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, imageprocessing.ErrDecode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or corrupted image file"})
		case errors.Is(err, imageprocessing.ErrFetch):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch image from URL"})
		default:
			logging.ErrorWithComponent(logging.ComponentAPI, "Dithering failed",
				"file", fileName, "algorithm", algo, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image processing failed"})
		}
		return
	}

	logging.InfoWithComponent(logging.ComponentAPI, "Dithered image",
		"file", fileName, "algorithm", algo, "palette_size", pal.Len(),
		"bytes", len(data), "request_id", c.GetString("request_id"))

	name := outputName(string(algo), fileName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "image/png", data)
}

// outputName builds the download filename, sanitizing path separators out
// of the client-supplied name.
func outputName(algorithm, original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "image"
	}
	return fmt.Sprintf("%s_%s.png", algorithm, base)
}

// urlBase extracts a display filename from a remote URL.
func urlBase(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "image"
	}
	return path.Base(u.Path)
}
