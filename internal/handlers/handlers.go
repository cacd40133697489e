package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/ditherlab/internal/dither"
	"github.com/rmitchellscott/ditherlab/internal/version"
)

// HealthHandler reports service liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VersionHandler returns build metadata.
func VersionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}

// AlgorithmsHandler returns the closed set of dithering algorithm
// identifiers.
func AlgorithmsHandler(c *gin.Context) {
	algos := dither.Algorithms()
	ids := make([]string, len(algos))
	for i, a := range algos {
		ids[i] = string(a)
	}
	c.JSON(http.StatusOK, gin.H{"algorithms": ids})
}

// PalettesHandler returns every registered palette preset with its
// metadata and colors.
func PalettesHandler(c *gin.Context) {
	presets := dither.Presets()
	out := make([]gin.H, 0, len(presets))
	for _, p := range presets {
		colors := make([]string, 0, p.Palette.Len())
		for _, col := range p.Palette.Colors() {
			colors = append(colors, col.Hex())
		}
		out = append(out, gin.H{
			"id":       p.ID,
			"name":     p.Name,
			"category": p.Category,
			"colors":   colors,
		})
	}
	c.JSON(http.StatusOK, gin.H{"palettes": out})
}
