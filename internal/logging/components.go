package logging

// Component constants for structured logging. These replace hardcoded
// bracketed prefixes like [STARTUP] or [API DITHER].
const (
	ComponentStartup  = "startup"
	ComponentAPI      = "api-dither"
	ComponentBatch    = "api-batch"
	ComponentPalettes = "palettes"
	ComponentShutdown = "shutdown"
)
