// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for generator, render and server
// settings.
//
// IMPORTANT: When changing defaults, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// GENERATOR CONFIGURATION
// =============================================================================

// GeneratorConfig holds the default generation request parameters served
// when a caller leaves fields unset.
type GeneratorConfig struct {
	Width              int    // Grid width in cells
	Height             int    // Grid height in cells
	NumPoints          int    // Target point count
	CandidatesPerPoint int    // Mitchell candidate draws per placement
	Seed               int32  // Deterministic seed
	Algorithm          string // "mitchell" or "bridson"
}

// DefaultGenerator returns the default generator configuration.
func DefaultGenerator() GeneratorConfig {
	return GeneratorConfig{
		Width:              128,
		Height:             128,
		NumPoints:          1024,
		CandidatesPerPoint: 20,
		Seed:               1,
		Algorithm:          "mitchell",
	}
}

// GeneratorFromEnv returns generator configuration with environment
// variable overrides. Environment variables take precedence over defaults.
func GeneratorFromEnv() GeneratorConfig {
	cfg := DefaultGenerator()

	if w := getEnvInt("NOISE_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvInt("NOISE_HEIGHT", 0); h > 0 {
		cfg.Height = h
	}
	if n := getEnvInt("NOISE_POINTS", 0); n > 0 {
		cfg.NumPoints = n
	}
	if k := getEnvInt("NOISE_CANDIDATES", 0); k > 0 {
		cfg.CandidatesPerPoint = k
	}
	if s := getEnvInt("NOISE_SEED", 0); s != 0 {
		cfg.Seed = int32(s)
	}
	if a := os.Getenv("NOISE_ALGORITHM"); a != "" {
		cfg.Algorithm = a
	}

	return cfg
}

// =============================================================================
// RENDER CONFIGURATION
// =============================================================================

// RenderConfig holds rasterization defaults shared by the HTTP render
// endpoint and the CLI exporter.
type RenderConfig struct {
	PixelSize  int    // Square block size per point, in pixels
	Foreground string // Point color, "#rrggbb"
	Background string // Fill color, "#rrggbb"
	ChunkSize  int    // Points drawn per tick in animated mode
}

// DefaultRender returns the default render configuration.
func DefaultRender() RenderConfig {
	return RenderConfig{
		PixelSize:  4,
		Foreground: "#1a1a1a",
		Background: "#f5f0e8",
		ChunkSize:  64,
	}
}

// RenderFromEnv returns render configuration with environment overrides.
func RenderFromEnv() RenderConfig {
	cfg := DefaultRender()

	if ps := getEnvInt("RENDER_PIXEL_SIZE", 0); ps > 0 {
		cfg.PixelSize = ps
	}
	if fg := os.Getenv("RENDER_FOREGROUND"); fg != "" {
		cfg.Foreground = fg
	}
	if bg := os.Getenv("RENDER_BACKGROUND"); bg != "" {
		cfg.Background = bg
	}
	if cs := getEnvInt("RENDER_CHUNK_SIZE", 0); cs > 0 {
		cfg.ChunkSize = cs
	}

	return cfg
}

// =============================================================================
// REQUEST LIMITS
// =============================================================================

// RequestLimits controls DoS protection for the HTTP surface. Generation
// is CPU-bound, so unbounded request geometry is a denial-of-service
// vector.
type RequestLimits struct {
	MaxDimension   int   // Hard cap on requested grid width/height
	MaxPoints      int   // Hard cap on requested point count
	MaxPixelSize   int   // Hard cap on raster pixel size
	MaxRenderBytes int64 // Hard cap on the RGBA output allocation
}

// DefaultLimits returns the default request limits.
// MaxRenderBytes caps the product of the per-field limits: dimension and
// pixel size caps alone still allow a multi-gigabyte RGBA buffer.
func DefaultLimits() RequestLimits {
	return RequestLimits{
		MaxDimension:   2048,
		MaxPoints:      500_000,
		MaxPixelSize:   64,
		MaxRenderBytes: 64 << 20, // 64 MB, a 4096x4096 RGBA image
	}
}

// LimitsFromEnv returns request limits with environment overrides.
func LimitsFromEnv() RequestLimits {
	cfg := DefaultLimits()

	if d := getEnvInt("LIMIT_MAX_DIMENSION", 0); d > 0 {
		cfg.MaxDimension = d
	}
	if p := getEnvInt("LIMIT_MAX_POINTS", 0); p > 0 {
		cfg.MaxPoints = p
	}
	if ps := getEnvInt("LIMIT_MAX_PIXEL_SIZE", 0); ps > 0 {
		cfg.MaxPixelSize = ps
	}
	if rb := getEnvInt("LIMIT_MAX_RENDER_BYTES", 0); rb > 0 {
		cfg.MaxRenderBytes = int64(rb)
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Generator GeneratorConfig
	Render    RenderConfig
	Limits    RequestLimits
	Server    ServerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Generator: GeneratorFromEnv(),
		Render:    RenderFromEnv(),
		Limits:    LimitsFromEnv(),
		Server:    ServerFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
