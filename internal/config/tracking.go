package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tracking defaults file.
const DefaultConfigPath = "config/tracking.defaults.json"

// TrackingConfig is the root configuration for a point tracking session.
// Every field is optional; the Get* methods supply defaults for fields the
// file leaves out, so partial configs are safe.
type TrackingConfig struct {
	// Click expansion
	GridWidth *float64 `json:"grid_width,omitempty"`
	GridStep  *float64 `json:"grid_step,omitempty"`

	// Optical flow
	PatchSize     *int     `json:"patch_size,omitempty"`
	PyramidLevels *int     `json:"pyramid_levels,omitempty"`
	MaxIterations *int     `json:"max_iterations,omitempty"`
	MaxError      *float64 `json:"max_error,omitempty"`

	DiscardInvalidPoints *bool `json:"discard_invalid_points,omitempty"`

	// Frame loop and image size
	FrameRate   *float64 `json:"frame_rate,omitempty"`
	FrameWidth  *int     `json:"frame_width,omitempty"`
	FrameHeight *int     `json:"frame_height,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTrackingConfig returns a TrackingConfig with all fields set to nil.
func EmptyTrackingConfig() *TrackingConfig {
	return &TrackingConfig{}
}

// DefaultTrackingConfig returns a config with every field populated with its
// default value.
func DefaultTrackingConfig() *TrackingConfig {
	c := EmptyTrackingConfig()
	return &TrackingConfig{
		GridWidth:            ptrFloat64(c.GetGridWidth()),
		GridStep:             ptrFloat64(c.GetGridStep()),
		PatchSize:            ptrInt(c.GetPatchSize()),
		PyramidLevels:        ptrInt(c.GetPyramidLevels()),
		MaxIterations:        ptrInt(c.GetMaxIterations()),
		MaxError:             ptrFloat64(c.GetMaxError()),
		DiscardInvalidPoints: ptrBool(c.GetDiscardInvalidPoints()),
		FrameRate:            ptrFloat64(c.GetFrameRate()),
		FrameWidth:           ptrInt(c.GetFrameWidth()),
		FrameHeight:          ptrInt(c.GetFrameHeight()),
	}
}

// LoadTrackingConfig loads a TrackingConfig from a JSON file.
// The file must have a .json extension, be under 1MB and match the
// embedded schema.
func LoadTrackingConfig(path string) (*TrackingConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ValidateJSON(data); err != nil {
		return nil, err
	}

	cfg := EmptyTrackingConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *TrackingConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from internal/storage/sqlite/
	}
	for _, path := range candidates {
		if cfg, err := LoadTrackingConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable.
func (c *TrackingConfig) Validate() error {
	if c.GridWidth != nil && *c.GridWidth <= 0 {
		return fmt.Errorf("grid_width must be positive, got %g", *c.GridWidth)
	}
	if c.GridStep != nil && *c.GridStep <= 0 {
		return fmt.Errorf("grid_step must be positive, got %g", *c.GridStep)
	}
	if c.PatchSize != nil && (*c.PatchSize < 3 || *c.PatchSize%2 == 0) {
		return fmt.Errorf("patch_size must be an odd number >= 3, got %d", *c.PatchSize)
	}
	if c.PyramidLevels != nil && *c.PyramidLevels < 1 {
		return fmt.Errorf("pyramid_levels must be at least 1, got %d", *c.PyramidLevels)
	}
	if c.MaxIterations != nil && *c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", *c.MaxIterations)
	}
	if c.MaxError != nil && *c.MaxError <= 0 {
		return fmt.Errorf("max_error must be positive, got %g", *c.MaxError)
	}
	if c.FrameRate != nil && *c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %g", *c.FrameRate)
	}
	if c.FrameWidth != nil && *c.FrameWidth <= 0 {
		return fmt.Errorf("frame_width must be positive, got %d", *c.FrameWidth)
	}
	if c.FrameHeight != nil && *c.FrameHeight <= 0 {
		return fmt.Errorf("frame_height must be positive, got %d", *c.FrameHeight)
	}
	return nil
}

// ToJSON serialises the config for storage alongside a session.
func (c *TrackingConfig) ToJSON() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// GetGridWidth returns the grid_width value or the default.
func (c *TrackingConfig) GetGridWidth() float64 {
	if c.GridWidth == nil {
		return 60.0
	}
	return *c.GridWidth
}

// GetGridStep returns the grid_step value or the default.
func (c *TrackingConfig) GetGridStep() float64 {
	if c.GridStep == nil {
		return 6.0
	}
	return *c.GridStep
}

// GetPatchSize returns the patch_size value or the default.
func (c *TrackingConfig) GetPatchSize() int {
	if c.PatchSize == nil {
		return 21
	}
	return *c.PatchSize
}

// GetPyramidLevels returns the pyramid_levels value or the default.
func (c *TrackingConfig) GetPyramidLevels() int {
	if c.PyramidLevels == nil {
		return 4
	}
	return *c.PyramidLevels
}

// GetMaxIterations returns the max_iterations value or the default.
func (c *TrackingConfig) GetMaxIterations() int {
	if c.MaxIterations == nil {
		return 50
	}
	return *c.MaxIterations
}

// GetMaxError returns the max_error value or the default.
func (c *TrackingConfig) GetMaxError() float64 {
	if c.MaxError == nil {
		return 0.0006
	}
	return *c.MaxError
}

// GetDiscardInvalidPoints returns the discard_invalid_points value or the default.
func (c *TrackingConfig) GetDiscardInvalidPoints() bool {
	if c.DiscardInvalidPoints == nil {
		return true
	}
	return *c.DiscardInvalidPoints
}

// GetFrameRate returns the frame_rate value or the default.
func (c *TrackingConfig) GetFrameRate() float64 {
	if c.FrameRate == nil {
		return 30.0
	}
	return *c.FrameRate
}

// GetFrameWidth returns the frame_width value or the default.
func (c *TrackingConfig) GetFrameWidth() int {
	if c.FrameWidth == nil {
		return 640
	}
	return *c.FrameWidth
}

// GetFrameHeight returns the frame_height value or the default.
func (c *TrackingConfig) GetFrameHeight() int {
	if c.FrameHeight == nil {
		return 480
	}
	return *c.FrameHeight
}
