package tracking

import "github.com/banshee-data/pointtrack/internal/config"

// OptionsFromConfig derives controller options from a TrackingConfig.
func OptionsFromConfig(cfg *config.TrackingConfig) Options {
	if cfg == nil {
		cfg = config.EmptyTrackingConfig()
	}
	flow := OpticalFlowParams{
		PatchSize:     cfg.GetPatchSize(),
		PyramidLevels: cfg.GetPyramidLevels(),
		MaxIterations: cfg.GetMaxIterations(),
		MaxError:      cfg.GetMaxError(),
	}
	return Options{
		Policy:            GridPolicy{Width: cfg.GetGridWidth(), Step: cfg.GetGridStep()},
		OpticalFlow:       &flow,
		KeepInvalidPoints: !cfg.GetDiscardInvalidPoints(),
	}
}
