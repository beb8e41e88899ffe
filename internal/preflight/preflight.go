package preflight

import (
	"fmt"

	"regroup/internal/config"
	"regroup/internal/deps"
	"regroup/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config and output
// directory and reports each outcome.
func RunAll(cfg *config.Config, outDir string) []Result {
	if cfg == nil {
		return nil
	}

	results := make([]Result, 0, 3)
	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	results = append(results, CheckDirectoryAccess("Output directory", outDir))
	return results
}

// Ensure runs all checks and converts the first failure into a classified
// error: missing binaries are dependency errors, an unusable output
// directory is a configuration error.
func Ensure(cfg *config.Config, outDir string) error {
	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		if status.Available || status.Optional {
			continue
		}
		return services.Wrap(services.ErrDependency, "preflight", "check binaries",
			fmt.Sprintf("%s unavailable: %s", status.Name, status.Detail), nil)
	}

	if result := CheckDirectoryAccess("Output directory", outDir); !result.Passed {
		return services.Wrap(services.ErrConfiguration, "preflight", "check output directory", result.Detail, nil)
	}
	return nil
}
