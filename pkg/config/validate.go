package config

import (
	"os"

	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/logging"
)

// Validation bounds for user-tunable settings.
const (
	MinParallelJobs      = 1
	MaxParallelJobs      = 64
	MinRetentionDays     = 0
	MaxRetentionDays     = 365
	MinInstallTimeoutSec = 30
)

// Validate checks every bounded setting and collects all violations into
// a single aggregate error instead of stopping at the first. Missing
// watch paths are logged as warnings, never reported as failures.
func (c *Config) Validate() error {
	logger := logging.GetLogger("config")
	var multi errors.Multi

	if jobs := c.Build.ParallelJobs; jobs != nil {
		if *jobs < MinParallelJobs {
			multi.Append(errors.New(errors.ErrConfigValid, "parallel jobs cannot be zero"))
		}
		if *jobs > MaxParallelJobs {
			multi.Append(errors.Newf(errors.ErrConfigValid, "parallel jobs cannot exceed %d", MaxParallelJobs))
		}
	}

	if c.Optimization.ArtifactRetentionDays < MinRetentionDays {
		multi.Append(errors.New(errors.ErrConfigValid, "artifact retention cannot be negative"))
	}
	if c.Optimization.ArtifactRetentionDays > MaxRetentionDays {
		multi.Append(errors.Newf(errors.ErrConfigValid, "artifact retention cannot exceed %d days", MaxRetentionDays))
	}

	if c.Tools.InstallTimeoutSeconds < MinInstallTimeoutSec {
		multi.Append(errors.Newf(errors.ErrConfigValid, "tool install timeout must be at least %d seconds", MinInstallTimeoutSec))
	}

	for _, path := range c.Development.WatchPaths {
		if _, err := os.Stat(path); err != nil {
			logger.Warn().Str("path", path).Msg("Watch path does not exist")
		}
	}

	return multi.ErrOrNil()
}
