// Package update reinstalls atlas from the package registry.
package update

import (
	"context"

	"github.com/arthur-debert/atlas/internal/version"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/executor"
	"github.com/arthur-debert/atlas/pkg/logging"
)

// Runner executes the install command with attached output.
type Runner func(ctx context.Context, name string, args []string, dir string) error

// Options holds options for the update command.
type Options struct {
	// Check reports the running version without installing anything.
	Check bool

	Run Runner
}

// Result describes the update outcome.
type Result struct {
	// CurrentVersion is the running binary's version.
	CurrentVersion string
	// Updated is false in check mode.
	Updated bool
}

// Update reinstalls the latest release over the current binary. In
// check mode it only reports the running version.
func Update(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.update")

	result := &Result{CurrentVersion: version.Version}
	if opts.Check {
		return result, nil
	}

	run := opts.Run
	if run == nil {
		run = executor.RunStreamingContext
	}

	logger.Info().Str("current", version.Version).Msg("Updating atlas")
	err := run(context.Background(), "cargo", []string{"install", "atlas", "--force"}, "")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCommandFailed, "update failed")
	}
	result.Updated = true
	return result, nil
}
