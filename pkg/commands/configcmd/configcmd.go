// Package configcmd implements the configuration management surface:
// showing, editing, resetting, validating, and exporting settings.
package configcmd

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/atlas/pkg/config"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/executor"
	"github.com/arthur-debert/atlas/pkg/logging"
	"github.com/arthur-debert/atlas/pkg/project"
)

// ExportFormat selects the serialization for Export.
type ExportFormat string

const (
	FormatTOML ExportFormat = "toml"
	FormatYAML ExportFormat = "yaml"
	FormatJSON ExportFormat = "json"
)

// ParseExportFormat maps a user-supplied format name, case
// insensitively, to an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "", "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown export format: %s", s)
	}
}

// Options holds options shared by the config subcommands.
type Options struct {
	ConfigManager *config.Manager
	// Confirm answers the reset prompt. Nil declines.
	Confirm project.Confirmer
	// Run executes the editor process. Nil means a streaming executor.
	Run func(ctx context.Context, name string, args []string, dir string) error
	// Editor overrides the EDITOR environment variable.
	Editor string
}

func (o Options) manager() *config.Manager {
	if o.ConfigManager != nil {
		return o.ConfigManager
	}
	return config.DefaultManager()
}

// Show renders the effective configuration as TOML.
func Show(opts Options) (string, error) {
	cfg, err := opts.manager().LoadOrDefault()
	if err != nil {
		return "", err
	}
	return render(cfg, FormatTOML)
}

// Edit opens the configuration file in the user's editor, writing the
// defaults first when no file exists yet.
func Edit(opts Options) (string, error) {
	mgr := opts.manager()

	if !mgr.Exists() {
		if err := mgr.Save(config.Default()); err != nil {
			return "", err
		}
	}

	editor := opts.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return "", errors.New(errors.ErrInvalidInput,
			"no editor configured, set the EDITOR environment variable")
	}

	run := opts.Run
	if run == nil {
		run = executor.RunStreamingContext
	}
	if err := run(context.Background(), editor, []string{mgr.Path()}, ""); err != nil {
		return "", errors.Wrapf(err, errors.ErrCommandFailed, "editor %s failed", editor)
	}
	return mgr.Path(), nil
}

// Reset writes the default configuration over the current file. Without
// Force it asks for confirmation first; a declined prompt is a no-op.
func Reset(opts Options, force bool) (bool, error) {
	logger := logging.GetLogger("commands.config")

	if !force {
		if opts.Confirm == nil {
			return false, nil
		}
		ok, err := opts.Confirm.Confirm("Reset configuration to defaults?")
		if err != nil {
			return false, errors.Wrap(err, errors.ErrCancelled, "confirmation failed")
		}
		if !ok {
			return false, nil
		}
	}

	if err := opts.manager().Save(config.Default()); err != nil {
		return false, err
	}
	logger.Info().Msg("Configuration reset to defaults")
	return true, nil
}

// Validate loads the configuration and checks every constraint,
// returning all violations at once.
func Validate(opts Options) error {
	cfg, err := opts.manager().LoadOrDefault()
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// Export serializes the effective configuration in the requested
// format, writing to the output path when one is given.
func Export(opts Options, format ExportFormat, outputPath string) (string, error) {
	cfg, err := opts.manager().LoadOrDefault()
	if err != nil {
		return "", err
	}

	content, err := render(cfg, format)
	if err != nil {
		return "", err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileWrite,
				"failed to write %s", outputPath)
		}
	}
	return content, nil
}

// render serializes the configuration. YAML and JSON go through a TOML
// map round trip so every format carries the same persisted key names.
func render(cfg *config.Config, format ExportFormat) (string, error) {
	tomlOut, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSerialize, "failed to serialize configuration")
	}
	if format == FormatTOML {
		return string(tomlOut), nil
	}

	var tree map[string]interface{}
	if err := toml.Unmarshal(tomlOut, &tree); err != nil {
		return "", errors.Wrap(err, errors.ErrSerialize, "failed to re-read configuration")
	}

	var out []byte
	switch format {
	case FormatYAML:
		out, err = yaml.Marshal(tree)
	case FormatJSON:
		out, err = json.MarshalIndent(tree, "", "  ")
		out = append(out, '\n')
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown export format: %s", format)
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSerialize, "failed to serialize configuration")
	}
	return string(out), nil
}
