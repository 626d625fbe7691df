package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/atlas/pkg/cargo"
	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/logging"
)

// Confirmer asks the user to approve an operation. Implementations live
// in the UI layer; tests substitute canned answers.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// MergeOptions controls how synthesized artifacts are applied.
type MergeOptions struct {
	// Force skips all confirmation prompts.
	Force bool
	// Backup copies existing files aside before modifying them.
	Backup bool
	// Confirm is consulted when Force is false and an operation would
	// overwrite or duplicate existing content. A nil Confirmer declines
	// everything, which keeps non-interactive runs safe.
	Confirm Confirmer
}

// MergeReport describes what Apply actually did.
type MergeReport struct {
	ConfigPath       string
	ConfigWritten    bool
	ConfigBackupPath string

	ManifestPath       string
	ProfilesAppended   bool
	ProfilesDuplicated bool
	ManifestBackupPath string
}

// Apply writes the settings document to .cargo/config.toml and appends
// the profile block to the project's Cargo.toml.
//
// The manifest must already exist; atlas never creates one. The profile
// append is guarded by a marker scan: if the manifest already contains a
// dev-profile section, a second append needs Force or an explicit
// confirmation. Duplicate blocks are a user-acknowledged risk, recorded
// in the report, not silently prevented.
func Apply(root string, artifact *cargo.Artifact, opts MergeOptions) (*MergeReport, error) {
	logger := logging.GetLogger("project")

	manifestPath := filepath.Join(root, ManifestName)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, errors.Newf(errors.ErrFileNotFound, "manifest not found: %s", manifestPath)
	}

	report := &MergeReport{
		ConfigPath:   filepath.Join(root, CargoDirName, ConfigFileName),
		ManifestPath: manifestPath,
	}

	if err := applyConfig(artifact, opts, report, logger); err != nil {
		return nil, err
	}
	if err := applyProfiles(artifact, opts, report, logger); err != nil {
		return nil, err
	}

	return report, nil
}

func applyConfig(artifact *cargo.Artifact, opts MergeOptions, report *MergeReport, logger zerolog.Logger) error {
	cargoDir := filepath.Dir(report.ConfigPath)
	if err := os.MkdirAll(cargoDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", cargoDir)
	}

	_, statErr := os.Stat(report.ConfigPath)
	exists := statErr == nil

	if exists && !opts.Force {
		ok, err := confirm(opts, "Cargo config already exists. Overwrite?")
		if err != nil {
			return err
		}
		if !ok {
			logger.Info().Str("path", report.ConfigPath).Msg("Skipping cargo config, user declined overwrite")
			return nil
		}
	}

	if exists && opts.Backup {
		backupPath, err := BackupFile(report.ConfigPath)
		if err != nil {
			return err
		}
		report.ConfigBackupPath = backupPath
	}

	if err := os.WriteFile(report.ConfigPath, []byte(artifact.ConfigTOML), 0644); err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "cannot write %s", report.ConfigPath)
		}
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", report.ConfigPath)
	}

	report.ConfigWritten = true
	logger.Info().Str("path", report.ConfigPath).Msg("Installed cargo config")
	return nil
}

func applyProfiles(artifact *cargo.Artifact, opts MergeOptions, report *MergeReport, logger zerolog.Logger) error {
	data, err := os.ReadFile(report.ManifestPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", report.ManifestPath)
	}
	content := string(data)

	hasProfiles := strings.Contains(content, cargo.ProfileMarker)
	if hasProfiles && !opts.Force {
		ok, err := confirm(opts, "Cargo.toml already contains profiles. Add optimized profiles anyway?")
		if err != nil {
			return err
		}
		if !ok {
			logger.Info().Str("path", report.ManifestPath).Msg("Skipping profile append, user declined")
			return nil
		}
	}

	if opts.Backup {
		backupPath, err := BackupFile(report.ManifestPath)
		if err != nil {
			return err
		}
		report.ManifestBackupPath = backupPath
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "\n"
	content += cargo.AppendHeader
	content += artifact.ProfilesTOML

	if err := os.WriteFile(report.ManifestPath, []byte(content), 0644); err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "cannot write %s", report.ManifestPath)
		}
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", report.ManifestPath)
	}

	report.ProfilesAppended = true
	report.ProfilesDuplicated = hasProfiles
	logger.Info().
		Str("path", report.ManifestPath).
		Bool("duplicated", hasProfiles).
		Msg("Appended build profiles")
	return nil
}

func confirm(opts MergeOptions, prompt string) (bool, error) {
	if opts.Confirm == nil {
		return false, nil
	}
	ok, err := opts.Confirm.Confirm(prompt)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCancelled, "operation cancelled")
	}
	return ok, nil
}
