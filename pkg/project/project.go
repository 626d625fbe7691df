// Package project locates Rust projects and merges synthesized cargo
// artifacts into them.
package project

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/atlas/pkg/errors"
)

// ManifestName is the cargo manifest file every project root carries.
const ManifestName = "Cargo.toml"

// CargoDirName is the project-relative directory for cargo settings.
const CargoDirName = ".cargo"

// ConfigFileName is the settings document file name under CargoDirName.
const ConfigFileName = "config.toml"

// IsCargoProject reports whether dir contains a cargo manifest.
func IsCargoProject(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ManifestName))
	return err == nil
}

// IsInitialized reports whether the project already carries a merged
// cargo settings document.
func IsInitialized(root string) bool {
	_, err := os.Stat(filepath.Join(root, CargoDirName, ConfigFileName))
	return err == nil
}

// FindRoot walks up from start until it finds a directory containing a
// cargo manifest. Not finding one is a project-validation error.
func FindRoot(start string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrProjectInvalid, "cannot resolve %s", start)
	}

	for {
		if IsCargoProject(current) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", errors.New(errors.ErrProjectInvalid,
				"no Cargo.toml found in current directory or any parent directory")
		}
		current = parent
	}
}

// BackupFile copies the file at path aside with a .backup suffix and
// returns the backup path. The original is left untouched.
func BackupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrFileNotFound, "cannot back up missing file %s", path)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}

	backupPath := path + ".backup"
	if err := os.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot write backup %s", backupPath)
	}

	return backupPath, nil
}
