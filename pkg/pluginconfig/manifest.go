package pluginconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// ManifestFile is the name of the optional plugin manifest in the plugin root.
const ManifestFile = "manifest.json"

type manifestFile struct {
	Version     string `json:"version"`
	Information struct {
		Name                  string `json:"name"`
		DisplayName           string `json:"displayName"`
		Description           string `json:"description"`
		Author                string `json:"author"`
		Version               string `json:"version"`
		UcrmVersionCompliancy struct {
			Min *string `json:"min"`
			Max *string `json:"max"`
		} `json:"ucrmVersionCompliancy"`
	} `json:"information"`
}

// Manifest describes the plugin as declared in manifest.json.
type Manifest struct {
	Name        string
	DisplayName string
	Description string
	Author      string
	Version     *semver.Version

	ucrmMin *semver.Version
	ucrmMax *semver.Version
}

// SupportsUcrmVersion reports whether the plugin declares compatibility with the given
// UCRM version. Missing bounds are treated as open.
func (m *Manifest) SupportsUcrmVersion(version string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid UCRM version %q: %w", version, err)
	}
	if m.ucrmMin != nil && v.LessThan(m.ucrmMin) {
		return false, nil
	}
	if m.ucrmMax != nil && v.GreaterThan(m.ucrmMax) {
		return false, nil
	}
	return true, nil
}

// UcrmVersionRange returns the declared compatibility bounds, either of which may be nil.
func (m *Manifest) UcrmVersionRange() (lower, upper *semver.Version) {
	return m.ucrmMin, m.ucrmMax
}

// readManifest returns nil without error when the plugin root has no manifest.
func readManifest(rootPath string) (*Manifest, error) {
	content, err := os.ReadFile(filepath.Join(rootPath, ManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ErrInvalidManifest.Err(err)
	}

	var mf manifestFile
	if err := json.Unmarshal(content, &mf); err != nil {
		return nil, ErrInvalidManifest.Err(err)
	}
	info := mf.Information
	if info.Name == "" {
		return nil, ErrInvalidManifest.Msg("manifest information.name is required")
	}

	version, err := semver.NewVersion(info.Version)
	if err != nil {
		return nil, ErrInvalidManifest.MsgErr(fmt.Sprintf("manifest information.version %q is not a semantic version", info.Version), err)
	}

	m := &Manifest{
		Name:        info.Name,
		DisplayName: info.DisplayName,
		Description: info.Description,
		Author:      info.Author,
		Version:     version,
	}
	if m.ucrmMin, err = parseBound(info.UcrmVersionCompliancy.Min); err != nil {
		return nil, ErrInvalidManifest.MsgErr("invalid ucrmVersionCompliancy.min", err)
	}
	if m.ucrmMax, err = parseBound(info.UcrmVersionCompliancy.Max); err != nil {
		return nil, ErrInvalidManifest.MsgErr("invalid ucrmVersionCompliancy.max", err)
	}
	return m, nil
}

func parseBound(s *string) (*semver.Version, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	return semver.NewVersion(*s)
}
