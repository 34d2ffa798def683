// Package pluginconfig locates and validates the configuration of a UCRM plugin.
//
// A plugin root is a directory containing ucrm.json, the options file UCRM generates
// for every installed plugin. An optional manifest.json next to it describes the plugin.
package pluginconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// OptionsFile is the name of the UCRM generated options file in the plugin root.
	OptionsFile = "ucrm.json"

	// APIPath is appended to the UCRM URL to form the API base URL.
	APIPath = "/api/v1.0/"
)

// options mirrors ucrm.json.
type options struct {
	UcrmPublicURL   string `json:"ucrmPublicUrl"`
	UcrmLocalURL    string `json:"ucrmLocalUrl"`
	UnmsLocalURL    string `json:"unmsLocalUrl"`
	PluginPublicURL string `json:"pluginPublicUrl"`
	PluginAppKey    string `json:"pluginAppKey"`
	PluginID        int    `json:"pluginId"`
	PluginEnabled   *bool  `json:"pluginEnabled"`
}

// PluginConfiguration is the validated configuration of an enabled plugin.
// It is immutable; use Resolve to obtain one.
type PluginConfiguration struct {
	appKey          string
	apiBaseURL      string
	enabled         bool
	pluginID        int
	ucrmPublicURL   string
	ucrmLocalURL    string
	unmsLocalURL    string
	pluginPublicURL string
	manifest        *Manifest
}

// AppKey returns the key sent in the x-auth-app-key header.
func (c *PluginConfiguration) AppKey() string { return c.appKey }

// APIBaseURL returns the UCRM API base URL, ending with /api/v1.0/.
func (c *PluginConfiguration) APIBaseURL() string { return c.apiBaseURL }

// Enabled reports whether the plugin is enabled. Resolve never returns a disabled configuration.
func (c *PluginConfiguration) Enabled() bool { return c.enabled }

// PluginID returns the id UCRM assigned to the plugin, zero if not set.
func (c *PluginConfiguration) PluginID() int { return c.pluginID }

// UcrmPublicURL returns the public UCRM URL from ucrm.json.
func (c *PluginConfiguration) UcrmPublicURL() string { return c.ucrmPublicURL }

// UcrmLocalURL returns the UCRM URL reachable from the plugin host.
func (c *PluginConfiguration) UcrmLocalURL() string { return c.ucrmLocalURL }

// UnmsLocalURL returns the local UNMS URL, if UCRM runs alongside UNMS.
func (c *PluginConfiguration) UnmsLocalURL() string { return c.unmsLocalURL }

// PluginPublicURL returns the public URL of the plugin's public.php.
func (c *PluginConfiguration) PluginPublicURL() string { return c.pluginPublicURL }

// Manifest returns the plugin manifest, or nil if the plugin root has none.
func (c *PluginConfiguration) Manifest() *Manifest { return c.manifest }

// validated holds the fields that must pass validation before a configuration is built.
type validated struct {
	AppKey     string `validate:"required"`
	APIBaseURL string `validate:"required,url,startswith=http"`
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Resolve reads the plugin configuration from rootPath.
//
// It fails with ErrInvalidPluginRootPath when rootPath is not a plugin root and with
// ErrConfiguration (or one of the errors derived from it) when the plugin is disabled
// or its configuration is incomplete. Only the filesystem is accessed.
func Resolve(rootPath string) (*PluginConfiguration, error) {
	opts, err := readOptions(rootPath)
	if err != nil {
		return nil, err
	}

	if opts.PluginEnabled != nil && !*opts.PluginEnabled {
		return nil, ErrPluginDisabled
	}
	if strings.TrimSpace(opts.PluginAppKey) == "" {
		return nil, ErrMissingAppKey
	}

	ucrmURL := opts.UcrmLocalURL
	if strings.TrimSpace(ucrmURL) == "" {
		ucrmURL = opts.UcrmPublicURL
	}
	if strings.TrimSpace(ucrmURL) == "" {
		return nil, ErrMissingAPIURL
	}
	apiBaseURL := strings.TrimRight(strings.TrimSpace(ucrmURL), "/") + APIPath

	if err := configValidator.Struct(validated{AppKey: opts.PluginAppKey, APIBaseURL: apiBaseURL}); err != nil {
		return nil, ErrInvalidAPIURL.Err(err)
	}

	manifest, err := readManifest(rootPath)
	if err != nil {
		return nil, err
	}

	return &PluginConfiguration{
		appKey:          opts.PluginAppKey,
		apiBaseURL:      apiBaseURL,
		enabled:         true,
		pluginID:        opts.PluginID,
		ucrmPublicURL:   opts.UcrmPublicURL,
		ucrmLocalURL:    opts.UcrmLocalURL,
		unmsLocalURL:    opts.UnmsLocalURL,
		pluginPublicURL: opts.PluginPublicURL,
		manifest:        manifest,
	}, nil
}

func readOptions(rootPath string) (*options, error) {
	if strings.TrimSpace(rootPath) == "" {
		return nil, ErrInvalidPluginRootPath.Msg("plugin root path is empty")
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, ErrInvalidPluginRootPath.Err(err)
	}
	if !info.IsDir() {
		return nil, ErrInvalidPluginRootPath.Msg(rootPath + " is not a directory")
	}

	optionsPath := filepath.Join(rootPath, OptionsFile)
	content, err := os.ReadFile(optionsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrInvalidPluginRootPath.MsgErr(fmt.Sprintf("%s not found in %s", OptionsFile, rootPath), err)
		}
		return nil, ErrInvalidPluginRootPath.Err(err)
	}

	var opts options
	if !bytes.HasPrefix(bytes.TrimSpace(content), []byte("{")) {
		return nil, ErrInvalidPluginRootPath.Msg(optionsPath + " does not contain a JSON object")
	}
	if err := json.Unmarshal(content, &opts); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrInvalidOption.MsgErr(fmt.Sprintf("%s: %s must be %s, got %s", OptionsFile, typeErr.Field, typeErr.Type, typeErr.Value), err)
		}
		return nil, ErrInvalidPluginRootPath.MsgErr(fmt.Sprintf("unable to parse %s", optionsPath), err)
	}
	return &opts, nil
}
