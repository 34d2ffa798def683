package pluginconfig

import (
	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/apperrors"
)

var (
	// ErrPlugin is the base error for everything this package returns.
	ErrPlugin apperrors.Error = apperrors.New("plugin error")

	// ErrInvalidPluginRootPath is returned when the root path is not a plugin installation:
	// it does not exist, is not a directory, or has no readable ucrm.json.
	ErrInvalidPluginRootPath apperrors.Error = ErrPlugin.New("invalid plugin root path")

	// ErrConfiguration is returned when the plugin root is recognized but its
	// configuration cannot be used.
	ErrConfiguration apperrors.Error = ErrPlugin.New("invalid plugin configuration")
)

// Configuration errors
var (
	ErrPluginDisabled  apperrors.Error = ErrConfiguration.New("plugin is disabled")
	ErrMissingAppKey   apperrors.Error = ErrConfiguration.New("plugin app key is missing, the plugin is probably disabled")
	ErrMissingAPIURL   apperrors.Error = ErrConfiguration.New("UCRM URL is missing in plugin configuration")
	ErrInvalidAPIURL   apperrors.Error = ErrConfiguration.New("UCRM URL in plugin configuration is not valid")
	ErrInvalidOption   apperrors.Error = ErrConfiguration.New("plugin configuration value has the wrong type")
	ErrInvalidManifest apperrors.Error = ErrConfiguration.New("invalid plugin manifest")
)
