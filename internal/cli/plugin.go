package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/pluginconfig"
)

var checkUcrmVersion string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [flags]",
	Short: "Show the resolved plugin configuration",
	Long: `Show the configuration resolved from the plugin root. The app key is masked.

Examples:
  # Show the configuration of the plugin in the working directory
  ucrm config

  # Check whether the plugin declares support for a UCRM version
  ucrm config -r ./my-plugin --ucrm-version 2.16.0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := GetConfig().GetPluginRoot()
		if err != nil {
			return err
		}
		cfg, err := pluginconfig.Resolve(root)
		if err != nil {
			return err
		}
		kv, err := describePlugin(root, cfg, checkUcrmVersion)
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), kv)
	},
}

// describePlugin flattens a plugin configuration for display
func describePlugin(root string, cfg *pluginconfig.PluginConfiguration, ucrmVersion string) (map[string]any, error) {
	kv := map[string]any{
		"root":       root,
		"apiBaseUrl": cfg.APIBaseURL(),
		"appKey":     maskKey(cfg.AppKey()),
		"enabled":    cfg.Enabled(),
	}
	if cfg.PluginID() != 0 {
		kv["pluginId"] = cfg.PluginID()
	}
	for k, v := range map[string]string{
		"ucrmPublicUrl":   cfg.UcrmPublicURL(),
		"ucrmLocalUrl":    cfg.UcrmLocalURL(),
		"unmsLocalUrl":    cfg.UnmsLocalURL(),
		"pluginPublicUrl": cfg.PluginPublicURL(),
	} {
		if v != "" {
			kv[k] = v
		}
	}

	m := cfg.Manifest()
	if m == nil {
		if ucrmVersion != "" {
			return nil, fmt.Errorf("plugin has no %s to check against", pluginconfig.ManifestFile)
		}
		return kv, nil
	}
	manifest := map[string]any{
		"name":    m.Name,
		"version": m.Version.String(),
	}
	if m.DisplayName != "" {
		manifest["displayName"] = m.DisplayName
	}
	if m.Author != "" {
		manifest["author"] = m.Author
	}
	lower, upper := m.UcrmVersionRange()
	if lower != nil {
		manifest["ucrmMin"] = lower.String()
	}
	if upper != nil {
		manifest["ucrmMax"] = upper.String()
	}
	if ucrmVersion != "" {
		ok, err := m.SupportsUcrmVersion(ucrmVersion)
		if err != nil {
			return nil, err
		}
		manifest["supportsUcrm"] = map[string]any{ucrmVersion: ok}
	}
	kv["manifest"] = manifest
	return kv, nil
}

// maskKey keeps the first four characters of the key
func maskKey(key string) string {
	const visible = 4
	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}
	return key[:visible] + strings.Repeat("*", len(key)-visible)
}

func init() {
	configCmd.Flags().StringVar(&checkUcrmVersion, "ucrm-version", "", "Report whether the plugin supports this UCRM version")
	rootCmd.AddCommand(configCmd)
}
