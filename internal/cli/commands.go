package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/apperrors"
	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/logtrace"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/ucrmapi"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	pluginRoot string
	logLevel   string
)

var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ucrm [command] [flags]",
	Short: "ucrm - call the UCRM API as a plugin",
	Long: `ucrm calls the UCRM REST API using the app key of an installed plugin.
The plugin is located through its root directory, which must contain the ucrm.json
file generated by UCRM.

Examples:
  # List clients, newest first
  ucrm get clients -q order=client.id -q direction=DESC

  # Create a client
  ucrm post clients --set firstName=John --set lastName=Doe

  # Update a client from a file
  ucrm patch clients/42 -f client.json

  # Show the plugin configuration
  ucrm config -r /data/ucrm/data/plugins/my-plugin`,
	PersistentPreRunE: preRunHandlePersistents,
	SilenceErrors:     true,
	SilenceUsage:      true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().StringVarP(&pluginRoot, "root", "r", "", "Plugin root directory (default: $"+EnvPluginRoot+" or the working directory)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(newVersionCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logtrace.InitLogger()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// preRunHandlePersistents loads .env, the config file and applies persistent flags
func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load() // no error if .env doesn't exist

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	if pluginRoot != "" {
		cfg.PluginRoot = pluginRoot
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := logtrace.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	config = cfg
	return nil
}

// printError prints err, including the status and body of failed API requests
func printError(w io.Writer, err error) {
	var reqErr *ucrmapi.RequestError
	if jsonOutput {
		kv := map[string]any{
			"error": err.Error(),
		}
		if errors.As(err, &reqErr) {
			kv["status"] = reqErr.StatusCode
			kv["body"] = string(reqErr.Body)
		}
		printJSON(w, kv)
		return
	}

	if errors.As(err, &reqErr) {
		errorLabel.Fprintf(w, "Error: %s %s failed with status %d\n", reqErr.Method, reqErr.Endpoint, reqErr.StatusCode)
		if len(reqErr.Body) > 0 {
			fmt.Fprintln(w, string(reqErr.Body))
		}
		return
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		errorLabel.Fprintf(w, "Error: %s\n", appErr.ErrorAll())
		return
	}
	errorLabel.Fprintf(w, "Error: %v\n", err)
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ucrm",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]string{"version": getCLIVersion()})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "ucrm CLI %s\n", getCLIVersion())
			}
		},
	}
}

// printJSON prints the given value as indented JSON
func printJSON(w io.Writer, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(jsonData))
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}
