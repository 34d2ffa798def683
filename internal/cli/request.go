package cli

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	getQuery   []string
	getSelect  string
	bodyData   string
	bodyFile   string
	bodySets   []string
	bodySelect string
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get ENDPOINT [flags]",
	Short: "Send a GET request to the UCRM API",
	Long: `Send a GET request to the UCRM API. ENDPOINT is relative to the API base URL,
for example "clients" or "clients/42/contacts".

Examples:
  # List the first 10 clients
  ucrm get clients -q limit=10

  # Print only the first names
  ucrm get clients --select '#.firstName'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := parseQuery(getQuery)
		if err != nil {
			return err
		}
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		result, err := client.Get(cmd.Context(), args[0], query)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result, getSelect)
	},
}

// newBodyCmd creates a command for a verb that sends a JSON body
func newBodyCmd(method string) *cobra.Command {
	use := "post"
	short := "Send a POST request to the UCRM API"
	if method == http.MethodPatch {
		use = "patch"
		short = "Send a PATCH request to the UCRM API"
	}
	cmd := &cobra.Command{
		Use:   use + " ENDPOINT [flags]",
		Short: short,
		Long: short + `. The body is taken from --data or --file and
then modified by each --set path=value. Without --data and --file the body starts as {}.

Examples:
  ucrm ` + use + ` clients --set firstName=John --set isLead=true
  ucrm ` + use + ` clients -f client.json --set 'contacts.0.email=john@example.com'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := buildBody(bodyData, bodyFile, bodySets)
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			log.Debug().Str("method", method).Str("endpoint", args[0]).Int("size", len(body)).Msg("sending body")

			payload := json.RawMessage(body)
			call := client.Post
			if method == http.MethodPatch {
				call = client.Patch
			}
			result, err := call(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, bodySelect)
		},
	}
	cmd.Flags().StringVarP(&bodyData, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(&bodyFile, "file", "f", "", "File containing the JSON request body")
	cmd.Flags().StringArrayVar(&bodySets, "set", nil, "Set a body field, path=value (repeatable)")
	cmd.Flags().StringVar(&bodySelect, "select", "", "gjson path to print from the response")
	return cmd
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ENDPOINT",
	Short: "Send a DELETE request to the UCRM API",
	Long: `Send a DELETE request to the UCRM API.

Examples:
  ucrm delete clients/42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		result, err := client.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result, "")
	},
}

func init() {
	getCmd.Flags().StringArrayVarP(&getQuery, "query", "q", nil, "Query parameter, key=value (repeatable)")
	getCmd.Flags().StringVar(&getSelect, "select", "", "gjson path to print from the response")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(newBodyCmd(http.MethodPost))
	rootCmd.AddCommand(newBodyCmd(http.MethodPatch))
	rootCmd.AddCommand(deleteCmd)
}
