package commands

import (
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/craftbase-io/cms-client/internal/constants"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(newConfigViewCommand())

	return cmd
}

// effectiveConfig is the resolved configuration shown to the user.
type effectiveConfig struct {
	API        string        `json:"api"         yaml:"api"`
	APIVersion string        `json:"api_version" yaml:"api_version"`
	TokenURL   string        `json:"token_url"   yaml:"token_url"`
	Timeout    time.Duration `json:"timeout"     yaml:"timeout"`
	Output     string        `json:"output"      yaml:"output"`
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := resolveEffectiveConfig()

			return output(resolved, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Setting", "Value")

				_ = table.Append("api", resolved.API)
				_ = table.Append("api_version", resolved.APIVersion)
				_ = table.Append("token_url", resolved.TokenURL)
				_ = table.Append("timeout", resolved.Timeout.String())
				_ = table.Append("output", resolved.Output)

				return table.Render()
			})
		},
	}
}

func resolveEffectiveConfig() *effectiveConfig {
	version := viper.GetString("api_version")
	if version == "" {
		version = string(cms.APIVersionPreview3)
	}

	api := viper.GetString("api")
	if api == "" {
		api = constants.DefaultAPIHost + "/" + version
	}

	tokenURL := viper.GetString("token_url")
	if tokenURL == "" {
		tokenURL = constants.DefaultTokenURL
	}

	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	return &effectiveConfig{
		API:        api,
		APIVersion: version,
		TokenURL:   tokenURL,
		Timeout:    timeout,
		Output:     viper.GetString("output"),
	}
}
