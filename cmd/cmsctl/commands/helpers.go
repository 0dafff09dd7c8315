package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/craftbase-io/cms-client/internal/constants"
	"github.com/craftbase-io/cms-client/pkg/cms"
	"github.com/craftbase-io/cms-client/pkg/cmsclient"
)

// Output format names.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// CreateClient builds a client from the effective CLI configuration.
func CreateClient() (cms.Client, error) {
	config := &cms.Config{
		BaseURL:      viper.GetString("api"),
		TokenURL:     viper.GetString("token_url"),
		APIVersion:   cms.APIVersion(viper.GetString("api_version")),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		ActAs:        viper.GetString("act_as"),
		AccessToken:  viper.GetString("token"),
		Timeout:      viper.GetDuration("timeout"),
		Debug:        viper.GetBool("verbose"),
	}

	client, err := cmsclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// output renders v in the configured format, falling back to the supplied
// table renderer.
func output(v interface{}, table func() error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(v)
	case OutputFormatYAML:
		return outputYAML(v)
	default:
		return table()
	}
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.YAMLIndentSize)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return nil
}
