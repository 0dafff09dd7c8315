package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/craftbase-io/cms-client/pkg/cms"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		clientID     string
		clientSecret string
		actAs        string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the content-management API",
		Long:  "Perform an OAuth2 client_credentials token exchange and report the token lifetime",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				clientID = viper.GetString("client_id")
			}

			if clientSecret == "" {
				clientSecret = viper.GetString("client_secret")
			}

			if clientID == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Client ID: ")
				clientID, _ = reader.ReadString('\n')
				clientID = strings.TrimSpace(clientID)
			}

			if clientSecret == "" {
				fmt.Print("Client Secret: ")

				secretBytes, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read client secret: %w", err)
				}

				clientSecret = string(secretBytes)

				fmt.Println()
			}

			if actAs == "" {
				actAs = viper.GetString("act_as")
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			token, err := client.Authenticate(context.Background(), &cms.Credentials{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				ActAs:        actAs,
			})
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Printf("Authenticated. Token expires in %d seconds (%s)\n",
				token.ExpiresIn, client.TokenExpiresAt().Format("2006-01-02 15:04:05"))

			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client id")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")
	cmd.Flags().StringVar(&actAs, "act-as", "", "impersonation subject")

	return cmd
}
