package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/fastfuels-io/fastfuels-client/pkg/ffclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		apiKey      string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to FastFuels",
		Long:  "Store an API key for a FastFuels API endpoint after verifying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Get API endpoint
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				apiEndpoint = config.API
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Printf("API endpoint (empty for %s): ", constants.DefaultAPIEndpoint)
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			// Get API key
			if apiKey == "" {
				apiKey = viper.GetString("key")
			}

			if apiKey == "" {
				fmt.Print("API key: ")

				keyBytes, err := term.ReadPassword(syscall.Stdin)

				fmt.Println()

				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}

				apiKey = strings.TrimSpace(string(keyBytes))
			}

			if apiKey == "" {
				return fastfuels.ErrAPIKeyRequired
			}

			// Verify the key against the API before persisting it
			clientConfig := &fastfuels.Config{
				APIEndpoint: apiEndpoint,
				APIKey:      apiKey,
			}

			client, err := ffclient.New(clientConfig)
			if err != nil {
				return err
			}

			_, err = client.Domains().List(context.Background(), &fastfuels.ListDomainsParams{Size: 1})
			if err != nil {
				return fmt.Errorf("failed to verify API key: %w", err)
			}

			config.API = clientConfig.APIEndpoint
			config.Key = apiKey

			err = saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in to %s\n", clientConfig.APIEndpoint)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "", "API endpoint URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (prompted if not provided)")

	return cmd
}
