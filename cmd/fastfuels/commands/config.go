package commands

import (
	"fmt"
	"os"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage FastFuels CLI configuration including the API endpoint and key",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"get"},
		Short:   "Show current configuration",
		Long:    "Display the current CLI configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			masked := *config
			if masked.Key != "" {
				masked.Key = constants.MaskedSecret
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return outputJSON(masked)
			case constants.FormatYAML:
				return outputYAML(masked)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Value")

				api := masked.API
				if api == "" {
					api = constants.DefaultAPIEndpoint
				}

				key := masked.Key
				if key == "" {
					key = constants.NotAvailable
				}

				out := masked.Output
				if out == "" {
					out = constants.FormatTable
				}

				_ = table.Append("api", api)
				_ = table.Append("key", key)
				_ = table.Append("output", out)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value (api, key, or output)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			switch key {
			case "api":
				config.API = value
			case "key":
				config.Key = value
			case "output":
				if value != constants.FormatTable && value != constants.FormatJSON && value != constants.FormatYAML {
					return fmt.Errorf("%w: %s", fastfuels.ErrInvalidOutputFormat, value)
				}

				config.Output = value
			default:
				return fmt.Errorf("%w: %s", fastfuels.ErrUnknownConfigKey, key)
			}

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value (api or output); use 'login' to rotate the key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			switch key {
			case "api":
				config.API = ""
			case "output":
				config.Output = ""
			case "key":
				return fastfuels.ErrKeyFieldCannotUnset
			default:
				return fmt.Errorf("%w: %s", fastfuels.ErrUnknownConfigKey, key)
			}

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}
