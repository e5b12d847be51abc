package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInventoriesCommand creates the inventories command group.
func NewInventoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventories",
		Aliases: []string{"inventory"},
		Short:   "Manage inventories",
		Long:    "Manage the inventory resources of a domain, currently the tree inventory",
	}

	cmd.AddCommand(newInventoriesGetCommand())
	cmd.AddCommand(newTreeInventoryCommand())

	return cmd
}

func newInventoriesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get all inventories",
		Long:  "Get all inventory resources of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			inventories, err := client.Inventories().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get inventories: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return outputJSON(inventories)
			case constants.FormatYAML:
				return outputYAML(inventories)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Inventory", "Status", "Sources")

				if inventories.Tree != nil {
					_ = table.Append("tree", formatStatus(inventories.Tree.Status), strings.Join(inventories.Tree.Sources, ", "))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newTreeInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Manage the tree inventory",
		Long:  "Create, inspect, and export a domain's tree inventory",
	}

	cmd.AddCommand(newTreeInventoryCreateCommand())
	cmd.AddCommand(newTreeInventoryGetCommand())
	cmd.AddCommand(newTreeInventoryWaitCommand())
	cmd.AddCommand(newTreeInventoryDeleteCommand())
	cmd.AddCommand(newTreeInventoryExportCommand())

	return cmd
}

func newTreeInventoryCreateCommand() *cobra.Command {
	var (
		file         string
		featureMasks []string
	)

	cmd := &cobra.Command{
		Use:   "create <domain-id>",
		Short: "Create a tree inventory",
		Long:  "Create a tree inventory from TreeMap, or from a JSON request file for full control",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var inventory *fastfuels.TreeInventory

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read request file: %w", err)
				}

				var request fastfuels.CreateTreeInventoryRequest

				err = json.Unmarshal(data, &request)
				if err != nil {
					return fmt.Errorf("failed to parse request file: %w", err)
				}

				inventory, err = client.Inventories().Tree().Create(ctx, args[0], &request)
				if err != nil {
					return fmt.Errorf("failed to create tree inventory: %w", err)
				}
			} else {
				inventory, err = client.Inventories().Tree().CreateFromTreeMap(ctx, args[0], featureMasks)
				if err != nil {
					return fmt.Errorf("failed to create tree inventory: %w", err)
				}
			}

			return outputTreeInventory(inventory)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the full creation request")
	cmd.Flags().StringSliceVar(&featureMasks, "feature-mask", nil, "feature to mask trees from (road, water; repeatable)")

	return cmd
}

func outputTreeInventory(inventory *fastfuels.TreeInventory) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(inventory)
	case constants.FormatYAML:
		return outputYAML(inventory)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		sources := constants.NotAvailable
		if len(inventory.Sources) > 0 {
			sources = strings.Join(inventory.Sources, ", ")
		}

		masks := constants.NotAvailable
		if len(inventory.FeatureMasks) > 0 {
			masks = strings.Join(inventory.FeatureMasks, ", ")
		}

		_ = table.Append("Domain", inventory.DomainID)
		_ = table.Append("Status", formatStatus(inventory.Status))
		_ = table.Append("Sources", sources)
		_ = table.Append("Feature Masks", masks)
		_ = table.Append("Created", formatTime(inventory.CreatedOn))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

func newTreeInventoryGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get the tree inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			inventory, err := client.Inventories().Tree().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get tree inventory: %w", err)
			}

			return outputTreeInventory(inventory)
		},
	}
}

func newTreeInventoryWaitCommand() *cobra.Command {
	var (
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait <domain-id>",
		Short: "Wait for the tree inventory to complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			inventory, err := client.Inventories().Tree().WaitUntilCompleted(context.Background(), args[0], waitOptionsFromFlags(interval, timeout))
			if err != nil {
				return fmt.Errorf("failed waiting for tree inventory: %w", err)
			}

			return outputTreeInventory(inventory)
		},
	}

	addWaitFlags(cmd, &interval, &timeout)

	return cmd
}

func newTreeInventoryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <domain-id>",
		Short: "Delete the tree inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Inventories().Tree().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete tree inventory: %w", err)
			}

			fmt.Printf("Deleted tree inventory of domain %s\n", args[0])

			return nil
		},
	}
}

func newTreeInventoryExportCommand() *cobra.Command {
	var (
		format     string
		wait       bool
		outputPath string
		interval   time.Duration
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export <domain-id>",
		Short: "Export the tree inventory",
		Long:  "Export the tree inventory to a downloadable artifact (csv, parquet, geojson)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			export, err := client.Inventories().Tree().CreateExport(ctx, args[0], format)
			if err != nil {
				return fmt.Errorf("failed to create export: %w", err)
			}

			if !wait {
				return outputExport(export)
			}

			return waitAndDownloadExport(ctx, client, export, outputPath, waitOptionsFromFlags(interval, timeout))
		},
	}

	cmd.Flags().StringVar(&format, "format", constants.ExportFormatCSV, "export format (csv, parquet, geojson)")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the export and download it")
	cmd.Flags().StringVarP(&outputPath, "output-file", "o", ".", "download destination file or directory")
	addWaitFlags(cmd, &interval, &timeout)

	return cmd
}
