package commands

import (
	"context"
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

// NewFeaturesCommand creates the features command group.
func NewFeaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "features",
		Aliases: []string{"feature"},
		Short:   "Manage geographic features",
		Long:    "Manage the road and water features of a domain",
	}

	cmd.AddCommand(newFeaturesGetCommand())
	cmd.AddCommand(newRoadFeatureCommand())
	cmd.AddCommand(newWaterFeatureCommand())

	return cmd
}

func newFeaturesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get all features",
		Long:  "Get all geographic feature resources of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			features, err := client.Features().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get features: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return outputJSON(features)
			case constants.FormatYAML:
				return outputYAML(features)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Feature", "Status", "Sources")

				if features.Road != nil {
					_ = table.Append("road", formatStatus(features.Road.Status), strings.Join(features.Road.Sources, ", "))
				}

				if features.Water != nil {
					_ = table.Append("water", formatStatus(features.Water.Status), strings.Join(features.Water.Sources, ", "))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

// featureSnapshot is the common view of a road or water feature used for
// table output.
type featureSnapshot struct {
	kind     string
	domainID string
	status   fastfuels.Status
	detail   string
	sources  []string
}

func outputFeature(snapshot featureSnapshot, raw interface{}) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(raw)
	case constants.FormatYAML:
		return outputYAML(raw)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		sources := constants.NotAvailable
		if len(snapshot.sources) > 0 {
			sources = strings.Join(snapshot.sources, ", ")
		}

		detail := snapshot.detail
		if detail == "" {
			detail = constants.NotAvailable
		}

		_ = table.Append("Feature", snapshot.kind)
		_ = table.Append("Domain", snapshot.domainID)
		_ = table.Append("Status", formatStatus(snapshot.status))
		_ = table.Append("Status Detail", detail)
		_ = table.Append("Sources", sources)

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

func outputRoadFeature(feature *fastfuels.RoadFeature) error {
	return outputFeature(featureSnapshot{
		kind:     "road",
		domainID: feature.DomainID,
		status:   feature.Status,
		detail:   feature.StatusDetail,
		sources:  feature.Sources,
	}, feature)
}

func outputWaterFeature(feature *fastfuels.WaterFeature) error {
	return outputFeature(featureSnapshot{
		kind:     "water",
		domainID: feature.DomainID,
		status:   feature.Status,
		detail:   feature.StatusDetail,
		sources:  feature.Sources,
	}, feature)
}

func newRoadFeatureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "road",
		Short: "Manage the road feature",
	}

	var (
		interval time.Duration
		timeout  time.Duration
	)

	create := &cobra.Command{
		Use:   "create <domain-id>",
		Short: "Create the road feature from OpenStreetMap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			feature, err := client.Features().Road().CreateFromOSM(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create road feature: %w", err)
			}

			return outputRoadFeature(feature)
		},
	}

	get := &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get the road feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			feature, err := client.Features().Road().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get road feature: %w", err)
			}

			return outputRoadFeature(feature)
		},
	}

	wait := &cobra.Command{
		Use:   "wait <domain-id>",
		Short: "Wait for the road feature to complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			feature, err := client.Features().Road().WaitUntilCompleted(context.Background(), args[0], waitOptionsFromFlags(interval, timeout))
			if err != nil {
				return fmt.Errorf("failed waiting for road feature: %w", err)
			}

			return outputRoadFeature(feature)
		},
	}
	addWaitFlags(wait, &interval, &timeout)

	del := &cobra.Command{
		Use:   "delete <domain-id>",
		Short: "Delete the road feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Features().Road().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete road feature: %w", err)
			}

			fmt.Printf("Deleted road feature of domain %s\n", args[0])

			return nil
		},
	}

	cmd.AddCommand(create, get, wait, del)

	return cmd
}

func newWaterFeatureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water",
		Short: "Manage the water feature",
	}

	var (
		interval time.Duration
		timeout  time.Duration
	)

	create := &cobra.Command{
		Use:   "create <domain-id>",
		Short: "Create the water feature from OpenStreetMap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			feature, err := client.Features().Water().CreateFromOSM(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create water feature: %w", err)
			}

			return outputWaterFeature(feature)
		},
	}

	get := &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get the water feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			feature, err := client.Features().Water().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get water feature: %w", err)
			}

			return outputWaterFeature(feature)
		},
	}

	wait := &cobra.Command{
		Use:   "wait <domain-id>",
		Short: "Wait for the water feature to complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			feature, err := client.Features().Water().WaitUntilCompleted(context.Background(), args[0], waitOptionsFromFlags(interval, timeout))
			if err != nil {
				return fmt.Errorf("failed waiting for water feature: %w", err)
			}

			return outputWaterFeature(feature)
		},
	}
	addWaitFlags(wait, &interval, &timeout)

	del := &cobra.Command{
		Use:   "delete <domain-id>",
		Short: "Delete the water feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Features().Water().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete water feature: %w", err)
			}

			fmt.Printf("Deleted water feature of domain %s\n", args[0])

			return nil
		},
	}

	cmd.AddCommand(create, get, wait, del)

	return cmd
}
