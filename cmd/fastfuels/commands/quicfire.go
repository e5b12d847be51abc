package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/spf13/cobra"
)

// NewQuicFireCommand creates the quicfire command.
func NewQuicFireCommand() *cobra.Command {
	var (
		name                 string
		description          string
		horizontalResolution float64
		verticalResolution   float64
		outputPath           string
		interval             time.Duration
		timeout              time.Duration
	)

	cmd := &cobra.Command{
		Use:   "quicfire <geojson-file>",
		Short: "Export a region of interest to QUIC-Fire",
		Long: `Run the full fuels pipeline for a region of interest and download the
QUIC-Fire bundle: create a domain, build road and water features, the tree
inventory, and all fuel grids, then export and download the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := readDomainRequest(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts := &fastfuels.QuicFireExportOptions{
				Name:                 name,
				Description:          description,
				HorizontalResolution: horizontalResolution,
				VerticalResolution:   verticalResolution,
				Wait:                 waitOptionsFromFlags(interval, timeout),
				OnStage: func(stage string) {
					fmt.Println(stage)
				},
			}

			export, err := fastfuels.ExportDomainToQuicFire(context.Background(), client, request, outputPath, opts)
			if err != nil {
				return fmt.Errorf("failed to export to QUIC-Fire: %w", err)
			}

			fmt.Printf("Export complete (domain %s)\n", export.DomainID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "domain name")
	cmd.Flags().StringVar(&description, "description", "", "domain description")
	cmd.Flags().Float64Var(&horizontalResolution, "horizontal-resolution", constants.DefaultHorizontalResolution, "horizontal grid resolution in meters")
	cmd.Flags().Float64Var(&verticalResolution, "vertical-resolution", constants.DefaultVerticalResolution, "vertical grid resolution in meters")
	cmd.Flags().StringVarP(&outputPath, "output-file", "o", ".", "download destination file or directory")
	addWaitFlags(cmd, &interval, &timeout)

	return cmd
}
