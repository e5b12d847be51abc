package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewExportsCommand creates the exports command group.
func NewExportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exports",
		Aliases: []string{"export"},
		Short:   "Track and download exports",
		Long:    "Track export jobs created on other resources and download their artifacts",
	}

	cmd.AddCommand(newExportsStatusCommand())
	cmd.AddCommand(newExportsWaitCommand())
	cmd.AddCommand(newExportsDownloadCommand())

	return cmd
}

// addWaitFlags registers the shared polling flags used by every wait-capable
// command.
func addWaitFlags(cmd *cobra.Command, interval, timeout *time.Duration) {
	cmd.Flags().DurationVar(interval, "interval", 0, "poll interval (default 5s)")
	cmd.Flags().DurationVar(timeout, "timeout", 0, "maximum time to wait (default 10m)")
}

// exportFromFlags reconstructs an export handle from identifying flags.
func exportFromFlags(domainID, target, format string) *fastfuels.Export {
	return &fastfuels.Export{
		DomainID: domainID,
		Target:   target,
		Format:   format,
	}
}

func addExportFlags(cmd *cobra.Command, domainID, target, format *string) {
	cmd.Flags().StringVarP(domainID, "domain", "d", "", "domain ID")
	cmd.Flags().StringVar(target, "target", "grids", "exported resource path (grids, inventories/tree, ...)")
	cmd.Flags().StringVar(format, "format", constants.ExportFormatZarr, "export format")
	_ = cmd.MarkFlagRequired("domain")
}

func outputExport(export *fastfuels.Export) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(export)
	case constants.FormatYAML:
		return outputYAML(export)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		signedURL := export.SignedURL
		if signedURL == "" {
			signedURL = constants.NotAvailable
		}

		_ = table.Append("Domain", export.DomainID)
		_ = table.Append("Resource", export.Target)
		_ = table.Append("Format", export.Format)
		_ = table.Append("Status", formatStatus(export.Status))
		_ = table.Append("Signed URL", signedURL)
		_ = table.Append("Expires", formatTime(export.ExpiresOn))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

// waitAndDownloadExport waits for an export to complete and writes its
// artifact to outputPath.
func waitAndDownloadExport(ctx context.Context, client fastfuels.Client, export *fastfuels.Export, outputPath string, opts *fastfuels.WaitOptions) error {
	export, err := client.Exports().WaitUntilCompleted(ctx, export, opts)
	if err != nil {
		return fmt.Errorf("failed waiting for export: %w", err)
	}

	written, err := client.Exports().DownloadToFile(ctx, export, outputPath)
	if err != nil {
		return fmt.Errorf("failed to download export: %w", err)
	}

	fmt.Printf("Downloaded %s\n", written)

	return nil
}

func newExportsStatusCommand() *cobra.Command {
	var (
		domainID string
		target   string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Get export status",
		Long:  "Refresh the status of an export job",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			export, err := client.Exports().Get(context.Background(), exportFromFlags(domainID, target, format))
			if err != nil {
				return fmt.Errorf("failed to get export: %w", err)
			}

			return outputExport(export)
		},
	}

	addExportFlags(cmd, &domainID, &target, &format)

	return cmd
}

func newExportsWaitCommand() *cobra.Command {
	var (
		domainID string
		target   string
		format   string
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait for an export to complete",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			export, err := client.Exports().WaitUntilCompleted(context.Background(),
				exportFromFlags(domainID, target, format), waitOptionsFromFlags(interval, timeout))
			if err != nil {
				return fmt.Errorf("failed waiting for export: %w", err)
			}

			return outputExport(export)
		},
	}

	addExportFlags(cmd, &domainID, &target, &format)
	addWaitFlags(cmd, &interval, &timeout)

	return cmd
}

func newExportsDownloadCommand() *cobra.Command {
	var (
		domainID   string
		target     string
		format     string
		outputPath string
		interval   time.Duration
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download an export artifact",
		Long:  "Wait for an export to complete and download its artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return waitAndDownloadExport(context.Background(), client,
				exportFromFlags(domainID, target, format), outputPath, waitOptionsFromFlags(interval, timeout))
		},
	}

	addExportFlags(cmd, &domainID, &target, &format)
	addWaitFlags(cmd, &interval, &timeout)
	cmd.Flags().StringVarP(&outputPath, "output-file", "o", ".", "download destination file or directory")

	return cmd
}
