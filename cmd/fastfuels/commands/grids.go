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

// NewGridsCommand creates the grids command group.
func NewGridsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "grids",
		Aliases: []string{"grid"},
		Short:   "Manage fuel grids",
		Long:    "Manage the voxelized surface, topography, tree, and feature grids of a domain",
	}

	cmd.AddCommand(newGridsGetCommand())
	cmd.AddCommand(newGridsExportCommand())
	cmd.AddCommand(newSurfaceGridCommand())
	cmd.AddCommand(newTopographyGridCommand())
	cmd.AddCommand(newTreeGridCommand())
	cmd.AddCommand(newFeatureGridCommand())

	return cmd
}

func newGridsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get all grids",
		Long:  "Get all gridded resources of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			grids, err := client.Grids().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get grids: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return outputJSON(grids)
			case constants.FormatYAML:
				return outputYAML(grids)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Grid", "Status", "Attributes")

				if grids.Surface != nil {
					_ = table.Append("surface", formatStatus(grids.Surface.Status), strings.Join(grids.Surface.Attributes, ", "))
				}

				if grids.Topography != nil {
					_ = table.Append("topography", formatStatus(grids.Topography.Status), strings.Join(grids.Topography.Attributes, ", "))
				}

				if grids.Tree != nil {
					_ = table.Append("tree", formatStatus(grids.Tree.Status), strings.Join(grids.Tree.Attributes, ", "))
				}

				if grids.Feature != nil {
					_ = table.Append("feature", formatStatus(grids.Feature.Status), strings.Join(grids.Feature.Attributes, ", "))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newGridsExportCommand() *cobra.Command {
	var (
		format     string
		wait       bool
		outputPath string
		interval   time.Duration
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export <domain-id>",
		Short: "Export the grid bundle",
		Long:  "Export the combined grid bundle for a fire model (zarr or QUIC-Fire)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			export, err := client.Grids().CreateExport(ctx, args[0], format)
			if err != nil {
				return fmt.Errorf("failed to create export: %w", err)
			}

			if !wait {
				return outputExport(export)
			}

			return waitAndDownloadExport(ctx, client, export, outputPath, waitOptionsFromFlags(interval, timeout))
		},
	}

	cmd.Flags().StringVar(&format, "format", constants.ExportFormatZarr, "export format (zarr, QUIC-Fire)")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the export and download it")
	cmd.Flags().StringVarP(&outputPath, "output-file", "o", ".", "download destination file or directory")
	addWaitFlags(cmd, &interval, &timeout)

	return cmd
}

// gridSnapshot is the common view of a grid used for table output.
type gridSnapshot struct {
	kind       string
	domainID   string
	status     fastfuels.Status
	detail     string
	attributes []string
}

func outputGrid(snapshot gridSnapshot, raw interface{}) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(raw)
	case constants.FormatYAML:
		return outputYAML(raw)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		attributes := constants.NotAvailable
		if len(snapshot.attributes) > 0 {
			attributes = strings.Join(snapshot.attributes, ", ")
		}

		detail := snapshot.detail
		if detail == "" {
			detail = constants.NotAvailable
		}

		_ = table.Append("Grid", snapshot.kind)
		_ = table.Append("Domain", snapshot.domainID)
		_ = table.Append("Status", formatStatus(snapshot.status))
		_ = table.Append("Status Detail", detail)
		_ = table.Append("Attributes", attributes)

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

func outputGridAttributes(metadata *fastfuels.GridAttributeMetadata) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(metadata)
	case constants.FormatYAML:
		return outputYAML(metadata)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		shape, _ := json.Marshal(metadata.Shape)
		chunkShape, _ := json.Marshal(metadata.ChunkShape)

		_ = table.Append("Shape", string(shape))
		_ = table.Append("Dimensions", strings.Join(metadata.Dimensions, ", "))
		_ = table.Append("Chunk Shape", string(chunkShape))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

// readRequestFile decodes a JSON request file into request.
func readRequestFile(path string, request interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	err = json.Unmarshal(data, request)
	if err != nil {
		return fmt.Errorf("failed to parse request file: %w", err)
	}

	return nil
}

func newSurfaceGridCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Manage the surface grid",
	}

	snapshot := func(grid *fastfuels.SurfaceGrid) error {
		return outputGrid(gridSnapshot{
			kind:       "surface",
			domainID:   grid.DomainID,
			status:     grid.Status,
			detail:     grid.StatusDetail,
			attributes: grid.Attributes,
		}, grid)
	}

	var file string

	create := &cobra.Command{
		Use:   "create <domain-id>",
		Short: "Create the surface grid",
		Long:  "Create the surface grid from a JSON request file, or with LANDFIRE defaults when no file is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request *fastfuels.CreateSurfaceGridRequest

			if file != "" {
				request = &fastfuels.CreateSurfaceGridRequest{}
				if err := readRequestFile(file, request); err != nil {
					return err
				}
			} else {
				request = fastfuels.NewSurfaceGridBuilder(args[0]).
					WithFuelLoadFromLandfire(nil).
					WithFuelDepthFromLandfire(nil).
					WithUniformFuelMoisture(15).
					Request()
			}

			grid, err := client.Grids().Surface().Create(context.Background(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to create surface grid: %w", err)
			}

			return snapshot(grid)
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "JSON file with the full creation request")

	cmd.AddCommand(create)
	cmd.AddCommand(newGridGetCommand("surface", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		grid, err := client.Grids().Surface().Get(ctx, domainID)
		if err != nil {
			return fmt.Errorf("failed to get surface grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridWaitCommand("surface", func(ctx context.Context, client fastfuels.Client, domainID string, opts *fastfuels.WaitOptions) error {
		grid, err := client.Grids().Surface().WaitUntilCompleted(ctx, domainID, opts)
		if err != nil {
			return fmt.Errorf("failed waiting for surface grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridAttributesCommand("surface", func(ctx context.Context, client fastfuels.Client, domainID string) (*fastfuels.GridAttributeMetadata, error) {
		return client.Grids().Surface().Attributes(ctx, domainID)
	}))
	cmd.AddCommand(newGridDeleteCommand("surface", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		return client.Grids().Surface().Delete(ctx, domainID)
	}))

	return cmd
}

func newTopographyGridCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topography",
		Short: "Manage the topography grid",
	}

	snapshot := func(grid *fastfuels.TopographyGrid) error {
		return outputGrid(gridSnapshot{
			kind:       "topography",
			domainID:   grid.DomainID,
			status:     grid.Status,
			detail:     grid.StatusDetail,
			attributes: grid.Attributes,
		}, grid)
	}

	var file string

	create := &cobra.Command{
		Use:   "create <domain-id>",
		Short: "Create the topography grid",
		Long:  "Create the topography grid from a JSON request file, or with 3DEP elevation when no file is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request *fastfuels.CreateTopographyGridRequest

			if file != "" {
				request = &fastfuels.CreateTopographyGridRequest{}
				if err := readRequestFile(file, request); err != nil {
					return err
				}
			} else {
				request = fastfuels.NewTopographyGridBuilder(args[0]).
					WithElevationFrom3DEP("").
					Request()
			}

			grid, err := client.Grids().Topography().Create(context.Background(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to create topography grid: %w", err)
			}

			return snapshot(grid)
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "JSON file with the full creation request")

	cmd.AddCommand(create)
	cmd.AddCommand(newGridGetCommand("topography", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		grid, err := client.Grids().Topography().Get(ctx, domainID)
		if err != nil {
			return fmt.Errorf("failed to get topography grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridWaitCommand("topography", func(ctx context.Context, client fastfuels.Client, domainID string, opts *fastfuels.WaitOptions) error {
		grid, err := client.Grids().Topography().WaitUntilCompleted(ctx, domainID, opts)
		if err != nil {
			return fmt.Errorf("failed waiting for topography grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridAttributesCommand("topography", func(ctx context.Context, client fastfuels.Client, domainID string) (*fastfuels.GridAttributeMetadata, error) {
		return client.Grids().Topography().Attributes(ctx, domainID)
	}))
	cmd.AddCommand(newGridDeleteCommand("topography", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		return client.Grids().Topography().Delete(ctx, domainID)
	}))

	return cmd
}

func newTreeGridCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Manage the tree grid",
	}

	snapshot := func(grid *fastfuels.TreeGrid) error {
		return outputGrid(gridSnapshot{
			kind:       "tree",
			domainID:   grid.DomainID,
			status:     grid.Status,
			detail:     grid.StatusDetail,
			attributes: grid.Attributes,
		}, grid)
	}

	var file string

	create := &cobra.Command{
		Use:   "create <domain-id>",
		Short: "Create the tree grid",
		Long:  "Create the tree grid from a JSON request file, or from the tree inventory when no file is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var request *fastfuels.CreateTreeGridRequest

			if file != "" {
				request = &fastfuels.CreateTreeGridRequest{}
				if err := readRequestFile(file, request); err != nil {
					return err
				}
			} else {
				request = fastfuels.NewTreeGridBuilder(args[0]).
					WithBulkDensityFromTreeInventory().
					Request()
			}

			grid, err := client.Grids().Tree().Create(context.Background(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to create tree grid: %w", err)
			}

			return snapshot(grid)
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "JSON file with the full creation request")

	cmd.AddCommand(create)
	cmd.AddCommand(newGridGetCommand("tree", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		grid, err := client.Grids().Tree().Get(ctx, domainID)
		if err != nil {
			return fmt.Errorf("failed to get tree grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridWaitCommand("tree", func(ctx context.Context, client fastfuels.Client, domainID string, opts *fastfuels.WaitOptions) error {
		grid, err := client.Grids().Tree().WaitUntilCompleted(ctx, domainID, opts)
		if err != nil {
			return fmt.Errorf("failed waiting for tree grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridAttributesCommand("tree", func(ctx context.Context, client fastfuels.Client, domainID string) (*fastfuels.GridAttributeMetadata, error) {
		return client.Grids().Tree().Attributes(ctx, domainID)
	}))
	cmd.AddCommand(newGridDeleteCommand("tree", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		return client.Grids().Tree().Delete(ctx, domainID)
	}))

	return cmd
}

func newFeatureGridCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Manage the feature grid",
	}

	snapshot := func(grid *fastfuels.FeatureGrid) error {
		return outputGrid(gridSnapshot{
			kind:       "feature",
			domainID:   grid.DomainID,
			status:     grid.Status,
			detail:     grid.StatusDetail,
			attributes: grid.Attributes,
		}, grid)
	}

	var attributes []string

	create := &cobra.Command{
		Use:   "create <domain-id>",
		Short: "Create the feature grid",
		Long:  "Rasterize the domain's geographic features onto the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			grid, err := client.Grids().Feature().Create(context.Background(), args[0], &fastfuels.CreateFeatureGridRequest{
				Attributes: attributes,
			})
			if err != nil {
				return fmt.Errorf("failed to create feature grid: %w", err)
			}

			return snapshot(grid)
		},
	}
	create.Flags().StringSliceVar(&attributes, "attribute", []string{fastfuels.FeatureGridAttributeRoad, fastfuels.FeatureGridAttributeWater}, "feature to rasterize (road, water; repeatable)")

	cmd.AddCommand(create)
	cmd.AddCommand(newGridGetCommand("feature", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		grid, err := client.Grids().Feature().Get(ctx, domainID)
		if err != nil {
			return fmt.Errorf("failed to get feature grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridWaitCommand("feature", func(ctx context.Context, client fastfuels.Client, domainID string, opts *fastfuels.WaitOptions) error {
		grid, err := client.Grids().Feature().WaitUntilCompleted(ctx, domainID, opts)
		if err != nil {
			return fmt.Errorf("failed waiting for feature grid: %w", err)
		}

		return snapshot(grid)
	}))
	cmd.AddCommand(newGridDeleteCommand("feature", func(ctx context.Context, client fastfuels.Client, domainID string) error {
		return client.Grids().Feature().Delete(ctx, domainID)
	}))

	return cmd
}

func newGridGetCommand(kind string, run func(ctx context.Context, client fastfuels.Client, domainID string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get the " + kind + " grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return run(context.Background(), client, args[0])
		},
	}
}

func newGridWaitCommand(kind string, run func(ctx context.Context, client fastfuels.Client, domainID string, opts *fastfuels.WaitOptions) error) *cobra.Command {
	var (
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait <domain-id>",
		Short: "Wait for the " + kind + " grid to complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return run(context.Background(), client, args[0], waitOptionsFromFlags(interval, timeout))
		},
	}

	addWaitFlags(cmd, &interval, &timeout)

	return cmd
}

func newGridAttributesCommand(kind string, run func(ctx context.Context, client fastfuels.Client, domainID string) (*fastfuels.GridAttributeMetadata, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "attributes <domain-id>",
		Short: "Get the " + kind + " grid's array metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			metadata, err := run(context.Background(), client, args[0])
			if err != nil {
				return fmt.Errorf("failed to get %s grid attributes: %w", kind, err)
			}

			return outputGridAttributes(metadata)
		},
	}
}

func newGridDeleteCommand(kind string, run func(ctx context.Context, client fastfuels.Client, domainID string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <domain-id>",
		Short: "Delete the " + kind + " grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = run(context.Background(), client, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete %s grid: %w", kind, err)
			}

			fmt.Printf("Deleted %s grid of domain %s\n", kind, args[0])

			return nil
		},
	}
}
