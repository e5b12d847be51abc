package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDomainsCommand creates the domains command group.
func NewDomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Manage domains",
		Long:    "Create, list, and manage FastFuels domains (regions of interest)",
	}

	cmd.AddCommand(newDomainsListCommand())
	cmd.AddCommand(newDomainsGetCommand())
	cmd.AddCommand(newDomainsCreateCommand())
	cmd.AddCommand(newDomainsUpdateCommand())
	cmd.AddCommand(newDomainsDeleteCommand())

	return cmd
}

func newDomainsListCommand() *cobra.Command {
	var (
		allPages bool
		page     int
		size     int
		sortBy   string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains",
		Long:  "List all domains the API key has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			params := &fastfuels.ListDomainsParams{
				Page:      page,
				Size:      size,
				SortBy:    sortBy,
				SortOrder: order,
			}

			response, err := client.Domains().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list domains: %w", err)
			}

			allDomains := response.Domains

			if allPages {
				for next := response.CurrentPage + 1; next < response.TotalPages(); next++ {
					params.Page = next

					more, err := client.Domains().List(ctx, params)
					if err != nil {
						return fmt.Errorf("failed to fetch page %d: %w", next, err)
					}

					allDomains = append(allDomains, more.Domains...)
				}
			}

			return outputDomainsList(allDomains, response, allPages)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&page, "page", constants.DefaultPage, "page to fetch (zero-indexed)")
	cmd.Flags().IntVar(&size, "size", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort field (createdOn, modifiedOn, name)")
	cmd.Flags().StringVar(&order, "order", "", "sort order (ascending, descending)")

	return cmd
}

func outputDomainsList(domains []fastfuels.Domain, response *fastfuels.ListDomainsResponse, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(domains)
	case constants.FormatYAML:
		return outputYAML(domains)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Resolution (H/V)", "Tags", "Created")

		for _, domain := range domains {
			name := domain.Name
			if name == "" {
				name = constants.NotAvailable
			}

			resolution := fmt.Sprintf("%gm / %gm", domain.HorizontalResolution, domain.VerticalResolution)

			tags := constants.NotAvailable
			if len(domain.Tags) > 0 {
				data, _ := json.Marshal(domain.Tags)
				tags = string(data)
			}

			_ = table.Append(domain.ID, name, resolution, tags, formatTime(domain.CreatedOn))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		if !allPages && response.TotalPages() > 1 {
			fmt.Printf("\nShowing page %d of %d (%d total). Use --all to fetch all pages.\n",
				response.CurrentPage+1, response.TotalPages(), response.TotalItems)
		}
	}

	return nil
}

func newDomainsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain-id>",
		Short: "Get a domain",
		Long:  "Get details of a specific domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			domain, err := client.Domains().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get domain: %w", err)
			}

			return outputDomain(domain)
		},
	}
}

func outputDomain(domain *fastfuels.Domain) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(domain)
	case constants.FormatYAML:
		return outputYAML(domain)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		name := domain.Name
		if name == "" {
			name = constants.NotAvailable
		}

		_ = table.Append("ID", domain.ID)
		_ = table.Append("Name", name)
		_ = table.Append("Horizontal Resolution", strconv.FormatFloat(domain.HorizontalResolution, 'g', -1, 64)+"m")
		_ = table.Append("Vertical Resolution", strconv.FormatFloat(domain.VerticalResolution, 'g', -1, 64)+"m")
		_ = table.Append("Created", formatTime(domain.CreatedOn))
		_ = table.Append("Modified", formatTime(domain.ModifiedOn))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

func newDomainsCreateCommand() *cobra.Command {
	var (
		file                 string
		name                 string
		description          string
		horizontalResolution float64
		verticalResolution   float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a domain",
		Long:  "Create a domain from a GeoJSON feature or feature collection file",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := readDomainRequest(file)
			if err != nil {
				return err
			}

			request.Name = name
			request.Description = description
			request.HorizontalResolution = horizontalResolution
			request.VerticalResolution = verticalResolution

			client, err := CreateClient()
			if err != nil {
				return err
			}

			domain, err := client.Domains().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create domain: %w", err)
			}

			return outputDomain(domain)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "GeoJSON file describing the region of interest")
	cmd.Flags().StringVar(&name, "name", "", "domain name")
	cmd.Flags().StringVar(&description, "description", "", "domain description")
	cmd.Flags().Float64Var(&horizontalResolution, "horizontal-resolution", constants.DefaultHorizontalResolution, "horizontal grid resolution in meters")
	cmd.Flags().Float64Var(&verticalResolution, "vertical-resolution", constants.DefaultVerticalResolution, "vertical grid resolution in meters")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readDomainRequest parses a GeoJSON Feature or FeatureCollection file into a
// domain creation request.
func readDomainRequest(path string) (*fastfuels.CreateDomainRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON file: %w", err)
	}

	var request fastfuels.CreateDomainRequest

	err = json.Unmarshal(data, &request)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON file: %w", err)
	}

	return &request, nil
}

func newDomainsUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update <domain-id>",
		Short: "Update a domain",
		Long:  "Update a domain's name, description, or tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &fastfuels.UpdateDomainRequest{Tags: tags}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("description") {
				request.Description = &description
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			domain, err := client.Domains().Update(context.Background(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update domain: %w", err)
			}

			return outputDomain(domain)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new domain name")
	cmd.Flags().StringVar(&description, "description", "", "new domain description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to set (repeatable)")

	return cmd
}

func newDomainsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <domain-id>",
		Short: "Delete a domain",
		Long:  "Delete a domain and all resources derived from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Domains().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete domain: %w", err)
			}

			fmt.Printf("Deleted domain %s\n", args[0])

			return nil
		},
	}
}
