package fastfuels

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
)

// QuicFireExportOptions configures the domain-to-QUIC-Fire pipeline.
type QuicFireExportOptions struct {
	// Name and Description for the created domain.
	Name        string
	Description string

	// HorizontalResolution and VerticalResolution of the domain in
	// meters. Zero values use the API defaults (2m / 1m).
	HorizontalResolution float64
	VerticalResolution   float64

	// Wait applies to every polling wait in the pipeline. Nil uses
	// DefaultWaitOptions.
	Wait *WaitOptions

	// OnStage, if set, is called with a human-readable description as
	// each pipeline stage starts.
	OnStage func(stage string)
}

func (o *QuicFireExportOptions) stage(msg string) {
	if o.OnStage != nil {
		o.OnStage(msg)
	}
}

// ExportDomainToQuicFire runs the full fuels pipeline for a region of
// interest: it creates a domain from the GeoJSON, derives road and water
// features from OpenStreetMap, builds the topography, feature, surface, and
// tree grids, exports the grid bundle in QUIC-Fire format, and downloads the
// artifact to outputPath. Independent resources are waited on concurrently.
//
// The returned export is completed and already downloaded. The intermediate
// resources stay attached to the domain for later inspection or re-export.
func ExportDomainToQuicFire(ctx context.Context, client Client, geojson *CreateDomainRequest, outputPath string, opts *QuicFireExportOptions) (*Export, error) {
	if opts == nil {
		opts = &QuicFireExportOptions{}
	}

	if geojson.Name == "" {
		geojson.Name = opts.Name
	}

	if geojson.Description == "" {
		geojson.Description = opts.Description
	}

	if geojson.HorizontalResolution == 0 {
		geojson.HorizontalResolution = opts.HorizontalResolution
	}

	if geojson.VerticalResolution == 0 {
		geojson.VerticalResolution = opts.VerticalResolution
	}

	opts.stage("creating domain from region of interest")

	domain, err := client.Domains().Create(ctx, geojson)
	if err != nil {
		return nil, fmt.Errorf("creating domain: %w", err)
	}

	opts.stage("creating road and water features")

	_, err = client.Features().Road().CreateFromOSM(ctx, domain.ID)
	if err != nil {
		return nil, fmt.Errorf("creating road feature: %w", err)
	}

	_, err = client.Features().Water().CreateFromOSM(ctx, domain.ID)
	if err != nil {
		return nil, fmt.Errorf("creating water feature: %w", err)
	}

	opts.stage("creating topography grid")

	_, err = NewTopographyGridBuilder(domain.ID).
		WithElevationFrom3DEP("linear").
		Build(ctx, client.Grids())
	if err != nil {
		return nil, fmt.Errorf("creating topography grid: %w", err)
	}

	// Road and water rasterize independently; wait for both at once.
	err = waitAll(
		func() error {
			_, waitErr := client.Features().Road().WaitUntilCompleted(ctx, domain.ID, opts.Wait)

			return waitErr
		},
		func() error {
			_, waitErr := client.Features().Water().WaitUntilCompleted(ctx, domain.ID, opts.Wait)

			return waitErr
		},
	)
	if err != nil {
		return nil, fmt.Errorf("waiting for features: %w", err)
	}

	opts.stage("creating feature grid")

	_, err = client.Grids().Feature().Create(ctx, domain.ID, &CreateFeatureGridRequest{
		Attributes: []string{FeatureGridAttributeRoad, FeatureGridAttributeWater},
	})
	if err != nil {
		return nil, fmt.Errorf("creating feature grid: %w", err)
	}

	opts.stage("creating tree inventory")

	masks := []string{FeatureGridAttributeRoad, FeatureGridAttributeWater}

	_, err = client.Inventories().Tree().CreateFromTreeMap(ctx, domain.ID, masks)
	if err != nil {
		return nil, fmt.Errorf("creating tree inventory: %w", err)
	}

	_, err = client.Grids().Feature().WaitUntilCompleted(ctx, domain.ID, opts.Wait)
	if err != nil {
		return nil, fmt.Errorf("waiting for feature grid: %w", err)
	}

	opts.stage("creating surface grid")

	curingHerbaceous := 0.25
	curingWoody := 0.1
	moisture := 15.0

	_, err = NewSurfaceGridBuilder(domain.ID).
		WithFuelLoadFromLandfire(&LandfireOptions{
			Product:              "FBFM40",
			InterpolationMethod:  "cubic",
			CuringLiveHerbaceous: &curingHerbaceous,
			CuringLiveWoody:      &curingWoody,
			Groups:               []string{"oneHour"},
			FeatureMasks:         masks,
			RemoveNonBurnable:    []string{"NB1", "NB2"},
		}).
		WithFuelDepthFromLandfire(&LandfireOptions{
			Product:             "FBFM40",
			InterpolationMethod: "cubic",
			FeatureMasks:        masks,
			RemoveNonBurnable:   []string{"NB1", "NB2"},
		}).
		WithUniformFuelMoisture(moisture, masks...).
		Build(ctx, client.Grids())
	if err != nil {
		return nil, fmt.Errorf("creating surface grid: %w", err)
	}

	_, err = client.Inventories().Tree().WaitUntilCompleted(ctx, domain.ID, opts.Wait)
	if err != nil {
		return nil, fmt.Errorf("waiting for tree inventory: %w", err)
	}

	opts.stage("creating tree grid")

	_, err = NewTreeGridBuilder(domain.ID).
		WithBulkDensityFromTreeInventory().
		Build(ctx, client.Grids())
	if err != nil {
		return nil, fmt.Errorf("creating tree grid: %w", err)
	}

	// The export needs every grid in the bundle completed.
	err = waitAll(
		func() error {
			_, waitErr := client.Grids().Topography().WaitUntilCompleted(ctx, domain.ID, opts.Wait)

			return waitErr
		},
		func() error {
			_, waitErr := client.Grids().Surface().WaitUntilCompleted(ctx, domain.ID, opts.Wait)

			return waitErr
		},
		func() error {
			_, waitErr := client.Grids().Tree().WaitUntilCompleted(ctx, domain.ID, opts.Wait)

			return waitErr
		},
	)
	if err != nil {
		return nil, fmt.Errorf("waiting for grids: %w", err)
	}

	opts.stage("exporting grids to QUIC-Fire")

	export, err := client.Grids().CreateExport(ctx, domain.ID, constants.ExportFormatQUICFire)
	if err != nil {
		return nil, fmt.Errorf("creating export: %w", err)
	}

	export, err = client.Exports().WaitUntilCompleted(ctx, export, opts.Wait)
	if err != nil {
		return nil, fmt.Errorf("waiting for export: %w", err)
	}

	opts.stage("downloading QUIC-Fire archive")

	_, err = client.Exports().DownloadToFile(ctx, export, outputPath)
	if err != nil {
		return nil, fmt.Errorf("downloading export: %w", err)
	}

	return export, nil
}

// waitAll runs the given functions concurrently and returns the first error
// encountered, if any.
func waitAll(fns ...func() error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, fn := range fns {
		wg.Add(1)

		go func(fn func() error) {
			defer wg.Done()

			err := fn()
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(fn)
	}

	wg.Wait()

	return firstErr
}
