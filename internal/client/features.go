package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// FeaturesClient implements fastfuels.FeaturesClient.
type FeaturesClient struct {
	httpClient *http.Client
	road       *RoadFeatureClient
	water      *WaterFeatureClient
}

// NewFeaturesClient creates a new features client.
func NewFeaturesClient(httpClient *http.Client) *FeaturesClient {
	return &FeaturesClient{
		httpClient: httpClient,
		road:       NewRoadFeatureClient(httpClient),
		water:      NewWaterFeatureClient(httpClient),
	}
}

func featuresPath(domainID string) string {
	return domainPath(domainID) + "/features"
}

// Get implements fastfuels.FeaturesClient.Get.
func (c *FeaturesClient) Get(ctx context.Context, domainID string) (*fastfuels.Features, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, featuresPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting features: %w", err)
	}

	var features fastfuels.Features

	err = json.Unmarshal(resp.Body, &features)
	if err != nil {
		return nil, fmt.Errorf("parsing features: %w", err)
	}

	features.DomainID = domainID

	return &features, nil
}

// Road implements fastfuels.FeaturesClient.Road.
func (c *FeaturesClient) Road() fastfuels.RoadFeatureClient {
	return c.road
}

// Water implements fastfuels.FeaturesClient.Water.
func (c *FeaturesClient) Water() fastfuels.WaterFeatureClient {
	return c.water
}

// RoadFeatureClient implements fastfuels.RoadFeatureClient.
type RoadFeatureClient struct {
	httpClient *http.Client
}

// NewRoadFeatureClient creates a new road feature client.
func NewRoadFeatureClient(httpClient *http.Client) *RoadFeatureClient {
	return &RoadFeatureClient{httpClient: httpClient}
}

func roadFeaturePath(domainID string) string {
	return featuresPath(domainID) + "/road"
}

// Create implements fastfuels.RoadFeatureClient.Create.
func (c *RoadFeatureClient) Create(ctx context.Context, domainID string, request *fastfuels.CreateFeatureRequest) (*fastfuels.RoadFeature, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Post(ctx, roadFeaturePath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("creating road feature: %w", err)
	}

	var feature fastfuels.RoadFeature

	err = json.Unmarshal(resp.Body, &feature)
	if err != nil {
		return nil, fmt.Errorf("parsing road feature: %w", err)
	}

	feature.DomainID = domainID

	return &feature, nil
}

// CreateFromOSM implements fastfuels.RoadFeatureClient.CreateFromOSM.
func (c *RoadFeatureClient) CreateFromOSM(ctx context.Context, domainID string) (*fastfuels.RoadFeature, error) {
	request := &fastfuels.CreateFeatureRequest{
		Sources: []string{fastfuels.FeatureSourceOSM},
	}

	return c.Create(ctx, domainID, request)
}

// Get implements fastfuels.RoadFeatureClient.Get.
func (c *RoadFeatureClient) Get(ctx context.Context, domainID string) (*fastfuels.RoadFeature, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, roadFeaturePath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting road feature: %w", err)
	}

	var feature fastfuels.RoadFeature

	err = json.Unmarshal(resp.Body, &feature)
	if err != nil {
		return nil, fmt.Errorf("parsing road feature: %w", err)
	}

	feature.DomainID = domainID

	return &feature, nil
}

// Delete implements fastfuels.RoadFeatureClient.Delete.
func (c *RoadFeatureClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, roadFeaturePath(domainID))
	if err != nil {
		return fmt.Errorf("deleting road feature: %w", err)
	}

	return nil
}

// WaitUntilCompleted implements fastfuels.RoadFeatureClient.WaitUntilCompleted.
func (c *RoadFeatureClient) WaitUntilCompleted(ctx context.Context, domainID string, opts *fastfuels.WaitOptions) (*fastfuels.RoadFeature, error) {
	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.RoadFeature, error) {
		return c.Get(ctx, domainID)
	}, opts)
}

// WaterFeatureClient implements fastfuels.WaterFeatureClient.
type WaterFeatureClient struct {
	httpClient *http.Client
}

// NewWaterFeatureClient creates a new water feature client.
func NewWaterFeatureClient(httpClient *http.Client) *WaterFeatureClient {
	return &WaterFeatureClient{httpClient: httpClient}
}

func waterFeaturePath(domainID string) string {
	return featuresPath(domainID) + "/water"
}

// Create implements fastfuels.WaterFeatureClient.Create.
func (c *WaterFeatureClient) Create(ctx context.Context, domainID string, request *fastfuels.CreateFeatureRequest) (*fastfuels.WaterFeature, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Post(ctx, waterFeaturePath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("creating water feature: %w", err)
	}

	var feature fastfuels.WaterFeature

	err = json.Unmarshal(resp.Body, &feature)
	if err != nil {
		return nil, fmt.Errorf("parsing water feature: %w", err)
	}

	feature.DomainID = domainID

	return &feature, nil
}

// CreateFromOSM implements fastfuels.WaterFeatureClient.CreateFromOSM.
func (c *WaterFeatureClient) CreateFromOSM(ctx context.Context, domainID string) (*fastfuels.WaterFeature, error) {
	request := &fastfuels.CreateFeatureRequest{
		Sources: []string{fastfuels.FeatureSourceOSM},
	}

	return c.Create(ctx, domainID, request)
}

// Get implements fastfuels.WaterFeatureClient.Get.
func (c *WaterFeatureClient) Get(ctx context.Context, domainID string) (*fastfuels.WaterFeature, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, waterFeaturePath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting water feature: %w", err)
	}

	var feature fastfuels.WaterFeature

	err = json.Unmarshal(resp.Body, &feature)
	if err != nil {
		return nil, fmt.Errorf("parsing water feature: %w", err)
	}

	feature.DomainID = domainID

	return &feature, nil
}

// Delete implements fastfuels.WaterFeatureClient.Delete.
func (c *WaterFeatureClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, waterFeaturePath(domainID))
	if err != nil {
		return fmt.Errorf("deleting water feature: %w", err)
	}

	return nil
}

// WaitUntilCompleted implements fastfuels.WaterFeatureClient.WaitUntilCompleted.
func (c *WaterFeatureClient) WaitUntilCompleted(ctx context.Context, domainID string, opts *fastfuels.WaitOptions) (*fastfuels.WaterFeature, error) {
	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.WaterFeature, error) {
		return c.Get(ctx, domainID)
	}, opts)
}
