package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// Static errors for err113 compliance.
var (
	ErrExportRequired = errors.New("export is required")
)

func exportPath(basePath, format string) string {
	return basePath + "/exports/" + url.PathEscape(format)
}

// exportTarget derives the export's target resource from its parent path,
// e.g. "grids" or "inventories/tree".
func exportTarget(basePath, domainID string) string {
	return strings.TrimPrefix(basePath, domainPath(domainID)+"/")
}

// createExport starts an export of the resource at basePath.
func createExport(ctx context.Context, httpClient *http.Client, basePath, domainID, format string) (*fastfuels.Export, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	if format == "" {
		return nil, fastfuels.ErrExportFormatRequired
	}

	resp, err := httpClient.Post(ctx, exportPath(basePath, format), nil)
	if err != nil {
		return nil, fmt.Errorf("creating export: %w", err)
	}

	export, err := parseExport(resp.Body, domainID, basePath, format)
	if err != nil {
		return nil, err
	}

	return export, nil
}

// getExport fetches the current state of an export of the resource at
// basePath.
func getExport(ctx context.Context, httpClient *http.Client, basePath, domainID, format string) (*fastfuels.Export, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	if format == "" {
		return nil, fastfuels.ErrExportFormatRequired
	}

	resp, err := httpClient.Get(ctx, exportPath(basePath, format), nil)
	if err != nil {
		return nil, fmt.Errorf("getting export: %w", err)
	}

	export, err := parseExport(resp.Body, domainID, basePath, format)
	if err != nil {
		return nil, err
	}

	return export, nil
}

func parseExport(body []byte, domainID, basePath, format string) (*fastfuels.Export, error) {
	var export fastfuels.Export

	err := json.Unmarshal(body, &export)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	export.DomainID = domainID

	if export.Target == "" {
		export.Target = exportTarget(basePath, domainID)
	}

	if export.Format == "" {
		export.Format = format
	}

	return &export, nil
}

// ExportsClient implements fastfuels.ExportsClient.
type ExportsClient struct {
	httpClient *http.Client
}

// NewExportsClient creates a new exports client.
func NewExportsClient(httpClient *http.Client) *ExportsClient {
	return &ExportsClient{httpClient: httpClient}
}

// Get implements fastfuels.ExportsClient.Get.
func (c *ExportsClient) Get(ctx context.Context, export *fastfuels.Export) (*fastfuels.Export, error) {
	if export == nil {
		return nil, ErrExportRequired
	}

	if export.Target == "" {
		return nil, fastfuels.ErrExportTargetRequired
	}

	basePath := domainPath(export.DomainID) + "/" + export.Target

	return getExport(ctx, c.httpClient, basePath, export.DomainID, export.Format)
}

// WaitUntilCompleted implements fastfuels.ExportsClient.WaitUntilCompleted.
func (c *ExportsClient) WaitUntilCompleted(ctx context.Context, export *fastfuels.Export, opts *fastfuels.WaitOptions) (*fastfuels.Export, error) {
	if export == nil {
		return nil, ErrExportRequired
	}

	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.Export, error) {
		return c.Get(ctx, export)
	}, opts)
}

// Download implements fastfuels.ExportsClient.Download.
func (c *ExportsClient) Download(ctx context.Context, export *fastfuels.Export, w io.Writer) (int64, error) {
	if export == nil {
		return 0, ErrExportRequired
	}

	if !export.Status.Succeeded() {
		return 0, fmt.Errorf("%w: status is %q", fastfuels.ErrExportNotReady, export.Status)
	}

	if export.Expired() {
		return 0, fastfuels.ErrExportExpired
	}

	if export.SignedURL == "" {
		return 0, fastfuels.ErrNoSignedURL
	}

	written, err := c.httpClient.Download(ctx, export.SignedURL, w)
	if err != nil {
		return written, fmt.Errorf("downloading export: %w", err)
	}

	return written, nil
}

// DownloadToFile implements fastfuels.ExportsClient.DownloadToFile.
func (c *ExportsClient) DownloadToFile(ctx context.Context, export *fastfuels.Export, path string) (string, error) {
	if export == nil {
		return "", ErrExportRequired
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, export.DefaultFilename())
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.ExportFilePerm)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	_, err = c.Download(ctx, export, file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(path)

		return "", err
	}

	err = file.Close()
	if err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}

	return path, nil
}
