package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/craftbase-io/cms-client/internal/http"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// Content endpoint paths. Reads go through the experimental surface, writes
// through the stable one.
const (
	experimentalContentPath = "/experimental/content"
	contentPath             = "/content"
)

// ContentClient implements cms.ContentClient.
type ContentClient struct {
	httpClient *http.Client
	apiVersion cms.APIVersion
}

// NewContentClient creates a new content client.
func NewContentClient(httpClient *http.Client, apiVersion cms.APIVersion) *ContentClient {
	return &ContentClient{
		httpClient: httpClient,
		apiVersion: apiVersion,
	}
}

// Get implements cms.ContentClient.Get.
func (c *ContentClient) Get(ctx context.Context, id string) (*cms.Result[cms.ContentItem], error) {
	resp, err := c.httpClient.Get(ctx, experimentalContentPath+"/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting content item: %w", err)
	}

	return decodeItem(resp)
}

// List implements cms.ContentClient.List. Page parameters are sent only when
// explicitly supplied; the result is the unwrapped paged collection.
func (c *ContentClient) List(ctx context.Context, containerKey string, opts *cms.ListOptions) (*cms.Page[cms.ContentItem], error) {
	path := experimentalContentPath + "/" + containerKey + "/items"

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing content items: %w", err)
	}

	var page cms.Page[cms.ContentItem]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing content list: %w", err)
	}

	return &page, nil
}

// Create implements cms.ContentClient.Create.
func (c *ContentClient) Create(ctx context.Context, request *cms.ContentRequest) (*cms.Result[cms.ContentItem], error) {
	resp, err := c.httpClient.Post(ctx, contentPath, request)
	if err != nil {
		return nil, fmt.Errorf("creating content item: %w", err)
	}

	return decodeItem(resp)
}

// Update implements cms.ContentClient.Update. The preview2 API has no
// partial updates, so the version gate fails before any network call.
func (c *ContentClient) Update(ctx context.Context, id string, request *cms.ContentRequest, etag string) (*cms.Result[cms.ContentItem], error) {
	if c.apiVersion == cms.APIVersionPreview2 {
		return nil, cms.ErrUpdateUnsupported
	}

	resp, err := c.httpClient.Patch(ctx, contentPath+"/"+id, request, etag)
	if err != nil {
		return nil, fmt.Errorf("updating content item: %w", err)
	}

	return decodeItem(resp)
}

// Delete implements cms.ContentClient.Delete.
func (c *ContentClient) Delete(ctx context.Context, id string) (*cms.Result[struct{}], error) {
	resp, err := c.httpClient.Delete(ctx, contentPath+"/"+id)
	if err != nil {
		return nil, fmt.Errorf("deleting content item: %w", err)
	}

	return &cms.Result[struct{}]{
		Status: resp.StatusCode,
		ETag:   resp.ETag,
	}, nil
}

// decodeItem parses a single-item response into a Result.
func decodeItem(resp *http.Response) (*cms.Result[cms.ContentItem], error) {
	var item cms.ContentItem

	err := json.Unmarshal(resp.Body, &item)
	if err != nil {
		return nil, fmt.Errorf("parsing content item: %w", err)
	}

	return &cms.Result[cms.ContentItem]{
		Data:   item,
		Status: resp.StatusCode,
		ETag:   resp.ETag,
	}, nil
}
