// Package ga4gh is the variant store backend speaking the GA4GH reference
// server API: paged JSON POSTs to /datasets/search, /referencesets/search,
// /variantsets/search and /variants/search.
package ga4gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"beacon/api/models"
	"beacon/api/repositories/store"

	"github.com/Jeffail/gabs"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	datasetsSearchPath      = "/datasets/search"
	referenceSetsSearchPath = "/referencesets/search"
	variantSetsSearchPath   = "/variantsets/search"
	variantsSearchPath      = "/variants/search"
)

var retryOnStatus = []int{502, 503, 504, 429}

// UpstreamStatusError is returned when the server answers with a non-2xx status.
type UpstreamStatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("ga4gh server answered %d on %s: %s", e.StatusCode, e.Path, e.Body)
}

type Client struct {
	url        string
	pageSize   int
	maxRetries int
	httpClient *http.Client
	logger     *zap.Logger

	newBackOff func() backoff.BackOff
}

func NewClient(cfg *models.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		url:        strings.TrimRight(cfg.Ga4gh.Url, "/"),
		pageSize:   cfg.Ga4gh.PageSize,
		maxRetries: cfg.Ga4gh.MaxRetries,
		httpClient: httpClient,
		logger:     zap.NewNop(),
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// SetLogger sets the logger used to trace upstream requests.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

func (c *Client) SearchDatasets(ctx context.Context, fn func(*store.Dataset) error) error {
	return c.search(ctx, datasetsSearchPath, "datasets", map[string]interface{}{},
		func(item *gabs.Container) error {
			var dataset store.Dataset
			if err := decode(item.Data(), &dataset); err != nil {
				return errors.Wrap(err, "decoding dataset")
			}
			return fn(&dataset)
		})
}

func (c *Client) SearchReferenceSets(ctx context.Context, fn func(*store.ReferenceSet) error) error {
	return c.search(ctx, referenceSetsSearchPath, "referenceSets", map[string]interface{}{},
		func(item *gabs.Container) error {
			var referenceSet store.ReferenceSet
			if err := decode(item.Data(), &referenceSet); err != nil {
				return errors.Wrap(err, "decoding reference set")
			}
			return fn(&referenceSet)
		})
}

func (c *Client) SearchVariantSets(ctx context.Context, datasetId string, fn func(*store.VariantSet) error) error {
	body := map[string]interface{}{
		"datasetId": datasetId,
	}
	return c.search(ctx, variantSetsSearchPath, "variantSets", body,
		func(item *gabs.Container) error {
			var variantSet store.VariantSet
			if err := decode(item.Data(), &variantSet); err != nil {
				return errors.Wrap(err, "decoding variant set")
			}
			return fn(&variantSet)
		})
}

func (c *Client) SearchVariants(ctx context.Context, req store.SearchVariantsRequest, fn func(*store.Variant) error) error {
	// no callSetIds: a null list returns every call
	body := map[string]interface{}{
		"variantSetId":  req.VariantSetId,
		"referenceName": req.ReferenceName,
		"start":         req.Start,
		"end":           req.End,
	}
	return c.search(ctx, variantsSearchPath, "variants", body,
		func(item *gabs.Container) error {
			variant, err := decodeVariant(item)
			if err != nil {
				return err
			}
			return fn(variant)
		})
}

// search walks every page of a */search endpoint, handing each element of
// listKey to fn. Pages are only fetched while fn keeps asking for more.
func (c *Client) search(ctx context.Context, path string, listKey string, body map[string]interface{}, fn func(*gabs.Container) error) error {
	pageToken := ""
	for {
		request := make(map[string]interface{}, len(body)+2)
		for k, v := range body {
			request[k] = v
		}
		if c.pageSize > 0 {
			request["pageSize"] = c.pageSize
		}
		if pageToken != "" {
			request["pageToken"] = pageToken
		}

		page, err := c.post(ctx, path, request)
		if err != nil {
			return err
		}

		// a missing list simply means an empty page
		items, _ := page.S(listKey).Children()
		for _, item := range items {
			if stopped, err := store.Visit(fn(item)); stopped || err != nil {
				return err
			}
		}

		next, _ := page.S("nextPageToken").Data().(string)
		if next == "" {
			return nil
		}
		pageToken = next
	}
}

func (c *Client) post(ctx context.Context, path string, body map[string]interface{}) (*gabs.Container, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s request", path)
	}

	c.logger.Debug("ga4gh request",
		zap.String("url", c.url+path),
		zap.ByteString("body", payload))

	var parsed *gabs.Container
	operation := func() error {
		req, err := http.NewRequest(http.MethodPost, c.url+path, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req = req.WithContext(ctx)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			// connection problems are worth another attempt
			return err
		}
		defer res.Body.Close()

		resBody, err := ioutil.ReadAll(res.Body)
		if err != nil {
			return err
		}

		if res.StatusCode < 200 || res.StatusCode > 299 {
			statusErr := &UpstreamStatusError{
				Path:       path,
				StatusCode: res.StatusCode,
				Body:       strings.TrimSpace(string(resBody)),
			}
			if isRetryable(res.StatusCode) {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		parsed, err = gabs.ParseJSON(resBody)
		if err != nil {
			return backoff.Permanent(errors.Wrapf(err, "parsing %s response", path))
		}
		return nil
	}

	retries := c.maxRetries
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(retries)), ctx)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("retrying ga4gh request",
			zap.String("path", path),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	return parsed, nil
}

func isRetryable(status int) bool {
	for _, s := range retryOnStatus {
		if s == status {
			return true
		}
	}
	return false
}
