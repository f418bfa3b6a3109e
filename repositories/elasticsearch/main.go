// Package elasticsearch is the variant store backend reading Gohan-style
// per-sample variant documents straight out of Elasticsearch.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"

	"beacon/api/models"

	"github.com/Jeffail/gabs"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const wildcardVariantsIndex = "variants-*"

// performSearch runs one search against the variant index and returns the
// parsed response body.
func performSearch(ctx context.Context, cfg *models.Config, es *elasticsearch.Client, logger *zap.Logger,
	index string, query map[string]interface{}) (*gabs.Container, error) {

	// encode the query
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, errors.Wrap(err, "encoding elasticsearch query")
	}

	if cfg.Debug {
		// view the outbound elasticsearch query
		logger.Debug("elasticsearch query", zap.String("index", index), zap.String("body", buf.String()))
	}

	// Perform the search request.
	res, searchErr := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(false),
	)
	if searchErr != nil {
		return nil, errors.Wrap(searchErr, "performing elasticsearch search")
	}
	defer res.Body.Close()

	body, readErr := ioutil.ReadAll(res.Body)
	if readErr != nil {
		return nil, errors.Wrap(readErr, "reading elasticsearch response")
	}

	if res.IsError() {
		return nil, errors.Errorf("elasticsearch search on %s failed : got '%s' %s", index, res.Status(), string(body))
	}

	result, parseErr := gabs.ParseJSON(body)
	if parseErr != nil {
		return nil, errors.Wrap(parseErr, "parsing elasticsearch response")
	}
	return result, nil
}

// getBucketKeysByKeyword returns the distinct values of a keyword field,
// optionally restricted by a set of filters, in ascending order.
func getBucketKeysByKeyword(ctx context.Context, cfg *models.Config, es *elasticsearch.Client, logger *zap.Logger,
	index string, keyword string, filters []map[string]interface{}) ([]string, error) {

	aggMap := map[string]interface{}{
		"size": 0,
		"aggs": map[string]interface{}{
			"items": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": keyword,
					"size":  10000, // increases the number of buckets returned (default is 10)
					"order": map[string]string{
						"_key": "asc",
					},
				},
			},
		},
	}
	if len(filters) > 0 {
		aggMap["query"] = map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filters,
			},
		}
	}

	result, err := performSearch(ctx, cfg, es, logger, index, aggMap)
	if err != nil {
		return nil, errors.Wrapf(err, "getting buckets of %s", keyword)
	}

	buckets, _ := result.Path("aggregations.items.buckets").Children()
	keys := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		if key, ok := bucket.S("key").Data().(string); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func termFilter(field string, value string) map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{
			field: value,
		},
	}
}
