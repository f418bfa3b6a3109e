package utils

import (
	"net/http"
	"time"

	"beacon/api/models"
	storeBackend "beacon/api/models/constants/store-backend"
	"beacon/api/repositories/elasticsearch"
	"beacon/api/repositories/ga4gh"
	"beacon/api/repositories/store"

	"github.com/cenkalti/backoff"
	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func CreateEsConnection(cfg *models.Config) (*es7.Client, error) {
	var (
		clusterURLs  = []string{cfg.Elasticsearch.Url}
		retryBackoff = backoff.NewExponentialBackOff()
	)

	esCfg := es7.Config{
		Addresses: clusterURLs,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,

		RetryOnStatus: []int{502, 503, 504, 429},

		// Configure the backoff function
		//
		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},

		// Retry up to 5 attempts
		//
		MaxRetries: 5,
	}

	es7Client, err := es7.NewClient(esCfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating elasticsearch client")
	}
	return es7Client, nil
}

// CreateHttpClient is the client used to reach the GA4GH server.
func CreateHttpClient(cfg *models.Config) *http.Client {
	return &http.Client{
		Timeout: time.Duration(cfg.Api.QueryTimeoutSeconds) * time.Second,
	}
}

// CreateVariantStore connects to the configured store backend.
func CreateVariantStore(cfg *models.Config, logger *zap.Logger) (store.VariantStore, error) {
	switch storeBackend.CastToStoreBackend(cfg.Store.Backend) {
	case storeBackend.Ga4gh:
		client := ga4gh.NewClient(cfg, CreateHttpClient(cfg))
		client.SetLogger(logger.Named("ga4gh"))
		return client, nil

	case storeBackend.Elasticsearch:
		es, err := CreateEsConnection(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("using elasticsearch variant store",
			zap.String("url", cfg.Elasticsearch.Url),
			zap.String("clientVersion", es7.Version))

		vs := elasticsearch.NewVariantStore(es, cfg)
		vs.SetLogger(logger.Named("elasticsearch"))
		return vs, nil

	default:
		return nil, errors.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
