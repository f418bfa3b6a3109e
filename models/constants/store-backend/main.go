package storeBackend

import (
	"beacon/api/models/constants"
	"strings"
)

const (
	Unknown       constants.StoreBackend = ""
	Ga4gh         constants.StoreBackend = "ga4gh"
	Elasticsearch constants.StoreBackend = "elasticsearch"
)

func CastToStoreBackend(text string) constants.StoreBackend {
	switch strings.ToLower(text) {
	case "", "ga4gh":
		return Ga4gh
	case "elasticsearch", "es":
		return Elasticsearch
	default:
		return Unknown
	}
}
