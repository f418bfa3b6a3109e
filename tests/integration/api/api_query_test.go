package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"beacon/api/models"
	common "beacon/api/tests/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a live Beacon at the configured api url and are
// skipped when none is listening.

func getOrSkip(t *testing.T, cfg *models.Config, path string) *http.Response {
	client := &http.Client{Timeout: 30 * time.Second}
	response, responseErr := client.Get(cfg.Api.Url + path)
	if responseErr != nil {
		t.Skipf("no beacon reachable at %s: %v", cfg.Api.Url, responseErr)
	}
	return response
}

func TestBeaconInfo(t *testing.T) {
	cfg := common.InitConfig()

	response := getOrSkip(t, cfg, "/info")
	defer response.Body.Close()

	shouldBe := 200
	require.Equal(t, shouldBe, response.StatusCode, fmt.Sprintf("Error -- Api GET /info Status: %s ; Should be %d", response.Status, shouldBe))

	var beacon models.Beacon
	require.NoError(t, json.NewDecoder(response.Body).Decode(&beacon))
	assert.Equal(t, "0.3", beacon.ApiVersion)
	assert.NotEmpty(t, beacon.SampleAlleleRequests)
}

func TestSampleAlleleRequestsAnswer(t *testing.T) {
	cfg := common.InitConfig()

	infoResponse := getOrSkip(t, cfg, "/info")
	defer infoResponse.Body.Close()

	var beacon models.Beacon
	require.NoError(t, json.NewDecoder(infoResponse.Body).Decode(&beacon))

	for _, sample := range beacon.SampleAlleleRequests {
		path := fmt.Sprintf("/query?referenceName=%s&start=%d&referenceBases=%s&alternateBases=%s&assemblyId=%s&includeDatasetResponses=%t",
			sample.ReferenceName, sample.Start, sample.ReferenceBases, sample.AlternateBases, sample.AssemblyId, sample.IncludeDatasetResponses)

		response := getOrSkip(t, cfg, path)
		assert.Equal(t, 200, response.StatusCode, path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(response.Body).Decode(&body))
		response.Body.Close()

		assert.Equal(t, beacon.Id, body["beacon"])
		assert.Contains(t, body["response"], "exists")
	}
}

func TestUnknownRoute(t *testing.T) {
	cfg := common.InitConfig()

	response := getOrSkip(t, cfg, "/no/such/page")
	defer response.Body.Close()

	assert.Equal(t, 404, response.StatusCode)
}
