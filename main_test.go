package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beacon/api/contexts"
	gam "beacon/api/middleware"
	"beacon/api/models"
	"beacon/api/repositories/store"
	beaconService "beacon/api/services/beacon"
	descriptorService "beacon/api/services/descriptor"
	"beacon/api/tests/common"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validQuery = "referenceName=1&start=35098007&referenceBases=T&alternateBases=A&assemblyId=GRCh37"

func newTestServer(vs store.VariantStore, cfg *models.Config) *echo.Echo {
	bs := beaconService.NewBeaconService(vs, cfg)
	ds := descriptorService.NewDescriptorService(bs, cfg)

	e := echo.New()
	e.HTTPErrorHandler = notFoundAsPlainText(e)
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return h(&contexts.BeaconContext{
				Context:           c,
				Config:            cfg,
				ZapLogger:         zap.NewNop(),
				BeaconService:     bs,
				DescriptorService: ds,
			})
		}
	})
	e.Use(gam.AssignRequestId)
	RegisterRoutes(e)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestQueryFound(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	for _, path := range []string{"/query?", "/beacon-python/query?"} {
		rec := get(e, path+validQuery)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := common.JsonBody(t, rec)
		assert.Equal(t, "ca.c3g.beacon.test", body["beacon"])

		response := body["response"].(map[string]interface{})
		assert.Equal(t, true, response["exists"])
		assert.Equal(t, []interface{}{}, response["datasetAlleleResponses"])

		// the request is echoed back 1-based
		request := response["alleleRequest"].(map[string]interface{})
		assert.EqualValues(t, 35098007, request["start"])
		assert.Equal(t, "A", request["alternateBases"])
	}
}

func TestQueryWithDatasetResponses(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	rec := get(e, "/query?"+validQuery+"&includeDatasetResponses=true&datasetIds=ds1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	response := common.JsonBody(t, rec)["response"].(map[string]interface{})
	details := response["datasetAlleleResponses"].([]interface{})
	require.Len(t, details, 2)

	first := details[0].(map[string]interface{})
	assert.Equal(t, "ds1", first["datasetId"])
	assert.Equal(t, " HG00096 HG00099", first["note"])
	assert.EqualValues(t, 2, first["variantCount"])
	assert.EqualValues(t, 3, first["callCount"])
	assert.Equal(t, 0.25, first["frequency"])
	assert.Equal(t, "rs222", first["info"])
}

func TestQueryNotFound(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	rec := get(e, "/query?referenceName=chr1&start=35098007&referenceBases=T&alternateBases=G&assemblyId=GRCh37")
	require.Equal(t, http.StatusOK, rec.Code)

	response := common.JsonBody(t, rec)["response"].(map[string]interface{})
	assert.Equal(t, false, response["exists"])
}

func TestQueryMissingParameters(t *testing.T) {
	cases := map[string]string{
		"referenceName":  "start=1&alternateBases=A&assemblyId=GRCh37",
		"start":          "referenceName=1&alternateBases=A&assemblyId=GRCh37",
		"alternateBases": "referenceName=1&start=1&assemblyId=GRCh37",
		"assemblyId":     "referenceName=1&start=1&alternateBases=A",
	}

	for missing, params := range cases {
		t.Run(missing, func(t *testing.T) {
			fs := common.NewPopulatedStore()
			e := newTestServer(fs, common.InitConfig())

			rec := get(e, "/query?"+params)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := common.JsonBody(t, rec)
			assert.Equal(t, "ca.c3g.beacon.test", body["beacon"])
			beaconErr := body["error"].(map[string]interface{})
			assert.Equal(t, "MissingParameter", beaconErr["name"])
			assert.Contains(t, beaconErr["description"], missing)
			assert.Equal(t, 0, fs.SearchCount())
		})
	}
}

func TestQueryInvalidStart(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	for _, start := range []string{"abc", "0", "-4"} {
		rec := get(e, "/query?referenceName=1&alternateBases=A&assemblyId=GRCh37&start="+start)
		require.Equal(t, http.StatusBadRequest, rec.Code, start)

		body := common.JsonBody(t, rec)
		assert.Equal(t, "InvalidParameter", body["error"].(map[string]interface{})["name"])
		assert.Equal(t, start, body["query"].(map[string]interface{})["start"])
	}
}

func TestQueryAssemblyMismatch(t *testing.T) {
	fs := common.NewPopulatedStore()
	e := newTestServer(fs, common.InitConfig())

	rec := get(e, "/query?referenceName=1&start=35098007&alternateBases=A&assemblyId=GRCh38")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := common.JsonBody(t, rec)
	assert.Equal(t, beaconService.AssemblyMismatch, body["error"].(map[string]interface{})["name"])
	assert.Equal(t, 0, fs.SearchCount())
}

func TestQueryUpstreamFault(t *testing.T) {
	fs := common.NewPopulatedStore()
	fs.Err = errors.New("connection refused")
	e := newTestServer(fs, common.InitConfig())

	rec := get(e, "/query?"+validQuery)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := common.JsonBody(t, rec)
	assert.Equal(t, "UpstreamFault", body["error"].(map[string]interface{})["name"])
}

func TestQueryReportsDescriptorIdWhenUnconfigured(t *testing.T) {
	cfg := common.InitConfig()
	cfg.Beacon.Id = ""
	e := newTestServer(common.NewPopulatedStore(), cfg)

	rec := get(e, "/info")
	require.Equal(t, http.StatusOK, rec.Code)
	infoId := common.JsonBody(t, rec)["id"]
	assert.Equal(t, "1kgenomes", infoId)

	rec = get(e, "/query?"+validQuery)
	require.Equal(t, http.StatusOK, rec.Code)
	body := common.JsonBody(t, rec)
	assert.Equal(t, infoId, body["beacon"])
	assert.Equal(t, infoId, body["response"].(map[string]interface{})["beaconId"])

	rec = get(e, "/query?referenceName=1&start=0&alternateBases=A&assemblyId=GRCh37")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, infoId, common.JsonBody(t, rec)["beacon"])
}

type slowStore struct {
	*common.FakeStore
}

func (s slowStore) SearchVariants(ctx context.Context, req store.SearchVariantsRequest, fn func(*store.Variant) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Second):
		return nil
	}
}

func TestQueryTimeout(t *testing.T) {
	cfg := common.InitConfig()
	cfg.Api.QueryTimeoutSeconds = 1
	e := newTestServer(slowStore{common.NewPopulatedStore()}, cfg)

	rec := get(e, "/query?"+validQuery)
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "Timeout", common.JsonBody(t, rec)["error"].(map[string]interface{})["name"])
}

func TestInfo(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	for _, path := range []string{"/info", "/beacon-python/"} {
		rec := get(e, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		body := common.JsonBody(t, rec)
		assert.Equal(t, "ca.c3g.beacon.test", body["id"])
		assert.Equal(t, "0.3", body["apiVersion"])
		assert.Len(t, body["datasets"], 1)
		assert.Len(t, body["sampleAlleleRequests"], 2)
	}
}

func TestServiceInfoAndWelcome(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	rec := get(e, "/service-info")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Test Organization", common.JsonBody(t, rec)["organization"].(map[string]interface{})["name"])

	rec = get(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteIsPlainText404(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	rec := get(e, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, notFoundMessage, rec.Body.String())
}

func TestRequestIdHeader(t *testing.T) {
	e := newTestServer(common.NewPopulatedStore(), common.InitConfig())

	first := get(e, "/info").Header().Get(gam.RequestIdHeader)
	second := get(e, "/info").Header().Get(gam.RequestIdHeader)
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	req.Header.Set(gam.RequestIdHeader, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", rec.Header().Get(gam.RequestIdHeader))
}
