package common

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path"
	"runtime"
	"testing"

	"beacon/api/models"
	"beacon/api/repositories/store"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

// Names of the variant sets registered by NewPopulatedStore.
const (
	FirstVariantSet  = "vs-phase3-a"
	SecondVariantSet = "vs-phase3-b"
)

func InitConfig() *models.Config {
	var cfg models.Config

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve common's test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	return &cfg
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

// NewPopulatedStore returns a store holding two variant sets of dataset ds1,
// both with a record at chromosome 1, 0-based position 35098006.
func NewPopulatedStore() *FakeStore {
	fs := NewFakeStore()
	fs.AddVariants(FirstVariantSet, "ds1", store.Variant{
		Id:             "v1",
		VariantSetId:   FirstVariantSet,
		ReferenceName:  "1",
		Start:          35098006,
		End:            35098007,
		ReferenceBases: "T",
		AlternateBases: []string{"C", "A"},
		Names:          []string{"rs111", "rs222"},
		Info:           map[string][]interface{}{"AF": {"0.1", "0.25"}},
		Calls: []store.Call{
			{CallSetId: "c1", CallSetName: "HG00096", Genotype: []int{0, 2}},
			{CallSetId: "c2", CallSetName: "HG00097", Genotype: []int{1, 1}},
			{CallSetId: "c3", CallSetName: "HG00099", Genotype: []int{2, 2}},
		},
	})
	fs.AddVariants(SecondVariantSet, "ds1", store.Variant{
		Id:             "v2",
		VariantSetId:   SecondVariantSet,
		ReferenceName:  "1",
		Start:          35098006,
		End:            35098007,
		ReferenceBases: "T",
		AlternateBases: []string{"A"},
		Names:          []string{"rs222"},
		Info:           map[string][]interface{}{"AF": {"0.5"}},
		Calls: []store.Call{
			{CallSetId: "c4", CallSetName: "NA12878", Genotype: []int{0, 1}},
		},
	})
	return fs
}

// JsonBody decodes a recorded response body.
func JsonBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	var bodyJson map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &bodyJson), string(body))
	return bodyJson
}
