package ga4gh

import (
	"beacon/api/repositories/store"

	"github.com/Jeffail/gabs"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// decode maps a parsed JSON element onto out. Weak typing lets int64 fields
// arrive as JSON strings, as protobuf-JSON servers render them.
func decode(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func decodeVariant(item *gabs.Container) (*store.Variant, error) {
	raw, ok := item.Data().(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("variant is not an object: %v", item.Data())
	}

	// info values and genotypes may come wrapped as protobuf ListValues
	if info, ok := raw["info"].(map[string]interface{}); ok {
		for k, v := range info {
			info[k] = unwrapListValue(v)
		}
	}
	if calls, ok := raw["calls"].([]interface{}); ok {
		for _, call := range calls {
			if c, ok := call.(map[string]interface{}); ok {
				c["genotype"] = unwrapListValue(c["genotype"])
			}
		}
	}

	var variant store.Variant
	if err := decode(raw, &variant); err != nil {
		return nil, errors.Wrapf(err, "decoding variant %v", raw["id"])
	}
	return &variant, nil
}

func unwrapListValue(v interface{}) interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		if values, ok := m["values"]; ok {
			return values
		}
	}
	return v
}
