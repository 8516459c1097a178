package store

import (
	"bytes"
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/semilin/kmdata/internal/model"
	"github.com/semilin/kmdata/internal/utils"
	"github.com/vmihailenco/msgpack/v5"
)

//go:embed layout.schema.json
var layoutSchema string

const layoutSchemaUrl = "resource://layout.schema.json"

var layoutValidator = jsonschema.MustCompileString(layoutSchemaUrl, layoutSchema)

// decodeMsgpack decodes corpora and metric tables. Structs written as msgpack arrays (positional fields)
// are accepted as well as maps keyed by field name.
func decodeMsgpack(path string, raw []byte, v any) error {
	if err := msgpack.Unmarshal(raw, v); err != nil {
		return &model.DeserializeError{Format: model.FormatMsgpack, Path: path, Err: err}
	}
	return nil
}

// decodeLayout checks raw against the layout JSON schema before decoding it into a model.LayoutData
func decodeLayout(path string, raw []byte) (*model.LayoutData, error) {
	raw = utils.RemoveBOM(raw)

	var parsed any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return nil, &model.DeserializeError{Format: model.FormatJSON, Path: path, Err: err}
	}
	if err := layoutValidator.Validate(parsed); err != nil {
		return nil, &model.DeserializeError{Format: model.FormatJSON, Path: path, Err: err}
	}

	var l model.LayoutData
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, &model.DeserializeError{Format: model.FormatJSON, Path: path, Err: err}
	}
	return &l, nil
}
