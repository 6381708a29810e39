package storeconfig

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopcanvas/shopcanvas/errors"
)

//go:embed schema.json
var schemaJSON string

var configSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("template_config.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("template_config.schema.json")
}

// Normalize decodes a raw template_config blob into a typed tree. It is the
// single point where remote data is trusted: the blob is schema-validated
// (unknown keys pass through and are dropped by the typed decode), legacy
// shapes are decoded weakly so e.g. numeric color channels stored as numbers
// still load, and category slugs missing from old blobs are re-derived.
//
// A nil or empty blob yields the zero Config; the editor then falls back to
// template defaults per section.
func Normalize(raw json.RawMessage) (Config, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Config{}, nil
	}

	var tree interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrCodeTemplateInvalid, "template_config is not valid JSON")
	}

	if err := configSchema.Validate(tree); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrCodeTemplateInvalid, "template_config does not match the expected shape")
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, errors.ErrCodeInternal, "build template_config decoder")
	}
	if err := decoder.Decode(tree); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrCodeTemplateInvalid, "template_config decode failed")
	}

	for i := range cfg.Categories {
		if cfg.Categories[i].Slug == "" {
			cfg.Categories[i].Slug = Slugify(cfg.Categories[i].Name)
		}
	}

	return cfg, nil
}

// Marshal renders the typed tree back into the opaque blob persisted on the
// store record. The write path always replaces the whole blob.
func Marshal(cfg Config) (json.RawMessage, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "marshal template_config")
	}
	return data, nil
}
