package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/shopcanvas/shopcanvas/storeconfig"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "json",
	}

	schema := r.Reflect(&storeconfig.Config{})
	schema.Title = "Storefront template configuration"

	// Every section is optional; Normalize fills the gaps at load time.
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	// The committed storeconfig/schema.json carries hand-maintained
	// constraints on top of this scaffold (legacy numeric color values,
	// required category names), so the generator never overwrites it; fold
	// struct changes from the scaffold in by hand.
	if err := os.WriteFile("storeconfig/schema.gen.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Generated scaffold at storeconfig/schema.gen.json; merge into storeconfig/schema.json")
}
