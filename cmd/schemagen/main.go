// Command schemagen emits the JSON schema for species tuning configs, used
// by the authoring-side editor tooling.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"catoworld/server/species"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema")
	flag.Parse()

	if outPath == "" {
		log.Fatal("schemagen: missing -out path")
	}

	schema, err := buildSchema()
	if err != nil {
		log.Fatalf("schemagen: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("schemagen: marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("schemagen: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("schemagen: write schema: %v", err)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	root := reflector.ReflectFromType(reflect.TypeOf(species.Config{}))
	if root == nil {
		return nil, fmt.Errorf("failed to reflect species config schema")
	}
	root.Title = "Species Tuning Config"
	root.Description = "Designer-authored per-species behavior tuning consumed by the creature runtime."
	return root, nil
}
