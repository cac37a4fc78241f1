// Package io reads and writes scene documents as JSON or TOML.
//
// # Overview
//
// A scene file describes the hierarchy that [scene.Document] models: the
// top-level entities, the shared definitions that instances refer to, and
// the layer and material tables. Both formats use the same schema.
//
// # Format
//
//	{
//	  "units": "mm",
//	  "rendering": {"face_front_color": "#F0F0F0"},
//	  "layers": [{"name": "furniture", "visible": false}],
//	  "materials": [{"name": "oak", "color": "#A0522D"}],
//	  "definitions": [
//	    {"name": "chair", "entities": [
//	      {"id": "seat", "type": "face", "outer": [[0, 0, 450], [400, 0, 450], [400, 400, 450]]}
//	    ]}
//	  ],
//	  "entities": [
//	    {"id": "chair-1", "type": "instance", "definition": "chair", "material": "oak",
//	     "transform": {"translate": [1000, 0, 0], "rotate": [0, 0, 90]}},
//	    {"id": "room", "type": "group", "entities": [...]}
//	  ],
//	  "selection": ["chair-1"]
//	}
//
// # Node Fields
//
// Required:
//   - type: "face", "group" or "instance"
//
// Optional:
//   - id: Unique identifier, generated from the type when omitted
//   - name: Display name
//   - hidden: Hide the node and everything below it
//   - layer, material: Names from the document tables
//   - transform: Containers only. Either "matrix" (16 numbers, column-major)
//     or any of "translate", "rotate" (degrees about X, Y, Z) and "scale",
//     composed as translate · rotZ · rotY · rotX · scale
//   - definition: Instances only, the shared definition to place
//   - entities: Groups only, the group's children
//   - outer, inner: Faces only, the outer vertex loop and any holes
//
// Colors are hex strings ("#RRGGBB" or "#RGB"). Layers default to visible.
//
// # Import
//
// Use [Import] to read a file by path, or [ReadJSON] and [ReadTOML] to read
// from any io.Reader:
//
//	doc, err := io.Import("house.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Invalid scenes fail with an INVALID_SCENE error naming the offending
// node. Definitions that instance themselves, directly or through other
// definitions, are rejected.
//
// # Export
//
// [WriteJSON], [WriteTOML] and [Export] write a document back out. Tables
// are sorted by name, so the output is deterministic for a given document
// and can be hashed for caching.
//
// [scene.Document]: github.com/matzehuels/scenesvg/pkg/scene.Document
package io
