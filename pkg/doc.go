// Package pkg provides the core libraries for scenesvg scene export.
//
// # Overview
//
// scenesvg flattens a hierarchical 3D scene, made of faces, groups and
// instances of shared definitions, into a scaled top-view drawing. Faces are
// projected onto the ground plane, painted from the lowest up and written as
// SVG paths sized in millimeters.
//
// # Architecture
//
// The typical data flow:
//
//	Scene file (JSON or TOML)
//	         ↓
//	    [io] package (decode, validate, detect definition cycles)
//	         ↓
//	    [traverse] package (walk instance paths, painter's order)
//	         ↓
//	    [resolve] package (visibility, material, color per path)
//	         ↓
//	    [export] package (global transform, projection, caching)
//	         ↓
//	    [render] package (SVG, PDF, PNG)
//
// # Quick Start
//
//	doc, _ := io.Import("house.json")
//	page, _ := export.Flatten(ctx, doc, export.Options{Scale: scale.Parse("1:50")})
//	svg := export.SVG(page, export.Options{})
//
// # Main Packages
//
// [scene] - Node model: faces, groups and instances, shared definitions,
// layers, materials and instance paths.
//
// [units] - Lengths with units, including feet and inches, converted to
// millimeters.
//
// [scale] - Drawing scales: parsing "1:50", "2cm = 1m" and friends,
// formatting and rounding to conventional values.
//
// [resolve] - Attribute resolution along an instance path.
//
// [traverse] - Depth-first traversal of instance paths with pruning and
// ordering policies.
//
// [render] - SVG path output and PDF/PNG conversion. [render/outline] draws
// the scene hierarchy with Graphviz.
//
// [export] - The export driver shared by the CLI and the HTTP API.
//
// ## Infrastructure
//
// [cache] - Artifact cache with file, Redis and no-op backends.
//
// [session] - The remembered export scale, stored in files or MongoDB.
//
// [observability] - Hooks for export, cache and HTTP events.
//
// [errors] - Error codes shared by the CLI and the API.
//
// [buildinfo] - Version information set at build time.
package pkg
