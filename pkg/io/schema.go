package io

// The file types below are shared by the JSON and TOML codecs.

type file struct {
	Units       string       `json:"units,omitempty" toml:"units,omitempty"`
	Rendering   *rendering   `json:"rendering,omitempty" toml:"rendering,omitempty"`
	Layers      []layer      `json:"layers,omitempty" toml:"layers,omitempty"`
	Materials   []material   `json:"materials,omitempty" toml:"materials,omitempty"`
	Definitions []definition `json:"definitions,omitempty" toml:"definitions,omitempty"`
	Entities    []node       `json:"entities" toml:"entities"`
	Selection   []string     `json:"selection,omitempty" toml:"selection,omitempty"`
}

type rendering struct {
	FaceFrontColor string `json:"face_front_color,omitempty" toml:"face_front_color,omitempty"`
}

type layer struct {
	Name    string `json:"name" toml:"name"`
	Visible *bool  `json:"visible,omitempty" toml:"visible,omitempty"`
}

type material struct {
	Name  string `json:"name" toml:"name"`
	Color string `json:"color" toml:"color"`
}

type definition struct {
	Name     string `json:"name" toml:"name"`
	Entities []node `json:"entities" toml:"entities"`
}

type node struct {
	ID       string `json:"id,omitempty" toml:"id,omitempty"`
	Name     string `json:"name,omitempty" toml:"name,omitempty"`
	Type     string `json:"type" toml:"type"`
	Hidden   bool   `json:"hidden,omitempty" toml:"hidden,omitempty"`
	Layer    string `json:"layer,omitempty" toml:"layer,omitempty"`
	Material string `json:"material,omitempty" toml:"material,omitempty"`

	Transform *transform `json:"transform,omitempty" toml:"transform,omitempty"`

	// Definition names the shared definition of an instance.
	Definition string `json:"definition,omitempty" toml:"definition,omitempty"`
	// Entities holds the children of a group.
	Entities []node `json:"entities,omitempty" toml:"entities,omitempty"`

	Outer [][3]float64   `json:"outer,omitempty" toml:"outer,omitempty"`
	Inner [][][3]float64 `json:"inner,omitempty" toml:"inner,omitempty"`
}

// transform is either a full column-major matrix or translate, rotate
// (degrees about X, Y and Z) and scale components.
type transform struct {
	Matrix    []float64   `json:"matrix,omitempty" toml:"matrix,omitempty"`
	Translate *[3]float64 `json:"translate,omitempty" toml:"translate,omitempty"`
	Rotate    *[3]float64 `json:"rotate,omitempty" toml:"rotate,omitempty"`
	Scale     *[3]float64 `json:"scale,omitempty" toml:"scale,omitempty"`
}
