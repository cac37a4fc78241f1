// Package scene models a hierarchical, instanced 3D scene.
//
// A scene is a forest of [Node] values. Faces are the drawable leaves;
// groups and component instances are containers whose children live in a
// [Definition]. Instances may share a definition, so one node can be reached
// along several ancestor chains. An [InstancePath] names one such occurrence
// and carries the transform accumulated along it.
//
// Nodes are built once, with constructors and chained setters, and are not
// mutated afterwards by the traversal, resolution, or export packages:
//
//	wall := scene.NewFace("wall", scene.Loop{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
//	def := scene.NewDefinition("panel", wall)
//	a := scene.NewInstance("a", def)
//	b := scene.NewInstance("b", def).WithTransform(mgl64.Translate3D(2, 0, 0))
package scene
