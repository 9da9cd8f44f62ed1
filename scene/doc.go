// Package scene is a small retained-mode 2D scene graph for [Ebitengine].
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]; children inherit their parent's transform and alpha and are
// drawn in painter order, siblings sorted by ZIndex.
//
//	s := scene.NewScene()
//	board := scene.NewContainer("board")
//	board.SetPosition(360, 640)
//	s.Root().AddChild(board)
//
//	cell := scene.NewRect("cell", 100, 100, scene.RGB(0xFF0000))
//	board.AddChild(cell)
//
// Node kinds are containers, solid rects, circles, images and text. Images
// without art can be stood in for by rects; see [NewRect].
//
// # Input
//
// Pointer input (mouse and touch) is hit tested against interactable nodes,
// topmost first. A press captures the gesture: drag and release callbacks go
// to the node that received the press, even when the pointer has left it.
// Input can also be injected with [Scene.InjectPress], [Scene.InjectDrag]
// and friends, or driven from a JSON play [Script].
//
// # Tweens
//
// [TweenGroup] wraps [gween] tweens over node fields. Groups are updated by
// their owner or by a [Tweens] set; there is no global animation manager.
//
// # ECS
//
// [Scene.SetEntityStore] forwards interaction events for nodes with a
// non-zero EntityID to an [EntityStore], such as the [Donburi] adapter in
// the ecs package.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package scene
