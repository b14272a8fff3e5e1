package world

import "sort"

// exampleObjects describes the shared object set of the example worlds.
var exampleObjects = map[string]Object{
	"a": {Form: FormBrick, Size: SizeLarge, Color: "green"},
	"b": {Form: FormBrick, Size: SizeSmall, Color: "white"},
	"c": {Form: FormPlank, Size: SizeLarge, Color: "red"},
	"d": {Form: FormPlank, Size: SizeSmall, Color: "green"},
	"e": {Form: FormBall, Size: SizeLarge, Color: "white"},
	"f": {Form: FormBall, Size: SizeSmall, Color: "black"},
	"g": {Form: FormTable, Size: SizeLarge, Color: "blue"},
	"h": {Form: FormTable, Size: SizeSmall, Color: "red"},
	"i": {Form: FormPyramid, Size: SizeLarge, Color: "yellow"},
	"j": {Form: FormPyramid, Size: SizeSmall, Color: "red"},
	"k": {Form: FormBox, Size: SizeLarge, Color: "yellow"},
	"l": {Form: FormBox, Size: SizeLarge, Color: "red"},
	"m": {Form: FormBox, Size: SizeSmall, Color: "blue"},
}

// Examples returns the built-in example worlds keyed by name. Each call
// returns fresh copies.
func Examples() map[string]State {
	return map[string]State{
		"tiny": {
			Stacks:  [][]string{{"a"}},
			Objects: map[string]Object{"a": {Form: FormBall, Size: SizeSmall, Color: "white"}},
		},
		"small": {
			Stacks:  [][]string{{"e"}, {"g", "l"}, {}, {"k", "m", "f"}, {}},
			Objects: copyObjects(exampleObjects),
		},
		"medium": {
			Stacks: [][]string{
				{"e"}, {"l", "a"}, {}, {}, {"i", "h", "j"},
				{}, {}, {"k", "g", "c", "b"}, {}, {"d", "m", "f"},
			},
			Objects: copyObjects(exampleObjects),
		},
		// The ball can only ever go back into its box, so nothing reaches the floor.
		"impossible": {
			Stacks: [][]string{{"k", "e"}},
			Objects: map[string]Object{
				"e": exampleObjects["e"],
				"k": exampleObjects["k"],
			},
		},
	}
}

// ExampleNames returns the example world names in sorted order.
func ExampleNames() []string {
	examples := Examples()
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyObjects(src map[string]Object) map[string]Object {
	dst := make(map[string]Object, len(src))
	for id, o := range src {
		dst[id] = o
	}
	return dst
}
