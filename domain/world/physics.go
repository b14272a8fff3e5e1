package world

// CanDrop reports whether object a may be put directly on top of object b.
// b is Floor when the destination stack is empty.
func CanDrop(a, b Object) bool {
	switch {
	case b.Form == FormFloor:
		return true
	case b.Form == FormBall:
		return false
	case a.Form == FormBall && b.Form != FormBox:
		return false
	case b.Form == FormBox && a.Size == b.Size &&
		(a.Form == FormPyramid || a.Form == FormPlank || a.Form == FormBox):
		return false
	case a.Size == SizeLarge && b.Size == SizeSmall:
		return false
	case a.Form == FormBox && a.Size == b.Size &&
		(b.Form == FormPyramid || b.Form == FormBrick):
		// Covers the large box on large pyramid case as well.
		return false
	}
	return true
}
