// Package world provides the domain model for a stack world manipulated by a
// single arm.
package world

// Form is the physical shape of an object.
type Form string

// Known forms.
const (
	FormBrick   Form = "brick"
	FormPlank   Form = "plank"
	FormBall    Form = "ball"
	FormPyramid Form = "pyramid"
	FormBox     Form = "box"
	FormTable   Form = "table"
	FormFloor   Form = "floor"
)

// IsValid returns true if the form is recognized.
func (f Form) IsValid() bool {
	switch f {
	case FormBrick, FormPlank, FormBall, FormPyramid, FormBox, FormTable, FormFloor:
		return true
	default:
		return false
	}
}

// Size is the physical size of an object.
type Size string

// Known sizes.
const (
	SizeLarge Size = "large"
	SizeSmall Size = "small"
)

// IsValid returns true if the size is recognized.
func (s Size) IsValid() bool {
	return s == SizeLarge || s == SizeSmall
}

// FloorID is the reserved identifier addressing the ground under every stack.
const FloorID = "floor"

// Object is the physical descriptor of a named object.
type Object struct {
	Form  Form   `json:"form" yaml:"form"`
	Size  Size   `json:"size,omitempty" yaml:"size,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Floor is the synthetic object standing in for an empty stack.
var Floor = Object{Form: FormFloor}

// IsFloor returns true for the floor descriptor.
func (o Object) IsFloor() bool {
	return o.Form == FormFloor
}
