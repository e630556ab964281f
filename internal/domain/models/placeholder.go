package models

// PlaceholderSpec describes a generated stand-in image: a square background,
// a centered filled circle and a centered white caption.
type PlaceholderSpec struct {
	Name       string // class prefix, images are selected by ".<Name>-img"
	Text       string
	Background string // CSS hex color
	Foreground string // CSS hex color of the circle
	Size       int
}

// EncodedImage is an exported bitmap.
type EncodedImage struct {
	PNG     []byte
	DataURL string
}
