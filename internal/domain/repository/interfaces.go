package repository

import "context"

// Element is a node of the page being rendered.
type Element interface {
	ID() string
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	HasClass(class string) bool
	Style(prop string) string
	SetStyle(prop, value string)
	Text() string
	SetText(text string)
	AppendChild(child Element)
	// Parent returns the enclosing element, false at the document root.
	Parent() (Element, bool)
}

// Document is the page a feature initializer mutates. Lookups report absence
// with a false second value; callers treat absence as "feature disabled".
type Document interface {
	GetElementByID(id string) (Element, bool)
	GetElementsByClassName(class string) []Element
	CreateElement(tag string) Element
}

// Metrics records what happened while rendering pages.
type Metrics interface {
	RecordPageRendered(page string)
	RecordFeature(feature string, active bool)
	RecordRiskReading(band string, value float64)
	RecordCacheResult(cache string, hit bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

// AssetCache stores generated binary assets.
type AssetCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
