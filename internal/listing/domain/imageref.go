package domain

import "strings"

// RefKind distinguishes the two historical on-disk forms of an image
// reference. Records written by this service always hold full URLs; records
// inserted by earlier tooling may hold bare storage keys.
type RefKind int

const (
	RefURL RefKind = iota
	RefKey
)

// ImageRef is a single image reference from a listing record. The URL-or-key
// decision is made once here, when data enters from the store, so readers
// never have to re-sniff the string.
type ImageRef struct {
	raw  string
	kind RefKind
}

// ParseImageRef classifies a stored reference. Anything with an http(s)
// scheme prefix is trusted as an already durable URL; everything else is
// treated as a bare storage key.
func ParseImageRef(s string) ImageRef {
	if strings.HasPrefix(s, "http") {
		return ImageRef{raw: s, kind: RefURL}
	}
	return ImageRef{raw: s, kind: RefKey}
}

// URLRef wraps a URL the upload pipeline just produced.
func URLRef(url string) ImageRef {
	return ImageRef{raw: url, kind: RefURL}
}

func (r ImageRef) Kind() RefKind  { return r.kind }
func (r ImageRef) IsURL() bool    { return r.kind == RefURL }
func (r ImageRef) String() string { return r.raw }
