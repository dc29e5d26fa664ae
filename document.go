package keyfs

import "bytes"

// Document is an immutable byte-buffer value. The zero Document is the invalid
// sentinel returned for absent keys; it is distinct from an empty document,
// which is valid and holds zero bytes.
type Document struct {
	data  []byte
	valid bool
}

// NewDocument wraps data in a valid Document. The bytes are copied, so later
// mutation of data does not affect the document. A nil slice produces an empty
// document, not an invalid one.
func NewDocument(data []byte) Document {
	return Document{data: bytes.Clone(data), valid: true}
}

// NewTextDocument wraps UTF-8 text in a valid Document.
func NewTextDocument(text string) Document {
	return Document{data: []byte(text), valid: true}
}

// Valid reports whether the document holds a value. Absent keys yield invalid
// documents.
func (d Document) Valid() bool { return d.valid }

// Len is the document size in bytes.
func (d Document) Len() int { return len(d.data) }

// Bytes returns a copy of the document contents, or nil for an invalid
// document.
func (d Document) Bytes() []byte {
	if !d.valid {
		return nil
	}
	return bytes.Clone(d.data)
}

// String returns the contents as UTF-8 text.
func (d Document) String() string { return string(d.data) }

// Equal reports structural equality: both valid with identical bytes, or both
// invalid.
func (d Document) Equal(other Document) bool {
	if d.valid != other.valid {
		return false
	}
	return !d.valid || bytes.Equal(d.data, other.data)
}
