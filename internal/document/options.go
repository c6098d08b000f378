package document

// Option configures a Document.
type Option func(*Document)

// WithPath sets the file path the document was loaded from. The display
// name defaults to the path's base name.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithName sets the display name.
func WithName(name string) Option {
	return func(d *Document) {
		d.name = name
	}
}

// WithReadOnly marks the document as read-only.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

// WithLineEnding overrides the detected line ending.
func WithLineEnding(le LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = le
		d.lineEndingSet = true
	}
}
