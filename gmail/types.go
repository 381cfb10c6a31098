package gmail

// Message holds the parts of an inbox message the importer needs.
type Message struct {
	ID           string
	From         string
	Subject      string
	Snippet      string
	Body         string // Plain text body, empty if the message has none
	InternalDate int64  // For sorting
}

// Text is what gets pasted into the form: the body, or the snippet when the
// message has no plain text part.
func (m Message) Text() string {
	if m.Body != "" {
		return m.Body
	}
	return m.Snippet
}
