package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t\n  \n", nil},
		{"single email", "  When is the fee deadline?  ", []string{"When is the fee deadline?"}},
		{"multi-line email stays whole", "Hello\nI lost my hall ticket.", []string{"Hello\nI lost my hall ticket."}},
		{"two emails", "first\n\nsecond", []string{"first", "second"}},
		{"blank line with spaces", "first\n   \t \nsecond", []string{"first", "second"}},
		{"many blank lines", "first\n\n\n\n\nsecond\n\nthird", []string{"first", "second", "third"}},
		{"leading and trailing blocks dropped", "\n\n  \n\nfirst\n\nsecond\n\n  \n", []string{"first", "second"}},
		{"crlf line endings", "first\r\n\r\nsecond\r\n", []string{"first", "second"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.raw))
		})
	}
}

func TestJoinKeepsEachBodyAsOneEmail(t *testing.T) {
	bodies := []string{
		"Dear office,\r\n\r\nMy hostel room has no water.\r\n",
		"   ",
		"Exam hall ticket missing",
	}
	joined := Join(bodies)
	assert.Equal(t, "Dear office,\nMy hostel room has no water.\n\nExam hall ticket missing", joined)
	assert.Len(t, Split(joined), 2)
}
