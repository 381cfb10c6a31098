package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	results := []Result{
		{Email: "a", PredictedCategory: CategoryFees},
		{Email: "b", PredictedCategory: CategoryGeneral},
	}
	assert.Equal(t, "a → Fees\nb → General", Format(results))
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}

func TestFailureResult(t *testing.T) {
	assert.Equal(t, []Result{{Email: "Error", PredictedCategory: "Failed"}}, FailureResult())
}
