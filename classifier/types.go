package classifier

// Result is one prediction returned by the classification service.
type Result struct {
	Email             string `json:"email"`
	PredictedCategory string `json:"predicted_category"`
}

// request is the body posted to the predict endpoint.
type request struct {
	Emails []string `json:"emails"`
}

// Categories known to the classification service. The service may return
// others; nothing here validates against this list.
const (
	CategoryAdmissions   = "Admissions"
	CategoryExaminations = "Examinations"
	CategoryFees         = "Fees"
	CategoryGeneral      = "General"
	CategoryHostel       = "Hostel"
	CategoryTechnical    = "Technical"
)

// FailureResult is the single entry displayed when a classification fails.
func FailureResult() []Result {
	return []Result{{Email: "Error", PredictedCategory: "Failed"}}
}
