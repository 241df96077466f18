package urlparse

// Result is a serializable summary of a finished Machine.
type Result struct {
	Input              string   `json:"input"`
	Href               string   `json:"href,omitempty"`
	URL                *URL     `json:"url"`
	Failure            bool     `json:"failure"`
	Error              string   `json:"error,omitempty"`
	HasValidationError bool     `json:"hasValidationError"`
	ValidationErrors   []string `json:"validationErrors,omitempty"`
}

// Result summarizes the machine. After a failure URL holds the partial record
// and Href is empty.
func (m *Machine) Result() Result {
	r := Result{
		Input:              m.raw,
		URL:                m.url,
		Failure:            m.Failed(),
		HasValidationError: m.HasValidationError(),
	}
	if m.Failed() {
		r.Error = m.Err().Error()
	} else {
		r.Href = m.url.String()
	}
	for _, err := range m.validationErrors {
		r.ValidationErrors = append(r.ValidationErrors, err.Error())
	}
	return r
}
