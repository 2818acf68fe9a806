package models

type Measurement struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultMeasurements is the built-in template used before setup has been completed.
var DefaultMeasurements = []Measurement{
	{Name: "Bust", Value: ""},
	{Name: "Waist", Value: ""},
	{Name: "Hips", Value: ""},
	{Name: "Shoulder", Value: ""},
	{Name: "Sleeve Length", Value: ""},
	{Name: "Full Length", Value: ""},
}

// CloneMeasurements returns an independent copy so later edits to one list
// never show up in the other. A nil input stays nil.
func CloneMeasurements(in []Measurement) []Measurement {
	if in == nil {
		return nil
	}
	out := make([]Measurement, len(in))
	copy(out, in)
	return out
}

// CloneStrings copies in, keeping nil as nil.
func CloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
