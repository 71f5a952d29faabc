package domain

// Extraction is the parsed output of the OCR step: a text payload plus the
// weakness hints the extractor spotted while reading.
type Extraction struct {
	Text       string   `json:"text"`
	Weaknesses []string `json:"weaknesses"`
}

// UploadOutcome is the composite response of one completed pipeline run.
// Either all of it is returned or none of it; there is no partial success.
type UploadOutcome struct {
	Text     string   `json:"text"`
	Analysis Analysis `json:"analysis"`
	Homework Homework `json:"homework"`
}
