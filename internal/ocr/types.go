// Package ocr defines the document types returned by the OCR backend.
package ocr

// Page holds the recognized content of a single page.
type Page struct {
	PageNumber int     `json:"page_number"`
	Confidence float64 `json:"confidence"`
	WordCount  int     `json:"word_count"`
	Text       string  `json:"text"`
}

// Result is the OCR output for one document.
//
// The backend reports the aggregate confidence under "average_confidence"
// for scanned documents and "confidence" for text-native PDFs. Both are
// kept as pointers so Confidence can fall back correctly and so an absent
// value is distinguishable from an explicit zero.
type Result struct {
	Text              string   `json:"text"`
	AverageConfidence *float64 `json:"average_confidence,omitempty"`
	RawConfidence     *float64 `json:"confidence,omitempty"`
	PageCount         int      `json:"page_count"`
	TotalWords        int      `json:"total_words"`
	TotalCharacters   int      `json:"total_characters"`
	// IsScanned is a tri-state flag: only an explicit boolean in the
	// payload produces a document-type badge in the rendered output.
	IsScanned *bool  `json:"is_scanned,omitempty"`
	Pages     []Page `json:"pages,omitempty"`
}

// Confidence returns the aggregate confidence, preferring
// average_confidence over confidence and defaulting to 0 when both
// are absent.
func (r *Result) Confidence() float64 {
	if r.AverageConfidence != nil {
		return *r.AverageConfidence
	}
	if r.RawConfidence != nil {
		return *r.RawConfidence
	}
	return 0
}

// EffectivePageCount returns the reported page count, defaulting to 1
// when the field is absent or non-positive.
func (r *Result) EffectivePageCount() int {
	if r.PageCount < 1 {
		return 1
	}
	return r.PageCount
}

// DocumentResult wraps the OCR result for one submitted file.
type DocumentResult struct {
	Filename  string  `json:"filename,omitempty"`
	OCRResult *Result `json:"ocr_result"`
}

// ProcessResponse is the success payload of POST /ocr/process.
type ProcessResponse struct {
	Results []DocumentResult `json:"results"`
}

// ErrorResponse matches the backend's error payload.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Engine describes one OCR engine reported by GET /ocr/engines.
type Engine struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Status    string `json:"status,omitempty"`
}

// EnginesResponse is the payload of GET /ocr/engines.
type EnginesResponse struct {
	Engines       []Engine `json:"engines"`
	DefaultEngine string   `json:"default_engine"`
}

// TaskStatus is the payload of GET /ocr/task/{id}.
type TaskStatus struct {
	TaskID    string `json:"task_id"`
	Status    string `json:"status"`
	Progress  int    `json:"progress,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// TaskList is the payload of GET /ocr/tasks.
type TaskList struct {
	Tasks  []TaskStatus `json:"tasks"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
