package wordnik

// apiExamples is the body of GET /word.json/{word}/examples.
type apiExamples struct {
	Examples []apiExample `json:"examples"`
}

// apiExample is a single usage example. Only the text is used.
type apiExample struct {
	Text  string `json:"text"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Year  int    `json:"year"`
}
