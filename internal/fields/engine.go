package fields

// RawTextExcerptLength caps the raw-text preview carried on every result.
const RawTextExcerptLength = 2000

// Result is the structured record assembled from one document. All fields are
// strings; empty string means "not found". The JSON shape is the public API
// contract shared by the upload and pre-extracted-text endpoints.
type Result struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Major             string `json:"major"`
	Year              string `json:"year"`
	PersonalStatement string `json:"personalStatement"`
	UWNetID           string `json:"uwNetId"`
	RawText           string `json:"rawText"`
	ParsingMethod     string `json:"parsingMethod"`
}

// Engine runs every field extractor over a text blob and assembles a Result.
// Extractors are independent and stateless; the engine only adds the derived
// NetID, the acquisition method tag and the bounded raw-text excerpt.
type Engine struct {
	majors  []MajorEntry
	domains []string
}

// NewEngine creates an engine with the default vocabulary.
func NewEngine() *Engine {
	return NewEngineWithVocab(DefaultMajors, DefaultInstitutionDomains)
}

// NewEngineWithVocab creates an engine with a custom major vocabulary and
// institutional domain set.
func NewEngineWithVocab(majors []MajorEntry, domains []string) *Engine {
	return &Engine{majors: majors, domains: domains}
}

// Extract never fails: a field that cannot be found is an empty string.
func (e *Engine) Extract(text, method string) Result {
	email := ExtractEmail(text)

	return Result{
		FullName:          ExtractName(text),
		Email:             email,
		Phone:             ExtractPhone(text),
		Major:             ExtractMajor(text, e.majors),
		Year:              ExtractYear(text),
		PersonalStatement: ExtractStatement(text),
		UWNetID:           NetIDFromEmail(email, e.domains),
		RawText:           truncate(text, RawTextExcerptLength),
		ParsingMethod:     method,
	}
}
