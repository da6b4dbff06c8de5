package fields

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
Seattle, WA
jane.doe@uw.edu
(206) 555-1234

Objective
Seeking a software engineering internship where I can apply three years of
systems programming experience to infrastructure problems at scale.

Education
University of Washington, Expected graduation 2027
Major: Computer Science GPA: 3.8/4.0

Experience
Teaching assistant for the introductory programming course.
`

func TestEngineExtract(t *testing.T) {
	engine := NewEngine()
	res := engine.Extract(sampleResume, "pdf-text")

	if res.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", res.FullName, "Jane Doe")
	}
	if res.Email != "jane.doe@uw.edu" {
		t.Errorf("Email = %q", res.Email)
	}
	if res.Phone != "(206) 555-1234" {
		t.Errorf("Phone = %q", res.Phone)
	}
	if res.Major != "Computer Science" {
		t.Errorf("Major = %q", res.Major)
	}
	if res.Year != "2027" {
		t.Errorf("Year = %q", res.Year)
	}
	if !strings.HasPrefix(res.PersonalStatement, "Seeking a software engineering internship") {
		t.Errorf("PersonalStatement = %q", res.PersonalStatement)
	}
	if res.UWNetID != "jane.doe" {
		t.Errorf("UWNetID = %q", res.UWNetID)
	}
	if res.ParsingMethod != "pdf-text" {
		t.Errorf("ParsingMethod = %q", res.ParsingMethod)
	}
	if res.RawText != sampleResume {
		t.Errorf("RawText should be the full text for documents under the excerpt cap")
	}
}

func TestEngineExtractEmptyText(t *testing.T) {
	res := NewEngine().Extract("", "none")

	if res.FullName != "" || res.Email != "" || res.Phone != "" || res.Major != "" ||
		res.Year != "" || res.PersonalStatement != "" || res.UWNetID != "" {
		t.Errorf("empty text must yield empty fields: %+v", res)
	}
	if res.ParsingMethod != "none" {
		t.Errorf("ParsingMethod = %q", res.ParsingMethod)
	}
}

func TestEngineRawTextExcerptCap(t *testing.T) {
	long := strings.Repeat("abcdefghij", 500) // 5000 chars
	res := NewEngine().Extract(long, "pdf-text")

	if len(res.RawText) != RawTextExcerptLength {
		t.Errorf("RawText length = %d, want %d", len(res.RawText), RawTextExcerptLength)
	}
	if !strings.HasPrefix(long, res.RawText) {
		t.Error("RawText must be a prefix of the source text")
	}
}

// Re-extracting from the raw-text excerpt must never invent fields that the
// full document did not yield.
func TestEngineRoundTripNeverImproves(t *testing.T) {
	docs := []string{
		sampleResume,
		strings.Repeat("Plain filler text with no extractable fields whatsoever. ", 60),
		"JOHN SMITH\njohn@washington.edu\nClass of 2026\nMajor: Biology\n\n" +
			strings.Repeat("A research summary paragraph about marine biology and field work. ", 40),
	}

	engine := NewEngine()
	for i, doc := range docs {
		orig := engine.Extract(doc, "pdf-text")
		rt := engine.Extract(orig.RawText, "pdf-text")

		pairs := []struct {
			field string
			o, r  string
		}{
			{"fullName", orig.FullName, rt.FullName},
			{"email", orig.Email, rt.Email},
			{"phone", orig.Phone, rt.Phone},
			{"major", orig.Major, rt.Major},
			{"year", orig.Year, rt.Year},
			{"personalStatement", orig.PersonalStatement, rt.PersonalStatement},
			{"uwNetId", orig.UWNetID, rt.UWNetID},
		}
		for _, p := range pairs {
			if p.o == "" && p.r != "" {
				t.Errorf("doc %d: round trip invented %s=%q", i, p.field, p.r)
			}
		}
	}
}
