// Package fields holds the heuristic field extractors for applicant documents.
// Every extractor is a pure function over the full document text; absence is
// always an empty string, never an error. Both the HTTP handlers and the
// parse-local CLI go through this package so the patterns live in one place.
package fields

import (
	"regexp"
	"strings"
)

// Extraction thresholds. These values are empirical; they are kept as named
// constants rather than re-derived.
const (
	maxNameLines        = 12
	maxNameWords        = 6
	maxNameLength       = 80
	maxNamePunctuation  = 3
	allCapsNameMaxLen   = 40
	yearProximityWindow = 50
	headingStatementMin = 30
	keywordStatementMin = 50
	fallbackParaMinLen  = 80
	fallbackParaMaxLen  = 1200
	fallbackParaMaxWord = 300
	sentenceParaMaxWord = 500
	docShareGuard       = 0.5
	statementCapLong    = 2000
	statementCapShort   = 1000
)

var (
	emailRe      = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	emailLocalRe = regexp.MustCompile(`(?i)\b([A-Z0-9._%+-]+)@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	phoneRe      = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s])?(?:\(?\d{3}\)?[-.\s])?\d{3}[-.\s]?\d{4}`)
	yearRe       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	digitRe       = regexp.MustCompile(`\d`)
	addressWordRe = regexp.MustCompile(`(?i)\b(street|avenue|ave|road|rd|lane|ln|apt|suite|email|phone|www|http|www\.|pdf)\b`)
	punctRe       = regexp.MustCompile(`[.,:;()\[\]/\\]`)
	capWordRe     = regexp.MustCompile(`^[A-Z][a-z\-']+$`)
	allCapsWordRe = regexp.MustCompile(`^[A-Z\-']+$`)
	nonLetterRe   = regexp.MustCompile(`[^a-zA-Z\-']`)

	majorLabelRe   = regexp.MustCompile(`(?i)(?:Major|Degree|Field of Study)[:\-\s]+(.+)`)
	gpaTrailRe     = regexp.MustCompile(`(?i)GPA[:\s].*$`)
	blankLineRe    = regexp.MustCompile(`\n\s*\n`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]`)
	multiSpaceRe   = regexp.MustCompile(`\s{2,}`)
	lineBreakSplit = regexp.MustCompile(`\r?\n`)
)

// ExtractEmail returns the leftmost email-shaped token, or "".
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractPhone returns the leftmost North-American-style phone number,
// tolerant of separators and an optional country code, or "".
func ExtractPhone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}

// ExtractName scans the first lines of the document for a short, name-like
// line. If none qualifies it derives a name from the email local part.
func ExtractName(text string) string {
	lines := nonEmptyLines(text)
	inspect := len(lines)
	if inspect > maxNameLines {
		inspect = maxNameLines
	}

	for i := 0; i < inspect; i++ {
		l := lines[i]
		if digitRe.MatchString(l) {
			continue
		}
		if strings.Contains(l, "@") {
			continue
		}
		if addressWordRe.MatchString(l) {
			continue
		}
		words := strings.Fields(l)
		if len(words) == 0 || len(words) > maxNameWords {
			continue
		}
		if len(l) > maxNameLength {
			continue
		}
		if len(punctRe.FindAllString(l, -1)) > maxNamePunctuation {
			continue
		}
		for _, w := range words {
			if capWordRe.MatchString(w) {
				return truncate(l, maxNameLength)
			}
		}
		// all-caps names (e.g. JANE DOE)
		if len(l) < allCapsNameMaxLen {
			for _, w := range words {
				if allCapsWordRe.MatchString(w) {
					return truncate(l, maxNameLength)
				}
			}
		}
	}

	return nameFromEmail(text)
}

// nameFromEmail derives a title-cased name from the local part of the first
// email address in the document, splitting on dots and underscores.
func nameFromEmail(text string) string {
	m := emailLocalRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	local := strings.NewReplacer(".", " ", "_", " ").Replace(m[1])
	var parts []string
	for _, p := range strings.Fields(local) {
		p = nonLetterRe.ReplaceAllString(p, "")
		if p == "" {
			continue
		}
		parts = append(parts, strings.ToUpper(p[:1])+strings.ToLower(p[1:]))
		if len(parts) == 3 {
			break
		}
	}
	return strings.Join(parts, " ")
}

// ExtractMajor first looks for a labeled "Major:"/"Degree:"/"Field of Study:"
// line, stripping trailing GPA fragments. Failing that it scans the vocabulary
// in its fixed order and returns the canonical title of the first entry whose
// alias appears anywhere in the text.
func ExtractMajor(text string, vocab []MajorEntry) string {
	for _, line := range nonEmptyLines(text) {
		m := majorLabelRe.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		major := strings.TrimSuffix(m[1], ".")
		major = gpaTrailRe.ReplaceAllString(major, "")
		return strings.TrimSpace(major)
	}

	lower := strings.ToLower(text)
	for _, entry := range vocab {
		for _, alias := range entry.Aliases {
			if strings.Contains(lower, alias) {
				return entry.Canonical
			}
		}
	}
	return ""
}

// ExtractYear collects 19xx/20xx candidates and prefers one preceded within
// 50 characters by "class of", "graduat" or "expected"; otherwise the first
// candidate in document order wins.
func ExtractYear(text string) string {
	candidates := yearRe.FindAllString(text, -1)
	if len(candidates) == 0 {
		return ""
	}
	for _, c := range candidates {
		idx := strings.Index(text, c)
		if idx < 0 {
			continue
		}
		start := idx - yearProximityWindow
		if start < 0 {
			start = 0
		}
		before := strings.ToLower(text[start:idx])
		if strings.Contains(before, "class of") ||
			strings.Contains(before, "graduat") ||
			strings.Contains(before, "expected") {
			return c
		}
	}
	return candidates[0]
}

var statementHeadings = []string{"objective", "summary", "personal statement", "profile"}

var statementKeywords = []string{"objective", "summary", "research", "interest", "profile", "statement"}

// ExtractStatement picks the paragraph that most likely is the applicant's
// personal statement. Stages, in priority order: a paragraph following an
// explicit heading, a keyword-bearing paragraph, a reasonably sized paragraph,
// then a sentence-like paragraph with contact lines stripped. Each stage caps
// its result; no stage may return more than half the document.
func ExtractStatement(text string) string {
	lower := strings.ToLower(text)

	// explicit heading on its own line
	for _, h := range statementHeadings {
		idx := strings.Index(lower, "\n"+h+"\n")
		if idx < 0 {
			continue
		}
		after := strings.TrimSpace(text[idx+len(h)+2:])
		paras := paragraphs(after)
		if len(paras) > 0 && len(paras[0]) > headingStatementMin {
			return truncate(paras[0], statementCapLong)
		}
	}

	paras := paragraphs(text)

	// keyword-bearing paragraph
	for _, p := range paras {
		lowp := strings.ToLower(p)
		for _, k := range statementKeywords {
			if strings.Contains(lowp, k) && len(p) > keywordStatementMin {
				return truncate(p, statementCapLong)
			}
		}
	}

	// reasonably sized paragraph, never most of the document
	totalLen := len(text)
	if totalLen == 0 {
		totalLen = 1
	}
	for _, p := range paras {
		if float64(len(p))/float64(totalLen) > docShareGuard {
			continue
		}
		if len(p) >= fallbackParaMinLen && len(p) <= fallbackParaMaxLen &&
			len(strings.Fields(p)) < fallbackParaMaxWord {
			return truncate(p, statementCapShort)
		}
	}

	// sentence-like paragraph with contact lines stripped out
	for _, p := range paras {
		if len(p) <= fallbackParaMinLen || !sentenceEndRe.MatchString(p) {
			continue
		}
		if len(strings.Fields(p)) >= sentenceParaMaxWord {
			continue
		}
		if float64(len(p))/float64(totalLen) > docShareGuard {
			continue
		}
		if stmt := scrubContactInfo(p); len(stmt) > headingStatementMin {
			return truncate(stmt, statementCapShort)
		}
	}

	// never fall back to a large blob
	return ""
}

// scrubContactInfo removes lines that look like contact details from a
// paragraph, then strips any remaining inline emails, phones and years.
func scrubContactInfo(p string) string {
	var kept []string
	for _, l := range lineBreakSplit.Split(p, -1) {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if emailRe.MatchString(l) {
			continue
		}
		if phoneRe.MatchString(l) {
			continue
		}
		if yearRe.MatchString(l) && len(l) < 30 {
			continue
		}
		kept = append(kept, l)
	}
	stmt := strings.Join(kept, " ")
	stmt = emailRe.ReplaceAllString(stmt, "")
	stmt = phoneRe.ReplaceAllString(stmt, "")
	stmt = yearRe.ReplaceAllString(stmt, "")
	stmt = multiSpaceRe.ReplaceAllString(stmt, " ")
	return strings.TrimSpace(stmt)
}

// NetIDFromEmail returns the local part of the email when its domain is one
// of the recognized institutional domains, else "".
func NetIDFromEmail(email string, domains []string) string {
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	domain := strings.ToLower(email[at+1:])
	for _, d := range domains {
		if domain == d {
			return email[:at]
		}
	}
	return ""
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range lineBreakSplit.Split(text, -1) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func paragraphs(text string) []string {
	var paras []string
	for _, p := range blankLineRe.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
