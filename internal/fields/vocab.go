package fields

// MajorEntry maps a canonical major title to the lowercase substrings that
// identify it in free text. The list is scanned in order, so more specific
// entries must come before entries they contain (e.g. "computer engineering"
// before a hypothetical "engineering").
type MajorEntry struct {
	Canonical string
	Aliases   []string
}

// DefaultMajors is the bounded vocabulary used when no labeled "Major:" line
// exists. Extend the data, not the matching logic.
var DefaultMajors = []MajorEntry{
	{Canonical: "Computer Science", Aliases: []string{"computer science"}},
	{Canonical: "Computer Engineering", Aliases: []string{"computer engineering"}},
	{Canonical: "Electrical Engineering", Aliases: []string{"electrical engineering"}},
	{Canonical: "Mechanical Engineering", Aliases: []string{"mechanical engineering"}},
	{Canonical: "Biology", Aliases: []string{"biology"}},
	{Canonical: "Chemistry", Aliases: []string{"chemistry"}},
	{Canonical: "Physics", Aliases: []string{"physics"}},
	{Canonical: "Mathematics", Aliases: []string{"mathematics"}},
	{Canonical: "Economics", Aliases: []string{"economics"}},
	{Canonical: "Business", Aliases: []string{"business"}},
	{Canonical: "Finance", Aliases: []string{"finance"}},
	{Canonical: "Psychology", Aliases: []string{"psychology"}},
	{Canonical: "Data Science", Aliases: []string{"data science"}},
	{Canonical: "Statistics", Aliases: []string{"statistics"}},
	{Canonical: "Information Technology", Aliases: []string{"information technology"}},
}

// DefaultInstitutionDomains are the email domains from which a NetID may be
// derived. The NetID is only ever the local part of a matching email address.
var DefaultInstitutionDomains = []string{
	"uw.edu",
	"washington.edu",
}
