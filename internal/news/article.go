package news

import (
	"time"
)

// DateLayout renders publication dates as "May 1, 2023".
const DateLayout = "January 2, 2006"

// Article is one search result row as returned by the content API.
type Article struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	SectionID          string `json:"sectionId"`
	SectionName        string `json:"sectionName"`
	WebPublicationDate string `json:"webPublicationDate"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	APIURL             string `json:"apiUrl"`
	IsHosted           bool   `json:"isHosted"`
	PillarID           string `json:"pillarId"`
	PillarName         string `json:"pillarName"`
}

// Published parses WebPublicationDate. The second return is false when the
// field is missing or not ISO-8601.
func (a Article) Published() (time.Time, bool) {
	if a.WebPublicationDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, a.WebPublicationDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders the publication date in loc, falling back to the raw
// field when it cannot be parsed.
func (a Article) FormatDate(loc *time.Location) string {
	t, ok := a.Published()
	if !ok {
		return a.WebPublicationDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
