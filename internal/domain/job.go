package domain

// Platform tags which extraction strategy handled a URL.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformAshby      Platform = "ashby"
	PlatformRippling   Platform = "rippling"
	PlatformWorkday    Platform = "workday"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformGeneric    Platform = "generic"
)

// JobListing is a single posting on a company board. The URL is always
// absolute, even when sourced from a relative link. Listings carry no
// identity beyond their URL and live only for the duration of one call.
type JobListing struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Location string `json:"location,omitempty"`
}

// Roster is the full set of postings found for one company board, in the
// order the source returned them. Listings is never nil. Failure records why
// a lookup came back empty; a genuinely empty board leaves it blank, so
// callers that only look at Listings see the same empty result either way.
type Roster struct {
	Company  string       `json:"company"`
	Listings []JobListing `json:"listings"`
	Failure  string       `json:"failure,omitempty"`
}

func NewRoster(company string) Roster {
	return Roster{Company: company, Listings: []JobListing{}}
}

func FailedRoster(company, reason string) Roster {
	return Roster{Company: company, Listings: []JobListing{}, Failure: reason}
}
