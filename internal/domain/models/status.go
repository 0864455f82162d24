package models

// Status levels reported by the GitHub status page.
const (
	StatusGood  = "good"
	StatusMinor = "minor"
	StatusMajor = "major"
)

// SystemStatus is the last message from the GitHub status page, reduced to
// the three levels the bot reports.
type SystemStatus struct {
	Status    string
	Body      string
	CreatedOn string
}
