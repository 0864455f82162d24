package models

// Team is a GitHub organization team.
type Team struct {
	ID         int64
	Name       string
	Slug       string
	Permission string
}
