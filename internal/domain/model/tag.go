package model

// TagCount pairs a tag with its usage count across questions.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
