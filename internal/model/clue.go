package model

// ClueID identifies a clue in the catalog
type ClueID string

// Clue is an object players must find. The keyword is written on the object
// and sent back to prove it was found.
type Clue struct {
	ID       ClueID `yaml:"id"`
	Keyword  string `yaml:"keyword"`
	Title    string `yaml:"title"`
	MediaURL string `yaml:"media_url"`
}
