package service

// KeywordIndex answers keyword suggestion queries without scanning places.
type KeywordIndex interface {
	// Replace swaps the indexed keyword set for keywords.
	Replace(keywords []string) error
	Add(keywords []string) error
	// Suggest returns up to limit keywords containing term, case-insensitively, sorted.
	Suggest(term string, limit int) ([]string, error)
	Count() (uint64, error)
}
