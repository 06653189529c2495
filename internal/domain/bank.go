package domain

import "fmt"

// ExtendBank pads a question bank to exactly target items by cycling through
// the bank in order: item i draws its content from bank[i mod len(bank)].
// Each padded item gets a fresh presentation id "{sectionID}-{i+1}" so
// positions stay independently addressable even when content repeats.
func ExtendBank(sectionID string, bank []Question, target int) []Question {
	if len(bank) == 0 || target <= 0 {
		return nil
	}
	extended := make([]Question, 0, target)
	for i := 0; i < target; i++ {
		q := bank[i%len(bank)].Clone()
		q.ID = fmt.Sprintf("%s-%d", sectionID, i+1)
		extended = append(extended, q)
	}
	return extended
}
