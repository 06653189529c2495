package domain

// Score counts selections matching the correct option, one point each.
// Unanswered questions score zero; there is no negative marking. The
// returned score is always within [0, len(questions)].
func Score(questions []Question, selections map[int]int) int {
	score := 0
	for i := range questions {
		if chosen, ok := selections[i]; ok && chosen == questions[i].CorrectOption {
			score++
		}
	}
	return score
}
