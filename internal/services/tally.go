package services

import (
	"polling_system/internal/db/models"
	"strconv"
)

type ChoiceTally struct {
	Choice     *models.Choice
	Votes      uint64
	Percentage float64
}

type Tally struct {
	TotalVotes uint64
	Choices    []ChoiceTally
}

// CalculateTally derives the results of a question from its choice counters.
// Each percentage is rounded to two decimals on its own, so the sum may
// differ from 100. Without votes every percentage is 0.
func CalculateTally(question *models.Question) Tally {
	tally := Tally{
		Choices: make([]ChoiceTally, 0, len(question.Choices)),
	}

	for _, choice := range question.Choices {
		tally.TotalVotes += choiceVotes(choice)
	}

	for _, choice := range question.Choices {
		votes := choiceVotes(choice)

		tally.Choices = append(tally.Choices, ChoiceTally{
			Choice:     choice,
			Votes:      votes,
			Percentage: percentage(votes, tally.TotalVotes),
		})
	}

	return tally
}

func choiceVotes(choice *models.Choice) uint64 {
	if choice.Votes < 0 {
		return 0
	}
	return uint64(choice.Votes)
}

func percentage(votes, total uint64) float64 {
	if total == 0 {
		return 0
	}
	// Formatting rounds the exact binary value half to even, so 1 of 32
	// gives 3.12 rather than 3.13.
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(float64(votes)/float64(total)*100, 'f', 2, 64), 64)
	return rounded
}
