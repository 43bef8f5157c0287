// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"sort"

	"github.com/danielhkuo/giftquiz/models"
)

// Compute aggregates answers into one ScoreRecord per gift, in catalog order.
// Unanswered slots count as 0. Questions whose gift code is not in the
// catalog are ignored.
func Compute(questions []models.Question, gifts []models.Gift, answers models.Answers) []models.ScoreRecord {
	records := make([]models.ScoreRecord, len(gifts))
	byCode := make(map[string]int, len(gifts))
	for i, gift := range gifts {
		records[i] = models.ScoreRecord{
			Code:        gift.Code,
			Name:        gift.Name,
			Description: gift.Description,
			Score:       0,
			Max:         models.MaxScorePerGift,
		}
		byCode[gift.Code] = i
	}

	for i, question := range questions {
		if i >= len(answers) || !answers[i].Answered() {
			continue
		}
		idx, ok := byCode[question.GiftCode]
		if !ok {
			continue
		}
		records[idx].Score += int(answers[i])
	}

	return records
}

// Rank returns a copy of records sorted by score, highest first.
// Equal scores keep catalog order.
func Rank(records []models.ScoreRecord) []models.ScoreRecord {
	ranked := make([]models.ScoreRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Top returns every record sharing the maximum score, in ranked order.
func Top(records []models.ScoreRecord) []models.ScoreRecord {
	if len(records) == 0 {
		return nil
	}
	ranked := Rank(records)
	maxScore := ranked[0].Score

	var top []models.ScoreRecord
	for _, r := range ranked {
		if r.Score != maxScore {
			break
		}
		top = append(top, r)
	}
	return top
}

// MaxScore returns the highest score in records, or 0 when empty.
func MaxScore(records []models.ScoreRecord) int {
	maxScore := 0
	for i, r := range records {
		if i == 0 || r.Score > maxScore {
			maxScore = r.Score
		}
	}
	return maxScore
}

// Total sums the scores of all records.
func Total(records []models.ScoreRecord) int {
	total := 0
	for _, r := range records {
		total += r.Score
	}
	return total
}
