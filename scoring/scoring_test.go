// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/testutil"
)

func TestComputeEmpty(t *testing.T) {
	cat := testutil.TestCatalog()
	records := Compute(cat.Questions, cat.Gifts, models.NewAnswers(models.TotalQuestions))

	require.Len(t, records, models.TotalGifts)
	for i, r := range records {
		assert.Equal(t, cat.Gifts[i].Code, r.Code, "records keep catalog order")
		assert.Equal(t, 0, r.Score)
		assert.Equal(t, models.MaxScorePerGift, r.Max)
	}
}

func TestComputeOwnership(t *testing.T) {
	cat := testutil.TestCatalog()
	answers := testutil.AnswersWith(3, testutil.GiftIndexes(4)...)
	answers[0] = 1 // gift g01

	records := Compute(cat.Questions, cat.Gifts, answers)
	assert.Equal(t, 21, records[4].Score)
	assert.Equal(t, 1, records[0].Score)
	assert.Equal(t, 0, records[1].Score)
}

func TestComputeUnknownGiftIgnored(t *testing.T) {
	questions := []models.Question{
		{Number: 1, GiftCode: "ap"},
		{Number: 2, GiftCode: "zz"},
	}
	gifts := []models.Gift{{Code: "ap", Name: "Apostle"}}

	records := Compute(questions, gifts, models.Answers{2, 3})
	want := []models.ScoreRecord{{Code: "ap", Name: "Apostle", Score: 2, Max: models.MaxScorePerGift}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeShortAnswers(t *testing.T) {
	cat := testutil.TestCatalog()
	records := Compute(cat.Questions, cat.Gifts, models.Answers{3})
	assert.Equal(t, 3, Total(records))
}

// The same final answers give the same scores regardless of the order in
// which they were recorded.
func TestComputeOrderIndependent(t *testing.T) {
	cat := testutil.TestCatalog()
	rng := rand.New(rand.NewPCG(1, 2))

	final := models.NewAnswers(models.TotalQuestions)
	for i := range final {
		if rng.IntN(4) > 0 {
			final[i] = models.Answer(rng.IntN(4))
		}
	}
	want := Compute(cat.Questions, cat.Gifts, final)

	for trial := 0; trial < 5; trial++ {
		answers := models.NewAnswers(models.TotalQuestions)
		for _, i := range rng.Perm(len(final)) {
			// Record a throwaway value first, then the final one.
			answers[i] = models.Answer(rng.IntN(4))
			answers[i] = final[i]
		}
		if diff := cmp.Diff(want, Compute(cat.Questions, cat.Gifts, answers)); diff != "" {
			t.Fatalf("trial %d mismatch (-want +got):\n%s", trial, diff)
		}
	}
}

func TestSumInvariant(t *testing.T) {
	cat := testutil.TestCatalog()
	rng := rand.New(rand.NewPCG(7, 7))

	for trial := 0; trial < 20; trial++ {
		answers := models.NewAnswers(models.TotalQuestions)
		for i := range answers {
			if rng.IntN(3) > 0 {
				answers[i] = models.Answer(rng.IntN(4))
			}
		}
		records := Compute(cat.Questions, cat.Gifts, answers)
		assert.Equal(t, answers.Sum(), Total(records))
		assert.LessOrEqual(t, Total(records), models.TotalQuestions*models.MaxAnswer)
	}
}

func TestRank(t *testing.T) {
	records := []models.ScoreRecord{
		{Code: "a", Score: 5},
		{Code: "b", Score: 9},
		{Code: "c", Score: 5},
		{Code: "d", Score: 12},
	}

	ranked := Rank(records)
	var codes []string
	for _, r := range ranked {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, codes)
	assert.Equal(t, "a", records[0].Code, "input must not be reordered")
}

func TestTop(t *testing.T) {
	t.Run("dominant", func(t *testing.T) {
		top := Top([]models.ScoreRecord{{Code: "a", Score: 4}, {Code: "b", Score: 18}})
		require.Len(t, top, 1)
		assert.Equal(t, "b", top[0].Code)
	})

	t.Run("co-leaders", func(t *testing.T) {
		top := Top([]models.ScoreRecord{
			{Code: "a", Score: 15},
			{Code: "b", Score: 3},
			{Code: "c", Score: 15},
		})
		require.Len(t, top, 2)
		assert.Equal(t, "a", top[0].Code)
		assert.Equal(t, "c", top[1].Code)
	})

	t.Run("all zero", func(t *testing.T) {
		cat := testutil.TestCatalog()
		top := Top(Compute(cat.Questions, cat.Gifts, models.NewAnswers(models.TotalQuestions)))
		assert.Len(t, top, models.TotalGifts)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Top(nil))
	})
}

func TestMaxScore(t *testing.T) {
	assert.Equal(t, 0, MaxScore(nil))
	assert.Equal(t, 7, MaxScore([]models.ScoreRecord{{Score: 2}, {Score: 7}, {Score: 7}}))
}
