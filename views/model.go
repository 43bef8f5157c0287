// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/scoring"
)

// Page is the data passed to the base layout.
type Page struct {
	Title    string
	Screen   Screen
	Nav      []NavLink
	Notices  []models.Notice
	Progress *models.Progress
	Content  any
}

// Home

type HomeView struct {
	ButtonLabel string
	StartURL    string
	Answered    int
	Total       int
	LastSaved   string
}

// BuildHome labels the start button by progress and, when metadata exists,
// describes when the answers were last saved.
func BuildHome(progress models.Progress, meta *models.Meta, now time.Time) HomeView {
	v := HomeView{
		ButtonLabel: "Start Questionnaire",
		StartURL:    "/quiz/1",
		Answered:    progress.Answered,
		Total:       progress.Total,
	}
	if progress.Answered > 0 {
		v.ButtonLabel = fmt.Sprintf("Continue Questionnaire (%d/%d)", progress.Answered, progress.Total)
	}
	if meta != nil && !meta.UpdatedAt.IsZero() {
		v.LastSaved = humanize.RelTime(meta.UpdatedAt, now, "ago", "from now")
	}
	return v
}

// Quiz

var choiceLabels = [models.MaxAnswer + 1]string{
	"Not at all",
	"A little",
	"Somewhat",
	"Very much",
}

var motivationalMessages = []string{
	"Be honest with yourself",
	"Discover how God has gifted you",
	"Answer from the heart, not from the head",
	"Every answer brings you closer to discovery",
	"Think about your own experiences",
	"There are no right or wrong answers",
	"Reflect on what comes naturally to you",
	"Honesty will help you a lot!",
	"Take your time with each statement",
	"You are uniquely gifted, as each of us is!",
}

// RandomMotivation picks one of the motivational messages.
func RandomMotivation() string {
	return motivationalMessages[rand.IntN(len(motivationalMessages))]
}

type ChoiceView struct {
	Value   int
	Label   string
	Checked bool
}

type QuestionView struct {
	Index    int
	Number   int
	Text     string
	Answered bool
	Choices  []ChoiceView
}

type PageDot struct {
	Number int
	URL    string
	Active bool
}

type QuizView struct {
	Page         int
	TotalPages   int
	Motivation   string
	Questions    []QuestionView
	FormAction   string
	PrevDisabled bool
	IsLast       bool
	NextLabel    string
	Dots         []PageDot
}

// BuildQuiz builds quiz page page, which must already be clamped to
// [1, totalPages]. questions is the slice shown on the page and start the
// index of its first question.
func BuildQuiz(questions []models.Question, start int, answers models.Answers, page, totalPages int, motivation string) QuizView {
	v := QuizView{
		Page:         page,
		TotalPages:   totalPages,
		Motivation:   motivation,
		FormAction:   fmt.Sprintf("/quiz/%d", page),
		PrevDisabled: page <= 1,
		IsLast:       page >= totalPages,
		NextLabel:    "Next",
	}
	if v.IsLast {
		v.NextLabel = "Finish"
	}

	for i, q := range questions {
		idx := start + i
		saved := models.Unanswered
		if idx < len(answers) {
			saved = answers[idx]
		}

		qv := QuestionView{
			Index:    idx,
			Number:   q.Number,
			Text:     q.Text,
			Answered: saved.Answered(),
			Choices:  make([]ChoiceView, len(choiceLabels)),
		}
		for value, label := range choiceLabels {
			qv.Choices[value] = ChoiceView{
				Value:   value,
				Label:   label,
				Checked: saved.Answered() && int(saved) == value,
			}
		}
		v.Questions = append(v.Questions, qv)
	}

	for n := 1; n <= totalPages; n++ {
		v.Dots = append(v.Dots, PageDot{
			Number: n,
			URL:    fmt.Sprintf("/quiz/%d", n),
			Active: n == page,
		})
	}
	return v
}

// Results

type TopCard struct {
	Badge       string
	Name        string
	Description string
	Score       int
	Max         int
}

type ResultRow struct {
	Code      string
	Name      string
	Score     int
	Max       int
	Highlight bool
}

type ResultsView struct {
	Answered   int
	Total      int
	Incomplete bool
	Top        []TopCard
	Rows       []ResultRow
}

// BuildResults ranks records and marks the leaders. A single leader is the
// dominant gift; ties become numbered top cards.
func BuildResults(records []models.ScoreRecord, answered, total int) ResultsView {
	v := ResultsView{
		Answered:   answered,
		Total:      total,
		Incomplete: answered < total,
	}

	top := scoring.Top(records)
	for i, r := range top {
		badge := "Dominant Gift"
		if len(top) > 1 {
			badge = fmt.Sprintf("Top %d", i+1)
		}
		v.Top = append(v.Top, TopCard{
			Badge:       badge,
			Name:        r.Name,
			Description: r.Description,
			Score:       r.Score,
			Max:         r.Max,
		})
	}

	maxScore := scoring.MaxScore(records)
	for _, r := range scoring.Rank(records) {
		v.Rows = append(v.Rows, ResultRow{
			Code:      strings.ToUpper(r.Code),
			Name:      r.Name,
			Score:     r.Score,
			Max:       r.Max,
			Highlight: r.Score == maxScore,
		})
	}
	return v
}

// Print

type PrintView struct {
	ResultsView
	Generated string
	AppURL    string
	GiftsURL  string
}

// BuildPrint stamps the results with the generation time and links back to
// the application rooted at baseURL.
func BuildPrint(results ResultsView, now time.Time, baseURL string) PrintView {
	base := strings.TrimSuffix(baseURL, "/")
	return PrintView{
		ResultsView: results,
		Generated:   fmt.Sprintf("%s at %s", now.Format("January 2, 2006"), now.Format("15:04")),
		AppURL:      base + "/",
		GiftsURL:    base + "/gifts",
	}
}

// Gifts

type GiftCard struct {
	Code        string
	Name        string
	Description string
}

type GiftsView struct {
	Gifts []GiftCard
}

func BuildGifts(gifts []models.Gift) GiftsView {
	v := GiftsView{Gifts: make([]GiftCard, len(gifts))}
	for i, g := range gifts {
		v.Gifts[i] = GiftCard{
			Code:        strings.ToUpper(g.Code),
			Name:        g.Name,
			Description: g.Description,
		}
	}
	return v
}

// Errors

type ErrorView struct {
	Heading string
	Message string
	// Reload shows the button that retries loading the datasets.
	Reload bool
}
