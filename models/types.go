package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Questionnaire shape
const (
	QuestionsPerPage = 14
	TotalQuestions   = 133
	TotalGifts       = 19
	QuestionsPerGift = 7
	MaxAnswer        = 3
	MaxScorePerGift  = QuestionsPerGift * MaxAnswer
)

// Storage keys and schema version
const (
	StorageKeyAnswers = "sgq.v1.answers"
	StorageKeyMeta    = "sgq.v1.meta"
	SchemaVersion     = "1"
)

// Notice levels
const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Domain types

// Question is one statement of the questionnaire. JSON field names follow
// the dataset files.
type Question struct {
	Number   int    `json:"nr"`
	Text     string `json:"intrebare"`
	GiftCode string `json:"cod_dar"`
}

type Gift struct {
	Code        string `json:"cod_dar"`
	Name        string `json:"nume"`
	Description string `json:"descriere"`
}

// Answer is a response on the 0-3 scale. Unanswered marshals to null.
type Answer int8

const Unanswered Answer = -1

// Valid reports whether a is a recordable value.
func (a Answer) Valid() bool {
	return a >= 0 && a <= MaxAnswer
}

func (a Answer) Answered() bool {
	return a != Unanswered
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.Answered() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(a))), nil
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Unanswered
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer must be a number or null: %w", err)
	}
	if !Answer(n).Valid() {
		return fmt.Errorf("answer %d out of range 0-%d", n, MaxAnswer)
	}
	*a = Answer(n)
	return nil
}

// Answers is the ordered per-question response array.
type Answers []Answer

// NewAnswers returns n unanswered slots.
func NewAnswers(n int) Answers {
	a := make(Answers, n)
	a.Reset()
	return a
}

func (a Answers) Reset() {
	for i := range a {
		a[i] = Unanswered
	}
}

// Count returns the number of answered slots.
func (a Answers) Count() int {
	n := 0
	for _, v := range a {
		if v.Answered() {
			n++
		}
	}
	return n
}

// Sum returns the sum of all answered values.
func (a Answers) Sum() int {
	sum := 0
	for _, v := range a {
		if v.Answered() {
			sum += int(v)
		}
	}
	return sum
}

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	copy(out, a)
	return out
}

// Meta is the metadata stamp written alongside the answers.
type Meta struct {
	UpdatedAt time.Time `json:"updatedAt"`
	Version   string    `json:"version"`
}

// ScoreRecord is the per-gift aggregate. It is derived and never stored.
type ScoreRecord struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Score       int    `json:"score"`
	Max         int    `json:"max"`
}

type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

// NewProgress computes the progress of answers over total questions.
func NewProgress(answers Answers, total int) Progress {
	p := Progress{Answered: answers.Count(), Total: total}
	if total > 0 {
		p.Percent = int(math.Round(float64(p.Answered) / float64(total) * 100))
	}
	return p
}

type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Request types

type RecordAnswerRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
	Value *int `json:"value" validate:"required,min=0,max=3"`
}

// Response types

type RecordAnswerResponse struct {
	Index    int      `json:"index"`
	Value    int      `json:"value"`
	Progress Progress `json:"progress"`
}

type AnswersResponse struct {
	Answers  Answers  `json:"answers"`
	Meta     *Meta    `json:"meta,omitempty"`
	Progress Progress `json:"progress"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
