// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the questionnaire.

# Domain Types

Catalog data, loaded once from the dataset files:

  - Question: display number, statement text, owning gift code
  - Gift: code, name, description

Per-device state:

  - Answer: a 0-3 response or Unanswered (JSON null)
  - Answers: the ordered answer array, one slot per question
  - Meta: last-updated timestamp and schema version, stored next to the answers

Derived values, recomputed on demand:

  - ScoreRecord: per-gift score and maximum
  - Progress: answered count, total, rounded percentage

# Request Types

  - RecordAnswerRequest: index, value

# Response Types

  - RecordAnswerResponse: index, value, progress
  - AnswersResponse: answers, meta, progress
  - ErrorResponse: error, message

# Constants

Questionnaire shape:

	QuestionsPerPage = 14
	TotalQuestions   = 133
	TotalGifts       = 19
	MaxScorePerGift  = 21

Storage keys:

	StorageKeyAnswers = "sgq.v1.answers"
	StorageKeyMeta    = "sgq.v1.meta"
*/
package models
