// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of the questionnaire.

# Route Registration

NewRouter creates a chi router with all endpoints:

	r := router.NewRouter(app, sessions, store, renderer, cfg)

# Endpoints

Health (no device cookie):

	GET /health

Screens:

	GET  /                - Home
	GET  /quiz            - Quiz page 1
	GET  /quiz/{page}     - Quiz page, clamped to 1..10
	POST /quiz/{page}     - Save the page's answers and navigate
	GET  /results         - Ranked results
	GET  /results/print   - Printable report
	GET  /gifts           - Gift descriptions
	GET  /reset           - Reset confirmation
	POST /reset           - Delete all answers (confirm=yes)
	POST /reload          - Retry loading the datasets

Answer API:

	POST /api/answers - Record one answer
	GET  /api/answers - Export answers (?download=1 for an attachment)
	GET  /api/progress

Any other path under /quiz/ renders a quiz page; everything else renders
Home.
*/
package router
