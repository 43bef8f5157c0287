// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views builds the view models for every screen and renders them
through the embedded html/template set.

# View Models

Builders are pure functions of catalog data and device state:

	home := views.BuildHome(progress, meta, time.Now())
	quiz := views.BuildQuiz(questions, answers, page, totalPages, views.RandomMotivation())
	results := views.BuildResults(records, answered, total)

Every page is wrapped in a Page, which carries the navigation, queued
notices and the progress indicator (set only on quiz routes):

	page := views.Page{
		Title:   "Results",
		Screen:  views.ScreenResults,
		Nav:     views.BuildNav(views.ScreenResults),
		Content: results,
	}

# Rendering

	r, err := views.New()
	err = r.Render(w, views.TemplateResults, page)

Templates share the "base" layout. Each page template defines "content".
*/
package views
