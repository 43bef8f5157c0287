// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the spiritual gifts
questionnaire.

# Handler Types

  - PageHandler: HTML screens (home, quiz pages, results, print report,
    gift list, reset) rendered through views.Renderer
  - AnswerHandler: JSON answer API used by the quiz page script and the
    report command

Both share an App, which holds the loaded catalog, and a session.Manager,
which holds each device's answers:

	app := handlers.NewApp(loader)
	_ = app.Load(ctx)
	pages := handlers.NewPageHandler(app, sessions, renderer, cfg, router.ResolvePage)

# Failed State

When the datasets cannot be loaded every screen renders the error page with
status 503 and a reload button (POST /reload). The JSON API answers 503.
A successful reload replaces the catalog for all devices.

# Saving Answers

Recording an answer only changes the in-memory state and schedules a
debounced write; a burst of answers produces one write carrying the final
state. Reset removes both storage keys and requires confirm=yes in the
posted form.
*/
package handlers
