// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

// Screen identifies one of the top-level screens.
type Screen string

const (
	ScreenHome    Screen = "home"
	ScreenQuiz    Screen = "quiz"
	ScreenResults Screen = "results"
	ScreenGifts   Screen = "gifts"
	// ScreenNone marks pages without a nav entry (reset, errors).
	ScreenNone Screen = ""
)

type NavLink struct {
	Label  string
	URL    string
	Active bool
}

var navItems = []struct {
	label  string
	url    string
	screen Screen
}{
	{"Home", "/", ScreenHome},
	{"Questionnaire", "/quiz/1", ScreenQuiz},
	{"Results", "/results", ScreenResults},
	{"Gifts", "/gifts", ScreenGifts},
}

// BuildNav returns the menu links with the link for active marked.
func BuildNav(active Screen) []NavLink {
	links := make([]NavLink, len(navItems))
	for i, item := range navItems {
		links[i] = NavLink{
			Label:  item.label,
			URL:    item.url,
			Active: active != ScreenNone && item.screen == active,
		}
	}
	return links
}
