// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog loads the question list and gift catalog.

Both datasets are fetched once, concurrently, from files or http(s) URLs:

	cat, err := catalog.Load(ctx, catalog.DirSource("data"))

A failure in either dataset fails the load. The files are parsed with hujson
so comments and trailing commas are tolerated.

The questionnaire is split into pages of 14 questions:

	start, end := cat.PageBounds(page) // [start, end)
*/
package catalog
