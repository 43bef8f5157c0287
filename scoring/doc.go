// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring turns an answer array into per-gift scores.

# Computing Scores

Compute is a pure function of the question catalog, the gift catalog and
the answers:

	records := scoring.Compute(cat.Questions, cat.Gifts, answers)

Each gift starts at 0 with a maximum of 21 (7 questions × 3 points). Every
answered question adds its value to the gift that owns it. The result does
not depend on the order in which answers were recorded.

# Ranking

Rank sorts by score descending. Ties keep catalog order, so the output is
deterministic:

	ranked := scoring.Rank(records)

Top returns every gift sharing the highest score. A single leader is the
dominant gift; several leaders are shown as co-leaders.
*/
package scoring
