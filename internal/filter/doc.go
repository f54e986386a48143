// Package filter parses and evaluates the take/track selection expressions.
//
// An expression is a sequence of tokens, each a range ("4-8"), a number
// ("4"), or a word ("all", "mixdown", or a track-name fragment), optionally
// negated with "!". Anything else (commas, spaces, stray punctuation)
// separates tokens. Evaluation folds the tokens left to right and the last
// token decides: each token sets the result to matched != inverted.
package filter
