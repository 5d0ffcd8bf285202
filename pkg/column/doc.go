// Package column turns loosely-typed column descriptions into resolved
// column models for a tabular display.
//
// A [Description] is what a caller writes: a required name plus optional
// width, bounds, labels, behavior flags and sort/filter state. A [Builder]
// validates and defaults it into a [Model]. Width is classified once into a
// closed [WidthSpec] variant so that layout code never re-parses strings:
//
//	absent        -> Flexible(1)
//	120           -> Pixels(120)
//	"120"         -> Pixels(120)
//	"30%"         -> Percent("30%")
//	"***"         -> Flexible(3)
//	anything else -> *WidthParseError
//
// Rebuilding an existing model with a new description keeps sort and filter
// state the new description does not mention. A [Collection] owns the models
// of one table and applies whole column sets as redefinitions.
package column
