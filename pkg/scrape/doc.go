// Package scrape parses HTML documents and queries them with a small CSS
// selector dialect.
//
// Supported selector syntax (whitespace is the descendant combinator):
//
//	tag            div, li, a
//	.class         .mw-category-group (repeatable: div.jd-body.jubilat)
//	#id            #content
//	[attr]         a[href]
//	[attr=val]     span[data-testid=PercentageValue]
//	[attr^=val]    details[class^=DaypartDetails--DayPartDetail]
//	[attr*=val]    [class*=DetailsSummary--tempValue]
//
// That is all the sources need. Pseudo-classes, child/sibling combinators
// and selector lists are rejected by [Compile].
package scrape
