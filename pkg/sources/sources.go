package sources

import (
	"math/rand/v2"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/scrape"
)

// NewRand returns the random source used for image selection.
// A zero seed yields a sequence seeded from the runtime's random source;
// any other seed is reproducible.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// pick returns a random element of items. An empty list is an
// EMPTY_RESULT error naming what was being chosen.
func pick[T any](rng *rand.Rand, items []T, what string) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.New(errors.ErrCodeEmptyResult, "no %s to choose from", what)
	}
	return items[rng.IntN(len(items))], nil
}

// resolve turns href, found on the page at base, into an absolute URL.
func resolve(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeParse, err, "invalid page URL %q", base)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeParse, err, "invalid link %q on %s", href, base)
	}
	return b.ResolveReference(ref).String(), nil
}

// linkIn returns the resolved href of the first a[href] below n.
func linkIn(n *html.Node, page string) (string, error) {
	a := scrape.Query(n, selLink)
	if a == nil {
		return "", errors.New(errors.ErrCodeParse, "no link found in element on %s", page)
	}
	return resolve(page, scrape.Attr(a, "href"))
}

var selLink = scrape.MustCompile("a[href]")
