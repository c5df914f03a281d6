package sources

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/httputil"
	"github.com/matzehuels/dailywall/pkg/scrape"
)

// DefaultJokeURL serves one joke per day on its front page.
const DefaultJokeURL = "https://www.ajokeaday.com/"

var selJokeParagraph = scrape.MustCompile("div.jd-body.jubilat p")

// JokeResult is the joke text and the page it came from.
type JokeResult struct {
	Text      string
	SourceURL string
}

// JokeSource scrapes the joke of the day.
type JokeSource struct {
	Client *httputil.Client
	URL    string
}

// Fetch downloads the joke page and returns its text as a single
// whitespace-normalised string.
func (s *JokeSource) Fetch(ctx context.Context) (*JokeResult, error) {
	body, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	doc, err := scrape.ParseBytes(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse %s", s.URL)
	}

	text, err := ParseJoke(doc)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "joke on %s", s.URL)
	}
	return &JokeResult{Text: text, SourceURL: s.URL}, nil
}

// ParseJoke collects the direct text of the joke paragraphs, dropping line
// breaks and empty fragments.
func ParseJoke(doc *html.Node) (string, error) {
	paragraphs := scrape.QueryAll(doc, selJokeParagraph)
	if len(paragraphs) == 0 {
		return "", errors.New(errors.ErrCodeParse, "no joke paragraphs")
	}

	var fragments []string
	for _, p := range paragraphs {
		for _, t := range scrape.OwnText(p) {
			if t = strings.TrimRight(t, "\r"); t != "" {
				fragments = append(fragments, t)
			}
		}
	}

	text := strings.Join(strings.Fields(strings.Join(fragments, " ")), " ")
	if text == "" {
		return "", errors.New(errors.ErrCodeEmptyResult, "joke text is empty")
	}
	return text, nil
}
