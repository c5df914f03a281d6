package sources

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/httputil"
	"github.com/matzehuels/dailywall/pkg/scrape"
)

// DefaultWeatherURL is the hour-by-hour forecast page for Portland, Oregon.
const DefaultWeatherURL = "https://weather.com/weather/hourbyhour/l/929a0a10df059030a591f46c408a7e6e022d06a80cdea1287444f02b92d9fd07"

// MaxForecastRows is the number of hourly rows shown on the weather panel.
const MaxForecastRows = 8

// weather.com suffixes its class names with build hashes, so entries are
// matched on the stable prefix.
var (
	selDaypart     = scrape.MustCompile("details[class^=DaypartDetails--DayPartDetail]")
	selDaypartName = scrape.MustCompile("[class*=DetailsSummary--daypartName]")
	selTempValue   = scrape.MustCompile("[class*=DetailsSummary--tempValue]")
	selExtended    = scrape.MustCompile("[class*=DetailsSummary--extendedData]")
	selPercentage  = scrape.MustCompile("span[data-testid=PercentageValue]")
)

// ForecastRow is one hour of the forecast, as displayed.
type ForecastRow struct {
	Time          string `json:"time"`
	Temperature   string `json:"temperature"`
	Description   string `json:"description"`
	Precipitation string `json:"precipitation"`
}

// Cells returns the row's fields in display column order.
func (r ForecastRow) Cells() []string {
	return []string{r.Time, r.Temperature, r.Description, r.Precipitation}
}

// WeatherResult is the scraped forecast and the page it came from.
type WeatherResult struct {
	Rows      []ForecastRow
	SourceURL string
}

// WeatherSource scrapes the hourly forecast table.
type WeatherSource struct {
	Client  *httputil.Client
	URL     string
	MaxRows int // defaults to MaxForecastRows
	Logger  *log.Logger
}

// Fetch downloads the forecast page and returns up to MaxRows rows in page
// order. A page without any forecast entries is an EMPTY_RESULT error; an
// entry missing one of its fields is a PARSE_FAILED error.
func (s *WeatherSource) Fetch(ctx context.Context) (*WeatherResult, error) {
	body, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	doc, err := scrape.ParseBytes(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse %s", s.URL)
	}

	rows, err := ParseForecast(doc, s.maxRows())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyResult, "no forecast entries on %s", s.URL)
	}

	s.logger().Debug("parsed forecast", "rows", len(rows), "first", rows[0].Time)
	return &WeatherResult{Rows: rows, SourceURL: s.URL}, nil
}

func (s *WeatherSource) maxRows() int {
	if s.MaxRows > 0 {
		return s.MaxRows
	}
	return MaxForecastRows
}

func (s *WeatherSource) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}

// ParseForecast extracts at most limit forecast rows from a forecast page.
func ParseForecast(doc *html.Node, limit int) ([]ForecastRow, error) {
	var rows []ForecastRow
	for i, entry := range scrape.QueryAll(doc, selDaypart) {
		if len(rows) == limit {
			break
		}
		field := func(sel scrape.Selector) (string, error) {
			n := scrape.Query(entry, sel)
			if n == nil {
				return "", errors.New(errors.ErrCodeParse, "forecast entry %d has no %s", i, sel)
			}
			return strings.TrimSpace(scrape.Text(n)), nil
		}

		var row ForecastRow
		var err error
		if row.Time, err = field(selDaypartName); err != nil {
			return nil, err
		}
		row.Time = strings.ReplaceAll(row.Time, " ", "")
		if row.Temperature, err = field(selTempValue); err != nil {
			return nil, err
		}
		if row.Description, err = field(selExtended); err != nil {
			return nil, err
		}
		if row.Precipitation, err = field(selPercentage); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
