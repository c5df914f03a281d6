package sources

import (
	"bytes"
	"context"
	"image"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"golang.org/x/net/html"

	"github.com/matzehuels/dailywall/pkg/cache"
	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/httputil"
	"github.com/matzehuels/dailywall/pkg/scrape"
)

// DefaultCatalogURL is the MediaWiki category listing concept art galleries.
const DefaultCatalogURL = "https://www.halopedia.org/Category:Concept_art"

var (
	selCategoryGroup = scrape.MustCompile(".mw-category-group")
	selListItem      = scrape.MustCompile("li")
	selThumb         = scrape.MustCompile(".thumb")
	selFullMedia     = scrape.MustCompile(".fullMedia")
)

// ImageResult is a decoded background image and where it came from.
type ImageResult struct {
	Image     image.Image
	SourceURL string // file description page, recorded in the provenance
	ImageURL  string // direct link to the original file
}

// ImageSource picks a random image from a MediaWiki category catalog:
// catalog → random category group → random subcategory → random thumbnail
// → file page → original file.
type ImageSource struct {
	Client     *httputil.Client
	CatalogURL string
	SkipGroups int           // leading category groups to ignore (the books group)
	PageTTL    time.Duration // cache lifetime for catalog and category pages
	Rand       *rand.Rand
	Logger     *log.Logger
}

// Fetch walks the catalog and downloads one image.
func (s *ImageSource) Fetch(ctx context.Context) (*ImageResult, error) {
	logger := s.logger()
	rng := s.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	ttl := s.PageTTL
	if ttl == 0 {
		ttl = cache.TTLPage
	}

	catalog, err := s.page(ctx, s.CatalogURL, ttl)
	if err != nil {
		return nil, err
	}
	groups := scrape.QueryAll(catalog, selCategoryGroup)
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrCodeParse, "no category groups on %s", s.CatalogURL)
	}
	groups = groups[min(max(s.SkipGroups, 0), len(groups)):]
	group, err := pick(rng, groups, "category groups")
	if err != nil {
		return nil, err
	}

	sub, err := pick(rng, scrape.QueryAll(group, selListItem), "subcategories")
	if err != nil {
		return nil, err
	}
	categoryURL, err := linkIn(sub, s.CatalogURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("chose category", "url", categoryURL)

	category, err := s.page(ctx, categoryURL, ttl)
	if err != nil {
		return nil, err
	}
	var filePages []string
	for _, thumb := range scrape.QueryAll(category, selThumb) {
		link, err := linkIn(thumb, categoryURL)
		if err != nil {
			return nil, err
		}
		filePages = append(filePages, link)
	}
	filePage, err := pick(rng, filePages, "images in "+categoryURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("chose image page", "url", filePage, "candidates", len(filePages))

	file, err := s.page(ctx, filePage, 0)
	if err != nil {
		return nil, err
	}
	media := scrape.Query(file, selFullMedia)
	if media == nil {
		return nil, errors.New(errors.ErrCodeParse, "no full media link on %s", filePage)
	}
	imageURL, err := linkIn(media, filePage)
	if err != nil {
		return nil, err
	}

	raw, err := s.Client.Get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode %s", imageURL)
	}

	b := img.Bounds()
	logger.Debug("downloaded image", "url", imageURL, "width", b.Dx(), "height", b.Dy())
	return &ImageResult{Image: img, SourceURL: filePage, ImageURL: imageURL}, nil
}

// page fetches and parses an HTML page. A zero ttl bypasses the cache.
func (s *ImageSource) page(ctx context.Context, url string, ttl time.Duration) (*html.Node, error) {
	var (
		body []byte
		err  error
	)
	if ttl > 0 {
		body, err = s.Client.GetCached(ctx, url, ttl)
	} else {
		body, err = s.Client.Get(ctx, url)
	}
	if err != nil {
		return nil, err
	}
	doc, err := scrape.ParseBytes(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse %s", url)
	}
	return doc, nil
}

func (s *ImageSource) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}

// decode reads an image in any registered format, honouring EXIF
// orientation, and rejects empty images.
func decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, errors.New(errors.ErrCodeParse, "image has no pixels")
	}
	return img, nil
}
