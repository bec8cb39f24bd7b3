package footballdata

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/richard-senior/footstats/internal/logger"
)

// Fetcher retrieves the body of a URL. transport.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// SeasonLink is one season file advertised on a football-data.co.uk league page
type SeasonLink struct {
	Season Season
	URL    string
}

// Downloader populates the datasets directory from football-data.co.uk
type Downloader struct {
	DatasetsDir string
	client      Fetcher
}

func NewDownloader(datasetsDir string, client Fetcher) *Downloader {
	return &Downloader{DatasetsDir: datasetsDir, client: client}
}

// links look like mmz4281/2324/E0.csv
func seasonLinkPattern(division string) *regexp.Regexp {
	return regexp.MustCompile(`mmz4281/(\d{4})/` + regexp.QuoteMeta(division) + `\.csv$`)
}

// SeasonLinks scrapes a league page for the CSV links of one division, oldest season first
func (d *Downloader) SeasonLinks(ctx context.Context, pageURL string, division string) ([]SeasonLink, error) {
	if division == "" {
		return nil, fmt.Errorf("must supply a division code")
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid page url %s", pageURL)
	}

	htmlContent, err := d.client.Get(ctx, pageURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch league page")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse HTML")
	}

	pattern := seasonLinkPattern(division)
	var links []SeasonLink
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := pattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		season, ok := ParseSeasonFilename(SeasonFilename(m[1]))
		if !ok {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			logger.Debug("Ignoring unparsable link", href)
			return
		}
		links = append(links, SeasonLink{Season: season, URL: base.ResolveReference(ref).String()})
	})

	links = lo.UniqBy(links, func(l SeasonLink) string { return l.Season.Code })
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Season.StartYear < links[j].Season.StartYear
	})
	return links, nil
}

// FetchLeague downloads every season of a division that passes the filter into
// <DatasetsDir>/<leagueSlug>/season-XXYY.csv, overwriting existing files.
// Returns the paths written.
func (d *Downloader) FetchLeague(ctx context.Context, pageURL, division, leagueSlug string, filter YearFilter) ([]string, error) {
	links, err := d.SeasonLinks(ctx, pageURL, division)
	if err != nil {
		return nil, err
	}
	links = lo.Filter(links, func(l SeasonLink, _ int) bool {
		return filter.Includes(l.Season.StartYear)
	})
	if len(links) == 0 {
		return nil, fmt.Errorf("no %s seasons found on %s for %s", division, pageURL, filter)
	}

	leagueDir := filepath.Join(d.DatasetsDir, leagueSlug)
	if err := os.MkdirAll(leagueDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", leagueDir)
	}

	written := make([]string, 0, len(links))
	for _, l := range links {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		logger.Info("Fetching", l.Season, "from", l.URL)
		data, err := d.client.Get(ctx, l.URL)
		if err != nil {
			// one missing season should not lose the rest
			logger.Warn("Failed to fetch", l.URL, err)
			continue
		}
		path := filepath.Join(leagueDir, SeasonFilename(l.Season.Code))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}
