package site

import (
	"encoding/xml"
	"strconv"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

// MaxFeedItems bounds the feed to the most recent posts.
const MaxFeedItems = 50

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
	Description string  `xml:"description"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink string `xml:"isPermaLink,attr"`
}

// RenderRSS builds an RSS 2.0 feed of at most MaxFeedItems posts. posts
// must already be sorted. lastBuildDate is the newest post modification, so
// an unchanged issue set yields an identical feed.
func (r *Renderer) RenderRSS(posts []Post) ([]byte, error) {
	var newest time.Time
	for _, p := range posts {
		if m := p.LastModified(); m.After(newest) {
			newest = m
		}
	}
	if len(posts) > MaxFeedItems {
		posts = posts[:MaxFeedItems]
	}
	doc := rssDocument{
		Version: "2.0",
		Channel: rssChannel{
			Title:       r.cfg.SiteTitle,
			Link:        r.cfg.AbsoluteURL(r.cfg.BlogPath()),
			Description: r.cfg.SiteDescription,
		},
	}
	if !newest.IsZero() {
		doc.Channel.LastBuildDate = textutil.RSSDate(newest)
	}
	for _, p := range posts {
		link := r.cfg.AbsoluteURL(p.Path)
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        rssGUID{Value: link, IsPermaLink: "true"},
			PubDate:     textutil.RSSDate(p.CreatedAt),
			Description: p.Description + "（Issue #" + strconv.Itoa(p.Number) + "）",
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.RenderError("failed to encode RSS feed").WithCause(err).Build()
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// WriteRSS renders and writes {root}/rss.xml.
func (r *Renderer) WriteRSS(posts []Post) (string, error) {
	data, err := r.RenderRSS(posts)
	if err != nil {
		return "", err
	}
	path := r.cfg.OutputPath(FeedFile)
	return path, WriteFile(path, data)
}
