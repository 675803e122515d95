package lineutil

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText flattens the small HTML subset used in bot replies into plain
// text. <br> becomes a newline and links keep their href as "label: href".
func HTMLToText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		label := strings.TrimSpace(a.Text())
		text := href
		if label != "" && label != href {
			text = label + ": " + href
		}
		a.ReplaceWithHtml(html.EscapeString(text))
	})
	return strings.TrimSpace(doc.Text())
}

// IFrameInfo is what the LINE renderer needs from an embed snippet.
type IFrameInfo struct {
	Src   string
	Title string
}

// ParseIFrame returns the src and title of the first iframe in markup.
func ParseIFrame(markup string) (IFrameInfo, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return IFrameInfo{}, false
	}
	frame := doc.Find("iframe").First()
	src, ok := frame.Attr("src")
	if !ok || src == "" {
		return IFrameInfo{}, false
	}
	title, _ := frame.Attr("title")
	return IFrameInfo{Src: src, Title: title}, true
}

// YouTubeID returns the video ID of a YouTube embed or watch URL.
func YouTubeID(src string) (string, bool) {
	u, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtube.com", "youtube-nocookie.com", "m.youtube.com":
		if id, ok := strings.CutPrefix(u.Path, "/embed/"); ok && id != "" {
			return strings.Trim(id, "/"), true
		}
		if id := u.Query().Get("v"); id != "" {
			return id, true
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, true
		}
	}
	return "", false
}

// WatchURL turns an embed URL into a shareable link. Non-YouTube URLs are
// returned unchanged.
func WatchURL(src string) string {
	if id, ok := YouTubeID(src); ok {
		return "https://youtu.be/" + id
	}
	return src
}

// AbsoluteURL resolves ref against base. An empty base or an already
// absolute ref returns ref unchanged.
func AbsoluteURL(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() || base == "" {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
