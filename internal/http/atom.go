package httpx

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/forkful/menuboard/internal/domain/model"
	"github.com/forkful/menuboard/internal/service"
)

// Atom feed rendering for the export endpoints, per RFC 4287. Feed ids use
// the tag URI scheme so they stay stable across hosts.

const atomContentType = "application/atom+xml; charset=utf-8"

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Link    *atomLink   `xml:"link,omitempty"`
	Summary *atomText   `xml:"summary,omitempty"`
	Content *atomText   `xml:"content,omitempty"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomText struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// WriteAtom renders a feed with the XML declaration and Atom content type.
func WriteAtom(w http.ResponseWriter, feed *atomFeed) {
	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", atomContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

func atomTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

// newestOf returns the most recent creation time in the feed, for the
// feed-level updated element.
func newestOf(times []time.Time) time.Time {
	var newest time.Time
	for _, t := range times {
		if t.After(newest) {
			newest = t
		}
	}
	return newest
}

func restaurantEntry(rst *model.Restaurant) atomEntry {
	return atomEntry{
		Title:   rst.Name,
		ID:      fmt.Sprintf("tag:menuboard,restaurant:%d", rst.ID),
		Updated: atomTime(rst.CreatedAt),
		Link:    &atomLink{Href: fmt.Sprintf("/restaurants/%d/menu", rst.ID)},
	}
}

func menuItemEntry(item *model.MenuItem) atomEntry {
	return atomEntry{
		Title:   item.Name,
		ID:      fmt.Sprintf("tag:menuboard,item:%d", item.ID),
		Updated: atomTime(item.CreatedAt),
		Summary: &atomText{Type: "text", Body: item.Description},
		Content: &atomText{
			Type: "text",
			Body: fmt.Sprintf("%s (%s) %s", item.Name, item.Course, item.Price),
		},
	}
}

func restaurantsFeed(export *service.RestaurantsExport) *atomFeed {
	entries := make([]atomEntry, 0, len(export.Restaurants))
	times := make([]time.Time, 0, len(export.Restaurants))
	for _, rst := range export.Restaurants {
		entries = append(entries, restaurantEntry(rst))
		times = append(times, rst.CreatedAt)
	}
	return &atomFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Title:   "Restaurants",
		ID:      "tag:menuboard,restaurants",
		Updated: atomTime(newestOf(times)),
		Entries: entries,
	}
}

func menuFeed(export *service.MenuExport) *atomFeed {
	entries := make([]atomEntry, 0, len(export.MenuItems))
	times := make([]time.Time, 0, len(export.MenuItems))
	for _, item := range export.MenuItems {
		entries = append(entries, menuItemEntry(item))
		times = append(times, item.CreatedAt)
	}
	return &atomFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Title:   export.Restaurant.Name + " Menu",
		ID:      fmt.Sprintf("tag:menuboard,menu:%d", export.Restaurant.ID),
		Updated: atomTime(newestOf(times)),
		Entries: entries,
	}
}

func itemFeed(export *service.ItemExport) *atomFeed {
	item := export.MenuItem
	return &atomFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Title:   item.Name,
		ID:      fmt.Sprintf("tag:menuboard,item:%d", item.ID),
		Updated: atomTime(item.CreatedAt),
		Entries: []atomEntry{menuItemEntry(item)},
	}
}
