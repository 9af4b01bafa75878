package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/vanderheijden86/algodocs/pkg/catalog"
)

// PageItem is a catalog page in the launcher list.
type PageItem struct {
	Page        catalog.Page
	FavoriteNum int
}

func (i PageItem) Title() string {
	if i.FavoriteNum > 0 {
		return fmt.Sprintf("%d %s", i.FavoriteNum, i.Page.Title)
	}
	return i.Page.Title
}

func (i PageItem) Description() string {
	return i.Page.Summary
}

func (i PageItem) FilterValue() string {
	return i.Page.Title + " " + i.Page.Path
}

func newCatalogList(c *catalog.Catalog, favorites map[int]string, theme Theme) list.Model {
	favByPath := make(map[string]int, len(favorites))
	for n, path := range favorites {
		favByPath[path] = n
	}

	pages := c.Pages()
	items := make([]list.Item, len(pages))
	for i, p := range pages {
		items[i] = PageItem{Page: p, FavoriteNum: favByPath[p.Path]}
	}

	l := list.New(items, PageDelegate{Theme: theme}, 80, 20)
	l.Title = "Algorithm Reference"
	l.Styles.Title = theme.Header
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("page", "pages")
	return l
}
