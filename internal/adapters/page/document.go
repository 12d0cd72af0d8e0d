// Package page adapts marketing-page markup to ports.PriceBoard.
package page

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"geo-pricing-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markup hooks shared with the site's stylesheet and scripts.
const (
	PriceClass      = "dynamic-price"
	USDAttr         = "data-usd"
	PeriodAttr      = "data-period"
	PeriodClass     = "period"
	MenuToggleClass = "hamburger"
	NavLinksClass   = "nav-links"
	YearID          = "year"
)

type priceNode struct {
	node *html.Node
	elem domain.PriceElement
}

// Document is a parsed HTML page. It is not safe for concurrent use; the
// converter serializes writes through its session lock.
type Document struct {
	root   *html.Node
	prices []priceNode
}

// Parse reads a page and indexes its dynamic price elements. Elements with
// a missing or non-numeric data-usd attribute are skipped.
func Parse(r io.Reader, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	doc := &Document{root: root}

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, PriceClass) {
			raw, _ := attr(n, USDAttr)
			usd, err := domain.ParseUSD(raw)
			if err != nil {
				logger.Warn("skipping price element with bad amount",
					zap.String("attr", USDAttr), zap.Error(err))
			} else {
				doc.prices = append(doc.prices, priceNode{
					node: n,
					elem: domain.PriceElement{
						Index:  len(doc.prices),
						USD:    usd,
						Period: authoredPeriod(n),
					},
				})
			}
			// Prices do not nest.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(root)

	return doc, nil
}

// authoredPeriod reads the billing period once, at load time: the explicit
// data-period attribute wins, otherwise a "/mo" in the authored content.
func authoredPeriod(n *html.Node) domain.BillingPeriod {
	if v, ok := attr(n, PeriodAttr); ok {
		return domain.ParsePeriod(v)
	}
	if strings.Contains(textContent(n), domain.PeriodMonthly.Suffix()) {
		return domain.PeriodMonthly
	}
	return domain.PeriodNone
}

func (d *Document) Prices() []domain.PriceElement {
	out := make([]domain.PriceElement, 0, len(d.prices))
	for _, p := range d.prices {
		out = append(out, p.elem)
	}
	return out
}

// SetDisplay replaces the element's children with the amount text, followed
// by a <span class="period"> suffix for recurring prices.
func (d *Document) SetDisplay(index int, display domain.PriceDisplay) error {
	if index < 0 || index >= len(d.prices) {
		return fmt.Errorf("set display: index %d out of range [0,%d)", index, len(d.prices))
	}

	n := d.prices[index].node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}

	n.AppendChild(&html.Node{Type: html.TextNode, Data: display.Text})

	if suffix := display.Period.Suffix(); suffix != "" {
		span := &html.Node{
			Type:     html.ElementNode,
			Data:     "span",
			DataAtom: atom.Span,
			Attr:     []html.Attribute{{Key: "class", Val: PeriodClass}},
		}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: suffix})
		n.AppendChild(span)
	}

	return nil
}

// Text returns the rendered text of the price at index.
func (d *Document) Text(index int) string {
	if index < 0 || index >= len(d.prices) {
		return ""
	}
	return textContent(d.prices[index].node)
}

// FillYear writes year into an empty #year element. It reports whether
// anything was written; an element that already has text is left alone.
func (d *Document) FillYear(year int) bool {
	n := findFirst(d.root, func(n *html.Node) bool {
		id, _ := attr(n, "id")
		return id == YearID
	})
	if n == nil || strings.TrimSpace(textContent(n)) != "" {
		return false
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: strconv.Itoa(year)})
	return true
}

// Contract reports which interactive hooks a page exposes.
type Contract struct {
	MenuToggle bool `json:"menu_toggle"`
	NavLinks   bool `json:"nav_links"`
	Year       bool `json:"year"`
	Prices     int  `json:"prices"`
}

// Complete reports whether every hook the site scripts rely on is present.
func (c Contract) Complete() bool {
	return c.MenuToggle && c.NavLinks && c.Year
}

func (d *Document) Inspect() Contract {
	classIs := func(class string) func(*html.Node) bool {
		return func(n *html.Node) bool { return hasClass(n, class) }
	}
	return Contract{
		MenuToggle: findFirst(d.root, classIs(MenuToggleClass)) != nil,
		NavLinks:   findFirst(d.root, classIs(NavLinksClass)) != nil,
		Year: findFirst(d.root, func(n *html.Node) bool {
			id, _ := attr(n, "id")
			return id == YearID
		}) != nil,
		Prices: len(d.prices),
	}
}

// Render writes the page back out as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return sb.String()
}
