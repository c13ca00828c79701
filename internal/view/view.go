package view

import (
	"fmt"

	"github.com/petflu/service-storefront/internal/domain/cart"
	"github.com/petflu/service-storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Storefront copy.
const (
	PlaceholderImage  = "img/placeholder.svg"
	AddToCartLabel    = "Adicionar ao carrinho"
	RemoveLabel       = "Remover"
	EmptyCartMessage  = "Seu carrinho está vazio."
	CheckoutMessage   = "Compra simulada com sucesso! (demonstrativo)"
	bookingMessageFmt = "Agendamento realizado! Total: %s"
)

// CardView is one product card of the catalog grid.
type CardView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	FallbackImage string `json:"fallback_image"`
	ButtonLabel   string `json:"button_label"`
}

// CatalogView is the catalog grid.
type CatalogView struct {
	Cards []CardView `json:"cards"`
	Empty bool       `json:"empty"`
}

// ServiceOption is one entry of the booking form's service select.
type ServiceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CartLineView is one row of the cart dialog.
type CartLineView struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Price       string `json:"price"`
	RemoveLabel string `json:"remove_label"`
	RemoveAria  string `json:"remove_aria"`
}

// CartView is the cart dialog plus the header item-count indicator.
type CartView struct {
	Lines        []CartLineView `json:"lines"`
	Total        string         `json:"total"`
	Count        int            `json:"count"`
	Empty        bool           `json:"empty"`
	EmptyMessage string         `json:"empty_message,omitempty"`
}

// RenderCatalog projects every item of every category into a product card.
func RenderCatalog(c *catalog.Catalog) CatalogView {
	cards := []CardView{}
	for _, cat := range c.Categories() {
		for _, it := range cat.Items {
			cards = append(cards, CardView{
				ID:            it.ID,
				Name:          it.Name,
				Price:         FormatBRL(it.Price),
				Description:   it.Description,
				Image:         imageOrPlaceholder(it.Image),
				FallbackImage: PlaceholderImage,
				ButtonLabel:   AddToCartLabel,
			})
		}
	}
	return CatalogView{Cards: cards, Empty: len(cards) == 0}
}

// RenderServiceOptions lists the bookable services in dataset order.
func RenderServiceOptions(services []catalog.Service) []ServiceOption {
	bookable := make(map[string]bool, len(catalog.BookableServiceIDs))
	for _, id := range catalog.BookableServiceIDs {
		bookable[id] = true
	}

	opts := []ServiceOption{}
	for _, s := range services {
		if !bookable[s.ID] {
			continue
		}
		opts = append(opts, ServiceOption{
			Value: s.ID,
			Label: fmt.Sprintf("%s — %s", s.Name, FormatBRL(s.BasePrice)),
		})
	}
	return opts
}

// RenderCart projects the cart into the dialog rows, total and count.
func RenderCart(c *cart.Cart) CartView {
	v := CartView{
		Lines: []CartLineView{},
		Total: FormatAmount(c.Total()),
		Count: c.Count(),
		Empty: c.IsEmpty(),
	}
	if v.Empty {
		v.EmptyMessage = EmptyCartMessage
		return v
	}
	for _, l := range c.Lines() {
		v.Lines = append(v.Lines, CartLineView{
			ID:          l.ID,
			Label:       fmt.Sprintf("%s × %d", l.Name, l.Qtd),
			Price:       FormatBRL(l.Price),
			RemoveLabel: RemoveLabel,
			RemoveAria:  fmt.Sprintf("Remover %s do carrinho", l.Name),
		})
	}
	return v
}

// RenderCartCount returns the header indicator value: the sum of all quantities.
func RenderCartCount(c *cart.Cart) int {
	return c.Count()
}

// BookingMessage is the confirmation shown after a booking is recorded.
func BookingMessage(total decimal.Decimal) string {
	return fmt.Sprintf(bookingMessageFmt, FormatBRL(total))
}

func imageOrPlaceholder(ref string) string {
	if ref == "" {
		return PlaceholderImage
	}
	return ref
}
