package catalog

import (
	"fmt"
	"strings"

	"github.com/petflu/service-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Well-known service ids of the petflu services dataset.
const (
	ServiceBanho     = "banho"
	ServiceTosa      = "tosa"
	ServiceBanhoTosa = "banho-tosa"
	ServiceTeleBusca = "tele-busca"
)

// BookableServiceIDs are the services offered in the booking form, in display order.
var BookableServiceIDs = []string{ServiceBanho, ServiceTosa, ServiceBanhoTosa}

// RequiredServiceIDs must be present for bookings to be priced.
var RequiredServiceIDs = []string{ServiceBanho, ServiceTosa, ServiceBanhoTosa, ServiceTeleBusca}

// Item is an immutable product of the catalog.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"desc"`
	Image       string          `json:"img"`
}

// Category groups catalog items under a display name.
type Category struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Service is an immutable bookable (or add-on) service offering.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Description string          `json:"desc,omitempty"`
	Image       string          `json:"img,omitempty"`
}

// Catalog is the read-only product and service data loaded once per process.
type Catalog struct {
	categories []Category
	services   []Service
	items      map[string]Item
	byService  map[string]Service

	dupItems    []string
	dupServices []string
}

// New builds a Catalog from loaded datasets. Lookups resolve a repeated id to
// its first occurrence; Validate reports the repetition.
func New(categories []Category, services []Service) *Catalog {
	c := &Catalog{
		categories: categories,
		services:   services,
		items:      make(map[string]Item),
		byService:  make(map[string]Service, len(services)),
	}
	for _, cat := range categories {
		for _, it := range cat.Items {
			if _, dup := c.items[it.ID]; dup {
				c.dupItems = append(c.dupItems, it.ID)
				continue
			}
			c.items[it.ID] = it
		}
	}
	for _, s := range services {
		if _, dup := c.byService[s.ID]; dup {
			c.dupServices = append(c.dupServices, s.ID)
			continue
		}
		c.byService[s.ID] = s
	}
	return c
}

// Empty returns a catalog with no categories and no services.
func Empty() *Catalog {
	return New(nil, nil)
}

// Categories returns the product categories in dataset order.
func (c *Catalog) Categories() []Category { return c.categories }

// Services returns the service offerings in dataset order.
func (c *Catalog) Services() []Service { return c.services }

// IsEmpty reports whether nothing was loaded.
func (c *Catalog) IsEmpty() bool {
	return len(c.categories) == 0 && len(c.services) == 0
}

// FindItem looks up a product by id.
func (c *Catalog) FindItem(id string) (Item, error) {
	it, ok := c.items[id]
	if !ok {
		return Item{}, domain.NewNotFoundError("CatalogItem", id)
	}
	return it, nil
}

// FindService looks up a service by id.
func (c *Catalog) FindService(id string) (Service, error) {
	s, ok := c.byService[id]
	if !ok {
		return Service{}, domain.NewNotFoundError("Service", id)
	}
	return s, nil
}

// ServicePrice returns the base price of the service with the given id.
func (c *Catalog) ServicePrice(id string) (decimal.Decimal, error) {
	s, err := c.FindService(id)
	if err != nil {
		return decimal.Zero, err
	}
	return s.BasePrice, nil
}

// Validate checks that item and service ids are unique and that every
// required service is present.
func (c *Catalog) Validate() error {
	if len(c.dupItems) > 0 {
		return fmt.Errorf("products dataset has duplicate item ids: %s", strings.Join(c.dupItems, ", "))
	}
	if len(c.dupServices) > 0 {
		return fmt.Errorf("services dataset has duplicate ids: %s", strings.Join(c.dupServices, ", "))
	}
	var missing []string
	for _, id := range RequiredServiceIDs {
		if _, ok := c.byService[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("services dataset is missing required ids: %s", strings.Join(missing, ", "))
	}
	return nil
}
