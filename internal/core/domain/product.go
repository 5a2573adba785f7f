package domain

// Grant is the entitlement change applied after a successful purchase.
type Grant struct {
	DocSlots  int
	AIQueries int

	// Tier, when set, replaces the profile tier.
	Tier Tier
}

// Product is a purchasable bundle or subscription.
type Product struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Subtitle  string   `json:"subtitle"`
	Price     int      `json:"price"`
	PriceID   string   `json:"priceId"`
	Recurring bool     `json:"recurring"`
	Features  []string `json:"features"`
	Grant     Grant    `json:"-"`
}

var products = []Product{
	{
		ID:       "launchpad",
		Name:     "Launchpad Bundle",
		Subtitle: "One-time payment",
		Price:    297,
		PriceID:  "price_launchpad_297",
		Features: []string{
			"5 Document Credits",
			"100 AI Assistant Queries",
			"AI Risk Analysis on all docs",
			"Lifetime access to generated documents",
		},
		Grant: Grant{DocSlots: 5, AIQueries: 100},
	},
	{
		ID:        "pro",
		Name:      "Business Pro",
		Subtitle:  "Best value for ongoing protection",
		Price:     47,
		PriceID:   "price_pro_monthly_47",
		Recurring: true,
		Features: []string{
			"Unlimited Document Generation",
			"Unlimited AI Assistant Queries",
			"Unlimited AI Risk Analyses",
			"Secure Document Storage",
		},
		Grant: Grant{Tier: TierPro},
	},
	{
		ID:       "ultimate",
		Name:     "Ultimate Bundle",
		Subtitle: "Comprehensive one-time package",
		Price:    497,
		PriceID:  "price_ultimate_497",
		Features: []string{
			"15 Document Credits",
			"300 AI Assistant Queries",
			"Includes all current & future templates",
			"AI Risk Analysis on all docs",
		},
		Grant: Grant{DocSlots: 15, AIQueries: 300},
	},
}

// Products returns the purchasable products.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// LookupProduct returns the product with the given ID.
func LookupProduct(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
