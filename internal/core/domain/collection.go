package domain

import "path"

// Collection names one JSON array persisted as a single document. File is
// the document name under the remote data directory; LocalKey is the key
// the fallback store mirrors it under.
type Collection struct {
	Name     string
	File     string
	LocalKey string
}

// Path joins the collection's file onto the remote data directory.
func (c Collection) Path(dataDir string) string {
	return path.Join(dataDir, c.File)
}

var (
	CollectionUsers         = Collection{Name: "users", File: "users.json", LocalKey: "furniture_store_users"}
	CollectionProducts      = Collection{Name: "products", File: "products.json", LocalKey: "furniture_store_products"}
	CollectionCategories    = Collection{Name: "categories", File: "categories.json", LocalKey: "furniture_store_categories"}
	CollectionColors        = Collection{Name: "colors", File: "colors.json", LocalKey: "furniture_store_colors"}
	CollectionPricingTables = Collection{Name: "pricing tables", File: "pricing-tables.json", LocalKey: "furniture_store_pricing_tables"}
	CollectionPromotions    = Collection{Name: "promotions", File: "promotions.json", LocalKey: "furniture_store_promotions"}
	CollectionAnnouncements = Collection{Name: "announcements", File: "announcements.json", LocalKey: "furniture_store_announcements"}
	CollectionOrders        = Collection{Name: "orders", File: "orders.json", LocalKey: "furniture_store_orders"}
)

// Tier identifies which storage layer served or accepted a collection.
type Tier string

const (
	TierNone     Tier = ""
	TierRemote   Tier = "remote"
	TierFallback Tier = "fallback"
	TierDefaults Tier = "defaults"
)

// CollectionStatus describes the last synchronization of one collection.
type CollectionStatus struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Tier    Tier   `json:"tier"`
	Version string `json:"version,omitempty"`
}
