package types

// Standard entity collections exposed by the backend.
const (
	EntityPurchaseOrders = "purchase_orders"
	EntityRequestLines   = "request_lines"
	EntityAccounts       = "accounts"
	EntitySalesTeams     = "sales_teams"
	EntityExchangeRates  = "exchange_rates"
	EntityGroups         = "groups"
	EntityLanguages      = "languages"
	EntitySubdivisions   = "subdivisions"
	EntityPeriods        = "periods"
	EntityUsers          = "users"
	EntityCurrencies     = "currencies"
	EntityCountries      = "countries"
	EntitySuppliers      = "suppliers"
	EntityCompanies      = "companies"
)

// StandardEntities lists all standard entity names for enumeration.
var StandardEntities = []string{
	EntityPurchaseOrders,
	EntityRequestLines,
	EntityAccounts,
	EntitySalesTeams,
	EntityExchangeRates,
	EntityGroups,
	EntityLanguages,
	EntitySubdivisions,
	EntityPeriods,
	EntityUsers,
	EntityCurrencies,
	EntityCountries,
	EntitySuppliers,
	EntityCompanies,
}

// entityPaths maps entity names to REST collection paths.
var entityPaths = map[string]string{
	EntityPurchaseOrders: "purchase/orders",
	EntityRequestLines:   "purchase/request-lines",
	EntityAccounts:       "accounting/accounts",
	EntitySalesTeams:     "sales/teams",
	EntityExchangeRates:  "currency/exchange-rates",
	EntityGroups:         "org/groups",
	EntityLanguages:      "org/languages",
	EntitySubdivisions:   "org/subdivisions",
	EntityPeriods:        "accounting/periods",
	EntityUsers:          "org/users",
	EntityCurrencies:     "currency/currencies",
	EntityCountries:      "org/countries",
	EntitySuppliers:      "purchase/suppliers",
	EntityCompanies:      "org/companies",
}

// IsStandardEntity reports whether name is one of StandardEntities.
func IsStandardEntity(name string) bool {
	_, ok := entityPaths[name]
	return ok
}

// EntityPath returns the REST collection path for entity.
// The second result is false for unknown entities.
func EntityPath(entity string) (string, bool) {
	p, ok := entityPaths[entity]
	return p, ok
}
