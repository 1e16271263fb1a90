// This file implements demo data seeding for the local store.
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// orderStates cycles through the purchase order workflow.
var orderStates = []string{"brouillon", "confirmer", "recu", "annule"}

// demoData returns the seed records per entity. Purchase orders and request
// lines are generated so the list pages have several pages to browse.
func demoData() map[string][]types.Record {
	data := map[string][]types.Record{
		types.EntityCompanies: {
			{"id": 1, "name": "Comptoir Atlantique SA", "currency": 1, "country": 1},
			{"id": 2, "name": "Comptoir Dakar SARL", "currency": 3, "country": 2},
		},
		types.EntityCurrencies: {
			{"id": 1, "code": "EUR", "name": "Euro", "symbol": "€", "active": true},
			{"id": 2, "code": "USD", "name": "Dollar américain", "symbol": "$", "active": true},
			{"id": 3, "code": "XOF", "name": "Franc CFA", "symbol": "F", "active": true},
			{"id": 4, "code": "GBP", "name": "Livre sterling", "symbol": "£", "active": false},
		},
		types.EntityCountries: {
			{"id": 1, "code": "FR", "name": "France"},
			{"id": 2, "code": "SN", "name": "Sénégal"},
			{"id": 3, "code": "US", "name": "États-Unis"},
		},
		types.EntitySubdivisions: {
			{"id": 1, "code": "FR-IDF", "name": "Île-de-France", "country": 1, "type": "region"},
			{"id": 2, "code": "FR-BRE", "name": "Bretagne", "country": 1, "type": "region"},
			{"id": 3, "code": "SN-DK", "name": "Dakar", "country": 2, "type": "region"},
			{"id": 4, "code": "SN-TH", "name": "Thiès", "country": 2, "type": "region"},
			{"id": 5, "code": "US-CA", "name": "California", "country": 3, "type": "state"},
		},
		types.EntitySuppliers: {
			{"id": 1, "name": "Fournitures Dupont", "country": 1},
			{"id": 2, "name": "Acme Industrie", "country": 3},
			{"id": 3, "name": "Papeterie du Cap-Vert", "country": 2},
			{"id": 4, "name": "Bureau Express", "country": 1},
		},
		types.EntityGroups: {
			{"id": 1, "name": "Administrateurs", "description": "Accès complet"},
			{"id": 2, "name": "Acheteurs", "description": "Achats et demandes"},
			{"id": 3, "name": "Comptables", "description": "Comptabilité et rapports"},
		},
		types.EntityUsers: {
			{"id": 1, "name": "Awa Ndiaye", "email": "awa.ndiaye@example.com", "group": 1},
			{"id": 2, "name": "Louis Martin", "email": "louis.martin@example.com", "group": 2},
			{"id": 3, "name": "Fatou Sow", "email": "fatou.sow@example.com", "group": 3},
			{"id": 4, "name": "Claire Petit", "email": "claire.petit@example.com", "group": 2},
		},
		types.EntityLanguages: {
			{"id": 1, "code": "fr", "name": "Français", "active": true},
			{"id": 2, "code": "en", "name": "English", "active": true},
			{"id": 3, "code": "wo", "name": "Wolof", "active": false},
		},
		types.EntityAccounts: {
			{"id": 1, "code": "401000", "name": "Fournisseurs", "account_type": "passif", "company": 1, "currency": 1},
			{"id": 2, "code": "411000", "name": "Clients", "account_type": "actif", "company": 1, "currency": 1},
			{"id": 3, "code": "512000", "name": "Banque", "account_type": "actif", "company": 1, "currency": 1},
			{"id": 4, "code": "601000", "name": "Achats de matières", "account_type": "charge", "company": 1, "currency": 1},
			{"id": 5, "code": "707000", "name": "Ventes de marchandises", "account_type": "produit", "company": 1, "currency": 1},
			{"id": 6, "code": "401000", "name": "Fournisseurs", "account_type": "passif", "company": 2, "currency": 3},
			{"id": 7, "code": "521000", "name": "Banques locales", "account_type": "actif", "company": 2, "currency": 3},
			{"id": 8, "code": "701000", "name": "Ventes de produits finis", "account_type": "produit", "company": 2, "currency": 3},
		},
		types.EntitySalesTeams: {
			{"id": 1, "name": "Grands comptes", "leader": 1, "company": 1},
			{"id": 2, "name": "Export Afrique", "leader": 3, "company": 2},
			{"id": 3, "name": "PME Bretagne", "leader": 4, "company": 1},
		},
		types.EntityExchangeRates: {
			{"id": 1, "currency": 2, "date": "2024-01-02", "rate": 1.0956},
			{"id": 2, "currency": 3, "date": "2024-01-02", "rate": 655.957},
			{"id": 3, "currency": 4, "date": "2024-01-02", "rate": 0.8674},
			{"id": 4, "currency": 2, "date": "2024-02-01", "rate": 1.0814},
			{"id": 5, "currency": 3, "date": "2024-02-01", "rate": 655.957},
			{"id": 6, "currency": 4, "date": "2024-02-01", "rate": 0.8553},
		},
	}

	for m := 1; m <= 12; m++ {
		state := "ouverte"
		if m <= 6 {
			state = "cloturee"
		}
		data[types.EntityPeriods] = append(data[types.EntityPeriods], types.Record{
			"id":          m,
			"code":        fmt.Sprintf("2024-%02d", m),
			"name":        time.Month(m).String() + " 2024",
			"fiscal_year": "2024",
			"state":       state,
		})
	}

	for i := 1; i <= 25; i++ {
		data[types.EntityPurchaseOrders] = append(data[types.EntityPurchaseOrders], types.Record{
			"id":       i,
			"name":     fmt.Sprintf("BC-2024-%03d", i),
			"partner":  (i-1)%4 + 1,
			"currency": (i-1)%3 + 1,
			"company":  (i-1)%2 + 1,
			"state":    orderStates[(i-1)%len(orderStates)],
			"amount":   float64(i) * 125.5,
			"date":     fmt.Sprintf("2024-%02d-%02d", (i-1)%12+1, (i-1)%28+1),
		})
	}

	products := []string{"Ramette papier A4", "Toner laser", "Chaise de bureau", "Écran 27 pouces"}
	for i := 1; i <= 12; i++ {
		state := "brouillon"
		if i%3 == 0 {
			state = "approuvee"
		}
		data[types.EntityRequestLines] = append(data[types.EntityRequestLines], types.Record{
			"id":       i,
			"request":  fmt.Sprintf("DA-2024-%03d", (i-1)/3+1),
			"product":  products[(i-1)%len(products)],
			"quantity": i * 2,
			"supplier": (i-1)%4 + 1,
			"state":    state,
		})
	}

	return data
}

// Seed loads the demo data into every entity that is currently empty.
// Entities that already hold records are left untouched.
func (b *Backend) Seed(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	for _, entity := range types.StandardEntities {
		records := demoData()[entity]
		if len(records) == 0 {
			continue
		}

		var count int
		if err := b.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM records WHERE entity = ?", entity).Scan(&count); err != nil {
			return fmt.Errorf("counting %s: %w", entity, err)
		}
		if count > 0 {
			continue
		}

		if err := b.seedEntity(ctx, entity, records); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) seedEntity(ctx context.Context, entity string, records []types.Record) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, rec := range records {
		id, _ := rec.ID(types.DefaultIDField)
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding %s/%s: %w", entity, id, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO records (entity, record_id, seq, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			entity, id, i+1, string(data), now, now); err != nil {
			return fmt.Errorf("seeding %s/%s: %w", entity, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return b.persistEntity(ctx, entity)
}
