// Package pages declares the list pages erpdesk can show and loads them:
// which backend collection each page lists, which fields it searches and
// filters, which reference collections resolve its foreign fields, and
// how it renders as columns.
package pages

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mesh-intelligence/erpdesk/pkg/listview"
	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// Column is one rendered column. When Ref is set the field holds a foreign
// identifier rendered as its label from the Ref reference collection.
type Column struct {
	Header string
	Field  string
	Ref    string
}

// Reference binds a reference collection name to the entity fetched for it.
type Reference struct {
	Name   string
	Entity string
}

// Page configures one list page.
type Page struct {
	Name         string
	Title        string
	Entity       string
	IDField      string
	SearchFields []listview.SearchField
	Criteria     []listview.CriterionDef
	References   []Reference
	Columns      []Column
}

// Labeler resolves foreign identifiers; *listview.Controller satisfies it.
type Labeler interface {
	Label(ref string, id any) string
}

// Cell renders the column value of rec.
func (c Column) Cell(rec types.Record, refs Labeler) string {
	if c.Ref != "" && refs != nil {
		return refs.Label(c.Ref, rec[c.Field])
	}
	return rec.String(c.Field)
}

// Options returns the controller options for the page. A pageSize of zero
// keeps the controller default.
func (p Page) Options(pageSize int) listview.Options {
	return listview.Options{
		IDField:      p.IDField,
		SearchFields: slices.Clone(p.SearchFields),
		Criteria:     slices.Clone(p.Criteria),
		PageSize:     pageSize,
	}
}

// Headers returns the column headers.
func (p Page) Headers() []string {
	out := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		out[i] = c.Header
	}
	return out
}

// Row renders every column of rec.
func (p Page) Row(rec types.Record, refs Labeler) []string {
	out := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		out[i] = c.Cell(rec, refs)
	}
	return out
}

func search(fields ...string) []listview.SearchField {
	out := make([]listview.SearchField, len(fields))
	for i, f := range fields {
		out[i] = listview.SearchField{Field: f}
	}
	return out
}

func ref(entity string) Reference {
	return Reference{Name: entity, Entity: entity}
}

var registry = []Page{
	{
		Name:   "bons-commande",
		Title:  "Bons de commande",
		Entity: types.EntityPurchaseOrders,
		SearchFields: append(search("name"),
			listview.SearchField{Field: "partner", Ref: types.EntitySuppliers}),
		Criteria: []listview.CriterionDef{
			{Name: "state", Field: "state", Values: []string{"brouillon", "confirmer", "recu", "annule"}},
		},
		References: []Reference{ref(types.EntitySuppliers), ref(types.EntityCurrencies), ref(types.EntityCompanies)},
		Columns: []Column{
			{Header: "Référence", Field: "name"},
			{Header: "Fournisseur", Field: "partner", Ref: types.EntitySuppliers},
			{Header: "Date", Field: "date"},
			{Header: "Montant", Field: "amount"},
			{Header: "Devise", Field: "currency", Ref: types.EntityCurrencies},
			{Header: "Société", Field: "company", Ref: types.EntityCompanies},
			{Header: "État", Field: "state"},
		},
	},
	{
		Name:         "lignes-demande",
		Title:        "Lignes de demande d'achat",
		Entity:       types.EntityRequestLines,
		SearchFields: search("product", "request"),
		Criteria: []listview.CriterionDef{
			{Name: "state", Field: "state", Values: []string{"brouillon", "approuvee"}},
		},
		References: []Reference{ref(types.EntitySuppliers)},
		Columns: []Column{
			{Header: "Demande", Field: "request"},
			{Header: "Produit", Field: "product"},
			{Header: "Quantité", Field: "quantity"},
			{Header: "Fournisseur", Field: "supplier", Ref: types.EntitySuppliers},
			{Header: "État", Field: "state"},
		},
	},
	{
		Name:         "comptes",
		Title:        "Plan comptable",
		Entity:       types.EntityAccounts,
		SearchFields: search("code", "name"),
		Criteria: []listview.CriterionDef{
			{Name: "account_type", Field: "account_type", Values: []string{"actif", "passif", "charge", "produit"}},
		},
		References: []Reference{ref(types.EntityCompanies), ref(types.EntityCurrencies)},
		Columns: []Column{
			{Header: "Code", Field: "code"},
			{Header: "Intitulé", Field: "name"},
			{Header: "Type", Field: "account_type"},
			{Header: "Société", Field: "company", Ref: types.EntityCompanies},
			{Header: "Devise", Field: "currency", Ref: types.EntityCurrencies},
		},
	},
	{
		Name:   "equipes-commerciales",
		Title:  "Équipes commerciales",
		Entity: types.EntitySalesTeams,
		SearchFields: append(search("name"),
			listview.SearchField{Field: "leader", Ref: types.EntityUsers}),
		Criteria: []listview.CriterionDef{
			{Name: "company", Field: "company"},
		},
		References: []Reference{ref(types.EntityUsers), ref(types.EntityCompanies)},
		Columns: []Column{
			{Header: "Nom", Field: "name"},
			{Header: "Responsable", Field: "leader", Ref: types.EntityUsers},
			{Header: "Société", Field: "company", Ref: types.EntityCompanies},
		},
	},
	{
		Name:   "taux-change",
		Title:  "Taux de change",
		Entity: types.EntityExchangeRates,
		SearchFields: []listview.SearchField{
			{Field: "currency", Ref: types.EntityCurrencies},
			{Field: "date"},
		},
		Criteria: []listview.CriterionDef{
			{Name: "currency", Field: "currency"},
		},
		References: []Reference{ref(types.EntityCurrencies)},
		Columns: []Column{
			{Header: "Devise", Field: "currency", Ref: types.EntityCurrencies},
			{Header: "Date", Field: "date"},
			{Header: "Taux", Field: "rate"},
		},
	},
	{
		Name:         "groupes",
		Title:        "Groupes",
		Entity:       types.EntityGroups,
		SearchFields: search("name", "description"),
		Columns: []Column{
			{Header: "Nom", Field: "name"},
			{Header: "Description", Field: "description"},
		},
	},
	{
		Name:         "langues",
		Title:        "Langues",
		Entity:       types.EntityLanguages,
		SearchFields: search("name", "code"),
		Criteria: []listview.CriterionDef{
			{Name: "active", Field: "active", Values: []string{"true", "false"}},
		},
		Columns: []Column{
			{Header: "Code", Field: "code"},
			{Header: "Nom", Field: "name"},
			{Header: "Active", Field: "active"},
		},
	},
	{
		Name:   "subdivisions",
		Title:  "Subdivisions",
		Entity: types.EntitySubdivisions,
		SearchFields: append(search("name", "code"),
			listview.SearchField{Field: "country", Ref: types.EntityCountries}),
		Criteria: []listview.CriterionDef{
			{Name: "country", Field: "country"},
			{Name: "type", Field: "type", Values: []string{"region", "state"}},
		},
		References: []Reference{ref(types.EntityCountries)},
		Columns: []Column{
			{Header: "Code", Field: "code"},
			{Header: "Nom", Field: "name"},
			{Header: "Pays", Field: "country", Ref: types.EntityCountries},
			{Header: "Type", Field: "type"},
		},
	},
	{
		Name:         "periodes",
		Title:        "Périodes comptables",
		Entity:       types.EntityPeriods,
		SearchFields: search("name", "code"),
		Criteria: []listview.CriterionDef{
			{Name: "state", Field: "state", Values: []string{"ouverte", "cloturee"}},
			{Name: "fiscal_year", Field: "fiscal_year"},
		},
		Columns: []Column{
			{Header: "Code", Field: "code"},
			{Header: "Nom", Field: "name"},
			{Header: "Exercice", Field: "fiscal_year"},
			{Header: "État", Field: "state"},
		},
	},
	{
		Name:         "utilisateurs",
		Title:        "Utilisateurs",
		Entity:       types.EntityUsers,
		SearchFields: search("name", "email"),
		Criteria: []listview.CriterionDef{
			{Name: "group", Field: "group"},
		},
		References: []Reference{ref(types.EntityGroups)},
		Columns: []Column{
			{Header: "Nom", Field: "name"},
			{Header: "Courriel", Field: "email"},
			{Header: "Groupe", Field: "group", Ref: types.EntityGroups},
		},
	},
	{
		Name:         "devises",
		Title:        "Devises",
		Entity:       types.EntityCurrencies,
		SearchFields: search("name", "code"),
		Criteria: []listview.CriterionDef{
			{Name: "active", Field: "active", Values: []string{"true", "false"}},
		},
		Columns: []Column{
			{Header: "Code", Field: "code"},
			{Header: "Nom", Field: "name"},
			{Header: "Symbole", Field: "symbol"},
			{Header: "Active", Field: "active"},
		},
	},
	{
		Name:         "pays",
		Title:        "Pays",
		Entity:       types.EntityCountries,
		SearchFields: search("name", "code"),
		Columns: []Column{
			{Header: "Code", Field: "code"},
			{Header: "Nom", Field: "name"},
		},
	},
}

// All returns the registered pages in declaration order.
func All() []Page {
	return slices.Clone(registry)
}

// Lookup finds a page by name, or by the entity it lists. An unknown name
// returns types.ErrPageNotFound, naming the closest pages when any are near.
func Lookup(name string) (Page, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range registry {
		if p.Name == key || p.Entity == key {
			return p, nil
		}
	}
	if s := Suggest(key); len(s) > 0 {
		return Page{}, fmt.Errorf("page %q (did you mean %s?): %w", name, strings.Join(s, ", "), types.ErrPageNotFound)
	}
	return Page{}, fmt.Errorf("page %q: %w", name, types.ErrPageNotFound)
}

// Suggest returns up to three page names close to name, nearest first.
// Names sharing a prefix with name always qualify; others must be within
// an edit distance of a third of their length.
func Suggest(name string) []string {
	if name == "" {
		return nil
	}
	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, p := range registry {
		d := levenshtein.ComputeDistance(name, p.Name)
		if strings.HasPrefix(p.Name, name) || d <= max(2, len(p.Name)/3) {
			cands = append(cands, candidate{p.Name, d})
		}
	}
	slices.SortStableFunc(cands, func(a, b candidate) int { return a.dist - b.dist })

	out := make([]string, 0, maxSuggestions)
	for _, c := range cands {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out
}

// Footer renders the paging summary shown under a list.
func Footer(v listview.View) string {
	s := fmt.Sprintf("Page %d/%d · %d record(s)", v.Page, v.TotalPages, v.TotalFiltered)
	if n := len(v.Selected); n > 0 {
		s += fmt.Sprintf(" · %d selected", n)
	}
	return s
}
