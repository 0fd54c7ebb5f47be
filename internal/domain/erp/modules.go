package erp

// Package erp describes the ERP modules the dashboard can browse. Record data
// itself stays opaque and is fetched from the backend per request.

import (
	"fmt"
	"net/url"
	"strings"
)

// Column is one field shown in a module's list view.
type Column struct {
	Field string
	Label string
}

// Module is a browsable ERP area, mounted under Path.
type Module struct {
	Key     string
	Title   string
	Path    string
	Columns []Column
}

//nolint:gochecknoglobals // static read-only catalog
var catalog = []Module{
	{
		Key: "projects", Title: "Projects", Path: "/projects",
		Columns: []Column{{"name", "Name"}, {"client", "Client"}, {"status", "Status"}, {"startDate", "Start"}},
	},
	{
		Key: "budget", Title: "Budget", Path: "/budget",
		Columns: []Column{{"name", "Line"}, {"project", "Project"}, {"amount", "Amount"}, {"status", "Status"}},
	},
	{
		Key: "contracts", Title: "Contracts", Path: "/contracts",
		Columns: []Column{{"title", "Title"}, {"consultant", "Consultant"}, {"startDate", "Start"}, {"endDate", "End"}, {"status", "Status"}},
	},
	{
		Key: "claims", Title: "Claims", Path: "/claims",
		Columns: []Column{{"reference", "Reference"}, {"claimant", "Claimant"}, {"amount", "Amount"}, {"status", "Status"}},
	},
	{
		Key: "imprest", Title: "Imprest", Path: "/imprest",
		Columns: []Column{{"reference", "Reference"}, {"holder", "Holder"}, {"amount", "Amount"}, {"status", "Status"}},
	},
	{
		Key: "salary-advances", Title: "Salary advances", Path: "/salary-advances",
		Columns: []Column{{"employee", "Employee"}, {"amount", "Amount"}, {"requestedAt", "Requested"}, {"status", "Status"}},
	},
	{
		Key: "users", Title: "Users", Path: "/users",
		Columns: []Column{{"firstName", "First name"}, {"lastName", "Last name"}, {"email", "Email"}, {"department", "Department"}},
	},
}

// Catalog returns every module in navigation order.
func Catalog() []Module {
	out := make([]Module, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a module by key.
func Lookup(key string) (Module, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, m := range catalog {
		if m.Key == key {
			return m, true
		}
	}
	return Module{}, false
}

// DetailPath returns the page path of a single record.
func (m Module) DetailPath(id string) string {
	return m.Path + "/" + url.PathEscape(id)
}

// Value renders field of rec for display.
func Value(rec map[string]any, field string) string {
	v, ok := rec[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%.2f", t)
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case map[string]any:
		for _, k := range []string{"name", "title", "email", "_id"} {
			if s, ok := t[k].(string); ok && s != "" {
				return s
			}
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// RecordID returns the backend identifier of rec, preferring "_id" over "id".
func RecordID(rec map[string]any) string {
	for _, k := range []string{"_id", "id"} {
		switch v := rec[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%d", int64(v))
		}
	}
	return ""
}
