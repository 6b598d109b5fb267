package checks

import (
	"sort"

	"stock-reconciler/core/config"
	"stock-reconciler/core/sources/secondary"
)

// SourceReport describes whether one system of record is configured.
type SourceReport struct {
	Name       string   `json:"name"`
	Configured bool     `json:"configured"`
	Missing    []string `json:"missing"`
}

// CheckSources reports the configuration completeness of each source.
// Only settings without a usable default are checked.
func CheckSources(cfg config.Sources) []SourceReport {
	reports := []SourceReport{
		required("feed", map[string]string{"url": cfg.Feed.URL}),
		required("catalog", map[string]string{"search_url": cfg.Catalog.SearchURL}),
		required("primary", map[string]string{
			"graphql_url": cfg.Primary.GraphQLURL,
			"token_url":   cfg.Primary.TokenURL,
			"username":    cfg.Primary.Username,
			"password":    cfg.Primary.Password,
			"client_id":   cfg.Primary.ClientID,
		}),
	}

	switch cfg.Secondary.Source {
	case secondary.KindAPI:
		reports = append(reports, required("secondary", map[string]string{"url": cfg.Secondary.URL}))
	case secondary.KindSQL:
		reports = append(reports, required("secondary", map[string]string{"table": cfg.Secondary.Table}))
	case secondary.KindImport:
		reports = append(reports, required("secondary", map[string]string{"import_prefix": cfg.Secondary.ImportPrefix}))
	default:
		reports = append(reports, SourceReport{Name: "secondary", Missing: []string{"source"}})
	}
	return reports
}

// required lists the empty settings in alphabetical order.
func required(name string, settings map[string]string) SourceReport {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	report := SourceReport{Name: name, Missing: []string{}}
	for _, k := range keys {
		if settings[k] == "" {
			report.Missing = append(report.Missing, k)
		}
	}
	report.Configured = len(report.Missing) == 0
	return report
}
