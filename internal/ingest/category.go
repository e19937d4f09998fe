package ingest

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies which extractor handles a source file.
type Category string

const (
	CategoryProfile     Category = "profile"
	CategoryFinancial   Category = "financial"
	CategoryCustomer    Category = "customer"
	CategoryPartnership Category = "partnership"
	CategoryAcquisition Category = "acquisition"
	CategoryVendor      Category = "vendor"
	CategoryPricing     Category = "pricing"
	CategoryGeneric     Category = "generic"
)

// categoryRule binds a category to the filename substrings that select it.
type categoryRule struct {
	category   Category
	substrings []string
}

// categoryRules is the dispatch priority list. Rules are tested in order
// and the first substring hit wins, so a filename containing both
// "revenue" and "customer" is handled by the financial extractor.
var categoryRules = []categoryRule{
	{CategoryProfile, []string{"company-data", "company_data", "profile", "overview"}},
	{CategoryFinancial, []string{"financial", "revenue"}},
	{CategoryCustomer, []string{"customer"}},
	{CategoryPartnership, []string{"partnership"}},
	{CategoryAcquisition, []string{"acquisition"}},
	{CategoryVendor, []string{"vendor", "operator"}},
	{CategoryPricing, []string{"pricing"}},
}

// DetectCategory classifies a filename. Anything unmatched falls through
// to the generic extractor.
func DetectCategory(filename string) Category {
	lower := strings.ToLower(filename)
	for _, rule := range categoryRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.category
			}
		}
	}
	return CategoryGeneric
}

// filenameCompanyRes extracts the acting company from relationship-style
// filenames such as "02_geotab_customer_references.csv". Patterns are
// tried in order; the first capture wins. The capture must start with a
// letter so an ordinal prefix ("02_customer_data.csv") is never mistaken
// for a company token.
var filenameCompanyRes = []*regexp.Regexp{
	regexp.MustCompile(`^(?:\d+_)?([a-z][a-z0-9]*)_company`),
	regexp.MustCompile(`^(?:\d+_)?([a-z][a-z0-9]*)_customer`),
	regexp.MustCompile(`^(?:\d+_)?([a-z][a-z0-9]*)_partnership`),
	regexp.MustCompile(`^(?:\d+_)?([a-z][a-z0-9]*)_acquisition`),
}

var titleCaser = cases.Title(language.English)

// CompanyFromFilename derives a display-cased company name from a filename
// prefix, or "" when no pattern matches.
func CompanyFromFilename(filename string) string {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	for _, re := range filenameCompanyRes {
		if m := re.FindStringSubmatch(base); m != nil {
			return titleCaser.String(m[1])
		}
	}
	return ""
}
