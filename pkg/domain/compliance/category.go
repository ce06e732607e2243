package compliance

// Category groups compliance rules by regulatory domain.
type Category string

const (
	CategoryCorporate        Category = "corporate"
	CategoryDataProtection   Category = "data_protection"
	CategoryEmployment       Category = "employment"
	CategoryEstatePlanning   Category = "estate_planning"
	CategoryFinancial        Category = "financial"
	CategoryHealthcare       Category = "healthcare"
	CategoryIndustrySpecific Category = "industry_specific"
	CategoryInsurance        Category = "insurance"
	CategoryInternational    Category = "international"
	CategoryPrivacy          Category = "privacy"
	CategoryTax              Category = "tax"
)

// IsValid returns true if the category is one of the known domains.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCorporate, CategoryDataProtection, CategoryEmployment,
		CategoryEstatePlanning, CategoryFinancial, CategoryHealthcare,
		CategoryIndustrySpecific, CategoryInsurance, CategoryInternational,
		CategoryPrivacy, CategoryTax:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}
