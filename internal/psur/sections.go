package psur

import "github.com/goliatone/go-psurgen/pkg/schema"

// Section keys in display order.
const (
	SectionExecutiveSummary  = "A_executive_summary"
	SectionScope             = "B_scope_and_device_description"
	SectionSales             = "C_volume_of_sales_and_population_exposure"
	SectionSeriousIncidents  = "D_information_on_serious_incidents"
	SectionCustomerFeedback  = "E_customer_feedback"
	SectionComplaints        = "F_product_complaint_types_counts_and_rates"
	SectionTrendReporting    = "G_information_from_trend_reporting"
	SectionFSCA              = "H_information_from_fsca"
	SectionCAPA              = "I_corrective_and_preventive_actions"
	SectionLiterature        = "J_scientific_literature_review"
	SectionExternalDatabases = "K_review_of_external_databases_and_registries"
	SectionPMCF              = "L_pmcf"
	SectionFindings          = "M_findings_and_conclusions"
)

var sectionKeys = [...]string{
	SectionExecutiveSummary,
	SectionScope,
	SectionSales,
	SectionSeriousIncidents,
	SectionCustomerFeedback,
	SectionComplaints,
	SectionTrendReporting,
	SectionFSCA,
	SectionCAPA,
	SectionLiterature,
	SectionExternalDatabases,
	SectionPMCF,
	SectionFindings,
}

// SectionKeys returns the ordered section key list. It is the single source
// of truth for the root sections definition and the UI section order.
func SectionKeys() []string {
	return append([]string(nil), sectionKeys[:]...)
}

func defaultSections() []Section {
	return []Section{
		{Key: SectionExecutiveSummary, Build: (*Builder).executiveSummary},
		{Key: SectionScope, Build: (*Builder).scopeAndDeviceDescription},
		{Key: SectionSales, Build: (*Builder).salesAndPopulationExposure},
		{Key: SectionSeriousIncidents, Build: (*Builder).seriousIncidents},
		{Key: SectionCustomerFeedback, Build: (*Builder).customerFeedback},
		{Key: SectionComplaints, Build: (*Builder).complaintRates},
		{Key: SectionTrendReporting, Build: (*Builder).trendReporting},
		{Key: SectionFSCA, Build: (*Builder).fieldSafetyCorrectiveActions},
		{Key: SectionCAPA, Build: (*Builder).correctiveAndPreventiveActions},
		{Key: SectionLiterature, Build: (*Builder).literatureReview},
		{Key: SectionExternalDatabases, Build: (*Builder).externalDatabases},
		{Key: SectionPMCF, Build: (*Builder).postMarketClinicalFollowUp},
		{Key: SectionFindings, Build: (*Builder).findingsAndConclusions},
	}
}

// Shared enumeration definitions.
const (
	DefTriState   = "TriState"
	DefYesNoNA    = "YesNoNA"
	DefMDRClass   = "MDRClass"
	DefUSFDAClass = "USFDAClass"

	// NotSelected is the default of every shared enumeration.
	NotSelected = "NOT_SELECTED"
)

func sharedDefinitions() schema.Properties {
	return schema.Properties{
		schema.Prop(DefTriState, notSelectedEnum("YES", "NO")),
		schema.Prop(DefYesNoNA, notSelectedEnum("YES", "NO", "N_A")),
		schema.Prop(DefMDRClass, notSelectedEnum("CLASS_IIA", "CLASS_IIB", "CLASS_III")),
		schema.Prop(DefUSFDAClass, notSelectedEnum("CLASS_I", "CLASS_II", "CLASS_III")),
	}
}
