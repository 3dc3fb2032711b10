package psur

import (
	"fmt"

	"github.com/goliatone/go-psurgen/pkg/schema"
)

// seriousIncidents declares section D.
func (b *Builder) seriousIncidents() *schema.Schema {
	path := sectionPointer(SectionSeriousIncidents)

	byProblem := b.table(path+"/properties/table_2_serious_incidents_by_imdrf_annex_a_by_region",
		[]string{"region", "imdrf_problem_code_and_term", "n_current_period"},
		incidentColumns("imdrf_problem_code_and_term"),
	)
	byCause := b.table(path+"/properties/table_3_serious_incidents_by_imdrf_annex_c_investigation_findings_by_region",
		[]string{"region", "imdrf_cause_code_and_term", "n_current_period"},
		incidentColumns("imdrf_cause_code_and_term"),
	)

	impactColumns := []schema.Property{
		schema.Prop("region", schema.String()),
		schema.Prop("imdrf_health_impact_annex_f_code_and_term", schema.String()),
		schema.Prop("number_of_serious_incidents", count()),
	}
	for idx := 1; idx <= 4; idx++ {
		impactColumns = append(impactColumns, schema.Prop(
			fmt.Sprintf("investigation_conclusion_%d", idx),
			schema.Object(
				schema.Prop("code_and_term", schema.String()),
				schema.Prop("percent", percent()),
			),
		))
	}
	byImpact := b.table(path+"/properties/table_4_health_impact_by_investigation_conclusion",
		[]string{"region", "imdrf_health_impact_annex_f_code_and_term", "number_of_serious_incidents"},
		impactColumns,
	)

	return schema.Object(
		schema.Prop("narrative_summary", textarea()),
		schema.Prop("table_2_serious_incidents_by_imdrf_annex_a_by_region", byProblem),
		schema.Prop("table_3_serious_incidents_by_imdrf_annex_c_investigation_findings_by_region", byCause),
		schema.Prop("table_4_health_impact_by_investigation_conclusion", byImpact),
		schema.Prop("new_incident_types_identified_this_cycle", textarea()),
	).Require("narrative_summary", "table_2_serious_incidents_by_imdrf_annex_a_by_region",
		"table_3_serious_incidents_by_imdrf_annex_c_investigation_findings_by_region", "table_4_health_impact_by_investigation_conclusion")
}

func incidentColumns(codeColumn string) []schema.Property {
	return []schema.Property{
		schema.Prop("region", schema.String()),
		schema.Prop(codeColumn, schema.String()),
		schema.Prop("n_current_period", count()),
		schema.Prop("rate_percent", percent()),
		schema.Prop("complaint_number", schema.String()),
	}
}

// customerFeedback declares section E.
func (b *Builder) customerFeedback() *schema.Schema {
	feedback := b.table(sectionPointer(SectionCustomerFeedback)+"/properties/table_6_feedback_by_type_and_source",
		[]string{"feedback_type", "source", "count", "summary"},
		[]schema.Property{
			schema.Prop("feedback_type", schema.String()),
			schema.Prop("source", schema.String()),
			schema.Prop("count", count()),
			schema.Prop("summary", textarea()),
		},
	)

	return schema.Object(
		schema.Prop("summary", textarea()),
		schema.Prop("table_6_feedback_by_type_and_source", feedback),
	).Require("summary", "table_6_feedback_by_type_and_source")
}

// complaintRates declares section F.
func (b *Builder) complaintRates() *schema.Schema {
	tablePath := sectionPointer(SectionComplaints) + "/properties/table_7_complaint_rate_and_count"

	annualRows := b.table(tablePath+"/properties/annual_format/properties/rows",
		[]string{"harm", "medical_device_problem"},
		[]schema.Property{
			schema.Prop("harm", schema.String()),
			schema.Prop("medical_device_problem", schema.String()),
			schema.Prop("current_12_month_complaint_count", count()),
			schema.Prop("current_12_month_complaint_rate", rate()),
			schema.Prop("max_expected_rate_of_occurrence_from_ract", rate()),
		},
	)
	annual := schema.Object(
		schema.Prop("date_range", schema.String()),
		schema.Prop("rows", annualRows),
		schema.Prop("grand_total", schema.Object(
			schema.Prop("complaint_count", count()),
			schema.Prop("complaint_rate", rate()),
		)),
	).Require("date_range", "rows")

	biennialRows := b.table(tablePath+"/properties/every_two_years_format/properties/rows",
		[]string{"harm", "medical_device_problem"},
		[]schema.Property{
			schema.Prop("harm", schema.String()),
			schema.Prop("medical_device_problem", schema.String()),
			schema.Prop("period_1_complaint_count", count()),
			schema.Prop("period_1_complaint_rate", rate()),
			schema.Prop("period_2_complaint_count", count()),
			schema.Prop("period_2_complaint_rate", rate()),
			schema.Prop("max_expected_rate_of_occurrence_from_ract", rate()),
		},
	)
	biennial := schema.Object(
		schema.Prop("date_ranges", dateRanges(2)),
		schema.Prop("rows", biennialRows),
		schema.Prop("grand_total", schema.Object(
			schema.Prop("period_1_complaint_count", count()),
			schema.Prop("period_1_complaint_rate", rate()),
			schema.Prop("period_2_complaint_count", count()),
			schema.Prop("period_2_complaint_rate", rate()),
		)),
	).Require("date_ranges", "rows")

	return schema.Object(
		schema.Prop("complaint_rate_calculation", schema.Object(
			schema.Prop("method_description_and_justification", textarea()),
		).Require("method_description_and_justification")),
		schema.Prop("annual_number_of_complaints_and_complaint_rate_by_harm_and_medical_device_problem", schema.Object(
			schema.Prop("commentary_context_for_exceedances", textarea()),
			schema.Prop("risk_documentation_update_needed", choice(DefTriState)),
		).Require("risk_documentation_update_needed")),
		schema.Prop("table_7_complaint_rate_and_count", b.frequencyVariant(tablePath, annual, biennial)),
	).Require("complaint_rate_calculation", "annual_number_of_complaints_and_complaint_rate_by_harm_and_medical_device_problem",
		"table_7_complaint_rate_and_count")
}

// trendReporting declares section G.
func (b *Builder) trendReporting() *schema.Schema {
	reports := b.table(sectionPointer(SectionTrendReporting)+"/properties/trend_reporting_summary/properties/trend_reports",
		[]string{"affected_device_models_or_trade_names", "manufacturer_reference_number", "date_trend_first_identified",
			"current_status_of_trend_investigation"},
		[]schema.Property{
			schema.Prop("affected_device_models_or_trade_names", textarea()),
			schema.Prop("manufacturer_reference_number", schema.String()),
			schema.Prop("date_trend_first_identified", date()),
			schema.Prop("date_reported_to_mhra_if_applicable", date()),
			schema.Prop("current_status_of_trend_investigation", textarea()),
			schema.Prop("corrective_or_preventive_actions_resulted", textarea()),
			schema.Prop("fsca_reference_number_if_relevant", schema.String()),
		},
	)

	return schema.Object(
		schema.Prop("overall_monthly_complaint_rate_trending", schema.Object(
			schema.Prop("graph_reference", schema.String()),
			schema.Prop("upper_control_limit_definition", textarea()),
			schema.Prop("breaches_commentary_and_actions", textarea()),
		).Require("breaches_commentary_and_actions")),
		schema.Prop("trend_reporting_summary", schema.Object(
			schema.Prop("statement_if_not_applicable", textarea()),
			schema.Prop("trend_reports", reports),
		).Require("trend_reports")),
	).Require("overall_monthly_complaint_rate_trending", "trend_reporting_summary")
}
