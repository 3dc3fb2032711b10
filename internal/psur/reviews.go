package psur

import "github.com/goliatone/go-psurgen/pkg/schema"

// literatureReview declares section J.
func (b *Builder) literatureReview() *schema.Schema {
	return schema.Object(
		schema.Prop("literature_search_methodology", textarea()),
		schema.Prop("number_of_relevant_articles_identified", count()),
		schema.Prop("summary_of_new_data_performance_or_safety", textarea()),
		schema.Prop("newly_observed_uses", textarea()),
		schema.Prop("previously_unassessed_risks", textarea()),
		schema.Prop("state_of_the_art_changes", textarea()),
		schema.Prop("comparison_with_similar_devices", textarea()),
		schema.Prop("technical_documentation_search_results_reference", textInput()),
	).Require("literature_search_methodology", "summary_of_new_data_performance_or_safety")
}

// externalDatabases declares section K.
func (b *Builder) externalDatabases() *schema.Schema {
	events := b.table(sectionPointer(SectionExternalDatabases)+"/properties/table_10_adverse_events_and_recalls",
		[]string{"database_or_registry", "total_matches", "relevant_findings"},
		[]schema.Property{
			schema.Prop("database_or_registry", schema.String()),
			schema.Prop("total_matches", count()),
			schema.Prop("relevant_findings", textarea()),
			schema.Prop("benchmark_vs_similar_devices", textarea()),
			schema.Prop("regulatory_actions_affecting_similar_devices", textarea()),
			schema.Prop("rmf_update_reference", schema.String()),
		},
	)

	return schema.Object(
		schema.Prop("registries_reviewed_summary", textarea()),
		schema.Prop("table_10_adverse_events_and_recalls", events),
	).Require("registries_reviewed_summary", "table_10_adverse_events_and_recalls")
}

// postMarketClinicalFollowUp declares section L.
func (b *Builder) postMarketClinicalFollowUp() *schema.Schema {
	activities := b.table(sectionPointer(SectionPMCF)+"/properties/table_11_pmcf_activities",
		[]string{"specific_pmcf_activities", "key_findings", "impact_on_safety_performance"},
		[]schema.Property{
			schema.Prop("specific_pmcf_activities", textarea()),
			schema.Prop("key_findings", textarea()),
			schema.Prop("impact_on_safety_performance", textarea()),
			schema.Prop("rmf_or_cer_update", textarea()),
			schema.Prop("pmcf_evaluation_report_reference", schema.String()),
		},
	)

	return schema.Object(
		schema.Prop("summary_or_na_statement", textarea()),
		schema.Prop("table_11_pmcf_activities", activities),
	).Require("summary_or_na_statement", "table_11_pmcf_activities")
}
