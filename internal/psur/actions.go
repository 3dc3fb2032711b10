package psur

import "github.com/goliatone/go-psurgen/pkg/schema"

// fieldSafetyCorrectiveActions declares section H.
func (b *Builder) fieldSafetyCorrectiveActions() *schema.Schema {
	fscas := b.table(sectionPointer(SectionFSCA)+"/properties/table_8_fsca_initiated_current_period_and_open_fscas",
		[]string{"type_of_action", "manufacturer_reference_number", "issuing_date_or_date_of_final_fsn",
			"scope_of_fsca_device_models_within_scope", "status_of_fsca", "rationale_and_description_of_action_taken", "impacted_regions"},
		[]schema.Property{
			schema.Prop("type_of_action", schema.String()),
			schema.Prop("manufacturer_reference_number", schema.String()),
			schema.Prop("issuing_date_or_date_of_final_fsn", date()),
			schema.Prop("scope_of_fsca_device_models_within_scope", textarea()),
			schema.Prop("status_of_fsca", schema.String()),
			schema.Prop("rationale_and_description_of_action_taken", textarea()),
			schema.Prop("impacted_regions", textarea()),
			schema.Prop("date_reported_to_mhra_if_applicable", date()),
		},
	)

	return schema.Object(
		schema.Prop("summary_or_na_statement", textarea()),
		schema.Prop("table_8_fsca_initiated_current_period_and_open_fscas", fscas),
	).Require("summary_or_na_statement", "table_8_fsca_initiated_current_period_and_open_fscas")
}

// correctiveAndPreventiveActions declares section I.
func (b *Builder) correctiveAndPreventiveActions() *schema.Schema {
	capas := b.table(sectionPointer(SectionCAPA)+"/properties/table_9_capa_initiated_current_reporting_period",
		[]string{"capa_number_or_manufacturer_reference_number", "initiation_date", "scope_of_capa", "status_of_capa",
			"capa_description", "root_cause", "effectiveness_of_capa", "target_date_for_completion_if_ongoing"},
		[]schema.Property{
			schema.Prop("capa_number_or_manufacturer_reference_number", schema.String()),
			schema.Prop("initiation_date", date()),
			schema.Prop("scope_of_capa", textarea()),
			schema.Prop("status_of_capa", schema.String()),
			schema.Prop("capa_description", textarea()),
			schema.Prop("root_cause", textarea()),
			schema.Prop("effectiveness_of_capa", textarea()),
			schema.Prop("target_date_for_completion_if_ongoing", date()),
		},
	)

	return schema.Object(
		schema.Prop("summary_or_na_statement", textarea()),
		schema.Prop("table_9_capa_initiated_current_reporting_period", capas),
	).Require("summary_or_na_statement", "table_9_capa_initiated_current_reporting_period")
}
