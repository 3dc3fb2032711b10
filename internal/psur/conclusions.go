package psur

import "github.com/goliatone/go-psurgen/pkg/schema"

var followUpActions = []string{
	"benefit_risk_assessment_update",
	"risk_management_file_update",
	"product_design_update",
	"manufacturing_process_update",
	"ifu_or_labeling_update",
	"clinical_evaluation_report_update",
	"sscp_update_if_applicable",
	"capa_initiated",
	"fsca_initiated",
}

// findingsAndConclusions declares section M.
func (b *Builder) findingsAndConclusions() *schema.Schema {
	actions := make([]schema.Property, 0, len(followUpActions)+1)
	for _, name := range followUpActions {
		actions = append(actions, schema.Prop(name, flag(false)))
	}
	actions = append(actions, schema.Prop("action_details_and_follow_up", textarea()))

	return schema.Object(
		schema.Prop("benefit_risk_profile_conclusion", textarea()),
		schema.Prop("intended_benefits_achieved", textarea()),
		schema.Prop("limitations_of_data_and_conclusion", textarea()),
		schema.Prop("new_or_emerging_risks_or_new_benefits", textarea()),
		schema.Prop("actions_taken_or_planned", schema.Object(actions...).Require("action_details_and_follow_up")),
		schema.Prop("overall_performance_conclusion", textarea()),
	).Require("benefit_risk_profile_conclusion", "overall_performance_conclusion", "actions_taken_or_planned")
}
