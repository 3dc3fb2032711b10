package psur

import "github.com/goliatone/go-psurgen/pkg/schema"

// Benefit-risk conclusions.
const (
	ConclusionUnchanged         = "NOT_ADVERSELY_IMPACTED_UNCHANGED"
	ConclusionAdverselyImpacted = "ADVERSELY_IMPACTED"
)

// executiveSummary declares section A.
func (b *Builder) executiveSummary() *schema.Schema {
	previousActions := schema.Object(
		schema.Prop("actions_and_status_from_previous_report", textarea()),
		schema.Prop("status_of_previous_actions", schema.Object(
			schema.Prop("status", selectEnum(NotSelected, "COMPLETED", "IN_PROGRESS", "NOT_STARTED", "NOT_APPLICABLE", NotSelected)),
			schema.Prop("details_if_needed", textarea()),
		).Require("status")),
	).Require("actions_and_status_from_previous_report", "status_of_previous_actions")

	notifiedBodyReview := schema.Object(
		schema.Prop("previous_psur_reviewed_by_notified_body", choice(DefYesNoNA)),
		schema.Prop("notified_body_actions_taken", textarea()),
		schema.Prop("status_of_nb_actions", textarea()),
	).Require("previous_psur_reviewed_by_notified_body")

	periodChanges := schema.Object(
		schema.Prop("data_collection_period_changed", choice(DefTriState)),
		schema.Prop("justification_for_change", textarea()),
		schema.Prop("impact_on_comparability", textarea()),
	).Require("data_collection_period_changed").
		RequireWhen("data_collection_period_changed", "YES", "justification_for_change", "impact_on_comparability")

	benefitRisk := schema.Object(
		schema.Prop("conclusion", selectEnum(NotSelected, ConclusionUnchanged, ConclusionAdverselyImpacted, NotSelected)),
		schema.Prop("high_level_summary_if_adversely_impacted", textarea()),
	).Require("conclusion").
		RequireWhen("conclusion", ConclusionAdverselyImpacted, "high_level_summary_if_adversely_impacted")

	return schema.Object(
		schema.Prop("previous_psur_actions_status", previousActions),
		schema.Prop("notified_body_review_status", notifiedBodyReview),
		schema.Prop("data_collection_period_changes", periodChanges),
		schema.Prop("benefit_risk_assessment_conclusion", benefitRisk),
	).Require("previous_psur_actions_status", "notified_body_review_status", "data_collection_period_changes", "benefit_risk_assessment_conclusion")
}
