package psur

import (
	"github.com/goliatone/go-psurgen/pkg/schema"
	"github.com/goliatone/go-psurgen/pkg/widgets"
)

// Associated document types listed in the section B technical information
// table. The first three are prefilled by renderers.
var associatedDocumentTypes = []string{"PMS Plan", "Clinical Evaluation Report", "PMCF Plan", "Other"}

// scopeAndDeviceDescription declares section B.
func (b *Builder) scopeAndDeviceDescription() *schema.Schema {
	path := sectionPointer(SectionScope)

	deviceInformation := schema.Object(
		schema.Prop("product_name", schema.Text()),
		schema.Prop("implantable_device", choice(DefTriState)),
	).Require("product_name", "implantable_device")

	ukClassification := schema.Object(
		schema.Prop("is_applicable", flag(false)),
		schema.Prop("uk_classification_value", choice(DefMDRClass)),
		schema.Prop("uk_conformity_assessment_details", textarea()),
		schema.Prop("uk_classification_rule", schema.String()),
	).Require("is_applicable", "uk_classification_value").
		RequireWhen("is_applicable", true, "uk_conformity_assessment_details", "uk_classification_rule")

	classification := schema.Object(
		schema.Prop("eu_mdr_classification", choice(DefMDRClass)),
		schema.Prop("eu_technical_documentation_number", schema.Text()),
		schema.Prop("classification_rule_mdr_annex_viii", schema.Text()),
		schema.Prop("uk_classification", ukClassification),
		schema.Prop("us_fda_classification", choice(DefUSFDAClass)),
		schema.Prop("us_pre_market_submission_number", schema.Text()),
	).Require("eu_mdr_classification", "eu_technical_documentation_number", "classification_rule_mdr_annex_viii",
		"uk_classification", "us_fda_classification", "us_pre_market_submission_number")

	euMilestones := schema.Object(
		schema.Prop("first_declaration_of_conformity_date", date()),
		schema.Prop("first_ec_eu_certificate_date", date()),
		schema.Prop("first_ce_marking_date", date()),
	)

	ukMilestones := schema.Object(
		schema.Prop("is_applicable", flag(false)),
		schema.Prop("first_date_of_certification_or_doc_for_gb_market", date()),
		schema.Prop("first_ce_marking_date", date()),
		schema.Prop("first_market_placement_date", date()),
		schema.Prop("first_service_deployment_date", date()),
	).Require("is_applicable").
		RequireWhen("is_applicable", true, "first_date_of_certification_or_doc_for_gb_market", "first_market_placement_date")

	obligationStatus := schema.Object(
		schema.Prop("market_status", schema.Text().Widget(widgets.Textarea)),
		schema.Prop("last_device_sold_date_or_na", textInput().Help("Use date (YYYY-MM-DD) or 'N/A'")),
		schema.Prop("certificate_status", schema.Text().Widget(widgets.Textarea)),
		schema.Prop("projected_end_of_pms_period", textInput()),
		schema.Prop("confirmation_of_ongoing_psur_obligation", textarea()),
	).Require("market_status", "certificate_status")

	timeline := schema.Object(
		schema.Prop("certification_milestones", schema.Object(
			schema.Prop("eu", euMilestones),
			schema.Prop("uk", ukMilestones),
		).Require("eu", "uk")),
		schema.Prop("psur_obligation_status_assessment", obligationStatus),
	).Require("certification_milestones", "psur_obligation_status_assessment")

	description := schema.Object(
		schema.Prop("device_description", schema.Text().Widget(widgets.Textarea)),
		schema.Prop("intended_purpose_use", schema.Text().Widget(widgets.Textarea)),
		schema.Prop("indications", textarea()),
		schema.Prop("contraindications", textarea()),
		schema.Prop("target_populations", textarea()),
	).Require("device_description", "intended_purpose_use")

	mdrRows := b.table(path+"/properties/device_information_breakdown/properties/mdr_devices/properties/basic_udi_di_rows",
		[]string{"basic_udi_di", "device_trade_name", "emdn_code"},
		[]schema.Property{
			schema.Prop("basic_udi_di", schema.Text()),
			schema.Prop("device_trade_name", schema.Text()),
			schema.Prop("emdn_code", schema.Text()),
			schema.Prop("changes_from_previous_psur", textarea()),
		},
		schema.WithMinRows(1),
	)

	legacyRows := b.table(path+"/properties/device_information_breakdown/properties/legacy_devices/properties/device_group_family_rows",
		[]string{"device_group", "trade_names", "gmdn_code", "market_availability_member_states"},
		[]schema.Property{
			schema.Prop("device_group", schema.String()),
			schema.Prop("trade_names", textarea()),
			schema.Prop("gmdn_code", schema.String()),
			schema.Prop("market_availability_member_states", textarea()),
		},
	)

	breakdown := schema.Object(
		schema.Prop("mdr_devices", schema.Object(
			schema.Prop("basic_udi_di_rows", mdrRows),
		).Require("basic_udi_di_rows")),
		schema.Prop("legacy_devices", schema.Object(
			schema.Prop("is_applicable", flag(false)),
			schema.Prop("device_group_family_rows", legacyRows),
		).Require("is_applicable")),
	).Require("mdr_devices", "legacy_devices")

	reportingPeriod := schema.Object(
		schema.Prop("date_range", schema.Object(
			schema.Prop("start_date", date()),
			schema.Prop("end_date", date()),
		).Require("start_date", "end_date")),
		schema.Prop("pms_period_determination_uk_devices", schema.Object(
			schema.Prop("is_applicable", flag(false)),
			schema.Prop("pms_period_determination_text", textarea()),
			schema.Prop("device_lifetime_text", textarea()),
			schema.Prop("projected_end_of_pms_period_text", textarea()),
		).Require("is_applicable")),
	).Require("date_range")

	documents := b.table(path+"/properties/technical_information/properties/associated_documents",
		[]string{"document_type", "document_number", "document_title"},
		[]schema.Property{
			schema.Prop("document_type", schema.Enum(associatedDocumentTypes...)),
			schema.Prop("document_number", schema.Text()),
			schema.Prop("document_title", schema.Text()),
		},
		schema.WithMinRows(1),
	)

	technical := schema.Object(
		schema.Prop("risk_management_file_number", schema.Text()),
		schema.Prop("associated_documents", documents),
	).Require("risk_management_file_number", "associated_documents")

	catalog := schema.Object(
		schema.Prop("complete_listing_reference", schema.Text().Widget(widgets.Text).Help("Reference to an attachment or controlled list")),
	).Require("complete_listing_reference")

	grouping := schema.Object(
		schema.Prop("is_applicable", flag(false)),
		schema.Prop("multiple_devices_included", choice(DefTriState)),
		schema.Prop("justification_for_grouping", textarea()),
		schema.Prop("leading_device", schema.String()),
		schema.Prop("leading_device_rationale", textarea()),
		schema.Prop("same_clinical_evaluation_report", choice(DefTriState)),
		schema.Prop("same_notified_body_for_all_devices", choice(DefTriState)),
		schema.Prop("grouping_changes_from_previous_psur", choice(DefTriState)),
	).Require("is_applicable", "multiple_devices_included")

	return schema.Object(
		schema.Prop("device_information", deviceInformation),
		schema.Prop("device_classification", classification),
		schema.Prop("device_timeline_and_status", timeline),
		schema.Prop("device_description_and_information", description),
		schema.Prop("device_information_breakdown", breakdown),
		schema.Prop("data_collection_period_reporting_period_information", reportingPeriod),
		schema.Prop("technical_information", technical),
		schema.Prop("model_catalog_numbers", catalog),
		schema.Prop("device_grouping_information", grouping),
	).Require("device_information", "device_classification", "device_timeline_and_status", "device_description_and_information",
		"device_information_breakdown", "data_collection_period_reporting_period_information", "technical_information",
		"model_catalog_numbers", "device_grouping_information")
}
