package psur

import (
	"github.com/goliatone/go-psurgen/pkg/schema"
	"github.com/goliatone/go-psurgen/pkg/widgets"
)

func (b *Builder) form() *schema.Schema {
	pageControl := schema.Object(
		schema.Prop("current_page", schema.Nullable(schema.TypeInteger).WithMinimum(1).Widget(widgets.Number)),
		schema.Prop("total_pages", schema.Nullable(schema.TypeInteger).WithMinimum(1).Widget(widgets.Number)),
	)

	documentControl := schema.Object(
		schema.Prop("product_or_product_family", schema.Text().Widget(widgets.Text).Label("Product or Product Family")),
		schema.Prop("infocard_number", schema.Text().Widget(widgets.Text).Label("Infocard Number")),
		schema.Prop("page_control", pageControl),
	).Require("product_or_product_family", "infocard_number")

	return schema.Object(
		schema.Prop("form_id", schema.String().WithConst(FormID)),
		schema.Prop("form_title", schema.String().WithConst(FormTitle)),
		schema.Prop("revision", schema.String().WithDefault(Revision)),
		schema.Prop("document_control", documentControl),
	).Require("form_id", "form_title", "revision", "document_control")
}

func (b *Builder) coverPage() *schema.Schema {
	authorizedRepresentative := schema.Object(
		schema.Prop("is_applicable", flag(true).Widget(widgets.Checkbox).Label("Authorized Representative applicable?")),
		schema.Prop("name", schema.Text().WithDefault("CooperSurgical Distribution B.V.").Widget(widgets.Text)),
		schema.Prop("address_lines", lines().
			WithDefault([]any{"Celsiusweg 35", "5928 PR Venlo", "The Netherlands"}).
			Widget(widgets.Textarea)),
		schema.Prop("authorized_representative_srn", schema.String().
			WithPattern(`^[A-Z]{2}-AR-\d{10,}$`).
			WithDefault("NL-AR-0000000059").
			Widget(widgets.Text).
			Help("Format: NL-AR-##########")),
	).Require("is_applicable").
		RequireWhen("is_applicable", true, "name", "address_lines", "authorized_representative_srn")

	manufacturer := schema.Object(
		schema.Prop("company_name", schema.Text().WithDefault("CooperSurgical, Inc.").Widget(widgets.Text)),
		schema.Prop("address_lines", lines().Widget(widgets.Textarea).Label("Manufacturer Address (lines)")),
		schema.Prop("manufacturer_srn", schema.String().
			WithPattern(`^[A-Z]{2}-MF-\d{10,}$`).
			WithDefault("US-MF-000002607").
			Widget(widgets.Text).
			Help("Format: US-MF-##########")),
		schema.Prop("authorized_representative", authorizedRepresentative),
	).Require("company_name", "address_lines", "manufacturer_srn", "authorized_representative")

	notifiedBody := schema.Object(
		schema.Prop("name", schema.Text().WithDefault("BSI Group The Netherlands B.V.").Widget(widgets.Text)),
		schema.Prop("number", schema.String().
			WithPattern(`^\d{4}$`).
			WithDefault("2797").
			Widget(widgets.Text).
			Help("4-digit NB number")),
	).Require("name", "number")

	regulatory := schema.Object(
		schema.Prop("certificate_number", schema.Text().Widget(widgets.Text)),
		schema.Prop("date_of_issue", date().Widget(widgets.Date)),
		schema.Prop("notified_body", notifiedBody),
		schema.Prop("psur_available_within_3_working_days", flag(true).Widget(widgets.Checkbox)),
	).Require("certificate_number", "date_of_issue", "notified_body", "psur_available_within_3_working_days")

	// A complete period must carry a well-formed end date.
	period := schema.Object(
		schema.Prop("start_date", date().Widget(widgets.Date)),
		schema.Prop("end_date", date().Widget(widgets.Date)),
	).Require("start_date", "end_date").
		When(
			&schema.Schema{Required: []string{"start_date", "end_date"}},
			&schema.Schema{Properties: schema.Properties{schema.Prop("end_date", &schema.Schema{Format: "date"})}},
		)

	document := schema.Object(
		schema.Prop("data_collection_period", period),
		schema.Prop("psur_cadence", selectEnum("", FrequencyAnnually, FrequencyEveryTwoYears)),
	).Require("data_collection_period", "psur_cadence")

	return schema.Object(
		schema.Prop("manufacturer_information", manufacturer),
		schema.Prop("regulatory_information", regulatory),
		schema.Prop("document_information", document),
	).Require("manufacturer_information", "regulatory_information", "document_information")
}
