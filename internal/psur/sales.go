package psur

import (
	"github.com/goliatone/go-psurgen/pkg/schema"
)

// salesAndPopulationExposure declares section C.
func (b *Builder) salesAndPopulationExposure() *schema.Schema {
	path := sectionPointer(SectionSales)

	criteria := schema.Object(
		schema.Prop("devices_placed_on_market_or_put_into_service", flag(false)),
		schema.Prop("units_distributed_from_doc_or_ec_eu_mark_approval_to_end_date", flag(false)),
		schema.Prop("units_distributed_within_each_time_period", flag(false)),
		schema.Prop("episodes_of_use_for_reusable_devices", flag(false)),
		schema.Prop("active_installed_base", flag(false)),
		schema.Prop("units_implanted", flag(false)),
		schema.Prop("other", schema.Object(
			schema.Prop("selected", flag(false)),
			schema.Prop("rationale", textarea()),
		).Require("selected", "rationale")),
	)

	methodology := schema.Object(
		schema.Prop("criteria_used_for_sales_data", criteria),
		schema.Prop("market_history", textarea()),
	).Require("criteria_used_for_sales_data", "market_history")

	salesPath := path + "/properties/table_1_sales_by_region"
	annualRows := b.table(salesPath+"/properties/annual_format/properties/rows",
		[]string{"region", "preceding_12_month_periods", "current_data_collection_period"},
		[]schema.Property{
			schema.Prop("region", schema.String()),
			schema.Prop("preceding_12_month_periods", schema.Array(schema.Nullable(schema.TypeNumber)).WithLength(3)),
			schema.Prop("current_data_collection_period", schema.Nullable(schema.TypeNumber)),
			schema.Prop("percent_of_global_sales", percent()),
		},
	)
	biennialRows := b.table(salesPath+"/properties/every_two_years_format/properties/rows",
		[]string{"region", "period_values_12_month_each", "total_24_month"},
		[]schema.Property{
			schema.Prop("region", schema.String()),
			schema.Prop("period_values_12_month_each", schema.Array(schema.Nullable(schema.TypeNumber)).WithLength(4)),
			schema.Prop("total_24_month", schema.Nullable(schema.TypeNumber)),
			schema.Prop("percent_of_global_sales_24_month", percent()),
		},
	)

	salesByRegion := b.frequencyVariant(salesPath,
		schema.Object(
			schema.Prop("date_ranges", dateRanges(4)),
			schema.Prop("rows", annualRows),
		),
		schema.Object(
			schema.Prop("date_ranges", dateRanges(4)),
			schema.Prop("rows", biennialRows),
		),
	)

	analysis := schema.Object(
		schema.Prop("sales_trend_over_time_chart_reference", schema.String()),
		schema.Prop("narrative_analysis", textarea()),
	).Require("narrative_analysis")

	population := schema.Object(
		schema.Prop("usage_frequency", schema.Object(
			schema.Prop("single_use_per_patient", choice(DefTriState)),
			schema.Prop("multiple_uses_per_patient", choice(DefTriState)),
			schema.Prop("average_uses_per_patient", rate()),
		).Require("single_use_per_patient", "multiple_uses_per_patient")),
		schema.Prop("estimated_size_of_patient_population_exposed", textarea()),
		schema.Prop("characteristics_of_patient_population_exposed", textarea()),
	).Require("usage_frequency", "estimated_size_of_patient_population_exposed", "characteristics_of_patient_population_exposed")

	return schema.Object(
		schema.Prop("sales_methodology", methodology),
		schema.Prop("table_1_sales_by_region", salesByRegion),
		schema.Prop("sales_data_analysis", analysis),
		schema.Prop("size_and_characteristics_of_population_using_device", population),
	).Require("sales_methodology", "table_1_sales_by_region", "sales_data_analysis", "size_and_characteristics_of_population_using_device")
}
