// Package schema provides the Draft 2020-12 building blocks used to declare
// the PSUR form: typed leaf constructors, closed objects with declaration
// ordered properties, the table factory, conditional requirement rules and
// tagged-union variants. Check verifies a finished tree before it leaves the
// builder so that dangling references or rules naming undeclared properties
// surface as *ConstructionError values instead of reaching a renderer.
package schema
