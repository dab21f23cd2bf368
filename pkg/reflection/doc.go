// Package reflection provides generic helpers built on the reflect package:
// type compatibility checks, type collections (assemblies) loadable from Go
// plugins, dotted property paths, compiled accessors, best-effort shallow
// copies, format-driven value parsing, method invocation by name and HTML
// property dumps.
//
// # Properties and ancestors
//
// A property is an exported struct field. Paths such as "Order.Customer.Name"
// are split on "." and resolved one segment at a time; pointers are followed
// and promoted fields of embedded structs resolve like declared ones.
//
// The ancestor of a type is the type it points to (for pointers) or the type
// of its first embedded field (for structs). IsTypeOf and IsOfInterface walk
// this chain iteratively until it ends.
//
// # Failure policy
//
// Lookups report failure through their result: nil, false or an empty slice.
// Only arguments that can never be valid (a nil object passed to IsOfType, an
// empty path passed to Getter) produce errors. ShallowCopy never fails as a
// whole; fields it cannot copy are listed in the returned CopyReport.
//
// # Usage
//
//	total := reflection.PropertyValue(order, "Invoice.Total")
//
//	getName, err := reflection.Getter[Order, string]("Customer.Name")
//	if err != nil {
//	    return err
//	}
//	name := getName(order)
//
//	clone, report := reflection.ShallowCopyOf(order, true)
//	for _, skipped := range report.Skipped() {
//	    fmt.Println(skipped.Name, skipped.Reason)
//	}
//
//	n, ok := reflection.ParseAs[int]("42", "")
package reflection
