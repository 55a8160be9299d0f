// Package label contains the shipping-label bounded context.
// This context is responsible for the deterministic layout computation that
// every rendering backend (HTML print documents, single-order PDFs, bulk
// PDFs) consumes. The LayoutModel produced here is the single source of
// truth for geometry, typography, and pre-formatted content; renderers must
// not invent their own numbers.
package label
