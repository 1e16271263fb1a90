// Package types defines the record model, the Source and Gateway
// interfaces, the session context, and the standard errors shared by the
// erpdesk list engine, its data sources, and its renderers.
package types
