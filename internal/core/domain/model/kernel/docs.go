// Package kernel holds the primitives shared by every aggregate: identifiers
// and the authenticated actor (id, role, optional shop binding) that each
// lifecycle operation receives explicitly.
package kernel
