package convert

import "github.com/latticelang/lattice/internal/ir"

// ExprTag pairs a normalized IR term with sub-IR collected while it
// was converted (spec §3, §4.7): Children is the union of every child
// tag's Children plus the child's own IR, as built before
// normalization. normalizeTag keeps that list unchanged, so sub-terms
// that normalization creates (for example an argument substituted
// into a body) are not in Children, and Children need not contain
// every sub-IR of the normalized tag.IR. Downstream systems (e.g. a
// content-addressed cache) enumerate Children to decide what else is
// worth hashing.
type ExprTag struct {
	IR       ir.Expr
	Children []ir.Expr

	// Key is a stable cache key for IR, populated once a tag has been
	// normalized (ir.FingerprintWithDepth under the Converter's
	// configured MaxSerializeDepth). Empty on a tag that has not yet
	// passed through normalizeTag.
	Key string
}

// childTag wraps a freshly built IR node together with the combined
// children of its sub-tags, per the §4.7 closure rule.
func childTag(node ir.Expr, subTags ...ExprTag) ExprTag {
	children := make([]ir.Expr, 0, len(subTags))
	for _, t := range subTags {
		children = append(children, t.IR)
		children = append(children, t.Children...)
	}
	return ExprTag{IR: node, Children: children}
}
