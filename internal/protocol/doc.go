// Package protocol owns the BITS packet contract: the packet model, the
// recursive decoder and the evaluators that fold a decoded tree.
//
// Ownership boundary:
// - packet model and type ids
// - decode (both operator framing modes) and decode limits
// - version-sum and value folds, semantic validation
//
// Bit-level reading lives in the bits subpackage.
package protocol
