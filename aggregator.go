/* ============================================================= *\
   aggregator.go

   Coalesces adjacent, attribute-identical routes to fixpoint.
   Disaggregation on withdrawal is obtained by rebuilding the fib
   from the raw set after the removal has been applied, never by
   splitting aggregates in place.
\* ============================================================= */

package main

import ("log")

/**
 * Rebuilds the fib from the raw set by repeated single-pass
 * coalescing until a pass makes no change. A single pass cannot
 * detect that two post-merge results are themselves mergeable, so
 * the fixpoint guarantees maximal aggregation regardless of
 * arrival order.
 *
 * Stored raw entries are never mutated: merged entries are fresh
 * copies, and a surviving aggregate keeps the position of its
 * first constituent.
 */
func (rib *Rib) reaggregate () {
    fib := make ([]*Rib_entry, 0, len (rib.raw))
    for _, entry := range rib.raw {
        shallow := *entry
        fib = append (fib, &shallow)
    }

    changed := true
    for changed {
        fib, changed = coalesce_pass (fib)
    }
    rib.fib = fib

    audit_aggregation (rib.fib)
}

/**
 * One coalescing pass: merges every pair found mergeable during the
 * scan. The merged route inherits the shared attributes and takes
 * the merged prefix.
 */
func coalesce_pass (fib []*Rib_entry) ([]*Rib_entry, bool) {
    changed := false
    for i := 0; i < len (fib); i++ {
        for j := i + 1; j < len (fib); j++ {
            if !attributes_equal (fib[i], fib[j]) || !mergeable (fib[i].prefix, fib[j].prefix) {
                continue
            }
            merged := *fib[i]
            merged.prefix = merge (fib[i].prefix, fib[j].prefix)
            fib[i] = &merged
            fib = append (fib[:j], fib[j+1:]...)
            j-- // The slot now holds the next entry.
            changed = true
        }
    }
    return fib, changed
}

/**
 * Fixpoint audit: after a rebuild, no two fib entries may still be
 * mergeable. Violations are logged, never raised; the forwarding
 * path does not depend on this check.
 */
func audit_aggregation (fib []*Rib_entry) {
    for i := 0; i < len (fib); i++ {
        for j := i + 1; j < len (fib); j++ {
            if attributes_equal (fib[i], fib[j]) && mergeable (fib[i].prefix, fib[j].prefix) {
                log.Print ("[audit_aggregation]: fib not at fixpoint: " +
                    fib[i].String () + " and " + fib[j].String ())
            }
        }
    }
}
