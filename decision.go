/* ============================================================= *\
   decision.go

   The BGP decision process: candidate routes for a destination
   are run through the tie-break ladder, each rung retaining all
   candidates tying on the rung's best value. Longest-prefix match
   is NOT part of the ladder: it is applied after policy filtering,
   because policy may eliminate otherwise-best candidates and force
   re-selection among the remainder.
\* ============================================================= */

package main

/**
 * A ladder rung: returns the subset of candidates tying on the
 * rung's best value.
 */
type tie_break_fn func ([]*Rib_entry) []*Rib_entry

var decision_ladder []tie_break_fn = []tie_break_fn {
    highest_localpref,
    prefer_self_origin,
    shortest_as_path,
    best_origin,
    lowest_peer_address,
}

/**
 * Applies the ladder in order. Stops early once a single candidate
 * remains.
 */
func select_routes (candidates []*Rib_entry) []*Rib_entry {
    for _, tie_break := range decision_ladder {
        if len (candidates) <= 1 {
            break
        }
        candidates = tie_break (candidates)
    }
    return candidates
}

/**
 * Keeps every entry comparing equal to the best one under 'compare'
 * (negative means the first argument is strictly better).
 */
func retain_best (entries []*Rib_entry, compare func (a, b *Rib_entry) int) []*Rib_entry {
    best := entries[0]
    for _, entry := range entries[1:] {
        if compare (entry, best) < 0 {
            best = entry
        }
    }
    kept := make ([]*Rib_entry, 0, len (entries))
    for _, entry := range entries {
        if compare (entry, best) == 0 {
            kept = append (kept, entry)
        }
    }
    return kept
}

/* --------------------------------------- *\
 *             The rungs
\* --------------------------------------- */

func highest_localpref (entries []*Rib_entry) []*Rib_entry {
    return retain_best (entries, func (a, b *Rib_entry) int {
        return b.localpref - a.localpref
    })
}

func prefer_self_origin (entries []*Rib_entry) []*Rib_entry {
    return retain_best (entries, func (a, b *Rib_entry) int {
        return bool_to_int (b.self_origin) - bool_to_int (a.self_origin)
    })
}

func shortest_as_path (entries []*Rib_entry) []*Rib_entry {
    return retain_best (entries, func (a, b *Rib_entry) int {
        return len (a.as_path) - len (b.as_path)
    })
}

func best_origin (entries []*Rib_entry) []*Rib_entry {
    return retain_best (entries, func (a, b *Rib_entry) int {
        return a.origin - b.origin
    })
}

/**
 * Lowest neighbor address, compared numerically on the unsigned
 * 32-bit value of the dotted quad. Neighbor addresses are not
 * checked at startup: one that does not parse as a dotted quad
 * compares as 0.
 */
func lowest_peer_address (entries []*Rib_entry) []*Rib_entry {
    return retain_best (entries, func (a, b *Rib_entry) int {
        ip_a, _ := parse_ip (a.peer)
        ip_b, _ := parse_ip (b.peer)
        return compare_uint32 (ip_a, ip_b)
    })
}

/**
 * The final rung, applied after policy filtering: keep the
 * candidates with the longest mask. At most one candidate survives
 * (identical duplicates excepted).
 */
func longest_prefix_match (entries []*Rib_entry) []*Rib_entry {
    return retain_best (entries, func (a, b *Rib_entry) int {
        return b.prefix.length () - a.prefix.length ()
    })
}
