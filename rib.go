/* ============================================================= *\
   rib.go

   The routing information base: the 'raw' set of routes exactly
   as learned (arrival order, source of truth for rebuilds) and
   the 'fib', the aggregated view used for all lookups.
\* ============================================================= */

package main

/**
 * A route learned from a neighbor. The stored as_path is kept as
 * received: the own-ASN prepend happens on outgoing announcements
 * only.
 */
type Rib_entry struct {
    prefix Prefix;
    peer string; // The neighbor that announced the route.
    localpref int;
    self_origin bool;
    as_path []int;
    origin int;
}

func (entry *Rib_entry) String () string {
    return entry.prefix.String () + " via " + entry.peer
}

// A processed withdrawal: the announcing peer and the prefixes it revoked.
type Revocation_record struct {
    peer string;
    prefixes []Prefix
}

// An update as received, kept for the run history.
type Update_record struct {
    peer string;
    body Update_body
}

type Rib struct {
    raw []*Rib_entry; // Routes exactly as learned, in arrival order.
    fib []*Rib_entry; // Aggregated view, rebuilt after every update and revoke.
    updates []Update_record;
    withdrawals []Revocation_record;
}

func new_rib () *Rib {
    return &Rib{}
}

func (rib *Rib) insert (entry *Rib_entry) {
    rib.raw = append (rib.raw, entry)
}

/**
 * Deletes every entry of 'raw' announced by 'peer' for exactly
 * (network, netmask). Exact match only: entries contained within a
 * larger aggregate are left alone. Returns the number of entries
 * deleted.
 */
func (rib *Rib) remove (peer string, prefix Prefix) int {
    kept := rib.raw[:0]
    removed := 0
    for _, entry := range rib.raw {
        if entry.peer == peer && entry.prefix == prefix {
            removed++
            continue
        }
        kept = append (kept, entry)
    }
    rib.raw = kept
    return removed
}

/**
 * Returns every fib entry whose prefix contains 'addr', in fib order.
 */
func (rib *Rib) lookup (addr uint32) []*Rib_entry {
    var candidates []*Rib_entry
    for _, entry := range rib.fib {
        if entry.prefix.contains (addr) {
            candidates = append (candidates, entry)
        }
    }
    return candidates
}

/**
 * Snapshot of the fib projected to (network, netmask, peer), in fib order.
 */
func (rib *Rib) dump () []Table_entry {
    entries := make ([]Table_entry, 0, len (rib.fib))
    for _, entry := range rib.fib {
        entries = append (entries, Table_entry{
            Network: ip_string (entry.prefix.network),
            Netmask: entry.prefix.netmask_string (),
            Peer: entry.peer,
        })
    }
    return entries
}

/**
 * True iff the two routes carry identical attributes (aggregation
 * rule condition 1): same peer, localpref, selfOrigin, ASPath and
 * origin.
 */
func attributes_equal (a, b *Rib_entry) bool {
    if a.peer != b.peer || a.localpref != b.localpref ||
        a.self_origin != b.self_origin || a.origin != b.origin {
        return false
    }
    if len (a.as_path) != len (b.as_path) {
        return false
    }
    for i, as := range a.as_path {
        if b.as_path[i] != as {
            return false
        }
    }
    return true
}
