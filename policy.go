/* ============================================================= *\
   policy.go

   Commercial peering policy. Each neighbor has a fixed
   relationship; the relationship pair of the ingress and egress
   links decides both data forwarding and announcement export.
\* ============================================================= */

package main

import (
    "fmt"
    "errors")

/**
 * Neighbor relationships.
 * 0: customer
 * 1: peer
 * 2: provider
 * Unknown is superior to all three and never matches a policy rule.
 */
const (
    Customer = iota
    Peer
    Provider
    Unknown
)

var err_bad_relation = errors.New ("bad relation")

func parse_relation (s string) (int, error) {
    switch s {
        case "cust": return Customer, nil
        case "peer": return Peer, nil
        case "prov": return Provider, nil
    }
    return Unknown, fmt.Errorf ("%w: '%s'", err_bad_relation, s)
}

func relation_string (relation int) string {
    switch relation {
        case Customer: return "cust"
        case Peer: return "peer"
        case Provider: return "prov"
    }
    return "unknown"
}

/**
 * A candidate route is forwardable iff the ingress/egress
 * relationship pair is not peer-peer, peer-prov or prov-peer.
 * Traffic to or from a customer always goes through.
 */
func forwardable (src_rel, dst_rel int) bool {
    if src_rel == Peer && dst_rel == Peer {
        return false
    }
    if src_rel == Peer && dst_rel == Provider {
        return false
    }
    if src_rel == Provider && dst_rel == Peer {
        return false
    }
    return true
}

/**
 * Announcement export rule: an update or revoke received from a
 * customer is re-announced to all other neighbors; one received
 * from a peer or a provider only to customers. The source neighbor
 * itself is never included (the caller skips it).
 */
func announce_to (src_rel, dst_rel int) bool {
    if src_rel == Customer {
        return true
    }
    return dst_rel == Customer
}
