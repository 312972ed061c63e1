/* ============================================================= *\
   router.go

   The route server proper: demultiplexes inbound messages by
   type, maintains the RIB through the aggregator, runs the
   decision process on data packets, and re-announces updates and
   withdrawals to the policy-permitted subset of neighbors.
\* ============================================================= */

package main

import (
    "log"
    "encoding/json")

type Neighbor struct {
    address string; // Socket path, also the neighbor identifier.
    relation int;
    fd int;
    closed bool;
}

type Router struct {
    asn int;
    neighbors map[string]*Neighbor;
    order []string; // Neighbor addresses in startup order, for deterministic announcements.
    rib *Rib;
    send func (*Neighbor, []byte) error; // Socket write, replaceable in tests.
}

func new_router (asn int, neighbors []*Neighbor) *Router {
    router := &Router{
        asn: asn,
        neighbors: make (map[string]*Neighbor, len (neighbors)),
        rib: new_rib (),
        send: send_datagram,
    }
    for _, neighbor := range neighbors {
        router.neighbors[neighbor.address] = neighbor
        router.order = append (router.order, neighbor.address)
    }
    return router
}

/**
 * Entry point for one datagram read from the neighbor 'srcif'.
 * Malformed messages are logged and dropped; everything else is
 * driven synchronously to completion.
 */
func (router *Router) handle_message (srcif string, data []byte) {
    if _, known := router.neighbors[srcif]; !known {
        log.Print ("[handle_message]: " + err_unknown_neighbor.Error () + ": " + srcif)
        return
    }
    message, err := parse_message (data)
    if err != nil {
        log.Print ("[handle_message]: " + err.Error ())
        return
    }

    switch message.Type {
        case msg_update:
            router.handle_update (srcif, message)
        case msg_revoke:
            router.handle_revoke (srcif, message)
        case msg_data:
            router.handle_data (srcif, message, data)
        case msg_dump:
            router.handle_dump (srcif, message)
        case msg_no_route:
            // Terminal: dropped.
        case msg_table:
            // Only ever sent by us: dropped.
    }
}

/* --------------------------------------- *\
 *          Update and withdrawal
\* --------------------------------------- */

func (router *Router) handle_update (srcif string, message *Message) {
    var body Update_body
    if err := json.Unmarshal (message.Msg, &body); err != nil {
        log.Print ("[handle_update]: " + err_malformed_message.Error () + ": " + err.Error ())
        return
    }
    prefix, err := new_prefix (body.Network, body.Netmask)
    if err != nil {
        log.Print ("[handle_update]: " + err.Error ())
        return
    }
    origin, err := parse_origin (body.Origin)
    if err != nil {
        log.Print ("[handle_update]: " + err.Error ())
        return
    }

    /* --- Record the route as received: the ASN prepend is outgoing-only --- */
    router.rib.insert (&Rib_entry{
        prefix: prefix,
        peer: srcif,
        localpref: body.Localpref,
        self_origin: body.SelfOrigin,
        as_path: body.ASPath,
        origin: origin,
    })
    router.rib.updates = append (router.rib.updates, Update_record{peer: srcif, body: body})

    router.rib.reaggregate ()
    router.announce (srcif, message)
}

func (router *Router) handle_revoke (srcif string, message *Message) {
    var revocations []Revocation
    if err := json.Unmarshal (message.Msg, &revocations); err != nil {
        log.Print ("[handle_revoke]: " + err_malformed_message.Error () + ": " + err.Error ())
        return
    }

    /* --- Validate every prefix before touching the RIB --- */
    prefixes := make ([]Prefix, 0, len (revocations))
    for _, revocation := range revocations {
        prefix, err := new_prefix (revocation.Network, revocation.Netmask)
        if err != nil {
            log.Print ("[handle_revoke]: " + err.Error ())
            return
        }
        prefixes = append (prefixes, prefix)
    }

    router.rib.withdrawals = append (router.rib.withdrawals, Revocation_record{peer: srcif, prefixes: prefixes})
    for _, prefix := range prefixes {
        router.rib.remove (srcif, prefix)
    }

    router.rib.reaggregate ()
    router.announce (srcif, message)
}

/**
 * Re-announces an update or revoke to every neighbor the export
 * rule permits. Each outgoing copy has 'src' set to the router-side
 * address of the link and 'dst' set to the neighbor; update copies
 * additionally get our own AS number prepended to the ASPath. The
 * revoke body goes out exactly as received.
 */
func (router *Router) announce (source string, message *Message) {
    source_rel := router.neighbors[source].relation

    body := message.Msg
    if message.Type == msg_update {
        body = router.prepend_own_asn (message.Msg)
    }

    for _, address := range router.order {
        neighbor := router.neighbors[address]
        if address == source || neighbor.closed {
            continue
        }
        if !announce_to (source_rel, neighbor.relation) {
            continue
        }
        copy := Message{
            Src: router_side_address (address),
            Dst: address,
            Type: message.Type,
            Msg: body,
        }
        router.send_message (neighbor, &copy)
    }
}

func (router *Router) prepend_own_asn (raw json.RawMessage) json.RawMessage {
    var body Update_body
    json.Unmarshal (raw, &body) // Already decoded once by handle_update.
    body.ASPath = append ([]int{router.asn}, body.ASPath...)
    out, _ := json.Marshal (body)
    return out
}

/* --------------------------------------- *\
 *             Data forwarding
\* --------------------------------------- */

/**
 * lookup -> decision ladder -> policy filter -> longest prefix.
 * If a route survives, the data message is forwarded verbatim to
 * its peer; otherwise a 'no route' reply goes back to the sender.
 */
func (router *Router) handle_data (srcif string, message *Message, data []byte) {
    addr, err := parse_ip (message.Dst)
    if err != nil {
        log.Print ("[handle_data]: " + err.Error ())
        return
    }

    best := router.best_route (srcif, addr)
    if best == nil {
        router.send_no_route (srcif, message)
        return
    }
    neighbor := router.neighbors[best.peer]
    if err := router.send (neighbor, data); err != nil {
        log.Fatal ("[handle_data]: transport failure towards " + neighbor.address + ": " + err.Error ())
    }
}

func (router *Router) best_route (srcif string, addr uint32) *Rib_entry {
    candidates := router.rib.lookup (addr)
    if len (candidates) == 0 {
        return nil
    }
    candidates = select_routes (candidates)
    candidates = router.filter_forwardable (srcif, candidates)
    if len (candidates) == 0 {
        return nil
    }
    return longest_prefix_match (candidates)[0]
}

func (router *Router) filter_forwardable (srcif string, candidates []*Rib_entry) []*Rib_entry {
    src_rel := router.neighbors[srcif].relation
    kept := make ([]*Rib_entry, 0, len (candidates))
    for _, candidate := range candidates {
        if forwardable (src_rel, router.neighbors[candidate.peer].relation) {
            kept = append (kept, candidate)
        }
    }
    return kept
}

func (router *Router) send_no_route (srcif string, message *Message) {
    reply := Message{
        Src: router_side_address (srcif),
        Dst: message.Src,
        Type: msg_no_route,
        Msg: json.RawMessage ("{}"),
    }
    router.send_message (router.neighbors[srcif], &reply)
}

/* --------------------------------------- *\
 *             Table dumps
\* --------------------------------------- */

func (router *Router) handle_dump (srcif string, message *Message) {
    entries, _ := json.Marshal (router.rib.dump ())
    reply := Message{
        Src: router_side_address (srcif),
        Dst: message.Src,
        Type: msg_table,
        Msg: entries,
    }
    router.send_message (router.neighbors[srcif], &reply)
}

// A write failure on a neighbor socket terminates the process.
func (router *Router) send_message (neighbor *Neighbor, message *Message) {
    data, err := json.Marshal (message)
    if err != nil {
        log.Fatal ("[send_message]: " + err.Error ())
    }
    if err := router.send (neighbor, data); err != nil {
        log.Fatal ("[send_message]: transport failure towards " + neighbor.address + ": " + err.Error ())
    }
}
