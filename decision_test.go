package main

import ("testing")

func candidate (t *testing.T, network, netmask, peer string, localpref int, self_origin bool, as_path []int, origin int) *Rib_entry {
    t.Helper ()
    return &Rib_entry{
        prefix: must_prefix (t, network, netmask),
        peer: peer,
        localpref: localpref,
        self_origin: self_origin,
        as_path: as_path,
        origin: origin,
    }
}

/**
 * Two candidates tie on localpref; the shorter AS path wins.
 */
func TestLadderShortestPath (t *testing.T) {
    a := candidate (t, "10.0.0.0", "255.255.255.0", "1.2.3.2", 100, false, []int{1, 2}, Origin_igp)
    b := candidate (t, "10.0.0.0", "255.255.255.0", "4.5.6.2", 100, false, []int{3}, Origin_igp)

    selected := select_routes ([]*Rib_entry{a, b})
    if len (selected) != 1 || selected[0] != b {
        t.Fatalf ("shortest AS path did not win")
    }
}

func TestLadderLocalpref (t *testing.T) {
    a := candidate (t, "10.0.0.0", "255.255.255.0", "1.2.3.2", 50, false, []int{1}, Origin_igp)
    b := candidate (t, "10.0.0.0", "255.255.255.0", "4.5.6.2", 100, false, []int{1, 2, 3}, Origin_unk)

    selected := select_routes ([]*Rib_entry{a, b})
    if len (selected) != 1 || selected[0] != b {
        t.Fatalf ("highest localpref did not win")
    }
}

func TestLadderSelfOrigin (t *testing.T) {
    a := candidate (t, "10.0.0.0", "255.255.255.0", "1.2.3.2", 100, true, []int{1, 2}, Origin_igp)
    b := candidate (t, "10.0.0.0", "255.255.255.0", "4.5.6.2", 100, false, []int{1}, Origin_igp)

    selected := select_routes ([]*Rib_entry{a, b})
    if len (selected) != 1 || selected[0] != a {
        t.Fatalf ("self-originated route did not win")
    }
}

func TestLadderOrigin (t *testing.T) {
    igp := candidate (t, "10.0.0.0", "255.255.255.0", "1.2.3.2", 100, false, []int{1}, Origin_igp)
    egp := candidate (t, "10.0.0.0", "255.255.255.0", "4.5.6.2", 100, false, []int{1}, Origin_egp)
    unk := candidate (t, "10.0.0.0", "255.255.255.0", "7.8.9.2", 100, false, []int{1}, Origin_unk)

    selected := select_routes ([]*Rib_entry{unk, egp, igp})
    if len (selected) != 1 || selected[0] != igp {
        t.Fatalf ("IGP origin did not win")
    }

    selected = select_routes ([]*Rib_entry{unk, egp})
    if len (selected) != 1 || selected[0] != egp {
        t.Fatalf ("EGP origin did not beat UNK")
    }
}

func TestLadderLowestPeerAddress (t *testing.T) {
    a := candidate (t, "10.0.0.0", "255.255.255.0", "1.2.3.10", 100, false, []int{1}, Origin_igp)
    b := candidate (t, "10.0.0.0", "255.255.255.0", "1.2.3.9", 100, false, []int{1}, Origin_igp)

    selected := select_routes ([]*Rib_entry{a, b})
    if len (selected) != 1 || selected[0] != b {
        t.Fatalf ("lowest peer address did not win")
    }
}

/**
 * A rung retains every candidate tying on its best value for the
 * later rungs to discriminate.
 */
func TestLadderKeepsTies (t *testing.T) {
    a := candidate (t, "10.0.0.0", "255.0.0.0", "1.2.3.2", 100, false, []int{1}, Origin_igp)
    b := candidate (t, "10.0.0.0", "255.255.0.0", "1.2.3.2", 100, false, []int{1}, Origin_igp)

    /* --- Same peer, so even rung 5 cannot separate them --- */
    selected := select_routes ([]*Rib_entry{a, b})
    if len (selected) != 2 {
        t.Fatalf ("tying candidates dropped: %d left", len (selected))
    }

    /* --- Longest prefix separates them after policy --- */
    best := longest_prefix_match (selected)
    if len (best) != 1 || best[0] != b {
        t.Fatalf ("longest prefix match did not pick the /16")
    }
}

/**
 * Longest prefix is applied after policy filtering: with both
 * routes policy-permitted, the most specific containing prefix
 * wins.
 */
func TestBestRouteLongestPrefix (t *testing.T) {
    x := &Neighbor{address: "4.5.6.2", relation: Customer}
    y := &Neighbor{address: "1.2.3.2", relation: Customer}
    src := &Neighbor{address: "7.8.9.2", relation: Customer}
    router := new_router (7, []*Neighbor{x, y, src})

    via_x := candidate (t, "10.0.0.0", "255.0.0.0", x.address, 100, false, []int{1}, Origin_igp)
    via_y := candidate (t, "10.1.0.0", "255.255.0.0", y.address, 100, false, []int{1}, Origin_igp)
    router.rib.fib = []*Rib_entry{via_x, via_y}

    addr, _ := parse_ip ("10.1.2.3")
    best := router.best_route (src.address, addr)
    if best != via_y {
        t.Fatalf ("longest prefix match picked %v", best)
    }
}

/**
 * Policy runs after the ladder: the ladder settles on the provider
 * route (lowest peer address), and a peer-sourced packet is then
 * left with nothing rather than falling back to a route the ladder
 * already discarded.
 */
func TestBestRoutePolicyAfterLadder (t *testing.T) {
    prov := &Neighbor{address: "1.2.3.2", relation: Provider}
    cust := &Neighbor{address: "4.5.6.2", relation: Customer}
    peer := &Neighbor{address: "7.8.9.2", relation: Peer}
    router := new_router (7, []*Neighbor{prov, cust, peer})

    via_prov := candidate (t, "10.1.0.0", "255.255.0.0", prov.address, 100, false, []int{1}, Origin_igp)
    via_cust := candidate (t, "10.0.0.0", "255.0.0.0", cust.address, 100, false, []int{1}, Origin_igp)
    router.rib.fib = []*Rib_entry{via_prov, via_cust}

    addr, _ := parse_ip ("10.1.2.3")

    /* --- From a customer, the provider route (lowest peer address) wins --- */
    if best := router.best_route (cust.address, addr); best != via_prov {
        t.Fatalf ("from cust: got %v", best)
    }

    /* --- From a peer, the ladder's pick is not forwardable: unreachable --- */
    if best := router.best_route (peer.address, addr); best != nil {
        t.Fatalf ("from peer: got %v, want no route", best)
    }
}

func TestBestRouteUnreachable (t *testing.T) {
    peer := &Neighbor{address: "1.2.3.2", relation: Peer}
    prov := &Neighbor{address: "4.5.6.2", relation: Provider}
    router := new_router (7, []*Neighbor{peer, prov})

    addr, _ := parse_ip ("172.16.0.1")
    if best := router.best_route (peer.address, addr); best != nil {
        t.Fatalf ("empty fib produced a route")
    }

    /* --- All candidates filtered by policy --- */
    router.rib.fib = []*Rib_entry{
        candidate (t, "172.16.0.0", "255.255.0.0", prov.address, 100, false, []int{1}, Origin_igp),
    }
    if best := router.best_route (peer.address, addr); best != nil {
        t.Fatalf ("peer -> prov route escaped the policy filter")
    }
}
