package main

import (
    "testing"
    "errors")

func must_prefix (t *testing.T, network, netmask string) Prefix {
    t.Helper ()
    p, err := new_prefix (network, netmask)
    if err != nil {
        t.Fatalf ("new_prefix (%s, %s): %v", network, netmask, err)
    }
    return p
}

func TestParseIp (t *testing.T) {
    ip, err := parse_ip ("10.0.0.1")
    if err != nil || ip != 0x0A000001 {
        t.Fatalf ("parse_ip 10.0.0.1: got %x, %v", ip, err)
    }

    for _, bad := range []string{"256.0.0.1", "10.0.0", "abc", ""} {
        if _, err := parse_ip (bad); !errors.Is (err, err_malformed_prefix) {
            t.Fatalf ("parse_ip accepted '%s'", bad)
        }
    }
}

func TestParseMask (t *testing.T) {
    m, err := parse_mask ("255.255.254.0")
    if err != nil || mask_len (m) != 23 {
        t.Fatalf ("parse_mask 255.255.254.0: got %x, %v", m, err)
    }
    if m, err = parse_mask ("0.0.0.0"); err != nil || mask_len (m) != 0 {
        t.Fatalf ("parse_mask 0.0.0.0: got %x, %v", m, err)
    }
    if m, err = parse_mask ("255.255.255.255"); err != nil || mask_len (m) != 32 {
        t.Fatalf ("parse_mask 255.255.255.255: got %x, %v", m, err)
    }

    /* --- Non-contiguous masks are malformed --- */
    for _, bad := range []string{"255.0.255.0", "0.255.0.0", "255.255.255.1"} {
        if _, err := parse_mask (bad); !errors.Is (err, err_malformed_prefix) {
            t.Fatalf ("parse_mask accepted non-contiguous '%s'", bad)
        }
    }
}

func TestNewPrefixClearsHostBits (t *testing.T) {
    p := must_prefix (t, "10.0.0.5", "255.255.255.0")
    if p.String () != "10.0.0.0/24" {
        t.Fatalf ("host bits not cleared: %s", p.String ())
    }
    if p.network & ^p.netmask != 0 {
        t.Fatalf ("prefix invariant violated")
    }
}

func TestContains (t *testing.T) {
    p := must_prefix (t, "10.1.0.0", "255.255.0.0")
    in, _ := parse_ip ("10.1.2.3")
    out, _ := parse_ip ("10.2.0.1")
    if !p.contains (in) {
        t.Fatalf ("10.1.0.0/16 should contain 10.1.2.3")
    }
    if p.contains (out) {
        t.Fatalf ("10.1.0.0/16 should not contain 10.2.0.1")
    }

    everything := must_prefix (t, "0.0.0.0", "0.0.0.0")
    if !everything.contains (out) {
        t.Fatalf ("0.0.0.0/0 contains every address")
    }
}

func TestCommonPrefixLen (t *testing.T) {
    a, _ := parse_ip ("10.0.0.0")
    b, _ := parse_ip ("11.0.0.0")
    if l := common_prefix_len (a, b); l != 7 {
        t.Fatalf ("common_prefix_len (10/8, 11/8) = %d, want 7", l)
    }
    if l := common_prefix_len (a, a); l != 32 {
        t.Fatalf ("common_prefix_len of an address with itself = %d, want 32", l)
    }
}

func TestMergeable (t *testing.T) {
    p0 := must_prefix (t, "192.168.0.0", "255.255.255.0")
    p1 := must_prefix (t, "192.168.1.0", "255.255.255.0")
    p2 := must_prefix (t, "192.168.2.0", "255.255.255.0")

    if !mergeable (p0, p1) || !mergeable (p1, p0) {
        t.Fatalf ("192.168.0.0/24 and 192.168.1.0/24 should be mergeable")
    }
    if mergeable (p1, p2) {
        t.Fatalf ("192.168.1.0/24 and 192.168.2.0/24 are not buddies")
    }

    merged := merge (p1, p0)
    if merged.String () != "192.168.0.0/23" {
        t.Fatalf ("merged prefix is %s, want 192.168.0.0/23", merged.String ())
    }

    /* --- Differing masks never merge, nor does the default route --- */
    wider := must_prefix (t, "192.168.0.0", "255.255.254.0")
    if mergeable (p0, wider) {
        t.Fatalf ("prefixes of different lengths merged")
    }
    def := must_prefix (t, "0.0.0.0", "0.0.0.0")
    if mergeable (def, def) {
        t.Fatalf ("a /0 cannot be merged")
    }
}

func TestBinaryString (t *testing.T) {
    p := must_prefix (t, "1.0.4.0", "255.255.252.0")
    if p.binary_string () != "0000000100000000000001" {
        t.Fatalf ("binary_string: got %s", p.binary_string ())
    }
    back := prefix_from_binary (p.binary_string ())
    if back != p {
        t.Fatalf ("prefix_from_binary round trip: got %s", back.String ())
    }
}

func TestRouterSideAddress (t *testing.T) {
    if r := router_side_address ("192.168.2.2"); r != "192.168.2.1" {
        t.Fatalf ("router_side_address: got %s", r)
    }
}
