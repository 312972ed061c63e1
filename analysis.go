/* ============================================================= *\
   analysis.go

   Offline processing of snapshot databases written with -db:
   - 'overlays': detect groups of more-specific fib entries that
     ride on a covering aggregate towards the same peer.
   - 'tree': print the fib prefix hierarchy.
\* ============================================================= */

package main

import (
    "log"
    "os"
    "sort"
    "strconv"
    radix "github.com/Emeline-1/radix"
    graph "github.com/Emeline-1/basic_graph"
    pool "github.com/Emeline-1/pool"
    tree "github.com/nicholascz666666/bgp-router/tree")

// --------------------------------------------------------------------------------
func analysis (args []string) {
    usage_analysis_f := func () {
        println ("Usage of analysis:")
        println ("")
        println ("  ./bgp-router analysis overlays -o <outfile> <snapshot.db> ...: detect overlay groups in the fib of each snapshot.")
        println ("  ./bgp-router analysis tree <snapshot.db>: print the fib prefix hierarchy.")
    }

    if len (args) == 0 {
        usage_analysis_f ()
        return
    }
    switch command := args[0]; command {
        case "overlays":
            analyse_overlays (handle_args_analysis (args))
        case "tree":
            if len (args) < 2 {
                println ("Missing arguments")
                return
            }
            print_fib_tree (args[1])
        case "-h":
            usage_analysis_f ()
        default:
            log.Println ("Unknown sub-command:", command)
    }
}

/* =============================================== *\
                Overlay Computation
\* =============================================== */

/**
 * Launch the multi analysis of the snapshots.
 */
func analyse_overlays (output_filename string, files []string) {
    overlays := create_safeset ()
    analyser := generate_snapshot_analyser (overlays)
    pool.Launch_pool (8, files, analyser)

    log.Print ("Writing to file")
    log.Print ("Number of overlay groups: " + strconv.Itoa (len (overlays.set)))
    overlays.write_to_file (output_filename)
}

/**
 * Input: a snapshot database holding a fib (one entry per prefix)
 * Output: the overlay groups are recorded in 'overlays', keyed by
 * "<file> <aggregate>", value the group members.
 *
 * The overlays don't have to span the aggregate exactly, they can
 * be isolated.
 */
func generate_snapshot_analyser (overlays *SafeSet) func (string) {
    return func (filename string) {
        entries := read_snapshot_fib (filename)
        if entries == nil {
            log.Print ("[analyse_overlays]: could not read " + filename)
            return
        }

        /* --- Build radix tree from the fib, recording the egress peer of each entry --- */
        t := radix.New ()
        for _, entry := range entries {
            prefix, err := new_prefix (entry.Network, entry.Netmask)
            if err != nil {
                log.Print ("[analyse_overlays]: " + err.Error ())
                continue
            }
            t.Insert (prefix.binary_string (), entry.Peer)
        }

        /* --- Walk radix tree, recording overlays (parent and direct children) --- */
        groups := create_safeset ()
        walk_fib_tree := generate_walk_fib_tree (groups)
        t.Walk_post (walk_fib_tree)

        /* --- Compute transitive closure of overlays thanks to graphs connected components --- */
        g := graph.New ()
        for aggregate, group_i := range groups.set {
            group, _ := group_i.(map[string]struct{})
            for overlay, _ := range group {
                g.Add_edge (aggregate, overlay)
            }
        }

        g.Set_iterator ()
        for g.Next_connected_component () {
            connected_component := g.Connected_component ()
            overlays.add (filename + " " + connected_component[0], connected_component[1:])
        }
    }
}

/**
 * Function performing an action during the post-order walk of a
 * radix tree.
 * - groups: key: the aggregate prefix
 *           value: all its overlays.
 */
func generate_walk_fib_tree (groups *SafeSet) radix.WalkFnPost {
    return func (parent *radix.LeafNode, children []*radix.LeafNode) {
        aggregate_prefix := prefix_from_binary (parent.Key).String ()
        aggregate_peer, _ := parent.Val.(string)

        marked_prefixes := make ([]string, 0, len (children))
        marked_peers := make ([]string, 0, len (children))
        for _, more_specific := range children {
            more_specific_peer, _ := more_specific.Val.(string)
            if more_specific_peer == aggregate_peer {
                groups.unsafe_append (aggregate_prefix, prefix_from_binary (more_specific.Key).String ())
            } else {
                marked_prefixes = append (marked_prefixes, more_specific.Key)
                marked_peers = append (marked_peers, more_specific_peer)
            }
        }

        /* --- Detect implicit aggregate of overlays --- */
        // NB: not perfect, only detect overlays if the children are exactly the overlays (don't do several groups)
        nb_prefixes := len (marked_prefixes)
        if nb_prefixes >= 2 {

            common_prefix := longestCommonPrefix (marked_prefixes)
            if common_prefix == "" {
                return
            }

            suffix_length := len (marked_prefixes[0]) - len (common_prefix)
            if IntPow (2, suffix_length) == nb_prefixes { // Implicit aggregate detected
                if same (marked_peers) {
                    for _, prefix := range marked_prefixes {
                        groups.unsafe_append (prefix_from_binary (common_prefix).String (), prefix_from_binary (prefix).String ())
                    }
                }
            }
        }
    }
}

/* =============================================== *\
                Prefix hierarchy
\* =============================================== */

/**
 * Prints the fib of a snapshot as an ascii tree: each entry hangs
 * under the closest fib entry that contains it.
 */
func print_fib_tree (filename string) {
    entries := read_snapshot_fib (filename)
    if entries == nil {
        log.Fatal ("[print_fib_tree]: could not read " + filename)
    }

    type node struct {
        prefix Prefix;
        peer string
    }
    nodes := make ([]node, 0, len (entries))
    for _, entry := range entries {
        prefix, err := new_prefix (entry.Network, entry.Netmask)
        if err != nil {
            log.Print ("[print_fib_tree]: " + err.Error ())
            continue
        }
        nodes = append (nodes, node{prefix: prefix, peer: entry.Peer})
    }

    /* --- Network order, shorter prefix first on equal networks, so that containment chains nest --- */
    sort.Slice (nodes, func (i, j int) bool {
        if nodes[i].prefix.network != nodes[j].prefix.network {
            return nodes[i].prefix.network < nodes[j].prefix.network
        }
        return nodes[i].prefix.length () < nodes[j].prefix.length ()
    })

    nb_prefixes := 0
    count := func (element string, arg interface{}) {
        nb_prefixes++
    }
    ignore := func (element string, arg interface{}) {}

    path_tree := tree.Tree{}
    var stack []node
    for _, n := range nodes {
        for len (stack) > 0 && !stack[len (stack)-1].prefix.contains (n.prefix.network) {
            stack = stack[:len (stack)-1]
        }
        path := make ([]string, 0, len (stack) + 1)
        for _, ancestor := range stack {
            path = append (path, ancestor.prefix.String () + " via " + ancestor.peer)
        }
        path = append (path, n.prefix.String () + " via " + n.peer)
        path_tree.Add (path, count, ignore, nil)
        stack = append (stack, n)
    }

    path_tree.Fprint (os.Stdout, true, "")
    log.Print ("Number of prefixes: " + strconv.Itoa (nb_prefixes))
}
