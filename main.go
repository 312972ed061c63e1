package main

import (
    "log"
    "os"
)

func usage () {
    println ("\nUsage of bgp-router:\n")
    println ("  ./bgp-router [-db file] <asn> <address>-<relation> ...")
    println ("      Run the route server for AS <asn>. Each <address>-<relation> descriptor")
    println ("      opens a sequenced-packet UNIX socket to <address>; relation is one of")
    println ("      cust, peer, prov.\n")
    println ("  ./bgp-router analysis [sub_mode]")
    println ("      Offline processing of snapshot databases written with -db.")
    println ("\nType")
    println ("  ./bgp-router analysis")
    println ("for further information on the analysis sub modes.\n")
}

func main () {
    log.SetFlags (0)
    if len (os.Args) == 1 {
        usage ()
        return
    }
    switch command := os.Args[1]; command {

        /* --------------------------- *\
                      Misc.
        \* --------------------------- */
        /* --- Various analysis and processing of snapshot databases. --- */
        case "analysis":
            analysis (os.Args[2:])
        case "-h":
            usage ()
        case "--help":
            usage ()

        /* --------------------------- *\
                  ROUTE SERVER
        \* --------------------------- */
        default:
            serve (os.Args[1:])
    }
}

// --------------------------------------------------------------------------------
func serve (args []string) {
    db, asn, descriptors := handle_args_serve (args)

    /* --- Open one session per neighbor --- */
    neighbors := make ([]*Neighbor, 0, len (descriptors))
    for _, descriptor := range descriptors {
        address, relation, err := parse_descriptor (descriptor)
        if err != nil {
            log.Fatal ("[serve]: bad neighbor descriptor '" + descriptor + "': " + err.Error ())
        }
        neighbor, err := dial_neighbor (address, relation)
        if err != nil {
            log.Fatal ("[serve]: cannot reach neighbor " + address + ": " + err.Error ())
        }
        neighbors = append (neighbors, neighbor)
    }

    /* --- Drive the event loop until EOF from all neighbors --- */
    router := new_router (asn, neighbors)
    router.run ()

    /* --- Post processing (clean shutdown) --- */
    if db != "" {
        write_snapshot (db, router.rib)
    }
}
