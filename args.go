/* ==================================================================================== *\
    args.go

    Program arguments handling
\* ==================================================================================== */

package main

import (
  "flag"
  "strings"
  "strconv"
  "os"
)

/* --------------------------------------- *\
 *          ROUTE SERVER
\* --------------------------------------- */

/**
 * Handle the args for the route server: an optional snapshot
 * database, then the AS number, then one or more neighbor
 * descriptors of the form <address>-<relation>.
 */
func handle_args_serve (args []string) (_db string, _asn int, _descriptors []string) {
  cmd := flag.NewFlagSet ("serve", flag.ExitOnError)

  cmd.StringVar (&_db, "db", "", "Sqlite file where to snapshot the RIB at shutdown")

  cmd.Parse (args)
  rest := cmd.Args ()
  if len (rest) < 2 {
    println ("Usage: ./bgp-router [-db file] <asn> <address>-<relation> ...")
    os.Exit (-1)
  }

  asn, err := strconv.Atoi (rest[0])
  if err != nil || asn < 0 {
    println ("Bad AS number: " + rest[0])
    os.Exit (-1)
  }
  _asn = asn
  _descriptors = rest[1:]
  return
}

/**
 * Splits a neighbor descriptor on its last dash: the address may
 * itself contain dashes, the relation never does.
 */
func parse_descriptor (descriptor string) (address string, relation int, err error) {
  cut := strings.LastIndex (descriptor, "-")
  if cut <= 0 || cut == len (descriptor) - 1 {
    return "", Unknown, err_bad_relation
  }
  address = descriptor[:cut]
  relation, err = parse_relation (descriptor[cut+1:])
  return
}

/* --------------------------------------- *\
 *          TABLE ANALYSIS
\* --------------------------------------- */

/**
 * Handle the args for the overlay analysis of snapshot databases.
 */
func handle_args_analysis (args []string) (_outputfile string, _files []string) {
  if len (args) <= 0 {
    println ("Missing arguments")
    os.Exit (-1)
  }
  cmd := flag.NewFlagSet (args[0], flag.ExitOnError)

  cmd.StringVar (&_outputfile, "o", "", "The output file")

  cmd.Parse (args[1:])
  _files = cmd.Args ()
  if _outputfile == "" || len (_files) == 0 {
    println ("Missing arguments")
    os.Exit (-1)
  }
  return
}
