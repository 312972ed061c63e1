/* ============================================================= *\
   snapshot.go

   - Writer to persist a run's RIB (raw routes, update and
     withdrawal history, final fib) to a sqlite database.
   - Reader objects to load snapshot databases back, for the
     analysis mode.
\* ============================================================= */
package main

import (
  "log"
  "database/sql"
  _ "github.com/mattn/go-sqlite3")
// the underscore import is used for the side-effect of registering the sqlite3 driver
// as a database driver in the init() function, without importing any other functions

/**
 * Writes the final state of a run. Best effort: a snapshot failure
 * must not turn a clean shutdown into a failed one, so problems are
 * logged and swallowed.
 */
func write_snapshot (filename string, rib *Rib) {
  defer recovery_function ()

  database, err := sql.Open ("sqlite3", filename)
  if err != nil {
    log.Print ("[write_snapshot]: " + err.Error ())
    return
  }
  defer database.Close ()

  schema := []string{
    "CREATE TABLE routes (network TEXT, netmask TEXT, peer TEXT, localpref INTEGER, self_origin INTEGER, as_path TEXT, origin TEXT)",
    "CREATE TABLE updates (peer TEXT, network TEXT, netmask TEXT, localpref INTEGER, self_origin INTEGER, as_path TEXT, origin TEXT)",
    "CREATE TABLE withdrawals (peer TEXT, network TEXT, netmask TEXT)",
    "CREATE TABLE fib (network TEXT, netmask TEXT, peer TEXT)",
  }
  for _, statement := range schema {
    if _, err := database.Exec (statement); err != nil {
      panic ("[write_snapshot]: " + err.Error ())
    }
  }

  /* --- The raw set, in arrival order --- */
  for _, entry := range rib.raw {
    _, err = database.Exec ("INSERT INTO routes VALUES (?, ?, ?, ?, ?, ?, ?)",
      ip_string (entry.prefix.network), entry.prefix.netmask_string (), entry.peer,
      entry.localpref, bool_to_int (entry.self_origin), join_as_path (entry.as_path),
      origin_string (entry.origin))
    if err != nil {
      panic ("[write_snapshot]: " + err.Error ())
    }
  }

  /* --- The full update history, withdrawn entries included --- */
  for _, record := range rib.updates {
    _, err = database.Exec ("INSERT INTO updates VALUES (?, ?, ?, ?, ?, ?, ?)",
      record.peer, record.body.Network, record.body.Netmask, record.body.Localpref,
      bool_to_int (record.body.SelfOrigin), join_as_path (record.body.ASPath), record.body.Origin)
    if err != nil {
      panic ("[write_snapshot]: " + err.Error ())
    }
  }

  /* --- The withdrawal log, in arrival order --- */
  for _, record := range rib.withdrawals {
    for _, prefix := range record.prefixes {
      _, err = database.Exec ("INSERT INTO withdrawals VALUES (?, ?, ?)",
        record.peer, ip_string (prefix.network), prefix.netmask_string ())
      if err != nil {
        panic ("[write_snapshot]: " + err.Error ())
      }
    }
  }

  /* --- The aggregated view --- */
  for _, entry := range rib.dump () {
    _, err = database.Exec ("INSERT INTO fib VALUES (?, ?, ?)", entry.Network, entry.Netmask, entry.Peer)
    if err != nil {
      panic ("[write_snapshot]: " + err.Error ())
    }
  }
}

/* ------------------------------------------------------- *\
 *                    SNAPSHOT READER
\* ------------------------------------------------------- */
type SnapshotReader struct{
  filename string;
  rows *sql.Rows
}

func NewSnapshotReader (filename string) *SnapshotReader {
  return &SnapshotReader{
    filename: filename,
  }
}

func (r *SnapshotReader) Open (query string) {
  database, _ := sql.Open ("sqlite3", r.filename)
  defer database.Close ()

  rows, err := database.Query (query)
  if err != nil {
    panic ("[SnapshotReader.Open]: problem while reading snapshot file " + r.filename)
  }
  r.rows = rows
}

func (r *SnapshotReader) Scanner () *sql.Rows {
  return r.rows
}

/**
 * Loads the fib table of a snapshot. In case of error, returns a
 * nil slice.
 */
func read_snapshot_fib (filename string) (entries []Table_entry) {
  defer recovery_function ()

  reader := NewSnapshotReader (filename)
  reader.Open ("SELECT network, netmask, peer FROM fib")
  rows := reader.Scanner ()
  defer rows.Close ()

  for rows.Next () {
    var entry Table_entry
    if err := rows.Scan (&entry.Network, &entry.Netmask, &entry.Peer); err != nil {
      entries = nil
      panic ("[read_snapshot_fib]: wrong file format")
    }
    entries = append (entries, entry)
  }
  return entries
}
