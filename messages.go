/* ============================================================= *\
   messages.go

   On-wire message envelope and bodies. Every message is a UTF-8
   JSON object with fields 'src', 'dst', 'type', 'msg'.
\* ============================================================= */

package main

import (
    "fmt"
    "errors"
    "encoding/json")

const (
    msg_update = "update"
    msg_revoke = "revoke"
    msg_data = "data"
    msg_no_route = "no route"
    msg_dump = "dump"
    msg_table = "table"
)

var err_malformed_message = errors.New ("malformed message")
var err_unknown_neighbor = errors.New ("unknown neighbor")

type Message struct {
    Src string `json:"src"`
    Dst string `json:"dst"`
    Type string `json:"type"`
    Msg json.RawMessage `json:"msg"`
}

// Body of an 'update' message. ASPath is nearest AS first.
type Update_body struct {
    Network string `json:"network"`
    Netmask string `json:"netmask"`
    Localpref int `json:"localpref"`
    SelfOrigin bool `json:"selfOrigin"`
    ASPath []int `json:"ASPath"`
    Origin string `json:"origin"`
}

// One element of a 'revoke' body.
type Revocation struct {
    Network string `json:"network"`
    Netmask string `json:"netmask"`
}

// One element of a 'table' reply body.
type Table_entry struct {
    Network string `json:"network"`
    Netmask string `json:"netmask"`
    Peer string `json:"peer"`
}

/**
 * Decodes and validates a message envelope. A JSON parse failure or
 * a missing required field is a malformed message: the caller logs
 * it and drops the datagram.
 */
func parse_message (data []byte) (*Message, error) {
    var message Message
    if err := json.Unmarshal (data, &message); err != nil {
        return nil, fmt.Errorf ("%w: %v", err_malformed_message, err)
    }
    if message.Src == "" || message.Dst == "" || message.Type == "" {
        return nil, fmt.Errorf ("%w: missing envelope field", err_malformed_message)
    }
    switch message.Type {
        case msg_update, msg_revoke:
            if len (message.Msg) == 0 {
                return nil, fmt.Errorf ("%w: missing '%s' body", err_malformed_message, message.Type)
            }
        case msg_data, msg_no_route, msg_dump, msg_table:
            // Body is opaque (data), empty (no route, dump) or produced locally (table).
        default:
            return nil, fmt.Errorf ("%w: unknown type '%s'", err_malformed_message, message.Type)
    }
    return &message, nil
}

/* --------------------------------------- *\
 *             Route origin
\* --------------------------------------- */

// IGP < EGP < UNK in preference.
const (
    Origin_igp = iota
    Origin_egp
    Origin_unk
)

func parse_origin (s string) (int, error) {
    switch s {
        case "IGP": return Origin_igp, nil
        case "EGP": return Origin_egp, nil
        case "UNK": return Origin_unk, nil
    }
    return Origin_unk, fmt.Errorf ("%w: unknown origin '%s'", err_malformed_message, s)
}

func origin_string (origin int) string {
    switch origin {
        case Origin_igp: return "IGP"
        case Origin_egp: return "EGP"
    }
    return "UNK"
}
