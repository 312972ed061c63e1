/* ============================================================= *\
   sockets.go

   Neighbor sessions and the event loop. One sequenced-packet
   UNIX-domain socket per neighbor, opened at startup and never
   closed; a single-threaded poll(2) multiplex with a bounded
   timeout reads one datagram per ready neighbor and drives the
   dispatcher synchronously.
\* ============================================================= */

package main

import (
    "net"
    "log"
    unix "golang.org/x/sys/unix")

const (
    poll_timeout_ms = 100
    max_datagram = 65535
)

/**
 * Connects to the neighbor's socket path. The *os.File returned by
 * File() duplicates the descriptor, but would close it once garbage
 * collected; a further duplicate, owned by no Go object, is what the
 * poll loop keeps for the process lifetime.
 */
func dial_neighbor (address string, relation int) (*Neighbor, error) {
    conn, err := net.Dial ("unixpacket", address)
    if err != nil {
        return nil, err
    }
    file, err := conn.(*net.UnixConn).File ()
    if err != nil {
        return nil, err
    }
    fd, err := unix.Dup (int (file.Fd ()))
    file.Close ()
    if err != nil {
        return nil, err
    }
    return &Neighbor{address: address, relation: relation, fd: fd}, nil
}

func send_datagram (neighbor *Neighbor, data []byte) error {
    _, err := unix.Write (neighbor.fd, data)
    return err
}

/**
 * The cooperative event loop. Messages from a single neighbor are
 * processed in arrival order; each message is atomic with respect
 * to RIB mutations. A zero-length read is EOF: the neighbor is
 * marked down, and once every neighbor is down the loop returns
 * for a clean shutdown. Any other read error is fatal.
 */
func (router *Router) run () {
    buffer := make ([]byte, max_datagram)

    for {
        /* --- Collect the still-open sessions --- */
        fds := make ([]unix.PollFd, 0, len (router.order))
        open := make ([]*Neighbor, 0, len (router.order))
        for _, address := range router.order {
            neighbor := router.neighbors[address]
            if neighbor.closed {
                continue
            }
            fds = append (fds, unix.PollFd{Fd: int32 (neighbor.fd), Events: unix.POLLIN})
            open = append (open, neighbor)
        }
        if len (open) == 0 {
            return // EOF from all neighbors.
        }

        /* --- Block on readiness, bounded --- */
        n, err := unix.Poll (fds, poll_timeout_ms)
        if err == unix.EINTR {
            continue
        }
        if err != nil {
            log.Fatal ("[run]: poll: " + err.Error ())
        }
        if n == 0 {
            continue
        }

        /* --- One datagram per ready neighbor --- */
        for i, fd := range fds {
            if fd.Revents & (unix.POLLIN | unix.POLLHUP) == 0 {
                continue
            }
            neighbor := open[i]
            nb, err := unix.Read (neighbor.fd, buffer)
            if err != nil {
                log.Fatal ("[run]: transport failure on " + neighbor.address + ": " + err.Error ())
            }
            if nb == 0 {
                neighbor.closed = true
                log.Print ("[run]: neighbor " + neighbor.address + " closed its session")
                continue
            }
            // The dispatcher may retain the bytes (history logs), so hand it a copy.
            data := make ([]byte, nb)
            copy (data, buffer[:nb])
            router.handle_message (neighbor.address, data)
        }
    }
}
