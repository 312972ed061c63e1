package main

import (
    "log"
    "sync"
    "strings"
    "strconv"
    "bufio"
    "os")

/**
 * A set that is protected by a sync.Mutex, used by the analysis
 * workers. Implementation using a map.
 */
type SafeSet struct {
    mux sync.Mutex
    set map[string]interface{}
}

func create_safeset () *SafeSet {
    new_set := new (SafeSet)
    new_set.set = make (map[string]interface{})
    return new_set
}

func (set *SafeSet) add (key string, arg ...interface{}) {
    set.mux.Lock ()
    set.unsafe_add (key, arg...)
    set.mux.Unlock ()
}

func (set *SafeSet) unsafe_add (key string, arg ...interface{}) {
    switch len (arg) {
        case 0: set.set[key] = struct{}{}
        case 1: set.set[key] = arg[0]
        default: log.Fatal ("Wrong number of arguments to function [unsafe_add]")
    }
}

func (set *SafeSet) unsafe_append (key, value string) {
    p, ok := set.unsafe_get (key)
    if ok {
        members, t := p.(map[string]struct{}) // Type assertion
        if !t {
            log.Fatal ("[unsafe_append]: type assertion failed")
        }
        members[value] = struct{}{}
        set.unsafe_add (key, members)
    } else {
        set.unsafe_add (key, map[string]struct{}{value: struct{}{}})
    }
}

func (set *SafeSet) contains (key string) bool {
    set.mux.Lock ()
    _, present := set.set[key]
    set.mux.Unlock ()
    return present
}

func (set *SafeSet) get (key string) (v interface{}, ok bool) {
    set.mux.Lock ()
    v, ok = set.set[key]
    set.mux.Unlock ()
    return
}

func (set *SafeSet) unsafe_get (key string) (v interface{}, ok bool) {
    v, ok = set.set[key]
    return
}

func (set *SafeSet) write_to_file (filename string) {
    f, err := os.Create (filename) // If the file already exists, it is truncated
    if err != nil {
        log.Print ("[write_to_file]: " + err.Error ())
        return
    }
    defer f.Close ()

    w := bufio.NewWriter (f)
    for key, s := range set.set {
        switch v := s.(type) {
            case struct{}:
                _, err = w.WriteString (key + "\n")
            case int:
                _, err = w.WriteString (key + " " + strconv.Itoa (v) + "\n")
            case string:
                _, err = w.WriteString (key + " " + v + "\n")
            case map[string]struct{}:
                _, err = w.WriteString (key + " " + strings.Join (_get_keys (&v), " ") + "\n")
            case []string:
                _, err = w.WriteString (key + " " + strings.Join (v, " ") + "\n")
            default:
                log.Fatalf ("No print function defined for type: %T\n", v)
        }
        if err != nil {
            log.Print ("[write_to_file]: " + err.Error ())
            return
        }
    }

    w.Flush ()
}

func _get_keys (mymap *map[string]struct{}) []string {
    keys := make ([]string, len (*mymap))
    i := 0
    for k := range (*mymap) {
        keys[i] = k
        i++
    }
    return keys
}
