// Package kvtypes defines the data structures shared between the protocol client,
// the reply renderers and the interactive shell.
// This file contains the Reply tagged union produced by the protocol client.
package kvtypes

import "strconv"

// Kind identifies the shape of a server reply.
type Kind int

const (
	// KindStatus is a simple status string such as "OK".
	KindStatus Kind = iota
	// KindInteger is a signed 64-bit integer reply.
	KindInteger
	// KindBulkString is a binary-safe string reply, possibly null.
	KindBulkString
	// KindList is an ordered sequence of nested replies.
	KindList
	// KindError is an error reply returned by the server.
	KindError
)

// Kinds returns every reply kind. Dispatch tables are validated against this list.
func Kinds() []Kind {
	return []Kind{KindStatus, KindInteger, KindBulkString, KindList, KindError}
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindInteger:
		return "integer"
	case KindBulkString:
		return "bulk"
	case KindList:
		return "list"
	case KindError:
		return "error"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Reply is one server response. Only the fields relevant to Kind are populated.
// Replies are produced by the protocol client and never mutated afterwards.
type Reply struct {
	Kind Kind

	// Bytes holds the payload of Status, BulkString and Error replies.
	Bytes []byte

	// Null marks a null bulk string (the key does not exist).
	Null bool

	// Int holds the value of Integer replies.
	Int int64

	// Items holds the elements of List replies.
	Items []Reply
}

// Status builds a status reply.
func Status(text string) Reply {
	return Reply{Kind: KindStatus, Bytes: []byte(text)}
}

// Integer builds an integer reply.
func Integer(value int64) Reply {
	return Reply{Kind: KindInteger, Int: value}
}

// Bulk builds a bulk string reply from raw bytes.
func Bulk(payload []byte) Reply {
	if payload == nil {
		payload = []byte{}
	}
	return Reply{Kind: KindBulkString, Bytes: payload}
}

// BulkString builds a bulk string reply from text.
func BulkString(text string) Reply {
	return Bulk([]byte(text))
}

// Nil builds a null bulk string reply.
func Nil() Reply {
	return Reply{Kind: KindBulkString, Null: true}
}

// List builds a list reply.
func List(items ...Reply) Reply {
	if items == nil {
		items = []Reply{}
	}
	return Reply{Kind: KindList, Items: items}
}

// BulkList builds a list reply whose items are all bulk strings.
func BulkList(items ...string) Reply {
	replies := make([]Reply, len(items))
	for i, item := range items {
		replies[i] = BulkString(item)
	}
	return List(replies...)
}

// Error builds an error reply.
func Error(text string) Reply {
	return Reply{Kind: KindError, Bytes: []byte(text)}
}

// RawBytes returns the scripting-safe representation of the reply: payload bytes for
// strings, the decimal value for integers, newline-joined items for lists and nothing
// for a null bulk string.
func (r Reply) RawBytes() []byte {
	switch r.Kind {
	case KindInteger:
		return strconv.AppendInt(nil, r.Int, 10)
	case KindList:
		var out []byte
		for i, item := range r.Items {
			if i > 0 {
				out = append(out, '\n')
			}
			out = append(out, item.RawBytes()...)
		}
		return out
	default:
		if r.Null {
			return []byte{}
		}
		return r.Bytes
	}
}
