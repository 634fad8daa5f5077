package render

import (
	"fmt"
	"strconv"
	"strings"

	"kvshell/internal/completion"
	"kvshell/internal/normalize"
	"kvshell/internal/style"
	"kvshell/pkg/kvtypes"
)

const (
	emptyList = "(empty list or set)"
	nilReply  = "(nil)"
)

// Renderer holds the tokens the reply renderers draw with. All tokens are resolved
// when the Renderer is built.
type Renderer struct {
	success style.Token
	err     style.Token
	key     style.Token
}

// NewRenderer resolves every style the renderers use. A missing style yields a
// *style.ConfigError.
func NewRenderer(resolver *style.Resolver) (*Renderer, error) {
	var r Renderer
	for name, dst := range map[string]*style.Token{
		style.Success: &r.success,
		style.Error:   &r.err,
		style.Key:     &r.key,
	} {
		token, err := resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		*dst = token
	}
	return &r, nil
}

// Status renders a status reply. Only the exact text "OK" counts as success; any
// other status is displayed like an error.
func (r *Renderer) Status(payload []byte) Text {
	text := normalize.Display(payload)
	if text == "OK" {
		return Text{{Token: r.success, Text: text}}
	}
	return Text{{Token: r.err, Text: text}}
}

// Error renders an error reply with its full message.
func (r *Renderer) Error(message []byte) Text {
	return Text{{Token: r.err, Text: normalize.Display(message)}}
}

// Integer returns the value unchanged.
func (r *Renderer) Integer(value int64) Result {
	return IntegerResult(value)
}

// BulkString renders a bulk string between double quotes, unstyled. Under raw mode
// the payload is returned as-is.
func (r *Renderer) BulkString(reply kvtypes.Reply, opts Options) Result {
	if opts.Raw {
		return RawResult(reply.RawBytes())
	}
	if reply.Null {
		return TextResult(Text{{Text: nilReply}})
	}
	return TextResult(Text{{Text: quote(reply.Bytes)}})
}

// List renders items as an indexed, column-aligned list with every value drawn in
// the value token. Under raw mode the raw items are joined by "\n" instead.
func (r *Renderer) List(items []kvtypes.Reply, value style.Token, opts Options) Result {
	if opts.Raw {
		return RawResult(kvtypes.List(items...).RawBytes())
	}
	return TextResult(r.listText(items, value))
}

// CommandKeys renders a reply known to hold key names. The normalized names replace
// the "key" and "keys" candidate sets when store is non-nil, regardless of raw mode.
func (r *Renderer) CommandKeys(items []kvtypes.Reply, store completion.CandidateStore, opts Options) Result {
	raw := make([][]byte, len(items))
	for i, item := range items {
		raw[i] = item.RawBytes()
	}
	keys := completion.UpdateKeys(store, raw)

	if opts.Raw {
		return RawResult(kvtypes.List(items...).RawBytes())
	}

	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = `"` + k + `"`
	}
	return TextResult(indexed(len(values), func(i int) listEntry {
		return listEntry{text: values[i]}
	}, r.key))
}

// listEntry is one list element: either a single line of text or a nested list.
type listEntry struct {
	text   string
	nested Text
}

func (r *Renderer) listText(items []kvtypes.Reply, value style.Token) Text {
	return indexed(len(items), func(i int) listEntry {
		item := items[i]
		if item.Kind == kvtypes.KindList {
			return listEntry{nested: r.listText(item.Items, value)}
		}
		return listEntry{text: itemText(item)}
	}, value)
}

// indexed lays out n entries. The label width is the digit count of n so every label
// lines up; the value span of every entry but the last ends with a newline.
func indexed(n int, entry func(int) listEntry, value style.Token) Text {
	if n == 0 {
		return Text{{Text: emptyList}}
	}

	width := len(strconv.Itoa(n))
	indent := strings.Repeat(" ", width+2)
	out := make(Text, 0, 2*n)

	for i := 0; i < n; i++ {
		last := i == n-1
		out = append(out, Span{Text: fmt.Sprintf("%*d)", width, i+1)})

		e := entry(i)
		if e.nested == nil {
			text := " " + e.text
			if !last {
				text += "\n"
			}
			out = append(out, Span{Token: value, Text: text})
			continue
		}

		out = append(out, Span{Text: " "})
		out = append(out, indentNested(e.nested, indent)...)
		if !last {
			out[len(out)-1].Text += "\n"
		}
	}
	return out
}

// indentNested shifts every line after the first so nested labels sit under the
// parent's value column.
func indentNested(nested Text, indent string) Text {
	out := make(Text, len(nested))
	afterNewline := false
	for i, s := range nested {
		if afterNewline {
			s.Text = indent + s.Text
		}
		afterNewline = strings.HasSuffix(s.Text, "\n")
		out[i] = s
	}
	return out
}

func itemText(item kvtypes.Reply) string {
	switch item.Kind {
	case kvtypes.KindInteger:
		return "(integer) " + strconv.FormatInt(item.Int, 10)
	case kvtypes.KindError:
		return "(error) " + normalize.Display(item.Bytes)
	case kvtypes.KindStatus:
		return normalize.Display(item.Bytes)
	default:
		if item.Null {
			return nilReply
		}
		return quote(item.Bytes)
	}
}

func quote(payload []byte) string {
	return `"` + normalize.Display(payload) + `"`
}
