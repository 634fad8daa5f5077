package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvshell/internal/completion"
	"kvshell/internal/style"
	"kvshell/pkg/kvtypes"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	resolver, err := style.Load("default")
	require.NoError(t, err)
	renderer, err := NewRenderer(resolver)
	require.NoError(t, err)
	return renderer
}

func keyToken(t *testing.T) style.Token {
	t.Helper()
	resolver, err := style.Load("default")
	require.NoError(t, err)
	token, err := resolver.Resolve(style.Key)
	require.NoError(t, err)
	return token
}

func styledNewlines(text Text) int {
	n := 0
	for _, span := range text {
		if !span.Token.IsZero() {
			n += strings.Count(span.Text, "\n")
		}
	}
	return n
}

func TestStatusOK(t *testing.T) {
	r := newTestRenderer(t)

	text := r.Status([]byte("OK"))

	require.Len(t, text, 1)
	assert.Equal(t, style.Success, text[0].Token.Name())
	assert.Equal(t, "OK", text[0].Text)
}

func TestStatusOtherThanOKIsError(t *testing.T) {
	r := newTestRenderer(t)

	for _, status := range []string{"BUSY server is busy", "ok", "OK ", "QUEUED", ""} {
		t.Run(fmt.Sprintf("%q", status), func(t *testing.T) {
			text := r.Status([]byte(status))
			require.Len(t, text, 1)
			assert.Equal(t, style.Error, text[0].Token.Name())
			assert.Equal(t, status, text[0].Text)
		})
	}
}

func TestErrorKeepsFullMessage(t *testing.T) {
	r := newTestRenderer(t)
	message := "WRONGTYPE Operation against a key holding the wrong kind of value " + strings.Repeat("x", 500)

	text := r.Error([]byte(message))

	require.Len(t, text, 1)
	assert.Equal(t, style.Error, text[0].Token.Name())
	assert.Equal(t, message, text[0].Text)
}

func TestIntegerIsReturnedAsIs(t *testing.T) {
	r := newTestRenderer(t)

	result := r.Integer(-42)

	assert.Equal(t, ResultInteger, result.Kind)
	assert.Equal(t, int64(-42), result.Integer)
}

func TestBulkString(t *testing.T) {
	r := newTestRenderer(t)

	result := r.BulkString(kvtypes.BulkString(`say "hi"`), Options{})
	require.Equal(t, ResultText, result.Kind)
	require.Len(t, result.Text, 1)
	assert.True(t, result.Text[0].Token.IsZero())
	assert.Equal(t, `"say \"hi\""`, result.Text[0].Text)

	result = r.BulkString(kvtypes.Nil(), Options{})
	assert.Equal(t, "(nil)", result.Text.String())

	result = r.BulkString(kvtypes.BulkString(`say "hi"`), Options{Raw: true})
	require.Equal(t, ResultRaw, result.Kind)
	assert.Equal(t, []byte(`say "hi"`), result.Raw)
}

func TestListRawMode(t *testing.T) {
	r := newTestRenderer(t)
	items := kvtypes.BulkList("k1", "k2", "k10").Items

	for _, token := range []style.Token{{}, keyToken(t)} {
		result := r.List(items, token, Options{Raw: true})
		require.Equal(t, ResultRaw, result.Kind)
		assert.Equal(t, []byte("k1\nk2\nk10"), result.Raw)
		assert.NotContains(t, string(result.Raw), ")")
	}
}

func TestListRawModeEmpty(t *testing.T) {
	r := newTestRenderer(t)

	result := r.List(nil, keyToken(t), Options{Raw: true})

	require.Equal(t, ResultRaw, result.Kind)
	assert.Empty(t, result.Raw)
}

func TestListIndexAlignment(t *testing.T) {
	r := newTestRenderer(t)
	token := keyToken(t)

	for _, n := range []int{1, 9, 10, 12, 100} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprintf("k%d", i+1)
			}

			result := r.List(kvtypes.BulkList(names...).Items, token, Options{})
			require.Equal(t, ResultText, result.Kind)
			text := result.Text
			require.Len(t, text, 2*n)

			width := len(fmt.Sprint(n))
			for i := 0; i < n; i++ {
				label := text[2*i]
				assert.True(t, label.Token.IsZero())
				assert.Len(t, label.Text, width+1)
				assert.Equal(t, fmt.Sprintf("%*d)", width, i+1), label.Text)

				value := text[2*i+1]
				assert.Equal(t, style.Key, value.Token.Name())
				assert.True(t, strings.HasPrefix(value.Text, ` "`))
			}
			assert.Equal(t, n-1, styledNewlines(text))
			assert.False(t, strings.HasSuffix(text[len(text)-1].Text, "\n"))
		})
	}
}

func TestListTwelveItemsLabels(t *testing.T) {
	r := newTestRenderer(t)
	names := make([]string, 12)
	for i := range names {
		names[i] = "v"
	}

	text := r.List(kvtypes.BulkList(names...).Items, style.Token{}, Options{}).Text

	assert.Equal(t, " 1)", text[0].Text)
	assert.Equal(t, "12)", text[22].Text)
}

func TestListEmpty(t *testing.T) {
	r := newTestRenderer(t)

	result := r.List([]kvtypes.Reply{}, keyToken(t), Options{})

	assert.Equal(t, "(empty list or set)", result.Text.String())
}

func TestListMixedItems(t *testing.T) {
	r := newTestRenderer(t)
	items := []kvtypes.Reply{
		kvtypes.BulkString("a"),
		kvtypes.Integer(7),
		kvtypes.Nil(),
		kvtypes.Status("PONG"),
		kvtypes.Error("ERR nope"),
	}

	text := r.List(items, style.Token{}, Options{}).Text

	expected := "1) \"a\"\n2) (integer) 7\n3) (nil)\n4) PONG\n5) (error) ERR nope"
	assert.Equal(t, expected, text.String())
}

func TestListNested(t *testing.T) {
	r := newTestRenderer(t)
	items := []kvtypes.Reply{
		kvtypes.BulkString("0"),
		kvtypes.BulkList("k1", "k2"),
	}

	text := r.List(items, style.Token{}, Options{}).Text

	expected := "1) \"0\"\n2) 1) \"k1\"\n   2) \"k2\""
	assert.Equal(t, expected, text.String())
}

func TestListNestedNotLast(t *testing.T) {
	r := newTestRenderer(t)
	items := []kvtypes.Reply{
		kvtypes.BulkList("a", "b"),
		kvtypes.List(),
		kvtypes.BulkString("c"),
	}

	text := r.List(items, style.Token{}, Options{}).Text

	expected := "1) 1) \"a\"\n   2) \"b\"\n2) (empty list or set)\n3) \"c\""
	assert.Equal(t, expected, text.String())
}

func TestListEscapesValues(t *testing.T) {
	r := newTestRenderer(t)

	text := r.List([]kvtypes.Reply{kvtypes.Bulk([]byte{'a', '\n', 0xff})}, style.Token{}, Options{}).Text

	assert.Equal(t, `1) "a\n\xff"`, text.String())
}

func TestCommandKeysUpdatesCompletion(t *testing.T) {
	r := newTestRenderer(t)
	store := completion.NewStore()

	result := r.CommandKeys(kvtypes.BulkList("k1", "k2", "k10").Items, store, Options{})

	for _, rule := range []string{completion.RuleKey, completion.RuleKeys} {
		got, ok := store.Candidates(rule)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"k1", "k2", "k10"}, got)
	}

	require.Equal(t, ResultText, result.Kind)
	text := result.Text
	require.Len(t, text, 6)
	assert.Equal(t, "1)", text[0].Text)
	assert.Equal(t, "2)", text[2].Text)
	assert.Equal(t, "3)", text[4].Text)
	assert.Equal(t, style.Key, text[1].Token.Name())
	assert.Equal(t, " \"k1\"\n", text[1].Text)
	assert.Equal(t, " \"k10\"", text[5].Text)
}

func TestCommandKeysTenItemsAlignment(t *testing.T) {
	r := newTestRenderer(t)
	names := make([]string, 10)
	for i := range names {
		names[i] = fmt.Sprintf("k%d", i+1)
	}

	text := r.CommandKeys(kvtypes.BulkList(names...).Items, nil, Options{}).Text

	assert.Equal(t, " 9)", text[16].Text)
	assert.Equal(t, "10)", text[18].Text)
}

func TestCommandKeysWithoutStoreMatchesWithStore(t *testing.T) {
	r := newTestRenderer(t)
	items := kvtypes.BulkList("k1", `q"uote`).Items

	withStore := r.CommandKeys(items, completion.NewStore(), Options{})
	withoutStore := r.CommandKeys(items, nil, Options{})
	withNop := r.CommandKeys(items, completion.Nop{}, Options{})

	assert.Equal(t, withStore, withoutStore)
	assert.Equal(t, withStore, withNop)
}

func TestCommandKeysRawModeStillUpdatesCompletion(t *testing.T) {
	r := newTestRenderer(t)
	store := completion.NewStore()

	result := r.CommandKeys(kvtypes.BulkList("k1", "k2", "k10").Items, store, Options{Raw: true})

	require.Equal(t, ResultRaw, result.Kind)
	assert.Equal(t, []byte("k1\nk2\nk10"), result.Raw)

	got, ok := store.Candidates(completion.RuleKeys)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"k1", "k2", "k10"}, got)
}

func TestCommandKeysEmptyReplyClearsCandidates(t *testing.T) {
	r := newTestRenderer(t)
	store := completion.NewStore()
	store.Replace(completion.RuleKey, []string{"old"})

	result := r.CommandKeys([]kvtypes.Reply{}, store, Options{})

	got, ok := store.Candidates(completion.RuleKey)
	require.True(t, ok)
	assert.Empty(t, got)
	assert.Equal(t, "(empty list or set)", result.Text.String())
}

func TestNewRendererMissingStyle(t *testing.T) {
	resolver, err := style.New(kvtypes.ThemeFile{
		Name:   "broken",
		Styles: map[string]kvtypes.StyleConfig{style.Success: {}, style.Key: {}},
	})
	require.NoError(t, err)

	_, err = NewRenderer(resolver)

	var configErr *style.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, style.Error, configErr.Name)
}

func TestTextString(t *testing.T) {
	text := Text{{Text: "1)"}, {Token: keyToken(t), Text: ` "a"`}}
	assert.Equal(t, `1) "a"`, text.String())
	assert.Equal(t, "", Text(nil).String())
}
