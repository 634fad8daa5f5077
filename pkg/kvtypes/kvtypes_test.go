package kvtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "status", KindStatus.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestKindsCoversEveryKind(t *testing.T) {
	assert.ElementsMatch(t, []Kind{KindStatus, KindInteger, KindBulkString, KindList, KindError}, Kinds())
}

func TestReplyRawBytes(t *testing.T) {
	tests := []struct {
		name     string
		reply    Reply
		expected string
	}{
		{name: "status", reply: Status("OK"), expected: "OK"},
		{name: "integer", reply: Integer(-12), expected: "-12"},
		{name: "bulk", reply: BulkString("a\"b"), expected: "a\"b"},
		{name: "nil", reply: Nil(), expected: ""},
		{name: "error", reply: Error("ERR boom"), expected: "ERR boom"},
		{name: "flat list", reply: BulkList("k1", "k2"), expected: "k1\nk2"},
		{name: "nested list", reply: List(BulkString("a"), List(Integer(1), Integer(2))), expected: "a\n1\n2"},
		{name: "empty list", reply: List(), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.reply.RawBytes()))
		})
	}
}

func TestConstructorsNeverReturnNilCollections(t *testing.T) {
	assert.NotNil(t, Bulk(nil).Bytes)
	assert.False(t, Bulk(nil).Null)
	assert.NotNil(t, List().Items)
	assert.True(t, Nil().Null)
}
