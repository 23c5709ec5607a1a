package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextService_ReduceToLength(t *testing.T) {
	ts := NewTextService()

	assert.Equal(t, "ab cd", ts.ReduceToLength("ab cd ef", 6))
	assert.Equal(t, "ab cd ef", ts.ReduceToLength("ab cd ef", 8))
	assert.Equal(t, strings.Repeat("x", 5), ts.ReduceToLength(strings.Repeat("x", 9)+" y", 5))
	assert.Equal(t, "", ts.ReduceToLength("", 5))
}

func TestTextService_ReduceToLengthCountsRunes(t *testing.T) {
	ts := NewTextService()

	assert.Equal(t, "żółć ąę", ts.ReduceToLength("żółć ąę", 7))
}

func TestTextService_Encode(t *testing.T) {
	ts := NewTextService()

	assert.Equal(t, "a &amp; b &lt;c&gt;", ts.Encode("a & b\x07 <c>"))
	assert.Equal(t, "ab cd", ts.RemoveControlChars("ab\t cd\n"))
}

func TestTextService_ClearAndReduce(t *testing.T) {
	ts := NewTextService()

	got := ts.ClearAndReduce("<p>Filtr   oleju</p> http://example.com/x", 40)

	assert.Equal(t, "Filtr oleju", got)
}
