package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gvmanaged/pkg/errors"
)

func TestParseChain(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Chain
	}{
		{
			name: "Single",
			src:  "a >> b",
			want: &Chain{
				Head:  Operand{Refs: []string{"a"}},
				Steps: []Step{{Operand: Operand{Refs: []string{"b"}}}},
			},
		},
		{
			name: "Mixed",
			src:  "a>>b<<c",
			want: &Chain{
				Head: Operand{Refs: []string{"a"}},
				Steps: []Step{
					{Operand: Operand{Refs: []string{"b"}}},
					{Reverse: true, Operand: Operand{Refs: []string{"c"}}},
				},
			},
		},
		{
			name: "ListRight",
			src:  "d >> [a, c]",
			want: &Chain{
				Head:  Operand{Refs: []string{"d"}},
				Steps: []Step{{Operand: Operand{Refs: []string{"a", "c"}, List: true}}},
			},
		},
		{
			name: "ListLeft",
			src:  " [b,d] << e ",
			want: &Chain{
				Head:  Operand{Refs: []string{"b", "d"}, List: true},
				Steps: []Step{{Reverse: true, Operand: Operand{Refs: []string{"e"}}}},
			},
		},
		{
			name: "RefCharacters",
			src:  "web-1 >> db.primary",
			want: &Chain{
				Head:  Operand{Refs: []string{"web-1"}},
				Steps: []Step{{Operand: Operand{Refs: []string{"db.primary"}}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChain(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChainErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"Empty", ""},
		{"NoOperator", "a"},
		{"MissingRight", "a >>"},
		{"BadOperator", "a -> b"},
		{"Unterminated", "a >> [b, c"},
		{"EmptyList", "a >> []"},
		{"BadSeparator", "a >> [b; c]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChain(tt.src)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}
