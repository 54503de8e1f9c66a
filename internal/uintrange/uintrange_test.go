package uintrange

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "zero", input: "0", want: "0"},
		{name: "small", input: "42", want: "42"},
		{name: "beyond uint64", input: "36893488147419103232", want: "36893488147419103232"},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "plus sign", input: "+1", wantErr: true},
		{name: "hex", input: "0x10", wantErr: true},
		{name: "decimal point", input: "1.5", wantErr: true},
		{name: "whitespace", input: " 1", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseUint(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestUintArithmetic(t *testing.T) {
	a := NewUint(5)
	b := NewUint(7)

	assert.Equal(t, "12", a.Add(b).String())
	assert.Equal(t, "5", a.String(), "Add must not mutate its receiver")
	assert.Equal(t, "6", a.Incr().String())
	assert.Equal(t, "4", a.Decr().String())
	assert.Equal(t, "0", NewUint(0).Decr().String(), "Decr clamps at zero")
	assert.True(t, Uint{}.IsZero(), "zero value is zero")
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 0, a.Cmp(NewUint(5)))
	assert.Equal(t, 1, b.Cmp(a))
}

func TestUintJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		out, err := json.Marshal(NewUint(18446744073709551615))
		require.NoError(t, err)
		assert.Equal(t, `"18446744073709551615"`, string(out))

		var u Uint
		require.NoError(t, json.Unmarshal(out, &u))
		assert.Equal(t, 0, u.Cmp(NewUint(18446744073709551615)))
	})

	t.Run("rejects bare numbers", func(t *testing.T) {
		var u Uint
		require.Error(t, json.Unmarshal([]byte(`5`), &u))
	})

	t.Run("rejects negatives", func(t *testing.T) {
		var u Uint
		require.Error(t, json.Unmarshal([]byte(`"-5"`), &u))
	})
}

func TestUintRange(t *testing.T) {
	t.Run("new validates ordering", func(t *testing.T) {
		r, err := NewUintRange(NewUint(1), NewUint(10))
		require.NoError(t, err)
		assert.True(t, r.Valid())

		_, err = NewUintRange(NewUint(10), NewUint(1))
		require.Error(t, err)
	})

	t.Run("contains is inclusive", func(t *testing.T) {
		r := UintRange{Start: NewUint(5), End: NewUint(10)}
		assert.True(t, r.Contains(NewUint(5)))
		assert.True(t, r.Contains(NewUint(10)))
		assert.False(t, r.Contains(NewUint(4)))
		assert.False(t, r.Contains(NewUint(11)))
	})

	t.Run("single point range", func(t *testing.T) {
		r := UintRange{Start: NewUint(7), End: NewUint(7)}
		assert.True(t, r.Valid())
		assert.True(t, r.Contains(NewUint(7)))
	})

	t.Run("intersect", func(t *testing.T) {
		a := UintRange{Start: NewUint(1), End: NewUint(10)}
		b := UintRange{Start: NewUint(5), End: NewUint(20)}

		got, ok := a.Intersect(b)
		require.True(t, ok)
		assert.Equal(t, "[5, 10]", got.String())

		_, ok = a.Intersect(UintRange{Start: NewUint(11), End: NewUint(20)})
		assert.False(t, ok)

		// Closed intervals: touching endpoints overlap.
		got, ok = a.Intersect(UintRange{Start: NewUint(10), End: NewUint(20)})
		require.True(t, ok)
		assert.Equal(t, "[10, 10]", got.String())
	})
}

func TestAnyOverlap(t *testing.T) {
	a := []UintRange{{Start: NewUint(1), End: NewUint(5)}, {Start: NewUint(20), End: NewUint(30)}}
	b := []UintRange{{Start: NewUint(6), End: NewUint(19)}}
	assert.False(t, AnyOverlap(a, b))

	b = append(b, UintRange{Start: NewUint(25), End: NewUint(25)})
	assert.True(t, AnyOverlap(a, b))
	assert.False(t, AnyOverlap(nil, b))
}
