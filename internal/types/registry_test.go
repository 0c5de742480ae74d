package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRegistry_RejectsBadWordSize(t *testing.T) {
	for _, wordSize := range []int{0, 1, 2, 3, 16} {
		_, err := NewRegistry(wordSize)
		require.Error(t, err)
	}
}

func TestNewRegistry_Interning(t *testing.T) {
	r, err := NewRegistry(4)
	require.NoError(t, err)

	require.Same(t, r.Lookup(Int), r.Lookup(Int))
	require.NotSame(t, r.Lookup(Int), r.Lookup(UInt))
}

func TestPrimitiveType_Predicates(t *testing.T) {
	r, err := NewRegistry(4)
	require.NoError(t, err)

	for _, c := range []struct {
		kind            Kind
		size            int
		signed          bool
		isInt, isLong   bool
		isFloat         bool
	}{
		{Byte, 1, false, true, false, false},
		{SByte, 1, true, true, false, false},
		{Short, 2, true, true, false, false},
		{UShort, 2, false, true, false, false},
		{Int, 4, true, true, false, false},
		{UInt, 4, false, true, false, false},
		{Long, 8, true, false, true, false},
		{ULong, 8, false, false, true, false},
		{Bool, 4, false, true, false, false},
		{Float, 4, false, false, false, true},
		{Double, 8, false, false, false, true},
		{Void, 0, false, false, false, false},
		{UIntPtr, 4, false, true, false, false}, // word size 4: uintptr is int-family
	} {
		pt := r.Lookup(c.kind)
		require.Equal(t, c.size, pt.Size, c.kind)
		require.Equal(t, c.signed, pt.IsSigned(), c.kind)
		require.Equal(t, c.isInt, pt.IsInt(), c.kind)
		require.Equal(t, c.isLong, pt.IsLong(), c.kind)
		require.Equal(t, c.isFloat, pt.IsFloat(), c.kind)
	}
}

func TestPrimitiveType_UIntPtr_WordSize8IsLong(t *testing.T) {
	r, err := NewRegistry(8)
	require.NoError(t, err)

	ptr := r.Lookup(UIntPtr)
	require.Equal(t, 8, ptr.Size)
	require.True(t, ptr.IsLong())
	require.False(t, ptr.IsInt())
}

func TestPrimitiveType_Shift32Mask32(t *testing.T) {
	r, err := NewRegistry(4)
	require.NoError(t, err)

	for _, c := range []struct {
		kind          Kind
		shift32, mask uint32
	}{
		{Byte, 24, 0xFF},
		{SByte, 24, 0xFF},
		{Short, 16, 0xFFFF},
		{UShort, 16, 0xFFFF},
	} {
		pt := r.Lookup(c.kind)
		require.Equal(t, c.shift32, pt.Shift32(), c.kind)
		require.Equal(t, c.mask, pt.Mask32(), c.kind)
	}

	require.Panics(t, func() { r.Lookup(Int).Shift32() })
	require.Panics(t, func() { r.Lookup(Int).Mask32() })
}

func TestPrimitiveType_SignatureTag_Stable(t *testing.T) {
	r, err := NewRegistry(4)
	require.NoError(t, err)

	first := r.Lookup(Int).SignatureTag()
	second := r.Lookup(Int).SignatureTag()
	require.Equal(t, first, second)
	require.NotEqual(t, first, r.Lookup(UInt).SignatureTag())
}

func TestRegistry_PointerTo(t *testing.T) {
	r, err := NewRegistry(4)
	require.NoError(t, err)

	elem := r.Lookup(Int)
	ptr := r.PointerTo(elem)
	require.Equal(t, elem, ptr.Underlying)
	require.Equal(t, r.Pointer().Size, ptr.Size)
	require.Equal(t, r.Pointer().SignatureTag(), ptr.SignatureTag())
}
