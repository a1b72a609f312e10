package rights_test

import (
	"testing"

	"github.com/bookhive/borrow-service/internal/rights"
	"github.com/stretchr/testify/require"
)

func TestHas(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		held     rights.Rights
		required rights.Rights
		want     bool
	}{
		{"single flag held", rights.ViewBooks, rights.ViewBooks, true},
		{"single flag missing", rights.ViewBooks, rights.BorrowBooks, false},
		{"subset of combined", rights.ViewBooks | rights.BorrowBooks, rights.BorrowBooks, true},
		{"both required both held", rights.ViewBooks | rights.ManageBooks, rights.ViewBooks | rights.ManageBooks, true},
		{"both required one held", rights.ViewBooks, rights.ViewBooks | rights.ManageBooks, false},
		{"zero required always passes", rights.ViewBooks, 0, true},
		{"admin mask holds everything", rights.ViewBooks | rights.BorrowBooks | rights.ManageBooks | rights.ManageUsers, rights.ManageUsers, true},
		{"empty mask holds nothing", 0, rights.ViewBooks, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, rights.Has(tt.held, tt.required))
		})
	}
}

func TestSetClear(t *testing.T) {
	t.Parallel()
	r := rights.Set(0, rights.ViewBooks)
	r = rights.Set(r, rights.ManageUsers)
	require.True(t, rights.Has(r, rights.ViewBooks|rights.ManageUsers))

	r = rights.Clear(r, rights.ViewBooks)
	require.False(t, rights.Has(r, rights.ViewBooks))
	require.True(t, rights.Has(r, rights.ManageUsers))

	// clearing a flag that is not set is a no-op
	require.Equal(t, r, rights.Clear(r, rights.BorrowBooks))
}

func TestNames(t *testing.T) {
	t.Parallel()
	require.Equal(t,
		[]string{"ViewBooks", "BorrowBooks", "ManageUsers"},
		rights.Names(rights.ViewBooks|rights.BorrowBooks|rights.ManageUsers))
	require.Nil(t, rights.Names(0))

	flag, ok := rights.ByName("ManageBooks")
	require.True(t, ok)
	require.Equal(t, rights.ManageBooks, flag)

	_, ok = rights.ByName("Nope")
	require.False(t, ok)
}
