// Package rights implements the role capability bitmask. Each bit is
// one independently grantable capability; a role holds any subset.
package rights

// Rights is a 64-bit capability mask stored on the role row.
// Unused bits are reserved zero.
type Rights uint64

const (
	ViewBooks   Rights = 1 << iota // 0001
	BorrowBooks                    // 0010
	ManageBooks                    // 0100
	ManageUsers                    // 1000
)

var names = []struct {
	flag Rights
	name string
}{
	{ViewBooks, "ViewBooks"},
	{BorrowBooks, "BorrowBooks"},
	{ManageBooks, "ManageBooks"},
	{ManageUsers, "ManageUsers"},
}

// Has reports whether r contains every bit of required. A caller
// requiring two flags must hold both; there is no partial match.
func Has(r, required Rights) bool {
	return r&required == required
}

func Set(r, flag Rights) Rights {
	return r | flag
}

func Clear(r, flag Rights) Rights {
	return r &^ flag
}

// Names lists the capability names present in r, in bit order.
func Names(r Rights) []string {
	var out []string
	for _, n := range names {
		if Has(r, n.flag) {
			out = append(out, n.name)
		}
	}
	return out
}

func ByName(name string) (Rights, bool) {
	for _, n := range names {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}
