package ledger

// Categories is the fixed expense category vocabulary. The client offers
// exactly these choices and the bundled server rejects anything else, so
// both sides validate against the same list.
var Categories = []string{
	"food",
	"cafe",
	"transport",
	"living",
	"shopping",
	"other",
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
