package core

// The data files spell banks two ways: canonical Arabic names in the newest
// schema and legacy English slugs from the first generation. Both must resolve
// to one logical bank, so the tables below are total over the observed
// vocabulary and canonicalization is idempotent.

// bankDisplayNames maps every known raw bank value to its display name.
var bankDisplayNames = map[string]string{
	// Arabic names (current schema)
	"السعودي الفرنسي": "السعودي الفرنسي",
	"الراجحي":         "الراجحي",
	"برق":             "برق",
	"تيكمو":           "تيكمو",
	"STC Bank":        "STC Bank",
	"Unknown":         "غير محدد",
	"ATC":             "ATC",
	// Legacy English slugs
	"banque-saudi": "السعودي الفرنسي",
	"alrajhi":      "الراجحي",
	"barq":         "برق",
	"tikmo":        "تيكمو",
	"stc":          "STC Bank",
}

// bankKeys maps display names (and the placeholders) to stable grouping keys,
// the same identifiers the balance view uses for its elements.
var bankKeys = map[string]string{
	"السعودي الفرنسي": "banque-saudi",
	"الراجحي":         "alrajhi",
	"برق":             "barq",
	"تيكمو":           "tikmo",
	"STC Bank":        "stc",
	"غير محدد":        "unknown",
	"Unknown":         "unknown",
	"ATC":             "atc",
}

// CanonicalBankName resolves any stored bank spelling to its display name.
// Unmapped values degrade to the raw string so aggregation still works.
func CanonicalBankName(raw string) string {
	if name, ok := bankDisplayNames[raw]; ok {
		return name
	}
	return raw
}

// BankKey resolves any stored bank spelling to its grouping key.
func BankKey(raw string) string {
	name := CanonicalBankName(raw)
	if key, ok := bankKeys[name]; ok {
		return key
	}
	// Legacy slugs are already keys.
	if _, ok := bankDisplayNames[raw]; ok {
		return raw
	}
	return raw
}

// KnownBank reports whether the raw value is part of the mapped vocabulary.
func KnownBank(raw string) bool {
	_, ok := bankDisplayNames[raw]
	return ok
}

// UnmappedBanks returns the distinct bank values in records that the alias
// tables do not cover, in first-seen order. Used by the data-quality audit so
// a vocabulary drift is caught at load time instead of silently splitting
// chart buckets.
func UnmappedBanks(records []TransactionRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if KnownBank(r.Bank) {
			continue
		}
		if _, ok := seen[r.Bank]; ok {
			continue
		}
		seen[r.Bank] = struct{}{}
		out = append(out, r.Bank)
	}
	return out
}
