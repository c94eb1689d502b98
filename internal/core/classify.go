package core

// Kind is the directional classification of a record.
type Kind string

const (
	KindIncome       Kind = "income"
	KindExpense      Kind = "expense"
	KindTransfer     Kind = "transfer"
	KindUnclassified Kind = "unclassified"
)

// Transaction type tags as written in the data files. The transfer tag drifted
// between singular and plural across file generations; both mean transfer.
const (
	TagIncome      = "دخل"
	TagExpense     = "صرف"
	TagTransfer    = "تحويل"
	TagTransferAlt = "تحويلات"
)

// Classify derives the record's direction from transactionType alone. The
// amount sign is never consulted: the newest schema stores magnitudes, and the
// old sign-fallback misclassified over half the history. Total and
// deterministic over all inputs.
func Classify(t TransactionRecord) Kind {
	switch t.TransactionType {
	case TagIncome:
		return KindIncome
	case TagExpense:
		return KindExpense
	case TagTransfer, TagTransferAlt:
		return KindTransfer
	default:
		return KindUnclassified
	}
}
