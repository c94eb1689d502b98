package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		want Kind
	}{
		{name: "income tag", typ: "دخل", want: KindIncome},
		{name: "expense tag", typ: "صرف", want: KindExpense},
		{name: "transfer singular", typ: "تحويل", want: KindTransfer},
		{name: "transfer plural", typ: "تحويلات", want: KindTransfer},
		{name: "absent tag", typ: "", want: KindUnclassified},
		{name: "unknown tag", typ: "something", want: KindUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := TransactionRecord{TransactionType: tt.typ, Amount: 50}
			assert.Equal(t, tt.want, Classify(r))
		})
	}
}

func TestClassifyIgnoresAmountSign(t *testing.T) {
	// The legacy sign fallback is gone: an expense with a positive amount and
	// an income with a negative one both classify by tag alone.
	assert.Equal(t, KindExpense, Classify(TransactionRecord{TransactionType: TagExpense, Amount: 100}))
	assert.Equal(t, KindIncome, Classify(TransactionRecord{TransactionType: TagIncome, Amount: -100}))
	assert.Equal(t, KindUnclassified, Classify(TransactionRecord{Amount: -100}))
}

func TestClassifyDeterministic(t *testing.T) {
	r := TransactionRecord{TransactionType: TagTransfer, Amount: 10, Timestamp: time.Now()}
	first := Classify(r)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(r))
	}
}
