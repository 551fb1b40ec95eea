package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindedUnselected(t *testing.T) {
	f := &PendingFeedback{Items: []PaymentItem{
		{ID: "pay", Kind: PaymentMoney, Selected: true},
		{ID: "cost", Kind: PaymentSanityCost, Binded: true},
	}}

	assert.True(t, f.BindedUnselected())

	f.Item("cost").Selected = true
	assert.False(t, f.BindedUnselected())
}

func TestFeedbackItem_Lookup(t *testing.T) {
	f := &PendingFeedback{Items: []PaymentItem{{ID: "x", Value: 20}}}

	assert.NotNil(t, f.Item("x"))
	assert.Nil(t, f.Item("missing"))

	// Mutation through the returned pointer must stick.
	f.Item("x").Selected = true
	assert.True(t, f.Items[0].Selected)
}
