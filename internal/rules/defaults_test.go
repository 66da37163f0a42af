package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger-dev/smsledger/internal/model"
)

func TestDefaultRegistry_KnownSenders(t *testing.T) {
	r := DefaultRegistry()

	for _, sender := range []string{
		"hdfcbk", "icicib", "kotakb", "sbiinb", "atmsbi", "sbiupi",
		"paytmb", "unionb", "indbnk", "sbipsg", "cbssbi", "hdfcli",
		"psbank", "airbnk", "idfcfb",
	} {
		assert.NotNil(t, r.Lookup(sender, ""), "expected rule set for %s", sender)
	}
	assert.Nil(t, r.Lookup("unknownsender", "rs.100 debited"))
}

func TestBuiltinRuleSets_AllValid(t *testing.T) {
	// Every built-in must pass the same validation as external rules.
	r := NewRegistry()
	for _, rs := range BuiltinRuleSets() {
		require.NoError(t, r.Register(rs), "built-in %s", rs.Label)
	}
}

func TestBuiltinRuleSets_DeclareRequiredFields(t *testing.T) {
	for _, rs := range BuiltinRuleSets() {
		fields := make(map[model.FieldKind]bool)
		for _, ex := range rs.Extractors {
			fields[ex.Field] = true
		}
		assert.True(t, fields[model.FieldAmount], "%s has no amount extractor", rs.Label)
		assert.True(t, fields[model.FieldDate], "%s has no date extractor", rs.Label)
		assert.NotEmpty(t, rs.DateLayouts, "%s has no date layouts", rs.Label)
		assert.NotEmpty(t, rs.DebitWords, "%s has no debit vocabulary", rs.Label)
		assert.NotEmpty(t, rs.CreditWords, "%s has no credit vocabulary", rs.Label)
	}
}

func TestBuiltinAmountPattern_AnchoredToCurrency(t *testing.T) {
	hdfc := hdfcBank()

	var amountPat = hdfc.Extractors
	found := ""
	for _, ex := range amountPat {
		if ex.Field != model.FieldAmount {
			continue
		}
		if m := ex.Pattern.FindStringSubmatch("call 1800111999 if rs.2,500.00 debited from a/c x9876"); m != nil {
			found = m[1]
			break
		}
	}
	// The phone number must not win over the currency-marked amount.
	assert.Equal(t, "2,500.00", found)
}

func TestBuiltinBalancePattern(t *testing.T) {
	hdfc := hdfcBank()
	for _, ex := range hdfc.Extractors {
		if ex.Field != model.FieldBalance {
			continue
		}
		m := ex.Pattern.FindStringSubmatch("avl bal rs.8,750.00")
		require.NotNil(t, m)
		assert.Equal(t, "8,750.00", m[1])
		return
	}
	t.Fatal("hdfc rule set has no balance extractor")
}
