package rules

import (
	"regexp"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Built-in rule sets for the bank short codes we decode today. All
// patterns match the canonical lowercased body produced by
// ingest.Preprocess. Amount patterns are anchored to a currency marker
// so incidental numbers (phone numbers, trip counters) never win.

// DefaultRegistry returns a registry loaded with the built-in rule
// sets. Panics if a built-in is malformed.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, rs := range BuiltinRuleSets() {
		if err := r.Register(rs); err != nil {
			panic(err)
		}
	}
	return r
}

// BuiltinRuleSets returns the compiled-in rule sets in priority order.
func BuiltinRuleSets() []*RuleSet {
	return []*RuleSet{
		hdfcBank(),
		iciciBank(),
		kotakBank(),
		sbiSavings(),
		sbiATM(),
		sbiUPI(),
		paytmBank(),
		unionBank(),
		indianBank(),
		sbiPassbook(),
		sbiCBS(),
		hdfcLife(),
		punjabSindBank(),
		airtelBank(),
		idfcFirstBank(),
	}
}

func ex(field model.FieldKind, pattern string) FieldExtractor {
	return FieldExtractor{Field: field, Pattern: regexp.MustCompile(pattern)}
}

func exT(field model.FieldKind, pattern string, t Transform) FieldExtractor {
	return FieldExtractor{Field: field, Pattern: regexp.MustCompile(pattern), Transform: t}
}

// Shared field patterns. An amount is only an amount next to a
// currency marker; balances sit behind an "avl bal" style label.
const (
	patAmountPrefix = `(?:rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`
	patAmountSuffix = `([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*(?:rs\b|inr\b)`
	patBalance      = `(?:avl|avail(?:able)?|avb)\.?\s*bal(?:ance)?(?:\s+is)?\s*:?\s*(?:rs\.?|inr)?\s*(-?[0-9][0-9,]*(?:\.[0-9]{1,2})?)`
	patAccountRef   = `(?:a/c|acct|account|ac)\s*(?:no\.?\s*)?:?\s*([x*][x*0-9]*[0-9])`
	patRefNo        = `(?:upi|imps|neft|rtgs)\s+ref\.?\s*no\.?\s*:?\s*([a-z0-9]+)`
	patRefNoPlain   = `\bref\s*(?:no|id)\s*:?\s*([a-z0-9]+)`
	patUTR          = `\butr\s*(?:ref\s*)?-?\s*([a-z0-9]+)`
	patUPIColon     = `\bupi\s*:\s*([0-9]{6,})`
	patDateDMY      = `\bon\s+([0-9]{1,2}-[0-9]{1,2}-[0-9]{2,4})`
	patDateDMonY    = `\bon\s+([0-9]{1,2}-[a-z]{3}-[0-9]{2,4})`
	patDateSlash    = `\bon\s+([0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4})`
)

var (
	baseDebitWords  = []string{"debited", "automatic payment of", " dr ", "withdrawn"}
	baseCreditWords = []string{"received", "credited", " cr ", "deposited"}
	baseRequire     = []string{"received", "debited", "credited", "withdrawn", "deposited", " cr ", " dr "}
)

// commonFields are the extractor chains shared by most banks, in
// fallback order per field.
func commonFields() []FieldExtractor {
	return []FieldExtractor{
		ex(model.FieldAmount, patAmountPrefix),
		ex(model.FieldAmount, patAmountSuffix),
		ex(model.FieldBalance, patBalance),
		ex(model.FieldAccountRef, patAccountRef),
		ex(model.FieldRefNo, patRefNo),
		ex(model.FieldRefNo, patUTR),
		ex(model.FieldRefNo, patRefNoPlain),
		ex(model.FieldRefNo, patUPIColon),
	}
}

func hdfcBank() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\bto\s+vpa\s+([a-z0-9.@_-]+)`, TransformStripPunct),
		exT(model.FieldCounterparty, `\bby\s+a/c\s+linked\s+to\s+vpa\s+([a-z0-9.@_-]+)`, TransformStripPunct),
		exT(model.FieldCounterparty, `\bat\s+([a-z0-9 .&-]+?)\s+on\b`, TransformCollapseSpaces),
		ex(model.FieldDate, patDateDMY),
		ex(model.FieldDate, patDateSlash),
	}
	return &RuleSet{
		Label:        "hdfc-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "hdfcbk"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-06", "2-1-2006", "2/1/06", "2/1/2006"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
		SkipWords:    []string{"request", "delivered"},
	}
}

func iciciBank() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `;\s*([a-z0-9 .&_@-]+?)\s+credited\b`, TransformCollapseSpaces),
		exT(model.FieldCounterparty, `\bfrom\s+([a-z0-9 .&_-]+?)\s*\.\s*upi\b`, TransformCollapseSpaces),
		exT(model.FieldCounterparty, `\bby\s+acct\s+([x0-9]+)`, TransformTrim),
		ex(model.FieldDate, patDateDMonY),
		ex(model.FieldDate, patDateDMY),
	}
	return &RuleSet{
		Label:        "icici-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "icicib"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-Jan-06", "2-Jan-2006", "2-1-06", "2-1-2006"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
		SkipWords:    []string{"requested", "will be", "delivered"},
	}
}

func kotakBank() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\bby\s+upi\s+id\s+([a-z0-9.@_-]+)`, TransformStripPunct),
		exT(model.FieldCounterparty, `\bdebited\s+from\s+kotak\s+bank\s+a/c\s+[x0-9]+\s+to\s+([a-z0-9 .@_-]+?)\s+on\b`, TransformCollapseSpaces),
		exT(model.FieldCounterparty, `\bvia\s+neft\s+from\s+([a-z0-9 ]+?)\s*-\s*utr\b`, TransformCollapseSpaces),
		ex(model.FieldDate, patDateDMY),
		ex(model.FieldDate, `\(([0-9]{2}-[0-9]{2}-[0-9]{4})\)`),
	}
	return &RuleSet{
		Label:        "kotak-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "kotakb"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-2006", "2-1-06"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
		SkipWords:    []string{"requested", "will be", "delivered", "earn"},
	}
}

func sbiSavings() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\bmobile\s+[0-9x]+\s*-\s*([a-z0-9 ]+?)\s*\(`, TransformCollapseSpaces),
		ex(model.FieldDate, patDateDMY),
		ex(model.FieldDate, patDateSlash),
	}
	return &RuleSet{
		Label:        "sbi-savings",
		Match:        SenderPredicate{Kind: MatchExact, Value: "sbiinb"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-06", "2-1-2006", "2/1/06", "2/1/2006"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
	}
}

func sbiATM() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\bwithdrawn\s+at\s+([a-z0-9 .&-]+?)\s+from\b`, TransformCollapseSpaces),
		exT(model.FieldCounterparty, `\bdone\s+at\s+([a-z0-9 .&-]+?)\s+on\b`, TransformCollapseSpaces),
		ex(model.FieldRefNo, `\btransaction\s+number\s+([a-z0-9]+)`),
		ex(model.FieldDate, patDateDMY),
		ex(model.FieldDate, patDateSlash),
		ex(model.FieldDate, `\bon\s+([0-9]{2}[a-z]{3}[0-9]{2})\b`),
	}
	return &RuleSet{
		Label:        "sbi-atm",
		Match:        SenderPredicate{Kind: MatchExact, Value: "atmsbi"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-06", "2/1/06", "02Jan06"},
		DebitWords:   append([]string{"transaction number"}, baseDebitWords...),
		CreditWords:  baseCreditWords,
		RequireWords: append([]string{"transaction number"}, baseRequire...),
	}
}

func sbiUPI() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\btransfer\s+to\s+([a-z0-9 .@_-]+?)\s+ref\s+no\b`, TransformCollapseSpaces),
		ex(model.FieldDate, `\bon\s*(?:date\s+)?([0-9]{2}[a-z]{3}[0-9]{2})\b`),
		ex(model.FieldDate, patDateDMY),
	}
	return &RuleSet{
		Label:        "sbi-upi",
		Match:        SenderPredicate{Kind: MatchExact, Value: "sbiupi"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"02Jan06", "2-1-06"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
	}
}

func paytmBank() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\breceived\s+from\s+([a-z0-9 ]+?)\s+in\s+your\b`, TransformCollapseSpaces),
		exT(model.FieldCounterparty, `\btowards\s+([a-z ]+?)\s*,`, TransformCollapseSpaces),
		exT(model.FieldCounterparty, `\bfrom\s+([a-z0-9 /()]+?)\s+on\b`, TransformCollapseSpaces),
		ex(model.FieldDate, patDateDMY),
		ex(model.FieldDate, `\bexecuted\s+on\s+([0-9-]+)`),
	}
	return &RuleSet{
		Label:        "paytm-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "paytmb"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-2006", "2-1-06", "2006-01-02"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: append([]string{"successfully executed"}, baseRequire...),
		SkipWords:    []string{"will be"},
	}
}

func unionBank() *RuleSet {
	fields := []FieldExtractor{
		ex(model.FieldDate, `\bon\s+([0-9]{2}-[0-9]{2}-[0-9]{4})`),
		ex(model.FieldDate, patDateDMY),
	}
	return &RuleSet{
		Label:        "union-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "unionb"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-2006", "2-1-06"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
		SkipWords:    []string{"otp"},
	}
}

func indianBank() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\bcredited\s+to\s+([a-z0-9.@_-]+?)\s*\(`, TransformStripPunct),
		exT(model.FieldCounterparty, `\bat\s+([a-z0-9 .&-]+?)\s+from\s+ac\b`, TransformCollapseSpaces),
		ex(model.FieldAccountRef, `\bfrom\s+ac\s*:\s*([x0-9]+)`),
		ex(model.FieldDate, patDateDMY),
		ex(model.FieldDate, `\bon\s+([0-9]{2}/[0-9]{2}/[0-9]{4})`),
	}
	return &RuleSet{
		Label:        "indian-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "indbnk"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-06", "2-1-2006", "2/1/2006"},
		DebitWords:   append([]string{"spent on"}, baseDebitWords...),
		CreditWords:  baseCreditWords,
		RequireWords: append([]string{"spent on"}, baseRequire...),
	}
}

func sbiPassbook() *RuleSet {
	fields := []FieldExtractor{
		ex(model.FieldAccountRef, `\bcredited\s+to\s+your\s+a/c\s+no\.?\s*([x0-9]*[0-9])`),
		ex(model.FieldDate, patDateSlash),
		ex(model.FieldDate, patDateDMY),
	}
	return &RuleSet{
		Label:        "sbi-passbook",
		Match:        SenderPredicate{Kind: MatchExact, Value: "sbipsg"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2/1/06", "2/1/2006", "2-1-06"},
		DebitWords:   baseDebitWords,
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
		SkipWords:    []string{"avail bal in a/c"},
	}
}

func sbiCBS() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\bdebit\s+by\s+([a-z0-9 ]+?)\s+of\b`, TransformCollapseSpaces),
		ex(model.FieldAccountRef, `\byour\s+a/?c\s+(?:no\.?\s*)?([x][x0-9]*[0-9])`),
		ex(model.FieldDate, patDateSlash),
		ex(model.FieldDate, patDateDMY),
	}
	return &RuleSet{
		Label:        "sbi-cbs",
		Match:        SenderPredicate{Kind: MatchExact, Value: "cbssbi"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2/1/06", "2/1/2006", "2-1-06"},
		DebitWords:   append([]string{"debit"}, baseDebitWords...),
		CreditWords:  baseCreditWords,
		RequireWords: append([]string{"debit"}, baseRequire...),
		SkipWords:    []string{"request"},
	}
}

func hdfcLife() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\bpayment\s+of\s+(?:rs\.?|inr)\s*[0-9][0-9,.]*\s+for\s+([a-z0-9 ]+?)\s+on\b`, TransformCollapseSpaces),
		ex(model.FieldDate, patDateSlash),
	}
	return &RuleSet{
		Label:        "hdfc-life",
		Match:        SenderPredicate{Kind: MatchExact, Value: "hdfcli"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2/1/06", "2/1/2006"},
		DebitWords:   append([]string{"we have received"}, baseDebitWords...),
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
	}
}

func punjabSindBank() *RuleSet {
	fields := []FieldExtractor{
		exT(model.FieldCounterparty, `\band\s+credited\s+to\s+(?:a/c\s+no\.?\s*)?([a-z0-9.@_-]+?)\s*\(upi\b`, TransformStripPunct),
		exT(model.FieldCounterparty, `\bto\s+beneficiary\s+([a-z0-9 ]+?)\s*(?:\.|$)`, TransformCollapseSpaces),
		ex(model.FieldRefNo, `\breference\s+number\s+([a-z0-9]+)`),
		ex(model.FieldDate, `\(([0-9]{1,2}-[0-9]{1,2}-[0-9]{2,4})`),
		ex(model.FieldDate, `\bon\s+([0-9]{4}-[0-9]{2}-[0-9]{2})`),
		ex(model.FieldDate, patDateDMY),
	}
	return &RuleSet{
		Label:        "punjab-sind-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "psbank"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-06", "2-1-2006", "2006-01-02"},
		DebitWords:   append([]string{"rtgs transaction"}, baseDebitWords...),
		CreditWords:  baseCreditWords,
		RequireWords: append([]string{"rtgs transaction"}, baseRequire...),
		SkipWords:    []string{"will be"},
	}
}

func airtelBank() *RuleSet {
	fields := []FieldExtractor{
		// The app garbles the rupee glyph to "?" in deposit alerts.
		ex(model.FieldAmount, `\bdeposited\s+\?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
		ex(model.FieldAccountRef, `\bsavings\s+a/c\s+([a-z0-9]+)`),
		ex(model.FieldRefNo, `\btxn\s+id\s*#?\s*([a-z0-9]+)`),
		ex(model.FieldDate, patDateDMY),
	}
	return &RuleSet{
		Label:        "airtel-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "airbnk"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2-1-2006", "2-1-06"},
		DebitWords:   append([]string{"to company", "charge of"}, baseDebitWords...),
		CreditWords:  baseCreditWords,
		RequireWords: append([]string{"charge of"}, baseRequire...),
		SkipWords:    []string{"registering"},
	}
}

func idfcFirstBank() *RuleSet {
	fields := []FieldExtractor{
		ex(model.FieldRefNo, `\bereceipt\s+number\s+([a-z0-9]+)`),
		ex(model.FieldAccountRef, `\bloan\s+a/c\s+no\.?\s*([x0-9]+)`),
		ex(model.FieldDate, patDateSlash),
	}
	return &RuleSet{
		Label:        "idfc-first-bank",
		Match:        SenderPredicate{Kind: MatchExact, Value: "idfcfb"},
		Extractors:   append(fields, commonFields()...),
		DateLayouts:  []string{"2/1/06", "2/1/2006"},
		DebitWords:   append([]string{"towards your loan"}, baseDebitWords...),
		CreditWords:  baseCreditWords,
		RequireWords: baseRequire,
		SkipWords:    []string{"start a new income stream", "will be"},
	}
}
