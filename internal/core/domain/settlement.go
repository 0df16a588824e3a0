package domain

import "strings"

// PCGE posting accounts used by the automatic purchase journal.
const (
	AccountCash      = "1011" // Caja - Moneda Nacional
	AccountBank      = "1041" // Cuentas corrientes operativas
	AccountInputTax  = "4011" // IGV - Cuenta propia
	AccountPayable   = "4211" // Facturas por pagar - No emitidas
	AccountPurchases = "6011" // Mercaderias manufacturadas
)

// SettlementMethod is the closed set of ways a purchase can be settled.
// It is resolved once from (payment term, payment method) so the mapping
// to credit accounts is a single exhaustive lookup.
type SettlementMethod int

const (
	SettleCash SettlementMethod = iota
	SettleBankTransfer
	SettlePayable
)

// mobile-wallet and wire keywords that route settlement through the bank
// account; matched case-insensitively as substrings ("TRANSFERENCIA BCP"
// matches "transfer").
var bankKeywords = []string{"transfer", "yape", "plin"}

// ResolveSettlementMethod maps a purchase's payment terms onto a settlement
// method. Credit terms always win; otherwise the free-form payment method
// string decides between bank and cash.
func ResolveSettlementMethod(term PaymentTerm, method string) SettlementMethod {
	if term == TermCredit {
		return SettlePayable
	}
	lowered := strings.ToLower(method)
	for _, kw := range bankKeywords {
		if strings.Contains(lowered, kw) {
			return SettleBankTransfer
		}
	}
	return SettleCash
}

// AccountCode returns the PCGE account credited for this settlement method.
func (m SettlementMethod) AccountCode() string {
	switch m {
	case SettlePayable:
		return AccountPayable
	case SettleBankTransfer:
		return AccountBank
	default:
		return AccountCash
	}
}

func (m SettlementMethod) String() string {
	switch m {
	case SettlePayable:
		return "PAYABLE"
	case SettleBankTransfer:
		return "BANK_TRANSFER"
	default:
		return "CASH"
	}
}
