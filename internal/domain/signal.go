package domain

// DeriveSignal maps a change percentage to a recommendation tier.
//
// Canonical threshold table:
//
//	changePercent > 3  -> Strong Buy
//	changePercent > 1  -> Buy
//	changePercent > 0  -> Hold
//	otherwise          -> Neutral
//
// Sell is never derived; it only enters a record from an authoritative
// upstream signal.
func DeriveSignal(changePercent float64) Signal {
	switch {
	case changePercent > 3:
		return SignalStrongBuy
	case changePercent > 1:
		return SignalBuy
	case changePercent > 0:
		return SignalHold
	default:
		return SignalNeutral
	}
}

// FillSignal derives and sets the record's signal when no authoritative
// upstream signal is present. Authoritative signals are left untouched.
func FillSignal(record *StockRecord) {
	if record.SignalAuthoritative && record.Signal != SignalNone {
		return
	}
	if record.Signal == SignalNone {
		record.Signal = DeriveSignal(record.ChangePercent)
	}
}
