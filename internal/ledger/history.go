package ledger

import (
	"sort"

	"starledger/internal/model"
)

// Entry kinds in the merged transaction history.
const (
	EntryDeposit    = "deposit"
	EntryWithdrawal = "withdrawal"
	EntryClaim      = "claim"
)

// HistoryPageSize is the number of entries per history page.
const HistoryPageSize = 10

// HistoryEntry is one line of the merged transaction history.
type HistoryEntry struct {
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
	Time   int64   `json:"time"`
}

// HistoryPage is a single page of the reverse-chronological history view.
type HistoryPage struct {
	Entries []HistoryEntry `json:"entries"`
	Page    int            `json:"page"`
	Total   int            `json:"total"`
	HasPrev bool           `json:"has_prev"`
	HasNext bool           `json:"has_next"`
}

// mergeHistory flattens the three event logs into one list sorted by time
// descending: deposits, successful withdrawals and mining claims. Pending
// and rejected withdrawals are excluded. The function never mutates the
// source logs.
//
// Timestamps have second resolution, so ties are real. The sort is stable
// over the deposit, withdrawal, claim concatenation order.
func mergeHistory(u *model.UserLedger) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(u.Deposits)+len(u.WithdrawRequests)+len(u.MiningLogs))
	for _, d := range u.Deposits {
		entries = append(entries, HistoryEntry{Kind: EntryDeposit, Amount: float64(d.Amount), Time: d.Time})
	}
	for _, w := range u.WithdrawRequests {
		if w.Status == model.WithdrawStatusSuccess {
			entries = append(entries, HistoryEntry{Kind: EntryWithdrawal, Amount: w.Amount, Time: w.Time})
		}
	}
	for _, m := range u.MiningLogs {
		entries = append(entries, HistoryEntry{Kind: EntryClaim, Amount: m.Amount, Time: m.Time})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time > entries[j].Time
	})
	return entries
}

// paginate slices one page out of the merged list. An out-of-range page is
// not an error: it yields empty entries with HasPrev/HasNext computed from
// the same formulas, which is the "no transactions" display case.
func paginate(entries []HistoryEntry, page, size int) HistoryPage {
	total := len(entries)
	pageEntries := []HistoryEntry{}
	if page >= 0 {
		start := page * size
		if start < total {
			end := start + size
			if end > total {
				end = total
			}
			pageEntries = append(pageEntries, entries[start:end]...)
		}
	}
	return HistoryPage{
		Entries: pageEntries,
		Page:    page,
		Total:   total,
		HasPrev: page > 0,
		HasNext: (page+1)*size < total,
	}
}
