package model

// Outcome is the result of a finished game from the player's point of view
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeTie  Outcome = "tie"
)

// IsValid returns true for win, loss and tie
func (o Outcome) IsValid() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomeTie
}

// StatRecord counts finished games for one mark
type StatRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Played returns the number of games counted in the record
func (r StatRecord) Played() int {
	return r.Wins + r.Losses + r.Ties
}

// LedgerEntry holds an identity's records for each mark.
// The zero value is the default entry.
type LedgerEntry struct {
	X StatRecord `json:"X"`
	O StatRecord `json:"O"`
}

// For returns the record for mark, or nil for MarkNone
func (e *LedgerEntry) For(mark Mark) *StatRecord {
	switch mark {
	case MarkX:
		return &e.X
	case MarkO:
		return &e.O
	default:
		return nil
	}
}

// Increment adds one to the counter for outcome on mark's record.
// It returns false and changes nothing for an invalid mark or outcome.
func (e *LedgerEntry) Increment(mark Mark, outcome Outcome) bool {
	rec := e.For(mark)
	if rec == nil {
		return false
	}
	switch outcome {
	case OutcomeWin:
		rec.Wins++
	case OutcomeLoss:
		rec.Losses++
	case OutcomeTie:
		rec.Ties++
	default:
		return false
	}
	return true
}

// Total sums both marks' records
func (e LedgerEntry) Total() StatRecord {
	return StatRecord{
		Wins:   e.X.Wins + e.O.Wins,
		Losses: e.X.Losses + e.O.Losses,
		Ties:   e.X.Ties + e.O.Ties,
	}
}

// IsZero returns true if nothing has been recorded
func (e LedgerEntry) IsZero() bool {
	return e == LedgerEntry{}
}
