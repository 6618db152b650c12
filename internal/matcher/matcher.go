// Package matcher scores statement debits against payable records. Scoring
// is additive over three independent factors (amount proximity, date
// proximity, description token overlap); candidates below the retention
// threshold are dropped and the survivors come back ordered best-first.
package matcher

import (
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"concilia/extrato-match/internal/dateutils"
	"concilia/extrato-match/internal/logging"
	"concilia/extrato-match/internal/models"
)

// RetainThreshold is the minimum total score a candidate needs to survive.
// Below it a pairing is considered noise rather than a plausible match.
const RetainThreshold = 30

// Description tokens shorter than this carry no signal (articles,
// prepositions, bank abbreviations) and are ignored.
const minDescriptionToken = 3

// descriptionOverlapScore is awarded once when any significant token of one
// description appears inside the other.
const descriptionOverlapScore = 10

// Amount proximity bands. The difference between the debit amount and the
// bill's effective amount selects the highest band it fits under; a
// difference of fifty or more disqualifies the candidate outright.
var amountBands = []struct {
	limit decimal.Decimal
	score int
}{
	{decimal.New(1, -2), 100}, // exact to the centavo
	{decimal.New(1, 0), 80},
	{decimal.New(5, 0), 60},
	{decimal.New(10, 0), 40},
	{decimal.New(50, 0), 20},
}

// Date proximity bands, in whole days between the debit date and the bill's
// effective date.
var dateBands = []struct {
	limit int
	score int
}{
	{0, 30},
	{3, 25},
	{7, 20},
	{15, 15},
	{30, 10},
}

// Matcher pairs statement debits with payable records.
type Matcher struct {
	log logging.Logger
}

// New creates a Matcher.
func New(logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Matcher{log: logger}
}

// Match scores every bill against the given statement debit and returns the
// retained candidates ordered by score, highest first. Ties keep the input
// order of the bills. The bill list is never mutated; confirming a match is
// the caller's decision.
func (m *Matcher) Match(tx models.BankTransaction, bills []models.PaidRecord) []models.MatchCandidate {
	log := m.log.WithFields(
		logging.Field{Key: logging.FieldTransaction, Value: tx.ID},
	)

	txDate, _, err := dateutils.ParseDate(tx.Date)
	if err != nil {
		// Undated debits can still match on amount and description.
		txDate = time.Time{}
	}

	candidates := make([]models.MatchCandidate, 0, len(bills))
	for _, bill := range bills {
		score, ok := m.score(tx, txDate, bill)
		if !ok {
			continue
		}
		if score < RetainThreshold {
			log.Debug("Discarding weak candidate",
				logging.Field{Key: logging.FieldBillID, Value: bill.ID},
				logging.Field{Key: logging.FieldScore, Value: score})
			continue
		}
		log.Debug("Retaining candidate",
			logging.Field{Key: logging.FieldBillID, Value: bill.ID},
			logging.Field{Key: logging.FieldScore, Value: score},
			logging.Field{Key: "description_similarity", Value: DescriptionSimilarity(tx.Description, bill.Description)})
		candidates = append(candidates, models.MatchCandidate{BillID: bill.ID, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// score computes the total score for one pairing. The second return is false
// when the amount factor disqualifies the candidate.
func (m *Matcher) score(tx models.BankTransaction, txDate time.Time, bill models.PaidRecord) (int, bool) {
	amount := amountScore(tx.Amount.Sub(bill.EffectiveAmount()).Abs())
	if amount == 0 {
		// Amount is the anchor: without it, date and description
		// proximity are coincidence.
		return 0, false
	}

	total := amount
	if billDate := bill.EffectiveDate(); !txDate.IsZero() && !billDate.IsZero() {
		total += dateScore(dateutils.DaysBetween(txDate, billDate))
	}
	if descriptionsOverlap(tx.Description, bill.Description) {
		total += descriptionOverlapScore
	}
	return total, true
}

func amountScore(diff decimal.Decimal) int {
	for _, band := range amountBands {
		if diff.LessThan(band.limit) {
			return band.score
		}
	}
	return 0
}

func dateScore(days int) int {
	for _, band := range dateBands {
		if days <= band.limit {
			return band.score
		}
	}
	return 0
}

// descriptionsOverlap reports whether any significant token of either
// description appears as a substring of the other, case-insensitively.
func descriptionsOverlap(a, b string) bool {
	ua := strings.ToUpper(a)
	ub := strings.ToUpper(b)
	return tokensContained(ua, ub) || tokensContained(ub, ua)
}

func tokensContained(from, in string) bool {
	for _, token := range strings.Fields(from) {
		if len(token) < minDescriptionToken {
			continue
		}
		if strings.Contains(in, token) {
			return true
		}
	}
	return false
}

// DescriptionSimilarity returns a 0..1 edit-distance similarity between two
// descriptions. It never influences the score; it is surfaced in debug logs
// as a hint for reviewing borderline matches by hand.
func DescriptionSimilarity(a, b string) float64 {
	ua := strings.ToUpper(strings.TrimSpace(a))
	ub := strings.ToUpper(strings.TrimSpace(b))
	if ua == "" && ub == "" {
		return 1
	}
	longest := len([]rune(ua))
	if l := len([]rune(ub)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(ua, ub))/float64(longest)
}
