package quota

import "errors"

// ErrInsufficientTokens is returned when a caller has no narratives left for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultMonthlyTokens is the allowance used when none is configured.
const DefaultMonthlyTokens = 100

const monthLayout = "2006-01"
