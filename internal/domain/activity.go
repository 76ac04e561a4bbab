package domain

// Activity is a game or a practice. The original Python source models
// these as a Game/Practice class pair; here they share one struct (per the
// design note that branching belongs only in the checker and evaluator, not
// in the data model) with PracticeNum meaningful only when Kind == Practice.
type Activity struct {
	ID          string
	Association string
	Age         string
	Tier        string
	Division    string
	Kind        Kind
	PracticeNum int
}

// Division9 reports whether the activity's division string begins with '9',
// the rule that drives the evening-only hard constraint. The spec
// deliberately preserves the original's first-character-only check.
func (a *Activity) Division9() bool {
	return len(a.Division) > 0 && a.Division[0] == '9'
}

// MutexAges is the game-age set that may never share a slot with another
// game of an age in the same set (U18 is absent by design).
var MutexAges = map[string]bool{
	"U15": true,
	"U16": true,
	"U17": true,
	"U19": true,
}
