package ledger

// Tier maps a cumulative-deposit threshold to a level and the withdrawal
// lock period that comes with it.
type Tier struct {
	Threshold int64
	Level     int
	LockDays  int
}

// tiers is scanned highest threshold first; the first matching entry wins.
// The terminating zero-threshold entry makes the scan total.
var tiers = []Tier{
	{Threshold: 150000, Level: 5, LockDays: 1},
	{Threshold: 100000, Level: 4, LockDays: 3},
	{Threshold: 20000, Level: 3, LockDays: 12},
	{Threshold: 10000, Level: 2, LockDays: 17},
	{Threshold: 0, Level: 1, LockDays: 21},
}

var claimRewards = map[int]float64{
	1: 0.5,
	2: 2,
	3: 5,
	4: 10,
	5: 20,
}

// LevelFor derives the level and lock period from a cumulative deposit
// total. Falls back to the lowest tier, which can only happen if the
// terminating table entry is ever removed.
func LevelFor(totalDeposit int64) (level, lockDays int) {
	for _, t := range tiers {
		if totalDeposit >= t.Threshold {
			return t.Level, t.LockDays
		}
	}
	return 1, 21
}

// RewardPerClaim returns the fixed reward credited by one mining claim at
// the given level. Unmapped levels pay the level-1 reward.
func RewardPerClaim(level int) float64 {
	if reward, ok := claimRewards[level]; ok {
		return reward
	}
	return claimRewards[1]
}
