package data

// ExpPerLevel is the flat experience cost of each level step.
const ExpPerLevel = 100

// LevelForExp returns the level a character with the given total
// experience holds: level 1 at 0 XP, one level per 100 XP.
func LevelForExp(exp int64) int32 {
	if exp < 0 {
		return 1
	}
	return int32(1 + exp/ExpPerLevel)
}

// ExpForLevel returns the minimum total experience for a level.
func ExpForLevel(level int32) int64 {
	if level <= 1 {
		return 0
	}
	return int64(level-1) * ExpPerLevel
}
