package engine

import "fmt"

func Max32(x, y int32) int32 {
	if x > y {
		return x
	}
	return y
}

func Min32(x, y int32) int32 {
	if x < y {
		return x
	}
	return y
}

// abs32 returns the absolute value of x.
func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int32) bool {
	return abs32(score) >= MateScore
}

// FormatScore renders a white-relative score as "cp N" or "mate N" where N
// counts the winner's moves, negative when black mates.
func FormatScore(score int32, mateIn int) string {
	if IsMateScore(score) {
		return fmt.Sprintf("mate %d", mateIn)
	}
	return fmt.Sprintf("cp %d", score)
}
