package service

import "strconv"

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}
