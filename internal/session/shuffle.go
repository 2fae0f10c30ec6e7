package session

// Shuffle permutes s in place with Fisher-Yates. intn must return a uniform
// value in [0, n).
func Shuffle[T any](s []T, intn func(n int) int) {
	for i := len(s) - 1; i > 0; i-- {
		j := intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
