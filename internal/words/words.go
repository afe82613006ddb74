// Package words holds small string scanning helpers.
package words

// FirstWord returns the prefix of s up to the first ASCII space, or s itself
// when it contains no space. The result shares memory with s.
func FirstWord(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[:i]
		}
	}
	return s
}
