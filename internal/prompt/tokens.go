package prompt

// EstimateTokens approximates the token count of a prompt at roughly four
// characters per token. Rough heuristic, used only to warn before sending
// oversized prompts to a local runtime.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len([]rune(text)) / 4
	if tokens == 0 {
		return 1
	}
	return tokens
}
