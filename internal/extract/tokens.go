package extract

var shelfContinuations = []string{"musicPlaylistShelfContinuation", "musicShelfContinuation"}

var shelfRenderers = []string{"musicPlaylistShelfRenderer", "musicShelfRenderer"}

// ContinuationToken returns the token for the next page, or "" when there is none.
//
// Tiers are tried in order and the first hit wins:
//  1. a continuationItemRenderer with a continuation command
//  2. continuationContents shelf continuations
//  3. the shelf of the first tab of a single column browse result
//  4. any continuation command or continuation data anywhere in the tree
func ContinuationToken(root any) string {
	for _, tier := range []func(any) string{
		continuationItemToken,
		shelfContinuationToken,
		firstTabShelfToken,
		anyContinuationToken,
	} {
		if token := tier(root); token != "" {
			return token
		}
	}
	return ""
}

func continuationItemToken(root any) string {
	var token string
	Walk(root, func(m map[string]any) bool {
		if token != "" {
			return false
		}
		item := digMap(m, "continuationItemRenderer")
		if item == nil {
			return true
		}
		for _, path := range [][]any{
			{"continuationEndpoint", "continuationCommand", "token"},
			{"button", "buttonRenderer", "command", "continuationCommand", "token"},
		} {
			if token = digString(item, path...); token != "" {
				break
			}
		}
		return token == ""
	})
	return token
}

func shelfContinuationToken(root any) string {
	for _, name := range shelfContinuations {
		if token := continuationsToken(dig(root, "continuationContents", name, "continuations")); token != "" {
			return token
		}
	}
	return ""
}

func firstTabShelfToken(root any) string {
	sections, _ := dig(root, "contents", "singleColumnBrowseResultsRenderer", "tabs", 0,
		"tabRenderer", "content", "sectionListRenderer", "contents").([]any)
	for _, section := range sections {
		for _, name := range shelfRenderers {
			if token := continuationsToken(dig(section, name, "continuations")); token != "" {
				return token
			}
		}
	}
	return ""
}

// continuationsToken reads the first token from a legacy "continuations" list.
func continuationsToken(v any) string {
	list, _ := v.([]any)
	for _, entry := range list {
		for _, key := range []string{"nextContinuationData", "reloadContinuationData"} {
			if token := digString(entry, key, "continuation"); token != "" {
				return token
			}
		}
	}
	return ""
}

func anyContinuationToken(root any) string {
	var token string
	Walk(root, func(m map[string]any) bool {
		if token != "" {
			return false
		}
		switch {
		case digString(m, "continuationCommand", "token") != "":
			token = digString(m, "continuationCommand", "token")
		case digString(m, "nextContinuationData", "continuation") != "":
			token = digString(m, "nextContinuationData", "continuation")
		case digString(m, "reloadContinuationData", "continuation") != "":
			token = digString(m, "reloadContinuationData", "continuation")
		}
		return token == ""
	})
	return token
}
