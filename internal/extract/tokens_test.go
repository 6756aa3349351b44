package extract

import (
	"testing"

	tu "github.com/HuLaxx/Shiftify-sub000/internal/testing"
)

func TestContinuationToken(t *testing.T) {
	tt := []struct {
		name string
		json string
		want string
	}{
		{
			name: "continuation item renderer",
			json: `{"contents":[{"musicResponsiveListItemRenderer":{}},
				{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"tier1"}}}}]}`,
			want: "tier1",
		},
		{
			name: "continuation item button",
			json: `{"continuationItemRenderer":{"button":{"buttonRenderer":{"command":{"continuationCommand":{"token":"button"}}}}}}`,
			want: "button",
		},
		{
			name: "playlist shelf continuation",
			json: `{"continuationContents":{"musicPlaylistShelfContinuation":{"continuations":[{"nextContinuationData":{"continuation":"tier2"}}]}}}`,
			want: "tier2",
		},
		{
			name: "music shelf continuation",
			json: `{"continuationContents":{"musicShelfContinuation":{"continuations":[{"reloadContinuationData":{"continuation":"tier2b"}}]}}}`,
			want: "tier2b",
		},
		{
			name: "first tab shelf",
			json: `{"contents":{"singleColumnBrowseResultsRenderer":{"tabs":[{"tabRenderer":{"content":{"sectionListRenderer":{"contents":[
				{"musicCarouselShelfRenderer":{}},
				{"musicPlaylistShelfRenderer":{"continuations":[{"nextContinuationData":{"continuation":"tier3"}}]}}
			]}}}}]}}}`,
			want: "tier3",
		},
		{
			name: "anywhere in the tree",
			json: `{"a":{"b":[{"c":{"nextContinuationData":{"continuation":"tier4"}}}]}}`,
			want: "tier4",
		},
		{
			name: "command anywhere",
			json: `{"x":{"continuationCommand":{"token":"cmd"}}}`,
			want: "cmd",
		},
		{
			name: "earlier tier wins",
			json: `{"continuationContents":{"musicPlaylistShelfContinuation":{"continuations":[{"nextContinuationData":{"continuation":"tier2"}}],
				"contents":[{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"tier1"}}}}]}}}`,
			want: "tier1",
		},
		{
			name: "shelf path beats generic scan",
			json: `{"aaa":{"nextContinuationData":{"continuation":"generic"}},
				"continuationContents":{"musicShelfContinuation":{"continuations":[{"nextContinuationData":{"continuation":"shelf"}}]}}}`,
			want: "shelf",
		},
		{
			name: "none",
			json: `{"contents":{"sectionListRenderer":{"contents":[]}}}`,
			want: "",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContinuationToken(tu.Node(t, tc.json)); got != tc.want {
				t.Errorf("ContinuationToken() = %q, want %q", got, tc.want)
			}
		})
	}
}
