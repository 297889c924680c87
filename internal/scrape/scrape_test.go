package scrape

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecruitIDs(t *testing.T) {
	page := `<div>
		<a href="/recruit/300">x</a>
		<a href="/recruit/1200">y</a>
		<a href="/recruit/300">dup</a>
		<a href="/recruit/300/apply">nested</a>
		<a href="/company/9">company</a>
		<a>no href</a>
	</div>`

	ids, err := RecruitIDs(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Sorted as strings, like the ids are stored.
	if diff := cmp.Diff([]string{"1200", "300"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRecruitIDsEmptyPage(t *testing.T) {
	ids, err := RecruitIDs(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no ids, got %v", ids)
	}
}

func TestJSONLDBlocks(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">{"a":1}</script>
	<script type="application/ld+json">   </script>
	<script type="text/javascript">var x = 1;</script>
	<script type="application/ld+json">{"b":2}</script>
	</head></html>`

	blocks, err := JSONLDBlocks(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{`{"a":1}`, `{"b":2}`}, blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestImageFromJSONLD(t *testing.T) {
	tests := []struct {
		name    string
		blocks  []string
		want    string
		wantErr bool
	}{
		{
			name:   "first image object wins",
			blocks: []string{`{"@graph":[{"@type":"WebPage"},{"@type":"ImageObject","url":"https://img/1.png"},{"@type":"ImageObject","url":"https://img/2.png"}]}`},
			want:   "https://img/1.png",
		},
		{
			name: "falls through to next block",
			blocks: []string{
				`{"@context":"https://schema.org"}`,
				`{"@graph":[{"@type":"ImageObject"}]}`,
				`{"@graph":[{"@type":"ImageObject","url":"https://img/3.png"}]}`,
			},
			want: "https://img/3.png",
		},
		{
			name:   "no image",
			blocks: []string{`{"@graph":[{"@type":"JobPosting"}]}`, `[1,2]`},
			want:   "",
		},
		{
			name:    "invalid block",
			blocks:  []string{`{"@graph":[`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImageFromJSONLD(tt.blocks)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
