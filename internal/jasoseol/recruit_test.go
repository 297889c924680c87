package jasoseol

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	apierrors "github.com/p-shah256/jasoseol/pkg/errors"
)

const searchPage = `<html><body>
<a href="/recruit/20512">A</a>
<a href="/recruit/19877">B</a>
<a href="/recruit/20512">A again</a>
<a href="/recruit/abc">not a recruit</a>
<a href="https://jasoseol.com/recruit/1">absolute</a>
</body></html>`

func recruitPage(imageURL string) string {
	return fmt.Sprintf(`<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
  {"@type":"JobPosting","title":"Backend"},
  {"@type":"ImageObject","url":%q}
]}</script>
</head></html>`, imageURL)
}

type agentLog struct {
	mu     sync.Mutex
	agents []string
}

func (l *agentLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.agents = append(l.agents, r.UserAgent())
}

func (l *agentLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.agents...)
}

func recruitServer(t *testing.T) (*httptest.Server, *agentLog) {
	t.Helper()
	agents := &agentLog{}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		agents.add(r)
		fmt.Fprint(w, searchPage)
	})
	mux.HandleFunc("/recruit/20512", func(w http.ResponseWriter, r *http.Request) {
		agents.add(r)
		fmt.Fprint(w, recruitPage("https://cdn.jasoseol.com/20512.png"))
	})
	mux.HandleFunc("/recruit/19877", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, agents
}

func TestListRecruitIDs(t *testing.T) {
	srv, agents := recruitServer(t)
	client := NewClient(nil, WithBaseURL(srv.URL))

	ids, err := client.ListRecruitIDs(context.Background(), client.ITSearchURL())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"19877", "20512"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{userAgent}, agents.list()); diff != "" {
		t.Errorf("user agent mismatch (-want +got):\n%s", diff)
	}
}

func TestRecruitImage(t *testing.T) {
	srv, _ := recruitServer(t)
	client := NewClient(nil, WithBaseURL(srv.URL))

	got, err := client.RecruitImage(context.Background(), "20512")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://cdn.jasoseol.com/20512.png" {
		t.Errorf("got %q", got)
	}
}

func TestRecruitImageNotFound(t *testing.T) {
	srv, _ := recruitServer(t)
	client := NewClient(nil, WithBaseURL(srv.URL))

	_, err := client.RecruitImage(context.Background(), "19877")
	var remoteErr *apierrors.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if remoteErr.StatusCode() != http.StatusNotFound {
		t.Errorf("status = %d", remoteErr.StatusCode())
	}
	if remoteErr.RequestID == "" {
		t.Error("expected a request id on the error")
	}
}

func TestRecruitURL(t *testing.T) {
	client := NewClient(nil)
	if got := client.RecruitURL("410149"); got != "https://jasoseol.com/recruit/410149" {
		t.Errorf("RecruitURL = %q", got)
	}
}
