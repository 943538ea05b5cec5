package pipeline

import (
	stdzip "archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"mockupgen/internal/domain"
	"mockupgen/internal/progress"
)

func newTestOrchestrator(t *testing.T, specs []domain.MockupSpec, policy Policy) (*Orchestrator, *progress.Broker) {
	t.Helper()
	imgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(testPNG(t, 200, 200))
	}))
	t.Cleanup(imgServer.Close)

	api := newFakeAPI(imgServer.URL + "/out.png")
	broker := progress.NewBroker()
	runner := newTestRunner(api)
	return NewOrchestrator(runner, broker, specs, policy, zerolog.Nop()), broker
}

func readArchive(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := stdzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	specs := []domain.MockupSpec{
		{Type: "framed room", Prompt: "photo of {artwork_subject}", Size: [2]int{64, 64}},
		{Type: "mug", Prompt: "FAIL {artwork_subject}", Size: [2]int{64, 64}},
		{Type: "poster", Prompt: "poster of {artwork_subject}", Size: [2]int{64, 64}},
	}
	orch, broker := newTestOrchestrator(t, specs, Policy{})

	session := domain.GenerationSession{ID: "s1", Title: "Sunrise", Collection: "Spring"}
	log := &eventLog{}
	broker.Subscribe(session.ID, log.emit)
	defer broker.Unsubscribe(session.ID)

	archive, err := orch.RunBatch(context.Background(), session)
	if err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}

	names := readArchive(t, archive)
	if len(names) != 2 {
		t.Fatalf("expected 2 archive entries, got %v", names)
	}
	for _, name := range names {
		if name == "" || bytes.ContainsAny([]byte(name), "/\\") {
			t.Fatalf("unsafe archive entry name: %q", name)
		}
	}

	if got := log.byStatus(domain.EventError); len(got) != 1 || got[0].Mockup != "mug" {
		t.Fatalf("expected exactly one error event for mug: %+v", got)
	}
	if got := log.byStatus(domain.EventSucceeded); len(got) != 2 {
		t.Fatalf("expected two succeeded events: %+v", got)
	}
	if got := log.byStatus(domain.EventQueued); len(got) != 3 {
		t.Fatalf("every job must emit a queued event: %+v", got)
	}
	complete := log.byStatus(domain.EventComplete)
	if len(complete) != 1 || complete[0].Summary == nil {
		t.Fatalf("expected one complete event with summary: %+v", complete)
	}
	if complete[0].Summary.Succeeded != 2 || complete[0].Summary.Failed != 1 {
		t.Fatalf("summary mismatch: %+v", complete[0].Summary)
	}
}

func TestRunBatchEmptyConfig(t *testing.T) {
	orch, broker := newTestOrchestrator(t, nil, Policy{})

	session := domain.GenerationSession{ID: "s-empty", Title: "T", Collection: "C"}
	log := &eventLog{}
	broker.Subscribe(session.ID, log.emit)
	defer broker.Unsubscribe(session.ID)

	archive, err := orch.RunBatch(context.Background(), session)
	if err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}
	if names := readArchive(t, archive); len(names) != 0 {
		t.Fatalf("expected empty archive, got %v", names)
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	if len(log.events) != 0 {
		t.Fatalf("empty config must emit no progress events: %+v", log.events)
	}
}

func TestRunBatchAllFailedDefaultPolicy(t *testing.T) {
	specs := []domain.MockupSpec{
		{Type: "mug", Prompt: "FAIL {artwork_subject}", Size: [2]int{64, 64}},
	}
	orch, _ := newTestOrchestrator(t, specs, Policy{})

	archive, err := orch.RunBatch(context.Background(), domain.GenerationSession{ID: "s1", Title: "T", Collection: "C"})
	if err != nil {
		t.Fatalf("default policy must still produce an archive: %v", err)
	}
	if names := readArchive(t, archive); len(names) != 0 {
		t.Fatalf("expected empty archive, got %v", names)
	}
}

func TestRunBatchAllFailedStrictPolicy(t *testing.T) {
	specs := []domain.MockupSpec{
		{Type: "mug", Prompt: "FAIL {artwork_subject}", Size: [2]int{64, 64}},
	}
	orch, _ := newTestOrchestrator(t, specs, Policy{FailOnEmptyBatch: true})

	if _, err := orch.RunBatch(context.Background(), domain.GenerationSession{ID: "s1", Title: "T", Collection: "C"}); !errors.Is(err, domain.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}
